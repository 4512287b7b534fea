package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mindcare/internal/repository"
)

// FeedbackHandler registra valoraciones de los usuarios sobre las respuestas.
type FeedbackHandler struct {
	logger   *zap.Logger
	feedback repository.FeedbackStore
}

// NewFeedbackHandler crea el handler de feedback.
func NewFeedbackHandler(logger *zap.Logger, feedback repository.FeedbackStore) *FeedbackHandler {
	return &FeedbackHandler{logger: logger, feedback: feedback}
}

// PostFeedback maneja POST /feedback. Ratings 1-2 cuentan como negativos y
// pueden traer una sugerencia de mejora; 4-5 como positivos; 3 es neutral y
// no altera los contadores.
func (h *FeedbackHandler) PostFeedback(c *gin.Context) {
	var req struct {
		SessionID  string `json:"session_id"`
		Rating     int    `json:"rating" binding:"required,min=1,max=5"`
		Suggestion string `json:"suggestion"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid feedback request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var err error
	switch {
	case req.Rating <= 2:
		err = h.feedback.RecordNegative(c.Request.Context(), req.Suggestion)
	case req.Rating >= 4:
		err = h.feedback.RecordPositive(c.Request.Context())
	}
	if err != nil {
		h.logger.Error("record feedback failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record feedback"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "recorded"})
}

// GetFeedbackSummary maneja GET /feedback/summary.
func (h *FeedbackHandler) GetFeedbackSummary(c *gin.Context) {
	summary, err := h.feedback.Summary(c.Request.Context())
	if err != nil {
		h.logger.Error("feedback summary failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load summary"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
