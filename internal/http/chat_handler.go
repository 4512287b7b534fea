package http

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"mindcare/internal/domain"
	"mindcare/internal/orchestrator"
	"mindcare/internal/repository"
)

// ChatHandler expone el pipeline de agentes como endpoint de chat.
type ChatHandler struct {
	logger   *zap.Logger
	orch     *orchestrator.Orchestrator
	sessions repository.SessionStore
	archive  repository.MessageRepository
	locks    sessionLocks
}

// NewChatHandler crea el handler de chat. archive puede ser nil cuando no hay
// base de datos configurada.
func NewChatHandler(
	logger *zap.Logger,
	orch *orchestrator.Orchestrator,
	sessions repository.SessionStore,
	archive repository.MessageRepository,
) *ChatHandler {
	return &ChatHandler{
		logger:   logger,
		orch:     orch,
		sessions: sessions,
		archive:  archive,
	}
}

// PostChat maneja POST /chat: carga o crea el estado de la sesion, avanza un
// turno y persiste el resultado. Serializa los turnos por sesion: el nucleo
// asume a lo sumo un turno en vuelo por sesion.
func (h *ChatHandler) PostChat(c *gin.Context) {
	var req struct {
		Message   string `json:"message" binding:"required"`
		SessionID string `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx := c.Request.Context()

	sessionID := req.SessionID
	var state *domain.ChatbotState
	if sessionID != "" {
		unlock := h.locks.acquire(sessionID)
		defer unlock()

		loaded, err := h.sessions.Get(ctx, sessionID)
		switch {
		case err == nil:
			state = loaded
		case errors.Is(err, repository.ErrSessionNotFound):
			// Sesion desconocida: se inicia una conversacion nueva.
			sessionID = ""
		default:
			h.logger.Error("load session failed", zap.Error(err), zap.String("session_id", sessionID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load session"})
			return
		}
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
		state = domain.NewChatbotState()
		unlock := h.locks.acquire(sessionID)
		defer unlock()
	}

	turnStart := len(state.Conversation)

	result, err := h.orch.Advance(ctx, state, req.Message)
	if err != nil {
		var vErr *domain.StateValidationError
		if errors.As(err, &vErr) {
			h.logger.Error("corrupt session state", zap.Error(err), zap.String("session_id", sessionID))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid session state"})
			return
		}
		h.logger.Error("advance turn failed", zap.Error(err), zap.String("session_id", sessionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process message"})
		return
	}

	if err := h.sessions.Put(ctx, sessionID, result); err != nil {
		h.logger.Error("persist session failed", zap.Error(err), zap.String("session_id", sessionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not persist session"})
		return
	}

	h.archiveTurn(c, sessionID, result.Conversation[turnStart:])

	response := result.FinalResponse
	if response == "" {
		response = "I'm not sure how to respond to that."
	}

	out := gin.H{
		"response":   response,
		"session_id": sessionID,
	}
	if len(result.SuggestedResources) > 0 {
		out["resources"] = result.SuggestedResources
	}
	c.JSON(http.StatusOK, out)
}

// archiveTurn guarda en el archivo durable los mensajes que el turno agrego a
// la conversacion. Los turnos escalados no agregan mensajes y no se archivan.
func (h *ChatHandler) archiveTurn(c *gin.Context, sessionID string, appended []domain.Message) {
	if h.archive == nil {
		return
	}
	for _, msg := range appended {
		emotion, _ := msg.Metadata["emotion"].(string)
		err := h.archive.Create(c.Request.Context(), domain.ArchivedMessage{
			ID:        uuid.NewString(),
			SessionID: sessionID,
			Role:      msg.Role,
			Content:   msg.Content,
			Emotion:   emotion,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			// El archivo es best-effort: no bloquea la respuesta al usuario.
			h.logger.Warn("archive message failed", zap.Error(err), zap.String("session_id", sessionID))
		}
	}
}

// sessionLocks serializa turnos concurrentes de la misma sesion. Los mutex se
// retienen mientras viva el proceso.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *sessionLocks) acquire(sessionID string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[sessionID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[sessionID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
