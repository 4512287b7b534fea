package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"mindcare/internal/domain"
)

// HTTPClassifier consume un servicio de inferencia remoto que expone
// clasificacion de emociones y scoring de toxicidad.
type HTTPClassifier struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClassifier construye un cliente apuntando al servicio de inferencia.
func NewHTTPClassifier(baseURL, apiKey string, logger *zap.Logger) *HTTPClassifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClassifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

type classifyRequest struct {
	Text string `json:"text"`
}

type emotionResponse struct {
	PrimaryEmotion    string             `json:"primary_emotion"`
	Confidence        float64            `json:"confidence"`
	SecondaryEmotions map[string]float64 `json:"secondary_emotions"`
	Error             string             `json:"error,omitempty"`
}

type toxicityResponse struct {
	Score float64 `json:"score"`
	Error string  `json:"error,omitempty"`
}

// Classify llama al endpoint de emociones del servicio remoto.
func (c *HTTPClassifier) Classify(ctx context.Context, text string) (domain.EmotionAnalysis, error) {
	var out emotionResponse
	if err := c.post(ctx, "/emotion", text, &out); err != nil {
		return domain.EmotionAnalysis{}, err
	}
	if out.Error != "" {
		return domain.EmotionAnalysis{}, fmt.Errorf("classifier api error: %s", out.Error)
	}
	if out.PrimaryEmotion == "" {
		return domain.EmotionAnalysis{}, fmt.Errorf("classifier empty response")
	}
	return domain.EmotionAnalysis{
		PrimaryEmotion:    out.PrimaryEmotion,
		Confidence:        out.Confidence,
		SecondaryEmotions: out.SecondaryEmotions,
	}, nil
}

// Score llama al endpoint de toxicidad del servicio remoto.
func (c *HTTPClassifier) Score(ctx context.Context, text string) (float64, error) {
	var out toxicityResponse
	if err := c.post(ctx, "/toxicity", text, &out); err != nil {
		return 0, err
	}
	if out.Error != "" {
		return 0, fmt.Errorf("classifier api error: %s", out.Error)
	}
	if out.Score < 0 || out.Score > 1 {
		return 0, fmt.Errorf("classifier score out of range: %f", out.Score)
	}
	return out.Score, nil
}

func (c *HTTPClassifier) post(ctx context.Context, path, text string, out any) error {
	bodyBytes, err := json.Marshal(classifyRequest{Text: text})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("classifier error status",
			zap.Int("status", resp.StatusCode),
			zap.String("path", path),
		)
		return fmt.Errorf("classifier http error: status=%d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
