package agents

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mindcare/internal/classifier"
	"mindcare/internal/domain"
)

// Frases que indican una consulta de busqueda de informacion.
var infoSeekingPhrases = []string{
	"what is", "how do i", "resources", "help for",
	"information", "advice", "symptoms", "coping with",
}

// Emociones consideradas de alta carga para la rama de intensidad emocional.
var intenseEmotions = map[string]bool{
	"sadness": true,
	"anxiety": true,
	"fear":    true,
	"anger":   true,
	"grief":   true,
}

// TriageAgent clasifica la emocion del input y decide el agente destino.
type TriageAgent struct {
	emotions classifier.EmotionClassifier
	logger   *zap.Logger
}

// NewTriageAgent crea el agente de triage con el clasificador de emociones.
func NewTriageAgent(emotions classifier.EmotionClassifier, logger *zap.Logger) *TriageAgent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TriageAgent{emotions: emotions, logger: logger}
}

func (a *TriageAgent) Name() string { return "triage" }

// Process puebla state.EmotionAnalysis y state.CurrentAgent. Sin input es
// passthrough.
func (a *TriageAgent) Process(ctx context.Context, state *domain.ChatbotState) error {
	input := state.CurrentUserInput
	if input == "" {
		return nil
	}

	analysis, err := a.emotions.Classify(ctx, input)
	if err != nil {
		return fmt.Errorf("emotion classify: %w", err)
	}
	state.EmotionAnalysis = &analysis

	state.CurrentAgent = determineAgent(input, analysis)
	a.logger.Debug("triage decision",
		zap.String("agent", state.CurrentAgent),
		zap.String("emotion", analysis.PrimaryEmotion),
		zap.Float64("confidence", analysis.Confidence),
	)
	return nil
}

func determineAgent(text string, analysis domain.EmotionAnalysis) string {
	if containsAny(text, infoSeekingPhrases) {
		return domain.AgentResource
	}

	// Rama muerta conservada tal cual del flujo original: ambos resultados
	// terminan en empathy. No inferir aqui un camino de baja confianza.
	if analysis.Confidence > 0.7 && intenseEmotions[analysis.PrimaryEmotion] {
		return domain.AgentEmpathy
	}

	return domain.AgentEmpathy
}
