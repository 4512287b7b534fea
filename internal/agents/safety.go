package agents

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"mindcare/internal/classifier"
	"mindcare/internal/domain"
)

// Topicos sensibles que se registran cuando aparecen en el input.
var sensitiveTopics = []string{
	"suicide", "self-harm", "violence", "abuse",
	"drugs", "alcohol", "eating disorders",
}

// Frases de alto riesgo que disparan intervencion humana.
var highRiskPhrases = []string{
	"kill myself", "end my life", "want to die",
	"suicide plan", "hurt myself", "self-harm",
}

// SafetyAgent evalua el input del usuario en busca de riesgo y toxicidad.
type SafetyAgent struct {
	scorer classifier.ToxicityScorer
	logger *zap.Logger
}

// NewSafetyAgent crea el agente de seguridad con el scorer de toxicidad.
func NewSafetyAgent(scorer classifier.ToxicityScorer, logger *zap.Logger) *SafetyAgent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SafetyAgent{scorer: scorer, logger: logger}
}

func (a *SafetyAgent) Name() string { return "safety" }

// Process puebla state.SafetyCheck. Sin input reporta seguro sin llamar al
// scorer; con input combina score de toxicidad y coincidencias de frases.
func (a *SafetyAgent) Process(ctx context.Context, state *domain.ChatbotState) error {
	input := state.CurrentUserInput
	if input == "" {
		state.SafetyCheck = &domain.SafetyCheck{
			IsSafe:        true,
			ToxicityScore: 0.0,
			RiskLevel:     domain.RiskLow,
		}
		return nil
	}

	toxicity, err := a.scorer.Score(ctx, input)
	if err != nil {
		return fmt.Errorf("toxicity score: %w", err)
	}

	topics := detectSensitiveTopics(input)
	needsIntervention := containsAny(input, highRiskPhrases)

	riskLevel := domain.RiskLow
	switch {
	case needsIntervention || toxicity > 0.8:
		riskLevel = domain.RiskHigh
	case toxicity > 0.5:
		riskLevel = domain.RiskMedium
	}

	check := &domain.SafetyCheck{
		IsSafe:                 toxicity < 0.7 && riskLevel != domain.RiskHigh,
		ToxicityScore:          toxicity,
		SensitiveTopics:        topics,
		RiskLevel:              riskLevel,
		NeedsHumanIntervention: needsIntervention,
	}
	state.SafetyCheck = check

	if !check.IsSafe {
		a.logger.Warn("unsafe input detected",
			zap.Float64("toxicity", toxicity),
			zap.String("risk_level", riskLevel),
			zap.Bool("needs_intervention", needsIntervention),
		)
	}
	return nil
}

func detectSensitiveTopics(text string) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, topic := range sensitiveTopics {
		if strings.Contains(lower, topic) {
			matched = append(matched, topic)
		}
	}
	return matched
}

func containsAny(text string, phrases []string) bool {
	lower := strings.ToLower(text)
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
