package domain

import "fmt"

// StateValidationError indica que un estado recibido no cumple el esquema y
// fue rechazado antes de ejecutar cualquier agente.
type StateValidationError struct {
	Field  string
	Reason string
}

func (e *StateValidationError) Error() string {
	return fmt.Sprintf("invalid chatbot state: field %q: %s", e.Field, e.Reason)
}

func validRole(role string) bool {
	return role == RoleUser || role == RoleAssistant || role == RoleSystem
}

func validRiskLevel(level string) bool {
	return level == RiskLow || level == RiskMedium || level == RiskHigh
}

// Validate verifica conformidad del estado con el esquema. Se invoca en el
// borde del orquestador, antes de correr los agentes.
func (s *ChatbotState) Validate() error {
	if s == nil {
		return &StateValidationError{Field: "state", Reason: "nil state"}
	}
	for i, msg := range s.Conversation {
		if !validRole(msg.Role) {
			return &StateValidationError{
				Field:  fmt.Sprintf("conversation[%d].role", i),
				Reason: fmt.Sprintf("unknown role %q", msg.Role),
			}
		}
		if msg.Content == "" {
			return &StateValidationError{
				Field:  fmt.Sprintf("conversation[%d].content", i),
				Reason: "empty content",
			}
		}
	}
	if sc := s.SafetyCheck; sc != nil {
		if sc.ToxicityScore < 0 || sc.ToxicityScore > 1 {
			return &StateValidationError{
				Field:  "safety_check.toxicity_score",
				Reason: fmt.Sprintf("out of range: %f", sc.ToxicityScore),
			}
		}
		if !validRiskLevel(sc.RiskLevel) {
			return &StateValidationError{
				Field:  "safety_check.risk_level",
				Reason: fmt.Sprintf("unknown risk level %q", sc.RiskLevel),
			}
		}
	}
	if ea := s.EmotionAnalysis; ea != nil {
		if ea.Confidence < 0 || ea.Confidence > 1 {
			return &StateValidationError{
				Field:  "emotion_analysis.confidence",
				Reason: fmt.Sprintf("out of range: %f", ea.Confidence),
			}
		}
		if ea.PrimaryEmotion == "" {
			return &StateValidationError{
				Field:  "emotion_analysis.primary_emotion",
				Reason: "empty emotion label",
			}
		}
	}
	if s.CurrentAgent != "" && s.CurrentAgent != AgentEmpathy && s.CurrentAgent != AgentResource {
		return &StateValidationError{
			Field:  "current_agent",
			Reason: fmt.Sprintf("unknown agent %q", s.CurrentAgent),
		}
	}
	return nil
}
