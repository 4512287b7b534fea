package agents

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"mindcare/internal/domain"
)

// MemoryAgent consolida las salidas de los agentes del turno en la
// conversacion, actualiza el registro longitudinal del usuario y limpia los
// campos de alcance de turno. Es el paso terminal del pipeline.
type MemoryAgent struct {
	now    func() time.Time
	logger *zap.Logger
}

// NewMemoryAgent crea el agente de memoria. now puede ser nil; en ese caso se
// usa time.Now, inyectable para tests.
func NewMemoryAgent(now func() time.Time, logger *zap.Logger) *MemoryAgent {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryAgent{now: now, logger: logger}
}

func (a *MemoryAgent) Name() string { return "memory" }

// Process actualiza conversacion y user_info, fija final_response y resetea
// los campos de turno.
func (a *MemoryAgent) Process(_ context.Context, state *domain.ChatbotState) error {
	now := a.now().UTC()

	a.appendUserMessage(state, now)
	a.appendAssistantMessage(state, now)
	a.updateUserInfo(state, now)

	state.CurrentUserInput = ""
	state.SafetyCheck = nil
	state.EmotionAnalysis = nil
	state.AgentResponses = map[string]string{}
	return nil
}

func (a *MemoryAgent) appendUserMessage(state *domain.ChatbotState, now time.Time) {
	if state.CurrentUserInput == "" {
		return
	}
	metadata := map[string]any{
		"timestamp": now.Format(time.RFC3339),
	}
	if state.EmotionAnalysis != nil {
		metadata["emotion"] = state.EmotionAnalysis.PrimaryEmotion
	}
	state.Conversation = append(state.Conversation, domain.Message{
		Role:     domain.RoleUser,
		Content:  state.CurrentUserInput,
		Metadata: metadata,
	})
}

// appendAssistantMessage compone la respuesta del turno en orden fijo:
// advertencia de seguridad, empatia, recursos. Si queda vacia no toca
// final_response, que puede conservar un mensaje de escalacion previo.
func (a *MemoryAgent) appendAssistantMessage(state *domain.ChatbotState, now time.Time) {
	var sb strings.Builder
	if warning, ok := state.AgentResponses[domain.ResponseKeySafetyWarning]; ok {
		sb.WriteString(warning + "\n\n")
	}
	if empathy, ok := state.AgentResponses[domain.ResponseKeyEmpathy]; ok {
		sb.WriteString(empathy + "\n\n")
	}
	if resource, ok := state.AgentResponses[domain.ResponseKeyResource]; ok {
		sb.WriteString(resource)
	}

	content := strings.TrimSpace(sb.String())
	if content == "" {
		return
	}

	agentsUsed := make([]string, 0, len(state.AgentResponses))
	for name := range state.AgentResponses {
		agentsUsed = append(agentsUsed, name)
	}
	sort.Strings(agentsUsed)

	state.Conversation = append(state.Conversation, domain.Message{
		Role:    domain.RoleAssistant,
		Content: content,
		Metadata: map[string]any{
			"timestamp":   now.Format(time.RFC3339),
			"agents_used": agentsUsed,
		},
	})
	state.FinalResponse = content
}

func (a *MemoryAgent) updateUserInfo(state *domain.ChatbotState, now time.Time) {
	if state.UserInfo == nil {
		state.UserInfo = &domain.UserInfo{
			UserID: "user_" + now.Format("20060102150405"),
		}
		a.logger.Debug("user info created", zap.String("user_id", state.UserInfo.UserID))
	}

	if state.EmotionAnalysis != nil {
		state.UserInfo.Preferences.EmotionHistory = append(
			state.UserInfo.Preferences.EmotionHistory,
			domain.EmotionRecord{
				Emotion:   state.EmotionAnalysis.PrimaryEmotion,
				Timestamp: now,
			},
		)
	}

	if state.SafetyCheck != nil {
		state.UserInfo.RiskFactors.LatestRiskLevel = state.SafetyCheck.RiskLevel
		state.UserInfo.RiskFactors.LatestAssessment = now
		for _, topic := range state.SafetyCheck.SensitiveTopics {
			state.UserInfo.RiskFactors.AddMentionedTopic(topic)
		}
	}
}
