package domain

import (
	"time"
)

// Roles validos dentro de una conversacion.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Niveles de riesgo que puede asignar el chequeo de seguridad.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Agentes que puede elegir el triage como destino del turno.
const (
	AgentEmpathy  = "empathy"
	AgentResource = "resource"
)

// Claves usadas en agent_responses para componer la respuesta final.
const (
	ResponseKeySafetyWarning = "safety_warning"
	ResponseKeyEmpathy       = "empathy"
	ResponseKeyResource      = "resource"
)

// Message es un turno individual de la conversacion. Inmutable una vez agregado.
type Message struct {
	Role     string         `json:"role"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// EmotionRecord es una entrada del historial emocional longitudinal del usuario.
type EmotionRecord struct {
	Emotion   string    `json:"emotion"`
	Timestamp time.Time `json:"timestamp"`
}

// Preferences acumula senales longitudinales del usuario. Crece sin limite; es
// una caracteristica asumida del diseno, no un bug.
type Preferences struct {
	EmotionHistory []EmotionRecord `json:"emotion_history,omitempty"`
}

// RiskFactors rastrea el riesgo longitudinal del usuario entre turnos.
type RiskFactors struct {
	LatestRiskLevel  string    `json:"latest_risk_level,omitempty"`
	LatestAssessment time.Time `json:"latest_assessment,omitempty"`
	// MentionedTopics se comporta como conjunto: union sin duplicados, ordenado.
	MentionedTopics []string `json:"mentioned_topics,omitempty"`
}

// UserInfo es el registro longitudinal por usuario. Lo crea y muta
// exclusivamente el agente de memoria.
type UserInfo struct {
	UserID      string      `json:"user_id"`
	Preferences Preferences `json:"preferences"`
	RiskFactors RiskFactors `json:"risk_factors"`
	// ConversationHistory esta reservado; el flujo actual no lo usa.
	ConversationHistory []Message `json:"conversation_history,omitempty"`
}

// EmotionAnalysis es el resultado por turno del clasificador de emociones.
type EmotionAnalysis struct {
	PrimaryEmotion    string             `json:"primary_emotion"`
	Confidence        float64            `json:"confidence"`
	SecondaryEmotions map[string]float64 `json:"secondary_emotions,omitempty"`
}

// SafetyCheck es el resultado por turno del agente de seguridad.
type SafetyCheck struct {
	IsSafe                 bool     `json:"is_safe"`
	ToxicityScore          float64  `json:"toxicity_score"`
	SensitiveTopics        []string `json:"sensitive_topics,omitempty"`
	RiskLevel              string   `json:"risk_level"`
	NeedsHumanIntervention bool     `json:"needs_human_intervention"`
}

// ResourceInfo es un recurso curado del catalogo estatico.
type ResourceInfo struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	Source  string `json:"source,omitempty"`
	URL     string `json:"url,omitempty"`
}

// ChatbotState es el estado completo de una sesion. Cada agente recibe el
// estado entero y muta su porcion; el orquestador lo persiste por sesion.
type ChatbotState struct {
	Conversation       []Message         `json:"conversation"`
	CurrentUserInput   string            `json:"current_user_input,omitempty"`
	CurrentAgent       string            `json:"current_agent,omitempty"`
	UserInfo           *UserInfo         `json:"user_info,omitempty"`
	EmotionAnalysis    *EmotionAnalysis  `json:"emotion_analysis,omitempty"`
	SafetyCheck        *SafetyCheck      `json:"safety_check,omitempty"`
	SuggestedResources []ResourceInfo    `json:"suggested_resources,omitempty"`
	AgentResponses     map[string]string `json:"agent_responses"`
	FinalResponse      string            `json:"final_response,omitempty"`
}

// NewChatbotState crea un estado vacio listo para la primera interaccion.
func NewChatbotState() *ChatbotState {
	return &ChatbotState{
		Conversation:   []Message{},
		AgentResponses: map[string]string{},
	}
}

// AddMentionedTopic une un topico al conjunto acumulado, manteniendo orden.
func (rf *RiskFactors) AddMentionedTopic(topic string) {
	for _, t := range rf.MentionedTopics {
		if t == topic {
			return
		}
	}
	i := 0
	for i < len(rf.MentionedTopics) && rf.MentionedTopics[i] < topic {
		i++
	}
	rf.MentionedTopics = append(rf.MentionedTopics, "")
	copy(rf.MentionedTopics[i+1:], rf.MentionedTopics[i:])
	rf.MentionedTopics[i] = topic
}
