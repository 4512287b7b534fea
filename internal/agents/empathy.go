package agents

import (
	"context"
	"math/rand"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"mindcare/internal/domain"
)

// Plantillas empaticas por emocion primaria.
var empathyTemplates = map[string][]string{
	"sadness": {
		"I'm sorry you're feeling sad. It's okay to feel this way, and I'm here to listen.",
		"That sounds really difficult. I can understand why you might feel sad about that.",
	},
	"anxiety": {
		"I hear that you're feeling anxious. That's a natural response, though I know it's not easy.",
		"Anxiety can be really challenging to deal with. I'm here to support you through this.",
	},
	"anger": {
		"I can sense your frustration. It's completely valid to feel this way given what you've shared.",
		"That situation would make many people feel angry. Thank you for sharing how you feel.",
	},
	"fear": {
		"Being afraid in this situation is completely understandable. You're not alone in feeling this way.",
		"I can imagine that must be scary to deal with. I'm here to listen and support you.",
	},
	"joy": {
		"I'm really happy to hear that! It's wonderful that you've had this positive experience.",
		"That's great news! Those moments of joy are worth celebrating.",
	},
	"default": {
		"Thank you for sharing that with me. I'm here to listen and support you.",
		"I appreciate you opening up about this. How else can I support you right now?",
	},
}

// Preguntas de seguimiento para mantener la conversacion abierta.
var followUps = []string{
	"Would you like to tell me more about how you're feeling?",
	"Is there anything specific about this that's been on your mind?",
	"What do you think might help you feel better right now?",
	"Have you tried any coping strategies that have worked for you in the past?",
}

var namePattern = regexp.MustCompile(`My name is (\w+)`)

// Picker elige un indice uniforme en [0,n). Inyectable para que los tests
// puedan fijar la seleccion y asertar salida exacta.
type Picker func(n int) int

// EmpathyAgent genera una respuesta empatica condicionada por la emocion.
type EmpathyAgent struct {
	pick   Picker
	logger *zap.Logger
}

// NewEmpathyAgent crea el agente de empatia. pick puede ser nil; en ese caso
// se usa rand.Intn.
func NewEmpathyAgent(pick Picker, logger *zap.Logger) *EmpathyAgent {
	if pick == nil {
		pick = rand.Intn
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmpathyAgent{pick: pick, logger: logger}
}

func (a *EmpathyAgent) Name() string { return "empathy" }

// Process agrega agent_responses["empathy"]. Es no-op si falta el input o el
// analisis de emociones.
func (a *EmpathyAgent) Process(_ context.Context, state *domain.ChatbotState) error {
	input := state.CurrentUserInput
	if input == "" || state.EmotionAnalysis == nil {
		return nil
	}

	response := a.buildResponse(state.EmotionAnalysis.PrimaryEmotion, input)
	if state.AgentResponses == nil {
		state.AgentResponses = map[string]string{}
	}
	state.AgentResponses[domain.ResponseKeyEmpathy] = response
	return nil
}

func (a *EmpathyAgent) buildResponse(emotion, input string) string {
	templates, ok := empathyTemplates[strings.ToLower(emotion)]
	if !ok {
		templates = empathyTemplates["default"]
	}
	template := templates[a.pick(len(templates))]

	if m := namePattern.FindStringSubmatch(input); m != nil {
		template = "Hi " + m[1] + ", " + template
	}

	return template + " " + followUps[a.pick(len(followUps))]
}
