package agents

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"mindcare/internal/domain"
)

// Orden fijo de categorias: la primera con alguna coincidencia gana.
var categoryOrder = []string{"anxiety", "depression", "stress", "crisis", "general"}

// Palabras clave por categoria de recursos.
var categoryKeywords = map[string][]string{
	"anxiety":    {"anxiety", "anxious", "worry", "panic", "fear", "stressed", "nervous"},
	"depression": {"depression", "depressed", "sad", "hopeless", "unmotivated", "exhausted", "worthless"},
	"stress":     {"stress", "overwhelmed", "burnout", "pressure", "overworked", "tense"},
	"crisis":     {"suicidal", "crisis", "emergency", "harm", "unsafe", "danger"},
	"general":    {},
}

// Catalogo estatico de recursos curados. Solo lectura despues de iniciar, se
// comparte entre sesiones sin locking.
var resourceCatalog = map[string][]domain.ResourceInfo{
	"anxiety": {
		{
			Type:    "article",
			Content: "Understanding and Managing Anxiety",
			Source:  "National Institute of Mental Health",
			URL:     "https://www.nimh.nih.gov/health/topics/anxiety-disorders",
		},
		{
			Type:    "technique",
			Content: "Deep breathing: Breathe in for 4 counts, hold for 2, and exhale for 6 counts. Repeat 5-10 times.",
			Source:  "Anxiety and Depression Association of America",
			URL:     "https://adaa.org/tips",
		},
	},
	"depression": {
		{
			Type:    "article",
			Content: "Depression Basics and Treatment Options",
			Source:  "National Institute of Mental Health",
			URL:     "https://www.nimh.nih.gov/health/topics/depression",
		},
		{
			Type:    "technique",
			Content: "Activity scheduling: Plan enjoyable activities throughout your week, even if you don't feel motivated initially.",
			Source:  "American Psychological Association",
			URL:     "https://www.apa.org/depression",
		},
	},
	"stress": {
		{
			Type:    "article",
			Content: "Stress Management Techniques",
			Source:  "Mayo Clinic",
			URL:     "https://www.mayoclinic.org/healthy-lifestyle/stress-management/basics/stress-basics/hlv-20049495",
		},
		{
			Type:    "technique",
			Content: "Progressive muscle relaxation: Tense and then relax each muscle group in your body, starting from your toes and working upward.",
			Source:  "American Psychological Association",
			URL:     "https://www.apa.org/topics/stress",
		},
	},
	"crisis": {
		{
			Type:    "hotline",
			Content: "National Suicide Prevention Lifeline: 988 or 1-800-273-8255",
			Source:  "SAMHSA",
			URL:     "https://988lifeline.org/",
		},
		{
			Type:    "text_line",
			Content: "Crisis Text Line: Text HOME to 741741",
			Source:  "Crisis Text Line",
			URL:     "https://www.crisistextline.org/",
		},
	},
	"general": {
		{
			Type:    "article",
			Content: "Taking Care of Your Mental Health",
			Source:  "Mental Health America",
			URL:     "https://www.mhanational.org/taking-good-care-yourself",
		},
		{
			Type:    "app",
			Content: "Mindfulness and meditation apps like Headspace, Calm, or Insight Timer",
			Source:  "Various",
			URL:     "https://www.mindful.org/free-mindfulness-apps-worthy-of-your-attention/",
		},
	},
}

const maxResourcesPerTurn = 2

// ResourceAgent responde consultas informativas con recursos del catalogo.
type ResourceAgent struct {
	logger *zap.Logger
}

// NewResourceAgent crea el agente de recursos.
func NewResourceAgent(logger *zap.Logger) *ResourceAgent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceAgent{logger: logger}
}

func (a *ResourceAgent) Name() string { return "resource" }

// Process agrega agent_responses["resource"] y suggested_resources. Es no-op
// sin input.
func (a *ResourceAgent) Process(_ context.Context, state *domain.ChatbotState) error {
	input := state.CurrentUserInput
	if input == "" {
		return nil
	}

	category := matchCategory(input)
	resources := resourceCatalog[category]
	if len(resources) > maxResourcesPerTurn {
		resources = resources[:maxResourcesPerTurn]
	}

	if state.AgentResponses == nil {
		state.AgentResponses = map[string]string{}
	}
	state.AgentResponses[domain.ResponseKeyResource] = formatResources(resources)
	state.SuggestedResources = resources

	a.logger.Debug("resource lookup",
		zap.String("category", category),
		zap.Int("count", len(resources)),
	)
	return nil
}

// matchCategory asigna el input a exactamente una categoria: primera
// coincidencia en orden fijo, general como fallback.
func matchCategory(text string) string {
	lower := strings.ToLower(text)
	for _, category := range categoryOrder {
		for _, kw := range categoryKeywords[category] {
			if strings.Contains(lower, kw) {
				return category
			}
		}
	}
	return "general"
}

func formatResources(resources []domain.ResourceInfo) string {
	if len(resources) == 0 {
		return "I don't have specific resources for that topic right now, but I'm here to listen and support you."
	}

	var sb strings.Builder
	sb.WriteString("Here are some resources that might help:\n\n")
	for i, r := range resources {
		sb.WriteString(fmt.Sprintf("%d. %s", i+1, r.Content))
		if r.Source != "" {
			sb.WriteString(fmt.Sprintf(" (Source: %s)", r.Source))
		}
		if r.URL != "" {
			sb.WriteString("\n   " + r.URL)
		}
		sb.WriteString("\n\n")
	}
	sb.WriteString("Would you like more information on any of these resources, or is there something else I can help with?")
	return sb.String()
}
