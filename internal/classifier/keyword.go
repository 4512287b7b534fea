package classifier

import (
	"context"
	"math/rand"
	"regexp"
	"strings"
	"sync"

	"mindcare/internal/domain"
)

// Palabras clave por emocion para la clasificacion basada en reglas. Se usa
// cuando no hay un modelo remoto configurado.
var emotionKeywords = map[string][]string{
	"sadness": {"sad", "upset", "unhappy", "depressed", "down", "miserable", "grief", "lonely"},
	"anxiety": {"anxious", "nervous", "worry", "worried", "afraid", "scared", "fear", "stress", "stressed"},
	"anger":   {"angry", "mad", "furious", "irritated", "annoyed", "frustrated", "rage"},
	"joy":     {"happy", "glad", "joyful", "excited", "great", "fantastic", "wonderful", "good"},
}

// emotionOrder fija el orden de iteracion para que los resultados sean
// reproducibles con la misma semilla.
var emotionOrder = []string{"sadness", "anxiety", "anger", "joy"}

var wordPatterns = buildWordPatterns()

func buildWordPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp)
	for _, keywords := range emotionKeywords {
		for _, kw := range keywords {
			patterns[kw] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
		}
	}
	return patterns
}

// KeywordEmotionClassifier clasifica emociones contando palabras clave.
type KeywordEmotionClassifier struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewKeywordEmotionClassifier construye el clasificador. rng puede ser nil;
// en ese caso se usa una fuente con semilla fija, util para tests.
func NewKeywordEmotionClassifier(rng *rand.Rand) *KeywordEmotionClassifier {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &KeywordEmotionClassifier{rng: rng}
}

// Classify cuenta apariciones de palabras clave por emocion y deriva la
// emocion primaria, su confianza y scores secundarios.
func (c *KeywordEmotionClassifier) Classify(_ context.Context, text string) (domain.EmotionAnalysis, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lower := strings.ToLower(text)
	counts := make(map[string]int, len(emotionOrder))
	total := 0
	for _, emotion := range emotionOrder {
		count := 0
		for _, kw := range emotionKeywords[emotion] {
			if wordPatterns[kw].MatchString(lower) {
				count++
			}
		}
		counts[emotion] = count
		total += count
	}

	if total == 0 {
		return domain.EmotionAnalysis{
			PrimaryEmotion: "neutral",
			Confidence:     0.6,
			SecondaryEmotions: map[string]float64{
				"sadness": c.rng.Float64() * 0.3,
				"anxiety": c.rng.Float64() * 0.3,
				"anger":   c.rng.Float64() * 0.2,
				"joy":     c.rng.Float64() * 0.2,
			},
		}, nil
	}

	maxCount := 0
	for _, count := range counts {
		if count > maxCount {
			maxCount = count
		}
	}
	var tied []string
	for _, emotion := range emotionOrder {
		if counts[emotion] == maxCount {
			tied = append(tied, emotion)
		}
	}
	primary := tied[c.rng.Intn(len(tied))]

	confidence := 0.7 + float64(maxCount)*0.05
	if confidence > 0.95 {
		confidence = 0.95
	}

	secondary := make(map[string]float64)
	for _, emotion := range emotionOrder {
		if emotion == primary {
			continue
		}
		base := 0.2 + float64(counts[emotion])*0.1
		score := base + (c.rng.Float64()*0.2 - 0.1)
		if score < 0.1 {
			score = 0.1
		}
		if score > 0.7 {
			score = 0.7
		}
		secondary[emotion] = score
	}

	return domain.EmotionAnalysis{
		PrimaryEmotion:    primary,
		Confidence:        confidence,
		SecondaryEmotions: secondary,
	}, nil
}

// Terminos que elevan el score heuristico de toxicidad.
var concerningTerms = []string{
	"kill", "die", "suicide", "hurt", "harm", "hate",
	"stupid", "idiot", "dumb", "useless", "worthless",
}

// KeywordToxicityScorer estima toxicidad contando terminos preocupantes.
type KeywordToxicityScorer struct {
	mu  sync.Mutex
	rng *rand.Rand
	// Jitter agrega ruido aleatorio al score. Apagado permite tests exactos.
	Jitter bool
}

// NewKeywordToxicityScorer construye el scorer. rng puede ser nil.
func NewKeywordToxicityScorer(rng *rand.Rand) *KeywordToxicityScorer {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &KeywordToxicityScorer{rng: rng}
}

// Score devuelve 0.2 por termino preocupante, con tope en 0.8, mas un ruido
// opcional de +-0.1 acotado a [0,1].
func (s *KeywordToxicityScorer) Score(_ context.Context, text string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lower := strings.ToLower(text)
	count := 0
	for _, term := range concerningTerms {
		if strings.Contains(lower, term) {
			count++
		}
	}

	score := float64(count) * 0.2
	if score > 0.8 {
		score = 0.8
	}
	if s.Jitter {
		score += s.rng.Float64()*0.2 - 0.1
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, nil
}
