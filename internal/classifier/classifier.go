package classifier

import (
	"context"

	"mindcare/internal/domain"
)

// EmotionClassifier define la interfaz del clasificador de emociones.
type EmotionClassifier interface {
	Classify(ctx context.Context, text string) (domain.EmotionAnalysis, error)
}

// ToxicityScorer define la interfaz del moderador de toxicidad. Devuelve un
// score en [0,1].
type ToxicityScorer interface {
	Score(ctx context.Context, text string) (float64, error)
}
