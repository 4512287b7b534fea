package classifier

import (
	"context"

	"mindcare/internal/domain"
)

// MockEmotionClassifier permite tests sin llamar a un modelo real.
type MockEmotionClassifier struct {
	Analysis domain.EmotionAnalysis
	Err      error
	Calls    int
}

func (m *MockEmotionClassifier) Classify(ctx context.Context, text string) (domain.EmotionAnalysis, error) {
	m.Calls++
	return m.Analysis, m.Err
}

// MockToxicityScorer permite tests con un score fijo.
type MockToxicityScorer struct {
	ScoreValue float64
	Err        error
	Calls      int
}

func (m *MockToxicityScorer) Score(ctx context.Context, text string) (float64, error) {
	m.Calls++
	return m.ScoreValue, m.Err
}
