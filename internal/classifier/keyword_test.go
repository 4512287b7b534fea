package classifier

import (
	"context"
	"testing"
)

func TestKeywordEmotionClassifierSingleEmotion(t *testing.T) {
	c := NewKeywordEmotionClassifier(nil)

	analysis, err := c.Classify(context.Background(), "I feel really anxious about my exam")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if analysis.PrimaryEmotion != "anxiety" {
		t.Fatalf("expected anxiety, got %s", analysis.PrimaryEmotion)
	}
	if analysis.Confidence != 0.75 {
		t.Fatalf("expected confidence 0.75 for one keyword, got %f", analysis.Confidence)
	}
	if _, ok := analysis.SecondaryEmotions["anxiety"]; ok {
		t.Fatal("primary emotion must not appear among secondary scores")
	}
	for emotion, score := range analysis.SecondaryEmotions {
		if score < 0.1 || score > 0.7 {
			t.Fatalf("secondary score out of bounds for %s: %f", emotion, score)
		}
	}
}

func TestKeywordEmotionClassifierTieStaysWithinTied(t *testing.T) {
	c := NewKeywordEmotionClassifier(nil)

	analysis, err := c.Classify(context.Background(), "I feel sad and worried")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if analysis.PrimaryEmotion != "sadness" && analysis.PrimaryEmotion != "anxiety" {
		t.Fatalf("expected a tied emotion, got %s", analysis.PrimaryEmotion)
	}
}

func TestKeywordEmotionClassifierNeutralFallback(t *testing.T) {
	c := NewKeywordEmotionClassifier(nil)

	analysis, err := c.Classify(context.Background(), "the weather is mild today")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if analysis.PrimaryEmotion != "neutral" {
		t.Fatalf("expected neutral, got %s", analysis.PrimaryEmotion)
	}
	if analysis.Confidence != 0.6 {
		t.Fatalf("expected confidence 0.6, got %f", analysis.Confidence)
	}
}

func TestKeywordEmotionClassifierMatchesWholeWords(t *testing.T) {
	c := NewKeywordEmotionClassifier(nil)

	// "madrid" contiene "mad" pero no como palabra completa.
	analysis, err := c.Classify(context.Background(), "I am going to madrid")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if analysis.PrimaryEmotion != "neutral" {
		t.Fatalf("expected neutral for substring-only match, got %s", analysis.PrimaryEmotion)
	}
}

func TestKeywordToxicityScorerCounts(t *testing.T) {
	s := NewKeywordToxicityScorer(nil)

	cases := []struct {
		name  string
		input string
		want  float64
	}{
		{"clean", "hello there", 0.0},
		{"two terms", "I hate this stupid thing", 0.4},
		{"capped", "worthless useless dumb idiot hate", 0.8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Score(context.Background(), tc.input)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected score %f, got %f", tc.want, got)
			}
		})
	}
}

func TestKeywordToxicityScorerJitterStaysBounded(t *testing.T) {
	s := NewKeywordToxicityScorer(nil)
	s.Jitter = true

	for i := 0; i < 50; i++ {
		got, err := s.Score(context.Background(), "worthless useless dumb idiot hate")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got < 0 || got > 1 {
			t.Fatalf("score out of [0,1]: %f", got)
		}
	}
}
