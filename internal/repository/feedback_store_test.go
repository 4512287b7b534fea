package repository

import (
	"context"
	"testing"
)

func TestMemoryFeedbackStoreCounters(t *testing.T) {
	store := NewMemoryFeedbackStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := store.RecordPositive(ctx); err != nil {
			t.Fatalf("record positive failed: %v", err)
		}
	}
	if err := store.RecordNegative(ctx, "more resources please"); err != nil {
		t.Fatalf("record negative failed: %v", err)
	}

	summary, err := store.Summary(ctx)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.Positive != 3 || summary.Negative != 1 {
		t.Fatalf("unexpected counters: %+v", summary)
	}
	if len(summary.Suggestions) != 1 || summary.Suggestions[0] != "more resources please" {
		t.Fatalf("unexpected suggestions: %v", summary.Suggestions)
	}
	if summary.Mood != MoodAppreciated {
		t.Fatalf("expected mood %q, got %q", MoodAppreciated, summary.Mood)
	}
}

func TestMemoryFeedbackStoreIgnoresBlankSuggestions(t *testing.T) {
	store := NewMemoryFeedbackStore()
	ctx := context.Background()

	if err := store.RecordNegative(ctx, "   "); err != nil {
		t.Fatalf("record negative failed: %v", err)
	}
	summary, err := store.Summary(ctx)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.Negative != 1 {
		t.Fatalf("expected one negative, got %d", summary.Negative)
	}
	if len(summary.Suggestions) != 0 {
		t.Fatalf("blank suggestion should be dropped, got %v", summary.Suggestions)
	}
	if summary.Mood != MoodImproving {
		t.Fatalf("expected mood %q, got %q", MoodImproving, summary.Mood)
	}
}

func TestMoodFor(t *testing.T) {
	cases := []struct {
		positive int
		negative int
		want     string
	}{
		{0, 0, MoodBalanced},
		{2, 2, MoodBalanced},
		{3, 1, MoodAppreciated},
		{1, 4, MoodImproving},
	}
	for _, tc := range cases {
		if got := moodFor(tc.positive, tc.negative); got != tc.want {
			t.Fatalf("moodFor(%d, %d) = %q, want %q", tc.positive, tc.negative, got, tc.want)
		}
	}
}
