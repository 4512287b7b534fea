package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Estados de animo agregados que reporta el resumen de feedback.
const (
	MoodImproving   = "improving"
	MoodAppreciated = "appreciated"
	MoodBalanced    = "balanced"
)

// FeedbackSummary agrega los contadores de feedback y las sugerencias.
type FeedbackSummary struct {
	Positive    int      `json:"positive"`
	Negative    int      `json:"negative"`
	Suggestions []string `json:"improvement_suggestions,omitempty"`
	Mood        string   `json:"mood"`
}

// FeedbackStore acumula feedback de los usuarios sobre las respuestas.
type FeedbackStore interface {
	RecordPositive(ctx context.Context) error
	RecordNegative(ctx context.Context, suggestion string) error
	Summary(ctx context.Context) (FeedbackSummary, error)
}

func moodFor(positive, negative int) string {
	switch {
	case negative > positive:
		return MoodImproving
	case positive > negative:
		return MoodAppreciated
	default:
		return MoodBalanced
	}
}

type memoryFeedbackStore struct {
	mu          sync.Mutex
	positive    int
	negative    int
	suggestions []string
}

// NewMemoryFeedbackStore crea un store de feedback en memoria.
func NewMemoryFeedbackStore() FeedbackStore {
	return &memoryFeedbackStore{}
}

func (s *memoryFeedbackStore) RecordPositive(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positive++
	return nil
}

func (s *memoryFeedbackStore) RecordNegative(_ context.Context, suggestion string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.negative++
	if suggestion = strings.TrimSpace(suggestion); suggestion != "" {
		s.suggestions = append(s.suggestions, suggestion)
	}
	return nil
}

func (s *memoryFeedbackStore) Summary(_ context.Context) (FeedbackSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FeedbackSummary{
		Positive:    s.positive,
		Negative:    s.negative,
		Suggestions: append([]string(nil), s.suggestions...),
		Mood:        moodFor(s.positive, s.negative),
	}, nil
}

type redisFeedbackStore struct {
	client *redis.Client
	prefix string
}

// NewRedisFeedbackStore crea un store de feedback respaldado por Redis.
func NewRedisFeedbackStore(client *redis.Client) FeedbackStore {
	if client == nil {
		return nil
	}
	return &redisFeedbackStore{client: client, prefix: "chat:feedback:"}
}

func (s *redisFeedbackStore) RecordPositive(ctx context.Context) error {
	if err := s.client.Incr(ctx, s.prefix+"positive").Err(); err != nil {
		return fmt.Errorf("redis incr positive: %w", err)
	}
	return nil
}

func (s *redisFeedbackStore) RecordNegative(ctx context.Context, suggestion string) error {
	if err := s.client.Incr(ctx, s.prefix+"negative").Err(); err != nil {
		return fmt.Errorf("redis incr negative: %w", err)
	}
	if suggestion = strings.TrimSpace(suggestion); suggestion != "" {
		if err := s.client.RPush(ctx, s.prefix+"suggestions", suggestion).Err(); err != nil {
			return fmt.Errorf("redis push suggestion: %w", err)
		}
	}
	return nil
}

func (s *redisFeedbackStore) Summary(ctx context.Context) (FeedbackSummary, error) {
	positive, err := s.client.Get(ctx, s.prefix+"positive").Int()
	if err != nil && err != redis.Nil {
		return FeedbackSummary{}, fmt.Errorf("redis get positive: %w", err)
	}
	negative, err := s.client.Get(ctx, s.prefix+"negative").Int()
	if err != nil && err != redis.Nil {
		return FeedbackSummary{}, fmt.Errorf("redis get negative: %w", err)
	}
	suggestions, err := s.client.LRange(ctx, s.prefix+"suggestions", 0, -1).Result()
	if err != nil && err != redis.Nil {
		return FeedbackSummary{}, fmt.Errorf("redis get suggestions: %w", err)
	}
	return FeedbackSummary{
		Positive:    positive,
		Negative:    negative,
		Suggestions: suggestions,
		Mood:        moodFor(positive, negative),
	}, nil
}
