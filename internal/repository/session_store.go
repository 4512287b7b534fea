package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"mindcare/internal/domain"
)

// ErrSessionNotFound indica que no existe estado guardado para la sesion.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persiste el estado completo de cada sesion entre turnos.
// Semantica minima: get/put con last-writer-wins, sin transacciones.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*domain.ChatbotState, error)
	Put(ctx context.Context, sessionID string, state *domain.ChatbotState) error
}

type memorySessionStore struct {
	mu     sync.RWMutex
	states map[string][]byte
}

// NewMemorySessionStore crea un store en memoria, apto para desarrollo y
// tests. Serializa a JSON para que las copias sean independientes del caller.
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{states: make(map[string][]byte)}
}

func (s *memorySessionStore) Get(_ context.Context, sessionID string) (*domain.ChatbotState, error) {
	s.mu.RLock()
	raw, ok := s.states[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	var state domain.ChatbotState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode session state: %w", err)
	}
	return &state, nil
}

func (s *memorySessionStore) Put(_ context.Context, sessionID string, state *domain.ChatbotState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}
	s.mu.Lock()
	s.states[sessionID] = raw
	s.mu.Unlock()
	return nil
}

type redisSessionStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisSessionStore crea un store respaldado por Redis. Las sesiones
// expiran tras ttl de inactividad; ttl <= 0 deshabilita la expiracion.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	if client == nil {
		return nil
	}
	return &redisSessionStore{
		client: client,
		prefix: "chat:session:",
		ttl:    ttl,
	}
}

func (s *redisSessionStore) Get(ctx context.Context, sessionID string) (*domain.ChatbotState, error) {
	raw, err := s.client.Get(ctx, s.prefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	var state domain.ChatbotState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode session state: %w", err)
	}
	return &state, nil
}

func (s *redisSessionStore) Put(ctx context.Context, sessionID string, state *domain.ChatbotState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+sessionID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis put session: %w", err)
	}
	return nil
}
