package repository

import (
	"context"
	"errors"
	"testing"

	"mindcare/internal/domain"
)

func TestMemorySessionStoreGetUnknownSession(t *testing.T) {
	store := NewMemorySessionStore()
	_, err := store.Get(context.Background(), "nope")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemorySessionStorePutGet(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	state := domain.NewChatbotState()
	state.Conversation = append(state.Conversation, domain.Message{Role: domain.RoleUser, Content: "hola"})
	state.UserInfo = &domain.UserInfo{UserID: "user_20250314150926"}

	if err := store.Put(ctx, "s1", state); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got.Conversation) != 1 || got.Conversation[0].Content != "hola" {
		t.Fatalf("unexpected conversation: %+v", got.Conversation)
	}
	if got.UserInfo == nil || got.UserInfo.UserID != "user_20250314150926" {
		t.Fatalf("unexpected user info: %+v", got.UserInfo)
	}
}

func TestMemorySessionStoreCopiesAreIndependent(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	state := domain.NewChatbotState()
	state.Conversation = append(state.Conversation, domain.Message{Role: domain.RoleUser, Content: "original"})
	if err := store.Put(ctx, "s1", state); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	// Mutar el estado del caller no debe afectar lo guardado.
	state.Conversation[0].Content = "mutated"

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Conversation[0].Content != "original" {
		t.Fatalf("stored state shares memory with caller: %q", got.Conversation[0].Content)
	}

	// Mutar lo leido tampoco debe afectar lecturas posteriores.
	got.Conversation[0].Content = "mutated again"
	again, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if again.Conversation[0].Content != "original" {
		t.Fatalf("reads share memory between calls: %q", again.Conversation[0].Content)
	}
}

func TestMemorySessionStoreLastWriterWins(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	first := domain.NewChatbotState()
	first.FinalResponse = "first"
	second := domain.NewChatbotState()
	second.FinalResponse = "second"

	if err := store.Put(ctx, "s1", first); err != nil {
		t.Fatalf("first put failed: %v", err)
	}
	if err := store.Put(ctx, "s1", second); err != nil {
		t.Fatalf("second put failed: %v", err)
	}
	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.FinalResponse != "second" {
		t.Fatalf("expected last write to win, got %q", got.FinalResponse)
	}
}
