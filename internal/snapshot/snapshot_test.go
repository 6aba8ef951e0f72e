// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aldenwk/climchat/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewStoreWithDir: %v", err)
	}
	return store
}

func TestLoadEmpty(t *testing.T) {
	store := newTestStore(t)

	session, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if session.ChatID != "" {
		t.Errorf("ChatID = %q, want empty", session.ChatID)
	}
	if len(session.Messages) != 0 {
		t.Errorf("Messages = %d, want 0", len(session.Messages))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	messages := []model.Message{
		model.NewUserMessage("What drives sea level rise?"),
		model.NewAssistantPlaceholder(),
	}
	messages[1].Content = "Thermal expansion and ice melt."
	messages[1].Loading = false

	if err := store.Save("chat-42", messages); err != nil {
		t.Fatalf("Save: %v", err)
	}

	session, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if session.ChatID != "chat-42" {
		t.Errorf("ChatID = %q, want 'chat-42'", session.ChatID)
	}
	if len(session.Messages) != 2 {
		t.Fatalf("Messages = %d, want 2", len(session.Messages))
	}
	if session.Messages[0].Content != "What drives sea level rise?" {
		t.Errorf("user content = %q", session.Messages[0].Content)
	}
	if session.Messages[1].Role != model.RoleAssistant {
		t.Errorf("role = %q, want assistant", session.Messages[1].Role)
	}
}

func TestSaveOverwrites(t *testing.T) {
	store := newTestStore(t)

	first := []model.Message{model.NewUserMessage("first")}
	if err := store.Save("a", first); err != nil {
		t.Fatal(err)
	}

	second := []model.Message{
		model.NewUserMessage("second"),
		model.NewUserMessage("third"),
	}
	if err := store.Save("b", second); err != nil {
		t.Fatal(err)
	}

	session, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}

	if session.ChatID != "b" {
		t.Errorf("ChatID = %q, want 'b'", session.ChatID)
	}
	if len(session.Messages) != 2 {
		t.Errorf("Messages = %d, want 2", len(session.Messages))
	}
}

func TestClear(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save("chat-1", []model.Message{model.NewUserMessage("hi")}); err != nil {
		t.Fatal(err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	session, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if session.ChatID != "" || len(session.Messages) != 0 {
		t.Error("session not empty after Clear")
	}
}

func TestClearIdempotent(t *testing.T) {
	store := newTestStore(t)

	if err := store.Clear(); err != nil {
		t.Errorf("Clear on empty store: %v", err)
	}
}

func TestLoadCorruptMessages(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save("chat-1", []model.Message{model.NewUserMessage("hi")}); err != nil {
		t.Fatal(err)
	}

	// Damage the messages file
	if err := os.WriteFile(filepath.Join(store.BaseDir, messagesFile), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	session, err := store.Load()
	if err != nil {
		t.Fatalf("Load should tolerate corrupt messages: %v", err)
	}

	if session.ChatID != "chat-1" {
		t.Errorf("ChatID = %q, want preserved chat ID", session.ChatID)
	}
	if session.Messages != nil {
		t.Error("corrupt messages should be discarded")
	}
}
