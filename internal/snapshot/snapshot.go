// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package snapshot persists the active session so a restarted client can
// resume where it left off. It mirrors two entries: the active chat ID
// and the serialized message sequence.
package snapshot

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/aldenwk/climchat/internal/model"
	"github.com/aldenwk/climchat/internal/util"
)

const (
	chatIDFile   = "active_chat"
	messagesFile = "messages.json"
)

// =============================================================================
// SNAPSHOT STORE
// =============================================================================

// Store persists the active session under a state directory. There is
// exactly one writer (the conversation controller); mutations are
// serialized by the UI event loop, so no locking is needed.
type Store struct {
	// BaseDir is the directory for session state
	// Default: ~/.climchat/session/
	BaseDir string
}

// NewStore creates a store rooted in the user's home directory.
func NewStore() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Join(homeDir, ".climchat", "session")
	return NewStoreWithDir(baseDir)
}

// NewStoreWithDir creates a store with a custom directory.
func NewStoreWithDir(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &Store{BaseDir: baseDir}, nil
}

// Session is the restored state from a previous run.
type Session struct {
	ChatID   string
	Messages []model.Message
}

// Load reads the persisted session. Called once at startup. A missing
// snapshot returns an empty session, not an error; a corrupt messages
// file is discarded so startup never fails on bad state.
func (s *Store) Load() (*Session, error) {
	session := &Session{}

	idBytes, err := os.ReadFile(filepath.Join(s.BaseDir, chatIDFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return session, nil
		}
		return nil, err
	}
	session.ChatID = string(idBytes)

	msgBytes, err := os.ReadFile(filepath.Join(s.BaseDir, messagesFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return session, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(msgBytes, &session.Messages); err != nil {
		// RELIABILITY: corrupt snapshot must not block startup
		session.Messages = nil
	}

	return session, nil
}

// Save atomically rewrites both snapshot entries. Called after every
// message mutation, including each reveal chunk.
func (s *Store) Save(chatID string, messages []model.Message) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return err
	}

	if err := util.AtomicWriteFile(filepath.Join(s.BaseDir, chatIDFile), []byte(chatID), 0644); err != nil {
		return err
	}
	return util.AtomicWriteFile(filepath.Join(s.BaseDir, messagesFile), data, 0644)
}

// Clear removes the persisted session entirely. Used on "start new
// chat" before the replacement state is written.
func (s *Store) Clear() error {
	if err := os.Remove(filepath.Join(s.BaseDir, chatIDFile)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.Remove(filepath.Join(s.BaseDir, messagesFile)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
