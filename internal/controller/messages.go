// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package controller

import (
	"github.com/aldenwk/climchat/internal/model"
	"github.com/aldenwk/climchat/internal/reveal"
)

// =============================================================================
// CONTROLLER MESSAGES
// =============================================================================
// Messages produced by controller commands and fed back through the
// bubbletea update loop. Each message carries the generation it belongs
// to; the controller discards messages from superseded generations.

// AnswerMsg carries the Gateway's complete answer, or the send failure.
type AnswerMsg struct {
	Gen    uint64
	ChatID string
	Answer string
	Err    error
}

// RevealEventMsg carries one reveal scheduler event. Closed is true when
// the scheduler's channel closed without a terminal event (stopped).
type RevealEventMsg struct {
	Gen    uint64
	Event  reveal.Event
	Closed bool
}

// HistoryLoadedMsg carries a loaded conversation history.
type HistoryLoadedMsg struct {
	Gen      uint64
	ChatID   string
	Messages []model.Message
	Err      error
}

// ConversationsMsg carries the refreshed conversation list with local
// name overrides already applied.
type ConversationsMsg struct {
	Items []ConversationItem
	Err   error
}

// ConversationItem is one sidebar entry.
type ConversationItem struct {
	ID   string
	Name string
}

// RenamedMsg reports the outcome of a rename request.
type RenamedMsg struct {
	ChatID string
	Name   string
	Err    error
}
