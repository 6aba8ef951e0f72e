// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// SOURCE TYPE
// =============================================================================

// Source is a reference attached to an assistant answer.
// The backend does not populate sources yet; the field is carried so that
// snapshots and history rows keep their shape when citations arrive.
type Source struct {
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
//
// For assistant messages, Content grows incrementally while the answer is
// being revealed. Loading is true from creation until the reveal completes
// or the send fails; Error marks a failed send.
type Message struct {
	ID      string   `json:"id"`
	Role    Role     `json:"role"`
	Content string   `json:"content"`
	Loading bool     `json:"loading"`
	Error   bool     `json:"error"`
	Sources []Source `json:"sources"`
}

// NewUserMessage creates a user message with a generated ID.
func NewUserMessage(content string) Message {
	return Message{
		ID:      generateID(),
		Role:    RoleUser,
		Content: content,
		Sources: []Source{},
	}
}

// NewAssistantPlaceholder creates an empty assistant message in the pending
// state. Content is filled in chunk by chunk as the reveal progresses.
func NewAssistantPlaceholder() Message {
	return Message{
		ID:      generateID(),
		Role:    RoleAssistant,
		Loading: true,
		Sources: []Source{},
	}
}

// FromHistory builds a completed message from a Gateway history row.
// Unknown roles are kept as-is so history rendering never drops rows.
func FromHistory(role, content string) Message {
	return Message{
		ID:      generateID(),
		Role:    Role(role),
		Content: content,
		Sources: []Source{},
	}
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0
}

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	return string(runes[:maxLen-3]) + "..."
}

// generateID creates a unique message ID.
func generateID() string {
	return "msg_" + uuid.NewString()
}
