// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the active chat's identity and message sequence.
//
// ID is assigned by the Gateway when the first message of a new chat is sent;
// it is empty until then. The message slice is owned exclusively by the
// conversation state controller; views receive copies via History.
type Conversation struct {
	ID       string    `json:"chat_id"`
	Messages []Message `json:"messages"`
}

// NewConversation creates an empty conversation with no chat ID.
func NewConversation() *Conversation {
	return &Conversation{
		Messages: []Message{},
	}
}

// =============================================================================
// QUERIES
// =============================================================================

// IsLoading reports whether an answer is currently pending or being revealed.
// True iff the last message is an assistant message with Loading set.
// An empty conversation is never loading.
func (c *Conversation) IsLoading() bool {
	if len(c.Messages) == 0 {
		return false
	}
	last := c.Messages[len(c.Messages)-1]
	return last.Role == RoleAssistant && last.Loading
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.Messages)
}

// History returns a copy of the message sequence for rendering.
func (c *Conversation) History() []Message {
	out := make([]Message, len(c.Messages))
	copy(out, c.Messages)
	return out
}

// Last returns a pointer to the last message, or nil if empty.
func (c *Conversation) Last() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}

// =============================================================================
// MUTATIONS
// =============================================================================

// Append adds messages to the end of the sequence.
func (c *Conversation) Append(msgs ...Message) {
	c.Messages = append(c.Messages, msgs...)
}

// AppendToLast appends a revealed chunk to the last message's content.
// No-op on an empty conversation.
func (c *Conversation) AppendToLast(chunk string) {
	if last := c.Last(); last != nil {
		last.Content += chunk
	}
}

// FinalizeLast clears the loading flag on the last message, moving it to the
// done state. No-op on an empty conversation.
func (c *Conversation) FinalizeLast() {
	if last := c.Last(); last != nil {
		last.Loading = false
	}
}

// FailLast marks the last message as failed: loading cleared, error set.
// No-op on an empty conversation.
func (c *Conversation) FailLast() {
	if last := c.Last(); last != nil {
		last.Loading = false
		last.Error = true
	}
}

// Reset clears the chat ID and all messages.
func (c *Conversation) Reset() {
	c.ID = ""
	c.Messages = []Message{}
}

// Replace swaps in a wholesale new identity and message sequence.
// Used when loading a conversation's history from the Gateway.
func (c *Conversation) Replace(id string, msgs []Message) {
	c.ID = id
	c.Messages = make([]Message, len(msgs))
	copy(c.Messages, msgs)
}
