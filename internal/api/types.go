// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

// =============================================================================
// WIRE TYPES
// =============================================================================

// CreateChatResponse is returned by POST /api/v1/chats.
type CreateChatResponse struct {
	ID string `json:"id"`
}

// QueryRequest is the body of POST /api/v1/chats/{id}/query.
type QueryRequest struct {
	Text string `json:"text"`
}

// SourceRef is a citation attached to an answer. The Gateway currently
// returns no sources; the field is reserved.
type SourceRef struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// QueryResponse is the synchronous answer to a query. The full answer
// arrives in one response; pacing happens client-side.
type QueryResponse struct {
	Answer  string      `json:"answer"`
	Sources []SourceRef `json:"sources,omitempty"`
}

// ConversationSummary is one entry of GET /api/v1/conversations.
type ConversationSummary struct {
	ID       string `json:"id"`
	ChatName string `json:"chat_name"`
}

// HistoryMessage is one entry of GET /api/v1/chats/{id}/messages.
type HistoryMessage struct {
	Role    string      `json:"role"`
	Content string      `json:"content"`
	Sources []SourceRef `json:"sources,omitempty"`
}

// RenameResponse is returned by PUT /api/v1/chats/{id}/changename.
type RenameResponse struct {
	ChatName string `json:"chat_name"`
}
