// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// A Conversation owns the active chat's message sequence and Gateway-assigned
// chat ID. Messages are plain values; the assistant message lifecycle is
// pending (loading, empty content) -> streaming (loading, partial content) ->
// done (loading cleared), or pending -> failed (error set) when the send
// fails. There are no transitions out of done or failed.
package model
