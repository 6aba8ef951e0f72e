// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reveal paces an already-complete answer string into ordered
// chunks, imitating token-by-token arrival. The Gateway answers
// synchronously; the scheduler is the only place the client fakes
// streaming. If the Gateway ever streams for real, this package's
// interface (ordered chunks plus a terminal event) is the boundary to
// swap behind.
package reveal

import (
	"sync"
	"time"
)

// DefaultChunkSize is the number of runes revealed per tick.
const DefaultChunkSize = 6

// DefaultTickInterval is the pause between chunk emissions.
const DefaultTickInterval = 50 * time.Millisecond

// =============================================================================
// EVENTS
// =============================================================================

// Event is one step of the reveal. Chunks arrive in partition order;
// exactly one Done event follows the last chunk.
type Event struct {
	// Chunk is the next contiguous piece of the answer. Empty on the
	// terminal event.
	Chunk string

	// Done is true for the terminal event only.
	Done bool
}

// =============================================================================
// SCHEDULER
// =============================================================================

// Scheduler emits one answer at a fixed cadence. Each instance is scoped
// to a single answer; create a fresh one per response.
type Scheduler struct {
	events chan Event
	stop   chan struct{}
	once   sync.Once
}

// New creates a scheduler for the given answer and starts emission in a
// background goroutine. chunkSize is in runes; values below 1 are
// clamped to 1. interval <= 0 uses DefaultTickInterval.
func New(answer string, chunkSize int, interval time.Duration) *Scheduler {
	if chunkSize < 1 {
		chunkSize = 1
	}
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	s := &Scheduler{
		events: make(chan Event),
		stop:   make(chan struct{}),
	}

	go s.run(answer, chunkSize, interval)
	return s
}

// Events returns the channel carrying chunk and terminal events. The
// channel is closed after the terminal event, or early on Stop.
func (s *Scheduler) Events() <-chan Event {
	return s.events
}

// Stop abandons the reveal. Safe to call multiple times and safe to
// call after the reveal has finished. No events are delivered after
// Stop returns and the events channel drains.
func (s *Scheduler) Stop() {
	s.once.Do(func() {
		close(s.stop)
	})
}

// run partitions the answer and emits it chunk by chunk.
// UNICODE: partitioning is rune-based so multibyte characters are
// never split across chunks.
func (s *Scheduler) run(answer string, chunkSize int, interval time.Duration) {
	defer close(s.events)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runes := []rune(answer)
	for offset := 0; offset < len(runes); offset += chunkSize {
		end := offset + chunkSize
		if end > len(runes) {
			end = len(runes)
		}

		select {
		case <-ticker.C:
		case <-s.stop:
			return
		}

		select {
		case s.events <- Event{Chunk: string(runes[offset:end])}:
		case <-s.stop:
			return
		}
	}

	// Empty answers skip the loop entirely but still signal completion.
	select {
	case s.events <- Event{Done: true}:
	case <-s.stop:
	}
}
