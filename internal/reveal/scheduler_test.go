// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reveal

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

// collect drains a scheduler's events, returning the chunks in order and
// the count of terminal events.
func collect(t *testing.T, s *Scheduler) ([]string, int) {
	t.Helper()

	var chunks []string
	doneCount := 0

	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-s.Events():
			if !ok {
				return chunks, doneCount
			}
			if ev.Done {
				doneCount++
			} else {
				chunks = append(chunks, ev.Chunk)
			}
		case <-timeout:
			t.Fatal("scheduler did not finish in time")
		}
	}
}

func TestReassemblesAnswer(t *testing.T) {
	answer := "The climate system is warming due to greenhouse gas emissions."

	s := New(answer, 7, time.Millisecond)
	chunks, doneCount := collect(t, s)

	if got := strings.Join(chunks, ""); got != answer {
		t.Errorf("concatenated chunks = %q, want original answer", got)
	}

	if doneCount != 1 {
		t.Errorf("done events = %d, want exactly 1", doneCount)
	}
}

func TestChunkSizes(t *testing.T) {
	answer := "abcdefghij"

	s := New(answer, 3, time.Millisecond)
	chunks, _ := collect(t, s)

	want := []string{"abc", "def", "ghi", "j"}
	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks %v, want %d", len(chunks), chunks, len(want))
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk[%d] = %q, want %q", i, chunks[i], want[i])
		}
	}
}

func TestEmptyAnswer(t *testing.T) {
	s := New("", 5, time.Millisecond)
	chunks, doneCount := collect(t, s)

	if len(chunks) != 0 {
		t.Errorf("got %d chunks for empty answer, want 0", len(chunks))
	}

	if doneCount != 1 {
		t.Errorf("done events = %d, want exactly 1", doneCount)
	}
}

func TestChunkSizeClamped(t *testing.T) {
	s := New("ab", 0, time.Millisecond)
	chunks, _ := collect(t, s)

	// chunkSize 0 clamps to 1
	if len(chunks) != 2 {
		t.Errorf("got %d chunks, want 2 with clamped size", len(chunks))
	}
}

func TestMultibyteNotSplit(t *testing.T) {
	answer := "気候変動は進行中です"

	s := New(answer, 3, time.Millisecond)
	chunks, _ := collect(t, s)

	for i, chunk := range chunks {
		if !utf8.ValidString(chunk) {
			t.Errorf("chunk[%d] = %q is not valid UTF-8", i, chunk)
		}
	}

	if got := strings.Join(chunks, ""); got != answer {
		t.Errorf("reassembled = %q, want %q", got, answer)
	}
}

func TestStopEndsEmission(t *testing.T) {
	// Slow ticks so Stop lands mid-reveal
	s := New(strings.Repeat("x", 1000), 1, 50*time.Millisecond)

	// Take one chunk then stop
	select {
	case <-s.Events():
	case <-time.After(5 * time.Second):
		t.Fatal("no first chunk")
	}

	s.Stop()

	// Channel must close without a done event
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-s.Events():
			if !ok {
				return
			}
			if ev.Done {
				t.Error("stopped scheduler emitted done")
			}
		case <-timeout:
			t.Fatal("channel not closed after Stop")
		}
	}
}

func TestStopIdempotent(t *testing.T) {
	s := New("abc", 1, time.Millisecond)
	s.Stop()
	s.Stop()
	collect(t, s)
}

func TestStopAfterFinish(t *testing.T) {
	s := New("abc", 10, time.Millisecond)
	collect(t, s)
	s.Stop()
}

func TestFreshInstancesIndependent(t *testing.T) {
	first := New("first", 2, time.Millisecond)
	second := New("second", 2, time.Millisecond)

	firstChunks, _ := collect(t, first)
	secondChunks, _ := collect(t, second)

	if strings.Join(firstChunks, "") != "first" {
		t.Error("first scheduler corrupted")
	}
	if strings.Join(secondChunks, "") != "second" {
		t.Error("second scheduler corrupted")
	}
}
