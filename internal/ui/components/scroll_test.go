// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
)

// tallContent builds content with n numbered lines.
func tallContent(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "line"
	}
	return strings.Join(lines, "\n")
}

func newTestScroller(contentLines int) *ScrollController {
	s := NewScrollController()
	s.SetSize(80, 10)
	s.SetContent(tallContent(contentLines))
	return s
}

func TestContentGrowthFollowsBottom(t *testing.T) {
	s := newTestScroller(50)

	if s.Suppressed() {
		t.Fatal("fresh controller should not be suppressed")
	}

	s.SetContent(tallContent(60))

	if s.IsOverflowing() {
		t.Error("view should sit at the bottom after growth")
	}
}

func TestScrollUpBeyondThresholdSuppresses(t *testing.T) {
	s := newTestScroller(50)
	s.SetActive(true)

	s.ScrollUp(SuppressThreshold + 5)

	if !s.Suppressed() {
		t.Error("scrolling past the threshold should suppress auto-scroll")
	}
}

func TestSmallScrollDoesNotSuppress(t *testing.T) {
	s := newTestScroller(50)
	s.SetActive(true)

	s.ScrollUp(SuppressThreshold - 1)

	if s.Suppressed() {
		t.Error("scrolling within the threshold should not suppress")
	}
}

func TestSuppressedContentGrowthStaysPut(t *testing.T) {
	s := newTestScroller(50)
	s.SetActive(true)
	s.ScrollUp(SuppressThreshold + 10)

	offsetBefore := s.viewport.YOffset
	s.SetContent(tallContent(80))

	if s.viewport.YOffset != offsetBefore {
		t.Errorf("YOffset = %d, want unchanged %d while suppressed", s.viewport.YOffset, offsetBefore)
	}
	if !s.IsOverflowing() {
		t.Error("new content below the fold should report overflowing")
	}
}

func TestReturnToBottomClearsSuppression(t *testing.T) {
	s := newTestScroller(50)
	s.SetActive(true)
	s.ScrollUp(SuppressThreshold + 10)

	if !s.Suppressed() {
		t.Fatal("precondition: suppressed")
	}

	s.ScrollDown(1000)

	if s.Suppressed() {
		t.Error("returning to the bottom should clear suppression")
	}

	// Auto-scroll resumes on next growth
	s.SetContent(tallContent(70))
	if s.IsOverflowing() {
		t.Error("growth after clearing should follow the bottom")
	}
}

func TestInactiveScrollNeverSuppresses(t *testing.T) {
	s := newTestScroller(50)
	s.SetActive(false)

	s.ScrollUp(SuppressThreshold + 20)

	if s.Suppressed() {
		t.Error("suppression tracking is gated on an active reveal")
	}
}

func TestDeactivateClearsSuppression(t *testing.T) {
	s := newTestScroller(50)
	s.SetActive(true)
	s.ScrollUp(SuppressThreshold + 10)

	s.SetActive(false)

	if s.Suppressed() {
		t.Error("ending the reveal should reset suppression")
	}
}

func TestJumpToBottom(t *testing.T) {
	s := newTestScroller(50)
	s.SetActive(true)
	s.ScrollUp(SuppressThreshold + 10)

	s.JumpToBottom()

	if s.IsOverflowing() {
		t.Error("jump should land at the bottom")
	}
	if s.Suppressed() {
		t.Error("landing at the bottom clears suppression via the proximity rule")
	}
}

func TestShortContentNeverOverflows(t *testing.T) {
	s := newTestScroller(3)

	if s.IsOverflowing() {
		t.Error("content shorter than the viewport cannot overflow")
	}
}
