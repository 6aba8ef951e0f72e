// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for climchat.
package components

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// SuppressThreshold is how many lines above the bottom the user must
// scroll before auto-scroll stops following new content, and how close
// they must return before it resumes.
const SuppressThreshold = 10

// =============================================================================
// SCROLL CONTROLLER
// =============================================================================

// ScrollController wraps a viewport and decides, on every content
// change, whether to follow the latest content or preserve the reading
// position.
//
// Suppression only ever changes while an answer is revealing (active).
// Outside a reveal the user scrolls freely and new content (a fresh
// submission) snaps to the bottom.
type ScrollController struct {
	viewport viewport.Model
	ready    bool

	// active mirrors the loading state of the conversation
	active bool

	// suppressed disables auto-scroll while the user reads older content
	suppressed bool
}

// NewScrollController creates a controller with a default-sized viewport.
func NewScrollController() *ScrollController {
	return &ScrollController{
		viewport: viewport.New(80, 20),
	}
}

// SetSize updates the viewport dimensions.
func (s *ScrollController) SetSize(width, height int) {
	s.viewport.Width = width
	s.viewport.Height = height
	s.ready = true
}

// SetActive updates whether a reveal is in progress. Deactivating
// clears suppression so the next exchange starts following again.
func (s *ScrollController) SetActive(active bool) {
	if s.active && !active {
		s.suppressed = false
	}
	s.active = active
}

// SetContent replaces the viewport content and applies the positioning
// decision: follow the bottom unless the user is reading scrolled-up
// content during an active reveal.
func (s *ScrollController) SetContent(content string) {
	s.viewport.SetContent(content)

	if !s.suppressed {
		s.viewport.GotoBottom()
	}
}

// Update handles scroll key/mouse input through the viewport, then
// re-evaluates suppression from the resulting position.
func (s *ScrollController) Update(msg tea.Msg) tea.Cmd {
	before := s.viewport.YOffset

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)

	if s.viewport.YOffset != before {
		s.onUserScroll()
	}
	return cmd
}

// onUserScroll applies the threshold rule. Scrolling more than
// SuppressThreshold lines above the bottom suppresses auto-scroll;
// coming back within the threshold clears it.
func (s *ScrollController) onUserScroll() {
	if !s.active {
		return
	}

	if s.distanceFromBottom() > SuppressThreshold {
		s.suppressed = true
	} else {
		s.suppressed = false
	}
}

// distanceFromBottom returns how many lines the view sits above the
// lowest scroll position.
func (s *ScrollController) distanceFromBottom() int {
	maxOffset := s.viewport.TotalLineCount() - s.viewport.Height
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset - s.viewport.YOffset
}

// Suppressed reports whether auto-scroll is currently disabled.
func (s *ScrollController) Suppressed() bool {
	return s.suppressed
}

// IsOverflowing reports whether content extends below the current view.
// Drives the jump-to-latest indicator.
func (s *ScrollController) IsOverflowing() bool {
	if s.viewport.TotalLineCount() <= s.viewport.Height {
		return false
	}
	return !s.viewport.AtBottom()
}

// JumpToBottom scrolls to the latest content. Landing at the bottom
// satisfies the proximity rule, which clears suppression.
func (s *ScrollController) JumpToBottom() {
	s.viewport.GotoBottom()
	s.onUserScroll()
}

// ScrollUp moves the view up by n lines, applying the suppression rule.
func (s *ScrollController) ScrollUp(n int) {
	s.viewport.LineUp(n)
	s.onUserScroll()
}

// ScrollDown moves the view down by n lines, applying the suppression
// rule.
func (s *ScrollController) ScrollDown(n int) {
	s.viewport.LineDown(n)
	s.onUserScroll()
}

// View renders the viewport.
func (s *ScrollController) View() string {
	return s.viewport.View()
}

// Height returns the viewport height in lines.
func (s *ScrollController) Height() int {
	return s.viewport.Height
}
