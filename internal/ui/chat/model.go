// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the message thread view: the scrollable
// conversation, the waiting indicator, and the input line.
package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/aldenwk/climchat/internal/model"
	"github.com/aldenwk/climchat/internal/ui/components"
	"github.com/aldenwk/climchat/internal/ui/styles"
)

const inputCharLimit = 2000

// Model is the chat view.
type Model struct {
	theme  *styles.Theme
	input  textinput.Model
	spin   spinner.Model
	scroll *components.ScrollController

	renderer *glamour.TermRenderer
	markdown bool

	messages []model.Message
	loading  bool

	width  int
	height int
}

// New creates the chat view.
func New(theme *styles.Theme, markdown bool) *Model {
	input := textinput.New()
	input.Placeholder = "Ask about climate change..."
	input.CharLimit = inputCharLimit
	input.Prompt = "> "
	input.PromptStyle = theme.InputPrompt
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = theme.LoadingText

	return &Model{
		theme:    theme,
		input:    input,
		spin:     spin,
		scroll:   components.NewScrollController(),
		markdown: markdown,
	}
}

// Init starts the spinner.
func (m *Model) Init() tea.Cmd {
	return m.spin.Tick
}

// SetSize lays out the view. The input and its border take the bottom
// rows; the rest is the message area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	inputHeight := 2
	m.scroll.SetSize(width, height-inputHeight)
	m.input.Width = width - 4

	if m.markdown {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(contentWidth(width)),
		)
		if err == nil {
			m.renderer = renderer
		}
	}

	m.refresh()
}

// contentWidth leaves room for the bubble border and padding.
func contentWidth(width int) int {
	w := width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// SetConversation installs the conversation state to display.
func (m *Model) SetConversation(messages []model.Message, loading bool) {
	m.messages = messages
	m.loading = loading
	m.scroll.SetActive(loading)
	m.refresh()
}

// refresh re-renders the thread into the scroll controller, which
// decides whether to follow the bottom.
func (m *Model) refresh() {
	m.scroll.SetContent(m.renderThread())
}

// InputValue returns the current input text.
func (m *Model) InputValue() string {
	return m.input.Value()
}

// ClearInput empties the input line.
func (m *Model) ClearInput() {
	m.input.SetValue("")
}

// IsOverflowing reports whether unread content sits below the fold.
func (m *Model) IsOverflowing() bool {
	return m.scroll.IsOverflowing()
}

// JumpToBottom scrolls the thread to the latest content.
func (m *Model) JumpToBottom() {
	m.scroll.JumpToBottom()
}

// Update handles input editing, scrolling, and spinner ticks.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.loading {
			// Re-render so the spinner frame advances in the thread
			m.refresh()
		}
		cmds = append(cmds, cmd)
		return tea.Batch(cmds...)

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "down", "pgup", "pgdown", "ctrl+u", "ctrl+d":
			return m.scroll.Update(msg)
		case "end":
			m.JumpToBottom()
			return nil
		}

	case tea.MouseMsg:
		return m.scroll.Update(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

// View renders the thread, the jump indicator when content extends
// below the view, and the input line.
func (m *Model) View() string {
	thread := m.scroll.View()

	if m.scroll.IsOverflowing() {
		indicator := m.theme.JumpIndicator.Render("▼ new content below (End to jump)")
		thread = overlayBottomLine(thread, indicator, m.width)
	}

	inputLine := m.theme.InputContainer.Width(m.width - 2).Render(m.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, thread, inputLine)
}
