// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aldenwk/climchat/internal/model"
)

const waitingCopy = "Your personal agent is trying hard to get the best answer for you."

const errorCopy = "⚠ Error generating the response"

var welcomeLines = []string{
	"👋 Welcome!",
	"I am a chatbot focusing on the field of Climate Changes.",
	"Ask me anything about this topic and I will tell you the answer.",
}

// renderThread renders the full conversation as viewport content.
func (m *Model) renderThread() string {
	if len(m.messages) == 0 {
		return m.theme.WelcomeText.Render(strings.Join(welcomeLines, "\n"))
	}

	blocks := make([]string, 0, len(m.messages))
	for i := range m.messages {
		blocks = append(blocks, m.renderMessage(&m.messages[i]))
	}
	return strings.Join(blocks, "\n\n")
}

// renderMessage renders one message bubble.
func (m *Model) renderMessage(msg *model.Message) string {
	switch msg.Role {
	case model.RoleUser:
		return m.renderUser(msg)
	default:
		return m.renderAssistant(msg)
	}
}

func (m *Model) renderUser(msg *model.Message) string {
	label := m.theme.UserLabel.Render(msg.Role.DisplayName())
	body := m.theme.UserBubble.Width(contentWidth(m.width)).Render(msg.Content)
	return lipgloss.JoinVertical(lipgloss.Left, label, body)
}

func (m *Model) renderAssistant(msg *model.Message) string {
	label := m.theme.AssistantLabel.Render(msg.Role.DisplayName())

	var body string
	switch {
	case msg.Loading && msg.IsEmpty():
		body = m.spin.View() + " " + m.theme.LoadingText.Render(waitingCopy)
	default:
		body = m.renderAnswer(msg.Content)
	}

	bubble := m.theme.AssistantBubble.Width(contentWidth(m.width)).Render(body)

	if msg.Error {
		errLine := m.theme.ErrorText.Render(errorCopy)
		if msg.IsEmpty() {
			bubble = errLine
		} else {
			bubble = lipgloss.JoinVertical(lipgloss.Left, bubble, errLine)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, label, bubble)
}

// renderAnswer renders assistant content, as markdown when enabled.
func (m *Model) renderAnswer(content string) string {
	if m.renderer == nil {
		return content
	}

	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

// overlayBottomLine replaces the last line of block with an overlay
// line, used for the jump-to-latest indicator.
func overlayBottomLine(block, overlay string, width int) string {
	lines := strings.Split(block, "\n")
	if len(lines) == 0 {
		return overlay
	}
	lines[len(lines)-1] = lipgloss.PlaceHorizontal(width, lipgloss.Center, overlay)
	return strings.Join(lines, "\n")
}
