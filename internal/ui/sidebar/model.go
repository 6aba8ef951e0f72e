// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sidebar provides the conversation list: a New Chat entry, the
// saved conversations, and inline rename.
package sidebar

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aldenwk/climchat/internal/ui/styles"
	"github.com/aldenwk/climchat/internal/util"
)

// Item is one conversation row.
type Item struct {
	ID   string
	Name string
}

// =============================================================================
// SIDEBAR MESSAGES
// =============================================================================

// NewChatMsg is emitted when the New Chat entry is chosen.
type NewChatMsg struct{}

// OpenConversationMsg is emitted when a conversation is chosen.
type OpenConversationMsg struct {
	ID string
}

// RenameSubmittedMsg is emitted when an inline rename is confirmed.
type RenameSubmittedMsg struct {
	ID   string
	Name string
}

// =============================================================================
// SIDEBAR MODEL
// =============================================================================

// Model is the sidebar view. Cursor position 0 is the New Chat entry;
// conversations follow.
type Model struct {
	theme *styles.Theme

	items  []Item
	cursor int

	renaming    bool
	renameID    string
	renameInput textinput.Model

	width  int
	height int
}

// New creates the sidebar.
func New(theme *styles.Theme) *Model {
	input := textinput.New()
	input.CharLimit = 120
	input.Prompt = ""

	return &Model{
		theme:       theme,
		renameInput: input,
	}
}

// SetSize updates the sidebar dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.renameInput.Width = width - 4
}

// SetItems replaces the conversation list, keeping the cursor in range.
func (m *Model) SetItems(items []Item) {
	m.items = items
	if m.cursor > len(items) {
		m.cursor = len(items)
	}
}

// ActiveRename reports whether the inline rename editor is open. While
// it is, the sidebar owns keyboard input.
func (m *Model) ActiveRename() bool {
	return m.renaming
}

func (m *Model) itemByID(id string) (Item, bool) {
	for _, item := range m.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Update handles navigation, selection, and inline rename.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if m.renaming {
		return m.updateRename(keyMsg)
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items) {
			m.cursor++
		}
	case "enter":
		if m.cursor == 0 {
			return func() tea.Msg { return NewChatMsg{} }
		}
		item := m.items[m.cursor-1]
		return func() tea.Msg { return OpenConversationMsg{ID: item.ID} }
	case "r":
		if m.cursor > 0 {
			m.renaming = true
			m.renameID = m.items[m.cursor-1].ID
			m.renameInput.SetValue(m.items[m.cursor-1].Name)
			m.renameInput.Focus()
		}
	}
	return nil
}

// updateRename drives the inline rename editor.
func (m *Model) updateRename(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.renaming = false
		m.renameInput.Blur()

		// The list can change under the editor if a refresh lands
		// mid-rename; the target is tracked by ID, and a vanished
		// target cancels the rename.
		item, ok := m.itemByID(m.renameID)
		if !ok {
			return nil
		}
		name := m.renameInput.Value()
		if name == "" || name == item.Name {
			return nil
		}
		return func() tea.Msg { return RenameSubmittedMsg{ID: item.ID, Name: name} }
	case "esc":
		m.renaming = false
		m.renameInput.Blur()
		return nil
	}

	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return cmd
}

// View renders the sidebar column.
func (m *Model) View() string {
	rows := make([]string, 0, len(m.items)+2)
	rows = append(rows, m.theme.SidebarTitle.Render("Conversations"))

	rows = append(rows, m.renderRow(0, "+ New Chat"))

	maxNameWidth := m.width - 4
	for i, item := range m.items {
		if m.renaming && item.ID == m.renameID {
			rows = append(rows, m.renameInput.View())
			continue
		}

		name := item.Name
		if name == "" {
			name = item.ID
		}
		rows = append(rows, m.renderRow(i+1, util.TruncateWidth(name, maxNameWidth)))
	}

	return m.theme.Sidebar.
		Width(m.width).
		Height(m.height).
		Render(joinRows(rows))
}

func (m *Model) renderRow(pos int, label string) string {
	if pos == m.cursor {
		return m.theme.SidebarSelected.Render(label)
	}
	return m.theme.SidebarItem.Render(label)
}

func joinRows(rows []string) string {
	out := ""
	for i, r := range rows {
		if i > 0 {
			out += "\n"
		}
		out += r
	}
	return out
}
