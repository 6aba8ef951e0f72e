// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aldenwk/climchat/internal/config"
	"github.com/aldenwk/climchat/internal/controller"
	"github.com/aldenwk/climchat/internal/ui/chat"
	"github.com/aldenwk/climchat/internal/ui/sidebar"
	"github.com/aldenwk/climchat/internal/ui/styles"
)

const sidebarWidth = 30

// focusArea tracks which pane owns keyboard input.
type focusArea int

const (
	focusChat focusArea = iota
	focusSidebar
)

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// App is the root model composing the sidebar and the chat view around
// the conversation controller.
type App struct {
	cfg   *config.Config
	theme *styles.Theme

	ctrl    *controller.Controller
	chat    *chat.Model
	sidebar *sidebar.Model

	focus       focusArea
	showSidebar bool

	width  int
	height int
	ready  bool
}

func newApp(cfg *config.Config, theme *styles.Theme, ctrl *controller.Controller) *App {
	return &App{
		cfg:         cfg,
		theme:       theme,
		ctrl:        ctrl,
		chat:        chat.New(theme, cfg.UI.MarkdownRendering),
		sidebar:     sidebar.New(theme),
		showSidebar: cfg.UI.ShowSidebar,
	}
}

// Init starts the spinner and fetches the sidebar list.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.chat.Init(), a.ctrl.RefreshConversations())
}

// Update routes messages between the controller and the views.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		a.syncChat()
		return a, nil

	// Controller round trips
	case controller.AnswerMsg:
		cmd := a.ctrl.HandleAnswer(msg)
		a.syncChat()
		return a, cmd

	case controller.RevealEventMsg:
		cmd := a.ctrl.HandleRevealEvent(msg)
		a.syncChat()
		return a, cmd

	case controller.HistoryLoadedMsg:
		cmd := a.ctrl.HandleHistoryLoaded(msg)
		a.syncChat()
		return a, cmd

	case controller.RenamedMsg:
		return a, a.ctrl.HandleRenamed(msg)

	case controller.ConversationsMsg:
		if msg.Err == nil {
			items := make([]sidebar.Item, 0, len(msg.Items))
			for _, it := range msg.Items {
				items = append(items, sidebar.Item{ID: it.ID, Name: it.Name})
			}
			a.sidebar.SetItems(items)
		}
		return a, nil

	// Sidebar actions
	case sidebar.NewChatMsg:
		cmd := a.ctrl.StartNewChat()
		a.syncChat()
		a.focus = focusChat
		return a, cmd

	case sidebar.OpenConversationMsg:
		a.focus = focusChat
		return a, a.ctrl.LoadConversation(msg.ID)

	case sidebar.RenameSubmittedMsg:
		return a, a.ctrl.RenameConversation(msg.ID, msg.Name)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Everything else (spinner ticks, mouse) goes to the chat view
	return a, a.chat.Update(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The rename editor owns input while open
	if a.focus == focusSidebar && a.sidebar.ActiveRename() {
		return a, a.sidebar.Update(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "tab":
		if a.showSidebar {
			if a.focus == focusChat {
				a.focus = focusSidebar
			} else {
				a.focus = focusChat
			}
		}
		return a, nil

	case "ctrl+b":
		a.showSidebar = !a.showSidebar
		if !a.showSidebar {
			a.focus = focusChat
		}
		a.layout()
		return a, nil

	case "ctrl+n":
		cmd := a.ctrl.StartNewChat()
		a.syncChat()
		return a, cmd

	case "enter":
		if a.focus == focusChat {
			cmd := a.ctrl.SubmitMessage(a.chat.InputValue())
			if cmd != nil {
				a.chat.ClearInput()
				a.syncChat()
			}
			return a, cmd
		}
	}

	if a.focus == focusSidebar {
		return a, a.sidebar.Update(msg)
	}
	return a, a.chat.Update(msg)
}

// layout distributes the window between the panes.
func (a *App) layout() {
	if a.width == 0 || a.height == 0 {
		return
	}
	a.ready = true

	contentHeight := a.height - 1 // header line

	chatWidth := a.width
	if a.showSidebar {
		chatWidth -= sidebarWidth
		a.sidebar.SetSize(sidebarWidth, contentHeight)
	}
	a.chat.SetSize(chatWidth, contentHeight)
}

// syncChat pushes the controller's state into the chat view.
func (a *App) syncChat() {
	a.chat.SetConversation(a.ctrl.Conversation().History(), a.ctrl.IsLoading())
}

// View renders the full application.
func (a *App) View() string {
	if !a.ready {
		return "starting..."
	}

	header := a.theme.HeaderTitle.Render("climchat") +
		a.theme.StatusBar.Render("  climate change assistant")

	body := a.chat.View()
	if a.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, a.sidebar.View(), body)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}
