// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package controller owns the canonical conversation state. It mediates
// between the Gateway client, the reveal scheduler, the session
// snapshot, and the UI event loop.
//
// All mutating methods run on the bubbletea update loop; the only
// background work is Gateway calls and the reveal goroutine, both of
// which report back as messages. That makes the message list
// single-writer with no locking.
package controller

import (
	"context"
	"io"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aldenwk/climchat/internal/api"
	"github.com/aldenwk/climchat/internal/model"
	"github.com/aldenwk/climchat/internal/reveal"
	"github.com/aldenwk/climchat/internal/snapshot"
	"github.com/aldenwk/climchat/internal/storage"
)

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller is the conversation state machine.
type Controller struct {
	client *api.Client
	store  *snapshot.Store
	names  *storage.NameCache
	logger *log.Logger

	conv *model.Conversation

	// Reveal pacing
	chunkSize    int
	tickInterval time.Duration

	// gen stamps every in-flight command. Starting a new chat or loading
	// another conversation bumps it, so answers and reveal events that
	// belong to an abandoned conversation are discarded on arrival.
	gen   uint64
	sched *reveal.Scheduler
}

// Options configures a Controller.
type Options struct {
	ChunkSize    int
	TickInterval time.Duration
	// Logger receives logged-only failures (history fetch, rename,
	// snapshot writes). Nil discards.
	Logger *log.Logger
}

// New creates a controller and restores the persisted session. A
// restored trailing placeholder that was mid-reveal when the previous
// run ended is downgraded to failed; its answer is gone.
func New(client *api.Client, store *snapshot.Store, names *storage.NameCache, opts Options) (*Controller, error) {
	if opts.ChunkSize < 1 {
		opts.ChunkSize = reveal.DefaultChunkSize
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = reveal.DefaultTickInterval
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}

	c := &Controller{
		client:       client,
		store:        store,
		names:        names,
		logger:       opts.Logger,
		conv:         model.NewConversation(),
		chunkSize:    opts.ChunkSize,
		tickInterval: opts.TickInterval,
	}

	session, err := store.Load()
	if err != nil {
		return nil, err
	}
	c.conv.Replace(session.ChatID, session.Messages)

	if c.conv.IsLoading() {
		c.conv.FailLast()
		c.save()
	}

	return c, nil
}

// Conversation returns the live conversation state.
func (c *Controller) Conversation() *model.Conversation {
	return c.conv
}

// ChatID returns the active chat's Gateway ID, or "" before first send.
func (c *Controller) ChatID() string {
	return c.conv.ID
}

// IsLoading reports whether an answer is pending or revealing.
func (c *Controller) IsLoading() bool {
	return c.conv.IsLoading()
}

// =============================================================================
// OPERATIONS
// =============================================================================

// StartNewChat abandons the active conversation entirely: the reveal is
// stopped, state and snapshot are cleared, and the sidebar gets a
// refresh. A new chat ID is not requested until the first send.
func (c *Controller) StartNewChat() tea.Cmd {
	c.abandonReveal()

	c.conv.Reset()
	if err := c.store.Clear(); err != nil {
		c.logger.Printf("snapshot clear failed: %v", err)
	}

	return c.RefreshConversations()
}

// SubmitMessage validates and sends user input. Empty input and input
// during an active load are silently ignored. Returns the command that
// carries the exchange to the Gateway, or nil for a no-op.
func (c *Controller) SubmitMessage(text string) tea.Cmd {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if c.conv.IsLoading() {
		return nil
	}

	c.conv.Append(model.NewUserMessage(trimmed))
	c.conv.Append(model.NewAssistantPlaceholder())
	c.save()

	return c.sendCmd(c.gen, c.conv.ID, trimmed)
}

// sendCmd creates the chat if needed, then queries the Gateway. Runs in
// a command goroutine; the result comes back as an AnswerMsg.
func (c *Controller) sendCmd(gen uint64, chatID, text string) tea.Cmd {
	client := c.client
	queryTimeout := client.GetConfig().QueryTimeout

	return func() tea.Msg {
		ctx := context.Background()

		if chatID == "" {
			created, err := client.CreateChat(ctx)
			if err != nil {
				return AnswerMsg{Gen: gen, Err: err}
			}
			chatID = created.ID
		}

		ctx, cancel := context.WithTimeout(ctx, queryTimeout)
		defer cancel()

		resp, err := client.SendMessage(ctx, chatID, text)
		if err != nil {
			return AnswerMsg{Gen: gen, ChatID: chatID, Err: err}
		}
		return AnswerMsg{Gen: gen, ChatID: chatID, Answer: resp.Answer}
	}
}

// HandleAnswer applies the Gateway's response. On failure the
// placeholder becomes a failed message; on success a fresh reveal
// scheduler starts pacing the answer out.
func (c *Controller) HandleAnswer(msg AnswerMsg) tea.Cmd {
	if msg.Gen != c.gen {
		return nil
	}

	if msg.ChatID != "" && c.conv.ID == "" {
		c.conv.ID = msg.ChatID
	}

	if msg.Err != nil {
		c.logger.Printf("send failed: %v", msg.Err)
		c.conv.FailLast()
		c.save()
		return nil
	}

	c.sched = reveal.New(msg.Answer, c.chunkSize, c.tickInterval)
	return c.awaitReveal(c.gen, c.sched)
}

// awaitReveal blocks on the scheduler's channel for the next event and
// re-feeds it into the update loop.
func (c *Controller) awaitReveal(gen uint64, sched *reveal.Scheduler) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-sched.Events()
		if !ok {
			return RevealEventMsg{Gen: gen, Closed: true}
		}
		return RevealEventMsg{Gen: gen, Event: ev}
	}
}

// HandleRevealEvent applies one reveal step. Chunks append to the
// placeholder and rewrite the snapshot; the terminal event finalizes
// the message with a last write. Returns the re-subscription command
// while the reveal is still running.
func (c *Controller) HandleRevealEvent(msg RevealEventMsg) tea.Cmd {
	if msg.Gen != c.gen || c.sched == nil {
		return nil
	}

	if msg.Closed {
		c.sched = nil
		return nil
	}

	if msg.Event.Done {
		c.conv.FinalizeLast()
		c.save()
		c.sched = nil
		return nil
	}

	c.conv.AppendToLast(msg.Event.Chunk)
	c.save()
	return c.awaitReveal(msg.Gen, c.sched)
}

// LoadConversation fetches a conversation's history from the Gateway.
// The active reveal, if any, is abandoned immediately; an in-flight
// placeholder orphaned by the abandonment is marked failed so the
// loading guard cannot wedge if the fetch never lands. State is only
// replaced when the fetch succeeds.
func (c *Controller) LoadConversation(id string) tea.Cmd {
	c.abandonReveal()
	if c.conv.IsLoading() {
		c.conv.FailLast()
		c.save()
	}

	gen := c.gen
	client := c.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), client.GetConfig().Timeout)
		defer cancel()

		history, err := client.GetMessageHistory(ctx, id)
		if err != nil {
			return HistoryLoadedMsg{Gen: gen, ChatID: id, Err: err}
		}

		messages := make([]model.Message, 0, len(history))
		for _, h := range history {
			messages = append(messages, model.FromHistory(h.Role, h.Content))
		}
		return HistoryLoadedMsg{Gen: gen, ChatID: id, Messages: messages}
	}
}

// HandleHistoryLoaded installs a fetched history. Results from a
// superseded generation are dropped; fetch failures are logged and
// leave the prior state intact.
func (c *Controller) HandleHistoryLoaded(msg HistoryLoadedMsg) tea.Cmd {
	if msg.Gen != c.gen {
		return nil
	}
	if msg.Err != nil {
		c.logger.Printf("history fetch failed for %s: %v", msg.ChatID, msg.Err)
		return nil
	}

	c.conv.Replace(msg.ChatID, msg.Messages)
	c.save()
	return nil
}

// RenameConversation sends a rename to the Gateway.
func (c *Controller) RenameConversation(id, newName string) tea.Cmd {
	client := c.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), client.GetConfig().Timeout)
		defer cancel()

		resp, err := client.RenameChat(ctx, id, newName)
		if err != nil {
			return RenamedMsg{ChatID: id, Err: err}
		}
		return RenamedMsg{ChatID: id, Name: resp.ChatName}
	}
}

// HandleRenamed records a successful rename in the local name cache so
// the sidebar reflects it before the Gateway's list catches up. Failed
// renames are logged; the displayed name reverts.
func (c *Controller) HandleRenamed(msg RenamedMsg) tea.Cmd {
	if msg.Err != nil {
		c.logger.Printf("rename failed for %s: %v", msg.ChatID, msg.Err)
		return nil
	}

	if c.names != nil {
		if err := c.names.Set(msg.ChatID, msg.Name); err != nil {
			c.logger.Printf("name cache write failed: %v", err)
		}
	}
	return c.RefreshConversations()
}

// RefreshConversations fetches the conversation list and applies local
// name overrides.
func (c *Controller) RefreshConversations() tea.Cmd {
	client := c.client
	names := c.names

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), client.GetConfig().Timeout)
		defer cancel()

		summaries, err := client.ListConversations(ctx)
		if err != nil {
			return ConversationsMsg{Err: err}
		}

		var overrides map[string]string
		if names != nil {
			overrides, _ = names.All()
		}

		items := make([]ConversationItem, 0, len(summaries))
		for _, s := range summaries {
			name := s.ChatName
			if override, ok := overrides[s.ID]; ok && override != "" {
				name = override
			}
			items = append(items, ConversationItem{ID: s.ID, Name: name})
		}
		return ConversationsMsg{Items: items}
	}
}

// =============================================================================
// INTERNAL
// =============================================================================

// abandonReveal stops the active scheduler and bumps the generation so
// in-flight answers and reveal events are dropped on arrival.
func (c *Controller) abandonReveal() {
	if c.sched != nil {
		c.sched.Stop()
		c.sched = nil
	}
	c.gen++
}

// save rewrites the session snapshot. Write failures do not interrupt
// the conversation.
func (c *Controller) save() {
	if err := c.store.Save(c.conv.ID, c.conv.History()); err != nil {
		c.logger.Printf("snapshot write failed: %v", err)
	}
}
