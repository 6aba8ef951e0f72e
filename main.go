// climchat - A terminal client for the climate-change QA assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aldenwk/climchat/internal/api"
	"github.com/aldenwk/climchat/internal/cli"
	"github.com/aldenwk/climchat/internal/config"
	"github.com/aldenwk/climchat/internal/controller"
	"github.com/aldenwk/climchat/internal/snapshot"
	"github.com/aldenwk/climchat/internal/storage"
	"github.com/aldenwk/climchat/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "climchat: %v\n", err)
		os.Exit(1)
	}

	switch cmd {
	case cli.CmdAsk:
		os.Exit(cli.RunAsk(cfg, args))
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintHelp()
	default:
		runTUI(cfg)
	}
}

// runTUI starts the interactive interface.
func runTUI(cfg *config.Config) {
	logger := newDebugLogger(cfg)

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:      cfg.Gateway.URL,
		Timeout:      cfg.Timeout(),
		QueryTimeout: cfg.QueryTimeout(),
	})

	store, err := snapshot.NewStoreWithDir(cfg.SessionDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "climchat: cannot prepare state directory: %v\n", err)
		os.Exit(1)
	}

	names, err := storage.OpenNameCache(cfg.NameCachePath())
	if err != nil {
		// The cache is a nicety; run without it
		logger.Printf("name cache unavailable: %v", err)
		names = nil
	}
	if names != nil {
		defer names.Close()
	}

	ctrl, err := controller.New(client, store, names, controller.Options{
		ChunkSize:    cfg.Reveal.ChunkSize,
		TickInterval: cfg.TickInterval(),
		Logger:       logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "climchat: cannot restore session: %v\n", err)
		os.Exit(1)
	}

	theme := styles.NewThemeForBackground(cfg.UI.Theme == "dark")

	app := newApp(cfg, theme, ctrl)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "climchat: %v\n", err)
		os.Exit(1)
	}
}

// newDebugLogger writes to $CLIMCHAT_DEBUG_LOG when set, otherwise to a
// debug file under the state dir. Logged-only failures (history fetch,
// rename, snapshot writes) end up here.
func newDebugLogger(cfg *config.Config) *log.Logger {
	path := os.Getenv("CLIMCHAT_DEBUG_LOG")
	if path == "" {
		path = filepath.Join(cfg.StateDir, "debug.log")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stderr, "climchat: ", log.LstdFlags)
	}
	return log.New(f, "", log.LstdFlags)
}
