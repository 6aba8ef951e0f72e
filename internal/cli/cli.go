// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for climchat.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdVersion
	CmdHelp
)

// Parse determines the command and its remaining arguments.
func Parse() (Command, []string) {
	args := os.Args[1:]
	if len(args) == 0 {
		return CmdTUI, nil
	}

	cmd := strings.ToLower(args[0])
	remaining := args[1:]

	switch cmd {
	case "tui":
		return CmdTUI, remaining
	case "ask":
		return CmdAsk, remaining
	case "version", "--version", "-v":
		return CmdVersion, nil
	case "help", "--help", "-h":
		return CmdHelp, nil
	default:
		// Unrecognized words are treated as a question
		return CmdAsk, args
	}
}

// PrintVersion writes version information to stdout.
func PrintVersion() {
	fmt.Printf("climchat %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}

// PrintHelp writes usage information to stdout.
func PrintHelp() {
	fmt.Println(`climchat - terminal client for the climate-change assistant

Usage:
  climchat                 Start the interactive TUI
  climchat ask <question>  Ask a single question and print the answer
  climchat version         Show version information

Ask flags:
  --plain, -p              Skip markdown rendering

Environment:
  CLIMCHAT_GATEWAY_URL     Gateway base URL (default http://127.0.0.1:8000)
  CLIMCHAT_THEME           UI theme: dark or light
  CLIMCHAT_STATE_DIR       Session state directory (default ~/.climchat)

Keys (TUI):
  enter                    Send message / open conversation
  tab                      Switch between sidebar and chat
  r                        Rename the selected conversation
  end                      Jump to latest content
  ctrl+n                   Start a new chat
  ctrl+c                   Quit`)
}
