// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot query command.
//
// Command: ask [question]
// Short:   Ask a single question and print the answer
//
// Examples:
//   climchat ask "How much has the sea level risen since 1900?"
//   climchat ask --plain "What is the greenhouse effect?" > answer.txt
//
// The answer prints in full; the TUI's paced reveal does not apply here.

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aldenwk/climchat/internal/api"
	"github.com/aldenwk/climchat/internal/config"
)

// RunAsk sends a single question to the Gateway and prints the answer.
// Markdown is rendered only when stdout is a TTY and rendering is not
// disabled with --plain.
func RunAsk(cfg *config.Config, args []string) int {
	plain := false
	var parts []string
	for _, arg := range args {
		if arg == "--plain" || arg == "-p" {
			plain = true
			continue
		}
		parts = append(parts, arg)
	}

	question := strings.TrimSpace(strings.Join(parts, " "))
	if question == "" {
		fmt.Fprintln(os.Stderr, "usage: climchat ask [--plain] <question>")
		return 2
	}

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:      cfg.Gateway.URL,
		Timeout:      cfg.Timeout(),
		QueryTimeout: cfg.QueryTimeout(),
	})

	ctx := context.Background()

	chat, err := client.CreateChat(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "climchat: cannot reach the gateway at %s: %v\n", cfg.Gateway.URL, err)
		return 1
	}

	resp, err := client.SendMessage(ctx, chat.ID, question)
	if err != nil {
		if status, ok := api.IsHTTP(err); ok {
			fmt.Fprintf(os.Stderr, "climchat: gateway returned HTTP %d\n", status)
		} else {
			fmt.Fprintf(os.Stderr, "climchat: %v\n", err)
		}
		return 1
	}

	fmt.Println(renderAnswer(resp.Answer, plain))
	return 0
}

// renderAnswer renders markdown for interactive terminals and returns
// the raw answer otherwise.
func renderAnswer(answer string, plain bool) string {
	if plain || !IsStdoutTTY() {
		return answer
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(GetTerminalWidth()),
	)
	if err != nil {
		return answer
	}

	rendered, err := renderer.Render(answer)
	if err != nil {
		return answer
	}
	return strings.TrimRight(rendered, "\n")
}
