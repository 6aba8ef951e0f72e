// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"testing"
)

func parseWith(t *testing.T, args ...string) (Command, []string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"climchat"}, args...)
	defer func() { os.Args = orig }()
	return Parse()
}

func TestParseDefaultsToTUI(t *testing.T) {
	cmd, _ := parseWith(t)
	if cmd != CmdTUI {
		t.Errorf("cmd = %v, want CmdTUI", cmd)
	}
}

func TestParseAsk(t *testing.T) {
	cmd, rest := parseWith(t, "ask", "what", "is", "warming")
	if cmd != CmdAsk {
		t.Errorf("cmd = %v, want CmdAsk", cmd)
	}
	if len(rest) != 3 {
		t.Errorf("rest = %v", rest)
	}
}

func TestParseVersion(t *testing.T) {
	for _, arg := range []string{"version", "--version", "-v"} {
		cmd, _ := parseWith(t, arg)
		if cmd != CmdVersion {
			t.Errorf("%q: cmd = %v, want CmdVersion", arg, cmd)
		}
	}
}

func TestParseBareQuestionIsAsk(t *testing.T) {
	cmd, rest := parseWith(t, "why", "is", "the", "sea", "rising")
	if cmd != CmdAsk {
		t.Errorf("cmd = %v, want CmdAsk", cmd)
	}
	if len(rest) != 5 {
		t.Errorf("rest = %v, want all words preserved", rest)
	}
}

func TestRenderAnswerPlain(t *testing.T) {
	// stdout is not a TTY under go test, so raw text comes back either way
	out := renderAnswer("# Heading", true)
	if out != "# Heading" {
		t.Errorf("out = %q, want raw markdown in plain mode", out)
	}
}
