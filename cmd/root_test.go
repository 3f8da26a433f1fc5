package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory in test environment")
	}

	cases := []struct {
		in   string
		want string
	}{
		{"~/.claude/skills", filepath.Join(home, ".claude", "skills")},
		{"~", home},
		{"/abs/path", "/abs/path"},
		{"relative/path", "relative/path"},
	}
	for _, tc := range cases {
		got, err := expandPath(tc.in)
		if err != nil {
			t.Fatalf("expandPath(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("expandPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEmptyAsNA(t *testing.T) {
	if emptyAsNA("") != "n/a" {
		t.Fatal("empty should render as n/a")
	}
	if emptyAsNA("abc123") != "abc123" {
		t.Fatal("non-empty must pass through")
	}
}

func TestCommandsRegistered(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	joined := strings.Join(names, " ")
	for _, want := range []string{"audit", "updates", "version"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("command %q not registered (have: %s)", want, joined)
		}
	}
}
