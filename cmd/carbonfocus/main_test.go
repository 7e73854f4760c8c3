package main

import (
	"testing"

	"github.com/carbonfocus/carbonfocus/internal/cli"
)

func TestRootCommand(t *testing.T) {
	root := cli.NewRootCmd(version)
	if root == nil {
		t.Fatal("expected root command to be non-nil")
	}
	if root.Use != "carbonfocus" {
		t.Errorf("expected use 'carbonfocus', got %q", root.Use)
	}
	for _, name := range []string{"calc", "profile", "shift", "score", "plan", "regions", "devices", "history", "summary", "tui", "config"} {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}
