package cmd

import (
	"strings"
	"testing"
)

func TestRootCommandStructure(t *testing.T) {
	// Not parallel - accesses global rootCmd
	cmd := rootCmd

	if cmd.Use != "prq" {
		t.Errorf("root command Use = %q, want %q", cmd.Use, "prq")
	}

	if cmd.Short == "" {
		t.Error("root command should have Short description")
	}

	if cmd.Long == "" {
		t.Error("root command should have Long description")
	}

	expectedKeywords := []string{"pull request", "diff", "merge"}
	for _, keyword := range expectedKeywords {
		if !strings.Contains(strings.ToLower(cmd.Long), keyword) {
			t.Errorf("root command Long description should mention %q", keyword)
		}
	}
}

func TestRootCommandPersistentFlags(t *testing.T) {
	// Not parallel - accesses global rootCmd
	cmd := rootCmd

	configFlag := cmd.PersistentFlags().Lookup("config")
	if configFlag == nil {
		t.Fatal("root command should have --config persistent flag")
	}
	if configFlag.DefValue != "" {
		t.Errorf("--config default should be empty, got %q", configFlag.DefValue)
	}
	if !strings.Contains(configFlag.Usage, "$HOME/.config/prq") {
		t.Error("--config usage should mention default config location")
	}

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	if verboseFlag == nil {
		t.Fatal("root command should have --verbose persistent flag")
	}
	if verboseFlag.Shorthand != "v" {
		t.Errorf("--verbose shorthand should be 'v', got %q", verboseFlag.Shorthand)
	}

	projFlag := cmd.PersistentFlags().Lookup("project")
	if projFlag == nil {
		t.Fatal("root command should have --project persistent flag")
	}
	if projFlag.Shorthand != "p" {
		t.Errorf("--project shorthand should be 'p', got %q", projFlag.Shorthand)
	}
	if projFlag.DefValue != "" {
		t.Errorf("--project default should be empty, got %q", projFlag.DefValue)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	// Not parallel - accesses global rootCmd
	expected := []string{"diff", "difftool", "list", "merge", "open", "update", "config"}

	registered := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range expected {
		if !registered[name] {
			t.Errorf("root command should have %q subcommand", name)
		}
	}
}

func TestRootCommandSilencesUsageOnError(t *testing.T) {
	if !rootCmd.SilenceUsage {
		t.Error("root command should silence usage output on runtime errors")
	}
}
