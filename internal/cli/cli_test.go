package cli_test

import (
	"testing"

	"github.com/yaklabco/bracelint/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "bracelint" {
		t.Errorf("expected Use to be 'bracelint', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"lint", "rules", "languages", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestRootCommandGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"debug", "config", "color"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected global flag %q to exist", name)
		}
	}

	if got := cmd.PersistentFlags().Lookup("color").DefValue; got != "auto" {
		t.Errorf("expected --color default 'auto', got %q", got)
	}
}

func TestLintCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	lintCmd, _, err := cmd.Find([]string{"lint"})
	if err != nil {
		t.Fatalf("lint command not found: %v", err)
	}

	expectedFlags := []string{
		"fix",
		"dry-run",
		"format",
		"rule-format",
		"jobs",
		"enable",
		"disable",
		"fix-rules",
		"category",
		"language",
		"no-backups",
		"stdin",
		"stdin-filename",
		"ignore",
		"no-context",
		"compact",
	}

	for _, name := range expectedFlags {
		if lintCmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag %q to exist on lint command", name)
		}
	}

	defaults := map[string]string{
		"format":      "text",
		"rule-format": "name",
		"jobs":        "0",
	}
	for name, want := range defaults {
		if got := lintCmd.Flags().Lookup(name).DefValue; got != want {
			t.Errorf("flag %q default = %q, want %q", name, got, want)
		}
	}
}

func TestRulesCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	rulesCmd, _, err := cmd.Find([]string{"rules"})
	if err != nil {
		t.Fatalf("rules command not found: %v", err)
	}

	for _, name := range []string{"rule-format", "format", "category"} {
		if rulesCmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag %q to exist on rules command", name)
		}
	}
}

func TestInitCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	initCmd, _, err := cmd.Find([]string{"init"})
	if err != nil {
		t.Fatalf("init command not found: %v", err)
	}

	for _, name := range []string{"force", "full", "format", "output", "pack"} {
		if initCmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag %q to exist on init command", name)
		}
	}
}
