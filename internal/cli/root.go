// Package cli provides the Cobra command structure for bracelint.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/bracelint/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root bracelint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "bracelint",
		Short: "A rule-driven style linter for C-family source code",
		Long: `bracelint checks C-family source code against a configurable style guide.

Swift is the default language; Kotlin, Java, C, C++, C#, Go, JavaScript and
TypeScript profiles are built in. Rules cover operator and punctuation
spacing, naming, brace placement, blank lines, line length, documentation
comments and whitespace. Many layout issues can be fixed automatically with
conflict detection, dry-run mode and optional backups.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newLintCommand(info))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newLanguagesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
