package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/yaklabco/bracelint/internal/configloader"
	"github.com/yaklabco/bracelint/internal/logging"
	"github.com/yaklabco/bracelint/pkg/bracelint"
	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/lint"
	_ "github.com/yaklabco/bracelint/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/bracelint/pkg/parser/scanner"
	"github.com/yaklabco/bracelint/pkg/reporter"
	"github.com/yaklabco/bracelint/pkg/runner"
)

// errFilesFailed reports a run in which some files could not be linted.
var errFilesFailed = errors.New("some files could not be linted")

type lintFlags struct {
	format        string
	ruleFormat    string
	language      string
	categories    []string
	ignore        []string
	enable        []string
	disable       []string
	fixRules      []string
	stdin         bool
	stdinFilename string
	noContext     bool
	compact       bool
}

func newLintCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint source files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &cfg, flags, info)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Lint C-family source files for style issues.

By default, lints every file in the current directory tree whose extension
belongs to a language profile. Specify paths to lint specific files or
directories.

Exit status is 0 when clean, 1 when violations were found, 2 for usage or
configuration errors and 3 when files could not be read or parsed.

Examples:
  bracelint lint                        # Lint current directory
  bracelint lint Sources/               # Lint one directory
  bracelint lint App.swift              # Lint a single file
  bracelint lint --fix                  # Lint and auto-fix issues
  bracelint lint --fix --dry-run        # Show fixes without applying
  bracelint lint --format sarif         # SARIF 2.1.0 for code scanning
  bracelint lint --category naming      # Only run naming rules
  cat App.kt | bracelint lint --stdin --language kotlin`

func runLint(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *lintFlags, info BuildInfo) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	applyLintFlags(cmd, cliCfg, flags)

	if flags.stdin && len(args) > 0 {
		return usageError(errors.New("--stdin cannot be combined with paths"))
	}
	if flags.stdin && cliCfg.Fix {
		return usageError(errors.New("--stdin cannot be combined with --fix"))
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return usageError(fmt.Errorf("load configuration: %w", err))
	}

	finalCfg := loadResult.Config
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return usageError(err)
	}

	logger.Debug("configuration loaded",
		logging.FieldLanguage, finalCfg.Language,
		logging.FieldCategories, finalCfg.Categories,
		logging.FieldFix, finalCfg.Fix,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
	)

	engine := lint.NewEngine(scanner.New(), lint.DefaultRegistry)

	if flags.stdin {
		return lintStdin(ctx, cmd, engine, finalCfg, format, flags.stdinFilename)
	}

	lintRunner := runner.New(lint.NewPipeline(engine))

	runOpts := runner.Options{
		Paths:      args,
		WorkingDir: workDir,
		Jobs:       finalCfg.Jobs,
		Config:     finalCfg,
	}

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
	)

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return &ExitError{Code: ExitFileErrors, Err: err}
		}
		return usageError(fmt.Errorf("lint run failed: %w", err))
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		GroupByFile: true,
		Compact:     flags.compact,
		RuleFormat:  finalCfg.RuleFormat,
		ToolVersion: info.Version,
		WorkingDir:  workDir,
	})
	if err != nil {
		return usageError(fmt.Errorf("create reporter: %w", err))
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result) {
	case ExitFileErrors:
		return &ExitError{Code: ExitFileErrors, Err: errFilesFailed}
	case ExitViolations:
		return ErrLintIssuesFound
	default:
		return nil
	}
}

// lintStdin lints standard input as a single source text. name picks the
// language profile by extension when no language is forced.
func lintStdin(
	ctx context.Context,
	cmd *cobra.Command,
	engine *lint.Engine,
	cfg *config.Config,
	format reporter.Format,
	name string,
) error {
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return &ExitError{Code: ExitFileErrors, Err: fmt.Errorf("read stdin: %w", err)}
	}
	if name == "" {
		name = bracelint.SourceName
	}

	result, err := engine.LintFile(ctx, name, content, cfg)
	if err != nil {
		return &ExitError{Code: ExitFileErrors, Err: fmt.Errorf("%s: %w", name, err)}
	}

	status, err := reporter.Render(cmd.OutOrStdout(), result.Violations, format)
	if err != nil {
		return usageError(err)
	}
	if !status.Clean {
		return ErrLintIssuesFound
	}
	return nil
}

// applyLintFlags copies explicitly set flags into the CLI configuration so
// that unset flags do not mask config files or the environment.
func applyLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}
	if changed("language") {
		cfg.Language = flags.language
	}
	if changed("category") {
		cfg.Categories = lo.Map(flags.categories, func(name string, _ int) config.Category {
			return config.Category(name)
		})
	}
	cfg.Ignore = flags.ignore
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable
	cfg.FixRules = flags.fixRules
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "automatically fix issues")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show fixes without applying them")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif, diff")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs or names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs or names to disable")
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rules", nil, "limit auto-fix to specific rules")
	cmd.Flags().StringSliceVar(&flags.categories, "category", nil,
		"rule categories to run: spacing, naming, braces, blank-lines, line-length, documentation, whitespace")
	cmd.Flags().StringVar(&flags.language, "language", "", "force a language profile (default: detect per file)")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.stdin, "stdin", false, "lint source read from standard input")
	cmd.Flags().StringVar(&flags.stdinFilename, "stdin-filename", "",
		"file name used to pick the language for --stdin")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
}
