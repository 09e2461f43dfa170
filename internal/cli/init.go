package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/bracelint/internal/logging"
	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/fsutil"
	"github.com/yaklabco/bracelint/pkg/lint/rules"
)

type initFlags struct {
	force  bool
	full   bool
	format string
	output string
	pack   string
}

// target is where init writes, defaulting by format.
func (f *initFlags) target() string {
	switch {
	case f.output != "":
		return f.output
	case f.format == formatJSON:
		return ".bracelint.json"
	default:
		return ".bracelint.yml"
	}
}

func (f *initFlags) validate() error {
	if f.format != "yaml" && f.format != formatJSON {
		return fmt.Errorf("invalid format %q: must be yaml or json", f.format)
	}
	if f.pack != "" && (f.full || f.format == formatJSON) {
		return errors.New("--pack writes YAML and cannot be combined with --full or --format json")
	}
	if f.pack != "" && rules.PackByName(f.pack) == nil {
		return fmt.Errorf("unknown pack %q; available: %s", f.pack, strings.Join(rules.PackNames(), ", "))
	}
	return nil
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long: `Write a .bracelint.yml in the current directory. The minimal template lists
the common settings commented out; --full documents every rule, grouped by
category; --pack starts from one of the built-in rule packs.

Examples:
  bracelint init                      Minimal .bracelint.yml
  bracelint init --full               Every rule documented
  bracelint init --pack strict        Start from the strict rule pack
  bracelint init --format json        Write .bracelint.json instead
  bracelint init --output custom.yml  Write somewhere else`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runInit(ctx, cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every rule")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"file to write (default .bracelint.yml, or .bracelint.json with --format json)")
	cmd.Flags().StringVar(&flags.pack, "pack", "",
		"start from a rule pack: "+strings.Join(rules.PackNames(), ", "))

	return cmd
}

func runInit(ctx context.Context, cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive(cmd.ErrOrStderr(), "info")

	if err := flags.validate(); err != nil {
		return usageError(err)
	}

	path := flags.target()
	if _, err := os.Stat(path); err == nil {
		if !flags.force {
			return usageError(fmt.Errorf("%s already exists; use --force to overwrite", path))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, path)
	}

	content, err := initContent(flags)
	if err != nil {
		return err
	}
	if err := fsutil.WriteAtomic(ctx, path, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	logger.Info("created configuration file", logging.FieldPath, path)
	if flags.pack != "" {
		logger.Info("configuration starts from the rule pack", logging.FieldName, flags.pack)
	}
	logger.Info("run 'bracelint rules' to see all available rules")
	return nil
}

// initContent renders the template, or the selected pack with the template
// header.
func initContent(flags *initFlags) ([]byte, error) {
	if flags.pack == "" {
		content, err := config.GenerateTemplate(config.TemplateOptions{Full: flags.full, Format: flags.format})
		if err != nil {
			return nil, fmt.Errorf("generate template: %w", err)
		}
		return content, nil
	}

	pack := rules.PackByName(flags.pack)
	header := config.DefaultTemplateHeader() + "\n# Rule pack: " + pack.Name + " - " + pack.Description
	content, err := pack.Config().ToYAMLWithHeader(header)
	if err != nil {
		return nil, fmt.Errorf("render pack %s: %w", pack.Name, err)
	}
	return content, nil
}
