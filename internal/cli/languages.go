package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/bracelint/internal/configloader"
	"github.com/yaklabco/bracelint/internal/logging"
	"github.com/yaklabco/bracelint/pkg/config"
)

// languageInfo represents a language profile in JSON output.
type languageInfo struct {
	Name          string   `json:"name"`
	Extensions    []string `json:"extensions"`
	MaxLineLength int      `json:"maxLineLength"`
	BraceStyle    string   `json:"braceStyle"`
	TypePattern   string   `json:"typePattern"`
	ValuePattern  string   `json:"valuePattern"`
	Default       bool     `json:"default,omitempty"`
}

func newLanguagesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List language profiles",
		Long: `List the language profiles bracelint knows, including overrides and
additional profiles from configuration files.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadListingConfig(cmd)
			if err != nil {
				return err
			}

			infos := languageInfos(cfg)

			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), infos)
			}

			logger := logging.NewInteractive(cmd.OutOrStdout(), "info")
			logger.Info("language profiles")
			for _, info := range infos {
				name := info.Name
				if info.Default {
					name += " (default)"
				}
				logger.Info(name,
					"extensions", strings.Join(info.Extensions, " "),
					"max_line_length", info.MaxLineLength,
					"brace_style", info.BraceStyle,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

// loadListingConfig loads configuration the way lint does, without CLI overrides.
func loadListingConfig(cmd *cobra.Command) (*config.Config, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
	})
	if err != nil {
		return nil, usageError(fmt.Errorf("load configuration: %w", err))
	}
	return result.Config, nil
}

// languageInfos describes every profile in name order.
func languageInfos(cfg *config.Config) []languageInfo {
	profiles := cfg.LanguageProfiles()
	names := cfg.LanguageNames()

	infos := make([]languageInfo, 0, len(names))
	for _, name := range names {
		profile := profiles[name]
		infos = append(infos, languageInfo{
			Name:          name,
			Extensions:    profile.Extensions,
			MaxLineLength: profile.LineLimit(),
			BraceStyle:    profile.Braces(),
			TypePattern:   profile.TypeRegexp(),
			ValuePattern:  profile.ValueRegexp(),
			Default:       name == config.DefaultLanguage,
		})
	}
	return infos
}
