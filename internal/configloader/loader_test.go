package configloader

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bracelint/pkg/config"
	_ "github.com/yaklabco/bracelint/pkg/lint/rules" // Register rules
)

func isolatedOptions(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolatedOptions(t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Empty(t, result.Config.Language, "language is detected per file by default")
	assert.Equal(t, string(config.SeverityWarning), result.Config.SeverityDefault)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, ".bracelint.yml", `
language: kotlin
categories: [spacing, naming]
rules:
  BL020:
    enabled: false
languages:
  kotlin:
    max_line_length: 120
`)

	result, err := Load(context.Background(), isolatedOptions(dir))
	require.NoError(t, err)
	cfg := result.Config

	assert.Equal(t, "kotlin", cfg.Language)
	assert.Equal(t, []config.Category{config.CategorySpacing, config.CategoryNaming}, cfg.Categories)
	require.Contains(t, cfg.Rules, "BL020")
	assert.False(t, *cfg.Rules["BL020"].Enabled)

	kotlin := cfg.LanguageProfiles()["kotlin"]
	assert.Equal(t, 120, kotlin.MaxLineLength)
	assert.NotEmpty(t, kotlin.Extensions, "built-in extensions survive the override")
	assert.Equal(t, []string{path}, result.LoadedFrom)
}

func TestLoad_ProjectConfigDiscovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", ".bracelint.yaml", "severity_default: error\n"},
		{"json from init", ".bracelint.json", `{"severity_default": "error"}`},
		{"plain name", "bracelint.yml", "severity_default: error\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
			want := writeConfig(t, root, tt.file, tt.content)

			nested := filepath.Join(root, "Sources", "App")
			require.NoError(t, os.MkdirAll(nested, 0o755))

			result, err := Load(context.Background(), isolatedOptions(nested))
			require.NoError(t, err)
			assert.Equal(t, want, result.Paths.Project)
			assert.Equal(t, "error", result.Config.SeverityDefault)
		})
	}
}

func TestFindProjectConfig_StopsAtRepoRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeConfig(t, outer, ".bracelint.yml", "language: c\n")
	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	path, err := FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, ".bracelint.yml", "language: java\nseverity_default: error\n")
	custom := writeConfig(t, dir, "custom-config.yml", "language: csharp\n")

	opts := isolatedOptions(dir)
	opts.ExplicitPath = custom

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	// The explicit file is merged over the project file.
	assert.Equal(t, "csharp", result.Config.Language)
	assert.Equal(t, "error", result.Config.SeverityDefault)
	require.Len(t, result.LoadedFrom, 2)
	assert.Equal(t, custom, result.LoadedFrom[1])
}

func TestLoad_ExplicitConfigMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := isolatedOptions(dir)
	opts.ExplicitPath = filepath.Join(dir, "nope.yml")

	_, err := Load(context.Background(), opts)
	require.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, ".bracelint.yml", "language: java\ncategories: [naming]\n")

	opts := isolatedOptions(dir)
	opts.CLIConfig = &config.Config{
		Language:   "go",
		Categories: []config.Category{config.CategoryWhitespace},
		Jobs:       8,
		Fix:        true,
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "go", result.Config.Language)
	assert.Equal(t, []config.Category{config.CategoryWhitespace}, result.Config.Categories)
	assert.Equal(t, 8, result.Config.Jobs)
	assert.True(t, result.Config.Fix)
}

func TestLoad_EnvBetweenFilesAndFlags(t *testing.T) {
	t.Setenv("BRACELINT_LANGUAGE", "kotlin")
	t.Setenv("BRACELINT_JOBS", "2")

	dir := t.TempDir()
	writeConfig(t, dir, ".bracelint.yml", "language: java\n")

	opts := isolatedOptions(dir)
	opts.IgnoreEnv = false
	opts.CLIConfig = &config.Config{Jobs: 6}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "kotlin", result.Config.Language, "env beats the file")
	assert.Equal(t, 6, result.Config.Jobs, "flags beat env")
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown key", "flavor: gfm\n", "field flavor not found"},
		{"bad brace style", "languages:\n  swift:\n    brace_style: k&r\n", "brace_style"},
		{"bad category", "categories: [colour]\n", "unknown category"},
		{"bad regex", "languages:\n  swift:\n    type_pattern: \"(\"\n", "invalid regular expression"},
		{"unknown rule", "rules:\n  BL999:\n    enabled: true\n", "unknown rule"},
		{"bad severity", "severity_default: fatal\n", "invalid severity"},
		{"negative line length", "languages:\n  swift:\n    max_line_length: -1\n", "max_line_length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := writeConfig(t, dir, ".bracelint.yml", tt.content)

			_, err := Load(context.Background(), isolatedOptions(dir))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolatedOptions(t.TempDir()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoad_NormalizesRuleKeys(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, ".bracelint.yml", `
rules:
  no-trailing-spaces:
    enabled: false
  line-length:
    enabled: true
    severity: error
`)

	result, err := Load(context.Background(), isolatedOptions(dir))
	require.NoError(t, err)
	rules := result.Config.Rules

	assert.Contains(t, rules, "BL060")
	assert.NotContains(t, rules, "no-trailing-spaces")

	require.Contains(t, rules, "BL040")
	assert.True(t, *rules["BL040"].Enabled)
	assert.Equal(t, "error", *rules["BL040"].Severity)
}

func TestLoad_WarnsDuplicateRules(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, ".bracelint.yml", `
rules:
  BL060:
    enabled: false
  no-trailing-spaces:
    enabled: true
`)

	result, err := Load(context.Background(), isolatedOptions(dir))
	require.NoError(t, err)

	assert.True(t, slices.ContainsFunc(result.Warnings, func(w string) bool {
		return strings.Contains(w, "duplicate") && strings.Contains(w, "BL060")
	}), "warnings: %v", result.Warnings)

	// The canonical ID wins.
	assert.False(t, *result.Config.Rules["BL060"].Enabled)
}
