// Package config holds the configuration model shared by the loader, the
// lint engine and the CLI. It only describes data; reading files, the
// environment and flags happens in internal/configloader.
package config

import "slices"

// Severity is how seriously a violation is reported.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Severities lists the known severities, most severe first.
func Severities() []Severity {
	return []Severity{SeverityError, SeverityWarning}
}

func (s Severity) IsValid() bool {
	return slices.Contains(Severities(), s)
}

// Category groups related rules so they can be switched on or off together.
type Category string

const (
	CategorySpacing       Category = "spacing"
	CategoryNaming        Category = "naming"
	CategoryBraces        Category = "braces"
	CategoryBlankLines    Category = "blank-lines"
	CategoryLineLength    Category = "line-length"
	CategoryDocumentation Category = "documentation"
	CategoryWhitespace    Category = "whitespace"
)

// AllCategories returns every category in display order.
func AllCategories() []Category {
	return []Category{
		CategorySpacing, CategoryNaming, CategoryBraces, CategoryBlankLines,
		CategoryLineLength, CategoryDocumentation, CategoryWhitespace,
	}
}

func (c Category) IsValid() bool {
	return slices.Contains(AllCategories(), c)
}

// OutputFormat names a reporter.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatSARIF OutputFormat = "sarif"
	FormatDiff  OutputFormat = "diff"
)

// OutputFormats lists the formats the lint command accepts.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON, FormatSARIF, FormatDiff}
}

// RuleFormat controls how a rule is named in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // operator-spacing
	RuleFormatID       RuleFormat = "id"       // BL001
	RuleFormatCombined RuleFormat = "combined" // BL001/operator-spacing
)

// RuleFormats lists the accepted rule formats.
func RuleFormats() []RuleFormat {
	return []RuleFormat{RuleFormatName, RuleFormatID, RuleFormatCombined}
}

// RuleConfig overrides one rule. Nil fields keep the rule's defaults.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled"`
	Severity *string        `yaml:"severity"`
	AutoFix  *bool          `yaml:"auto_fix"`
	Options  map[string]any `yaml:"options"`
}

// BackupsConfig controls the copies kept of files rewritten by --fix.
// Mode is one of "sidecar", "xdg" or "none".
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"`
}

// Config is the merged configuration for one run. Fields tagged yaml:"-"
// come only from flags or the environment.
type Config struct {
	// Language forces a profile by name. Empty picks one per file.
	Language string `yaml:"language,omitempty"`

	// Categories limits the run to these categories. Empty means all.
	Categories []Category `yaml:"categories,omitempty"`

	// SeverityDefault applies to rules whose config sets no severity.
	SeverityDefault string `yaml:"severity_default"`

	// Rules is keyed by rule ID once loaded; files may use names.
	Rules map[string]RuleConfig `yaml:"rules"`

	// Languages overrides built-in profiles or adds new ones.
	Languages map[string]LanguageConfig `yaml:"languages,omitempty"`

	// Ignore holds globs of paths never linted.
	Ignore []string `yaml:"ignore"`

	Backups BackupsConfig `yaml:"backups"`

	Fix        bool         `yaml:"-"`
	DryRun     bool         `yaml:"-"`
	Format     OutputFormat `yaml:"-"`
	RuleFormat RuleFormat   `yaml:"-"`

	// Jobs is the worker count; 0 uses GOMAXPROCS.
	Jobs int `yaml:"-"`

	// EnableRules, DisableRules and FixRules take IDs, names or aliases.
	EnableRules  []string `yaml:"-"`
	DisableRules []string `yaml:"-"`
	FixRules     []string `yaml:"-"`

	NoBackups bool `yaml:"-"`
}

// NewConfig returns the built-in defaults.
func NewConfig() *Config {
	return &Config{
		SeverityDefault: string(SeverityWarning),
		Rules:           map[string]RuleConfig{},
		Backups:         BackupsConfig{Enabled: true, Mode: "sidecar"},
		Format:          FormatText,
		RuleFormat:      RuleFormatName,
	}
}

// CategoryEnabled reports whether rules in cat run under c.
func (c *Config) CategoryEnabled(cat Category) bool {
	return c == nil || len(c.Categories) == 0 || slices.Contains(c.Categories, cat)
}
