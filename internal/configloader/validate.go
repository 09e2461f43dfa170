package configloader

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/lo"

	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/fsutil"
	"github.com/yaklabco/bracelint/pkg/lint"
)

// ValidationError is one problem found in a configuration.
type ValidationError struct {
	// FilePath is the config file the value came from, when known.
	FilePath string

	// Field is the dotted path to the value, e.g. "rules.BL001.severity".
	Field string

	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return strings.Join(lo.Compact([]string{e.FilePath, e.Field, e.Message}), ": ")
}

// ValidationResult holds everything Validate found. Errors stop a load;
// warnings are reported and the load goes on.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether no errors were found.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// InFile attributes every finding to path.
func (r *ValidationResult) InFile(path string) *ValidationResult {
	for _, list := range [][]ValidationError{r.Errors, r.Warnings} {
		for i := range list {
			list[i].FilePath = path
		}
	}
	return r
}

// AllMessages returns errors then warnings, each prefixed with its level.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

//nolint:gochecknoglobals // read-only enumerations
var (
	severityNames   = names(config.Severities())
	formatNames     = names(config.OutputFormats())
	ruleFormatNames = names(config.RuleFormats())
	backupModeNames = names([]fsutil.BackupMode{fsutil.BackupModeSidecar, fsutil.BackupModeXDG, fsutil.BackupModeNone})
	braceStyleNames = []string{config.BraceStyleSameLine, config.BraceStyleOwnLine}
)

func names[T ~string](values []T) []string {
	return lo.Map(values, func(v T, _ int) string { return string(v) })
}

// Validate checks cfg against the rules in lint.DefaultRegistry.
func Validate(cfg *config.Config) *ValidationResult {
	return ValidateWithRegistry(cfg, lint.DefaultRegistry)
}

// ValidateWithRegistry checks cfg against registry. Findings come out in a
// stable order: top-level fields, then languages and rules sorted by key.
// Rule keys must already be canonical IDs.
func ValidateWithRegistry(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	v := &validator{registry: registry}
	if cfg != nil {
		v.config(cfg)
	}
	return &v.result
}

type validator struct {
	registry *lint.Registry
	result   ValidationResult
}

func (v *validator) fail(field string, value any, format string, args ...any) {
	v.result.Errors = append(v.result.Errors, ValidationError{
		Field: field, Value: value, Message: fmt.Sprintf(format, args...),
	})
}

func (v *validator) warn(field string, value any, format string, args ...any) {
	v.result.Warnings = append(v.result.Warnings, ValidationError{
		Field: field, Value: value, Message: fmt.Sprintf(format, args...),
	})
}

// oneOf fails field unless value is empty or listed in allowed.
func (v *validator) oneOf(field, what, value string, allowed []string) {
	if value == "" || slices.Contains(allowed, value) {
		return
	}
	v.fail(field, value, "invalid %s %q; must be one of: %s", what, value, strings.Join(allowed, ", "))
}

func (v *validator) regexp(field, pattern string) {
	if _, err := regexp.Compile(pattern); err != nil {
		v.fail(field, pattern, "invalid regular expression: %v", err)
	}
}

func (v *validator) config(cfg *config.Config) {
	v.oneOf("severity_default", "severity", cfg.SeverityDefault, severityNames)
	v.oneOf("format", "format", string(cfg.Format), formatNames)
	v.oneOf("rule_format", "rule format", string(cfg.RuleFormat), ruleFormatNames)
	if cfg.Jobs < 0 {
		v.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	v.oneOf("backups.mode", "backup mode", cfg.Backups.Mode, backupModeNames)

	for i, cat := range cfg.Categories {
		if !cat.IsValid() {
			v.fail(fmt.Sprintf("categories[%d]", i), cat,
				"unknown category %q; must be one of: %s", cat, categoryList())
		}
	}

	if cfg.Language != "" {
		if _, ok := cfg.LanguageProfiles()[strings.ToLower(cfg.Language)]; !ok {
			v.fail("language", cfg.Language, "unknown language %q", cfg.Language)
		}
	}

	for _, name := range sortedKeys(cfg.Languages) {
		v.language("languages."+name, cfg.Languages[name])
	}
	for _, id := range sortedKeys(cfg.Rules) {
		v.rule("rules."+id, id, cfg.Rules[id])
	}
	v.ruleLists(cfg)

	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			v.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

func (v *validator) language(prefix string, lang config.LanguageConfig) {
	v.oneOf(prefix+".brace_style", "brace style", string(lang.BraceStyle), braceStyleNames)
	if lang.MaxLineLength < 0 {
		v.fail(prefix+".max_line_length", lang.MaxLineLength, "max_line_length must be positive")
	}
	if lang.IndentWidth < 0 {
		v.fail(prefix+".indent_width", lang.IndentWidth, "indent_width must be positive")
	}
	if lang.TypePattern != "" {
		v.regexp(prefix+".type_pattern", lang.TypePattern)
	}
	if lang.ValuePattern != "" {
		v.regexp(prefix+".value_pattern", lang.ValuePattern)
	}
	v.interpolation(prefix+".string_interpolation", lang.StringInterpolation)
	for i, pair := range lang.RawStringPairs {
		field := fmt.Sprintf("%s.raw_string_pairs[%d]", prefix, i)
		if pair.Open == "" || pair.Close == "" {
			v.fail(field, pair.Open, "raw string pair needs both open and close")
		}
		v.interpolation(field+".interpolation", pair.Interpolation)
	}
}

// interpolation fails a non-empty opener that does not end with a bracket.
func (v *validator) interpolation(field, opener string) {
	if opener != "" && !strings.ContainsAny(opener[len(opener)-1:], "({[") {
		v.fail(field, opener, "interpolation opener must end with (, { or [")
	}
}

func (v *validator) rule(field, id string, rc config.RuleConfig) {
	rule, ok := v.registry.Get(id)
	if !ok {
		v.fail(field, id, "unknown rule %q", id)
		return
	}
	if rc.Severity != nil {
		v.oneOf(field+".severity", "severity", *rc.Severity, severityNames)
	}
	if pattern, ok := rc.Options["pattern"].(string); ok {
		v.regexp(field+".options.pattern", pattern)
	}
	if rc.AutoFix != nil && *rc.AutoFix && !rule.CanFix() {
		v.warn(field+".auto_fix", true, "rule %s has no automatic fix", id)
	}
}

// ruleLists checks the enable, disable and fix_rules lists. Entries may be
// IDs, names or aliases.
func (v *validator) ruleLists(cfg *config.Config) {
	resolved := func(field string, keys []string) []string {
		var ids []string
		for _, key := range keys {
			id, _, ok := v.registry.Resolve(key)
			if !ok {
				v.fail(field, key, "unknown rule %q", key)
				continue
			}
			ids = append(ids, id)
		}
		return ids
	}

	enabled := resolved("enable", cfg.EnableRules)
	disabled := resolved("disable", cfg.DisableRules)
	resolved("fix_rules", cfg.FixRules)

	for _, id := range lo.Uniq(lo.Intersect(enabled, disabled)) {
		v.warn("enable", id, "rule %s is both enabled and disabled; disable wins", id)
	}
}

func categoryList() string {
	return strings.Join(names(config.AllCategories()), ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
