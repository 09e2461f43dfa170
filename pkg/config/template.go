package config

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// TemplateOptions controls `bracelint init` output.
type TemplateOptions struct {
	// Full lists every rule with its defaults instead of a commented sketch.
	Full bool

	// Format is "yaml" (default) or "json".
	Format string

	// IncludeRules limits a full template to these rule IDs.
	IncludeRules []string
}

// RuleInfo is the rule metadata a template needs.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Category    Category
	CanFix      bool
}

// RuleInfoProvider lists the registered rules. The rules package installs
// one at init so config does not import lint.
type RuleInfoProvider func() []RuleInfo

//nolint:gochecknoglobals // set once by the rules package
var DefaultRuleInfoProvider RuleInfoProvider

const templateURL = "https://github.com/yaklabco/bracelint"

// DefaultTemplateHeader is the comment block at the top of generated files.
func DefaultTemplateHeader() string {
	return "# bracelint configuration\n# See: " + templateURL
}

// GenerateTemplate renders a starter config file.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return jsonTemplate(opts)
	}
	if opts.Full {
		return []byte(fullTemplate(opts)), nil
	}
	return []byte(DefaultTemplateHeader() + "\n" + minimalTemplate), nil
}

const minimalTemplate = `
# Force one language profile instead of detecting it per file.
# language: swift

# Rule categories to run (default: all).
# categories: [spacing, naming, braces, blank-lines, line-length, documentation, whitespace]

# Severity for rules that do not set one: error or warning.
# severity_default: warning

# Globs to skip.
# ignore:
#   - "Pods/**"
#   - "**/*.generated.swift"

# Per-language overrides.
# languages:
#   swift:
#     max_line_length: 120
#     brace_style: same_line
#   csharp:
#     brace_style: own_line

# Per-rule settings, keyed by ID or name.
# rules:
#   BL031:
#     options:
#       maximum: 2
#   type-naming:
#     severity: error
`

// defaultIgnores are the dependency and build directories a full template
// skips.
//
//nolint:gochecknoglobals // read-only
var defaultIgnores = []string{"Pods/**", "Carthage/**", ".build/**", "build/**", "node_modules/**"}

// fullTemplate lists the selected rules grouped by category.
func fullTemplate(opts TemplateOptions) string {
	var b strings.Builder
	b.WriteString(DefaultTemplateHeader())
	b.WriteString("\n#\n# Every rule with its default settings.\n\n")
	b.WriteString("severity_default: warning\n\n")
	b.WriteString("backups:\n  enabled: true\n  mode: sidecar\n\n")
	b.WriteString("ignore:\n")
	for _, glob := range defaultIgnores {
		fmt.Fprintf(&b, "  - %q\n", glob)
	}
	b.WriteString("\nrules:\n")

	infos := templateRules(opts.IncludeRules)
	for _, cat := range AllCategories() {
		first := true
		for _, rule := range infos {
			if rule.Category != cat {
				continue
			}
			if first {
				fmt.Fprintf(&b, "\n  # --- %s ---\n", cat)
				first = false
			}
			fmt.Fprintf(&b, "\n  # %s (%s)\n", rule.Name, wrapComment(rule.Description, 70))
			if rule.CanFix {
				b.WriteString("  # fixable\n")
			}
			fmt.Fprintf(&b, "  %s:\n    enabled: %t\n    severity: %s\n", rule.ID, rule.Enabled, rule.Severity)
		}
	}
	return b.String()
}

// jsonTemplate renders the same settings as JSON. JSON has no comments, so
// a minimal template is just the defaults without rules.
func jsonTemplate(opts TemplateOptions) ([]byte, error) {
	doc := map[string]any{
		"severity_default": SeverityWarning,
		"ignore":           defaultIgnores,
	}
	if opts.Full {
		doc["backups"] = map[string]any{"enabled": true, "mode": "sidecar"}
		rules := make(map[string]any)
		for _, rule := range templateRules(opts.IncludeRules) {
			rules[rule.ID] = map[string]any{"enabled": rule.Enabled, "severity": rule.Severity}
		}
		doc["rules"] = rules
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal template: %w", err)
	}
	return append(out, '\n'), nil
}

// templateRules returns the registered rules sorted by ID, limited to
// include when it is non-empty.
func templateRules(include []string) []RuleInfo {
	if DefaultRuleInfoProvider == nil {
		return nil
	}
	infos := DefaultRuleInfoProvider()
	if len(include) > 0 {
		infos = slices.DeleteFunc(slices.Clone(infos), func(r RuleInfo) bool {
			return !slices.Contains(include, r.ID)
		})
	}
	slices.SortFunc(infos, func(a, b RuleInfo) int { return strings.Compare(a.ID, b.ID) })
	return infos
}

// wrapComment wraps text at width, continuing on indented comment lines.
func wrapComment(text string, width int) string {
	var lines []string
	var line string
	for _, word := range strings.Fields(text) {
		if line != "" && len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		if line != "" {
			line += " "
		}
		line += word
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n  # ")
}
