package rules

import (
	"slices"

	"github.com/samber/lo"

	"github.com/yaklabco/bracelint/pkg/config"
)

// Pack is a named starting configuration, written out by "bracelint init
// --pack".
type Pack struct {
	Name        string
	Description string

	// Categories limits the run to these categories. Empty means all.
	Categories []config.Category

	// Rules is keyed by rule ID.
	Rules map[string]config.RuleConfig
}

// severities turns "ID: severity" pairs into enabled rule entries.
func severities(pairs map[string]config.Severity) map[string]config.RuleConfig {
	out := make(map[string]config.RuleConfig, len(pairs))
	for id, sev := range pairs {
		out[id] = enabledAs(sev)
	}
	return out
}

func enabledAs(sev config.Severity) config.RuleConfig {
	on := true
	s := string(sev)
	return config.RuleConfig{Enabled: &on, Severity: &s}
}

// CorePack keeps the layout rules as warnings and type naming as an error.
func CorePack() Pack {
	return Pack{
		Name:        "core",
		Description: "Essential layout rules: whitespace, blank lines, spacing and naming",
		Categories: []config.Category{
			config.CategorySpacing,
			config.CategoryNaming,
			config.CategoryBlankLines,
			config.CategoryWhitespace,
		},
		Rules: severities(map[string]config.Severity{
			"BL001": config.SeverityWarning, // operator-spacing
			"BL002": config.SeverityWarning, // punctuation-spacing
			"BL010": config.SeverityError,   // type-naming
			"BL031": config.SeverityWarning, // max-blank-lines
			"BL060": config.SeverityWarning, // no-trailing-spaces
			"BL061": config.SeverityWarning, // no-tab-indentation
			"BL062": config.SeverityWarning, // final-newline
		}),
	}
}

// StrictPack turns every rule on as an error.
func StrictPack() Pack {
	all := make(map[string]config.Severity)
	for _, rule := range All() {
		all[rule.ID()] = config.SeverityError
	}
	return Pack{
		Name:        "strict",
		Description: "Strict pack: every rule enabled as an error",
		Rules:       severities(all),
	}
}

// RelaxedPack only checks trailing whitespace and the final newline, for
// codebases that are not yet clean.
func RelaxedPack() Pack {
	return Pack{
		Name:        "relaxed",
		Description: "Relaxed pack: only essential whitespace rules, minimal noise",
		Categories:  []config.Category{config.CategoryWhitespace},
		Rules: severities(map[string]config.Severity{
			"BL060": config.SeverityWarning, // no-trailing-spaces
			"BL062": config.SeverityWarning, // final-newline
		}),
	}
}

// AllmanPack puts opening braces on their own line.
func AllmanPack() Pack {
	brace := enabledAs(config.SeverityWarning)
	brace.Options = map[string]any{"style": config.BraceStyleOwnLine}
	return Pack{
		Name:        "allman",
		Description: "Allman pack: opening braces on their own line, all other rules at defaults",
		Rules:       map[string]config.RuleConfig{"BL020": brace}, // opening-brace
	}
}

// Packs returns the built-in packs in display order.
func Packs() []Pack {
	return []Pack{CorePack(), StrictPack(), RelaxedPack(), AllmanPack()}
}

// PackByName returns the named pack, or nil.
func PackByName(name string) *Pack {
	pack, ok := lo.Find(Packs(), func(p Pack) bool { return p.Name == name })
	if !ok {
		return nil
	}
	return &pack
}

// PackNames returns pack names in display order.
func PackNames() []string {
	return lo.Map(Packs(), func(p Pack, _ int) string { return p.Name })
}

// Config returns a fresh configuration holding the pack's settings.
func (p Pack) Config() *config.Config {
	cfg := config.NewConfig()
	cfg.Categories = slices.Clone(p.Categories)
	for id, rule := range p.Rules {
		cfg.Rules[id] = rule.Clone()
	}
	return cfg
}
