package lint

import (
	"slices"

	"github.com/samber/lo"

	"github.com/yaklabco/bracelint/pkg/config"
)

// ResolvedRule is a rule with the settings that apply to it in one run.
type ResolvedRule struct {
	Rule     Rule
	Enabled  bool
	Severity config.Severity
	AutoFix  bool

	// Config is the rule's configuration entry, or nil without one.
	Config *config.RuleConfig
}

// ResolveRules returns the enabled rules of registry, in registration
// order, with cfg applied. A nil cfg leaves every rule at its defaults.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	return lo.FilterMap(registry.Rules(), func(rule Rule, _ int) (ResolvedRule, bool) {
		rr := resolveRule(rule, cfg)
		return rr, rr.Enabled
	})
}

// resolveRule applies, in increasing precedence: rule defaults, the
// category filter, --enable and --disable, the rule's config entry, and
// finally --fix-rules and --fix for auto-fixing.
func resolveRule(rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
	}
	if cfg == nil {
		return rr
	}

	rr.Enabled = rr.Enabled && cfg.CategoryEnabled(rule.Category())
	switch {
	case namesRule(rule, cfg.DisableRules):
		rr.Enabled = false
	case namesRule(rule, cfg.EnableRules):
		rr.Enabled = true
	}

	if entry, ok := ruleEntry(rule, cfg.Rules); ok {
		rr.Config = &entry
		if entry.Enabled != nil {
			rr.Enabled = *entry.Enabled
		}
		if entry.Severity != nil && config.Severity(*entry.Severity).IsValid() {
			rr.Severity = config.Severity(*entry.Severity)
		}
		if entry.AutoFix != nil {
			rr.AutoFix = rule.CanFix() && *entry.AutoFix
		}
	}

	if len(cfg.FixRules) > 0 {
		rr.AutoFix = rule.CanFix() && namesRule(rule, cfg.FixRules)
	}
	rr.AutoFix = rr.AutoFix && cfg.Fix
	return rr
}

// namesRule reports whether keys contains the rule's ID or name.
func namesRule(rule Rule, keys []string) bool {
	return slices.ContainsFunc(keys, func(key string) bool {
		return key == rule.ID() || (key != "" && key == rule.Name())
	})
}

// ruleEntry looks a rule up by ID first, then by name.
func ruleEntry(rule Rule, rules map[string]config.RuleConfig) (config.RuleConfig, bool) {
	if entry, ok := rules[rule.ID()]; ok {
		return entry, true
	}
	if rule.Name() == "" {
		return config.RuleConfig{}, false
	}
	entry, ok := rules[rule.Name()]
	return entry, ok
}
