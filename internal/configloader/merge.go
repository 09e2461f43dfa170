package configloader

import (
	"maps"
	"slices"

	"github.com/yaklabco/bracelint/pkg/config"
)

// merge layers override on top of base and returns a new config; neither
// input is modified. Zero scalars and nil slices in override leave base
// alone, booleans only ever switch on, non-nil slices replace, and rule and
// language maps merge per key.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	out := base.Clone()
	if override == nil {
		return out
	}

	setIf(&out.Language, override.Language)
	setIf(&out.SeverityDefault, override.SeverityDefault)
	setIf(&out.Format, override.Format)
	setIf(&out.RuleFormat, override.RuleFormat)
	setIf(&out.Jobs, override.Jobs)
	setIf(&out.Backups.Mode, override.Backups.Mode)

	out.Fix = out.Fix || override.Fix
	out.DryRun = out.DryRun || override.DryRun
	out.NoBackups = out.NoBackups || override.NoBackups
	out.Backups.Enabled = out.Backups.Enabled || override.Backups.Enabled

	replaceIf(&out.Categories, override.Categories)
	replaceIf(&out.Ignore, override.Ignore)
	replaceIf(&out.EnableRules, override.EnableRules)
	replaceIf(&out.DisableRules, override.DisableRules)
	replaceIf(&out.FixRules, override.FixRules)

	for key, rule := range override.Rules {
		if out.Rules == nil {
			out.Rules = make(map[string]config.RuleConfig)
		}
		if existing, ok := out.Rules[key]; ok {
			out.Rules[key] = mergeRule(existing, rule)
		} else {
			out.Rules[key] = rule.Clone()
		}
	}

	for name, lang := range override.Languages {
		if out.Languages == nil {
			out.Languages = make(map[string]config.LanguageConfig)
		}
		if existing, ok := out.Languages[name]; ok {
			out.Languages[name] = existing.Merge(lang)
		} else {
			out.Languages[name] = lang.Merge(config.LanguageConfig{})
		}
	}

	return out
}

// mergeRule overlays the fields override sets. Options merge per key.
func mergeRule(base, override config.RuleConfig) config.RuleConfig {
	out, ov := base.Clone(), override.Clone()
	if ov.Enabled != nil {
		out.Enabled = ov.Enabled
	}
	if ov.Severity != nil {
		out.Severity = ov.Severity
	}
	if ov.AutoFix != nil {
		out.AutoFix = ov.AutoFix
	}
	if ov.Options != nil {
		if out.Options == nil {
			out.Options = make(map[string]any, len(ov.Options))
		}
		maps.Copy(out.Options, ov.Options)
	}
	return out
}

// MergeAll folds configs left to right; later ones win.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}
	out := configs[0].Clone()
	for _, cfg := range configs[1:] {
		out = merge(out, cfg)
	}
	return out
}

func setIf[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

func replaceIf[T any](dst *[]T, v []T) {
	if v != nil {
		*dst = slices.Clone(v)
	}
}
