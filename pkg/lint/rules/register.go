package rules

import (
	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/lint"
)

// All returns a fresh instance of every built-in rule in ID order.
func All() []lint.Rule {
	return []lint.Rule{
		// Spacing rules
		NewOperatorSpacingRule(),    // BL001
		NewPunctuationSpacingRule(), // BL002
		NewBracketSpacingRule(),     // BL003

		// Naming rules
		NewTypeNamingRule(),       // BL010
		NewValueNamingRule(),      // BL011
		NewASCIIIdentifiersRule(), // BL012

		// Brace rules
		NewOpeningBraceRule(), // BL020
		NewClosingBraceRule(), // BL021

		// Blank line rules
		NewScopeBlankLinesRule(), // BL030
		NewMaxBlankLinesRule(),   // BL031

		// Line length
		NewLineLengthRule(), // BL040

		// Documentation rules
		NewDocCommentSummaryRule(), // BL050
		NewDocCommentSpaceRule(),   // BL051

		// Whitespace rules
		NewNoTrailingSpacesRule(),  // BL060
		NewNoTabIndentationRule(),  // BL061
		NewFinalNewlineRule(),      // BL062
	}
}

// RegisterAll registers all built-in rules with the given registry.
// It panics if any rule is already registered.
func RegisterAll(registry *lint.Registry) {
	registry.MustRegister(All()...)
}

// RegisterAliases registers alternate names that differ from the rules'
// canonical names, so configuration written for other linters keeps working.
func RegisterAliases(registry *lint.Registry) {
	registry.RegisterAlias("trailing-whitespace", "BL060")
	registry.RegisterAlias("no-tabs", "BL061")
	registry.RegisterAlias("max-line-length", "BL040")
	registry.RegisterAlias("brace-style", "BL020")
}

// RuleInfos describes the rules of a registry for config templates.
func RuleInfos(registry *lint.Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    rule.DefaultSeverity(),
			Category:    rule.Category(),
			CanFix:      rule.CanFix(),
		})
	}
	return infos
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterAliases(lint.DefaultRegistry)
	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		return RuleInfos(lint.DefaultRegistry)
	}
}
