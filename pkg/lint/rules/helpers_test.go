package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/fix"
	"github.com/yaklabco/bracelint/pkg/lint"
	"github.com/yaklabco/bracelint/pkg/parser/scanner"
)

// ruleCase is a table entry shared by the rule tests.
type ruleCase struct {
	name      string
	input     string
	options   map[string]any
	wantLines []int  // start line of each violation, in order
	wantFix   string // expected content after fixes; empty skips the check
}

// applyRule runs one rule over Swift input.
func applyRule(t *testing.T, rule lint.Rule, input string, options map[string]any) []lint.Violation {
	t.Helper()
	return applyRuleLang(t, rule, "swift", input, options)
}

func applyRuleLang(t *testing.T, rule lint.Rule, lang, input string, options map[string]any) []lint.Violation {
	t.Helper()

	profile := config.BuiltinLanguages()[lang]
	doc, err := scanner.New().Parse(context.Background(), "test.swift", []byte(input), profile)
	require.NoError(t, err)

	var ruleCfg *config.RuleConfig
	if options != nil {
		ruleCfg = &config.RuleConfig{Options: options}
	}
	ctx := lint.NewRuleContext(context.Background(), doc, profile, config.NewConfig(), ruleCfg)

	violations, err := rule.Apply(ctx)
	require.NoError(t, err)
	return violations
}

// applyFixes applies every fix edit of violations to input.
func applyFixes(t *testing.T, input string, violations []lint.Violation) string {
	t.Helper()

	var edits []fix.TextEdit
	for _, v := range violations {
		edits = append(edits, v.FixEdits...)
	}
	plan, err := fix.Prepare(edits, len(input))
	require.NoError(t, err)
	require.Empty(t, plan.Skipped, "a rule's own edits must not conflict")
	return string(fix.ApplyEdits([]byte(input), plan.Accepted))
}

func startLines(violations []lint.Violation) []int {
	lines := make([]int, 0, len(violations))
	for _, v := range violations {
		lines = append(lines, v.StartLine)
	}
	return lines
}

// runRuleCases checks violation lines, fixes, and that fixing is idempotent.
func runRuleCases(t *testing.T, newRule func() lint.Rule, tests []ruleCase) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := newRule()
			violations := applyRule(t, rule, tt.input, tt.options)

			want := tt.wantLines
			if want == nil {
				want = []int{}
			}
			require.Equal(t, want, startLines(violations))

			if tt.wantFix == "" {
				return
			}
			fixed := applyFixes(t, tt.input, violations)
			require.Equal(t, tt.wantFix, fixed)
			require.Empty(t, applyRule(t, rule, fixed, tt.options), "fix should be idempotent")
		})
	}
}
