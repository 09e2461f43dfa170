package lint_test

import (
	"context"
	"errors"

	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/fix"
	"github.com/yaklabco/bracelint/pkg/lint"
	"github.com/yaklabco/bracelint/pkg/parser/scanner"
	"github.com/yaklabco/bracelint/pkg/source"
)

var errParse = errors.New("boom")

// failingParser implements lint.Parser and always fails.
type failingParser struct{}

func (failingParser) Parse(context.Context, string, []byte, config.LanguageConfig) (*source.Document, error) {
	return nil, errParse
}

// violationRule is a test rule that returns a fixed set of violations.
type violationRule struct {
	lint.BaseRule
	violations []lint.Violation
	err        error
}

func (r *violationRule) Apply(_ *lint.RuleContext) ([]lint.Violation, error) {
	out := make([]lint.Violation, len(r.violations))
	copy(out, r.violations)
	return out, r.err
}

// panicRule is a test rule that panics with value.
type panicRule struct {
	lint.BaseRule
	value any
}

func (r *panicRule) Apply(_ *lint.RuleContext) ([]lint.Violation, error) {
	panic(r.value)
}

// replaceRule flags every occurrence of a byte and offers to replace it.
type replaceRule struct {
	lint.BaseRule
	from byte
	to   string
}

func (r *replaceRule) Apply(rc *lint.RuleContext) ([]lint.Violation, error) {
	var out []lint.Violation
	for offset, c := range rc.Doc.Content {
		if c != r.from {
			continue
		}
		line, col := rc.Doc.LineAt(offset)
		builder := fix.NewEditBuilder()
		builder.ReplaceRange(offset, offset+1, r.to)
		out = append(out, lint.NewLineViolation(rc, r.ID(), line, col, 1, "replace me").WithFix(builder).Build())
	}
	return out, nil
}

func newViolationRule(id, name string, violations ...lint.Violation) *violationRule {
	return &violationRule{
		BaseRule:   lint.NewBaseRule(id, name, "test rule", config.CategorySpacing, false),
		violations: violations,
	}
}

func at(id string, line, col int) lint.Violation {
	return lint.Violation{RuleID: id, Message: id + " issue", StartLine: line, StartColumn: col, EndLine: line, EndColumn: col + 1}
}

func newEngine(rules ...lint.Rule) *lint.Engine {
	registry := lint.NewRegistry()
	registry.MustRegister(rules...)
	return lint.NewEngine(scanner.New(), registry)
}
