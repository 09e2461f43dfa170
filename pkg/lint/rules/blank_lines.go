package rules

import (
	"fmt"

	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/fix"
	"github.com/yaklabco/bracelint/pkg/lint"
	"github.com/yaklabco/bracelint/pkg/source"
)

// ScopeBlankLinesRule checks for blank lines just inside block braces.
type ScopeBlankLinesRule struct {
	lint.BaseRule
}

// NewScopeBlankLinesRule creates the scope blank lines rule.
func NewScopeBlankLinesRule() *ScopeBlankLinesRule {
	return &ScopeBlankLinesRule{
		BaseRule: lint.NewBaseRule(
			"BL030",
			"scope-blank-lines",
			"No blank line directly after an opening brace or before a closing brace",
			config.CategoryBlankLines,
			true,
		),
	}
}

// Apply checks the lines around the braces of every block.
func (r *ScopeBlankLinesRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	doc := ctx.Doc
	if doc == nil || doc.Root == nil {
		return nil, nil
	}

	var violations []lint.Violation

	for _, block := range source.Blocks(doc.Root) {
		if ctx.Cancelled() {
			return violations, ctx.Ctx.Err()
		}
		if block.Close < 0 {
			continue
		}

		openLine := doc.Tokens[block.Open].StartLine
		closeLine := doc.Tokens[block.Close].StartLine
		if openLine == closeLine {
			continue
		}

		after := 0
		if doc.LastCodeOnLine(openLine) == block.Open {
			after = lint.CountBlankLinesAfter(doc, openLine)
			if after > 0 {
				violations = append(violations, blankRunViolation(ctx, r.ID(),
					openLine+1, openLine+after, "unexpected blank line after opening brace"))
			}
		}

		if doc.FirstCodeOnLine(closeLine) == block.Close {
			before := lint.CountBlankLinesBefore(doc, closeLine)
			// In an empty block the run was already reported after the brace.
			if before > 0 && closeLine-before > openLine+after {
				violations = append(violations, blankRunViolation(ctx, r.ID(),
					closeLine-before, closeLine-1, "unexpected blank line before closing brace"))
			}
		}
	}

	return violations, nil
}

// MaxBlankLinesRule limits runs of consecutive blank lines.
type MaxBlankLinesRule struct {
	lint.BaseRule
}

// NewMaxBlankLinesRule creates the max blank lines rule.
func NewMaxBlankLinesRule() *MaxBlankLinesRule {
	return &MaxBlankLinesRule{
		BaseRule: lint.NewBaseRule(
			"BL031",
			"max-blank-lines",
			"At most the configured number of consecutive blank lines",
			config.CategoryBlankLines,
			true,
		),
	}
}

// defaultMaxBlankLines is the default length of an allowed blank run.
const defaultMaxBlankLines = 1

// Apply reports each blank run longer than the maximum once, spanning the excess.
//
// Options:
//   - maximum: consecutive blank lines allowed (default: 1)
func (r *MaxBlankLinesRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	doc := ctx.Doc
	if doc == nil {
		return nil, nil
	}

	maximum := max(ctx.OptionInt("maximum", defaultMaxBlankLines), 0)

	var violations []lint.Violation

	lineCount := doc.LineCount()
	for line := 1; line <= lineCount; line++ {
		if !doc.IsBlank(line) {
			continue
		}
		if ctx.Cancelled() {
			return violations, ctx.Ctx.Err()
		}

		start := line
		for line < lineCount && doc.IsBlank(line+1) {
			line++
		}
		run := line - start + 1
		if run <= maximum {
			continue
		}

		violations = append(violations, blankRunViolation(ctx, r.ID(), start+maximum, line,
			fmt.Sprintf("too many blank lines (%d, maximum %d)", run, maximum)))
	}

	return violations, nil
}

// blankRunViolation reports lines first through last, with a fix deleting them.
func blankRunViolation(ctx *lint.RuleContext, ruleID string, first, last int, msg string) lint.Violation {
	start, _ := lint.WholeLineRange(ctx.Doc, first)
	_, end := lint.WholeLineRange(ctx.Doc, last)

	edits := fix.NewEditBuilder()
	edits.Delete(start, end)

	return lint.NewViolationAt(ruleID, ctx.Path(), ctx.Doc.LineSpan(first, last), msg).
		WithFix(edits).
		Build()
}
