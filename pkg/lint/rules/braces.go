package rules

import (
	"fmt"

	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/lint"
	"github.com/yaklabco/bracelint/pkg/source"
)

// OpeningBraceRule checks where the '{' of a block is placed.
type OpeningBraceRule struct {
	lint.BaseRule
}

// NewOpeningBraceRule creates the opening brace rule.
func NewOpeningBraceRule() *OpeningBraceRule {
	return &OpeningBraceRule{
		BaseRule: lint.NewBaseRule(
			"BL020",
			"opening-brace",
			"Opening braces follow the language's brace style (same_line or own_line)",
			config.CategoryBraces,
			false,
		),
	}
}

// Apply checks the opening brace of every non-empty block.
//
// Options:
//   - style: "same_line" or "own_line" (default: the language profile's brace_style)
//   - allow_single_line: accept "{ ... }" on one line (default: false)
func (r *OpeningBraceRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	doc := ctx.Doc
	if doc == nil || doc.Root == nil {
		return nil, nil
	}

	style := ctx.OptionString("style", ctx.Lang.Braces())
	if style != config.BraceStyleSameLine && style != config.BraceStyleOwnLine {
		return nil, fmt.Errorf("unknown brace style %q", style)
	}
	allowSingleLine := ctx.OptionBool("allow_single_line", false)

	var violations []lint.Violation

	for _, block := range source.Blocks(doc.Root) {
		if ctx.Cancelled() {
			return violations, ctx.Ctx.Err()
		}
		if block.Close < 0 || block.IsEmpty(doc) {
			continue
		}

		var msg string
		if style == config.BraceStyleOwnLine {
			msg = checkOwnLine(doc, block)
		} else {
			msg = checkSameLine(doc, block, allowSingleLine)
		}
		if msg == "" {
			continue
		}

		violations = append(violations, lint.NewViolation(ctx, r.ID(), block.Open, block.Open, msg).Build())
	}

	return violations, nil
}

func checkSameLine(doc *source.Document, block *source.Scope, allowSingleLine bool) string {
	open := doc.Tokens[block.Open]
	line := open.StartLine
	prev := doc.PrevCode(block.Open)

	if doc.FirstCodeOnLine(line) == block.Open && prev >= 0 && !endsStatement(doc, prev) && !inExpression(doc, prev) {
		return "opening brace should be on the same line as its declaration"
	}

	singleLine := doc.Tokens[block.Close].StartLine == line
	if doc.LastCodeOnLine(line) != block.Open && !(allowSingleLine && singleLine) {
		return "opening brace should end its line"
	}

	if doc.FirstCodeOnLine(line) != block.Open && prev >= 0 && !doc.Tokens[prev].Kind.IsOpen() &&
		lint.GapBefore(doc, block.Open) != lint.GapSpace {
		return "expected one space before '{'"
	}

	return ""
}

func checkOwnLine(doc *source.Document, block *source.Scope) string {
	open := doc.Tokens[block.Open]
	if doc.FirstCodeOnLine(open.StartLine) == block.Open {
		return ""
	}
	if doc.Tokens[block.Close].StartLine == open.StartLine {
		return ""
	}
	if inExpression(doc, doc.PrevCode(block.Open)) {
		return ""
	}
	return "opening brace should be on its own line"
}

// endsStatement reports whether token i closes the previous statement, so
// a brace after it starts a free-standing block.
func endsStatement(doc *source.Document, i int) bool {
	switch doc.Tokens[i].Kind {
	case source.TokLBrace, source.TokRBrace, source.TokSemicolon:
		return true
	default:
		return false
	}
}

// ClosingBraceRule checks that the '}' of a multi-line block starts its line.
type ClosingBraceRule struct {
	lint.BaseRule
}

// NewClosingBraceRule creates the closing brace rule.
func NewClosingBraceRule() *ClosingBraceRule {
	return &ClosingBraceRule{
		BaseRule: lint.NewBaseRule(
			"BL021",
			"closing-brace",
			"The closing brace of a multi-line block starts its own line",
			config.CategoryBraces,
			false,
		),
	}
}

// Apply checks the closing brace of every multi-line block.
func (r *ClosingBraceRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	doc := ctx.Doc
	if doc == nil || doc.Root == nil {
		return nil, nil
	}

	var violations []lint.Violation

	for _, block := range source.Blocks(doc.Root) {
		if ctx.Cancelled() {
			return violations, ctx.Ctx.Err()
		}
		if block.Close < 0 || block.IsEmpty(doc) {
			continue
		}

		closeTok := doc.Tokens[block.Close]
		if closeTok.StartLine == doc.Tokens[block.Open].StartLine {
			continue
		}
		if doc.FirstCodeOnLine(closeTok.StartLine) == block.Close {
			continue
		}

		violations = append(violations, lint.NewViolation(ctx, r.ID(), block.Close, block.Close,
			"closing brace should be on its own line").
			Build())
	}

	return violations, nil
}
