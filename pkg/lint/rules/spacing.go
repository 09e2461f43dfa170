package rules

import (
	"fmt"
	"slices"

	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/fix"
	"github.com/yaklabco/bracelint/pkg/lint"
	"github.com/yaklabco/bracelint/pkg/source"
)

// OperatorSpacingRule checks that binary operators have one space on each side.
type OperatorSpacingRule struct {
	lint.BaseRule
}

// NewOperatorSpacingRule creates the operator spacing rule.
func NewOperatorSpacingRule() *OperatorSpacingRule {
	return &OperatorSpacingRule{
		BaseRule: lint.NewBaseRule(
			"BL001",
			"operator-spacing",
			"Binary operators and '->' are surrounded by exactly one space or a line break",
			config.CategorySpacing,
			true,
		),
	}
}

// Apply checks every spaced operator of the language profile.
func (r *OperatorSpacingRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	doc := ctx.Doc
	if doc == nil || len(doc.Tokens) == 0 || len(ctx.Lang.SpacedOperators) == 0 {
		return nil, nil
	}

	var violations []lint.Violation

	for i, tok := range doc.Tokens {
		if tok.Kind != source.TokOperator && tok.Kind != source.TokArrow {
			continue
		}
		if ctx.Cancelled() {
			return violations, ctx.Ctx.Err()
		}

		op := doc.TokenText(i)
		if !slices.Contains(ctx.Lang.SpacedOperators, op) || !isBinary(doc, i) {
			continue
		}

		before := lint.GapBefore(doc, i)
		after := lint.GapAfter(doc, i)
		if spaced(before) && spaced(after) {
			continue
		}
		// A line-leading operator bound to its right operand is a prefix operator.
		if before == lint.GapBreak && after == lint.GapNone {
			continue
		}

		edits := fix.NewEditBuilder()
		normalizeGap(edits, doc, i, before, true)
		normalizeGap(edits, doc, i, after, false)

		violations = append(violations, lint.NewViolation(ctx, r.ID(), i, i,
			fmt.Sprintf("expected one space around '%s'", op)).
			WithSuggestion(fmt.Sprintf("Write '%s' with a single space on each side", op)).
			WithFix(edits).
			Build())
	}

	return violations, nil
}

// isBinary reports whether the operator at i sits between two operands.
func isBinary(doc *source.Document, i int) bool {
	prev := doc.PrevCode(i)
	next := doc.NextCode(i)
	if prev < 0 || next < 0 {
		return false
	}
	return endsOperand(doc, prev) && startsOperand(doc, next)
}

// PunctuationSpacingRule checks the spacing around ',', ':' and ';'.
type PunctuationSpacingRule struct {
	lint.BaseRule
}

// NewPunctuationSpacingRule creates the punctuation spacing rule.
func NewPunctuationSpacingRule() *PunctuationSpacingRule {
	return &PunctuationSpacingRule{
		BaseRule: lint.NewBaseRule(
			"BL002",
			"punctuation-spacing",
			"No space before ',', ':' and ';', and exactly one space after them",
			config.CategorySpacing,
			true,
		),
	}
}

// Apply checks every comma, colon and semicolon.
func (r *PunctuationSpacingRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	doc := ctx.Doc
	if doc == nil {
		return nil, nil
	}

	var violations []lint.Violation

	for i, tok := range doc.Tokens {
		switch tok.Kind {
		case source.TokComma, source.TokColon, source.TokSemicolon:
		default:
			continue
		}
		if ctx.Cancelled() {
			return violations, ctx.Ctx.Err()
		}
		if tok.Kind == source.TokColon && isTernaryColon(doc, i) {
			continue
		}

		mark := doc.TokenText(i)
		edits := fix.NewEditBuilder()
		spaceBefore := false
		missingAfter := false

		if before := lint.GapBefore(doc, i); before == lint.GapSpace || before == lint.GapWide {
			spaceBefore = true
			start, end := lint.WhitespaceBefore(doc, i)
			edits.Delete(start, end)
		}

		if !closesClause(doc, i) {
			after := lint.GapAfter(doc, i)
			if !spaced(after) {
				missingAfter = true
				normalizeGap(edits, doc, i, after, false)
			}
		}

		var msg string
		switch {
		case spaceBefore && missingAfter:
			msg = fmt.Sprintf("expected no space before and one space after '%s'", mark)
		case spaceBefore:
			msg = fmt.Sprintf("unexpected space before '%s'", mark)
		case missingAfter:
			msg = fmt.Sprintf("expected one space after '%s'", mark)
		default:
			continue
		}

		violations = append(violations, lint.NewViolation(ctx, r.ID(), i, i, msg).
			WithFix(edits).
			Build())
	}

	return violations, nil
}

// closesClause reports whether the punctuation at i is directly followed by
// a closing bracket or another separator, which need no space in between.
func closesClause(doc *source.Document, i int) bool {
	next := doc.Next(i)
	if next < 0 {
		return true
	}
	kind := doc.Tokens[next].Kind
	return kind.IsClose() || kind == source.TokSemicolon || kind == source.TokComma
}

// isTernaryColon reports whether the colon at i belongs to "cond ? a : b".
// Optional-type question marks touch their operand and are not counted.
func isTernaryColon(doc *source.Document, i int) bool {
	colon := doc.Tokens[i]
	first, _ := doc.TokensOnLine(colon.StartLine)
	for j := i - 1; j >= first; j-- {
		tok := doc.Tokens[j]
		if tok.Depth != colon.Depth {
			continue
		}
		if tok.Kind == source.TokOperator && doc.TokenText(j) == "?" && lint.GapBefore(doc, j) != lint.GapNone {
			return true
		}
	}
	return false
}

// BracketSpacingRule checks that parentheses and square brackets hug their
// contents.
type BracketSpacingRule struct {
	lint.BaseRule
}

// NewBracketSpacingRule creates the bracket spacing rule.
func NewBracketSpacingRule() *BracketSpacingRule {
	return &BracketSpacingRule{
		BaseRule: lint.NewBaseRule(
			"BL003",
			"bracket-spacing",
			"No space after '(' and '[' or before ')' and ']'",
			config.CategorySpacing,
			true,
		),
	}
}

// Apply checks every parenthesis and square bracket.
func (r *BracketSpacingRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	doc := ctx.Doc
	if doc == nil {
		return nil, nil
	}

	var violations []lint.Violation

	for i, tok := range doc.Tokens {
		if ctx.Cancelled() {
			return violations, ctx.Ctx.Err()
		}

		var start, end int
		switch tok.Kind {
		case source.TokLParen, source.TokLBracket:
			if gap := lint.GapAfter(doc, i); gap != lint.GapSpace && gap != lint.GapWide {
				continue
			}
			start, end = lint.WhitespaceAfter(doc, i)
		case source.TokRParen, source.TokRBracket:
			if gap := lint.GapBefore(doc, i); gap != lint.GapSpace && gap != lint.GapWide {
				continue
			}
			// "( )" is reported once, at the opening bracket.
			if prev := doc.PrevCode(i); prev >= 0 && doc.Tokens[prev].Kind.IsOpen() {
				continue
			}
			start, end = lint.WhitespaceBefore(doc, i)
		default:
			continue
		}

		bracket := doc.TokenText(i)
		msg := fmt.Sprintf("unexpected space after '%s'", bracket)
		if tok.Kind.IsClose() {
			msg = fmt.Sprintf("unexpected space before '%s'", bracket)
		}

		edits := fix.NewEditBuilder()
		edits.Delete(start, end)

		violations = append(violations, lint.NewViolation(ctx, r.ID(), i, i, msg).
			WithFix(edits).
			Build())
	}

	return violations, nil
}
