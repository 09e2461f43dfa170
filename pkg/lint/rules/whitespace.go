package rules

import (
	"bytes"

	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/fix"
	"github.com/yaklabco/bracelint/pkg/lint"
)

// NoTrailingSpacesRule checks for trailing spaces and tabs.
type NoTrailingSpacesRule struct {
	lint.BaseRule
}

// NewNoTrailingSpacesRule creates the trailing spaces rule.
func NewNoTrailingSpacesRule() *NoTrailingSpacesRule {
	return &NoTrailingSpacesRule{
		BaseRule: lint.NewBaseRule(
			"BL060",
			"no-trailing-spaces",
			"Lines do not end with spaces or tabs, except inside string literals",
			config.CategoryWhitespace,
			true,
		),
	}
}

// Apply checks every line for trailing whitespace.
func (r *NoTrailingSpacesRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	doc := ctx.Doc
	if doc == nil {
		return nil, nil
	}

	var violations []lint.Violation

	for line := 1; line <= doc.LineCount(); line++ {
		if ctx.Cancelled() {
			return violations, ctx.Ctx.Err()
		}

		start, end := lint.TrailingWhitespaceRange(doc, line)
		if start < 0 {
			continue
		}

		edits := fix.NewEditBuilder()
		edits.Delete(start, end)

		column := start - doc.Lines[line-1].StartOffset + 1
		violations = append(violations, lint.NewLineViolation(ctx, r.ID(), line, column, end-start,
			"trailing whitespace").
			WithFix(edits).
			Build())
	}

	return violations, nil
}

// NoTabIndentationRule checks that indentation uses spaces.
type NoTabIndentationRule struct {
	lint.BaseRule
}

// NewNoTabIndentationRule creates the tab indentation rule.
func NewNoTabIndentationRule() *NoTabIndentationRule {
	return &NoTabIndentationRule{
		BaseRule: lint.NewBaseRule(
			"BL061",
			"no-tab-indentation",
			"Indentation uses spaces, not tabs",
			config.CategoryWhitespace,
			false,
		),
	}
}

// Apply checks the indentation of every line outside multi-line literals.
func (r *NoTabIndentationRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	doc := ctx.Doc
	if doc == nil {
		return nil, nil
	}

	var violations []lint.Violation

	for line := 1; line <= doc.LineCount(); line++ {
		if ctx.Cancelled() {
			return violations, ctx.Ctx.Err()
		}
		if doc.InLiteral(line) {
			continue
		}

		meta := doc.Lines[line-1]
		indent := doc.Content[meta.StartOffset : meta.StartOffset+meta.Indent]
		tab := bytes.IndexByte(indent, '\t')
		if tab < 0 {
			continue
		}

		violations = append(violations, lint.NewLineViolation(ctx, r.ID(), line, tab+1, 1,
			"indentation contains a tab").
			WithSuggestion("Indent with spaces").
			Build())
	}

	return violations, nil
}

// FinalNewlineRule checks that a file ends with exactly one newline.
type FinalNewlineRule struct {
	lint.BaseRule
}

// NewFinalNewlineRule creates the final newline rule.
func NewFinalNewlineRule() *FinalNewlineRule {
	return &FinalNewlineRule{
		BaseRule: lint.NewBaseRule(
			"BL062",
			"final-newline",
			"Non-empty files end with exactly one newline",
			config.CategoryWhitespace,
			true,
		),
	}
}

// Apply checks the end of the file.
func (r *FinalNewlineRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	doc := ctx.Doc
	if doc == nil || len(doc.Content) == 0 {
		return nil, nil
	}

	content := doc.Content
	// end is the offset just past the last byte that is not a line break.
	end := len(content)
	for end > 0 && (content[end-1] == '\n' || content[end-1] == '\r') {
		end--
	}
	if end == 0 {
		// Only newlines; the blank-line rules cover it.
		return nil, nil
	}

	edits := fix.NewEditBuilder()

	if content[len(content)-1] != '\n' {
		lineCount := doc.LineCount()
		meta := doc.Lines[lineCount-1]
		edits.Insert(len(content), "\n")
		return []lint.Violation{
			lint.NewLineViolation(ctx, r.ID(), lineCount, meta.NewlineStart-meta.StartOffset+1, 1,
				"file should end with a newline").
				WithFix(edits).
				Build(),
		}, nil
	}

	// keep is the offset just past the first line break after the content.
	keep := end + 1
	if content[end] == '\r' && end+1 < len(content) && content[end+1] == '\n' {
		keep = end + 2
	}
	if keep >= len(content) {
		return nil, nil
	}

	lastLine, _ := doc.LineAt(end - 1)
	edits.Delete(keep, len(content))

	return []lint.Violation{
		lint.NewViolationAt(r.ID(), ctx.Path(), doc.LineSpan(lastLine+1, doc.LineCount()),
			"file should end with exactly one newline").
			WithFix(edits).
			Build(),
	}, nil
}
