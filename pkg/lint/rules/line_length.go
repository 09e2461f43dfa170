package rules

import (
	"fmt"

	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/lint"
)

// LineLengthRule checks that the code on a line does not exceed the limit.
type LineLengthRule struct {
	lint.BaseRule
}

// NewLineLengthRule creates the line length rule.
func NewLineLengthRule() *LineLengthRule {
	return &LineLengthRule{
		BaseRule: lint.NewBaseRule(
			"BL040",
			"line-length",
			"Code must not run past the language's max_line_length; trailing strings and comments are not counted",
			config.CategoryLineLength,
			false,
		),
	}
}

// Apply checks the code width of every line.
//
// Options:
//   - maximum: width limit in characters (default: the profile's max_line_length)
func (r *LineLengthRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	doc := ctx.Doc
	if doc == nil {
		return nil, nil
	}

	limit := ctx.OptionInt("maximum", ctx.Lang.LineLimit())
	if limit <= 0 {
		return nil, nil
	}

	var violations []lint.Violation

	for line := 1; line <= doc.LineCount(); line++ {
		if ctx.Cancelled() {
			return violations, ctx.Ctx.Err()
		}

		width := lint.CodeWidth(doc, line)
		if width <= limit {
			continue
		}

		violations = append(violations, lint.NewLineViolation(ctx, r.ID(), line,
			runeColumn(doc.LineText(line), limit+1), width-limit,
			fmt.Sprintf("line is %d characters long (maximum %d)", width, limit)).
			WithSuggestion(fmt.Sprintf("Break the line so the code fits in %d characters", limit)).
			Build())
	}

	return violations, nil
}

// runeColumn returns the 1-based byte column of the n-th rune of text.
func runeColumn(text string, n int) int {
	count := 0
	for offset := range text {
		count++
		if count == n {
			return offset + 1
		}
	}
	return len(text) + 1
}
