package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/lint"
)

// excerptIndent aligns source excerpts under the violation line.
const excerptIndent = "        "

// FormatViolation formats a single violation for terminal output. A
// non-empty sourceLine is shown with a caret, cut to fit width columns.
func (s *Styles) FormatViolation(v *lint.Violation, sourceLine string, width int, ruleFormat config.RuleFormat) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(v.FilePath),
		v.StartLine,
		v.StartColumn,
	)

	ruleIdentifier := config.FormatRuleID(ruleFormat, v.RuleID, v.RuleName)

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(v.Severity),
		s.Message.Render(v.Message),
		s.RuleID.Render("("+ruleIdentifier+")"),
	)

	if sourceLine != "" && v.StartLine > 0 {
		builder.WriteString(s.FormatSourceContext(sourceLine, v.StartColumn, width))
	}

	if v.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(v.Suggestion) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret under the
// 1-based byte column.
func (s *Styles) FormatSourceContext(line string, column, width int) string {
	// Tabs would shift the caret; show them as single spaces.
	line = strings.ReplaceAll(line, "\t", " ")

	caret := 0
	if column > 0 {
		caret = utf8.RuneCountInString(line[:min(column-1, len(line))])
	}

	shown := Truncate(line, width-len(excerptIndent))
	// A caret past the cut would point at text that is not shown.
	limit := utf8.RuneCountInString(shown)
	if shown != line {
		limit--
	}

	var builder strings.Builder
	builder.WriteString(excerptIndent + s.SourceLine.Render(shown) + "\n")
	if column > 0 && caret <= limit {
		builder.WriteString(excerptIndent + strings.Repeat(" ", caret) + s.Caret.Render("^") + "\n")
	}
	return builder.String()
}

// Truncate cuts text to at most width runes, marking the cut with an ellipsis.
// A width below one leaves text unchanged.
func Truncate(text string, width int) string {
	if width < 1 || utf8.RuneCountInString(text) <= width {
		return text
	}
	runes := []rune(text)
	return string(runes[:width-1]) + "…"
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// FormatFileError formats a file that could not be linted.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n",
		s.FilePath.Render(path),
		s.Error.Render(fmt.Sprintf("error: %v", err)),
	)
}
