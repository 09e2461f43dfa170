// Package pretty renders human-readable lint output with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultWidth is the excerpt width used when the writer is not a terminal.
const DefaultWidth = 100

// Color modes accepted by IsColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ANSI palette indexes.
const (
	red    = lipgloss.Color("9")
	green  = lipgloss.Color("10")
	yellow = lipgloss.Color("11")
	cyan   = lipgloss.Color("14")
	grey   = lipgloss.Color("8")
	silver = lipgloss.Color("7")
)

// Styles holds one lipgloss style per element of the text and diff output.
// Without color every field is the zero style and renders text unchanged.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style

	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	Suggestion lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns the output styles, colored when colorEnabled is set.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return &Styles{}
	}

	base := lipgloss.NewStyle()
	fg := func(c lipgloss.Color) lipgloss.Style { return base.Foreground(c) }
	bold := base.Bold(true)

	return &Styles{
		Error:   fg(red).Bold(true),
		Warning: fg(yellow).Bold(true),

		FilePath:   bold,
		Location:   fg(grey),
		RuleID:     fg(grey),
		Message:    base,
		Suggestion: fg(green).Italic(true),
		SourceLine: fg(silver),
		Caret:      fg(red),

		DiffHeader:  bold,
		DiffHunk:    fg(cyan),
		DiffAdd:     fg(green),
		DiffRemove:  fg(red),
		DiffContext: fg(grey),

		SummaryTitle: bold,
		SummaryValue: base,
		Success:      fg(green).Bold(true),
		Failure:      fg(red).Bold(true),

		Dim:  fg(grey),
		Bold: bold,
	}
}

// IsColorEnabled reports whether output to writer should be colored.
// "always" and "never" are absolute. Anything else means auto: color only
// on a terminal and only when NO_COLOR is unset.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// TerminalWidth returns the column count of writer when it is a terminal,
// or DefaultWidth otherwise.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return DefaultWidth
}
