package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/runner"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 issues (8 errors, 4 warnings) in 3 files, 6 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	if stats.ViolationsTotal == 0 {
		parts = append(parts, s.Success.Render("No issues found")+
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))))
	} else {
		var severityParts []string
		if errs := stats.ViolationsBySeverity[config.SeverityError]; errs > 0 {
			severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d %s", errs, plural(errs, "error", "errors"))))
		}
		if warnings := stats.ViolationsBySeverity[config.SeverityWarning]; warnings > 0 {
			severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", warnings, plural(warnings, "warning", "warnings"))))
		}

		main := fmt.Sprintf("%d %s", stats.ViolationsTotal, plural(stats.ViolationsTotal, "issue", "issues"))
		if len(severityParts) > 0 {
			main += " (" + strings.Join(severityParts, ", ") + ")"
		}
		parts = append(parts, main+fmt.Sprintf(" in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, wordFile, wordFiles)))

		if stats.ViolationsFixable > 0 {
			parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.ViolationsFixable)))
		}
	}

	if stats.ViolationsFixed > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixed in %d %s",
			stats.ViolationsFixed, stats.FilesModified, plural(stats.FilesModified, wordFile, wordFiles))))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s could not be linted",
			stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatDiffStat formats the closing line of a dry run, in the style of
// git's shortstat: "2 files changed, 3 insertions(+), 1 deletion(-)".
func (s *Styles) FormatDiffStat(files, additions, deletions int) string {
	line := fmt.Sprintf("%d %s changed", files, plural(files, wordFile, wordFiles))
	if additions > 0 {
		line += ", " + s.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, plural(additions, "insertion", "insertions")))
	}
	if deletions > 0 {
		line += ", " + s.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, plural(deletions, "deletion", "deletions")))
	}
	return line + "\n"
}
