package reporter

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/bracelint/internal/ui/pretty"
	"github.com/yaklabco/bracelint/pkg/fix"
	"github.com/yaklabco/bracelint/pkg/runner"
)

// DiffReporter prints the pending fixes of a dry run as git-style unified
// diffs, one per changed file.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffReporter creates a diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Report writes a diff for each file with pending changes and returns how
// many there were. Files that failed are reported inline.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	var files, additions, deletions int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprint(r.out, r.styles.FormatFileError(r.opts.displayPath(file.Path), file.Error))
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}
		diff := file.Result.Diff
		files++
		additions += diff.Additions
		deletions += diff.Deletions
		r.writeDiff(diff)
	}

	if files > 0 && r.opts.ShowSummary {
		fmt.Fprint(r.out, r.styles.FormatDiffStat(files, additions, deletions))
	}
	return files, nil
}

func (r *DiffReporter) writeDiff(diff *fix.Diff) {
	path := r.opts.displayPath(diff.Path)
	r.line(r.styles.DiffHeader, "diff --git a/"+path+" b/"+path)
	r.line(r.styles.DiffRemove, "--- a/"+path)
	r.line(r.styles.DiffAdd, "+++ b/"+path)

	for _, hunk := range diff.Hunks {
		r.line(r.styles.DiffHunk, hunk.Header())
		for _, dl := range hunk.Lines {
			style := r.styles.DiffContext
			switch dl.Kind {
			case fix.DiffLineAdd:
				style = r.styles.DiffAdd
			case fix.DiffLineRemove:
				style = r.styles.DiffRemove
			}
			r.line(style, dl.String())
			if dl.NoNewline {
				r.line(r.styles.Dim, fix.NoNewlineMarker)
			}
		}
	}
	fmt.Fprintln(r.out)
}

func (r *DiffReporter) line(style lipgloss.Style, text string) {
	fmt.Fprintln(r.out, style.Render(text))
}
