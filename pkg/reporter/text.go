package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/bracelint/internal/ui/pretty"
	"github.com/yaklabco/bracelint/pkg/lint"
	"github.com/yaklabco/bracelint/pkg/runner"
	"github.com/yaklabco/bracelint/pkg/source"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  pretty.TerminalWidth(opts.Writer),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. A clean run writes nothing.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		total += r.reportFile(file)
	}

	stats := result.Stats
	if r.opts.ShowSummary && (total > 0 || stats.FilesErrored > 0 || stats.ViolationsFixed > 0) {
		if r.opts.GroupByFile && total > 0 {
			fmt.Fprintln(r.bw)
		}
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(stats))
	}

	return total, nil
}

// reportFile writes one file's error or violations and returns how many
// violations it wrote.
func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := r.opts.displayPath(file.Path)

	if file.Error != nil {
		fmt.Fprint(r.bw, r.styles.FormatFileError(path, file.Error))
		return 0
	}

	violations := file.Violations()
	if len(violations) == 0 {
		return 0
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(violations)))
	}

	var doc *source.Document
	if r.opts.ShowContext {
		doc = file.Result.Doc
	}

	for i := range violations {
		v := violations[i]
		v.FilePath = path
		fmt.Fprint(r.bw, r.styles.FormatViolation(&v, sourceLine(doc, &v), r.width, r.opts.RuleFormat))
	}

	return len(violations)
}

// sourceLine returns the text of the violation's first line, or "" when no
// document is available or the violation is file-level.
func sourceLine(doc *source.Document, v *lint.Violation) string {
	if doc == nil || v.StartLine < 1 {
		return ""
	}
	return doc.LineText(v.StartLine)
}
