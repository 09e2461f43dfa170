package runner

import (
	"cmp"
	"errors"

	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/lint"
)

// FileOutcome is what happened to one discovered file. Exactly one of
// Result and Error is set.
type FileOutcome struct {
	Path   string
	Result *lint.PipelineResult

	// Error means the file could not be read or parsed. It wraps one of
	// the lint pipeline's sentinel errors.
	Error error
}

// Violations returns the file's violations, or nil for a failed file.
func (o FileOutcome) Violations() []lint.Violation {
	if o.Result == nil || o.Result.FileResult == nil {
		return nil
	}
	return o.Result.Violations
}

// Stats are the run totals shown in summaries.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int

	// FilesSkipped counts files left unwritten because they changed on
	// disk while being fixed.
	FilesSkipped int

	// FilesErrored counts unreadable or unparsable files; ParseErrors is
	// the unparsable subset.
	FilesErrored int
	ParseErrors  int

	FilesWithIssues      int
	ViolationsTotal      int
	ViolationsFixable    int
	ViolationsBySeverity map[config.Severity]int

	// RuleFailures counts faulted rules, summed over files.
	RuleFailures int

	FilesModified int

	// ViolationsFixed is the number of edits applied, summed over files.
	ViolationsFixed int
}

// Result is everything a run produced, ready for a reporter.
type Result struct {
	// Files is in discovery order, which is sorted by path.
	Files []FileOutcome
	Stats Stats
}

// HasFailures reports whether any violation has error severity.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.ViolationsBySeverity[config.SeverityError] > 0
}

// HasIssues reports whether any violation was found.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.ViolationsTotal > 0
}

// HasFileErrors reports whether any file could not be read or parsed.
func (r *Result) HasFileErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{ViolationsBySeverity: make(map[config.Severity]int)}
}

// accumulate appends outcome and folds it into the totals.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)
	stats := &r.Stats

	switch res := outcome.Result; {
	case outcome.Error != nil:
		stats.FilesErrored++
		if errors.Is(outcome.Error, lint.ErrParseFailure) {
			stats.ParseErrors++
		}

	case res != nil:
		stats.FilesProcessed++
		stats.ViolationsFixed += res.TotalEditsApplied
		if res.Skipped {
			stats.FilesSkipped++
		}
		if res.Written {
			stats.FilesModified++
		}
		if res.FileResult == nil {
			return
		}

		stats.ViolationsTotal += len(res.Violations)
		stats.ViolationsFixable += res.FixableCount()
		stats.RuleFailures += len(res.RuleErrors)
		if len(res.Violations) > 0 {
			stats.FilesWithIssues++
		}
		for _, v := range res.Violations {
			stats.ViolationsBySeverity[cmp.Or(v.Severity, config.SeverityWarning)]++
		}
	}
}
