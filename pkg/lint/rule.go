// Package lint provides the rule engine, violations, and registry for bracelint.
package lint

import (
	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/fix"
	"github.com/yaklabco/bracelint/pkg/source"
)

// Violation represents one instance of a rule failing at a location.
type Violation struct {
	// RuleID is the identifier of the rule that produced this violation.
	RuleID string

	// RuleName is the human-readable name of the rule (e.g., "operator-spacing").
	RuleName string

	// Message is the human-readable description of the issue.
	Message string

	// Severity indicates the importance of the violation.
	Severity config.Severity

	// FilePath is the path to the file containing the issue.
	FilePath string

	// StartLine is the 1-based line number where the issue starts.
	// Zero marks a file-level violation such as a rule failure.
	StartLine int

	// StartColumn is the 1-based column number where the issue starts.
	StartColumn int

	// EndLine is the 1-based line number where the issue ends.
	EndLine int

	// EndColumn is the 1-based column number just past the issue.
	EndColumn int

	// Suggestion is an optional human-readable fix suggestion.
	Suggestion string

	// FixEdits contains the text edits to fix this issue (may be empty).
	FixEdits []fix.TextEdit

	// Failure is set when the violation records a rule that faulted
	// instead of a style problem.
	Failure *RuleFailureError
}

// HasFix returns true if this violation has associated fix edits.
func (v *Violation) HasFix() bool {
	return len(v.FixEdits) > 0
}

// IsFailure reports whether the violation records a faulted rule.
func (v *Violation) IsFailure() bool {
	return v.Failure != nil
}

// SourcePosition returns the violation span as a SourcePosition.
func (v *Violation) SourcePosition() source.SourcePosition {
	return source.SourcePosition{
		StartLine:   v.StartLine,
		StartColumn: v.StartColumn,
		EndLine:     v.EndLine,
		EndColumn:   v.EndColumn,
	}
}

// Record is the stable, serializable shape of a violation.
type Record struct {
	RuleID   string          `json:"ruleId"`
	Severity config.Severity `json:"severity"`
	Line     int             `json:"line"`
	Column   int             `json:"column"`
	Message  string          `json:"message"`
}

// Record returns the serializable form of the violation.
func (v *Violation) Record() Record {
	return Record{
		RuleID:   v.RuleID,
		Severity: v.Severity,
		Line:     v.StartLine,
		Column:   v.StartColumn,
		Message:  v.Message,
	}
}

// Records converts violations to their serializable form, preserving order.
func Records(violations []Violation) []Record {
	out := make([]Record, 0, len(violations))
	for i := range violations {
		out = append(out, violations[i].Record())
	}
	return out
}

// Rule defines the interface that all lint rules must implement.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "BL001").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	// Category returns the group the rule belongs to.
	Category() config.Category

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// CanFix returns whether this rule can auto-fix issues.
	CanFix() bool

	// Apply executes the rule against the given context and returns violations.
	//
	// Rules must:
	//   - Return a violation for each problem found.
	//   - Treat the document as read-only.
	//   - Keep no state between calls.
	//   - Return error only for internal failures, not violations.
	Apply(ctx *RuleContext) ([]Violation, error)
}
