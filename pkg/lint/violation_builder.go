package lint

import (
	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/fix"
	"github.com/yaklabco/bracelint/pkg/source"
)

// ViolationBuilder helps construct Violation values.
type ViolationBuilder struct {
	v Violation
}

// NewViolationAt starts building a violation at a specific position.
func NewViolationAt(ruleID, filePath string, pos source.SourcePosition, message string) *ViolationBuilder {
	return &ViolationBuilder{
		v: Violation{
			RuleID:      ruleID,
			Message:     message,
			FilePath:    filePath,
			StartLine:   pos.StartLine,
			StartColumn: pos.StartColumn,
			EndLine:     pos.EndLine,
			EndColumn:   pos.EndColumn,
		},
	}
}

// NewViolation starts building a violation spanning tokens first through
// last of the rule's document.
func NewViolation(rc *RuleContext, ruleID string, first, last int, message string) *ViolationBuilder {
	pos := rc.Doc.Span(first, last)
	b := NewViolationAt(ruleID, rc.Path(), pos, message)
	if rc.Registry != nil {
		if rule, ok := rc.Registry.GetByID(ruleID); ok {
			b.v.RuleName = rule.Name()
		}
	}
	return b
}

// NewLineViolation starts building a violation at a column of a line.
// The span covers width columns, or one column when width is not positive.
func NewLineViolation(rc *RuleContext, ruleID string, line, column, width int, message string) *ViolationBuilder {
	if width < 1 {
		width = 1
	}
	pos := source.SourcePosition{
		StartLine:   line,
		StartColumn: column,
		EndLine:     line,
		EndColumn:   column + width,
	}
	return NewViolationAt(ruleID, rc.Path(), pos, message)
}

// WithSeverity sets the severity.
func (b *ViolationBuilder) WithSeverity(s config.Severity) *ViolationBuilder {
	b.v.Severity = s
	return b
}

// WithSuggestion sets a human-readable fix suggestion.
func (b *ViolationBuilder) WithSuggestion(s string) *ViolationBuilder {
	b.v.Suggestion = s
	return b
}

// WithFix adds fix edits from an EditBuilder.
func (b *ViolationBuilder) WithFix(builder *fix.EditBuilder) *ViolationBuilder {
	if builder != nil {
		b.v.FixEdits = append(b.v.FixEdits, builder.Edits...)
	}
	return b
}

// WithEdit adds a single fix edit.
func (b *ViolationBuilder) WithEdit(edit fix.TextEdit) *ViolationBuilder {
	b.v.FixEdits = append(b.v.FixEdits, edit)
	return b
}

// Build returns the constructed Violation.
func (b *ViolationBuilder) Build() Violation {
	return b.v
}
