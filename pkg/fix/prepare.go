package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// RangeError describes an edit that does not fit its file.
type RangeError struct {
	Edit    TextEdit
	Message string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d] from %s: %s",
		e.Edit.StartOffset, e.Edit.EndOffset, ruleOrUnknown(e.Edit.RuleID), e.Message)
}

func ruleOrUnknown(id string) string {
	if id == "" {
		return "unknown rule"
	}
	return id
}

// Plan is the resolved set of edits for one file.
type Plan struct {
	// Accepted edits are ordered and disjoint, ready for ApplyEdits.
	Accepted []TextEdit

	// Skipped edits overlapped an accepted edit. They are retried on the
	// next fix pass, against the updated content.
	Skipped []TextEdit

	// Merged counts overlapping deletions folded into one.
	Merged int

	// Duplicates counts edits identical to an accepted edit, as when two
	// rules insert the same space.
	Duplicates int
}

// HasConflicts reports whether any edit was skipped.
func (p Plan) HasConflicts() bool {
	return len(p.Skipped) > 0
}

// ValidateEdits checks that every edit lies within content of length
// contentLen. It returns the first bad edit as a *RangeError.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			return &RangeError{Edit: edit, Message: "start offset is negative"}
		case edit.EndOffset < edit.StartOffset:
			return &RangeError{Edit: edit, Message: "end offset is before start offset"}
		case edit.EndOffset > contentLen:
			return &RangeError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// SortEdits orders edits by start offset, then end offset. The sort is
// stable, so edits at the same range keep the order rules proposed them in.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		return cmp.Or(
			cmp.Compare(a.StartOffset, b.StartOffset),
			cmp.Compare(a.EndOffset, b.EndOffset),
		)
	})
}

// Prepare validates, orders and resolves the edits proposed for a file.
//
// Resolution walks the sorted edits and keeps the earliest of any
// overlapping pair, with two exceptions: an edit identical to the one
// before it is dropped as a duplicate, and overlapping deletions merge into
// one deletion of their union. Two different insertions at the same offset
// conflict. The input slice is not modified.
func Prepare(edits []TextEdit, contentLen int) (Plan, error) {
	if len(edits) == 0 {
		return Plan{}, nil
	}
	if err := ValidateEdits(edits, contentLen); err != nil {
		return Plan{}, err
	}

	sorted := slices.Clone(edits)
	SortEdits(sorted)

	var plan Plan
	current := sorted[0]

	for _, edit := range sorted[1:] {
		switch {
		case sameEdit(current, edit):
			plan.Duplicates++
		case current.IsDeletion() && edit.IsDeletion() && edit.StartOffset <= current.EndOffset:
			current.EndOffset = max(current.EndOffset, edit.EndOffset)
			plan.Merged++
		case current.IsInsertion() && edit.IsInsertion() && edit.StartOffset == current.StartOffset:
			plan.Skipped = append(plan.Skipped, edit)
		case edit.StartOffset >= current.EndOffset:
			plan.Accepted = append(plan.Accepted, current)
			current = edit
		default:
			plan.Skipped = append(plan.Skipped, edit)
		}
	}
	plan.Accepted = append(plan.Accepted, current)

	return plan, nil
}

func sameEdit(a, b TextEdit) bool {
	return a.StartOffset == b.StartOffset && a.EndOffset == b.EndOffset && a.NewText == b.NewText
}
