// Package fix holds the text edits rules propose, the logic that resolves
// and applies them, and the diffs shown for pending fixes.
package fix

// TextEdit replaces the bytes [StartOffset, EndOffset) of a source file.
// An empty range is an insertion and an empty NewText a deletion.
type TextEdit struct {
	StartOffset int
	EndOffset   int
	NewText     string

	// RuleID names the rule that proposed the edit. It does not take part
	// in ordering or conflict resolution.
	RuleID string
}

// IsInsertion reports whether the edit only adds text.
func (e TextEdit) IsInsertion() bool {
	return e.StartOffset == e.EndOffset
}

// IsDeletion reports whether the edit only removes text.
func (e TextEdit) IsDeletion() bool {
	return e.NewText == "" && e.EndOffset > e.StartOffset
}

// EditBuilder accumulates the edits of one violation.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder creates a new EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{}
}

// ReplaceRange adds an edit that replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
}

// Insert adds an edit that inserts text at the given offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete adds an edit that deletes bytes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}
