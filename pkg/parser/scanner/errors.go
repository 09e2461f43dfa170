package scanner

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is the sentinel wrapped by every MalformedInputError.
var ErrMalformedInput = errors.New("malformed input")

// MalformedInputError reports input the scanner cannot structure: an
// unbalanced or mismatched bracket, or an unterminated string or comment.
// Line and Column point at the offending token; for unterminated literals and
// unclosed scopes that is where the literal or scope opened.
type MalformedInputError struct {
	Path   string
	Line   int
	Column int
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Reason)
	}
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Reason)
}

// Unwrap returns ErrMalformedInput.
func (e *MalformedInputError) Unwrap() error {
	return ErrMalformedInput
}
