package lint

import (
	"errors"
	"fmt"
)

// ErrRulePanicked marks a rule failure caused by a panic rather than a
// returned error.
var ErrRulePanicked = errors.New("rule panicked")

// RuleFailureError records a rule that faulted during evaluation.
// The engine reports it as a violation and keeps evaluating other rules.
type RuleFailureError struct {
	RuleID string
	Cause  error
}

// NewRuleFailure wraps cause for the given rule.
func NewRuleFailure(ruleID string, cause error) *RuleFailureError {
	return &RuleFailureError{RuleID: ruleID, Cause: cause}
}

// newPanicFailure builds a failure from a recovered panic value.
func newPanicFailure(ruleID string, recovered any) *RuleFailureError {
	if err, ok := recovered.(error); ok {
		return NewRuleFailure(ruleID, fmt.Errorf("%w: %w", ErrRulePanicked, err))
	}
	return NewRuleFailure(ruleID, fmt.Errorf("%w: %v", ErrRulePanicked, recovered))
}

func (e *RuleFailureError) Error() string {
	if e.Cause == nil {
		return "rule " + e.RuleID + " failed"
	}
	return fmt.Sprintf("rule %s failed: %v", e.RuleID, e.Cause)
}

func (e *RuleFailureError) Unwrap() error {
	return e.Cause
}
