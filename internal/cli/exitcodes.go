package cli

import (
	"errors"
	"fmt"

	"github.com/yaklabco/bracelint/pkg/runner"
)

// Exit codes for bracelint.
const (
	// ExitSuccess indicates a clean run.
	ExitSuccess = 0

	// ExitViolations indicates lint completed and found violations.
	ExitViolations = 1

	// ExitUsage indicates invalid command-line usage or configuration.
	ExitUsage = 2

	// ExitFileErrors indicates that some files could not be read or parsed.
	ExitFileErrors = 3
)

// ErrLintIssuesFound signals that violations were reported. It carries no
// message worth logging.
var ErrLintIssuesFound = errors.New("lint issues found")

// ExitError pairs an error with the process exit code it maps to.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// usageError wraps err with ExitUsage.
func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Err: err}
}

// ExitCodeFromResult determines the exit code of a finished run. File errors
// outrank violations.
func ExitCodeFromResult(result *runner.Result) int {
	switch {
	case result.HasFileErrors():
		return ExitFileErrors
	case result.HasIssues():
		return ExitViolations
	default:
		return ExitSuccess
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, ErrLintIssuesFound) {
		return ExitViolations
	}
	return ExitUsage
}
