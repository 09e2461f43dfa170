package reporter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/bracelint/pkg/lint"
)

// Status describes what a render produced.
type Status struct {
	// Clean is true when there was nothing to report.
	Clean bool

	// Count is the number of violations written.
	Count int
}

// Render writes one ordered violation sequence as plain text or as JSON
// records. An empty sequence writes nothing and reports a clean status.
func Render(w io.Writer, violations []lint.Violation, format Format) (Status, error) {
	if format == "" {
		format = FormatText
	}
	if format != FormatText && format != FormatJSON {
		return Status{}, fmt.Errorf("render: format %q needs file results", format)
	}

	if len(violations) == 0 {
		return Status{Clean: true}, nil
	}

	status := Status{Count: len(violations)}

	if format == FormatJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(lint.Records(violations)); err != nil {
			return Status{}, fmt.Errorf("encode JSON: %w", err)
		}
		return status, nil
	}

	for i := range violations {
		v := &violations[i]
		if _, err := fmt.Fprintf(w, "%d:%d: %s: %s (%s)\n",
			v.StartLine, v.StartColumn, v.Severity, v.Message, v.RuleID); err != nil {
			return Status{}, fmt.Errorf("write: %w", err)
		}
	}
	return status, nil
}
