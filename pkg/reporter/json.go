package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/lint"
	"github.com/yaklabco/bracelint/pkg/parser/scanner"
	"github.com/yaklabco/bracelint/pkg/runner"
)

// FileErrorRuleID tags records for files that could not be linted.
const FileErrorRuleID = "file-error"

// JSONRecord is one violation with the path of its file.
type JSONRecord struct {
	Path string `json:"path"`
	lint.Record
}

// JSONReporter formats results as a flat list of records.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. A clean run writes nothing.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	records, count := r.buildRecords(result)
	if len(records) == 0 {
		return 0, nil
	}

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(records); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return count, nil
}

// buildRecords flattens the result in file order. It also returns the number
// of violation records, which excludes file errors.
func (r *JSONReporter) buildRecords(result *runner.Result) ([]JSONRecord, int) {
	if result == nil {
		return nil, 0
	}

	var records []JSONRecord
	var count int

	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)

		if file.Error != nil {
			records = append(records, JSONRecord{Path: path, Record: fileErrorRecord(file.Error)})
			continue
		}

		for _, rec := range lint.Records(file.Violations()) {
			records = append(records, JSONRecord{Path: path, Record: rec})
			count++
		}
	}

	return records, count
}

// fileErrorRecord describes a file error, positioned at the malformed input
// when the scanner reported one.
func fileErrorRecord(err error) lint.Record {
	rec := lint.Record{
		RuleID:   FileErrorRuleID,
		Severity: config.SeverityError,
		Message:  err.Error(),
	}

	var malformed *scanner.MalformedInputError
	if errors.As(err, &malformed) {
		rec.Line = malformed.Line
		rec.Column = malformed.Column
	}
	return rec
}
