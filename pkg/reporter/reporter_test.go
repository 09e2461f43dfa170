package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/fix"
	"github.com/yaklabco/bracelint/pkg/lint"
	_ "github.com/yaklabco/bracelint/pkg/lint/rules"
	"github.com/yaklabco/bracelint/pkg/parser/scanner"
	"github.com/yaklabco/bracelint/pkg/reporter"
	"github.com/yaklabco/bracelint/pkg/runner"
)

const testSource = "struct point {}\nlet a=1\n"

// Each format name must parse, validate and build a reporter consistently.
func TestFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  reporter.Format // empty when the name is rejected
	}{
		{"", reporter.FormatText},
		{"text", reporter.FormatText},
		{"json", reporter.FormatJSON},
		{"sarif", reporter.FormatSARIF},
		{"diff", reporter.FormatDiff},
		{"table", ""},
		{"summary", ""},
		{"xml", ""},
	}

	for _, tt := range tests {
		t.Run("format="+tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			rep, newErr := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: reporter.Format(tt.input), Color: "never"})

			if tt.want == "" {
				require.Error(t, err)
				require.Error(t, newErr)
				assert.Nil(t, rep)
				assert.False(t, reporter.Format(tt.input).IsValid())
				return
			}
			require.NoError(t, err)
			require.NoError(t, newErr)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
			assert.NotNil(t, rep)
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()

	assert.NotNil(t, opts.Writer)
	assert.NotNil(t, opts.ErrorWriter)
	assert.Equal(t, reporter.FormatText, opts.Format)
	assert.Equal(t, "auto", opts.Color)
	assert.True(t, opts.ShowContext)
	assert.True(t, opts.ShowSummary)
	assert.True(t, opts.GroupByFile)
	assert.False(t, opts.Compact)
	assert.Equal(t, config.RuleFormatName, opts.RuleFormat)
}

func TestReporters_CleanRunWritesNothing(t *testing.T) {
	t.Parallel()

	clean := &runner.Result{
		Files: []runner.FileOutcome{{
			Path:   "/work/Clean.swift",
			Result: &lint.PipelineResult{FileResult: &lint.FileResult{}},
		}},
		Stats: runner.Stats{FilesProcessed: 1},
	}

	for _, format := range []reporter.Format{reporter.FormatText, reporter.FormatJSON, reporter.FormatDiff} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			opts := reporter.DefaultOptions()
			opts.Writer = &buf
			opts.Format = format
			opts.Color = "never"

			rep, err := reporter.New(opts)
			require.NoError(t, err)

			for _, result := range []*runner.Result{nil, clean} {
				count, err := rep.Report(context.Background(), result)
				require.NoError(t, err)
				assert.Zero(t, count)
			}
			assert.Empty(t, buf.String())
		})
	}
}

func TestTextReporter_WithViolations(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Color = "never"
	opts.RuleFormat = config.RuleFormatID
	opts.WorkingDir = "/work"

	count, err := reporter.NewTextReporter(opts).Report(context.Background(), lintedResult(t))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	output := buf.String()
	assert.Contains(t, output, "Sources/Point.swift (2 issues)\n")
	assert.Contains(t, output, "Sources/Point.swift:1:8  error  type name 'point' does not match")
	assert.Contains(t, output, "        struct point {}\n               ^\n")
	assert.Contains(t, output, "(BL001)")
	assert.Contains(t, output, "2 issues (1 error, 1 warning) in 1 file")
}

func TestTextReporter_RuleFormatAndNoContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Color = "never"
	opts.ShowContext = false
	opts.ShowSummary = false
	opts.GroupByFile = false

	_, err := reporter.NewTextReporter(opts).Report(context.Background(), lintedResult(t))
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "(type-naming)")
	assert.NotContains(t, output, "BL010")
	assert.NotContains(t, output, "struct point {}\n")
	assert.NotContains(t, output, "issues (")
}

func TestTextReporter_FileError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Color = "never"

	result := &runner.Result{
		Files: []runner.FileOutcome{{Path: "Broken.swift", Error: errors.New("unterminated string")}},
		Stats: runner.Stats{FilesErrored: 1},
	}

	count, err := reporter.NewTextReporter(opts).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Contains(t, buf.String(), "Broken.swift: error: unterminated string\n")
	assert.Contains(t, buf.String(), "1 file could not be linted")
}

func TestJSONReporter_Records(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.WorkingDir = "/work"

	count, err := reporter.NewJSONReporter(opts).Report(context.Background(), lintedResult(t))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var records []reporter.JSONRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 2)

	assert.Equal(t, "Sources/Point.swift", records[0].Path)
	assert.Equal(t, "BL010", records[0].RuleID)
	assert.Equal(t, config.SeverityError, records[0].Severity)
	assert.Equal(t, 1, records[0].Line)
	assert.Equal(t, 8, records[0].Column)
	assert.Equal(t, "BL001", records[1].RuleID)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.ElementsMatch(t,
		[]string{"path", "ruleId", "severity", "line", "column", "message"},
		keys(raw[0]))
}

func TestJSONReporter_MalformedFile(t *testing.T) {
	t.Parallel()

	profile := config.BuiltinLanguages()["swift"]
	_, parseErr := scanner.New().Parse(context.Background(), "Broken.swift", []byte("let a = 1\nlet s = \"open\n"), profile)
	require.Error(t, parseErr)

	result := &runner.Result{
		Files: []runner.FileOutcome{{
			Path:  "Broken.swift",
			Error: fmt.Errorf("%w: %w", lint.ErrParseFailure, parseErr),
		}},
	}

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Compact = true

	count, err := reporter.NewJSONReporter(opts).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Zero(t, count)

	var records []reporter.JSONRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, reporter.FileErrorRuleID, records[0].RuleID)
	assert.Equal(t, config.SeverityError, records[0].Severity)
	assert.Equal(t, 2, records[0].Line)
	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 1)
}

func TestSARIFReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.ToolVersion = "1.2.3"
	opts.WorkingDir = "/work"

	count, err := reporter.NewSARIFReporter(opts).Report(context.Background(), lintedResult(t))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var doc reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Runs, 1)

	run := doc.Runs[0]
	assert.Equal(t, "bracelint", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)
	require.Len(t, run.Tool.Driver.Rules, 2)
	assert.Equal(t, "type-naming", run.Tool.Driver.Rules[0].Name)
	assert.Equal(t, "naming", run.Tool.Driver.Rules[0].Properties["category"])

	require.Len(t, run.Results, 2)
	assert.Equal(t, "error", run.Results[0].Level)
	assert.Equal(t, "Sources/Point.swift", run.Results[0].Locations[0].PhysicalLocation.ArtifactLocation.URI)

	// The operator fix inserts a space before and after '='.
	arrow := run.Results[1]
	assert.Equal(t, "warning", arrow.Level)
	require.Len(t, arrow.Fixes, 1)
	replacements := arrow.Fixes[0].ArtifactChanges[0].Replacements
	require.NotEmpty(t, replacements)
	assert.Equal(t, 2, replacements[0].DeletedRegion.StartLine)
	assert.Equal(t, " ", replacements[0].InsertedContent.Text)
}

func TestSARIFReporter_CleanRunStillWritesDocument(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf

	count, err := reporter.NewSARIFReporter(opts).Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Contains(t, buf.String(), `"version": "2.1.0"`)
	assert.Contains(t, buf.String(), `"results": []`)
}

func TestSARIFReporter_FileErrorsBecomeNotifications(t *testing.T) {
	t.Parallel()

	profile := config.BuiltinLanguages()["swift"]
	_, parseErr := scanner.New().Parse(context.Background(), "Broken.swift", []byte("let s = \"open\n"), profile)
	require.Error(t, parseErr)

	result := lintedResult(t)
	result.Files = append(result.Files, runner.FileOutcome{
		Path:  "/work/Broken.swift",
		Error: fmt.Errorf("%w: %w", lint.ErrParseFailure, parseErr),
	})

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.WorkingDir = "/work"

	count, err := reporter.NewSARIFReporter(opts).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var doc reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	run := doc.Runs[0]

	assert.Equal(t, 0, run.Results[0].RuleIndex)
	assert.Equal(t, 1, run.Results[1].RuleIndex)

	require.Len(t, run.Invocations, 1)
	invocation := run.Invocations[0]
	assert.False(t, invocation.ExecutionSuccessful)
	require.Len(t, invocation.Notifications, 1)
	note := invocation.Notifications[0]
	assert.Equal(t, "error", note.Level)
	assert.Equal(t, "Broken.swift", note.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	require.NotNil(t, note.Locations[0].PhysicalLocation.Region)
	assert.Equal(t, 1, note.Locations[0].PhysicalLocation.Region.StartLine)
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	diff := fix.GenerateDiff("/work/A.swift", []byte("let a=1\n"), []byte("let a = 1\n"))
	result := &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "/work/A.swift", Result: &lint.PipelineResult{FileResult: &lint.FileResult{}, Diff: diff}},
			{Path: "/work/B.swift", Result: &lint.PipelineResult{FileResult: &lint.FileResult{}}},
		},
	}

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Color = "never"
	opts.WorkingDir = "/work"

	count, err := reporter.NewDiffReporter(opts).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	output := buf.String()
	assert.Contains(t, output, "diff --git a/A.swift b/A.swift\n")
	assert.Contains(t, output, "-let a=1\n")
	assert.Contains(t, output, "+let a = 1\n")
	assert.Contains(t, output, "1 file changed, 1 insertion(+), 1 deletion(-)")
	assert.NotContains(t, output, "B.swift")
}

func TestDiffReporter_NoNewlineMarker(t *testing.T) {
	t.Parallel()

	diff := fix.GenerateDiff("/work/A.swift", []byte("let a=1"), []byte("let a = 1\n"))
	result := &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "/work/A.swift", Result: &lint.PipelineResult{FileResult: &lint.FileResult{}, Diff: diff}},
		},
	}

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Color = "never"
	opts.WorkingDir = "/work"
	opts.ShowSummary = false

	_, err := reporter.NewDiffReporter(opts).Report(context.Background(), result)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "-let a=1\n"+fix.NoNewlineMarker+"\n+let a = 1\n")
	assert.NotContains(t, output, "file changed")
}

// lintedResult lints testSource as /work/Sources/Point.swift with the naming
// and spacing rules.
func lintedResult(t *testing.T) *runner.Result {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Categories = []config.Category{config.CategoryNaming, config.CategorySpacing}
	cfg.Fix = true

	engine := lint.NewEngine(scanner.New(), lint.DefaultRegistry)
	fileResult, err := engine.LintFile(context.Background(), "/work/Sources/Point.swift", []byte(testSource), cfg)
	require.NoError(t, err)
	require.Len(t, fileResult.Violations, 2)

	return &runner.Result{
		Files: []runner.FileOutcome{{
			Path:   "/work/Sources/Point.swift",
			Result: &lint.PipelineResult{FileResult: fileResult},
		}},
		Stats: runner.Stats{
			FilesProcessed:  1,
			FilesWithIssues: 1,
			ViolationsTotal: 2,
			ViolationsBySeverity: map[config.Severity]int{
				config.SeverityError:   1,
				config.SeverityWarning: 1,
			},
		},
	}
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
