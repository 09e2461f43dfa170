package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/lint"
	"github.com/yaklabco/bracelint/pkg/runner"
	"github.com/yaklabco/bracelint/pkg/source"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://json.schemastore.org/sarif-2.1.0.json"
	toolURI        = "https://github.com/yaklabco/bracelint"
)

// SARIFOutput is a SARIF 2.1.0 log holding a single run. Only the parts
// of the format bracelint produces are modeled.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun is one invocation of the linter.
type SARIFRun struct {
	Tool        SARIFTool         `json:"tool"`
	Invocations []SARIFInvocation `json:"invocations,omitempty"`
	Results     []SARIFResult     `json:"results"`
}

// SARIFTool wraps the driver component.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver names the tool and lists every rule that produced a result.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule is a reportingDescriptor.
type SARIFRule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name,omitempty"`
	ShortDescription SARIFText        `json:"shortDescription"`
	DefaultConfig    *SARIFRuleConfig `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any   `json:"properties,omitempty"`
}

// SARIFRuleConfig holds a rule's default level.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFText is the {"text": ...} object SARIF uses for messages,
// descriptions and inserted content.
type SARIFText struct {
	Text string `json:"text"`
}

// SARIFInvocation reports whether the run completed and carries a
// notification for each file that could not be linted.
type SARIFInvocation struct {
	ExecutionSuccessful bool                `json:"executionSuccessful"`
	Notifications       []SARIFNotification `json:"toolExecutionNotifications,omitempty"`
}

// SARIFNotification describes a file error.
type SARIFNotification struct {
	Level     string          `json:"level"`
	Message   SARIFText       `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

// SARIFResult is one violation.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFText       `json:"message"`
	Locations []SARIFLocation `json:"locations"`
	Fixes     []SARIFFix      `json:"fixes,omitempty"`
}

// SARIFLocation places a result or notification in a file.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation is a file and, optionally, a region within it.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           *SARIFRegion          `json:"region,omitempty"`
}

// SARIFArtifactLocation holds a file URI, relative to the working
// directory when possible.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion is a 1-based line and column span.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// SARIFFix is the auto-fix of a violation, as replacements in one file.
type SARIFFix struct {
	Description     SARIFText             `json:"description"`
	ArtifactChanges []SARIFArtifactChange `json:"artifactChanges"`
}

// SARIFArtifactChange lists replacements within one file.
type SARIFArtifactChange struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Replacements     []SARIFReplacement    `json:"replacements"`
}

// SARIFReplacement swaps a region for new text. An insertion has an
// empty region.
type SARIFReplacement struct {
	DeletedRegion   SARIFRegion `json:"deletedRegion"`
	InsertedContent *SARIFText  `json:"insertedContent,omitempty"`
}

// SARIFReporter writes a SARIF log for code scanning services.
type SARIFReporter struct {
	opts     Options
	out      io.Writer
	registry *lint.Registry
}

// NewSARIFReporter creates a SARIF reporter. Rule metadata comes from
// lint.DefaultRegistry.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts:     opts,
		out:      opts.Writer,
		registry: lint.DefaultRegistry.Snapshot(),
	}
}

// Report writes the log and returns the number of results. A clean run
// still produces a complete document.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	run := r.buildRun(result)

	enc := json.NewEncoder(r.out)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	doc := SARIFOutput{Schema: sarifSchemaURI, Version: sarifVersion, Runs: []SARIFRun{run}}
	if err := enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}
	return len(run.Results), nil
}

func (r *SARIFReporter) buildRun(result *runner.Result) SARIFRun {
	version := r.opts.ToolVersion
	if version == "" {
		version = "dev"
	}
	run := SARIFRun{
		Tool: SARIFTool{Driver: SARIFDriver{
			Name:           "bracelint",
			Version:        version,
			InformationURI: toolURI,
			Rules:          []SARIFRule{},
		}},
		Results: []SARIFResult{},
	}
	if result == nil {
		return run
	}

	ruleIndex := make(map[string]int)
	invocation := SARIFInvocation{ExecutionSuccessful: true}

	for _, file := range result.Files {
		uri := r.opts.displayPath(file.Path)

		if file.Error != nil {
			invocation.ExecutionSuccessful = false
			invocation.Notifications = append(invocation.Notifications, fileNotification(uri, file.Error))
			continue
		}

		violations := file.Violations()
		for i := range violations {
			v := &violations[i]
			idx, seen := ruleIndex[v.RuleID]
			if !seen {
				idx = len(run.Tool.Driver.Rules)
				ruleIndex[v.RuleID] = idx
				run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, r.describeRule(v))
			}
			res := sarifResult(file.Result.Doc, uri, v)
			res.RuleIndex = idx
			run.Results = append(run.Results, res)
		}
	}

	run.Invocations = []SARIFInvocation{invocation}
	return run
}

// describeRule prefers the registered rule's metadata over what the
// violation carries.
func (r *SARIFReporter) describeRule(v *lint.Violation) SARIFRule {
	rule := SARIFRule{
		ID:               v.RuleID,
		Name:             v.RuleName,
		ShortDescription: SARIFText{Text: v.Message},
		DefaultConfig:    &SARIFRuleConfig{Level: sarifLevel(v.Severity)},
	}
	if registered, ok := r.registry.GetByID(v.RuleID); ok {
		rule.ShortDescription.Text = registered.Description()
		rule.DefaultConfig.Level = sarifLevel(registered.DefaultSeverity())
		rule.Properties = map[string]any{"category": string(registered.Category())}
	}
	return rule
}

func fileNotification(uri string, err error) SARIFNotification {
	rec := fileErrorRecord(err)
	note := SARIFNotification{
		Level:   sarifLevel(rec.Severity),
		Message: SARIFText{Text: rec.Message},
		Locations: []SARIFLocation{{
			PhysicalLocation: SARIFPhysicalLocation{ArtifactLocation: SARIFArtifactLocation{URI: uri}},
		}},
	}
	if rec.Line > 0 {
		note.Locations[0].PhysicalLocation.Region = &SARIFRegion{StartLine: rec.Line, StartColumn: rec.Column}
	}
	return note
}

func sarifResult(doc *source.Document, uri string, v *lint.Violation) SARIFResult {
	// SARIF lines start at 1, so file-level violations go on the first line.
	region := SARIFRegion{StartLine: 1}
	if pos := v.SourcePosition(); !pos.IsZero() {
		region = SARIFRegion{
			StartLine:   pos.StartLine,
			StartColumn: pos.StartColumn,
			EndLine:     pos.EndLine,
			EndColumn:   pos.EndColumn,
		}
	}

	res := SARIFResult{
		RuleID:  v.RuleID,
		Level:   sarifLevel(v.Severity),
		Message: SARIFText{Text: v.Message},
		Locations: []SARIFLocation{{
			PhysicalLocation: SARIFPhysicalLocation{
				ArtifactLocation: SARIFArtifactLocation{URI: uri},
				Region:           &region,
			},
		}},
	}
	if fix := sarifFix(doc, uri, v); fix != nil {
		res.Fixes = []SARIFFix{*fix}
	}
	return res
}

// sarifFix converts the violation's byte-offset edits to line and column
// replacements. It returns nil when there is nothing to convert.
func sarifFix(doc *source.Document, uri string, v *lint.Violation) *SARIFFix {
	if doc == nil || !v.HasFix() {
		return nil
	}

	var replacements []SARIFReplacement
	for _, edit := range v.FixEdits {
		startLine, startCol := doc.LineAt(edit.StartOffset)
		endLine, endCol := doc.LineAt(edit.EndOffset)
		if startLine == 0 || endLine == 0 {
			continue
		}
		replacements = append(replacements, SARIFReplacement{
			DeletedRegion:   SARIFRegion{StartLine: startLine, StartColumn: startCol, EndLine: endLine, EndColumn: endCol},
			InsertedContent: &SARIFText{Text: edit.NewText},
		})
	}
	if len(replacements) == 0 {
		return nil
	}

	description := v.Suggestion
	if description == "" {
		description = v.Message
	}
	return &SARIFFix{
		Description: SARIFText{Text: description},
		ArtifactChanges: []SARIFArtifactChange{{
			ArtifactLocation: SARIFArtifactLocation{URI: uri},
			Replacements:     replacements,
		}},
	}
}

func sarifLevel(severity config.Severity) string {
	if severity == config.SeverityError {
		return "error"
	}
	return "warning"
}
