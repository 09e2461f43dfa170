package lint

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/bracelint/internal/logging"
	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/fix"
	"github.com/yaklabco/bracelint/pkg/source"
)

// FileResult contains the results of linting a single file.
type FileResult struct {
	// Doc is the parsed file.
	Doc *source.Document

	// Language is the name of the profile the file was linted with.
	Language string

	// Violations contains all issues found, ordered by line, column and rule ID.
	Violations []Violation

	// Edits contains validated, sorted edits for auto-fix.
	// Empty if no fixes are available or --fix was not requested.
	Edits []fix.TextEdit

	// SkippedEdits overlapped an accepted edit; the next fix pass
	// proposes them again against the updated content.
	SkippedEdits []fix.TextEdit

	// EditConflicts is true if any edits were skipped due to conflicts.
	EditConflicts bool

	// RuleErrors contains the failures of rules that faulted, keyed by rule ID.
	RuleErrors map[string]error
}

// HasIssues returns true if any violations were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Violations) > 0
}

// HasFixes returns true if any fixes are available.
func (fr *FileResult) HasFixes() bool {
	return len(fr.Edits) > 0
}

// IssueCount returns the total number of violations.
func (fr *FileResult) IssueCount() int {
	return len(fr.Violations)
}

// FixableCount returns the number of violations with fixes.
func (fr *FileResult) FixableCount() int {
	count := 0
	for i := range fr.Violations {
		if fr.Violations[i].HasFix() {
			count++
		}
	}
	return count
}

// Engine coordinates parsing and rule execution for linting.
type Engine struct {
	// Parser tokenizes source files into Documents.
	Parser Parser

	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine with the given parser and registry.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{
		Parser:   parser,
		Registry: registry,
	}
}

// LintFile selects a language profile, parses and lints a single file.
// Parse failures are returned as errors; rule failures are not.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	lang := cfg.ResolveLanguage(path, content)

	doc, err := e.Parser.Parse(ctx, path, content, lang)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	return e.LintDocument(ctx, doc, lang, cfg)
}

// LintDocument evaluates every enabled rule once against an already parsed
// document. A rule that returns an error or panics is reported as a
// failure violation and does not stop the other rules.
func (e *Engine) LintDocument(
	ctx context.Context,
	doc *source.Document,
	lang config.LanguageConfig,
	cfg *config.Config,
) (*FileResult, error) {
	logger := logging.FromContext(ctx)

	// Evaluate against a snapshot so concurrent registration cannot
	// change the rule set mid-pass.
	registry := e.Registry.Snapshot()
	resolved := ResolveRules(registry, cfg)

	result := &FileResult{
		Doc:        doc,
		Language:   lang.Name,
		Violations: nil,
		Edits:      nil,
		RuleErrors: make(map[string]error),
	}

	// Collect all edits for validation.
	var allEdits []fix.TextEdit

	for _, rr := range resolved {
		// Check for cancellation.
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("linting cancelled: %w", ctx.Err())
		default:
		}

		ruleCtx := NewRuleContext(ctx, doc, lang, cfg, rr.Config)
		ruleCtx.Registry = registry

		violations, failure := runRule(rr.Rule, ruleCtx)
		if failure != nil {
			logger.Warn("rule failed",
				logging.FieldRule, rr.Rule.ID(),
				logging.FieldPath, doc.Path,
				logging.FieldError, failure.Cause,
			)
			result.RuleErrors[rr.Rule.ID()] = failure
			result.Violations = append(result.Violations, failureViolation(rr.Rule, doc.Path, failure))
			continue
		}

		for i := range violations {
			// Apply resolved severity.
			violations[i].Severity = rr.Severity

			if violations[i].RuleID == "" {
				violations[i].RuleID = rr.Rule.ID()
			}
			if violations[i].FilePath == "" {
				violations[i].FilePath = doc.Path
			}
			if violations[i].RuleName == "" {
				violations[i].RuleName = rr.Rule.Name()
			}

			// Collect edits if auto-fix is enabled for this rule.
			if rr.AutoFix {
				for _, edit := range violations[i].FixEdits {
					edit.RuleID = rr.Rule.ID()
					allEdits = append(allEdits, edit)
				}
			}
		}

		result.Violations = append(result.Violations, violations...)
	}

	SortViolations(result.Violations)

	if len(allEdits) > 0 {
		plan, err := fix.Prepare(allEdits, len(doc.Content))
		if err != nil {
			// A rule proposed an edit outside the file. Report, but fix nothing.
			logger.Warn("discarding fixes", logging.FieldPath, doc.Path, logging.FieldError, err)
			result.EditConflicts = true
		} else {
			result.Edits = plan.Accepted
			result.SkippedEdits = plan.Skipped
			result.EditConflicts = plan.HasConflicts()
			for _, skipped := range plan.Skipped {
				logger.Debug("fix deferred to next pass",
					logging.FieldPath, doc.Path,
					logging.FieldRule, skipped.RuleID,
				)
			}
		}
	}

	return result, nil
}

// runRule applies one rule, converting a returned error or a panic into a
// RuleFailureError.
func runRule(rule Rule, ruleCtx *RuleContext) (violations []Violation, failure *RuleFailureError) {
	defer func() {
		if r := recover(); r != nil {
			violations = nil
			failure = newPanicFailure(rule.ID(), r)
		}
	}()

	violations, err := rule.Apply(ruleCtx)
	if err != nil {
		return nil, NewRuleFailure(rule.ID(), err)
	}
	return violations, nil
}

// failureViolation reports a faulted rule. It sits at line 0 so it sorts
// ahead of every style violation in the file.
func failureViolation(rule Rule, path string, failure *RuleFailureError) Violation {
	return Violation{
		RuleID:   rule.ID(),
		RuleName: rule.Name(),
		Message:  failure.Error(),
		Severity: config.SeverityError,
		FilePath: path,
		Failure:  failure,
	}
}

// SortViolations orders violations by line, then column, then rule ID.
// The sort is stable so violations from one rule at the same position keep
// the order the rule produced them in.
func SortViolations(violations []Violation) {
	slices.SortStableFunc(violations, func(a, b Violation) int {
		return cmp.Or(
			cmp.Compare(a.StartLine, b.StartLine),
			cmp.Compare(a.StartColumn, b.StartColumn),
			cmp.Compare(a.RuleID, b.RuleID),
		)
	})
}
