package lint

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/bracelint/internal/logging"
	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/fix"
	"github.com/yaklabco/bracelint/pkg/fsutil"
)

// DefaultMaxFixPasses bounds the fix loop. Spacing fixes can expose new
// spacing problems (a removed blank line joins two runs, for example), so one
// pass is not always enough.
const DefaultMaxFixPasses = 10

// Errors returned by ProcessFile, matched with errors.Is.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrParseFailure     = errors.New("parse failure")
	ErrWriteFailure     = errors.New("write failure")
)

// PipelineResult is what happened to one file.
type PipelineResult struct {
	// FileResult holds the violations of the last lint pass, so after fixing
	// it lists only what is left.
	*FileResult

	Path string

	// Snapshot is the file as it was read. Nil for ProcessContent.
	Snapshot *fsutil.Snapshot

	// Modified is set when fixes changed the content; ModifiedContent is the
	// fixed source.
	Modified        bool
	ModifiedContent []byte

	// FixPasses counts passes that applied edits and TotalEditsApplied sums
	// their edits.
	FixPasses         int
	TotalEditsApplied int

	// Diff is set in dry-run mode.
	Diff *fix.Diff

	Written       bool
	BackupCreated bool

	// Skipped files were left untouched; SkipReason says why.
	Skipped    bool
	SkipReason string
}

// Summary describes the outcome in a few words.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "fixed (backup created)"
	case pr.Written:
		return "fixed"
	case pr.Modified:
		return "changes pending"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// PipelineOptions controls fixing and writing.
type PipelineOptions struct {
	Fix    bool
	DryRun bool

	Backup fsutil.BackupConfig

	// StrictRaceDetection re-hashes the file before writing instead of
	// trusting mod time and size alone.
	StrictRaceDetection bool

	// ReParseAfterFix tokenizes each fixed version and abandons the fix when
	// that fails.
	ReParseAfterFix bool

	// MaxFixPasses of 0 means DefaultMaxFixPasses.
	MaxFixPasses int
}

// DefaultPipelineOptions lints without fixing.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
		ReParseAfterFix:     true,
	}
}

// PipelineOptionsFromConfig maps the fix and backup settings of cfg.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	opts := DefaultPipelineOptions()
	if cfg == nil {
		return opts
	}
	opts.Fix = cfg.Fix
	opts.DryRun = cfg.DryRun
	opts.Backup = fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
	return opts
}

// Pipeline lints one file at a time and, in fix mode, writes the result
// back without clobbering concurrent edits.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline creates a pipeline around engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile lints path. With opts.Fix it applies fixes in memory until
// none remain or MaxFixPasses is reached, then either diffs (DryRun) or
// writes the file: the write is skipped when the file changed since it was
// read, and a backup is taken first when enabled.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	original, snap, err := fsutil.ReadSource(ctx, path)
	if err != nil {
		return nil, sourceError(err)
	}
	result := &PipelineResult{Path: path, Snapshot: snap}

	content, err := p.fixLoop(ctx, path, original, cfg, opts, result)
	if err != nil {
		return nil, err
	}
	if !result.Modified {
		return result, nil
	}
	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, original, content)
		return result, nil
	}

	if err := p.write(ctx, result, content, opts); err != nil {
		return nil, err
	}
	return result, nil
}

// ProcessContent is ProcessFile for in-memory content. Nothing is written.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	original []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	content, err := p.fixLoop(ctx, path, original, cfg, opts, result)
	if err != nil {
		return nil, err
	}
	if result.Modified && opts.DryRun {
		result.Diff = fix.GenerateDiff(path, original, content)
	}
	return result, nil
}

// write replaces the file with content unless it changed since the
// snapshot was taken.
func (p *Pipeline) write(ctx context.Context, result *PipelineResult, content []byte, opts PipelineOptions) error {
	changed, err := result.Snapshot.Changed(ctx, opts.StrictRaceDetection)
	if err != nil {
		return fmt.Errorf("check modified: %w", err)
	}
	if changed {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return nil
	}

	created, err := fsutil.CreateBackup(ctx, result.Path, opts.Backup)
	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	result.BackupCreated = created

	if err := fsutil.WriteAtomic(ctx, result.Path, content, result.Snapshot.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true
	return nil
}

// fixLoop lints content and, in fix mode, applies each pass's accepted edits
// and lints again. It fills result and returns the final content.
func (p *Pipeline) fixLoop(
	ctx context.Context,
	path string,
	original []byte,
	cfg *config.Config,
	opts PipelineOptions,
	result *PipelineResult,
) ([]byte, error) {
	maxPasses := opts.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	content := original
	for pass := 0; ; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("processing cancelled: %w", err)
		}

		lintResult, err := p.Engine.LintFile(ctx, path, content, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
		}
		result.FileResult = lintResult

		if !opts.Fix || len(lintResult.Edits) == 0 || pass == maxPasses {
			break
		}

		next := fix.ApplyEdits(content, lintResult.Edits)
		if opts.ReParseAfterFix {
			lang := cfg.ResolveLanguage(path, next)
			if _, err := p.Engine.Parser.Parse(ctx, path, next, lang); err != nil {
				result.Skipped = true
				result.SkipReason = fmt.Sprintf("re-parse failed: %v", err)
				result.Modified = false
				result.ModifiedContent = nil
				return original, nil
			}
		}

		content = next
		result.Modified = true
		result.FixPasses++
		result.TotalEditsApplied += len(lintResult.Edits)

		logging.FromContext(ctx).Debug("fix pass applied",
			logging.FieldPath, path,
			logging.FieldPasses, result.FixPasses,
			"edits", len(lintResult.Edits),
		)
	}

	if result.Modified {
		result.ModifiedContent = content
	}
	return content, nil
}

func sourceError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}
