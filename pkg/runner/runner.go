package runner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/bracelint/internal/logging"
	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/lint"
)

// Runner lints many files with a fixed pool of workers.
type Runner struct {
	Pipeline *lint.Pipeline
}

// New returns a Runner that lints each file through pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers the files named by opts and lints each one exactly once.
// Outcomes are in path order whatever order the workers finish in. A file
// that cannot be read or parsed is recorded in its outcome and does not stop
// the run; cancelling ctx does, returning the outcomes gathered so far.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files)), Stats: newStats()}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	pipelineOpts := lint.PipelineOptionsFromConfig(cfg)
	workers := workerCount(opts.Jobs, len(files))

	logger.Debug("starting workers", logging.FieldJobs, workers, logging.FieldFiles, len(files))

	// Slot i belongs to whichever worker receives index i.
	outcomes := make([]FileOutcome, len(files))
	indexes := make(chan int)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer close(indexes)
		for i := range files {
			select {
			case indexes <- i:
			case <-groupCtx.Done():
				return groupCtx.Err()
			}
		}
		return nil
	})
	for range workers {
		group.Go(func() error {
			for i := range indexes {
				outcomes[i] = r.processFile(groupCtx, files[i], cfg, pipelineOpts)
			}
			return nil
		})
	}
	waitErr := group.Wait()

	for _, outcome := range outcomes {
		if outcome.Path != "" {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	if waitErr != nil {
		return result, fmt.Errorf("run: %w", waitErr)
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldViolationsTotal, result.Stats.ViolationsTotal,
	)
	return result, nil
}

// workerCount bounds jobs by the number of files; zero or less means one
// worker per CPU.
func workerCount(jobs, files int) int {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	return max(1, min(jobs, files))
}

func (r *Runner) processFile(ctx context.Context, path string, cfg *config.Config, opts lint.PipelineOptions) FileOutcome {
	ctx = logging.WithFields(ctx, logging.FieldPath, path)
	logger := logging.FromContext(ctx)
	start := time.Now()

	pr, err := r.Pipeline.ProcessFile(ctx, path, cfg, opts)
	if err != nil {
		logger.Debug("file failed", logging.FieldError, err)
		return FileOutcome{Path: path, Error: err}
	}

	logger.Debug("file linted",
		logging.FieldLanguage, pr.Language,
		logging.FieldViolationsTotal, pr.IssueCount(),
		logging.FieldDuration, time.Since(start),
	)
	return FileOutcome{Path: path, Result: pr}
}
