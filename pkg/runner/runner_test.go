package runner_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/lint"
	"github.com/yaklabco/bracelint/pkg/lint/rules"
	"github.com/yaklabco/bracelint/pkg/parser/scanner"
	"github.com/yaklabco/bracelint/pkg/runner"
)

func newRunner() *runner.Runner {
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	return runner.New(lint.NewPipeline(lint.NewEngine(scanner.New(), registry)))
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
	assert.False(t, result.HasIssues())
}

func TestRunner_Run_MixedFiles(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"Clean.swift":  "let value = 1\n",
		"Dirty.swift":  "struct point {}\nlet a=1  \n",
		"Broken.swift": "let s = \"open\n",
	})

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: root, Config: config.NewConfig()})
	require.NoError(t, err)
	require.Len(t, result.Files, 3)

	// Outcomes are in path order.
	assert.Equal(t, []string{"Broken.swift", "Clean.swift", "Dirty.swift"},
		relPaths(t, root, []string{result.Files[0].Path, result.Files[1].Path, result.Files[2].Path}))

	broken := result.Files[0]
	require.Error(t, broken.Error)
	assert.ErrorIs(t, broken.Error, lint.ErrParseFailure)
	var malformed *scanner.MalformedInputError
	assert.True(t, errors.As(broken.Error, &malformed))
	assert.Nil(t, broken.Violations())

	assert.Empty(t, result.Files[1].Violations())

	dirty := result.Files[2].Violations()
	ids := make([]string, 0, len(dirty))
	for _, v := range dirty {
		ids = append(ids, v.RuleID)
	}
	assert.Equal(t, []string{"BL010", "BL001", "BL060"}, ids)

	stats := result.Stats
	assert.Equal(t, 3, stats.FilesDiscovered)
	assert.Equal(t, 2, stats.FilesProcessed)
	assert.Equal(t, 1, stats.FilesErrored)
	assert.Equal(t, 1, stats.ParseErrors)
	assert.Equal(t, 1, stats.FilesWithIssues)
	assert.Equal(t, 3, stats.ViolationsTotal)
	assert.Equal(t, 2, stats.ViolationsFixable)
	assert.Equal(t, 1, stats.ViolationsBySeverity[config.SeverityError])
	assert.Equal(t, 2, stats.ViolationsBySeverity[config.SeverityWarning])
	assert.True(t, result.HasIssues())
	assert.True(t, result.HasFailures())
	assert.True(t, result.HasFileErrors())
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	files := make(map[string]string)
	for i := range 20 {
		files[fmt.Sprintf("dir%d/File%02d.swift", i%3, i)] = fmt.Sprintf("let v%d=%d\n\n\nfunc f(a:Int){}\n", i, i)
	}
	root := writeTree(t, files)

	serial, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: root, Jobs: 1})
	require.NoError(t, err)
	parallel, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: root, Jobs: 8})
	require.NoError(t, err)

	require.Len(t, parallel.Files, len(serial.Files))
	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
		assert.Equal(t,
			lint.Records(serial.Files[i].Violations()),
			lint.Records(parallel.Files[i].Violations()))
	}
	assert.Equal(t, serial.Stats, parallel.Stats)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"a.swift": "let a = 1\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().Run(ctx, runner.Options{WorkingDir: root})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Run_WithFixes(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"a.swift": "let a=1  \n\n\n\nlet b = 2"})

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.NoBackups = true

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: root, Config: cfg})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	pr := result.Files[0].Result
	require.NotNil(t, pr)
	assert.True(t, pr.Written)
	assert.Positive(t, pr.FixPasses)
	assert.Equal(t, 1, result.Stats.FilesModified)

	content, err := os.ReadFile(filepath.Join(root, "a.swift"))
	require.NoError(t, err)
	assert.Equal(t, "let a = 1\n\nlet b = 2\n", string(content))
}

func TestRunner_Run_DryRun(t *testing.T) {
	t.Parallel()

	original := "let a=1\n"
	root := writeTree(t, map[string]string{"a.swift": original})

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.DryRun = true

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: root, Config: cfg})
	require.NoError(t, err)

	pr := result.Files[0].Result
	require.NotNil(t, pr)
	assert.False(t, pr.Written)
	require.NotNil(t, pr.Diff)
	assert.Contains(t, pr.Diff.String(), "+let a = 1")

	content, err := os.ReadFile(filepath.Join(root, "a.swift"))
	require.NoError(t, err)
	assert.Equal(t, original, string(content))
}

func TestResult_NilSafe(t *testing.T) {
	t.Parallel()

	var result *runner.Result
	assert.False(t, result.HasFailures())
	assert.False(t, result.HasIssues())
	assert.False(t, result.HasFileErrors())
}
