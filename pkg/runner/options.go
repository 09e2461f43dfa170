// Package runner provides multi-file linting orchestration.
package runner

import "github.com/yaklabco/bracelint/pkg/config"

// Options controls multi-file linting behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// to lint. Empty uses the extensions of every configured language profile.
	Extensions []string

	// IncludeGlobs are additional glob patterns to include, relative to WorkingDir.
	// Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	// These merge the config's ignore list with CLI patterns.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// skippedDirs are never descended into.
//
//nolint:gochecknoglobals // read-only lookup table
var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
}

// effectiveExtensions returns the extensions to use, defaulting to the
// extensions of the configured language profiles.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) > 0 {
		return o.Extensions
	}
	cfg := o.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return cfg.KnownExtensions()
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// excludeGlobs merges the config's ignore list with ExcludeGlobs.
func (o Options) excludeGlobs() []string {
	var patterns []string
	if o.Config != nil {
		patterns = append(patterns, o.Config.Ignore...)
	}
	return append(patterns, o.ExcludeGlobs...)
}
