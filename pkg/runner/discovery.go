package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/bracelint/internal/logging"
)

// globSet is a compiled list of patterns. Patterns use '/' as the
// separator so "*" stays within one path segment and "**" crosses them.
type globSet []glob.Glob

func compileGlobs(patterns []string) (globSet, error) {
	set := make(globSet, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		set = append(set, g)
	}
	return set, nil
}

// match reports whether relPath, its base name or any of its parent
// directories matches. Matching parents lets "vendor" or "build/**" cover
// everything below them.
func (s globSet) match(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	candidates := []string{relPath, relPath[strings.LastIndex(relPath, "/")+1:]}
	for dir := relPath; ; {
		idx := strings.LastIndex(dir, "/")
		if idx < 0 {
			break
		}
		dir = dir[:idx]
		candidates = append(candidates, dir, dir+"/")
	}

	for _, g := range s {
		if slices.ContainsFunc(candidates, g.Match) {
			return true
		}
	}
	return false
}

// Discover expands opts.Paths into the source files to lint: absolute,
// sorted and without duplicates. Directories are walked; files named
// explicitly are kept when their extension belongs to a profile, even if an
// exclude glob would match them.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := compileGlobs(opts.excludeGlobs())
	if err != nil {
		return nil, err
	}

	w := &walker{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		include:    include,
		exclude:    exclude,
		follow:     opts.FollowSymlinks,
		files:      make(map[string]struct{}),
		dirs:       make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		path := input
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		path = filepath.Clean(path)

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}
		if !info.IsDir() {
			if w.hasExtension(path) {
				w.files[path] = struct{}{}
			}
			continue
		}
		if err := w.walk(ctx, path); err != nil {
			return nil, err
		}
	}

	files := make([]string, 0, len(w.files))
	for path := range w.files {
		files = append(files, path)
	}
	slices.Sort(files)

	logging.FromContext(ctx).Debug("discovery complete",
		logging.FieldFiles, len(files),
		logging.FieldWorkingDir, workDir,
	)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

type walker struct {
	workDir    string
	extensions []string
	include    globSet
	exclude    globSet
	follow     bool

	files map[string]struct{}

	// dirs holds the resolved directories already walked while following
	// symlinks, so a link back into the tree cannot loop.
	dirs map[string]struct{}
}

// seen records dir by its resolved path and reports whether it was already
// recorded. Without symlink following every directory is new.
func (w *walker) seen(dir string) bool {
	if !w.follow {
		return false
	}
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return false
	}
	if _, ok := w.dirs[resolved]; ok {
		return true
	}
	w.dirs[resolved] = struct{}{}
	return false
}

func (w *walker) rel(path string) string {
	if rel, err := filepath.Rel(w.workDir, path); err == nil {
		return rel
	}
	return path
}

func (w *walker) hasExtension(path string) bool {
	return slices.Contains(w.extensions, strings.ToLower(filepath.Ext(path)))
}

func (w *walker) wants(path string) bool {
	rel := w.rel(path)
	return w.hasExtension(path) &&
		!w.exclude.match(rel) &&
		(len(w.include) == 0 || w.include.match(rel))
}

// walk collects matching files below root. Hidden entries, skipped
// directory names and excluded directories are pruned; unreadable
// directories are passed over.
func (w *walker) walk(ctx context.Context, root string) error {
	if w.seen(root) {
		return nil
	}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}
		if path == root {
			return nil
		}

		name := entry.Name()
		hidden := strings.HasPrefix(name, ".")

		switch {
		case entry.IsDir():
			if hidden || skippedDirs[name] || w.exclude.match(w.rel(path)) || w.seen(path) {
				return filepath.SkipDir
			}
		case entry.Type()&fs.ModeSymlink != 0:
			return w.symlink(ctx, path, hidden)
		case !hidden && w.wants(path):
			w.files[path] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// symlink handles a link met while walking. Links to files count like the
// files themselves; links to directories are walked only when following
// symlinks. Broken links are ignored.
func (w *walker) symlink(ctx context.Context, path string, hidden bool) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // broken link
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // unreadable target
	}
	if info.IsDir() {
		if !w.follow || hidden {
			return nil
		}
		return w.walk(ctx, target)
	}
	if !hidden && w.wants(path) {
		w.files[path] = struct{}{}
	}
	return nil
}
