package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths lists the config files found for one run, lowest precedence
// first. Empty fields mean no file.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// ProjectConfigFiles are looked for in each directory, first match wins.
//
//nolint:gochecknoglobals // read-only
var ProjectConfigFiles = []string{
	".bracelint.yml",
	".bracelint.yaml",
	".bracelint.json",
	"bracelint.yml",
}

// userConfigFiles are looked for in the system and user config directories.
//
//nolint:gochecknoglobals // read-only
var userConfigFiles = []string{"config.yml", "config.yaml", "config.json"}

// DiscoverPaths finds the system, user and project config files for workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), userConfigFiles),
		User:    firstFile(UserConfigDir(), userConfigFiles),
		Project: project,
	}, nil
}

// FindProjectConfig walks up from startDir and returns the first project
// config file. The walk stops after a repository root (a directory holding
// .git, .hg or .svn), the home directory or the filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}
		if path := firstFile(dir, ProjectConfigFiles); path != "" {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isRepoRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

// UserConfigDir returns $XDG_CONFIG_HOME/bracelint, or ~/.config/bracelint
// when XDG_CONFIG_HOME is unset. It is "" when no home directory is known.
func UserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bracelint")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bracelint")
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return "/etc/bracelint"
	}
	if dir := os.Getenv("ProgramData"); dir != "" {
		return filepath.Join(dir, "bracelint")
	}
	return `C:\ProgramData\bracelint`
}

func isRepoRoot(dir string) bool {
	for _, marker := range []string{".git", ".hg", ".svn"} {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}
