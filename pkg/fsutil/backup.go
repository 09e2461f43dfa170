package fsutil

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// BackupMode selects where the original of a fixed file is kept.
type BackupMode string

const (
	// BackupModeSidecar keeps the original next to the file as
	// <name>.bracelint.bak.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeXDG keeps originals under $XDG_STATE_HOME/bracelint/backups,
	// named by a digest of the absolute path.
	BackupModeXDG BackupMode = "xdg"

	// BackupModeNone keeps no backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to sidecar backups.
const BackupSuffix = ".bracelint.bak"

// BackupConfig controls backups taken before a fix is written.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig returns a disabled sidecar configuration.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

// BackupPath returns where the backup of path lives in mode, or "" for
// BackupModeNone. Unknown modes fall back to sidecar.
func BackupPath(path string, mode BackupMode) string {
	switch mode {
	case BackupModeNone:
		return ""
	case BackupModeXDG:
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		sum := sha256.Sum256([]byte(abs))
		name := hex.EncodeToString(sum[:8]) + "-" + filepath.Base(path) + ".bak"
		return filepath.Join(stateDir(), "bracelint", "backups", name)
	default:
		return path + BackupSuffix
	}
}

// CreateBackup copies path to its backup location and reports whether a
// backup was written. An existing backup is left alone so the first
// original survives repeated fix runs.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	if !cfg.Enabled {
		return false, nil
	}
	target := BackupPath(path, cfg.Mode)
	if target == "" {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("backup %s: %w", path, err)
	}

	_, err := os.Stat(target)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat backup: %w", err)
	}

	content, snap, err := ReadSource(ctx, path)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read original: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return false, fmt.Errorf("create backup dir: %w", err)
	}
	if err := WriteAtomic(ctx, target, content, snap.Mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// stateDir returns $XDG_STATE_HOME, falling back to ~/.local/state.
func stateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(home, ".local", "state")
}
