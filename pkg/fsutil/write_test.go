package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bracelint/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing string
		content  string
		mode     os.FileMode
		wantMode os.FileMode
	}{
		{
			name:     "new file gets default mode",
			content:  "let a = 1\n",
			wantMode: fsutil.DefaultFileMode,
		},
		{
			name:     "replaces fixed source",
			existing: "let a = 1   \n",
			content:  "let a = 1\n",
			mode:     0o600,
			wantMode: 0o600,
		},
		{
			name:     "executable script keeps mode",
			existing: "#!/usr/bin/env swift\nprint(1)",
			content:  "#!/usr/bin/env swift\nprint(1)\n",
			mode:     0o755,
			wantMode: 0o755,
		},
		{
			name:     "empty content",
			existing: "\n\n",
			mode:     0o644,
			wantMode: 0o644,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, "main.swift")
			if tt.existing != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.existing), 0o644))
			}

			require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte(tt.content), tt.mode))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(got))

			stat, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, stat.Mode().Perm())

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temp file left behind")
		})
	}
}

func TestWriteAtomic_MissingDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "absent", "main.swift")
	err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0)
	require.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestWriteAtomic_Cancelled(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "main.swift", "let a = 1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fsutil.WriteAtomic(ctx, path, []byte("changed"), 0)
	require.ErrorIs(t, err, context.Canceled)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "let a = 1\n", string(got))
}
