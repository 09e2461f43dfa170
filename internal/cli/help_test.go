package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpFormatter_FlagLine(t *testing.T) {
	t.Parallel()

	h := NewHelpFormatter("never", &bytes.Buffer{})

	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "long flag with type",
			line: "      --format string        output format",
			want: "      --format string   output format",
		},
		{
			name: "short and long flag",
			line: "  -h, --help   help for lint",
			want: "  -h, --help   help for lint",
		},
		{
			name: "no description",
			line: "      --fix",
			want: "      --fix",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, h.flagLine(tt.line))
		})
	}
}

func TestHelpFormatter_CategoriesSection(t *testing.T) {
	t.Parallel()

	root := NewRootCommand(BuildInfo{Version: "test"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"lint", "--help", "--color=never"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "Categories:")
	assert.Contains(t, out.String(), categoryNames())
	assert.NotContains(t, out.String(), "Exit Codes:")
}

func TestRpad(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "lint  ", rpad("lint", 6))
	assert.Equal(t, "languages", rpad("languages", 4))
}
