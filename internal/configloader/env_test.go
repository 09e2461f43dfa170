package configloader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bracelint/pkg/config"
)

// Tests here set process environment and so do not run in parallel.

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BRACELINT_LANGUAGE", "kotlin")
	t.Setenv("BRACELINT_CATEGORIES", "spacing, braces")
	t.Setenv("BRACELINT_FORMAT", "json")
	t.Setenv("BRACELINT_JOBS", "3")
	t.Setenv("BRACELINT_NO_BACKUPS", "true")
	t.Setenv("BRACELINT_SEVERITY_DEFAULT", "error")

	cfg := config.NewConfig()
	require.NoError(t, LoadFromEnv(cfg))

	assert.Equal(t, "kotlin", cfg.Language)
	assert.Equal(t, []config.Category{config.CategorySpacing, config.CategoryBraces}, cfg.Categories)
	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.Equal(t, 3, cfg.Jobs)
	assert.True(t, cfg.NoBackups)
	assert.Equal(t, "error", cfg.SeverityDefault)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad integer", "BRACELINT_JOBS", "many"},
		{"bad boolean", "BRACELINT_FIX", "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			err := LoadFromEnv(config.NewConfig())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadFromEnv_NilConfig(t *testing.T) {
	assert.NoError(t, LoadFromEnv(nil))
}

func TestListEnvVars(t *testing.T) {
	vars := ListEnvVars()
	names := make([]string, len(vars))
	for i, ev := range vars {
		names[i] = ev.Name
		assert.True(t, strings.HasPrefix(ev.Name, EnvVarPrefix), ev.Name)
		assert.NotEmpty(t, ev.Usage, ev.Name)
	}
	assert.Contains(t, names, "BRACELINT_CATEGORIES")
	assert.Contains(t, names, "BRACELINT_NO_BACKUPS")
}

func TestLoadFromEnv_EmptyIgnored(t *testing.T) {
	t.Setenv("BRACELINT_LANGUAGE", "")
	t.Setenv("BRACELINT_RULE_FORMAT", "combined")

	cfg := config.NewConfig()
	require.NoError(t, LoadFromEnv(cfg))
	assert.Empty(t, cfg.Language)
	assert.Equal(t, config.RuleFormat("combined"), cfg.RuleFormat)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList(" , "))
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,, b "))
}
