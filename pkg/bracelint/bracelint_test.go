package bracelint_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bracelint/pkg/bracelint"
	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/parser/scanner"
)

func TestLint_EmptyInput(t *testing.T) {
	t.Parallel()

	records, err := bracelint.Lint(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLint_UnterminatedString(t *testing.T) {
	t.Parallel()

	src := "let a = 1\nlet s = \"open\nlet b = 2\n"
	records, err := bracelint.Lint(context.Background(), src, nil)
	require.Error(t, err)
	assert.Nil(t, records)

	var malformed *scanner.MalformedInputError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 2, malformed.Line)
	assert.ErrorIs(t, err, scanner.ErrMalformedInput)
}

func TestLint_StringLiterals(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"let s = \"\\(dict[\"a\", default: \")\"])\"\n",
		"let r = #\"a\\\"#\n",
	} {
		_, err := bracelint.Lint(context.Background(), src, nil)
		require.NoError(t, err, src)
	}
}

func TestLint_Deterministic(t *testing.T) {
	t.Parallel()

	src := "struct point {\n\n    let X=1\n}\n\n\n\nfunc f(a:Int)->Int{return a}"

	first, err := bracelint.Lint(context.Background(), src, nil)
	require.NoError(t, err)
	second, err := bracelint.Lint(context.Background(), src, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.NotEmpty(t, first)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestLint_RecordShape(t *testing.T) {
	t.Parallel()

	records, err := bracelint.Lint(context.Background(), "struct point {}\n", nil)
	require.NoError(t, err)
	require.Len(t, records, 1)

	data, err := json.Marshal(records[0])
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"ruleId":"BL010","severity":"error","line":1,"column":8,"message":"type name 'point' does not match ^[A-Z][A-Za-z0-9]*$"}`,
		string(data))
}

func TestLint_Configuration(t *testing.T) {
	t.Parallel()

	long := "let value = " + strings.Repeat("1", 60) + "\n"

	cfg := config.NewConfig()
	cfg.Categories = []config.Category{config.CategoryLineLength}
	cfg.Languages = map[string]config.LanguageConfig{"swift": {MaxLineLength: 40}}

	records, err := bracelint.Lint(context.Background(), long, cfg)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "BL040", records[0].RuleID)
	assert.Equal(t, config.SeverityWarning, records[0].Severity)

	cfg.Languages = nil
	records, err = bracelint.Lint(context.Background(), long, cfg)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLint_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := bracelint.Lint(ctx, "let a = 1\n", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
