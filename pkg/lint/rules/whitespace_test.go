package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bracelint/pkg/lint"
)

func TestNoTrailingSpacesRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, func() lint.Rule { return NewNoTrailingSpacesRule() }, []ruleCase{
		{
			name:  "clean",
			input: "let a = 1\nlet b = 2\n",
		},
		{
			name:      "spaces and tabs",
			input:     "let a = 1  \nlet b = 2\t\n",
			wantLines: []int{1, 2},
			wantFix:   "let a = 1\nlet b = 2\n",
		},
		{
			name:  "inside multi-line string",
			input: "let s = \"\"\"\nbody  \n\"\"\"\n",
		},
		{
			name:      "after comment",
			input:     "// comment  \n",
			wantLines: []int{1},
			wantFix:   "// comment\n",
		},
		{
			name:      "whitespace-only line",
			input:     "a()\n   \nb()\n",
			wantLines: []int{2},
			wantFix:   "a()\n\nb()\n",
		},
		{
			name:      "last line without newline",
			input:     "let a = 1 ",
			wantLines: []int{1},
			wantFix:   "let a = 1",
		},
		{
			name:      "crlf line",
			input:     "let a = 1 \r\n",
			wantLines: []int{1},
			wantFix:   "let a = 1\r\n",
		},
	})
}

func TestNoTrailingSpacesRule_Column(t *testing.T) {
	t.Parallel()

	violations := applyRule(t, NewNoTrailingSpacesRule(), "let a = 1  \n", nil)
	require.Len(t, violations, 1)
	assert.Equal(t, "trailing whitespace", violations[0].Message)
	assert.Equal(t, 10, violations[0].StartColumn)
}

func TestNoTabIndentationRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, func() lint.Rule { return NewNoTabIndentationRule() }, []ruleCase{
		{
			name:  "spaces",
			input: "func f() {\n    return 1\n}\n",
		},
		{
			name:      "tab",
			input:     "func f() {\n\treturn 1\n}\n",
			wantLines: []int{2},
		},
		{
			name:      "mixed",
			input:     "func f() {\n    \treturn 1\n}\n",
			wantLines: []int{2},
		},
		{
			name:  "tab after code",
			input: "let a = 1\t// x\n",
		},
		{
			name:  "multi-line string body",
			input: "let s = \"\"\"\n\tbody\n\"\"\"\n",
		},
	})
}

func TestNoTabIndentationRule_Column(t *testing.T) {
	t.Parallel()

	violations := applyRule(t, NewNoTabIndentationRule(), "func f() {\n    \treturn 1\n}\n", nil)
	require.Len(t, violations, 1)
	assert.Equal(t, "indentation contains a tab", violations[0].Message)
	assert.Equal(t, 5, violations[0].StartColumn)
	assert.False(t, NewNoTabIndentationRule().CanFix())
}

func TestFinalNewlineRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, func() lint.Rule { return NewFinalNewlineRule() }, []ruleCase{
		{
			name:  "one newline",
			input: "a()\n",
		},
		{
			name:  "empty file",
			input: "",
		},
		{
			name:  "only newlines",
			input: "\n\n",
		},
		{
			name:      "missing newline",
			input:     "a()",
			wantLines: []int{1},
			wantFix:   "a()\n",
		},
		{
			name:      "extra newlines",
			input:     "a()\n\n\n",
			wantLines: []int{2},
			wantFix:   "a()\n",
		},
		{
			name:      "extra crlf newlines",
			input:     "a()\r\n\r\n",
			wantLines: []int{2},
			wantFix:   "a()\r\n",
		},
	})
}

func TestFinalNewlineRule_Messages(t *testing.T) {
	t.Parallel()

	missing := applyRule(t, NewFinalNewlineRule(), "a()", nil)
	require.Len(t, missing, 1)
	assert.Equal(t, "file should end with a newline", missing[0].Message)
	assert.Equal(t, 4, missing[0].StartColumn)

	extra := applyRule(t, NewFinalNewlineRule(), "a()\n\n", nil)
	require.Len(t, extra, 1)
	assert.Equal(t, "file should end with exactly one newline", extra[0].Message)
}
