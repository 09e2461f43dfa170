package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bracelint/pkg/lint"
)

func TestOperatorSpacingRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, func() lint.Rule { return NewOperatorSpacingRule() }, []ruleCase{
		{
			name:  "spaced operators",
			input: "let a = b + c\n",
		},
		{
			name:      "missing spaces",
			input:     "let a=b+c\n",
			wantLines: []int{1, 1},
			wantFix:   "let a = b + c\n",
		},
		{
			name:      "arrow without spaces",
			input:     "func f(x: Int)->Int {\n    return x\n}\n",
			wantLines: []int{1},
			wantFix:   "func f(x: Int) -> Int {\n    return x\n}\n",
		},
		{
			name:      "wide gaps",
			input:     "let a = b  +\tc\n",
			wantLines: []int{1},
			wantFix:   "let a = b + c\n",
		},
		{
			name:  "prefix operators",
			input: "let a = -1\nreturn -x\nf(-y)\n",
		},
		{
			name:  "line break after operator",
			input: "let total = a +\n    b\n",
		},
		{
			name:  "line break before operator",
			input: "let total = a\n    + b\n",
		},
		{
			name:      "nil coalescing",
			input:     "let x = y??z\n",
			wantLines: []int{1},
			wantFix:   "let x = y ?? z\n",
		},
		{
			name:      "after postfix optional",
			input:     "let x = y! +z\n",
			wantLines: []int{1},
			wantFix:   "let x = y! + z\n",
		},
		{
			name:  "optional type",
			input: "let x: Int? = nil\n",
		},
		{
			name:  "generic angle brackets are not spaced",
			input: "let a: Array<Int> = []\n",
		},
		{
			name:  "operators inside strings and comments",
			input: "let s = \"a=b\" // c=d\n",
		},
	})
}

func TestOperatorSpacingRule_Message(t *testing.T) {
	t.Parallel()

	violations := applyRule(t, NewOperatorSpacingRule(), "func f(x: Int)->Int {\n    return x\n}\n", nil)
	require.Len(t, violations, 1)

	v := violations[0]
	assert.Equal(t, "BL001", v.RuleID)
	assert.Equal(t, "expected one space around '->'", v.Message)
	assert.Equal(t, 1, v.StartLine)
	assert.Equal(t, 15, v.StartColumn)
	assert.Equal(t, 17, v.EndColumn)
}

func TestOperatorSpacingRule_ArrowNotSpacedInC(t *testing.T) {
	t.Parallel()

	// C has no "->" in its spaced list: member access through a pointer.
	violations := applyRuleLang(t, NewOperatorSpacingRule(), "c", "int x = p->y;\n", nil)
	assert.Empty(t, violations)
}

func TestPunctuationSpacingRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, func() lint.Rule { return NewPunctuationSpacingRule() }, []ruleCase{
		{
			name:  "well spaced",
			input: "func f(a: Int, b: Int) {}\n",
		},
		{
			name:      "all three problems",
			input:     "func f(a:Int ,b : Int) {}\n",
			wantLines: []int{1, 1, 1},
			wantFix:   "func f(a: Int, b: Int) {}\n",
		},
		{
			name:  "empty dictionary literal",
			input: "let d: [String: Int] = [:]\n",
		},
		{
			name:  "ternary colon",
			input: "let x = c ? a : b\n",
		},
		{
			name:      "semicolon",
			input:     "a();b()\n",
			wantLines: []int{1},
			wantFix:   "a(); b()\n",
		},
		{
			name:  "comma at line end",
			input: "f(a,\n  b)\n",
		},
		{
			name:  "case label",
			input: "switch x {\ncase .a:\n    break\ndefault:\n    break\n}\n",
		},
		{
			name:      "wide gap after comma",
			input:     "let p = (a,  b)\n",
			wantLines: []int{1},
			wantFix:   "let p = (a, b)\n",
		},
		{
			name:  "separator before closing bracket",
			input: "let a = [1, 2,]\n",
		},
	})
}

func TestPunctuationSpacingRule_Messages(t *testing.T) {
	t.Parallel()

	violations := applyRule(t, NewPunctuationSpacingRule(), "f(a:1 ,b ,c)\n", nil)
	require.Len(t, violations, 3)

	assert.Equal(t, "expected one space after ':'", violations[0].Message)
	assert.Equal(t, "expected no space before and one space after ','", violations[1].Message)
	assert.Equal(t, "expected no space before and one space after ','", violations[2].Message)
}

func TestBracketSpacingRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, func() lint.Rule { return NewBracketSpacingRule() }, []ruleCase{
		{
			name:  "hugging brackets",
			input: "f(a, b)\nlet a = [1, 2]\n",
		},
		{
			name:      "spaces inside parentheses",
			input:     "f( a, b )\n",
			wantLines: []int{1, 1},
			wantFix:   "f(a, b)\n",
		},
		{
			name:      "spaces inside square brackets",
			input:     "let a = [ 1, 2  ]\n",
			wantLines: []int{1, 1},
			wantFix:   "let a = [1, 2]\n",
		},
		{
			name:  "contents on their own lines",
			input: "f(\n    a\n)\n",
		},
		{
			name:      "blank parentheses reported once",
			input:     "f( )\n",
			wantLines: []int{1},
			wantFix:   "f()\n",
		},
		{
			name:  "comment after opening bracket",
			input: "f( // first\n    a)\n",
		},
		{
			name:  "braces are not checked",
			input: "let c = { x in x }\n",
		},
	})
}
