package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/bracelint/pkg/source"
)

func TestValidateTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		tokens     []source.Token
		contentLen int
		want       bool
	}{
		{"empty for empty content", nil, 0, true},
		{"empty for non-empty content", nil, 3, false},
		{
			name: "contiguous",
			tokens: []source.Token{
				{StartOffset: 0, EndOffset: 2},
				{StartOffset: 2, EndOffset: 5},
			},
			contentLen: 5,
			want:       true,
		},
		{
			name: "gap",
			tokens: []source.Token{
				{StartOffset: 0, EndOffset: 2},
				{StartOffset: 3, EndOffset: 5},
			},
			contentLen: 5,
		},
		{
			name:       "short coverage",
			tokens:     []source.Token{{StartOffset: 0, EndOffset: 2}},
			contentLen: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, source.ValidateTokens(tt.tokens, tt.contentLen))
		})
	}
}

func TestTokenKindClassification(t *testing.T) {
	t.Parallel()

	assert.True(t, source.TokWhitespace.IsTrivia())
	assert.True(t, source.TokNewline.IsTrivia())
	assert.False(t, source.TokIdentifier.IsTrivia())

	assert.True(t, source.TokDocComment.IsComment())
	assert.True(t, source.TokString.IsLiteral())
	assert.False(t, source.TokString.IsComment())

	assert.True(t, source.TokArrow.IsCode())
	assert.False(t, source.TokBlockComment.IsCode())

	assert.Equal(t, source.TokRBracket, source.TokLBracket.Closer())
	assert.Equal(t, source.TokOther, source.TokComma.Closer())
	assert.True(t, source.TokLParen.IsOpen())
	assert.True(t, source.TokRBrace.IsClose())

	assert.Equal(t, "Arrow", source.TokArrow.String())
	assert.Equal(t, "Unknown", source.TokenKind(999).String())
}

func TestTokenText(t *testing.T) {
	t.Parallel()

	content := []byte("let x")
	tok := source.Token{Kind: source.TokIdentifier, StartOffset: 4, EndOffset: 5}

	assert.Equal(t, "x", string(tok.Text(content)))
	assert.Equal(t, 1, tok.Len())
	assert.Nil(t, source.Token{StartOffset: 4, EndOffset: 9}.Text(content))
}

func TestScopeWalk(t *testing.T) {
	t.Parallel()

	root := source.NewRootScope()
	block := &source.Scope{Kind: source.ScopeBlock, Open: 0, Close: 3, Parent: root}
	params := &source.Scope{Kind: source.ScopeParams, Open: 1, Close: 2, Parent: block}
	block.Items = []source.ScopeItem{{Token: -1, Scope: params}}
	root.Items = []source.ScopeItem{{Token: -1, Scope: block}, {Token: 4}}

	var kinds []source.ScopeKind
	err := source.WalkScopes(root, func(s *source.Scope) error {
		kinds = append(kinds, s.Kind)
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, []source.ScopeKind{source.ScopeFile, source.ScopeBlock, source.ScopeParams}, kinds)
	assert.Equal(t, []*source.Scope{block}, source.Blocks(root))
	assert.Equal(t, []int{4}, root.TokenIndices())
	assert.Equal(t, 2, params.Depth())
	assert.True(t, root.IsRoot())
	assert.False(t, block.IsRoot())
}
