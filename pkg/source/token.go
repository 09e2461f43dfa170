package source

// TokenKind classifies the type of a token in the source.
type TokenKind uint16

// Token kinds cover every byte in the source.
const (
	TokWhitespace TokenKind = iota // run of spaces and tabs
	TokNewline                     // "\n" or "\r\n"

	TokIdentifier
	TokNumber
	TokString

	TokLineComment  // "//" to end of line
	TokDocComment   // "///" to end of line
	TokBlockComment // "/* ... */"

	TokOperator // maximal run of operator characters
	TokArrow    // "->"

	TokLBrace   // '{'
	TokRBrace   // '}'
	TokLParen   // '('
	TokRParen   // ')'
	TokLBracket // '['
	TokRBracket // ']'

	TokComma     // ','
	TokColon     // ':'
	TokSemicolon // ';'

	TokOther
)

var tokenKindNames = [...]string{
	TokWhitespace:   "Whitespace",
	TokNewline:      "Newline",
	TokIdentifier:   "Identifier",
	TokNumber:       "Number",
	TokString:       "String",
	TokLineComment:  "LineComment",
	TokDocComment:   "DocComment",
	TokBlockComment: "BlockComment",
	TokOperator:     "Operator",
	TokArrow:        "Arrow",
	TokLBrace:       "LBrace",
	TokRBrace:       "RBrace",
	TokLParen:       "LParen",
	TokRParen:       "RParen",
	TokLBracket:     "LBracket",
	TokRBracket:     "RBracket",
	TokComma:        "Comma",
	TokColon:        "Colon",
	TokSemicolon:    "Semicolon",
	TokOther:        "Other",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "Unknown"
}

// IsTrivia reports whether the kind is whitespace or a newline.
func (k TokenKind) IsTrivia() bool {
	return k == TokWhitespace || k == TokNewline
}

// IsComment reports whether the kind is any comment.
func (k TokenKind) IsComment() bool {
	return k == TokLineComment || k == TokDocComment || k == TokBlockComment
}

// IsLiteral reports whether the kind is a string or comment literal.
func (k TokenKind) IsLiteral() bool {
	return k == TokString || k.IsComment()
}

// IsCode reports whether the kind is neither trivia nor a comment.
func (k TokenKind) IsCode() bool {
	return !k.IsTrivia() && !k.IsComment()
}

// IsOpen reports whether the kind opens a scope.
func (k TokenKind) IsOpen() bool {
	return k == TokLBrace || k == TokLParen || k == TokLBracket
}

// IsClose reports whether the kind closes a scope.
func (k TokenKind) IsClose() bool {
	return k == TokRBrace || k == TokRParen || k == TokRBracket
}

// Closer returns the closing kind that matches an opening kind.
func (k TokenKind) Closer() TokenKind {
	switch k {
	case TokLBrace:
		return TokRBrace
	case TokLParen:
		return TokRParen
	case TokLBracket:
		return TokRBracket
	default:
		return TokOther
	}
}

// Token represents a classified span of bytes in the source.
// Tokens are contiguous and non-overlapping, covering [0, len(Content)).
type Token struct {
	// Kind classifies what this token represents.
	Kind TokenKind

	// StartOffset is the byte index where this token begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where this token ends (exclusive).
	EndOffset int

	// StartLine and StartColumn are the 1-based position of the first byte.
	StartLine   int
	StartColumn int

	// EndLine and EndColumn are the 1-based position just past the last byte.
	EndLine   int
	EndColumn int

	// Depth is the number of open scopes enclosing the token.
	// Opening and closing brackets carry the depth of their parent scope.
	Depth int
}

// Text returns the source text of this token from the given content.
func (t Token) Text(content []byte) []byte {
	if t.StartOffset < 0 || t.EndOffset > len(content) || t.StartOffset > t.EndOffset {
		return nil
	}
	return content[t.StartOffset:t.EndOffset]
}

// Len returns the length of this token in bytes.
func (t Token) Len() int {
	return t.EndOffset - t.StartOffset
}

// SourcePosition returns the line/column range of this token.
func (t Token) SourcePosition() SourcePosition {
	return SourcePosition{
		StartLine:   t.StartLine,
		StartColumn: t.StartColumn,
		EndLine:     t.EndLine,
		EndColumn:   t.EndColumn,
	}
}

// ValidateTokens checks that a token slice is valid:
// - Tokens are contiguous and non-overlapping.
// - Tokens cover the full content range [0, contentLen).
// Returns true if valid, false otherwise.
func ValidateTokens(tokens []Token, contentLen int) bool {
	if len(tokens) == 0 {
		return contentLen == 0
	}

	if tokens[0].StartOffset != 0 {
		return false
	}

	if tokens[len(tokens)-1].EndOffset != contentLen {
		return false
	}

	for i := 1; i < len(tokens); i++ {
		if tokens[i].StartOffset != tokens[i-1].EndOffset {
			return false
		}
	}

	return true
}
