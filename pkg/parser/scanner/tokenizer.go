package scanner

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/source"
)

// lexState is the scanner state between bytes.
type lexState uint8

const (
	stateNormal lexState = iota
	stateLineComment
	stateBlockComment
	stateString
)

// operatorChars may appear in an operator run.
const operatorChars = "+-*/%=<>!&|^~?."

// tokenizer performs a single left-to-right scan producing a contiguous,
// non-overlapping token stream and the scope tree.
type tokenizer struct {
	lang     config.LanguageConfig
	literals []config.StringLiteral
	content  []byte

	pos  int
	line int
	col  int

	state lexState

	// Token in progress.
	tokStart int
	tokLine  int
	tokCol   int
	tokKind  source.TokenKind

	// String literal in progress.
	lit config.StringLiteral

	// Block comment nesting depth.
	commentDepth int

	tokens []source.Token
	root   *source.Scope
	stack  []*source.Scope
}

func newTokenizer(content []byte, lang config.LanguageConfig) *tokenizer {
	const initialCapacityDivisor = 3 // reasonable initial capacity estimate
	return &tokenizer{
		lang:     lang,
		literals: lang.StringLiterals(),
		content:  content,
		line:     1,
		col:      1,
		tokens:   make([]source.Token, 0, len(content)/initialCapacityDivisor),
		root:     source.NewRootScope(),
	}
}

// run scans the whole input. On failure no tokens should be used.
func (t *tokenizer) run() error {
	for t.pos < len(t.content) {
		var err error
		switch t.state {
		case stateNormal:
			err = t.scanNormal()
		case stateLineComment:
			t.scanLineComment()
		case stateBlockComment:
			t.scanBlockComment()
		case stateString:
			err = t.scanString()
		}
		if err != nil {
			return err
		}
	}

	switch t.state {
	case stateLineComment:
		t.emit()
	case stateBlockComment:
		return t.malformed(t.tokLine, t.tokCol, "unterminated block comment")
	case stateString:
		return t.unterminated()
	case stateNormal:
	}

	if len(t.stack) > 0 {
		open := t.tokens[t.stack[len(t.stack)-1].Open]
		return t.malformed(open.StartLine, open.StartColumn,
			fmt.Sprintf("unclosed %q", t.text(open)))
	}

	return nil
}

func (t *tokenizer) malformed(line, col int, reason string) error {
	return &MalformedInputError{Line: line, Column: col, Reason: reason}
}

func (t *tokenizer) text(tok source.Token) string {
	return string(tok.Text(t.content))
}

func (t *tokenizer) hasPrefix(prefix string) bool {
	return prefix != "" && bytes.HasPrefix(t.content[t.pos:], []byte(prefix))
}

// advance moves the cursor n bytes forward, tracking line and column.
func (t *tokenizer) advance(n int) {
	for i := 0; i < n && t.pos < len(t.content); i++ {
		if t.content[t.pos] == '\n' {
			t.line++
			t.col = 1
		} else {
			t.col++
		}
		t.pos++
	}
}

// begin marks the start of a token of the given kind.
func (t *tokenizer) begin(kind source.TokenKind) {
	t.tokStart = t.pos
	t.tokLine = t.line
	t.tokCol = t.col
	t.tokKind = kind
}

// emit closes the token in progress at the cursor and files it in the
// current scope.
func (t *tokenizer) emit() int {
	idx := t.push()
	t.current().Items = append(t.current().Items, source.ScopeItem{Token: idx})
	t.state = stateNormal
	return idx
}

// push appends the token in progress without filing it in a scope.
func (t *tokenizer) push() int {
	t.tokens = append(t.tokens, source.Token{
		Kind:        t.tokKind,
		StartOffset: t.tokStart,
		EndOffset:   t.pos,
		StartLine:   t.tokLine,
		StartColumn: t.tokCol,
		EndLine:     t.line,
		EndColumn:   t.col,
		Depth:       len(t.stack),
	})
	return len(t.tokens) - 1
}

func (t *tokenizer) current() *source.Scope {
	if len(t.stack) == 0 {
		return t.root
	}
	return t.stack[len(t.stack)-1]
}

func (t *tokenizer) scanNormal() error {
	c := t.content[t.pos]

	switch {
	case c == '\n':
		t.begin(source.TokNewline)
		t.advance(1)
		t.emit()
	case c == '\r' && t.pos+1 < len(t.content) && t.content[t.pos+1] == '\n':
		t.begin(source.TokNewline)
		t.advance(2)
		t.emit()
	case isSpace(c):
		t.begin(source.TokWhitespace)
		for t.pos < len(t.content) && isSpace(t.content[t.pos]) &&
			!(t.content[t.pos] == '\r' && t.pos+1 < len(t.content) && t.content[t.pos+1] == '\n') {
			t.advance(1)
		}
		t.emit()
	case t.isDocComment():
		t.begin(source.TokDocComment)
		t.advance(len(t.lang.DocCommentPrefix))
		t.state = stateLineComment
	case t.hasPrefix(t.lang.LineComment):
		t.begin(source.TokLineComment)
		t.advance(len(t.lang.LineComment))
		t.state = stateLineComment
	case t.hasPrefix(t.lang.BlockCommentStart) && t.lang.BlockCommentEnd != "":
		t.begin(source.TokBlockComment)
		t.advance(len(t.lang.BlockCommentStart))
		t.commentDepth = 1
		t.state = stateBlockComment
	case t.startString():
	case c == '{' || c == '(' || c == '[':
		t.openScope(c)
	case c == '}' || c == ')' || c == ']':
		return t.closeScope(c)
	case c == ',':
		t.single(source.TokComma)
	case c == ';':
		t.single(source.TokSemicolon)
	case c == ':':
		if t.pos+1 < len(t.content) && (t.content[t.pos+1] == ':' || t.content[t.pos+1] == '=') {
			t.begin(source.TokOperator)
			t.advance(2)
			t.emit()
		} else {
			t.single(source.TokColon)
		}
	case c >= '0' && c <= '9':
		t.scanNumber()
	case strings.IndexByte(operatorChars, c) >= 0:
		t.scanOperator()
	default:
		t.scanWord()
	}

	return nil
}

func (t *tokenizer) isDocComment() bool {
	doc := t.lang.DocCommentPrefix
	if !t.hasPrefix(doc) {
		return false
	}
	// "////" is an ordinary comment, not documentation.
	next := t.pos + len(doc)
	return next >= len(t.content) || t.content[next] != doc[len(doc)-1]
}

func (t *tokenizer) single(kind source.TokenKind) {
	t.begin(kind)
	t.advance(1)
	t.emit()
}

func (t *tokenizer) startString() bool {
	lit, ok := t.literalAt()
	if !ok {
		return false
	}
	t.begin(source.TokString)
	t.lit = lit
	t.advance(len(lit.Open))
	t.state = stateString
	return true
}

// literalAt returns the literal syntax whose opener is at the cursor.
func (t *tokenizer) literalAt() (config.StringLiteral, bool) {
	for _, lit := range t.literals {
		if t.hasPrefix(lit.Open) {
			return lit, true
		}
	}
	return config.StringLiteral{}, false
}

func (t *tokenizer) openScope(c byte) {
	kind := openKind(c)
	t.begin(kind)
	t.advance(1)
	idx := t.push()

	parent := t.current()
	scope := &source.Scope{
		Kind:   source.ScopeKindFor(kind),
		Open:   idx,
		Close:  -1,
		Parent: parent,
	}
	parent.Items = append(parent.Items, source.ScopeItem{Token: -1, Scope: scope})
	t.stack = append(t.stack, scope)
}

func (t *tokenizer) closeScope(c byte) error {
	kind := closeKind(c)
	if len(t.stack) == 0 {
		return t.malformed(t.line, t.col, fmt.Sprintf("unexpected %q with no open scope", string(c)))
	}

	scope := t.stack[len(t.stack)-1]
	open := t.tokens[scope.Open]
	if open.Kind.Closer() != kind {
		return t.malformed(t.line, t.col, fmt.Sprintf(
			"mismatched %q closes %q opened at line %d, column %d",
			string(c), t.text(open), open.StartLine, open.StartColumn))
	}

	t.stack = t.stack[:len(t.stack)-1]
	t.begin(kind)
	t.advance(1)
	scope.Close = t.push()
	return nil
}

func (t *tokenizer) scanNumber() {
	t.begin(source.TokNumber)
	for t.pos < len(t.content) {
		c := t.content[t.pos]
		switch {
		case isWordByte(c):
			t.advance(1)
		case c == '.' && t.pos+1 < len(t.content) && isDigit(t.content[t.pos+1]):
			t.advance(1)
		default:
			t.emit()
			return
		}
	}
	t.emit()
}

func (t *tokenizer) scanOperator() {
	t.begin(source.TokOperator)
	for t.pos < len(t.content) && strings.IndexByte(operatorChars, t.content[t.pos]) >= 0 {
		if t.pos > t.tokStart && t.startsComment() {
			break
		}
		t.advance(1)
	}
	// Elvis operator.
	if string(t.content[t.tokStart:t.pos]) == "?" && t.pos < len(t.content) && t.content[t.pos] == ':' {
		t.advance(1)
	}
	if string(t.content[t.tokStart:t.pos]) == "->" {
		t.tokKind = source.TokArrow
	}
	t.emit()
}

func (t *tokenizer) startsComment() bool {
	return t.hasPrefix(t.lang.LineComment) || t.hasPrefix(t.lang.BlockCommentStart)
}

// scanWord scans an identifier, or a single other rune.
func (t *tokenizer) scanWord() {
	r, size := utf8.DecodeRune(t.content[t.pos:])
	if !isIdentStart(r) {
		t.begin(source.TokOther)
		t.advance(size)
		t.emit()
		return
	}

	t.begin(source.TokIdentifier)
	for t.pos < len(t.content) {
		r, size = utf8.DecodeRune(t.content[t.pos:])
		if !isIdentStart(r) && !unicode.IsDigit(r) {
			break
		}
		t.advance(size)
	}
	t.emit()
}

func (t *tokenizer) scanLineComment() {
	for t.pos < len(t.content) {
		c := t.content[t.pos]
		if c == '\n' || (c == '\r' && t.pos+1 < len(t.content) && t.content[t.pos+1] == '\n') {
			break
		}
		t.advance(1)
	}
	t.emit()
}

func (t *tokenizer) scanBlockComment() {
	end := t.lang.BlockCommentEnd
	start := t.lang.BlockCommentStart
	for t.pos < len(t.content) {
		switch {
		case t.hasPrefix(end):
			t.advance(len(end))
			t.commentDepth--
			if t.commentDepth == 0 {
				t.emit()
				return
			}
		case t.lang.Nested() && t.hasPrefix(start):
			t.advance(len(start))
			t.commentDepth++
		default:
			t.advance(1)
		}
	}
}

func (t *tokenizer) scanString() error {
	if err := t.skipLiteral(t.lit); err != nil {
		return err
	}
	t.emit()
	return nil
}

// skipLiteral consumes a literal body up to and including its closer. The
// opener is already behind the cursor.
func (t *tokenizer) skipLiteral(lit config.StringLiteral) error {
	escape := t.lang.EscapeChar
	for t.pos < len(t.content) {
		switch {
		case lit.Interpolation != "" && t.hasPrefix(lit.Interpolation):
			t.advance(len(lit.Interpolation))
			if err := t.skipInterpolation(lit.Interpolation[len(lit.Interpolation)-1]); err != nil {
				return err
			}
		case !lit.Raw && t.hasPrefix(escape):
			t.advance(len(escape) + 1)
		case t.hasPrefix(lit.Close):
			t.advance(len(lit.Close))
			return nil
		case t.content[t.pos] == '\n' && !lit.Multiline:
			return t.unterminated()
		default:
			t.advance(1)
		}
	}
	return t.unterminated()
}

// skipInterpolation consumes an embedded expression up to and including
// the bracket matching open. Nested literals are skipped whole, so brackets
// inside them do not count.
func (t *tokenizer) skipInterpolation(open byte) error {
	want := []byte{closeByte(open)}
	for t.pos < len(t.content) {
		c := t.content[t.pos]
		if lit, ok := t.literalAt(); ok {
			t.advance(len(lit.Open))
			if err := t.skipLiteral(lit); err != nil {
				return err
			}
			continue
		}
		switch c {
		case '{', '(', '[':
			want = append(want, closeByte(c))
		case '}', ')', ']':
			if c != want[len(want)-1] {
				return t.malformed(t.line, t.col,
					fmt.Sprintf("mismatched %q in string interpolation", string(c)))
			}
			want = want[:len(want)-1]
		}
		t.advance(1)
		if len(want) == 0 {
			return nil
		}
	}
	return t.unterminated()
}

// unterminated reports the literal in progress, at the position it opened.
func (t *tokenizer) unterminated() error {
	return t.malformed(t.tokLine, t.tokCol, "unterminated string literal")
}

func openKind(c byte) source.TokenKind {
	switch c {
	case '{':
		return source.TokLBrace
	case '(':
		return source.TokLParen
	default:
		return source.TokLBracket
	}
}

func closeByte(c byte) byte {
	switch c {
	case '{':
		return '}'
	case '(':
		return ')'
	default:
		return ']'
	}
}

func closeKind(c byte) source.TokenKind {
	switch c {
	case '}':
		return source.TokRBrace
	case ')':
		return source.TokRParen
	default:
		return source.TokRBracket
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\f' || c == '\v' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWordByte(c byte) bool {
	return isDigit(c) || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}
