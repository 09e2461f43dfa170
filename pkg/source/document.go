// Package source provides the structural model bracelint rules evaluate.
// It defines an immutable, lossless view of a source file including:
// - Document: the complete file representation
// - Token stream: every byte classified
// - Scope tree: nested brace, paren, and bracket regions referencing token indices
package source

// Document is an immutable, lossless view of one source file.
// It is built once per lint invocation by a parser and discarded afterwards.
type Document struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Language is the name of the language profile used to tokenize the file.
	Language string

	// Lines contains metadata for each physical line.
	Lines []Line

	// Tokens is the full token stream covering every byte.
	Tokens []Token

	// Root is the file-level scope.
	Root *Scope

	// lineFirstToken[n-1] is the index of the first token starting on line n.
	// The extra trailing element equals len(Tokens).
	lineFirstToken []int

	// literalLines[n-1] is true when line n begins inside a multi-line
	// string or block comment.
	literalLines []bool
}

// NewDocument creates a Document from content with its line index built.
// Tokens and scopes are filled by a parser, which must call Seal when done.
func NewDocument(path string, content []byte, language string) *Document {
	return &Document{
		Path:     path,
		Content:  content,
		Language: language,
		Lines:    BuildLines(content),
		Tokens:   nil,
		Root:     NewRootScope(),
	}
}

// Seal builds the per-line token indexes. The parser calls it once after
// the token stream is complete; the document must not change afterwards.
func (d *Document) Seal() {
	d.lineFirstToken = make([]int, len(d.Lines)+1)
	d.literalLines = make([]bool, len(d.Lines))

	tokIdx := 0
	for lineIdx := range d.Lines {
		lineNum := lineIdx + 1
		for tokIdx < len(d.Tokens) && d.Tokens[tokIdx].StartLine < lineNum {
			tokIdx++
		}
		d.lineFirstToken[lineIdx] = tokIdx
	}
	d.lineFirstToken[len(d.Lines)] = len(d.Tokens)

	for _, tok := range d.Tokens {
		if !tok.Kind.IsLiteral() || tok.EndLine <= tok.StartLine {
			continue
		}
		last := tok.EndLine
		// A literal ending exactly at a line start does not cover that line.
		if tok.EndColumn == 1 {
			last--
		}
		for line := tok.StartLine + 1; line <= last && line <= len(d.Lines); line++ {
			d.literalLines[line-1] = true
		}
	}
}

// TokenText returns the source text of the token at index i.
func (d *Document) TokenText(i int) string {
	if i < 0 || i >= len(d.Tokens) {
		return ""
	}
	return string(d.Tokens[i].Text(d.Content))
}

// TokensOnLine returns the half-open index range [first, end) of tokens that
// start on the given 1-based line.
func (d *Document) TokensOnLine(line int) (int, int) {
	if line < 1 || line > len(d.Lines) || d.lineFirstToken == nil {
		return 0, 0
	}
	return d.lineFirstToken[line-1], d.lineFirstToken[line]
}

// InLiteral reports whether the line begins inside a multi-line string or
// block comment.
func (d *Document) InLiteral(line int) bool {
	if line < 1 || line > len(d.literalLines) {
		return false
	}
	return d.literalLines[line-1]
}

// IsBlank reports whether the line holds only whitespace and is not part of
// a multi-line literal.
func (d *Document) IsBlank(line int) bool {
	if line < 1 || line > len(d.Lines) || d.InLiteral(line) {
		return false
	}
	for _, c := range d.LineContent(line) {
		if c != ' ' && c != '\t' && c != '\r' {
			return false
		}
	}
	return true
}

// FirstCodeOnLine returns the index of the first code token starting on the
// line, or -1. Code tokens exclude whitespace, newlines and comments.
func (d *Document) FirstCodeOnLine(line int) int {
	first, end := d.TokensOnLine(line)
	for i := first; i < end; i++ {
		if d.Tokens[i].Kind.IsCode() {
			return i
		}
	}
	return -1
}

// LastCodeOnLine returns the index of the last code token starting on the
// line, or -1.
func (d *Document) LastCodeOnLine(line int) int {
	first, end := d.TokensOnLine(line)
	for i := end - 1; i >= first; i-- {
		if d.Tokens[i].Kind.IsCode() {
			return i
		}
	}
	return -1
}

// PrevCode returns the index of the nearest code token before i, or -1.
func (d *Document) PrevCode(i int) int {
	for j := i - 1; j >= 0; j-- {
		if d.Tokens[j].Kind.IsCode() {
			return j
		}
	}
	return -1
}

// NextCode returns the index of the nearest code token after i, or -1.
func (d *Document) NextCode(i int) int {
	for j := i + 1; j < len(d.Tokens); j++ {
		if d.Tokens[j].Kind.IsCode() {
			return j
		}
	}
	return -1
}

// Prev returns the index of the token before i, or -1.
func (d *Document) Prev(i int) int {
	if i <= 0 || i > len(d.Tokens) {
		return -1
	}
	return i - 1
}

// Next returns the index of the token after i, or -1.
func (d *Document) Next(i int) int {
	if i < 0 || i+1 >= len(d.Tokens) {
		return -1
	}
	return i + 1
}
