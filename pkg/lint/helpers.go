package lint

import (
	"sort"
	"unicode/utf8"

	"github.com/yaklabco/bracelint/pkg/source"
)

// Gap describes what separates a token from its neighbour.
type Gap int

const (
	// GapNone means the tokens touch.
	GapNone Gap = iota
	// GapSpace means exactly one space.
	GapSpace
	// GapWide means a run of whitespace other than a single space.
	GapWide
	// GapBreak means a line break, comment, or file boundary.
	GapBreak
)

func (g Gap) String() string {
	switch g {
	case GapNone:
		return "none"
	case GapSpace:
		return "space"
	case GapWide:
		return "wide"
	default:
		return "break"
	}
}

// GapBefore classifies the separation between token i and whatever
// precedes it on the same line.
func GapBefore(doc *source.Document, i int) Gap {
	j := i - 1
	if j < 0 {
		return GapBreak
	}
	tok := doc.Tokens[j]
	switch {
	case tok.Kind == source.TokWhitespace:
		if j == 0 || doc.Tokens[j-1].Kind == source.TokNewline || doc.Tokens[j-1].Kind.IsComment() {
			return GapBreak
		}
		if tok.Len() == 1 && doc.Content[tok.StartOffset] == ' ' {
			return GapSpace
		}
		return GapWide
	case tok.Kind == source.TokNewline, tok.Kind.IsComment():
		return GapBreak
	default:
		return GapNone
	}
}

// GapAfter classifies the separation between token i and whatever follows
// it on the same line.
func GapAfter(doc *source.Document, i int) Gap {
	j := i + 1
	if j >= len(doc.Tokens) {
		return GapBreak
	}
	tok := doc.Tokens[j]
	switch {
	case tok.Kind == source.TokWhitespace:
		if j+1 >= len(doc.Tokens) {
			return GapBreak
		}
		next := doc.Tokens[j+1].Kind
		if next == source.TokNewline || next.IsComment() {
			return GapBreak
		}
		if tok.Len() == 1 && doc.Content[tok.StartOffset] == ' ' {
			return GapSpace
		}
		return GapWide
	case tok.Kind == source.TokNewline, tok.Kind.IsComment():
		return GapBreak
	default:
		return GapNone
	}
}

// WhitespaceBefore returns the byte range of the whitespace token directly
// before token i, or (-1, -1) when there is none.
func WhitespaceBefore(doc *source.Document, i int) (int, int) {
	if i < 1 || doc.Tokens[i-1].Kind != source.TokWhitespace {
		return -1, -1
	}
	return doc.Tokens[i-1].StartOffset, doc.Tokens[i-1].EndOffset
}

// WhitespaceAfter returns the byte range of the whitespace token directly
// after token i, or (-1, -1) when there is none.
func WhitespaceAfter(doc *source.Document, i int) (int, int) {
	if i+1 >= len(doc.Tokens) || doc.Tokens[i+1].Kind != source.TokWhitespace {
		return -1, -1
	}
	return doc.Tokens[i+1].StartOffset, doc.Tokens[i+1].EndOffset
}

// TokenAt returns the index of the token covering the byte offset, or -1.
func TokenAt(doc *source.Document, offset int) int {
	idx := sort.Search(len(doc.Tokens), func(i int) bool {
		return doc.Tokens[i].EndOffset > offset
	})
	if idx >= len(doc.Tokens) || doc.Tokens[idx].StartOffset > offset {
		return -1
	}
	return idx
}

// Line-based helpers.

// LineLength returns the length in bytes of the 1-based line (excluding newline).
// Returns 0 if the line number is out of range.
func LineLength(doc *source.Document, lineNum int) int {
	return len(doc.LineContent(lineNum))
}

// LineWidth returns the length in runes of the 1-based line.
func LineWidth(doc *source.Document, lineNum int) int {
	return utf8.RuneCount(doc.LineContent(lineNum))
}

// CodeWidth returns the width in runes of the line up to the end of its last
// code token that is not a string literal. Trailing strings and comments do
// not count, and a line with no such token has width 0.
func CodeWidth(doc *source.Document, lineNum int) int {
	first, end := doc.TokensOnLine(lineNum)
	for i := end - 1; i >= first; i-- {
		tok := doc.Tokens[i]
		if !tok.Kind.IsCode() || tok.Kind == source.TokString {
			continue
		}
		start := doc.Lines[lineNum-1].StartOffset
		return utf8.RuneCount(doc.Content[start:tok.EndOffset])
	}
	return 0
}

// TrailingWhitespaceRange returns the range of trailing whitespace on a line.
// Whitespace inside a string literal is not trailing whitespace.
// Returns (-1, -1) if no trailing whitespace or line is out of range.
func TrailingWhitespaceRange(doc *source.Document, lineNum int) (int, int) {
	if lineNum < 1 || lineNum > len(doc.Lines) {
		return -1, -1
	}
	line := doc.Lines[lineNum-1]
	content := doc.Content[line.StartOffset:line.NewlineStart]
	if len(content) == 0 {
		return -1, -1
	}

	endOffset := line.NewlineStart
	startOffset := endOffset
	for idx := len(content) - 1; idx >= 0; idx-- {
		if content[idx] != ' ' && content[idx] != '\t' {
			break
		}
		startOffset = line.StartOffset + idx
	}

	if startOffset == endOffset {
		return -1, -1
	}
	if tokIdx := TokenAt(doc, endOffset-1); tokIdx >= 0 && doc.Tokens[tokIdx].Kind == source.TokString {
		return -1, -1
	}
	return startOffset, endOffset
}

// CountBlankLinesBefore returns the number of consecutive blank lines
// directly above lineNum.
func CountBlankLinesBefore(doc *source.Document, lineNum int) int {
	count := 0
	for l := lineNum - 1; l >= 1 && doc.IsBlank(l); l-- {
		count++
	}
	return count
}

// CountBlankLinesAfter returns the number of consecutive blank lines
// directly below lineNum.
func CountBlankLinesAfter(doc *source.Document, lineNum int) int {
	count := 0
	for l := lineNum + 1; l <= doc.LineCount() && doc.IsBlank(l); l++ {
		count++
	}
	return count
}

// WholeLineRange returns the byte range of a line including its newline.
func WholeLineRange(doc *source.Document, lineNum int) (int, int) {
	if lineNum < 1 || lineNum > len(doc.Lines) {
		return -1, -1
	}
	line := doc.Lines[lineNum-1]
	return line.StartOffset, line.EndOffset
}
