package source

import "sort"

// Line holds metadata for a single physical line.
type Line struct {
	// Number is the 1-based line number.
	Number int

	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For a last line without a trailing newline, this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int

	// Indent is the length in bytes of the leading space and tab run.
	Indent int
}

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings. A trailing newline
// terminates the last line; it does not open an empty extra one.
func BuildLines(content []byte) []Line {
	if len(content) == 0 {
		return []Line{}
	}

	var lines []Line
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}
		newlineStart := idx
		if idx > lineStart && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, Line{
			Number:       len(lines) + 1,
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
			Indent:       indentWidth(content[lineStart:newlineStart]),
		})
		lineStart = idx + 1
	}

	if lineStart < len(content) {
		lines = append(lines, Line{
			Number:       len(lines) + 1,
			StartOffset:  lineStart,
			NewlineStart: len(content),
			EndOffset:    len(content),
			Indent:       indentWidth(content[lineStart:]),
		})
	}

	return lines
}

func indentWidth(text []byte) int {
	n := 0
	for n < len(text) && (text[n] == ' ' || text[n] == '\t') {
		n++
	}
	return n
}

// LineCount returns the number of lines in the file.
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes. An offset at the end of content that
// follows a newline maps to column 1 of the line after the last one.
// Returns (0, 0) if the offset is out of range.
func (d *Document) LineAt(offset int) (int, int) {
	if offset < 0 || len(d.Lines) == 0 || offset > len(d.Content) {
		return 0, 0
	}

	if offset == len(d.Content) {
		last := d.Lines[len(d.Lines)-1]
		if last.NewlineStart < last.EndOffset {
			return len(d.Lines) + 1, 1
		}
		return len(d.Lines), offset - last.StartOffset + 1
	}

	lineIdx := sort.Search(len(d.Lines), func(i int) bool {
		return d.Lines[i].EndOffset > offset
	})
	if lineIdx >= len(d.Lines) {
		lineIdx = len(d.Lines) - 1
	}

	line := d.Lines[lineIdx]
	if offset < line.StartOffset {
		return 0, 0
	}

	return lineIdx + 1, offset - line.StartOffset + 1
}

// Offset converts 1-based line and column numbers to a byte offset.
// Returns (offset, true) on success, or (0, false) if out of range.
func (d *Document) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(d.Lines) || col < 1 {
		return 0, false
	}

	info := d.Lines[line-1]
	offset := info.StartOffset + col - 1
	if offset > info.EndOffset {
		return 0, false
	}

	return offset, true
}

// LineContent returns the content of a 1-based line, excluding the newline.
// Returns nil if the line number is out of range.
func (d *Document) LineContent(line int) []byte {
	if line < 1 || line > len(d.Lines) {
		return nil
	}

	info := d.Lines[line-1]
	return d.Content[info.StartOffset:info.NewlineStart]
}

// LineText is LineContent as a string.
func (d *Document) LineText(line int) string {
	return string(d.LineContent(line))
}
