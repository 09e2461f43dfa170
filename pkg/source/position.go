package source

// SourcePosition is a span of 1-based lines and columns. Columns count
// bytes and the end column is exclusive. The zero value means "no position",
// which violations use for whole-file findings.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// IsZero reports whether sp carries no position.
func (sp SourcePosition) IsZero() bool {
	return sp == SourcePosition{}
}

// Span covers tokens first through last inclusive. Out-of-range or
// reversed indexes give the zero position.
func (d *Document) Span(first, last int) SourcePosition {
	if first < 0 || last >= len(d.Tokens) || first > last {
		return SourcePosition{}
	}
	from, to := d.Tokens[first], d.Tokens[last]
	return SourcePosition{
		StartLine:   from.StartLine,
		StartColumn: from.StartColumn,
		EndLine:     to.EndLine,
		EndColumn:   to.EndColumn,
	}
}

// LineSpan covers lines first through last, ending before the newline of
// the last line.
func (d *Document) LineSpan(first, last int) SourcePosition {
	if first < 1 || last > len(d.Lines) || first > last {
		return SourcePosition{}
	}
	end := d.Lines[last-1]
	return SourcePosition{
		StartLine:   first,
		StartColumn: 1,
		EndLine:     last,
		EndColumn:   end.NewlineStart - end.StartOffset + 1,
	}
}
