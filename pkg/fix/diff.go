package fix

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines surround each change in a hunk.
const contextLines = 3

// NoNewlineMarker follows a diff line that has no terminating newline.
const NoNewlineMarker = `\ No newline at end of file`

// Diff is the unified diff of one file before and after fixing.
type Diff struct {
	Path      string
	Hunks     []DiffHunk
	Additions int
	Deletions int
}

// DiffHunk is one "@@" section. Starts are 1-based; an empty side starts at
// the line before the change, as in diff(1).
type DiffHunk struct {
	OriginalStart, OriginalCount int
	ModifiedStart, ModifiedCount int
	Lines                        []DiffLine
}

// Header renders the "@@ -a,b +c,d @@" line.
func (h DiffHunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
}

// DiffLine is one line of a hunk without its prefix or newline.
type DiffLine struct {
	Kind    DiffLineKind
	Content string

	// NoNewline marks a last line that does not end in "\n".
	NoNewline bool
}

// String renders the line with its diff prefix.
func (l DiffLine) String() string {
	return l.Kind.Prefix() + l.Content
}

type DiffLineKind int

const (
	DiffLineContext DiffLineKind = iota
	DiffLineAdd
	DiffLineRemove
)

// Prefix is the one-character marker of the kind in a unified diff.
func (k DiffLineKind) Prefix() string {
	switch k {
	case DiffLineAdd:
		return "+"
	case DiffLineRemove:
		return "-"
	default:
		return " "
	}
}

// GenerateDiff returns the unified diff from original to modified, or nil
// when they are equal. A change to the final newline alone counts.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if string(original) == string(modified) {
		return nil
	}

	// Lines keep their "\n" so a missing final newline compares unequal.
	before, after := splitLines(original), splitLines(modified)
	diff := &Diff{Path: path}

	for _, group := range difflib.NewMatcher(before, after).GetGroupedOpCodes(contextLines) {
		hunk := newHunk(group)
		for _, op := range group {
			if op.Tag == 'e' {
				hunk.add(DiffLineContext, before[op.I1:op.I2])
				continue
			}
			if op.Tag == 'd' || op.Tag == 'r' {
				diff.Deletions += hunk.add(DiffLineRemove, before[op.I1:op.I2])
			}
			if op.Tag == 'i' || op.Tag == 'r' {
				diff.Additions += hunk.add(DiffLineAdd, after[op.J1:op.J2])
			}
		}
		diff.Hunks = append(diff.Hunks, hunk)
	}

	if len(diff.Hunks) == 0 {
		return nil
	}
	return diff
}

func newHunk(group []difflib.OpCode) DiffHunk {
	first, last := group[0], group[len(group)-1]
	start := func(from, count int) int {
		if count == 0 {
			return from
		}
		return from + 1
	}
	origCount, modCount := last.I2-first.I1, last.J2-first.J1
	return DiffHunk{
		OriginalStart: start(first.I1, origCount),
		OriginalCount: origCount,
		ModifiedStart: start(first.J1, modCount),
		ModifiedCount: modCount,
	}
}

func (h *DiffHunk) add(kind DiffLineKind, lines []string) int {
	for _, line := range lines {
		content, terminated := strings.CutSuffix(line, "\n")
		h.Lines = append(h.Lines, DiffLine{Kind: kind, Content: content, NoNewline: !terminated})
	}
	return len(lines)
}

// HasChanges reports whether d has any hunks. It is safe on a nil Diff.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// displayPath is Path without a leading slash, for the a/ and b/ prefixes.
func (d *Diff) displayPath() string {
	return strings.TrimPrefix(d.Path, "/")
}

// GitHeader returns the "diff --git" line, or "" for a nil Diff.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	return fmt.Sprintf("diff --git a/%[1]s b/%[1]s", d.displayPath())
}

// String renders the diff from the "---" line on.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%[1]s\n+++ b/%[1]s\n", d.displayPath())
	for _, hunk := range d.Hunks {
		b.WriteString(hunk.Header() + "\n")
		for _, line := range hunk.Lines {
			b.WriteString(line.String() + "\n")
			if line.NoNewline {
				b.WriteString(NoNewlineMarker + "\n")
			}
		}
	}
	return b.String()
}

// FullString is String preceded by the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// splitLines splits after each newline; a last line without one is kept.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.SplitAfter(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
