package rules

import (
	"fmt"
	"regexp"
	"slices"
	"sync"

	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/fix"
	"github.com/yaklabco/bracelint/pkg/lint"
	"github.com/yaklabco/bracelint/pkg/source"
)

// nonOperandKeywords end a clause rather than a value, so an operator after
// them is a prefix operator.
//
//nolint:gochecknoglobals // read-only lookup table
var nonOperandKeywords = map[string]bool{
	"return": true, "case": true, "in": true, "throw": true, "throws": true,
	"if": true, "while": true, "guard": true, "else": true, "yield": true,
	"await": true, "try": true, "func": true, "fun": true, "operator": true,
	"where": true, "switch": true, "when": true, "is": true, "as": true,
	"do": true, "repeat": true,
}

// declarationModifiers may follow a type or value keyword without being the
// declared name (e.g. "class func", "enum class").
//
//nolint:gochecknoglobals // read-only lookup table
var declarationModifiers = map[string]bool{
	"static": true, "final": true, "private": true, "fileprivate": true,
	"public": true, "internal": true, "open": true, "override": true,
	"data": true, "sealed": true, "inner": true, "abstract": true,
	"companion": true, "lazy": true, "weak": true, "unowned": true,
	"mutating": true, "nonmutating": true, "indirect": true, "const": true,
}

// patternCache holds compiled naming patterns keyed by source text.
//
//nolint:gochecknoglobals // concurrency-safe cache of immutable values
var patternCache sync.Map

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if re, ok := patternCache.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	patternCache.Store(pattern, re)
	return re, nil
}

// endsOperand reports whether token i can be the left side of a binary operator.
func endsOperand(doc *source.Document, i int) bool {
	switch doc.Tokens[i].Kind {
	case source.TokIdentifier:
		return !nonOperandKeywords[doc.TokenText(i)]
	case source.TokNumber, source.TokString, source.TokRParen, source.TokRBracket:
		return true
	case source.TokOperator:
		// Postfix "!" and "?" bind to the operand before them.
		text := doc.TokenText(i)
		return (text == "!" || text == "?") && lint.GapBefore(doc, i) == lint.GapNone
	default:
		return false
	}
}

// startsOperand reports whether token i can be the right side of a binary
// operator. A following operator is read as a prefix operator.
func startsOperand(doc *source.Document, i int) bool {
	switch doc.Tokens[i].Kind {
	case source.TokIdentifier, source.TokNumber, source.TokString,
		source.TokLParen, source.TokLBracket, source.TokLBrace,
		source.TokOperator, source.TokOther:
		return true
	default:
		return false
	}
}

// isKeyword reports whether word is a declaration keyword or modifier of lang.
func isKeyword(lang config.LanguageConfig, word string) bool {
	return declarationModifiers[word] ||
		slices.Contains(lang.TypeKeywords, word) ||
		slices.Contains(lang.ValueKeywords, word)
}

// isMemberAccess reports whether token i follows "." or "::".
func isMemberAccess(doc *source.Document, i int) bool {
	prev := doc.PrevCode(i)
	if prev < 0 {
		return false
	}
	text := doc.TokenText(prev)
	return text == "." || text == "::" || text == "?."
}

// inExpression reports whether a brace after token prev opens a closure or
// literal rather than a declaration body.
func inExpression(doc *source.Document, prev int) bool {
	if prev < 0 {
		return false
	}
	switch doc.Tokens[prev].Kind {
	case source.TokOperator, source.TokLParen, source.TokLBracket, source.TokComma:
		return true
	default:
		return false
	}
}

// normalizeGap adds the edit turning a None or Wide gap into one space.
// before selects the gap in front of token i.
func normalizeGap(b *fix.EditBuilder, doc *source.Document, i int, gap lint.Gap, before bool) {
	tok := doc.Tokens[i]
	switch gap {
	case lint.GapNone:
		if before {
			b.Insert(tok.StartOffset, " ")
		} else {
			b.Insert(tok.EndOffset, " ")
		}
	case lint.GapWide:
		start, end := lint.WhitespaceAfter(doc, i)
		if before {
			start, end = lint.WhitespaceBefore(doc, i)
		}
		if start >= 0 {
			b.ReplaceRange(start, end, " ")
		}
	case lint.GapSpace, lint.GapBreak:
	}
}

// spaced reports whether a gap counts as one space: a single space or a
// line break.
func spaced(g lint.Gap) bool {
	return g == lint.GapSpace || g == lint.GapBreak
}
