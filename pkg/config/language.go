package config

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/bracelint/pkg/langdetect"
)

// DefaultLanguage is the profile used when nothing else matches.
const DefaultLanguage = langdetect.LangSwift

// DefaultMaxLineLength is the line-length limit when a profile sets none.
const DefaultMaxLineLength = 100

// Brace placement styles.
const (
	BraceStyleSameLine = "same_line"
	BraceStyleOwnLine  = "own_line"
)

// Default naming patterns.
const (
	DefaultTypePattern  = `^[A-Z][A-Za-z0-9]*$`
	DefaultValuePattern = `^[a-z][A-Za-z0-9]*$`
)

// LanguageConfig describes the lexical syntax and naming conventions of one
// language profile.
type LanguageConfig struct {
	// Name is the profile name (e.g., "swift").
	Name string `yaml:"name,omitempty"`

	// Extensions are the file extensions claimed by the profile, with the dot.
	Extensions []string `yaml:"extensions,omitempty"`

	// LineComment starts a comment that runs to end of line.
	LineComment string `yaml:"line_comment,omitempty"`

	// DocCommentPrefix starts a documentation line comment. It must begin
	// with LineComment.
	DocCommentPrefix string `yaml:"doc_comment_prefix,omitempty"`

	// BlockCommentStart and BlockCommentEnd delimit block comments.
	BlockCommentStart string `yaml:"block_comment_start,omitempty"`
	BlockCommentEnd   string `yaml:"block_comment_end,omitempty"`

	// NestedBlockComments allows block comments to nest.
	NestedBlockComments *bool `yaml:"nested_block_comments,omitempty"`

	// StringDelimiters open and close single-line string literals.
	StringDelimiters []string `yaml:"string_delimiters,omitempty"`

	// MultilineStringDelimiters open and close literals that may span lines.
	MultilineStringDelimiters []string `yaml:"multiline_string_delimiters,omitempty"`

	// RawStringDelimiters lists delimiters whose literals ignore EscapeChar.
	RawStringDelimiters []string `yaml:"raw_string_delimiters,omitempty"`

	// RawStringPairs are raw literals whose closing delimiter differs from
	// the opening one (e.g., Swift's #"..."#).
	RawStringPairs []StringPair `yaml:"raw_string_pairs,omitempty"`

	// EscapeChar escapes the next byte inside non-raw strings.
	EscapeChar string `yaml:"escape_char,omitempty"`

	// StringInterpolation opens an embedded expression inside a literal
	// (e.g., `\(` or `${`). It ends with the bracket the expression closes.
	StringInterpolation string `yaml:"string_interpolation,omitempty"`

	// InterpolatedStrings limits StringInterpolation to these delimiters.
	// When empty, every non-raw delimiter interpolates.
	InterpolatedStrings []string `yaml:"interpolated_strings,omitempty"`

	// TypePattern is the regular expression type names must match.
	TypePattern string `yaml:"type_pattern,omitempty"`

	// ValuePattern is the regular expression variable, constant, property
	// and function names must match.
	ValuePattern string `yaml:"value_pattern,omitempty"`

	// TypeKeywords introduce a type name (e.g., "struct").
	TypeKeywords []string `yaml:"type_keywords,omitempty"`

	// ValueKeywords introduce a value name (e.g., "let").
	ValueKeywords []string `yaml:"value_keywords,omitempty"`

	// MaxLineLength is the line-length limit in runes.
	MaxLineLength int `yaml:"max_line_length,omitempty"`

	// SpacedOperators are the binary operators that need one space each side.
	SpacedOperators []string `yaml:"spaced_operators,omitempty"`

	// BraceStyle is BraceStyleSameLine or BraceStyleOwnLine.
	BraceStyle string `yaml:"brace_style,omitempty"`

	// IndentWidth is the number of spaces per indentation level.
	IndentWidth int `yaml:"indent_width,omitempty"`
}

// StringPair is an asymmetric raw literal delimiter pair.
type StringPair struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close"`

	// Multiline allows the literal to span lines.
	Multiline bool `yaml:"multiline,omitempty"`

	// Interpolation opens an embedded expression inside the literal.
	Interpolation string `yaml:"interpolation,omitempty"`
}

// StringLiteral is one literal syntax as the scanner sees it.
type StringLiteral struct {
	Open          string
	Close         string
	Multiline     bool
	Raw           bool
	Interpolation string
}

// Nested reports whether block comments nest.
func (l LanguageConfig) Nested() bool {
	return l.NestedBlockComments != nil && *l.NestedBlockComments
}

// LineLimit returns MaxLineLength or the default.
func (l LanguageConfig) LineLimit() int {
	if l.MaxLineLength > 0 {
		return l.MaxLineLength
	}
	return DefaultMaxLineLength
}

// Braces returns BraceStyle or the default.
func (l LanguageConfig) Braces() string {
	if l.BraceStyle == "" {
		return BraceStyleSameLine
	}
	return l.BraceStyle
}

// TypeRegexp returns TypePattern or the default.
func (l LanguageConfig) TypeRegexp() string {
	if l.TypePattern == "" {
		return DefaultTypePattern
	}
	return l.TypePattern
}

// ValueRegexp returns ValuePattern or the default.
func (l LanguageConfig) ValueRegexp() string {
	if l.ValuePattern == "" {
		return DefaultValuePattern
	}
	return l.ValuePattern
}

// IsRawString reports whether a delimiter opens a raw literal.
func (l LanguageConfig) IsRawString(delim string) bool {
	return slices.Contains(l.RawStringDelimiters, delim)
}

// IsMultilineString reports whether a delimiter opens a literal that may span lines.
func (l LanguageConfig) IsMultilineString(delim string) bool {
	return slices.Contains(l.MultilineStringDelimiters, delim)
}

// AllStringDelimiters returns every string delimiter, longest first, so a
// scanner can try them in order.
func (l LanguageConfig) AllStringDelimiters() []string {
	all := make([]string, 0, len(l.StringDelimiters)+len(l.MultilineStringDelimiters))
	all = append(all, l.MultilineStringDelimiters...)
	for _, d := range l.StringDelimiters {
		if !slices.Contains(all, d) {
			all = append(all, d)
		}
	}
	slices.SortStableFunc(all, func(a, b string) int {
		return len(b) - len(a)
	})
	return all
}

// StringLiterals returns every literal syntax, longest opener first, so a
// scanner can try them in order.
func (l LanguageConfig) StringLiterals() []StringLiteral {
	delims := l.AllStringDelimiters()
	out := make([]StringLiteral, 0, len(delims)+len(l.RawStringPairs))
	for _, pair := range l.RawStringPairs {
		out = append(out, StringLiteral{
			Open:          pair.Open,
			Close:         pair.Close,
			Multiline:     pair.Multiline,
			Raw:           true,
			Interpolation: pair.Interpolation,
		})
	}
	for _, d := range delims {
		out = append(out, StringLiteral{
			Open:          d,
			Close:         d,
			Multiline:     l.IsMultilineString(d),
			Raw:           l.IsRawString(d),
			Interpolation: l.interpolationFor(d),
		})
	}
	slices.SortStableFunc(out, func(a, b StringLiteral) int {
		return len(b.Open) - len(a.Open)
	})
	return out
}

func (l LanguageConfig) interpolationFor(delim string) string {
	if len(l.InterpolatedStrings) == 0 {
		if l.IsRawString(delim) {
			return ""
		}
		return l.StringInterpolation
	}
	if slices.Contains(l.InterpolatedStrings, delim) {
		return l.StringInterpolation
	}
	return ""
}

// Merge returns l with every non-zero field of override applied.
func (l LanguageConfig) Merge(override LanguageConfig) LanguageConfig {
	out := l.clone()
	if override.Name != "" {
		out.Name = override.Name
	}
	mergeSlice(&out.Extensions, override.Extensions)
	mergeString(&out.LineComment, override.LineComment)
	mergeString(&out.DocCommentPrefix, override.DocCommentPrefix)
	mergeString(&out.BlockCommentStart, override.BlockCommentStart)
	mergeString(&out.BlockCommentEnd, override.BlockCommentEnd)
	if override.NestedBlockComments != nil {
		v := *override.NestedBlockComments
		out.NestedBlockComments = &v
	}
	mergeSlice(&out.StringDelimiters, override.StringDelimiters)
	mergeSlice(&out.MultilineStringDelimiters, override.MultilineStringDelimiters)
	mergeSlice(&out.RawStringDelimiters, override.RawStringDelimiters)
	if override.RawStringPairs != nil {
		out.RawStringPairs = slices.Clone(override.RawStringPairs)
	}
	mergeString(&out.EscapeChar, override.EscapeChar)
	mergeString(&out.StringInterpolation, override.StringInterpolation)
	mergeSlice(&out.InterpolatedStrings, override.InterpolatedStrings)
	mergeString(&out.TypePattern, override.TypePattern)
	mergeString(&out.ValuePattern, override.ValuePattern)
	mergeSlice(&out.TypeKeywords, override.TypeKeywords)
	mergeSlice(&out.ValueKeywords, override.ValueKeywords)
	if override.MaxLineLength != 0 {
		out.MaxLineLength = override.MaxLineLength
	}
	mergeSlice(&out.SpacedOperators, override.SpacedOperators)
	mergeString(&out.BraceStyle, override.BraceStyle)
	if override.IndentWidth != 0 {
		out.IndentWidth = override.IndentWidth
	}
	return out
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func mergeSlice(dst *[]string, src []string) {
	if src != nil {
		*dst = slices.Clone(src)
	}
}

func (l LanguageConfig) clone() LanguageConfig {
	out := l
	out.Extensions = slices.Clone(l.Extensions)
	out.StringDelimiters = slices.Clone(l.StringDelimiters)
	out.MultilineStringDelimiters = slices.Clone(l.MultilineStringDelimiters)
	out.RawStringDelimiters = slices.Clone(l.RawStringDelimiters)
	out.RawStringPairs = slices.Clone(l.RawStringPairs)
	out.InterpolatedStrings = slices.Clone(l.InterpolatedStrings)
	out.TypeKeywords = slices.Clone(l.TypeKeywords)
	out.ValueKeywords = slices.Clone(l.ValueKeywords)
	out.SpacedOperators = slices.Clone(l.SpacedOperators)
	if l.NestedBlockComments != nil {
		v := *l.NestedBlockComments
		out.NestedBlockComments = &v
	}
	return out
}

// LanguageProfiles returns the built-in profiles with the configured
// overrides and additions applied.
func (c *Config) LanguageProfiles() map[string]LanguageConfig {
	profiles := BuiltinLanguages()
	if c == nil {
		return profiles
	}
	for name, override := range c.Languages {
		key := strings.ToLower(name)
		base, ok := profiles[key]
		if !ok {
			base = LanguageConfig{Name: key}
		}
		merged := base.Merge(override)
		merged.Name = key
		profiles[key] = merged
	}
	return profiles
}

// LanguageNames returns the sorted profile names.
func (c *Config) LanguageNames() []string {
	profiles := c.LanguageProfiles()
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ResolveLanguage selects the profile for a file: the forced Language, then
// a configured extension, then content detection, then DefaultLanguage.
func (c *Config) ResolveLanguage(path string, content []byte) LanguageConfig {
	profiles := c.LanguageProfiles()

	if c != nil && c.Language != "" {
		if profile, ok := profiles[strings.ToLower(c.Language)]; ok {
			return profile
		}
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != "" {
		for _, name := range c.LanguageNames() {
			if slices.Contains(profiles[name].Extensions, ext) {
				return profiles[name]
			}
		}
	}

	if name := langdetect.Detect(path, content); name != "" {
		if profile, ok := profiles[name]; ok {
			return profile
		}
	}

	return profiles[DefaultLanguage]
}

// KnownExtensions returns the sorted, de-duplicated extensions of all profiles.
func (c *Config) KnownExtensions() []string {
	var exts []string
	for _, profile := range c.LanguageProfiles() {
		for _, ext := range profile.Extensions {
			ext = strings.ToLower(ext)
			if !slices.Contains(exts, ext) {
				exts = append(exts, ext)
			}
		}
	}
	slices.Sort(exts)
	return exts
}
