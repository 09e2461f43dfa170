package config

import "github.com/yaklabco/bracelint/pkg/langdetect"

func boolPtr(v bool) *bool { return &v }

// BuiltinLanguages returns a fresh copy of the built-in language profiles.
func BuiltinLanguages() map[string]LanguageConfig {
	arithmetic := []string{
		"=", "==", "!=", "<=", ">=", "&&", "||",
		"+", "-", "*", "/", "%",
		"+=", "-=", "*=", "/=", "%=",
		"&=", "|=", "^=", "<<=", ">>=",
	}
	with := func(extra ...string) []string {
		out := make([]string, 0, len(arithmetic)+len(extra))
		out = append(out, arithmetic...)
		return append(out, extra...)
	}
	without := func(drop ...string) []string {
		var out []string
		for _, op := range arithmetic {
			keep := true
			for _, d := range drop {
				if op == d {
					keep = false
					break
				}
			}
			if keep {
				out = append(out, op)
			}
		}
		return out
	}

	profiles := []LanguageConfig{
		{
			Name:                      langdetect.LangSwift,
			Extensions:                []string{".swift"},
			LineComment:               "//",
			DocCommentPrefix:          "///",
			BlockCommentStart:         "/*",
			BlockCommentEnd:           "*/",
			NestedBlockComments:       boolPtr(true),
			StringDelimiters:          []string{`"`},
			MultilineStringDelimiters: []string{`"""`},
			EscapeChar:                `\`,
			StringInterpolation:       `\(`,
			TypeKeywords:              []string{"class", "struct", "enum", "protocol", "typealias", "actor", "associatedtype"},
			ValueKeywords:             []string{"let", "var", "func"},
			SpacedOperators:           with("->", "??", "===", "!=="),
			IndentWidth:               4,
			RawStringPairs: []StringPair{
				{Open: `#"""`, Close: `"""#`, Multiline: true, Interpolation: `\#(`},
				{Open: `##"`, Close: `"##`, Interpolation: `\##(`},
				{Open: `#"`, Close: `"#`, Interpolation: `\#(`},
			},
		},
		{
			Name:                      langdetect.LangKotlin,
			Extensions:                []string{".kt", ".kts"},
			LineComment:               "//",
			BlockCommentStart:         "/*",
			BlockCommentEnd:           "*/",
			NestedBlockComments:       boolPtr(true),
			StringDelimiters:          []string{`"`, `'`},
			MultilineStringDelimiters: []string{`"""`},
			RawStringDelimiters:       []string{`"""`},
			EscapeChar:                `\`,
			StringInterpolation:       "${",
			InterpolatedStrings:       []string{`"`, `"""`},
			TypeKeywords:              []string{"class", "interface", "object", "typealias"},
			ValueKeywords:             []string{"val", "var", "fun"},
			SpacedOperators:           with("->", "?:", "===", "!=="),
			IndentWidth:               4,
		},
		{
			Name:              langdetect.LangJava,
			Extensions:        []string{".java"},
			LineComment:       "//",
			BlockCommentStart: "/*",
			BlockCommentEnd:   "*/",
			StringDelimiters:  []string{`"`, `'`},
			EscapeChar:        `\`,
			TypeKeywords:      []string{"class", "interface", "enum", "record"},
			ValueKeywords:     []string{"var"},
			SpacedOperators:   with("->"),
			IndentWidth:       4,
		},
		{
			Name:              langdetect.LangC,
			Extensions:        []string{".c", ".h"},
			LineComment:       "//",
			BlockCommentStart: "/*",
			BlockCommentEnd:   "*/",
			StringDelimiters:  []string{`"`, `'`},
			EscapeChar:        `\`,
			TypePattern:       `^[A-Za-z_][A-Za-z0-9_]*$`,
			ValuePattern:      `^[A-Za-z_][A-Za-z0-9_]*$`,
			TypeKeywords:      []string{"struct", "enum", "union"},
			SpacedOperators:   without("*", "&"),
			IndentWidth:       4,
		},
		{
			Name:              langdetect.LangCPP,
			Extensions:        []string{".cpp", ".cc", ".cxx", ".hpp", ".hh"},
			LineComment:       "//",
			DocCommentPrefix:  "///",
			BlockCommentStart: "/*",
			BlockCommentEnd:   "*/",
			StringDelimiters:  []string{`"`, `'`},
			EscapeChar:        `\`,
			TypePattern:       `^[A-Za-z_][A-Za-z0-9_]*$`,
			ValuePattern:      `^[A-Za-z_][A-Za-z0-9_]*$`,
			TypeKeywords:      []string{"class", "struct", "enum", "union"},
			ValueKeywords:     []string{"auto"},
			SpacedOperators:   without("*", "&"),
			IndentWidth:       4,
		},
		{
			Name:              langdetect.LangCSharp,
			Extensions:        []string{".cs"},
			LineComment:       "//",
			DocCommentPrefix:  "///",
			BlockCommentStart: "/*",
			BlockCommentEnd:   "*/",
			StringDelimiters:  []string{`"`, `'`},
			EscapeChar:        `\`,
			TypeKeywords:      []string{"class", "struct", "interface", "enum", "record"},
			ValueKeywords:     []string{"var"},
			SpacedOperators:   with("=>", "??"),
			BraceStyle:        BraceStyleOwnLine,
			IndentWidth:       4,
		},
		{
			Name:                      langdetect.LangGo,
			Extensions:                []string{".go"},
			LineComment:               "//",
			BlockCommentStart:         "/*",
			BlockCommentEnd:           "*/",
			StringDelimiters:          []string{`"`, `'`},
			MultilineStringDelimiters: []string{"`"},
			RawStringDelimiters:       []string{"`"},
			EscapeChar:                `\`,
			TypePattern:               `^[A-Za-z][A-Za-z0-9]*$`,
			ValuePattern:              `^[A-Za-z][A-Za-z0-9]*$`,
			TypeKeywords:              []string{"type"},
			ValueKeywords:             []string{"var", "const", "func"},
			SpacedOperators:           append(without("*", "&"), ":="),
			IndentWidth:               4,
		},
		{
			Name:                      langdetect.LangJavaScript,
			Extensions:                []string{".js", ".mjs", ".cjs", ".jsx"},
			LineComment:               "//",
			BlockCommentStart:         "/*",
			BlockCommentEnd:           "*/",
			StringDelimiters:          []string{`"`, `'`},
			MultilineStringDelimiters: []string{"`"},
			EscapeChar:                `\`,
			StringInterpolation:       "${",
			InterpolatedStrings:       []string{"`"},
			TypeKeywords:              []string{"class"},
			ValueKeywords:             []string{"let", "const", "var", "function"},
			SpacedOperators:           with("=>", "===", "!==", "??"),
			IndentWidth:               2,
		},
		{
			Name:                      langdetect.LangTypeScript,
			Extensions:                []string{".ts", ".tsx", ".mts", ".cts"},
			LineComment:               "//",
			BlockCommentStart:         "/*",
			BlockCommentEnd:           "*/",
			StringDelimiters:          []string{`"`, `'`},
			MultilineStringDelimiters: []string{"`"},
			EscapeChar:                `\`,
			StringInterpolation:       "${",
			InterpolatedStrings:       []string{"`"},
			TypeKeywords:              []string{"class", "interface", "type", "enum"},
			ValueKeywords:             []string{"let", "const", "var", "function"},
			SpacedOperators:           with("=>", "===", "!==", "??"),
			IndentWidth:               2,
		},
	}

	out := make(map[string]LanguageConfig, len(profiles))
	for _, p := range profiles {
		if p.MaxLineLength == 0 {
			p.MaxLineLength = DefaultMaxLineLength
		}
		if p.BraceStyle == "" {
			p.BraceStyle = BraceStyleSameLine
		}
		out[p.Name] = p
	}
	return out
}
