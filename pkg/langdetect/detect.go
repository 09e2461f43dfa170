// Package langdetect maps source files onto bracelint language profiles.
// It uses go-enry to detect the language of files whose extension is not
// claimed by any configured profile.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Profile names returned by Detect.
const (
	LangSwift      = "swift"
	LangKotlin     = "kotlin"
	LangJava       = "java"
	LangC          = "c"
	LangCPP        = "cpp"
	LangCSharp     = "csharp"
	LangGo         = "go"
	LangJavaScript = "javascript"
	LangTypeScript = "typescript"
)

// classifierCandidates are the enry language names bracelint has profiles for.
//
//nolint:gochecknoglobals // read-only lookup table
var classifierCandidates = []string{
	"Swift", "Kotlin", "Java", "C", "C++", "C#", "Go", "JavaScript", "TypeScript",
}

// Detect returns the profile name for a file, or "" when the file is not
// recognisably one of the supported C-family languages.
func Detect(path string, content []byte) string {
	// Strategy 1: extension, when enry is certain.
	if path != "" {
		if lang, safe := enry.GetLanguageByExtension(path); safe {
			if name := normalize(lang); name != "" {
				return name
			}
		}
	}

	if len(bytes.TrimSpace(content)) == 0 {
		return ""
	}

	// Strategy 2: shebang (node/deno scripts without an extension).
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	// Strategy 3: highly indicative patterns.
	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	// Strategy 4: classifier restricted to supported languages.
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return ""
}

// detectByPattern checks for language-specific patterns that are highly indicative.
func detectByPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	text := string(content)

	switch {
	case bytes.HasPrefix(trimmed, []byte("package ")) && !strings.Contains(text, ";"):
		if strings.Contains(text, "fun ") {
			return LangKotlin
		}
		return LangGo
	case strings.Contains(text, "import Foundation") ||
		strings.Contains(text, "import UIKit") ||
		strings.Contains(text, "import SwiftUI"):
		return LangSwift
	case strings.Contains(text, "using System;"):
		return LangCSharp
	case strings.Contains(text, "#include <iostream>") || strings.Contains(text, "std::"):
		return LangCPP
	case strings.Contains(text, "#include "):
		return LangC
	case strings.Contains(text, "public static void main("):
		return LangJava
	case strings.Contains(text, "console.log") || strings.Contains(text, "=>"):
		if strings.Contains(text, ": string") || strings.Contains(text, "interface ") {
			return LangTypeScript
		}
		return LangJavaScript
	}

	return ""
}

// normalize converts go-enry language names to profile names.
func normalize(lang string) string {
	switch lang {
	case "Swift":
		return LangSwift
	case "Kotlin":
		return LangKotlin
	case "Java":
		return LangJava
	case "C":
		return LangC
	case "C++":
		return LangCPP
	case "C#":
		return LangCSharp
	case "Go":
		return LangGo
	case "JavaScript":
		return LangJavaScript
	case "TypeScript":
		return LangTypeScript
	default:
		return ""
	}
}
