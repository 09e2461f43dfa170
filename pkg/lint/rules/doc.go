// Package rules provides the built-in lint rules for bracelint.
//
// # Rule Categories
//
//   - Spacing:
//
//   - BL001: operator-spacing - One space around binary operators and '->'
//
//   - BL002: punctuation-spacing - No space before ',' ':' ';' and one after
//
//   - BL003: bracket-spacing - No space inside parentheses and square brackets
//
//   - Naming:
//
//   - BL010: type-naming - Type names match the type pattern
//
//   - BL011: value-naming - Variable and function names match the value pattern
//
//   - BL012: ascii-identifiers - Identifiers are ASCII only
//
//   - Braces:
//
//   - BL020: opening-brace - Opening brace placement follows the brace style
//
//   - BL021: closing-brace - Closing braces of multi-line blocks start their line
//
//   - Blank lines:
//
//   - BL030: scope-blank-lines - No blank lines just inside braces
//
//   - BL031: max-blank-lines - Limit consecutive blank lines
//
//   - Line length:
//
//   - BL040: line-length - Code width stays within max_line_length
//
//   - Documentation:
//
//   - BL050: doc-comment-summary - Doc comments open with a summary paragraph
//
//   - BL051: doc-comment-space - A space follows the doc comment marker
//
//   - Whitespace:
//
//   - BL060: no-trailing-spaces - Lines should not have trailing whitespace
//
//   - BL061: no-tab-indentation - Indent with spaces
//
//   - BL062: final-newline - Files end with exactly one newline
//
// # Rule Packs
//
// Rule packs are configuration presets for common use cases:
//
//   - core: layout rules as warnings, type naming as an error
//   - strict: every rule as an error
//   - relaxed: minimal noise, only essential whitespace rules
//   - allman: opening braces on their own line
//
// Use PackByName or Packs to access pack definitions programmatically.
//
// # Registration
//
// Rules are registered with the default registry by init via RegisterAll.
// Each rule embeds lint.BaseRule and builds violations with the
// lint.ViolationBuilder and fix.EditBuilder helpers.
package rules
