// Package scanner provides the lint.Parser implementation for C-family
// source code. It tokenizes with a four-state machine (normal, line comment,
// block comment, string literal) driven by a language profile and builds the
// bracket scope tree in the same pass.
package scanner

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/source"
)

// errInvalidTokens indicates the token stream failed its coverage check.
var errInvalidTokens = errors.New("token stream does not cover content")

// Parser implements lint.Parser. It holds no state between calls and is safe
// for concurrent use.
type Parser struct{}

// New creates a scanner-based parser.
func New() *Parser {
	return &Parser{}
}

// Parse converts raw source bytes into a fully-populated Document.
//
// The method:
//  1. Checks for context cancellation.
//  2. Builds a Document shell with path, content, and lines.
//  3. Tokenizes the content, building the scope tree.
//  4. Validates the token stream and seals the document.
//
// Returns nil and a *MalformedInputError when brackets are unbalanced or a
// literal is unterminated; no partial document is returned.
func (p *Parser) Parse(
	ctx context.Context,
	path string,
	content []byte,
	lang config.LanguageConfig,
) (*source.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	doc := source.NewDocument(path, copyContent(content), lang.Name)

	tok := newTokenizer(doc.Content, lang)
	if err := tok.run(); err != nil {
		var malformed *MalformedInputError
		if errors.As(err, &malformed) {
			malformed.Path = path
		}
		return nil, err
	}

	if !source.ValidateTokens(tok.tokens, len(doc.Content)) {
		return nil, fmt.Errorf("%s: %w", path, errInvalidTokens)
	}

	doc.Tokens = tok.tokens
	doc.Root = tok.root
	doc.Seal()

	return doc, nil
}

// copyContent returns a copy so the document never aliases caller memory.
func copyContent(content []byte) []byte {
	if content == nil {
		return []byte{}
	}
	out := make([]byte, len(content))
	copy(out, content)
	return out
}
