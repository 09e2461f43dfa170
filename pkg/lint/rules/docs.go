package rules

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/fix"
	"github.com/yaklabco/bracelint/pkg/lint"
	"github.com/yaklabco/bracelint/pkg/source"
)

// blockDocStart opens a documentation block comment ("/** ... */").
const blockDocStart = "/**"

// DocCommentSummaryRule checks that a doc comment opens with a summary paragraph.
type DocCommentSummaryRule struct {
	lint.BaseRule
}

// NewDocCommentSummaryRule creates the doc comment summary rule.
func NewDocCommentSummaryRule() *DocCommentSummaryRule {
	return &DocCommentSummaryRule{
		BaseRule: lint.NewBaseRule(
			"BL050",
			"doc-comment-summary",
			"Doc comments start with a summary paragraph, not a heading, list or code block",
			config.CategoryDocumentation,
			false,
		),
	}
}

// docComment is one documentation comment: a run of consecutive doc line
// comments, or a single documentation block comment.
type docComment struct {
	first, last int
	body        []byte
}

// Apply parses each doc comment body as markdown and inspects its first block.
func (r *DocCommentSummaryRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	doc := ctx.Doc
	if doc == nil {
		return nil, nil
	}

	comments := collectDocComments(doc, ctx.Lang)
	if len(comments) == 0 {
		return nil, nil
	}

	parser := goldmark.New().Parser()
	var violations []lint.Violation

	for _, comment := range comments {
		if ctx.Cancelled() {
			return violations, ctx.Ctx.Err()
		}

		root := parser.Parse(text.NewReader(comment.body))

		var msg string
		switch first := root.FirstChild(); {
		case first == nil:
			msg = "doc comment is empty"
		case first.Kind() != ast.KindParagraph:
			msg = "doc comment should start with a summary paragraph, not " + blockName(first.Kind())
		default:
			continue
		}

		violations = append(violations, lint.NewViolation(ctx, r.ID(), comment.first, comment.last, msg).Build())
	}

	return violations, nil
}

func blockName(kind ast.NodeKind) string {
	switch kind {
	case ast.KindHeading:
		return "a heading"
	case ast.KindList:
		return "a list"
	case ast.KindFencedCodeBlock, ast.KindCodeBlock:
		return "a code block"
	case ast.KindBlockquote:
		return "a block quote"
	case ast.KindThematicBreak:
		return "a thematic break"
	case ast.KindHTMLBlock:
		return "HTML"
	default:
		return strings.ToLower(kind.String())
	}
}

// collectDocComments groups the doc comments of a document in source order.
func collectDocComments(doc *source.Document, lang config.LanguageConfig) []docComment {
	var comments []docComment
	var current *docComment
	var lines [][]byte

	flush := func() {
		if current == nil {
			return
		}
		current.body = bytes.Join(lines, []byte("\n"))
		comments = append(comments, *current)
		current = nil
		lines = nil
	}

	for i, tok := range doc.Tokens {
		switch {
		case tok.Kind == source.TokDocComment:
			if current != nil && doc.Tokens[current.last].StartLine != tok.StartLine-1 {
				flush()
			}
			if current == nil {
				current = &docComment{first: i}
			}
			current.last = i
			lines = append(lines, stripDocLine(tok.Text(doc.Content), lang.DocCommentPrefix))
		case tok.Kind == source.TokBlockComment:
			flush()
			if body, ok := blockDocBody(tok.Text(doc.Content), lang.BlockCommentEnd); ok {
				comments = append(comments, docComment{first: i, last: i, body: body})
			}
		case tok.Kind.IsCode():
			flush()
		}
	}
	flush()

	return comments
}

// stripDocLine removes the doc prefix and one following space.
func stripDocLine(line []byte, prefix string) []byte {
	line = bytes.TrimPrefix(line, []byte(prefix))
	line = bytes.TrimPrefix(line, []byte(" "))
	return bytes.TrimRight(line, " \t\r")
}

// blockDocBody returns the body of a "/** ... */" comment with its star
// margin removed. ok is false for other block comments.
func blockDocBody(comment []byte, end string) ([]byte, bool) {
	if end == "" || !bytes.HasPrefix(comment, []byte(blockDocStart)) || bytes.Equal(comment, []byte("/**/")) {
		return nil, false
	}
	inner := bytes.TrimSuffix(bytes.TrimPrefix(comment, []byte(blockDocStart)), []byte(end))

	rawLines := bytes.Split(inner, []byte("\n"))
	out := make([][]byte, 0, len(rawLines))
	for _, line := range rawLines {
		line = bytes.TrimLeft(bytes.TrimRight(line, " \t\r"), " \t")
		line = bytes.TrimPrefix(line, []byte("*"))
		line = bytes.TrimPrefix(line, []byte(" "))
		out = append(out, line)
	}
	return bytes.Join(out, []byte("\n")), true
}

// DocCommentSpaceRule checks that a doc comment marker is followed by a space.
type DocCommentSpaceRule struct {
	lint.BaseRule
}

// NewDocCommentSpaceRule creates the doc comment space rule.
func NewDocCommentSpaceRule() *DocCommentSpaceRule {
	return &DocCommentSpaceRule{
		BaseRule: lint.NewBaseRule(
			"BL051",
			"doc-comment-space",
			"A doc comment marker is followed by a space",
			config.CategoryDocumentation,
			true,
		),
	}
}

// Apply checks every doc line comment.
func (r *DocCommentSpaceRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	doc := ctx.Doc
	prefix := ctx.Lang.DocCommentPrefix
	if doc == nil || prefix == "" {
		return nil, nil
	}

	var violations []lint.Violation

	for _, tok := range doc.Tokens {
		if tok.Kind != source.TokDocComment {
			continue
		}
		if ctx.Cancelled() {
			return violations, ctx.Ctx.Err()
		}

		rest := bytes.TrimPrefix(tok.Text(doc.Content), []byte(prefix))
		if len(rest) == 0 || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '/' {
			continue
		}

		edits := fix.NewEditBuilder()
		edits.Insert(tok.StartOffset+len(prefix), " ")

		violations = append(violations, lint.NewLineViolation(ctx, r.ID(), tok.StartLine, tok.StartColumn, len(prefix),
			fmt.Sprintf("expected a space after '%s'", prefix)).
			WithFix(edits).
			Build())
	}

	return violations, nil
}
