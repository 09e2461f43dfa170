package rules

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/lint"
	"github.com/yaklabco/bracelint/pkg/source"
)

// TypeNamingRule checks declared type names against the profile's type pattern.
type TypeNamingRule struct {
	lint.BaseRule
}

// NewTypeNamingRule creates the type naming rule.
func NewTypeNamingRule() *TypeNamingRule {
	return &TypeNamingRule{
		BaseRule: lint.NewBaseRule(
			"BL010",
			"type-naming",
			"Type names match the language's type pattern (UpperCamelCase by default)",
			config.CategoryNaming,
			false,
		).WithSeverity(config.SeverityError),
	}
}

// Apply checks the name following each type keyword.
func (r *TypeNamingRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	pattern := ctx.OptionString("pattern", ctx.Lang.TypeRegexp())
	return checkDeclaredNames(ctx, r.ID(), ctx.Lang.TypeKeywords, pattern, "type")
}

// ValueNamingRule checks declared variable, constant and function names
// against the profile's value pattern.
type ValueNamingRule struct {
	lint.BaseRule
}

// NewValueNamingRule creates the value naming rule.
func NewValueNamingRule() *ValueNamingRule {
	return &ValueNamingRule{
		BaseRule: lint.NewBaseRule(
			"BL011",
			"value-naming",
			"Variable, constant and function names match the language's value pattern (lowerCamelCase by default)",
			config.CategoryNaming,
			false,
		),
	}
}

// Apply checks the name following each value keyword.
func (r *ValueNamingRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	pattern := ctx.OptionString("pattern", ctx.Lang.ValueRegexp())
	return checkDeclaredNames(ctx, r.ID(), ctx.Lang.ValueKeywords, pattern, "value")
}

// checkDeclaredNames reports every identifier introduced by one of keywords
// that does not match pattern. Names listed in the rule's "allow" option are
// exempt.
func checkDeclaredNames(
	ctx *lint.RuleContext,
	ruleID string,
	keywords []string,
	pattern, kind string,
) ([]lint.Violation, error) {
	doc := ctx.Doc
	if doc == nil || len(keywords) == 0 {
		return nil, nil
	}

	re, err := compilePattern(pattern)
	if err != nil {
		return nil, fmt.Errorf("%s naming: %w", kind, err)
	}

	allowed := ctx.OptionStringSlice("allow", nil)

	var violations []lint.Violation

	for i, tok := range doc.Tokens {
		if tok.Kind != source.TokIdentifier || !slices.Contains(keywords, doc.TokenText(i)) {
			continue
		}
		if ctx.Cancelled() {
			return violations, ctx.Ctx.Err()
		}
		if isMemberAccess(doc, i) {
			continue
		}

		next := doc.NextCode(i)
		if next < 0 || doc.Tokens[next].Kind != source.TokIdentifier {
			continue
		}
		name := doc.TokenText(next)
		if name == "_" || isKeyword(ctx.Lang, name) || slices.Contains(allowed, name) || re.MatchString(name) {
			continue
		}

		violations = append(violations, lint.NewViolation(ctx, ruleID, next, next,
			fmt.Sprintf("%s name '%s' does not match %s", kind, name, pattern)).
			Build())
	}

	return violations, nil
}

// ASCIIIdentifiersRule checks that identifiers use ASCII characters only.
type ASCIIIdentifiersRule struct {
	lint.BaseRule
}

// NewASCIIIdentifiersRule creates the ASCII identifier rule.
func NewASCIIIdentifiersRule() *ASCIIIdentifiersRule {
	return &ASCIIIdentifiersRule{
		BaseRule: lint.NewBaseRule(
			"BL012",
			"ascii-identifiers",
			"Identifiers contain only ASCII letters, digits, '_' and '$'",
			config.CategoryNaming,
			false,
		).WithSeverity(config.SeverityError),
	}
}

// Apply reports the first non-ASCII rune of each identifier.
func (r *ASCIIIdentifiersRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	doc := ctx.Doc
	if doc == nil {
		return nil, nil
	}

	var violations []lint.Violation

	for i, tok := range doc.Tokens {
		if tok.Kind != source.TokIdentifier {
			continue
		}
		if ctx.Cancelled() {
			return violations, ctx.Ctx.Err()
		}

		name := doc.TokenText(i)
		for _, ch := range name {
			if ch < utf8.RuneSelf {
				continue
			}
			violations = append(violations, lint.NewViolation(ctx, r.ID(), i, i,
				fmt.Sprintf("identifier '%s' contains non-ASCII character %q", name, ch)).
				Build())
			break
		}
	}

	return violations, nil
}
