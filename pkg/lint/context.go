package lint

import (
	"context"

	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/fix"
	"github.com/yaklabco/bracelint/pkg/source"
)

// RuleContext is what a rule sees for one document: the parsed tokens and
// scopes, the language profile, the rule's options and an edit builder for
// fixes. It is created per rule invocation and carries the run's context so
// the Rule interface stays a single Apply method.
type RuleContext struct {
	Ctx context.Context

	Doc *source.Document

	// Root is Doc.Root, or nil without a document.
	Root *source.Scope

	Lang   config.LanguageConfig
	Config *config.Config

	// RuleConfig may be nil when the rule has no configuration entry.
	RuleConfig *config.RuleConfig

	Builder *fix.EditBuilder

	// Registry resolves rule names for violations. The engine sets it.
	Registry *Registry
}

// NewRuleContext creates a RuleContext. A nil ctx is treated as
// context.Background and a nil doc yields an empty Root.
func NewRuleContext(
	ctx context.Context,
	doc *source.Document,
	lang config.LanguageConfig,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	if ctx == nil {
		ctx = context.Background()
	}
	rc := &RuleContext{
		Ctx:        ctx,
		Doc:        doc,
		Lang:       lang,
		Config:     cfg,
		RuleConfig: ruleCfg,
		Builder:    fix.NewEditBuilder(),
	}
	if doc != nil {
		rc.Root = doc.Root
	}
	return rc
}

// Path returns the document path, or "" when there is no document.
func (rc *RuleContext) Path() string {
	if rc.Doc == nil {
		return ""
	}
	return rc.Doc.Path
}

// Cancelled reports whether the run has been cancelled. Rules poll it
// between tokens.
func (rc *RuleContext) Cancelled() bool {
	return rc.Ctx.Err() != nil
}

// Option returns the raw value of a rule option, or defaultValue.
func (rc *RuleContext) Option(key string, defaultValue any) any {
	if v, ok := rc.lookup(key); ok {
		return v
	}
	return defaultValue
}

// OptionInt returns an integer option. YAML and JSON decode numbers as int
// or float64; both are accepted.
func (rc *RuleContext) OptionInt(key string, defaultValue int) int {
	return optionAs(rc, key, defaultValue, func(v any) (int, bool) {
		switch n := v.(type) {
		case int:
			return n, true
		case int64:
			return int(n), true
		case float64:
			return int(n), true
		}
		return 0, false
	})
}

// OptionString returns a string option.
func (rc *RuleContext) OptionString(key string, defaultValue string) string {
	return optionAs(rc, key, defaultValue, assertAs[string])
}

// OptionBool returns a boolean option.
func (rc *RuleContext) OptionBool(key string, defaultValue bool) bool {
	return optionAs(rc, key, defaultValue, assertAs[bool])
}

// OptionStringSlice returns a list option. Decoded lists arrive as []any;
// non-string items are dropped, and a list with no strings yields the default.
func (rc *RuleContext) OptionStringSlice(key string, defaultValue []string) []string {
	return optionAs(rc, key, defaultValue, func(v any) ([]string, bool) {
		switch list := v.(type) {
		case []string:
			return list, true
		case []any:
			var out []string
			for _, item := range list {
				if s, ok := item.(string); ok {
					out = append(out, s)
				}
			}
			return out, len(out) > 0
		}
		return nil, false
	})
}

func (rc *RuleContext) lookup(key string) (any, bool) {
	if rc.RuleConfig == nil {
		return nil, false
	}
	v, ok := rc.RuleConfig.Options[key]
	return v, ok
}

// optionAs converts option key with convert, falling back to defaultValue
// when it is missing or has the wrong type.
func optionAs[T any](rc *RuleContext, key string, defaultValue T, convert func(any) (T, bool)) T {
	raw, ok := rc.lookup(key)
	if !ok {
		return defaultValue
	}
	if v, ok := convert(raw); ok {
		return v
	}
	return defaultValue
}

func assertAs[T any](v any) (T, bool) {
	t, ok := v.(T)
	return t, ok
}
