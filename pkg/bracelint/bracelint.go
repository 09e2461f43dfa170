// Package bracelint is the library entry point: lint one source text
// against a configuration and get back ordered, serializable records.
package bracelint

import (
	"context"
	"fmt"

	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/lint"
	_ "github.com/yaklabco/bracelint/pkg/lint/rules" // registers the built-in rules
	"github.com/yaklabco/bracelint/pkg/parser/scanner"
)

// SourceName is the path reported for text linted through Lint.
const SourceName = "<input>"

// Lint checks source with the rules of the default registry.
//
// cfg selects the language profile, the enabled categories and the rule
// settings; nil uses the defaults. A source the scanner cannot structure
// returns a *scanner.MalformedInputError and no records.
func Lint(ctx context.Context, source string, cfg *config.Config) ([]lint.Record, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	engine := lint.NewEngine(scanner.New(), lint.DefaultRegistry)
	result, err := engine.LintFile(ctx, SourceName, []byte(source), cfg)
	if err != nil {
		return nil, fmt.Errorf("lint: %w", err)
	}

	return lint.Records(result.Violations), nil
}
