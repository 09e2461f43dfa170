package lint

import "github.com/yaklabco/bracelint/pkg/config"

// BaseRule provides a default implementation of the Rule interface.
// Embed this in rule implementations and override methods as needed.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
// Use NewBaseRule to construct one.
type BaseRule struct {
	id       string          // Unique identifier (e.g., "BL001")
	name     string          // Human-readable name
	desc     string          // Detailed description
	category config.Category // Rule group
	severity config.Severity // Default severity
	fixable  bool            // Whether the rule can auto-fix
}

// NewBaseRule creates a BaseRule with warning severity.
func NewBaseRule(id, name, desc string, category config.Category, fixable bool) BaseRule {
	return BaseRule{
		id:       id,
		name:     name,
		desc:     desc,
		category: category,
		severity: config.SeverityWarning,
		fixable:  fixable,
	}
}

// WithSeverity returns a copy of the rule with a different default severity.
func (r BaseRule) WithSeverity(s config.Severity) BaseRule {
	r.severity = s
	return r
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the human-readable name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns a detailed description of what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// Category returns the group the rule belongs to.
func (r *BaseRule) Category() config.Category {
	return r.category
}

// DefaultEnabled returns whether the rule is enabled by default.
// Override this method to change the default.
func (r *BaseRule) DefaultEnabled() bool {
	return true
}

// DefaultSeverity returns the default severity for this rule.
func (r *BaseRule) DefaultSeverity() config.Severity {
	if r.severity == "" {
		return config.SeverityWarning
	}
	return r.severity
}

// CanFix returns whether this rule can auto-fix issues.
func (r *BaseRule) CanFix() bool {
	return r.fixable
}

// Apply must be overridden by concrete rule implementations.
// The default implementation returns no violations.
func (r *BaseRule) Apply(_ *RuleContext) ([]Violation, error) {
	return nil, nil
}
