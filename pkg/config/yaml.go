package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ToYAML encodes the file-backed fields of c with two-space indentation.
// CLI-only fields are tagged yaml:"-" and never appear.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAMLWithHeader is ToYAML preceded by a comment block and a blank line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil || header == "" {
		return body, err
	}
	return append([]byte(strings.TrimRight(header, "\n")+"\n\n"), body...), nil
}

// FromYAML decodes a config file. Unknown keys are errors so that typos in
// rule or option names surface. An empty document yields an empty config.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}
	return cfg, nil
}

// Clone returns a deep copy of c, CLI-only fields included.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	out := *c
	out.Categories = slices.Clone(c.Categories)
	out.Ignore = slices.Clone(c.Ignore)
	out.EnableRules = slices.Clone(c.EnableRules)
	out.DisableRules = slices.Clone(c.DisableRules)
	out.FixRules = slices.Clone(c.FixRules)

	if c.Languages != nil {
		out.Languages = make(map[string]LanguageConfig, len(c.Languages))
		for name, lang := range c.Languages {
			out.Languages[name] = lang.clone()
		}
	}
	if c.Rules != nil {
		out.Rules = make(map[string]RuleConfig, len(c.Rules))
		for key, rule := range c.Rules {
			out.Rules[key] = rule.Clone()
		}
	}
	return &out
}

// Clone returns a copy of rc that shares no pointers with it. Option values
// are copied one level deep.
func (rc RuleConfig) Clone() RuleConfig {
	out := RuleConfig{
		Enabled:  clonePtr(rc.Enabled),
		Severity: clonePtr(rc.Severity),
		AutoFix:  clonePtr(rc.AutoFix),
	}
	if rc.Options != nil {
		out.Options = maps.Clone(rc.Options)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
