package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/bracelint/pkg/config"
)

// EnvVarPrefix starts every environment variable bracelint reads.
const EnvVarPrefix = "BRACELINT_"

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name  string
	Usage string
	apply func(cfg *config.Config, value string) error
}

//nolint:gochecknoglobals // read-only table
var envVars = []EnvVar{
	stringVar("LANGUAGE", "force a language profile", func(c *config.Config, v string) { c.Language = v }),
	listVar("CATEGORIES", "comma-separated rule categories to run", func(c *config.Config, v []string) {
		c.Categories = lo.Map(v, func(name string, _ int) config.Category { return config.Category(name) })
	}),
	stringVar("SEVERITY_DEFAULT", "severity for rules without one: error or warning",
		func(c *config.Config, v string) { c.SeverityDefault = v }),
	stringVar("FORMAT", "output format: text, json, sarif or diff",
		func(c *config.Config, v string) { c.Format = config.OutputFormat(v) }),
	stringVar("RULE_FORMAT", "rule label in output: name, id or combined",
		func(c *config.Config, v string) { c.RuleFormat = config.RuleFormat(v) }),
	intVar("JOBS", "parallel workers, 0 for one per CPU", func(c *config.Config, v int) { c.Jobs = v }),
	boolVar("FIX", "apply fixes", func(c *config.Config, v bool) { c.Fix = v }),
	boolVar("DRY_RUN", "print fixes as a diff instead of writing them", func(c *config.Config, v bool) { c.DryRun = v }),
	listVar("IGNORE", "comma-separated globs to skip", func(c *config.Config, v []string) { c.Ignore = v }),
	boolVar("NO_BACKUPS", "never write backups when fixing", func(c *config.Config, v bool) { c.NoBackups = v }),
	stringVar("BACKUPS_MODE", "backup location: sidecar, xdg or none",
		func(c *config.Config, v string) { c.Backups.Mode = v }),
}

// ListEnvVars returns the supported environment variables in display order.
func ListEnvVars() []EnvVar {
	return envVars
}

// LoadFromEnv applies every set BRACELINT_* variable to cfg. Empty
// variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, ev := range envVars {
		value := os.Getenv(ev.Name)
		if value == "" {
			continue
		}
		if err := ev.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", ev.Name, err)
		}
	}
	return nil
}

func stringVar(suffix, usage string, set func(*config.Config, string)) EnvVar {
	return EnvVar{Name: EnvVarPrefix + suffix, Usage: usage, apply: func(cfg *config.Config, v string) error {
		set(cfg, v)
		return nil
	}}
}

func boolVar(suffix, usage string, set func(*config.Config, bool)) EnvVar {
	return EnvVar{Name: EnvVarPrefix + suffix, Usage: usage, apply: func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", v)
		}
		set(cfg, b)
		return nil
	}}
}

func intVar(suffix, usage string, set func(*config.Config, int)) EnvVar {
	return EnvVar{Name: EnvVarPrefix + suffix, Usage: usage, apply: func(cfg *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		set(cfg, n)
		return nil
	}}
}

func listVar(suffix, usage string, set func(*config.Config, []string)) EnvVar {
	return EnvVar{Name: EnvVarPrefix + suffix, Usage: usage, apply: func(cfg *config.Config, v string) error {
		set(cfg, splitList(v))
		return nil
	}}
}

// splitList splits a comma-separated value, dropping empty items.
func splitList(value string) []string {
	items := lo.Map(strings.Split(value, ","), func(s string, _ int) string { return strings.TrimSpace(s) })
	items = lo.Compact(items)
	if len(items) == 0 {
		return nil
	}
	return items
}
