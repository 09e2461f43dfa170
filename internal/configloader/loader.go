// Package configloader finds, reads, merges and validates bracelint
// configuration. Layers apply in order of increasing precedence: defaults,
// system, user, project, an explicit --config file, BRACELINT_* variables
// and finally command-line flags.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/yaklabco/bracelint/internal/logging"
	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/lint"
)

// ErrConfigNotFound is returned when a config file named on the command
// line, or found during discovery, cannot be read because it is missing.
var ErrConfigNotFound = errors.New("config file not found")

// LoadOptions controls which layers Load reads.
type LoadOptions struct {
	// WorkingDir anchors project discovery. Empty means os.Getwd.
	WorkingDir string

	// ExplicitPath comes from --config and must exist.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds flag values and wins over every other layer.
	CLIConfig *config.Config

	// Registry resolves rule names to IDs. Nil means lint.DefaultRegistry.
	Registry *lint.Registry
}

// LoadResult is the effective configuration and where it came from.
type LoadResult struct {
	Config *config.Config

	Paths *ConfigPaths

	// LoadedFrom lists the files read, lowest precedence first.
	LoadedFrom []string

	// Warnings are problems that did not stop loading, such as a rule
	// configured under both its ID and its name.
	Warnings []string
}

// fileLayer is one config file in the precedence chain.
type fileLayer struct {
	source string
	path   string
}

func fileLayers(paths *ConfigPaths, opts LoadOptions) []fileLayer {
	var layers []fileLayer
	add := func(source, path string, skip bool) {
		if !skip && path != "" {
			layers = append(layers, fileLayer{source: source, path: path})
		}
	}
	add("system", paths.System, opts.IgnoreSystemConfig)
	add("user", paths.User, opts.IgnoreUserConfig)
	add("project", paths.Project, opts.IgnoreProjectConfig)
	add("explicit", paths.Explicit, false)
	return layers
}

// Load builds the effective configuration. Each file is validated on its own
// so errors name the file at fault; the merged result is validated again
// once flags and the environment are applied.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}
	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	for _, layer := range fileLayers(paths, opts) {
		fileCfg, err := readLayer(layer, registry, result)
		if err != nil {
			return nil, err
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		logger.Debug("loaded config", logging.FieldPath, layer.path, logging.FieldSource, layer.source)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}
	result.Warnings = append(result.Warnings, normalizeRuleKeys(cfg, registry)...)

	validation := ValidateWithRegistry(cfg, registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// readLayer decodes, normalizes and validates one config file.
func readLayer(layer fileLayer, registry *lint.Registry, result *LoadResult) (*config.Config, error) {
	content, err := os.ReadFile(layer.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("load %s config: %w: %s", layer.source, ErrConfigNotFound, layer.path)
	case err != nil:
		return nil, fmt.Errorf("load %s config: %w", layer.source, err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("load %s config: %s: %w", layer.source, layer.path, err)
	}
	result.Warnings = append(result.Warnings, normalizeRuleKeys(cfg, registry)...)

	if validation := ValidateWithRegistry(cfg, registry).InFile(layer.path); !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	return cfg, nil
}

// normalizeRuleKeys rekeys cfg.Rules by canonical rule ID. When a rule is
// configured under more than one key, the entry under its ID wins and a
// warning is returned. Unknown keys are left for validation to report.
func normalizeRuleKeys(cfg *config.Config, registry *lint.Registry) []string {
	if len(cfg.Rules) == 0 {
		return nil
	}

	var warnings []string
	rules := make(map[string]config.RuleConfig, len(cfg.Rules))
	keyFor := make(map[string]string)

	for _, key := range sortedKeys(cfg.Rules) {
		id, _, ok := registry.Resolve(key)
		if !ok {
			rules[key] = cfg.Rules[key]
			continue
		}
		if prev, dup := keyFor[id]; dup {
			warnings = append(warnings, fmt.Sprintf(
				"duplicate rule configuration: %q and %q both refer to %s; using %q", prev, key, id, id))
			if key != id {
				continue
			}
		}
		keyFor[id] = key
		rules[id] = cfg.Rules[key]
	}

	cfg.Rules = rules
	return warnings
}
