// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support and validation against the step registry.
package configloader

import (
	"context"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/jsxmigrate/pkg/config"
	"github.com/yaklabco/jsxmigrate/pkg/migrate"
	"github.com/yaklabco/jsxmigrate/pkg/migrate/steps"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Registry holds the built-in steps plus the migrations declared in Config.
	Registry *migrate.Registry

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (JSXMIGRATE_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.jsxmigrate.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/jsxmigrate/config.yaml)
//  6. System config (/etc/jsxmigrate/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name    string
		path    string
		skipped bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig || opts.ExplicitPath != ""},
		{"explicit", opts.ExplicitPath, false},
	}

	for _, layer := range layers {
		if layer.skipped || layer.path == "" {
			continue
		}
		fileCfg, flags, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		cfg = merge(cfg, fileCfg)
		flags.apply(cfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	// Invalid migrations are reported by Validate below.
	if registry, err := steps.RegistryFor(cfg); err == nil {
		normalizeStepKeys(cfg, registry, result)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	result.Registry = validation.Registry
	return result, nil
}

// explicitFlags records booleans a config file sets, so that a file can
// turn off a default that is on.
type explicitFlags struct {
	SkipGenerated *bool `yaml:"skip_generated"`
	Backups       struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"backups"`
}

func (f explicitFlags) apply(cfg *config.Config) {
	if f.SkipGenerated != nil {
		cfg.SkipGenerated = *f.SkipGenerated
	}
	if f.Backups.Enabled != nil {
		cfg.Backups.Enabled = *f.Backups.Enabled
	}
}

// loadConfigFile loads a configuration from a YAML file. Unknown keys are
// rejected.
func loadConfigFile(path string) (*config.Config, explicitFlags, error) {
	var flags explicitFlags

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, flags, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, flags, fmt.Errorf("%s: %w", path, err)
	}

	if err := yaml.Unmarshal(content, &flags); err != nil {
		return nil, flags, fmt.Errorf("%s: parse yaml: %w", path, err)
	}

	return cfg, flags, nil
}

// normalizeStepKeys rewrites step names and aliases in cfg.Steps to
// canonical step IDs, so `replace-card:` configures replace-card-component.
// When two keys name the same step, the canonical ID wins and a warning is
// recorded.
func normalizeStepKeys(cfg *config.Config, registry *migrate.Registry, result *LoadResult) {
	if len(cfg.Steps) == 0 || registry == nil {
		return
	}

	normalized := make(map[string]config.StepConfig, len(cfg.Steps))
	var aliased []string

	for key, stepCfg := range cfg.Steps {
		id, _, found := registry.Resolve(key)
		if !found || id == key {
			normalized[key] = stepCfg
			continue
		}
		aliased = append(aliased, key)
	}

	slices.Sort(aliased)
	for _, key := range aliased {
		id, _, _ := registry.Resolve(key)
		if _, exists := normalized[id]; exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate step configuration: %q and %q both refer to %s; using %s",
					key, id, id, id))
			continue
		}
		normalized[id] = cfg.Steps[key]
	}

	cfg.Steps = normalized
}
