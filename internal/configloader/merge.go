package configloader

import (
	"maps"
	"slices"

	"github.com/yaklabco/jsxmigrate/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
//   - Scalars: override wins when non-zero.
//   - Booleans: override wins when true. Files that set a boolean to false
//     are handled by explicitFlags.
//   - Steps: deep merge per step ID.
//   - Migrations: merged by ID, override entries replace base entries.
//   - Other slices: override replaces base when non-nil.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.StepFormat != "" {
		result.StepFormat = override.StepFormat
	}
	if override.Pattern != "" {
		result.Pattern = override.Pattern
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	result.Write = result.Write || override.Write
	result.DryRun = result.DryRun || override.DryRun
	result.NoBackups = result.NoBackups || override.NoBackups
	result.SkipGenerated = result.SkipGenerated || override.SkipGenerated
	result.Backups.Enabled = result.Backups.Enabled || override.Backups.Enabled

	result.Steps = mergeSteps(base.Steps, override.Steps)
	result.Migrations = mergeMigrations(base.Migrations, override.Migrations)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.OnlySteps != nil {
		result.OnlySteps = override.OnlySteps
	}
	if override.DisableSteps != nil {
		result.DisableSteps = override.DisableSteps
	}

	return &result
}

// mergeSteps deep merges per-step configuration. The result never aliases
// either input map.
func mergeSteps(base, override map[string]config.StepConfig) map[string]config.StepConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.StepConfig, len(base)+len(override))
	maps.Copy(result, base)

	for id, stepCfg := range override {
		if existing, ok := result[id]; ok {
			result[id] = mergeStepConfig(existing, stepCfg)
		} else {
			result[id] = stepCfg
		}
	}

	return result
}

// mergeStepConfig merges individual step configurations.
func mergeStepConfig(base, override config.StepConfig) config.StepConfig {
	result := base

	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}

	if override.Options != nil {
		options := make(map[string]any, len(base.Options)+len(override.Options))
		maps.Copy(options, base.Options)
		maps.Copy(options, override.Options)
		result.Options = options
	}

	return result
}

// mergeMigrations keeps base order, replacing entries whose ID reappears in
// override, then appends the new override entries.
func mergeMigrations(base, override []config.Migration) []config.Migration {
	if len(override) == 0 {
		return base
	}

	result := slices.Clone(base)
	for _, m := range override {
		idx := slices.IndexFunc(result, func(b config.Migration) bool { return b.ID == m.ID })
		if idx >= 0 {
			result[idx] = m
			continue
		}
		result = append(result, m)
	}
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
