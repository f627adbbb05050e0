package migrate

import (
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/jsxmigrate/pkg/config"
	"github.com/yaklabco/jsxmigrate/pkg/pathpattern"
)

// ErrUnknownStep is returned when the configuration names a step that is
// not registered.
var ErrUnknownStep = errors.New("unknown step")

// Option keys every step understands.
const (
	OptionPattern   = "pattern"
	OptionCanonical = "canonical"
)

// ResolvedStep pairs a Step with its resolved configuration.
type ResolvedStep struct {
	// Step is the underlying step implementation.
	Step Step

	// Enabled indicates whether the step should be run.
	Enabled bool

	// Pattern is the import path pattern after config and CLI overrides.
	Pattern pathpattern.Pattern

	// Config is the step-specific configuration (may be nil).
	Config *config.StepConfig
}

// ResolveSteps determines which steps to run based on registry and config.
// Returns only enabled steps, in registry order, with their resolved
// configuration.
func ResolveSteps(registry *Registry, cfg *config.Config) ([]ResolvedStep, error) {
	var only, disabled []string
	if cfg != nil {
		var err error
		if only, err = canonicalIDs(registry, cfg.OnlySteps); err != nil {
			return nil, err
		}
		if disabled, err = canonicalIDs(registry, cfg.DisableSteps); err != nil {
			return nil, err
		}
	}

	var resolved []ResolvedStep
	for _, step := range registry.Steps() {
		rs, err := resolveStep(step, cfg)
		if err != nil {
			return nil, err
		}

		if len(only) > 0 {
			rs.Enabled = slices.Contains(only, step.ID())
		}
		if slices.Contains(disabled, step.ID()) {
			rs.Enabled = false
		}

		if rs.Enabled {
			resolved = append(resolved, rs)
		}
	}

	return resolved, nil
}

// resolveStep resolves the configuration for a single step.
// Precedence: step default, then config file, then CLI.
func resolveStep(step Step, cfg *config.Config) (ResolvedStep, error) {
	rs := ResolvedStep{
		Step:    step,
		Enabled: step.DefaultEnabled(),
		Pattern: step.Pattern(),
	}

	if cfg == nil {
		return rs, nil
	}

	if stepCfg, ok := cfg.Steps[step.ID()]; ok {
		rs.Config = &stepCfg

		if stepCfg.Enabled != nil {
			rs.Enabled = *stepCfg.Enabled
		}

		expr, _ := stepCfg.Options[OptionPattern].(string)
		canonical, _ := stepCfg.Options[OptionCanonical].(string)
		pattern, err := overridePattern(rs.Pattern, expr, canonical)
		if err != nil {
			return rs, fmt.Errorf("step %s: %w", step.ID(), err)
		}
		rs.Pattern = pattern
	}

	pattern, err := overridePattern(rs.Pattern, cfg.Pattern, "")
	if err != nil {
		return rs, fmt.Errorf("step %s: %w", step.ID(), err)
	}
	rs.Pattern = pattern

	return rs, nil
}

// overridePattern compiles expr when set. A canonical path that cannot be
// derived from expr is inherited from the previous pattern.
func overridePattern(prev pathpattern.Pattern, expr, canonical string) (pathpattern.Pattern, error) {
	if expr == "" {
		return prev, nil
	}

	pattern, err := pathpattern.Compile(expr, canonical)
	if err != nil {
		return prev, err
	}
	if pattern.Canonical() == "" && prev.Canonical() != "" {
		return pathpattern.Compile(expr, prev.Canonical())
	}
	return pattern, nil
}

func canonicalIDs(registry *Registry, keys []string) ([]string, error) {
	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		id, _, ok := registry.Resolve(key)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownStep, key)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
