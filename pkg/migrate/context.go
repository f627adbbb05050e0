package migrate

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/jsxmigrate/internal/logging"
	"github.com/yaklabco/jsxmigrate/pkg/config"
	"github.com/yaklabco/jsxmigrate/pkg/imports"
	"github.com/yaklabco/jsxmigrate/pkg/jsast"
	"github.com/yaklabco/jsxmigrate/pkg/pathpattern"
)

// StepContext provides all context needed by a step to rewrite a file.
//
// StepContext stores context.Context as a field (Ctx) because it is a
// short-lived parameter object created per step invocation.
type StepContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// File is the shared tree. Every step of a run mutates the same tree.
	File *jsast.File

	// Pattern is the resolved import path pattern for this step.
	Pattern pathpattern.Pattern

	// StepConfig is the step-specific configuration (may be nil).
	StepConfig *config.StepConfig

	// Logger receives debug and warning output for this step.
	Logger *log.Logger
}

// NewStepContext creates a StepContext for the given file.
func NewStepContext(
	ctx context.Context,
	file *jsast.File,
	pattern pathpattern.Pattern,
	stepCfg *config.StepConfig,
	logger *log.Logger,
) *StepContext {
	if logger == nil {
		logger = logging.FromContext(ctx)
	}
	return &StepContext{
		Ctx:        ctx,
		File:       file,
		Pattern:    pattern,
		StepConfig: stepCfg,
		Logger:     logger,
	}
}

// Index returns a binding index over the file's declarations that match
// the step pattern. The index reads the live tree.
func (sc *StepContext) Index() *imports.Index {
	return imports.NewIndex(sc.File, sc.Pattern)
}

// Cancelled returns true if the context has been cancelled.
func (sc *StepContext) Cancelled() bool {
	select {
	case <-sc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Option returns a step-specific option value, or the default if not set.
func (sc *StepContext) Option(key string, defaultValue any) any {
	if sc.StepConfig == nil || sc.StepConfig.Options == nil {
		return defaultValue
	}
	if v, ok := sc.StepConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionString returns a step-specific string option, or the default.
func (sc *StepContext) OptionString(key string, defaultValue string) string {
	if s, ok := sc.Option(key, defaultValue).(string); ok {
		return s
	}
	return defaultValue
}

// OptionBool returns a step-specific boolean option, or the default.
func (sc *StepContext) OptionBool(key string, defaultValue bool) bool {
	if b, ok := sc.Option(key, defaultValue).(bool); ok {
		return b
	}
	return defaultValue
}
