// Package migrate provides the step engine, change records, and registry
// for jsxmigrate.
package migrate

import "github.com/yaklabco/jsxmigrate/pkg/pathpattern"

// Step defines the interface that all migration steps must implement.
type Step interface {
	// ID returns the unique identifier for this step (e.g., "replace-card-component").
	ID() string

	// Name returns the human-readable name of the step.
	Name() string

	// Description returns a detailed description of what the step rewrites.
	Description() string

	// DefaultEnabled returns whether the step runs when not configured.
	DefaultEnabled() bool

	// Tags returns categorization tags for this step (e.g., ["polaris"]).
	Tags() []string

	// Pattern returns the default import path pattern the step operates on.
	Pattern() pathpattern.Pattern

	// Run executes the step against the shared tree in ctx.File.
	//
	// Steps must:
	//   - Mutate only ctx.File; printing is done once by the engine.
	//   - Return an empty Change when there is nothing to do.
	//   - Respect context cancellation.
	//   - Return an error only when the file cannot be migrated; the
	//     engine then discards every change made to the file.
	Run(ctx *StepContext) (*Change, error)
}
