package migrate

import "github.com/yaklabco/jsxmigrate/pkg/pathpattern"

// BaseStep provides a default implementation of the Step interface.
// Embed this in step implementations and override methods as needed.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
type BaseStep struct {
	id      string
	name    string
	desc    string
	tags    []string
	pattern pathpattern.Pattern
}

// NewBaseStep creates a BaseStep with the given properties.
func NewBaseStep(id, name, desc string, tags []string, pattern pathpattern.Pattern) BaseStep {
	return BaseStep{
		id:      id,
		name:    name,
		desc:    desc,
		tags:    tags,
		pattern: pattern,
	}
}

// ID returns the unique identifier for this step.
func (s *BaseStep) ID() string {
	return s.id
}

// Name returns the human-readable name of the step.
func (s *BaseStep) Name() string {
	return s.name
}

// Description returns a detailed description of what the step does.
func (s *BaseStep) Description() string {
	return s.desc
}

// DefaultEnabled returns whether the step is enabled by default.
// Override this method to change the default.
func (s *BaseStep) DefaultEnabled() bool {
	return true
}

// Tags returns categorization tags for this step.
func (s *BaseStep) Tags() []string {
	return s.tags
}

// Pattern returns the default import path pattern.
func (s *BaseStep) Pattern() pathpattern.Pattern {
	return s.pattern
}

// Run must be overridden by concrete step implementations.
// The default implementation changes nothing.
func (s *BaseStep) Run(_ *StepContext) (*Change, error) {
	return &Change{StepID: s.id}, nil
}
