package configloader

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/jsxmigrate/pkg/config"
	"github.com/yaklabco/jsxmigrate/pkg/migrate"
	"github.com/yaklabco/jsxmigrate/pkg/migrate/steps"
	"github.com/yaklabco/jsxmigrate/pkg/runner"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "steps.replace-card-component.options.pattern").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown steps).
	Warnings []ValidationError

	// Registry holds the built-in steps plus the config's migrations.
	// It is nil when a migration could not be built.
	Registry *migrate.Registry
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) errorf(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// knownStepFormats lists valid step display formats.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownStepFormats = map[config.StepFormat]bool{
	config.StepFormatID:       true,
	config.StepFormatName:     true,
	config.StepFormatCombined: true,
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// Validate checks a configuration for errors and warnings. Step references
// are checked against the built-in steps plus the config's own migrations.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		result.Registry = migrate.DefaultRegistry.Clone()
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.errorf("format", cfg.Format,
			"invalid format %q; must be one of: text, json, diff, summary", cfg.Format)
	}
	if cfg.StepFormat != "" && !knownStepFormats[cfg.StepFormat] {
		result.errorf("step_format", cfg.StepFormat,
			"invalid step format %q; must be one of: id, name, combined", cfg.StepFormat)
	}
	if cfg.Jobs < 0 {
		result.errorf("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.errorf("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}
	if cfg.Write && cfg.DryRun {
		result.warnf("dry_run", true, "dry run set together with write; nothing will be written")
	}
	if cfg.Pattern != "" {
		if _, err := regexp.Compile(cfg.Pattern); err != nil {
			result.errorf("pattern", cfg.Pattern, "invalid import path pattern: %v", err)
		}
	}

	validateMigrations(cfg, result)
	validateSteps(cfg, result)
	validateExtensions(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateMigrations builds the registry the run will use, reporting each
// migration that cannot become a step.
func validateMigrations(cfg *config.Config, result *ValidationResult) {
	seen := make(map[string]int, len(cfg.Migrations))
	for i, m := range cfg.Migrations {
		field := fmt.Sprintf("migrations[%d]", i)
		if prev, dup := seen[m.ID]; dup && m.ID != "" {
			result.errorf(field+".id", m.ID, "duplicate migration id %q (first declared at migrations[%d])", m.ID, prev)
			continue
		}
		seen[m.ID] = i

		if _, err := steps.FromMigration(m); err != nil {
			result.errorf(field, m.ID, "%v", err)
		}
	}
	if !result.Valid() {
		return
	}

	registry, err := steps.RegistryFor(cfg)
	if err != nil {
		result.errorf("migrations", nil, "%v", err)
		return
	}
	result.Registry = registry
}

// validateSteps warns about configuration for unknown steps and resolves
// the enabled set so option errors surface before any file is read.
func validateSteps(cfg *config.Config, result *ValidationResult) {
	if result.Registry == nil {
		return
	}

	for id := range cfg.Steps {
		if _, ok := result.Registry.Get(id); !ok {
			result.warnf("steps."+id, id, "unknown step %q; it will be ignored", id)
		}
	}

	if _, err := migrate.ResolveSteps(result.Registry, cfg); err != nil {
		result.errorf("steps", nil, "%v", err)
	}
}

// validateExtensions checks that every extension has a leading dot.
func validateExtensions(cfg *config.Config, result *ValidationResult) {
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			result.errorf(fmt.Sprintf("extensions[%d]", i), ext,
				"invalid extension %q; must start with a dot (e.g. .tsx)", ext)
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := runner.CompileIgnore([]string{pattern}); err != nil {
			result.errorf(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
