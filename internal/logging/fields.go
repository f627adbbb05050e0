// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldWrite   = "write"
	FieldDryRun  = "dry_run"
	FieldJobs    = "jobs"
	FieldPattern = "pattern"
	FieldFormat  = "format"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesWritten    = "files_written"
	FieldFilesSkipped    = "files_skipped"
	FieldEditsTotal      = "edits_total"
	FieldDuration        = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Step fields.
	FieldStep        = "step"
	FieldName        = "name"
	FieldEnabled     = "enabled"
	FieldDescription = "description"
	FieldTags        = "tags"
	FieldBackup      = "backup"
)
