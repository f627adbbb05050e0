package runner

import (
	"time"

	"github.com/yaklabco/jsxmigrate/pkg/migrate"
)

// FileOutcome wraps PipelineResult with resolved path metadata.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result contains the pipeline result for this file.
	// May be nil if the file encountered an error during processing.
	Result *migrate.PipelineResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files that went through the pipeline.
	FilesProcessed int

	// FilesChanged is the number of files whose migrated content differs.
	FilesChanged int

	// FilesWritten is the number of files written back to disk.
	FilesWritten int

	// FilesSkipped is the number of files skipped (generated, raced, or
	// output that no longer parses).
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// EditsTotal is the number of recorded edits across all files.
	EditsTotal int

	// EditsByKind maps edit kinds to counts.
	EditsByKind map[migrate.EditKind]int

	// Warnings is the number of step warnings across all files.
	Warnings int

	// Duration is the wall time of the run.
	Duration time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFailures reports whether any file could not be processed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasChanges reports whether any file has pending or written changes.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesChanged > 0
}

func newStats() Stats {
	return Stats{
		EditsByKind: make(map[migrate.EditKind]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	pr := outcome.Result
	if pr == nil {
		return
	}

	r.Stats.FilesProcessed++

	if pr.Skipped {
		r.Stats.FilesSkipped++
	}
	if pr.Modified && !pr.Skipped {
		r.Stats.FilesChanged++
	}
	if pr.Written {
		r.Stats.FilesWritten++
	}

	if pr.FileResult == nil {
		return
	}

	r.Stats.Warnings += len(pr.Warnings())
	for _, change := range pr.Changes {
		for _, edit := range change.Edits {
			r.Stats.EditsTotal++
			r.Stats.EditsByKind[edit.Kind]++
		}
	}
}
