package analysis

import "time"

// Report contains pre-computed views of migration results.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Edits is the flat list for detailed output.
	Edits []EditEntry `json:"edits,omitempty"`

	// ByFile groups edits by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByStep groups edits by step.
	ByStep []StepAnalysis `json:"byStep,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// EditEntry represents a single recorded edit in the report.
type EditEntry struct {
	FilePath string `json:"filePath"`
	StepID   string `json:"stepId"`
	Step     string `json:"step"`
	Kind     string `json:"kind"`
	Line     int    `json:"line"`
	Detail   string `json:"detail,omitempty"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files        int           `json:"filesProcessed"`
	FilesChanged int           `json:"filesChanged"`
	FilesWritten int           `json:"filesWritten"`
	FilesSkipped int           `json:"filesSkipped"`
	FilesErrored int           `json:"filesErrored"`
	Edits        int           `json:"edits"`
	Warnings     int           `json:"warnings"`
	Bytes        int64         `json:"bytes"`
	Duration     time.Duration `json:"durationNs"`
}

// HasChanges returns true if any file has pending or written changes.
func (t Totals) HasChanges() bool {
	return t.FilesChanged > 0
}

// HasErrors returns true if any file failed.
func (t Totals) HasErrors() bool {
	return t.FilesErrored > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Status   string   `json:"status"`
	Edits    int      `json:"edits"`
	Warnings []string `json:"warnings,omitempty"`
	Steps    []string `json:"steps,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// StepAnalysis contains aggregated data for a single step.
type StepAnalysis struct {
	StepID   string         `json:"stepId"`
	StepName string         `json:"stepName"`
	Edits    int            `json:"edits"`
	ByKind   map[string]int `json:"byKind"`
	Files    []string       `json:"files,omitempty"`
}
