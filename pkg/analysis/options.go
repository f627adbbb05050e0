package analysis

import "github.com/yaklabco/jsxmigrate/pkg/config"

// SortField specifies how to sort analysis results.
type SortField string

const (
	// SortByCount sorts by edit count (descending by default).
	SortByCount SortField = "count"
	// SortByAlpha sorts alphabetically.
	SortByAlpha SortField = "alpha"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha:
		return true
	default:
		return false
	}
}

// Options configures the Analyze function.
type Options struct {
	// IncludeEdits includes the flat edit list.
	IncludeEdits bool

	// IncludeByFile includes the per-file analysis.
	IncludeByFile bool

	// IncludeByStep includes the per-step analysis.
	IncludeByStep bool

	// SortBy specifies how to sort ByFile and ByStep.
	SortBy SortField

	// SortDesc sorts in descending order (highest first).
	SortDesc bool

	// StepFormat controls how step identifiers appear.
	StepFormat config.StepFormat

	// StepNames maps step IDs to display names.
	StepNames map[string]string

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IncludeEdits:  true,
		IncludeByFile: true,
		IncludeByStep: true,
		SortBy:        SortByCount,
		SortDesc:      true,
		StepFormat:    config.StepFormatID,
	}
}
