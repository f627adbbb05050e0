package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/jsxmigrate/pkg/config"
	"github.com/yaklabco/jsxmigrate/pkg/migrate"
	"github.com/yaklabco/jsxmigrate/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// File status values.
const (
	StatusError     = "error"
	StatusSkipped   = "skipped"
	StatusMigrated  = "migrated"
	StatusPending   = "pending"
	StatusUnchanged = "unchanged"
)

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	stepMap   map[string]*StepAnalysis
	stepFiles map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		stepMap:   make(map[string]*StepAnalysis),
		stepFiles: make(map[string]map[string]bool),
	}
}

func (ctx *analysisContext) getOrCreateStepAnalysis(stepID, stepName string) *StepAnalysis {
	if _, ok := ctx.stepMap[stepID]; !ok {
		ctx.stepMap[stepID] = &StepAnalysis{
			StepID:   stepID,
			StepName: stepName,
			ByKind:   make(map[string]int),
		}
		ctx.stepFiles[stepID] = make(map[string]bool)
	}
	return ctx.stepMap[stepID]
}

// FileStatus classifies a file outcome.
func FileStatus(outcome runner.FileOutcome) string {
	pr := outcome.Result
	switch {
	case outcome.Error != nil:
		return StatusError
	case pr == nil:
		return StatusUnchanged
	case pr.Skipped:
		return StatusSkipped
	case pr.Written:
		return StatusMigrated
	case pr.Modified:
		return StatusPending
	default:
		return StatusUnchanged
	}
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through the recorded changes to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext()
	report.Totals.Duration = result.Stats.Duration

	for _, file := range result.Files {
		report.Totals.Files++
		displayPath := makeRelativePath(file.Path, opts.WorkingDir)
		fa := FileAnalysis{Path: displayPath, Status: FileStatus(file)}

		switch fa.Status {
		case StatusError:
			report.Totals.FilesErrored++
			fa.Error = file.Error.Error()
		case StatusSkipped:
			report.Totals.FilesSkipped++
		case StatusMigrated:
			report.Totals.FilesWritten++
			report.Totals.FilesChanged++
		case StatusPending:
			report.Totals.FilesChanged++
		}

		if file.Result != nil && file.Result.OriginalInfo != nil {
			report.Totals.Bytes += file.Result.OriginalInfo.Size
		}

		if file.Result != nil && file.Result.FileResult != nil {
			analyzeChanges(ctx, report, &fa, file.Result.Changes, opts)
		}

		if opts.IncludeByFile && fa.Status != StatusUnchanged {
			report.ByFile = append(report.ByFile, fa)
		}
	}

	if opts.IncludeByStep {
		report.ByStep = ctx.buildByStep(opts)
	}
	if opts.IncludeByFile {
		sortFileAnalysis(report.ByFile, opts.SortBy, opts.SortDesc)
	}

	return report
}

func analyzeChanges(ctx *analysisContext, report *Report, fa *FileAnalysis, changes []*migrate.Change, opts Options) {
	for _, change := range changes {
		stepName := opts.StepNames[change.StepID]
		display := config.FormatStepID(opts.StepFormat, change.StepID, stepName)

		fa.Warnings = append(fa.Warnings, change.Warnings...)
		report.Totals.Warnings += len(change.Warnings)

		if len(change.Edits) == 0 {
			continue
		}
		fa.Steps = append(fa.Steps, display)

		sa := ctx.getOrCreateStepAnalysis(change.StepID, stepName)
		ctx.stepFiles[change.StepID][fa.Path] = true

		for _, edit := range change.Edits {
			report.Totals.Edits++
			fa.Edits++
			sa.Edits++
			sa.ByKind[string(edit.Kind)]++

			if opts.IncludeEdits {
				report.Edits = append(report.Edits, EditEntry{
					FilePath: fa.Path,
					StepID:   change.StepID,
					Step:     display,
					Kind:     string(edit.Kind),
					Line:     edit.Line,
					Detail:   edit.Detail,
				})
			}
		}
	}
}

// buildByStep constructs the ByStep slice from accumulated data.
func (ctx *analysisContext) buildByStep(opts Options) []StepAnalysis {
	result := make([]StepAnalysis, 0, len(ctx.stepMap))
	for stepID, sa := range ctx.stepMap {
		for f := range ctx.stepFiles[stepID] {
			sa.Files = append(sa.Files, f)
		}
		slices.Sort(sa.Files)
		result = append(result, *sa)
	}
	sortStepAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

func sortStepAnalysis(steps []StepAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(steps, func(left, right StepAnalysis) int {
		if sortBy == SortByAlpha {
			return cmp.Compare(left.StepID, right.StepID)
		}
		result := cmp.Compare(left.Edits, right.Edits)
		if desc {
			result = -result
		}
		if result == 0 {
			result = cmp.Compare(left.StepID, right.StepID)
		}
		return result
	})
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(files, func(left, right FileAnalysis) int {
		if sortBy == SortByAlpha {
			return cmp.Compare(left.Path, right.Path)
		}
		result := cmp.Compare(left.Edits, right.Edits)
		if desc {
			result = -result
		}
		if result == 0 {
			result = cmp.Compare(left.Path, right.Path)
		}
		return result
	})
}
