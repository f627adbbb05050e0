package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/jsxmigrate/internal/ui/pretty"
	"github.com/yaklabco/jsxmigrate/pkg/analysis"
	"github.com/yaklabco/jsxmigrate/pkg/runner"
)

// TextReporter formats results as styled terminal output: one status line
// per file that needs attention, its edits, and a one-line summary.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to migrate."))
		}
		return 0, nil
	}

	var changed int
	for _, file := range result.Files {
		status := analysis.FileStatus(file)
		if status == analysis.StatusUnchanged {
			continue
		}
		if status == analysis.StatusMigrated || status == analysis.StatusPending {
			changed++
		}
		r.writeFile(file, status)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return changed, nil
}

func (r *TextReporter) writeFile(file runner.FileOutcome, status string) {
	path := displayPath(file.Path, r.opts.WorkingDir)

	if file.Error != nil {
		fmt.Fprint(r.bw, r.styles.FormatFileStatus(path, status, 0, file.Error.Error()))
		return
	}

	pr := file.Result
	var edits int
	if pr.FileResult != nil {
		edits = pr.EditCount()
	}
	fmt.Fprint(r.bw, r.styles.FormatFileStatus(path, status, edits, pr.SkipReason))

	if pr.FileResult == nil {
		return
	}

	for _, change := range pr.Changes {
		if r.opts.ShowEdits {
			for _, edit := range change.Edits {
				fmt.Fprint(r.bw, r.styles.FormatEdit(edit, change.StepID, r.opts.StepNames[change.StepID], r.opts.StepFormat))
			}
		}
		for _, warning := range change.Warnings {
			fmt.Fprint(r.bw, r.styles.FormatWarning(warning))
		}
	}
}

// displayPath makes path relative to workDir when possible.
func displayPath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}
