package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/jsxmigrate/internal/ui/pretty"
	"github.com/yaklabco/jsxmigrate/pkg/analysis"
	"github.com/yaklabco/jsxmigrate/pkg/config"
	"github.com/yaklabco/jsxmigrate/pkg/fix"
	"github.com/yaklabco/jsxmigrate/pkg/migrate"
	"github.com/yaklabco/jsxmigrate/pkg/runner"
)

// DiffReporter prints a git-style unified diff for every pending or
// migrated file. Each diff is preceded by "#" lines giving the file status
// and the edits of each step; patch and git apply skip such lines.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

type diffTotals struct {
	files     int
	written   int
	additions int
	deletions int
}

// Report implements Reporter. It returns the number of files with a diff.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var totals diffTotals
	for _, file := range result.Files {
		path := strings.TrimPrefix(filepath.ToSlash(displayPath(file.Path, r.opts.WorkingDir)), "/")

		switch status := analysis.FileStatus(file); status {
		case analysis.StatusError:
			r.comment(path, r.styles.Error.Render("error: "+file.Error.Error()))
		case analysis.StatusSkipped:
			r.comment(path, r.styles.Warning.Render("skipped: "+file.Result.SkipReason))
		case analysis.StatusMigrated, analysis.StatusPending:
			pr := file.Result
			if !pr.Diff.HasChanges() {
				continue
			}
			totals.files++
			totals.additions += pr.Diff.Additions
			totals.deletions += pr.Diff.Deletions
			if pr.Written {
				totals.written++
			}
			r.writeFile(path, status, pr)
		}
	}

	if totals.files > 0 && r.opts.ShowSummary {
		r.writeSummary(totals)
	}

	return totals.files, nil
}

func (r *DiffReporter) comment(path, text string) {
	fmt.Fprintf(r.bw, "%s %s  %s\n", r.styles.Dim.Render("#"), r.styles.FilePath.Render(path), text)
}

func (r *DiffReporter) writeFile(path, status string, pr *migrate.PipelineResult) {
	r.comment(path, r.styles.FormatStatus(status))

	if pr.FileResult != nil {
		for _, change := range pr.Changes {
			if r.opts.ShowEdits && !change.Empty() {
				fmt.Fprintf(r.bw, "%s   %s\n", r.styles.Dim.Render("#"), r.stepLine(change))
			}
			for _, warning := range change.Warnings {
				fmt.Fprintf(r.bw, "%s   %s %s\n", r.styles.Dim.Render("#"), r.styles.Warning.Render("warning:"), warning)
			}
		}
	}

	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)))
	fmt.Fprintln(r.bw, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(r.bw, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, hunk := range pr.Diff.Hunks {
		fmt.Fprintln(r.bw, r.styles.DiffHunk.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OriginalStart, hunk.OriginalCount, hunk.ModifiedStart, hunk.ModifiedCount)))

		for _, line := range hunk.Lines {
			switch line.Kind {
			case fix.DiffLineAdd:
				fmt.Fprintln(r.bw, r.styles.DiffAdd.Render("+"+line.Content))
			case fix.DiffLineRemove:
				fmt.Fprintln(r.bw, r.styles.DiffRemove.Render("-"+line.Content))
			default:
				fmt.Fprintln(r.bw, r.styles.DiffContext.Render(" "+line.Content))
			}
		}
	}

	fmt.Fprintln(r.bw)
}

// stepLine counts one step's edits by kind, in first-seen order.
// Example: "replace-card-component: 1 import-renamed, 2 tag-renamed".
func (r *DiffReporter) stepLine(change *migrate.Change) string {
	var kinds []migrate.EditKind
	counts := make(map[migrate.EditKind]int)
	for _, edit := range change.Edits {
		if counts[edit.Kind] == 0 {
			kinds = append(kinds, edit.Kind)
		}
		counts[edit.Kind]++
	}

	parts := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		parts = append(parts, fmt.Sprintf("%d %s", counts[kind], r.styles.EditKind.Render(string(kind))))
	}

	label := config.FormatStepID(r.opts.StepFormat, change.StepID, r.opts.StepNames[change.StepID])
	return r.styles.StepID.Render(label) + ": " + strings.Join(parts, ", ")
}

func (r *DiffReporter) writeSummary(totals diffTotals) {
	parts := []string{fmt.Sprintf("%d %s changed", totals.files, plural(totals.files, "file", "files"))}

	if totals.additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", totals.additions, plural(totals.additions, "insertion", "insertions"))))
	}
	if totals.deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", totals.deletions, plural(totals.deletions, "deletion", "deletions"))))
	}
	if totals.written > 0 {
		parts = append(parts, r.styles.Success.Render(fmt.Sprintf("%d written", totals.written)))
	}

	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
