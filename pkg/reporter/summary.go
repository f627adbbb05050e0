package reporter

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/yaklabco/jsxmigrate/internal/ui/pretty"
	"github.com/yaklabco/jsxmigrate/pkg/analysis"
	"github.com/yaklabco/jsxmigrate/pkg/config"
	"github.com/yaklabco/jsxmigrate/pkg/migrate"
)

// Table layout constants for summary output.
const (
	defaultTableWidth = 90
	minTableWidth     = 60
	maxTableWidth     = 120
	numColWidth       = 8
	statusColWidth    = 10
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// truncateLeft keeps the tail of s so that it fits in width.
func truncateLeft(s string, width int) string {
	if len(s) <= width || width < 2 {
		return s
	}
	return "…" + s[len(s)-(width-1):]
}

// tableWidth returns the terminal width clamped to a readable range,
// or the default when w is not a terminal.
func tableWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return defaultTableWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultTableWidth
	}
	return min(max(width, minTableWidth), maxTableWidth)
}

// SummaryRenderer formats results as aggregated step and file tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
	width  int
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
		width:  tableWidth(opts.Writer),
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if len(report.ByStep) == 0 && len(report.ByFile) == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("Nothing to migrate"))
		r.renderTotals(report.Totals)
		return nil
	}

	r.renderStepTable(report.ByStep)
	if len(report.ByStep) > 0 {
		fmt.Fprintln(r.out)
	}
	r.renderFileTable(report.ByFile)

	fmt.Fprintln(r.out)
	r.renderTotals(report.Totals)

	return nil
}

func (r *SummaryRenderer) separator() string {
	return r.styles.TableSeparator.Render(strings.Repeat("─", r.width))
}

func (r *SummaryRenderer) renderStepTable(steps []analysis.StepAnalysis) {
	if len(steps) == 0 {
		return
	}

	nameWidth := r.width - 4*(numColWidth+1)

	fmt.Fprintln(r.out, r.styles.Bold.Render("Steps Summary"))
	fmt.Fprintln(r.out, r.separator())
	fmt.Fprintf(r.out, "%s %s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("Step", nameWidth)),
		r.styles.TableHeader.Render(padLeft("Files", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Imports", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Tags", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Wrapped", numColWidth)),
	)
	fmt.Fprintln(r.out, r.separator())

	for _, step := range steps {
		name := config.FormatStepID(r.opts.StepFormat, step.StepID, step.StepName)
		imports := step.ByKind[string(migrate.EditImportRenamed)] +
			step.ByKind[string(migrate.EditImportRemoved)] +
			step.ByKind[string(migrate.EditImportAdded)]

		fmt.Fprintf(r.out, "%s %s %s %s %s\n",
			padRight(truncateLeft(name, nameWidth), nameWidth),
			padLeft(strconv.Itoa(len(step.Files)), numColWidth),
			padLeft(strconv.Itoa(imports), numColWidth),
			padLeft(strconv.Itoa(step.ByKind[string(migrate.EditTagRenamed)]), numColWidth),
			padLeft(strconv.Itoa(step.ByKind[string(migrate.EditChildrenWrapped)]), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	pathWidth := r.width - statusColWidth - numColWidth - 2

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	fmt.Fprintln(r.out, r.separator())
	fmt.Fprintf(r.out, "%s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", pathWidth)),
		r.styles.TableHeader.Render(padRight("Status", statusColWidth)),
		r.styles.TableHeader.Render(padLeft("Edits", numColWidth)),
	)
	fmt.Fprintln(r.out, r.separator())

	for _, file := range files {
		paddedPath := padRight(truncateLeft(file.Path, pathWidth), pathWidth)
		switch file.Status {
		case analysis.StatusError:
			paddedPath = r.styles.TableErrorRow.Render(paddedPath)
		case analysis.StatusSkipped:
			paddedPath = r.styles.TableWarnRow.Render(paddedPath)
		}

		fmt.Fprintf(r.out, "%s %s %s\n",
			paddedPath,
			padRight(file.Status, statusColWidth),
			padLeft(strconv.Itoa(file.Edits), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	parts := []string{
		fmt.Sprintf("%s edits", humanize.Comma(int64(totals.Edits))),
		fmt.Sprintf("%d of %d files changed", totals.FilesChanged, totals.Files),
	}
	if totals.FilesWritten > 0 {
		parts = append(parts, r.styles.Success.Render(fmt.Sprintf("%d written", totals.FilesWritten)))
	}
	if totals.FilesSkipped > 0 {
		parts = append(parts, r.styles.Warning.Render(fmt.Sprintf("%d skipped", totals.FilesSkipped)))
	}
	if totals.FilesErrored > 0 {
		parts = append(parts, r.styles.Error.Render(fmt.Sprintf("%d failed", totals.FilesErrored)))
	}

	line := r.styles.Bold.Render("Total: ") + strings.Join(parts, ", ")
	if totals.Bytes > 0 {
		line += r.styles.Dim.Render(fmt.Sprintf(" (%s scanned)", humanize.Bytes(uint64(totals.Bytes))))
	}
	fmt.Fprintln(r.out, line)
}
