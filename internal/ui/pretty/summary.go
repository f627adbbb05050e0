package pretty

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/yaklabco/jsxmigrate/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "4 edits in 2 files (1 written), 1 skipped, 12 files checked in 35ms".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	checked := s.Dim.Render(fmt.Sprintf("%s %s checked in %s",
		humanize.Comma(int64(stats.FilesProcessed)),
		plural(stats.FilesProcessed, wordFile, wordFiles),
		formatDuration(stats.Duration),
	))

	var parts []string

	if stats.FilesChanged == 0 {
		parts = append(parts, s.Success.Render("Nothing to migrate"))
	} else {
		changed := fmt.Sprintf("%s %s in %d %s",
			humanize.Comma(int64(stats.EditsTotal)),
			plural(stats.EditsTotal, "edit", "edits"),
			stats.FilesChanged,
			plural(stats.FilesChanged, wordFile, wordFiles),
		)
		if stats.FilesWritten > 0 {
			changed += fmt.Sprintf(" (%d written)", stats.FilesWritten)
		}
		parts = append(parts, s.Success.Render(changed))
	}

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	if stats.Warnings > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s",
			stats.Warnings, plural(stats.Warnings, "warning", "warnings"))))
	}

	parts = append(parts, checked)
	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(humanize.Comma(int64(stats.FilesProcessed))) + "\n")

	if stats.FilesChanged > 0 {
		builder.WriteString("  Files changed:     " +
			s.Success.Render(humanize.Comma(int64(stats.FilesChanged))) + "\n")
	}
	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:     " +
			s.Success.Render(humanize.Comma(int64(stats.FilesWritten))) + "\n")
	}
	if stats.FilesSkipped > 0 {
		builder.WriteString("  Files skipped:     " +
			s.Warning.Render(humanize.Comma(int64(stats.FilesSkipped))) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(humanize.Comma(int64(stats.FilesErrored))) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Total edits:       " +
		s.SummaryValue.Render(humanize.Comma(int64(stats.EditsTotal))) + "\n")
	if stats.Warnings > 0 {
		builder.WriteString("  Warnings:          " +
			s.Warning.Render(humanize.Comma(int64(stats.Warnings))) + "\n")
	}
	builder.WriteString("  Elapsed:           " +
		s.SummaryValue.Render(formatDuration(stats.Duration)) + "\n")

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Migration finished with failures"))
	case stats.FilesWritten > 0:
		builder.WriteString(s.Success.Render("Migration applied"))
	case stats.FilesChanged > 0:
		builder.WriteString(s.Warning.Render("Changes pending (run with --write to apply)"))
	default:
		builder.WriteString(s.Success.Render("Nothing to migrate"))
	}
	builder.WriteString("\n")

	return builder.String()
}

func formatDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "0s"
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	default:
		return d.Round(time.Millisecond).String()
	}
}
