package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/jsxmigrate/pkg/config"
	"github.com/yaklabco/jsxmigrate/pkg/migrate"
)

// FormatStatus returns a styled file status label.
func (s *Styles) FormatStatus(status string) string {
	switch status {
	case "error":
		return s.Error.Render(status)
	case "skipped":
		return s.Warning.Render(status)
	case "migrated":
		return s.Success.Render(status)
	case "pending":
		return s.Info.Render(status)
	default:
		return s.Dim.Render(status)
	}
}

// FormatFileStatus formats the per-file status line.
// Example: "src/Page.tsx  migrated  (4 edits)".
func (s *Styles) FormatFileStatus(path, status string, edits int, reason string) string {
	line := fmt.Sprintf("%s  %s", s.FilePath.Render(path), s.FormatStatus(status))
	if edits > 0 {
		word := "edits"
		if edits == 1 {
			word = "edit"
		}
		line += s.Dim.Render(fmt.Sprintf("  (%d %s)", edits, word))
	}
	if reason != "" {
		line += s.Dim.Render(": " + reason)
	}
	return line + "\n"
}

// FormatEdit formats one recorded edit beneath its file line.
// Example: "    3  tag-renamed  Card -> AlphaCard  (replace-card-component)".
func (s *Styles) FormatEdit(edit migrate.Edit, stepID, stepName string, format config.StepFormat) string {
	var builder strings.Builder

	builder.WriteString("  ")
	builder.WriteString(s.Location.Render(fmt.Sprintf("%4d", edit.Line)))
	builder.WriteString("  ")
	builder.WriteString(s.EditKind.Render(string(edit.Kind)))
	if edit.Detail != "" {
		builder.WriteString("  ")
		builder.WriteString(s.Detail.Render(edit.Detail))
	}
	builder.WriteString("  ")
	builder.WriteString(s.StepID.Render("(" + config.FormatStepID(format, stepID, stepName) + ")"))
	builder.WriteString("\n")

	return builder.String()
}

// FormatWarning formats a step warning beneath its file line.
func (s *Styles) FormatWarning(msg string) string {
	return "  " + s.Warning.Render("warning:") + " " + msg + "\n"
}
