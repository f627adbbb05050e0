package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes all steps with their documentation.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// IncludeSteps is a list of step IDs to include.
	// If empty, all steps are included.
	IncludeSteps []string
}

// StepInfo contains step metadata for template generation.
type StepInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Pattern     string
	Tags        []string
}

// StepInfoProvider is a function that returns step information.
// This allows decoupling from the migrate package to avoid circular imports.
type StepInfoProvider func() []StepInfo

// DefaultStepInfoProvider is set by the migrate package during init.
//
//nolint:gochecknoglobals // Intentional extension point for step info.
var DefaultStepInfoProvider StepInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if opts.Full {
		out = generateFullTemplate(opts)
	} else {
		out = generateMinimalTemplate()
	}

	if opts.Format == "json" {
		out, err = templateToJSON(out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# File extensions to process
# extensions: [".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"]

# Skip files that look machine generated
skip_generated: true

# File patterns to ignore (glob patterns)
# ignore:
#   - "dist/**"

# Step-specific configuration
# steps:
#   replace-card-component:
#     enabled: true
#     options:
#       pattern: "^@shopify/polaris(/.*)?$"

# Additional component replacements
# migrations:
#   - id: replace-layout-section
#     from: Layout.Section
#     to: Layout.Item
#     pattern: "^@shopify/polaris(/.*)?$"
`)

	return buf.Bytes()
}

// generateFullTemplate creates a full template with all steps documented.
func generateFullTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`
#
# This template includes all available steps with their default settings.

extensions: [".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"]

skip_generated: true

# Backup configuration for --write
backups:
  enabled: true
  mode: sidecar

ignore:
  - "node_modules/**"
  - ".git/**"

migrations: []

steps:
`)

	steps := getStepInfos()
	if len(opts.IncludeSteps) > 0 {
		steps = slices.DeleteFunc(steps, func(s StepInfo) bool {
			return !slices.Contains(opts.IncludeSteps, s.ID)
		})
	}
	slices.SortFunc(steps, func(a, b StepInfo) int { return strings.Compare(a.ID, b.ID) })

	for _, step := range steps {
		fmt.Fprintf(&buf, "\n  # %s\n", step.Name)
		if step.Description != "" {
			fmt.Fprintf(&buf, "  # %s\n", wrapComment(step.Description, commentWrapWidth))
		}
		if len(step.Tags) > 0 {
			fmt.Fprintf(&buf, "  # Tags: %s\n", strings.Join(step.Tags, ", "))
		}
		fmt.Fprintf(&buf, "  %s:\n", step.ID)
		fmt.Fprintf(&buf, "    enabled: %t\n", step.Enabled)
		if step.Pattern != "" {
			buf.WriteString("    options:\n")
			fmt.Fprintf(&buf, "      pattern: %q\n", step.Pattern)
		}
	}

	return buf.Bytes()
}

// getStepInfos returns information about all registered steps.
func getStepInfos() []StepInfo {
	if DefaultStepInfoProvider != nil {
		return DefaultStepInfoProvider()
	}
	return nil
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// templateToJSON converts a YAML template to JSON. Comments are dropped.
func templateToJSON(yamlContent []byte) ([]byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(yamlContent, &doc); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return out, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# jsxmigrate configuration
# See: https://github.com/yaklabco/jsxmigrate`
}
