package migrate

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/jsxmigrate/internal/logging"
	"github.com/yaklabco/jsxmigrate/pkg/config"
	"github.com/yaklabco/jsxmigrate/pkg/fix"
	"github.com/yaklabco/jsxmigrate/pkg/jsast"
	"github.com/yaklabco/jsxmigrate/pkg/printer"
)

// FileResult contains the results of migrating a single file.
type FileResult struct {
	// Path is the logical path of the file.
	Path string

	// File is the migrated tree.
	File *jsast.File

	// Changes holds the non-empty changes, one per step that did something.
	Changes []*Change

	// Edits are the text edits the printer derived from the tree.
	Edits []fix.TextEdit

	// Output is the printed content. It equals the input when nothing changed.
	Output []byte

	// Modified is true if Output differs from the input.
	Modified bool
}

// EditCount returns the number of rewrites across all steps.
func (fr *FileResult) EditCount() int {
	n := 0
	for _, c := range fr.Changes {
		n += len(c.Edits)
	}
	return n
}

// Count returns the number of rewrites of the given kind across all steps.
func (fr *FileResult) Count(kind EditKind) int {
	n := 0
	for _, c := range fr.Changes {
		n += c.Count(kind)
	}
	return n
}

// Warnings returns the warnings of all steps.
func (fr *FileResult) Warnings() []string {
	var out []string
	for _, c := range fr.Changes {
		out = append(out, c.Warnings...)
	}
	return out
}

// Engine coordinates parsing, step execution, and printing.
type Engine struct {
	// Parser parses source files into trees.
	Parser Parser

	// Registry holds all available steps.
	Registry *Registry

	// Logger receives per-step debug output and warnings. When nil, the
	// logger carried by the run context is used.
	Logger *log.Logger
}

// NewEngine creates a new Engine with the given parser and registry.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{
		Parser:   parser,
		Registry: registry,
	}
}

// MigrateFile parses content once, runs every enabled step in order on the
// same tree, and prints the tree once.
//
// When a step fails the tree is discarded and a *StepError is returned;
// the caller must leave the file as it was.
func (e *Engine) MigrateFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	resolved, err := ResolveSteps(e.Registry, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve steps: %w", err)
	}

	file, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	result := &FileResult{
		Path: path,
		File: file,
	}

	for _, rs := range resolved {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("migration cancelled: %w", ctx.Err())
		default:
		}

		logger := e.logger(ctx).With(logging.FieldStep, rs.Step.ID(), logging.FieldPath, path)
		stepCtx := NewStepContext(ctx, file, rs.Pattern, rs.Config, logger)

		change, err := rs.Step.Run(stepCtx)
		switch {
		case err == nil:
		case IsSoft(err):
			logger.Debug("step skipped", "reason", err)
			continue
		default:
			return nil, &StepError{StepID: rs.Step.ID(), Path: path, Err: err}
		}

		if change == nil {
			change = &Change{}
		}
		change.StepID = rs.Step.ID()

		for _, w := range change.Warnings {
			logger.Warn(w)
		}
		if change.Empty() && len(change.Warnings) == 0 {
			logger.Debug("no changes")
			continue
		}
		logger.Debug("step applied", "edits", len(change.Edits))
		result.Changes = append(result.Changes, change)
	}

	if !file.Changed() {
		result.Output = content
		return result, nil
	}

	edits, err := printer.Edits(file)
	if err != nil {
		return nil, fmt.Errorf("print: %w", err)
	}
	output, err := fix.Apply(content, edits)
	if err != nil {
		return nil, fmt.Errorf("print: %w", errors.Join(ErrStructuralMismatch, err))
	}

	result.Edits = edits
	result.Output = output
	result.Modified = !bytes.Equal(output, content)

	return result, nil
}

func (e *Engine) logger(ctx context.Context) *log.Logger {
	if e.Logger == nil {
		return logging.FromContext(ctx)
	}
	return e.Logger
}
