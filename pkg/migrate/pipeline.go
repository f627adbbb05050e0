package migrate

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/jsxmigrate/internal/logging"
	"github.com/yaklabco/jsxmigrate/pkg/config"
	"github.com/yaklabco/jsxmigrate/pkg/fix"
	"github.com/yaklabco/jsxmigrate/pkg/fsutil"
	"github.com/yaklabco/jsxmigrate/pkg/langdetect"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrParseFailure indicates a parsing error.
	ErrParseFailure = errors.New("parse failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// PipelineResult contains the result of processing a single file through the safety pipeline.
type PipelineResult struct {
	// FileResult contains the changes and printed output.
	*FileResult

	// Path is the file path that was processed.
	Path string

	// OriginalInfo is the file state before processing (nil for in-memory content).
	OriginalInfo *fsutil.FileInfo

	// Modified is true if the migrated content differs from the original.
	Modified bool

	// ModifiedContent is the new content (nil if not modified).
	ModifiedContent []byte

	// Diff is the unified diff of the change (nil if not modified).
	Diff *fix.Diff

	// Skipped is true if the file was skipped (e.g., due to concurrent modification).
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// BackupCreated is true if a backup was created for this file.
	BackupCreated bool

	// Written is true if the file was written to disk.
	Written bool
}

// Summary returns a human-readable summary of the pipeline result.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "migrated (backup created)"
	case pr.Written:
		return "migrated"
	case pr.Modified:
		return "changes pending"
	default:
		return "unchanged"
	}
}

// PipelineOptions controls safety pipeline behavior.
type PipelineOptions struct {
	// Write enables writing migrated files back to disk.
	Write bool

	// DryRun reports changes without writing, even when Write is set.
	DryRun bool

	// Backup configures backup behavior.
	Backup fsutil.BackupConfig

	// StrictRaceDetection uses hash comparison for modification detection.
	// When false, only mod time and size are checked.
	StrictRaceDetection bool

	// ReParse re-parses the migrated content and refuses to write output
	// that no longer parses.
	ReParse bool

	// SkipGenerated skips files that look machine generated (minified
	// bundles, files with a generated-code header).
	SkipGenerated bool
}

// DefaultPipelineOptions returns sensible defaults.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
		ReParse:             true,
		SkipGenerated:       true,
	}
}

// Pipeline orchestrates the safe processing of a single file.
type Pipeline struct {
	// Engine is the migration engine used for parsing, steps, and printing.
	Engine *Engine
}

// NewPipeline creates a new safety pipeline with the given engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile runs the full safety pipeline for a single file.
//
// The pipeline performs the following steps:
//  1. Read and hash the original file; skip generated files.
//  2. Run the engine (parse, steps, print).
//  3. Re-parse the output to validate it.
//  4. Generate a diff.
//  5. Stop here unless writing was requested.
//  6. Check for concurrent modifications.
//  7. Create backup (if enabled).
//  8. Write the modified content atomically.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	originalContent, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	logger := logging.FromContext(ctx)

	if opts.SkipGenerated && langdetect.IsGenerated(path, originalContent) {
		logger.Debug("skipping generated file", logging.FieldPath, path)
		return &PipelineResult{
			Path:         path,
			OriginalInfo: info,
			Skipped:      true,
			SkipReason:   "generated file",
		}, nil
	}

	result, err := p.ProcessContent(ctx, path, originalContent, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if !result.Modified || result.Skipped || !opts.Write || opts.DryRun {
		return result, nil
	}

	modified, err := p.checkModified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return nil, err
	}
	if modified {
		logger.Warn("file changed on disk during processing", logging.FieldPath, path)
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true
	logger.Debug("wrote file", logging.FieldPath, path, logging.FieldBackup, result.BackupCreated)

	return result, nil
}

// ProcessContent processes in-memory content without file I/O.
// It never writes; Write in opts is ignored.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	originalContent []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("processing cancelled: %w", ctx.Err())
	default:
	}

	fileResult, err := p.Engine.MigrateFile(ctx, path, originalContent, cfg)
	if err != nil {
		var stepErr *StepError
		if errors.As(err, &stepErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	result := &PipelineResult{
		FileResult: fileResult,
		Path:       path,
	}

	if !fileResult.Modified {
		return result, nil
	}

	if opts.ReParse {
		if _, err := p.Engine.Parser.Parse(ctx, path, fileResult.Output); err != nil {
			result.Skipped = true
			result.SkipReason = fmt.Sprintf("re-parse failed: %v", err)
			return result, nil
		}
	}

	result.Modified = true
	result.ModifiedContent = fileResult.Output
	result.Diff = fix.GenerateDiff(path, originalContent, fileResult.Output)

	return result, nil
}

// checkModified checks if a file has been modified since it was read.
func (p *Pipeline) checkModified(ctx context.Context, info *fsutil.FileInfo, strict bool) (bool, error) {
	var modified bool
	var err error

	if strict {
		modified, err = fsutil.CheckModified(ctx, info)
	} else {
		modified, err = fsutil.CheckModifiedQuick(ctx, info)
	}

	if err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}
	return modified, nil
}

// categorizeError wraps an error with the appropriate pipeline error type.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	var stepErr *StepError
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrWriteFailure) ||
		errors.As(err, &stepErr)
}

// BackupConfigFromConfig creates an fsutil.BackupConfig from config.Config.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	return PipelineOptions{
		Write:               cfg.Write,
		DryRun:              cfg.DryRun,
		Backup:              BackupConfigFromConfig(cfg),
		StrictRaceDetection: true,
		ReParse:             true,
		SkipGenerated:       cfg.SkipGenerated,
	}
}
