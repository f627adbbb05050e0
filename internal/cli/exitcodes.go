package cli

import (
	"errors"

	"github.com/yaklabco/jsxmigrate/internal/configloader"
	"github.com/yaklabco/jsxmigrate/pkg/runner"
)

// Exit codes for jsxmigrate.
const (
	// ExitSuccess indicates every file was processed.
	ExitSuccess = 0

	// ExitChangesPending indicates --check found files that would change.
	ExitChangesPending = 1

	// ExitFileErrors indicates at least one file could not be migrated.
	ExitFileErrors = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

var (
	// ErrChangesPending is returned by `run --check` when files would change.
	ErrChangesPending = errors.New("files need migration")

	// ErrFilesFailed is returned when one or more files failed to migrate.
	ErrFilesFailed = errors.New("some files could not be migrated")

	// ErrInvalidUsage marks bad flag values.
	ErrInvalidUsage = errors.New("invalid usage")
)

// ExitCodeFromResult determines the exit code for a finished run. With
// check set, pending changes are a failure.
func ExitCodeFromResult(result *runner.Result, check bool) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasFailures():
		return ExitFileErrors
	case check && result.HasChanges() && result.Stats.FilesWritten == 0:
		return ExitChangesPending
	default:
		return ExitSuccess
	}
}

// ExitCodeFromError maps a command error to a process exit code.
func ExitCodeFromError(err error) int {
	var verr *configloader.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrChangesPending):
		return ExitChangesPending
	case errors.Is(err, ErrFilesFailed):
		return ExitFileErrors
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.As(err, &verr), errors.Is(err, errConfig):
		return ExitConfigError
	default:
		return ExitInternalError
	}
}

// errConfig wraps configuration loading failures.
var errConfig = errors.New("failed to load configuration")

// IsReportedError reports whether err only signals an exit code, the
// details having been printed already.
func IsReportedError(err error) bool {
	return errors.Is(err, ErrChangesPending) || errors.Is(err, ErrFilesFailed)
}
