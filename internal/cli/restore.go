package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jsxmigrate/internal/logging"
	"github.com/yaklabco/jsxmigrate/pkg/fsutil"
	"github.com/yaklabco/jsxmigrate/pkg/runner"
)

type restoreFlags struct {
	clean  bool
	dryRun bool
}

func newRestoreCommand() *cobra.Command {
	flags := &restoreFlags{}

	cmd := &cobra.Command{
		Use:   "restore [paths...]",
		Short: "Restore files from their .jsxmigrate.bak backups",
		Long: `Put back the pre-migration source of every file that has a sidecar
backup, then delete the backup. With --clean, backups are deleted and the
migrated files are kept.`,
		Example: `  jsxmigrate restore            # Undo the last --write run
  jsxmigrate restore src/       # Only files under src/
  jsxmigrate restore --clean    # Accept the migration and drop backups`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.clean, "clean", false, "delete backups instead of restoring them")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "list backups without touching anything")

	return cmd
}

func runRestore(cmd *cobra.Command, args []string, flags *restoreFlags) error {
	ctx := commandContext(cmd)
	logger := logging.NewWithWriter(cmd.OutOrStdout(), "info")

	loadResult, workDir, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	opts := runner.OptionsFromConfig(loadResult.Config, args)
	opts.WorkingDir = workDir
	files, err := runner.Discover(ctx, opts)
	if err != nil {
		return fmt.Errorf("discover files: %w", err)
	}

	// Backups are always sidecars, whatever mode is configured now.
	const mode = fsutil.BackupModeSidecar

	action := "restored"
	if flags.clean {
		action = "removed backup"
	}

	var count int
	var errs []error
	for _, path := range files {
		if !fsutil.BackupExists(path, mode) {
			continue
		}

		display := path
		if rel, relErr := filepath.Rel(workDir, path); relErr == nil {
			display = rel
		}

		if flags.dryRun {
			logger.Info("backup found", logging.FieldPath, display,
				logging.FieldBackup, fsutil.BackupPath(display, mode))
			count++
			continue
		}

		var done bool
		if flags.clean {
			done, err = fsutil.RemoveBackup(path, mode)
		} else {
			done, err = fsutil.RestoreBackup(ctx, path, mode)
		}
		if err != nil {
			logger.Error("failed", logging.FieldPath, display, logging.FieldError, err)
			errs = append(errs, fmt.Errorf("%s: %w", display, err))
			continue
		}
		if done {
			logger.Info(action, logging.FieldPath, display)
			count++
		}
	}

	switch {
	case count == 0 && len(errs) == 0:
		logger.Info("no backups found")
	case flags.dryRun:
		logger.Info(fmt.Sprintf("%d backups found", count))
	default:
		logger.Info(fmt.Sprintf("%d files %s", count, pastTense(flags.clean)))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrFilesFailed}, errs...)...)
	}
	return nil
}

func pastTense(clean bool) string {
	if clean {
		return "cleaned"
	}
	return "restored"
}
