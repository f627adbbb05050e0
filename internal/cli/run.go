package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jsxmigrate/internal/logging"
	"github.com/yaklabco/jsxmigrate/pkg/config"
	"github.com/yaklabco/jsxmigrate/pkg/migrate"
	"github.com/yaklabco/jsxmigrate/pkg/parser/treesitter"
	"github.com/yaklabco/jsxmigrate/pkg/reporter"
	"github.com/yaklabco/jsxmigrate/pkg/runner"
)

type runFlags struct {
	format           string
	stepFormat       string
	check            bool
	compact          bool
	noEdits          bool
	includeVendored  bool
	includeGenerated bool
}

func newRunCommand() *cobra.Command {
	var cfg config.Config
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:     "run [paths...]",
		Aliases: []string{"migrate"},
		Short:   "Run migration steps over JS/TS files",
		Long:    runLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, args, &cfg, flags)
		},
	}

	addRunFlags(cmd, &cfg, flags)

	return cmd
}

const runLongDescription = `Run every enabled migration step over JavaScript and TypeScript files.

By default, processes .js, .jsx, .ts, .tsx, .mjs and .cjs files in the
current directory and below, skipping node_modules, hidden directories and
generated bundles. Nothing is written unless --write is given.`

const runExamples = `  jsxmigrate run                          # Report what would change
  jsxmigrate run src/ --write             # Migrate files under src/
  jsxmigrate run --format diff            # Show unified diffs
  jsxmigrate run --step replace-card      # Run a single step
  jsxmigrate run --pattern '^@acme/ui$'   # Match a different package
  jsxmigrate run --check                  # Exit 1 if anything needs migrating`

func runMigrate(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *runFlags) error {
	logger := logging.Default()
	ctx := logging.WithLogger(commandContext(cmd), logger)

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}
	cliCfg.Format = config.OutputFormat(format.String())
	cliCfg.StepFormat = config.StepFormat(flags.stepFormat)

	loadResult, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	finalCfg := loadResult.Config
	if flags.includeGenerated {
		finalCfg.SkipGenerated = false
	}

	logger.Debug("configuration loaded",
		logging.FieldWrite, finalCfg.Write,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldPattern, finalCfg.Pattern,
	)

	migrateRunner := runner.New(migrate.NewPipeline(migrate.NewEngine(treesitter.New(), loadResult.Registry)))

	runOpts := runner.OptionsFromConfig(finalCfg, args)
	runOpts.WorkingDir = workDir
	runOpts.IncludeVendored = flags.includeVendored

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, runErr := migrateRunner.Run(ctx, runOpts)
	if result == nil {
		return errors.Join(errors.New("run failed"), runErr)
	}

	logger.Debug("run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldEditsTotal, result.Stats.EditsTotal,
		logging.FieldDuration, result.Stats.Duration,
	)

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode(cmd),
		ShowEdits:   !flags.noEdits,
		ShowSummary: true,
		Compact:     flags.compact,
		StepFormat:  finalCfg.StepFormat,
		StepNames:   stepNames(loadResult.Registry),
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if runErr != nil {
		return runErr
	}

	switch ExitCodeFromResult(result, flags.check) {
	case ExitFileErrors:
		return ErrFilesFailed
	case ExitChangesPending:
		return ErrChangesPending
	default:
		return nil
	}
}

// stepNames maps every registered step ID to its display name.
func stepNames(registry *migrate.Registry) map[string]string {
	names := make(map[string]string)
	if registry == nil {
		return names
	}
	for _, step := range registry.Steps() {
		names[step.ID()] = step.Name()
	}
	return names
}

func addRunFlags(cmd *cobra.Command, cfg *config.Config, flags *runFlags) {
	cmd.Example = runExamples

	cmd.Flags().BoolVarP(&cfg.Write, "write", "w", false, "write migrated files to disk")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "report changes without writing, even with --write")
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit with status 1 when files need migrating")
	cmd.Flags().StringSliceVar(&cfg.OnlySteps, "step", nil, "run only these steps (ID, name or alias)")
	cmd.Flags().StringSliceVar(&cfg.DisableSteps, "disable-step", nil, "skip these steps")
	cmd.Flags().StringVar(&cfg.Pattern, "pattern", "", "import path regexp applied to every step")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff, summary")
	cmd.Flags().StringVar(&flags.stepFormat, "step-format", "id",
		"step identifier format in output: id, name, or combined")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&cfg.Ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&cfg.Extensions, "ext", nil, "file extensions to process (e.g. .tsx)")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when writing")
	cmd.Flags().BoolVar(&flags.includeVendored, "include-vendored", false, "also process node_modules and vendor directories")
	cmd.Flags().BoolVar(&flags.includeGenerated, "include-generated", false, "also process generated and minified files")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.noEdits, "no-edits", false, "list files only, without individual edits")
}
