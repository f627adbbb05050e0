package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jsxmigrate/internal/configloader"
	"github.com/yaklabco/jsxmigrate/internal/logging"
	"github.com/yaklabco/jsxmigrate/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
	steps  []string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new jsxmigrate configuration file",
		Long: `Create a new .jsxmigrate.yml configuration file in the current directory.
The file can enable or disable steps, point them at a different import
path, and declare further component migrations.`,
		Example: `  jsxmigrate init                      Create minimal .jsxmigrate.yml
  jsxmigrate init --full               Document every step
  jsxmigrate init --format json        Create .jsxmigrate.json instead
  jsxmigrate init -o ci/migrate.yml    Write to a custom file path`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "generate a full template with every step documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"output file path (default: .jsxmigrate.yml or .jsxmigrate.json)")
	cmd.Flags().StringSliceVar(&flags.steps, "step", nil, "document only these step IDs (with --full)")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != formatJSON {
		return fmt.Errorf("%w: format %q must be yaml or json", ErrInvalidUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.DefaultProjectConfig
		if flags.format == formatJSON {
			outputPath = strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:         flags.full,
		Format:       flags.format,
		IncludeSteps: flags.steps,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.format == formatJSON {
		logger.Info("JSON files are not discovered automatically; pass --config " + outputPath)
	}
	logger.Info("run 'jsxmigrate steps' to see all available steps")

	return nil
}
