package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jsxmigrate/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root jsxmigrate command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "jsxmigrate",
		Short: "Rewrite component imports and JSX usages across a codebase",
		Long: `jsxmigrate is a codemod for JavaScript and TypeScript sources with JSX.

Each migration step finds a component imported from a matching package,
renames the import and every element that uses it, and can wrap the
children of each usage in a new component. Everything the steps do not
touch is printed back byte for byte, so diffs stay minimal.

Files are reported by default. Pass --write to change them on disk;
originals are kept as .jsxmigrate.bak sidecars until you remove them
with 'jsxmigrate restore --clean'.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newStepsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newRestoreCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
