package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jsxmigrate/internal/logging"
	"github.com/yaklabco/jsxmigrate/pkg/config"
	"github.com/yaklabco/jsxmigrate/pkg/migrate"
)

type stepsFlags struct {
	stepFormat string
	format     string
}

const formatJSON = "json"

// stepInfo represents a step in JSON output.
type stepInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Pattern     string   `json:"pattern"`
	Enabled     bool     `json:"enabled"`
	Tags        []string `json:"tags,omitempty"`
}

func newStepsCommand() *cobra.Command {
	flags := &stepsFlags{}

	cmd := &cobra.Command{
		Use:   "steps",
		Short: "List available migration steps",
		Long: `List the built-in migration steps and those declared under 'migrations:'
in the configuration, with the import path pattern each one matches and
whether it runs with the current configuration.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loadResult, _, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}

			infos, err := describeSteps(loadResult.Registry, loadResult.Config)
			if err != nil {
				return err
			}

			if flags.format == formatJSON {
				return writeStepsJSON(cmd.OutOrStdout(), infos)
			}

			logger := logging.NewWithWriter(cmd.OutOrStdout(), "info")
			if len(infos) == 0 {
				logger.Info("no steps registered")
				return nil
			}

			format := config.StepFormat(flags.stepFormat)
			for _, info := range infos {
				logger.Info(config.FormatStepID(format, info.ID, info.Name),
					logging.FieldEnabled, info.Enabled,
					logging.FieldPattern, info.Pattern,
					logging.FieldTags, joinTags(info.Tags),
					logging.FieldDescription, info.Description,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.stepFormat, "step-format", "combined",
		"step identifier format in output: id, name, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

// describeSteps lists every registered step with its resolved pattern and
// whether the configuration enables it.
func describeSteps(registry *migrate.Registry, cfg *config.Config) ([]stepInfo, error) {
	resolved, err := migrate.ResolveSteps(registry, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve steps: %w", err)
	}
	enabled := make(map[string]migrate.ResolvedStep, len(resolved))
	for _, rs := range resolved {
		enabled[rs.Step.ID()] = rs
	}

	steps := registry.Steps()
	infos := make([]stepInfo, 0, len(steps))
	for _, step := range steps {
		info := stepInfo{
			ID:          step.ID(),
			Name:        step.Name(),
			Description: step.Description(),
			Pattern:     step.Pattern().String(),
			Tags:        step.Tags(),
		}
		if rs, ok := enabled[step.ID()]; ok {
			info.Enabled = true
			info.Pattern = rs.Pattern.String()
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func writeStepsJSON(w io.Writer, infos []stepInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding steps: %w", err)
	}
	return nil
}

// joinTags renders tags for text output.
func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}
