package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/jsxmigrate/pkg/config"
)

// envVarPrefix is the prefix for all jsxmigrate environment variables.
const envVarPrefix = "JSXMIGRATE_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envVar binds one environment variable to a config field.
type envVar struct {
	suffix string
	typ    envFieldType
	help   string
	apply  func(cfg *config.Config, v envValue)
}

// envValue carries a parsed value; only the member matching the
// variable's type is set.
type envValue struct {
	s     string
	b     bool
	i     int
	slice []string
}

// envVars lists the supported variables in display order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"WRITE", envTypeBool, "Write migrated files: true or false",
		func(c *config.Config, v envValue) { c.Write = v.b }},
	{"DRY_RUN", envTypeBool, "Report without writing: true or false",
		func(c *config.Config, v envValue) { c.DryRun = v.b }},
	{"JOBS", envTypeInt, "Number of parallel workers (0 = auto)",
		func(c *config.Config, v envValue) { c.Jobs = v.i }},
	{"FORMAT", envTypeString, "Output format: text, json, diff or summary",
		func(c *config.Config, v envValue) { c.Format = config.OutputFormat(v.s) }},
	{"STEP_FORMAT", envTypeString, "Step display: id, name or combined",
		func(c *config.Config, v envValue) { c.StepFormat = config.StepFormat(v.s) }},
	{"STEPS", envTypeSlice, "Comma-separated steps to run (IDs, names or aliases)",
		func(c *config.Config, v envValue) { c.OnlySteps = v.slice }},
	{"DISABLE_STEPS", envTypeSlice, "Comma-separated steps to skip",
		func(c *config.Config, v envValue) { c.DisableSteps = v.slice }},
	{"PATTERN", envTypeString, "Import path pattern applied to every step",
		func(c *config.Config, v envValue) { c.Pattern = v.s }},
	{"IGNORE", envTypeSlice, "Comma-separated list of ignore patterns",
		func(c *config.Config, v envValue) { c.Ignore = v.slice }},
	{"EXTENSIONS", envTypeSlice, "Comma-separated file extensions to process",
		func(c *config.Config, v envValue) { c.Extensions = v.slice }},
	{"SKIP_GENERATED", envTypeBool, "Skip generated and minified files: true or false",
		func(c *config.Config, v envValue) { c.SkipGenerated = v.b }},
	{"BACKUPS_ENABLED", envTypeBool, "Create backups when writing: true or false",
		func(c *config.Config, v envValue) { c.Backups.Enabled = v.b }},
	{"BACKUPS_MODE", envTypeString, "Backup mode: sidecar or none",
		func(c *config.Config, v envValue) { c.Backups.Mode = v.s }},
	{"NO_BACKUPS", envTypeBool, "Disable backups: true or false",
		func(c *config.Config, v envValue) { c.NoBackups = v.b }},
}

// LoadFromEnv applies JSXMIGRATE_* environment overrides to cfg.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	for _, ev := range envVars {
		name := envVarPrefix + ev.suffix
		raw := getenv(name)
		if raw == "" {
			continue
		}

		value, err := parseEnvValue(ev.typ, raw)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", name, err)
		}
		ev.apply(cfg, value)
	}

	return nil
}

func parseEnvValue(typ envFieldType, raw string) (envValue, error) {
	switch typ {
	case envTypeString:
		return envValue{s: raw}, nil
	case envTypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return envValue{}, fmt.Errorf("%q is not a boolean (expected true/false/1/0)", raw)
		}
		return envValue{b: b}, nil
	case envTypeInt:
		i, err := strconv.Atoi(raw)
		if err != nil {
			return envValue{}, fmt.Errorf("%q is not an integer", raw)
		}
		return envValue{i: i}, nil
	case envTypeSlice:
		return envValue{slice: parseSliceValue(raw)}, nil
	default:
		return envValue{}, fmt.Errorf("unknown field type %d", typ)
	}
}

// parseSliceValue splits a comma-separated value, trimming each element
// and dropping empty ones.
func parseSliceValue(value string) []string {
	var result []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns every supported environment variable with a short
// description, sorted by name.
func ListEnvVars() [][2]string {
	list := make([][2]string, 0, len(envVars))
	for _, ev := range envVars {
		list = append(list, [2]string{envVarPrefix + ev.suffix, ev.help})
	}
	slices.SortFunc(list, func(a, b [2]string) int { return strings.Compare(a[0], b[0]) })
	return list
}
