// Package config defines core configuration types for jsxmigrate.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

// StepConfig holds per-step configuration options.
type StepConfig struct {
	Enabled *bool          `mapstructure:"enabled" yaml:"enabled,omitempty"`
	Options map[string]any `mapstructure:"options" yaml:"options,omitempty"`
}

// BackupsConfig controls backup behavior when writing files.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "none"
}

// Migration declares a component replacement step in configuration.
//
// Example:
//
//	migrations:
//	  - id: replace-layout-section
//	    from: Layout.Section
//	    to: Layout.Item
//	    pattern: "^@shopify/polaris(/.*)?$"
//	    canonical: "@shopify/polaris"
type Migration struct {
	ID          string `mapstructure:"id" yaml:"id"`
	Name        string `mapstructure:"name" yaml:"name,omitempty"`
	Description string `mapstructure:"description" yaml:"description,omitempty"`
	From        string `mapstructure:"from" yaml:"from"`
	To          string `mapstructure:"to" yaml:"to"`
	Wrapper     string `mapstructure:"wrapper" yaml:"wrapper,omitempty"`
	Pattern     string `mapstructure:"pattern" yaml:"pattern"`
	Canonical   string `mapstructure:"canonical" yaml:"canonical,omitempty"`
}

// OutputFormat specifies the output format for results.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatDiff, FormatSummary:
		return true
	default:
		return false
	}
}

// StepFormat controls how step identifiers appear in output.
type StepFormat string

const (
	StepFormatName     StepFormat = "name"     // "Replace Card with AlphaCard"
	StepFormatID       StepFormat = "id"       // "replace-card-component"
	StepFormatCombined StepFormat = "combined" // "replace-card-component/Replace Card with AlphaCard"
)

// Config is the root configuration structure for jsxmigrate.
type Config struct {
	// Steps contains per-step configuration keyed by step ID.
	Steps map[string]StepConfig `mapstructure:"steps" yaml:"steps,omitempty"`

	// Migrations declares additional component replacement steps.
	Migrations []Migration `mapstructure:"migrations" yaml:"migrations,omitempty"`

	// Extensions lists the file extensions to process.
	// Empty means .js, .jsx, .ts, .tsx, .mjs and .cjs.
	Extensions []string `mapstructure:"extensions" yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// SkipGenerated skips files that look machine generated.
	SkipGenerated bool `mapstructure:"skip_generated" yaml:"skip_generated"`

	// Backups configures backup behavior when writing.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Write enables writing migrated files back to disk.
	Write bool `mapstructure:"-" yaml:"-"`

	// DryRun shows what would change without writing.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// StepFormat controls how step identifiers appear in output.
	StepFormat StepFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// OnlySteps restricts the run to these step IDs or names.
	OnlySteps []string `mapstructure:"-" yaml:"-"`

	// DisableSteps contains step IDs to explicitly disable.
	DisableSteps []string `mapstructure:"-" yaml:"-"`

	// Pattern overrides the import path pattern of every step.
	Pattern string `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Steps:         make(map[string]StepConfig),
		SkipGenerated: true,
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format:     FormatText,
		StepFormat: StepFormatID,
		Jobs:       0, // 0 means use GOMAXPROCS
	}
}
