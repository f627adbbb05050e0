package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes. Unknown keys are an
// error so that typos in step options surface early.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.Steps == nil {
		cfg.Steps = make(map[string]StepConfig)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := &Config{
		Migrations:    slices.Clone(c.Migrations),
		Extensions:    slices.Clone(c.Extensions),
		Ignore:        slices.Clone(c.Ignore),
		SkipGenerated: c.SkipGenerated,
		Backups:       c.Backups,
		Write:         c.Write,
		DryRun:        c.DryRun,
		Format:        c.Format,
		StepFormat:    c.StepFormat,
		Jobs:          c.Jobs,
		OnlySteps:     slices.Clone(c.OnlySteps),
		DisableSteps:  slices.Clone(c.DisableSteps),
		Pattern:       c.Pattern,
		NoBackups:     c.NoBackups,
	}

	if c.Steps != nil {
		clone.Steps = make(map[string]StepConfig, len(c.Steps))
		for k, v := range c.Steps {
			clone.Steps[k] = v.clone()
		}
	}

	return clone
}

// clone creates a deep copy of a StepConfig.
func (sc StepConfig) clone() StepConfig {
	clone := StepConfig{}

	if sc.Enabled != nil {
		enabled := *sc.Enabled
		clone.Enabled = &enabled
	}

	if sc.Options != nil {
		clone.Options = make(map[string]any, len(sc.Options))
		maps.Copy(clone.Options, sc.Options) // nested maps/slices in Options are shared
	}

	return clone
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2 //nolint:mnd // conventional YAML indentation
}
