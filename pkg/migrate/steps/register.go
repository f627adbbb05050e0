package steps

import (
	"errors"
	"fmt"

	"github.com/yaklabco/jsxmigrate/pkg/config"
	"github.com/yaklabco/jsxmigrate/pkg/migrate"
	"github.com/yaklabco/jsxmigrate/pkg/pathpattern"
)

// Polaris import paths: the package root and any sub-path of it.
const (
	PolarisPattern   = `^@shopify/polaris(/.*)?$`
	PolarisCanonical = "@shopify/polaris"
)

// NewReplaceCardStep creates the replace-card-component step.
func NewReplaceCardStep() *ReplaceComponent {
	step, err := NewReplaceComponent(Descriptor{
		ID:          "replace-card-component",
		Name:        "Replace Card with AlphaCard",
		Description: "Replaces Polaris Card with AlphaCard and wraps the children of every usage in AlphaStack",
		From:        "Card",
		To:          "AlphaCard",
		Wrapper:     "AlphaStack",
		Pattern:     pathpattern.MustCompile(PolarisPattern, PolarisCanonical),
		Tags:        []string{"polaris", "card"},
	})
	if err != nil {
		panic(err)
	}
	return step
}

// RegisterAll registers all built-in steps with the given registry.
func RegisterAll(registry *migrate.Registry) {
	registry.Register(NewReplaceCardStep())
	registry.RegisterAlias("replace-card", "replace-card-component")
}

// FromMigration builds the step a config migration entry declares.
func FromMigration(m config.Migration) (migrate.Step, error) {
	if m.Pattern == "" {
		return nil, fmt.Errorf("%w: %s: missing pattern", ErrInvalidDescriptor, m.ID)
	}
	pattern, err := pathpattern.Compile(m.Pattern, m.Canonical)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDescriptor, m.ID, err)
	}

	d := Descriptor{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		From:        m.From,
		To:          m.To,
		Wrapper:     m.Wrapper,
		Pattern:     pattern,
		Tags:        []string{"custom"},
	}
	if m.Wrapper == "" {
		return NewRenameComponent(d)
	}
	return NewReplaceComponent(d)
}

// RegisterMigrations adds one step per config migration to registry.
// A migration reusing the ID of a registered step replaces it.
func RegisterMigrations(registry *migrate.Registry, migrations []config.Migration) error {
	var errs []error
	for _, m := range migrations {
		step, err := FromMigration(m)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		registry.Register(step)
	}
	return errors.Join(errs...)
}

// RegistryFor returns DefaultRegistry extended with the migrations declared
// in cfg. DefaultRegistry itself is not modified.
func RegistryFor(cfg *config.Config) (*migrate.Registry, error) {
	registry := migrate.DefaultRegistry.Clone()
	if cfg == nil {
		return registry, nil
	}
	if err := RegisterMigrations(registry, cfg.Migrations); err != nil {
		return nil, err
	}
	return registry, nil
}

//nolint:gochecknoinits // Registration is intentionally done at init time.
func init() {
	RegisterAll(migrate.DefaultRegistry)
}
