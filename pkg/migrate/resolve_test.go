package migrate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jsxmigrate/pkg/config"
	"github.com/yaklabco/jsxmigrate/pkg/migrate"
)

func testRegistry() *migrate.Registry {
	registry := migrate.NewRegistry()
	registry.Register(newRenameStep("card", "Card", "AlphaCard"))
	registry.Register(newRenameStep("stack", "Stack", "LegacyStack"))
	registry.Register(&disabledStep{BaseStep: migrate.NewBaseStep("opt-in", "opt in", "", nil, testPattern)})
	return registry
}

func resolvedIDs(resolved []migrate.ResolvedStep) []string {
	ids := make([]string, 0, len(resolved))
	for _, rs := range resolved {
		ids = append(ids, rs.Step.ID())
	}
	return ids
}

func TestResolveSteps(t *testing.T) {
	t.Parallel()

	enabled, disabled := true, false

	tests := []struct {
		name  string
		setup func(cfg *config.Config)
		want  []string
	}{
		{
			name:  "defaults",
			setup: func(*config.Config) {},
			want:  []string{"card", "stack"},
		},
		{
			name: "config enables opt-in step",
			setup: func(cfg *config.Config) {
				cfg.Steps["opt-in"] = config.StepConfig{Enabled: &enabled}
			},
			want: []string{"card", "opt-in", "stack"},
		},
		{
			name: "config disables step",
			setup: func(cfg *config.Config) {
				cfg.Steps["card"] = config.StepConfig{Enabled: &disabled}
			},
			want: []string{"stack"},
		},
		{
			name: "only steps by id and name",
			setup: func(cfg *config.Config) {
				cfg.OnlySteps = []string{"rename Stack", "opt-in"}
			},
			want: []string{"opt-in", "stack"},
		},
		{
			name: "CLI disable wins over config enable",
			setup: func(cfg *config.Config) {
				cfg.Steps["stack"] = config.StepConfig{Enabled: &enabled}
				cfg.DisableSteps = []string{"stack"}
			},
			want: []string{"card"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.setup(cfg)

			resolved, err := migrate.ResolveSteps(testRegistry(), cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resolvedIDs(resolved))
		})
	}
}

func TestResolveSteps_NilConfig(t *testing.T) {
	t.Parallel()

	resolved, err := migrate.ResolveSteps(testRegistry(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"card", "stack"}, resolvedIDs(resolved))
	assert.Equal(t, testPattern, resolved[0].Pattern)
}

func TestResolveSteps_UnknownStep(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.OnlySteps = []string{"nope"}

	_, err := migrate.ResolveSteps(testRegistry(), cfg)
	require.ErrorIs(t, err, migrate.ErrUnknownStep)
}

func TestResolveSteps_PatternOverrides(t *testing.T) {
	t.Parallel()

	t.Run("step option", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.Steps["card"] = config.StepConfig{Options: map[string]any{
			migrate.OptionPattern: `^@acme/next(/.*)?$`,
		}}

		resolved, err := migrate.ResolveSteps(testRegistry(), cfg)
		require.NoError(t, err)
		require.Equal(t, "card", resolved[0].Step.ID())
		assert.True(t, resolved[0].Pattern.Match("@acme/next/sub"))
		assert.False(t, resolved[0].Pattern.Match("@acme/ui"))
		assert.Equal(t, "@acme/next", resolved[0].Pattern.Canonical())
		assert.True(t, resolved[1].Pattern.Match("@acme/ui"), "other steps keep their pattern")
	})

	t.Run("run-wide pattern inherits canonical", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.Pattern = `(ui|kit)$`

		resolved, err := migrate.ResolveSteps(testRegistry(), cfg)
		require.NoError(t, err)
		for _, rs := range resolved {
			assert.True(t, rs.Pattern.Match("@acme/kit"))
			assert.Equal(t, "@acme/ui", rs.Pattern.Canonical())
		}
	})

	t.Run("invalid expression", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.Pattern = "("

		_, err := migrate.ResolveSteps(testRegistry(), cfg)
		require.Error(t, err)
	})
}
