package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jsxmigrate/pkg/config"
)

// isolatedOptions loads only project/explicit files from dir, which is
// marked as a VCS root so the upward search stays inside it.
func isolatedOptions(t *testing.T, dir string) LoadOptions {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolatedOptions(t, t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.True(t, result.Config.SkipGenerated)
	assert.True(t, result.Config.Backups.Enabled)
	assert.Equal(t, "sidecar", result.Config.Backups.Mode)
	assert.Equal(t, config.FormatText, result.Config.Format)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)

	require.NotNil(t, result.Registry)
	_, ok := result.Registry.Get("replace-card-component")
	assert.True(t, ok)
}

func TestLoad_ProjectConfigFoundUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	opts := isolatedOptions(t, root)
	writeConfig(t, filepath.Join(root, ".jsxmigrate.yml"), `
steps:
  replace-card:
    enabled: false
    options:
      pattern: "^@acme/ui$"
ignore:
  - "legacy/**"
skip_generated: false
backups:
  enabled: false
  mode: none
`)
	nested := filepath.Join(root, "src", "components")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	opts.WorkingDir = nested

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	require.Contains(t, cfg.Steps, "replace-card-component", "alias keys are normalized")
	assert.NotContains(t, cfg.Steps, "replace-card")
	step := cfg.Steps["replace-card-component"]
	require.NotNil(t, step.Enabled)
	assert.False(t, *step.Enabled)
	assert.Equal(t, "^@acme/ui$", step.Options["pattern"])

	assert.Equal(t, []string{"legacy/**"}, cfg.Ignore)
	assert.False(t, cfg.SkipGenerated, "a file can turn off a default")
	assert.False(t, cfg.Backups.Enabled)
	assert.Equal(t, "none", cfg.Backups.Mode)
	assert.Equal(t, []string{filepath.Join(root, ".jsxmigrate.yml")}, result.LoadedFrom)
}

func TestLoad_ExplicitConfigReplacesProject(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	opts := isolatedOptions(t, root)
	writeConfig(t, filepath.Join(root, ".jsxmigrate.yml"), "ignore: [project/**]\n")
	explicit := filepath.Join(root, "ci", "migrate.yml")
	writeConfig(t, explicit, "ignore: [explicit/**]\n")
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"explicit/**"}, result.Config.Ignore)
	assert.Equal(t, []string{explicit}, result.LoadedFrom)
	assert.Equal(t, explicit, result.Paths.Explicit)
}

func TestLoad_CLITakesPrecedence(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	opts := isolatedOptions(t, root)
	writeConfig(t, filepath.Join(root, ".jsxmigrate.yml"), "extensions: [.tsx]\n")
	opts.CLIConfig = &config.Config{
		Format:     config.FormatJSON,
		Jobs:       4,
		Write:      true,
		Extensions: []string{".jsx", ".tsx"},
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FormatJSON, result.Config.Format)
	assert.Equal(t, 4, result.Config.Jobs)
	assert.True(t, result.Config.Write)
	assert.Equal(t, []string{".jsx", ".tsx"}, result.Config.Extensions)
	assert.True(t, result.Config.SkipGenerated, "unset CLI booleans keep the loaded value")
}

func TestLoad_MigrationsExtendRegistry(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	opts := isolatedOptions(t, root)
	writeConfig(t, filepath.Join(root, ".jsxmigrate.yml"), `
migrations:
  - id: replace-layout-section
    name: Replace Layout.Section
    from: Section
    to: LayoutItem
    pattern: "^@acme/layout$"
steps:
  replace-layout-section:
    enabled: true
`)

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	step, ok := result.Registry.Get("replace-layout-section")
	require.True(t, ok)
	assert.Equal(t, "Replace Layout.Section", step.Name())
	assert.Empty(t, result.Warnings)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{
			name: "invalid migration",
			content: `
migrations:
  - id: same
    from: Card
    to: Card
    pattern: "^a$"
`,
			field: "migrations[0]",
		},
		{
			name: "bad step pattern",
			content: `
steps:
  replace-card-component:
    options:
      pattern: "(unclosed"
`,
			field: "steps",
		},
		{
			name:    "bad extension",
			content: "extensions: [tsx]\n",
			field:   "extensions[0]",
		},
		{
			name:    "bad ignore glob",
			content: "ignore: [\"src/**\", \"[abc\"]\n",
			field:   "ignore[1]",
		},
		{
			name:    "bad backup mode",
			content: "backups:\n  mode: copy\n",
			field:   "backups.mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			opts := isolatedOptions(t, root)
			writeConfig(t, filepath.Join(root, ".jsxmigrate.yml"), tt.content)

			_, err := Load(context.Background(), opts)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestLoad_UnknownKeyIsRejected(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	opts := isolatedOptions(t, root)
	writeConfig(t, filepath.Join(root, ".jsxmigrate.yml"), "flavor: gfm\n")

	_, err := Load(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load project config")
}

func TestLoad_UnknownStepWarns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	opts := isolatedOptions(t, root)
	writeConfig(t, filepath.Join(root, ".jsxmigrate.yml"), "steps:\n  replace-button:\n    enabled: true\n")

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `unknown step "replace-button"`)
}

func TestLoad_UnknownOnlyStepFails(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t, t.TempDir())
	opts.CLIConfig = &config.Config{OnlySteps: []string{"replace-button"}}

	_, err := Load(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown step")
}

func TestLoad_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolatedOptions(t, t.TempDir()))
	require.ErrorIs(t, err, context.Canceled)
}
