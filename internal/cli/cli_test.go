package cli_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jsxmigrate/internal/cli"
	"github.com/yaklabco/jsxmigrate/internal/configloader"
	"github.com/yaklabco/jsxmigrate/pkg/runner"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "test-version", Commit: "test-commit", Date: "test-date"}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "jsxmigrate", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "persistent flag %q", name)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"run", "steps", "init", "restore", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	sub, _, err := cmd.Find([]string{"migrate"})
	require.NoError(t, err)
	assert.Equal(t, "run", sub.Name(), "migrate is an alias of run")
}

func TestRunCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	runCmd, _, err := cmd.Find([]string{"run"})
	require.NoError(t, err)

	tests := map[string]string{
		"write":             "false",
		"dry-run":           "false",
		"check":             "false",
		"step":              "[]",
		"disable-step":      "[]",
		"pattern":           "",
		"format":            "text",
		"step-format":       "id",
		"jobs":              "0",
		"ignore":            "[]",
		"ext":               "[]",
		"no-backups":        "false",
		"include-vendored":  "false",
		"include-generated": "false",
	}
	for name, def := range tests {
		flag := runCmd.Flags().Lookup(name)
		if assert.NotNil(t, flag, "flag %q", name) {
			assert.Equal(t, def, flag.DefValue, "default of %q", name)
		}
	}

	assert.Equal(t, "w", runCmd.Flags().Lookup("write").Shorthand)
	assert.Contains(t, runCmd.Flags().Lookup("format").Usage, "summary")
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stats runner.Stats
		check bool
		want  int
	}{
		{"clean", runner.Stats{}, true, cli.ExitSuccess},
		{"pending without check", runner.Stats{FilesChanged: 1}, false, cli.ExitSuccess},
		{"pending with check", runner.Stats{FilesChanged: 1}, true, cli.ExitChangesPending},
		{"written with check", runner.Stats{FilesChanged: 1, FilesWritten: 1}, true, cli.ExitSuccess},
		{"file errors", runner.Stats{FilesErrored: 1, FilesChanged: 1}, true, cli.ExitFileErrors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := cli.ExitCodeFromResult(&runner.Result{Stats: tt.stats}, tt.check)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(nil, true))
}

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromError(nil))
	assert.Equal(t, cli.ExitChangesPending, cli.ExitCodeFromError(cli.ErrChangesPending))
	assert.Equal(t, cli.ExitFileErrors, cli.ExitCodeFromError(errors.Join(cli.ErrFilesFailed, errors.New("x"))))
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(cli.ErrInvalidUsage))
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(&configloader.ValidationError{Message: "bad"}))
	assert.Equal(t, cli.ExitInternalError, cli.ExitCodeFromError(errors.New("boom")))

	assert.True(t, cli.IsReportedError(cli.ErrChangesPending))
	assert.False(t, cli.IsReportedError(cli.ErrInvalidUsage))
}
