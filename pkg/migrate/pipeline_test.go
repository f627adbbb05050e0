package migrate_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jsxmigrate/pkg/config"
	"github.com/yaklabco/jsxmigrate/pkg/fsutil"
	"github.com/yaklabco/jsxmigrate/pkg/migrate"
)

const migratedSource = "import {Card, Stack} from '@acme/ui';\n" +
	"export const A = () => <AlphaCard><Stack>x</Stack></AlphaCard>;\n"

func writeSource(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "a.tsx")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newPipeline() *migrate.Pipeline {
	return migrate.NewPipeline(newEngine(newRenameStep("card", "Card", "AlphaCard")))
}

func TestPipeline_ProcessFile_ReportOnly(t *testing.T) {
	t.Parallel()

	path := writeSource(t, cardSource)

	result, err := newPipeline().ProcessFile(context.Background(), path, nil, migrate.DefaultPipelineOptions())
	require.NoError(t, err)

	assert.True(t, result.Modified)
	assert.False(t, result.Written)
	assert.Equal(t, "changes pending", result.Summary())
	assert.Equal(t, migratedSource, string(result.ModifiedContent))
	require.NotNil(t, result.Diff)
	assert.True(t, result.Diff.HasChanges())
	require.NotNil(t, result.OriginalInfo)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cardSource, string(onDisk))
}

func TestPipeline_ProcessFile_Write(t *testing.T) {
	t.Parallel()

	path := writeSource(t, cardSource)
	opts := migrate.DefaultPipelineOptions()
	opts.Write = true
	opts.Backup = fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	result, err := newPipeline().ProcessFile(context.Background(), path, nil, opts)
	require.NoError(t, err)

	assert.True(t, result.Written)
	assert.True(t, result.BackupCreated)
	assert.Equal(t, "migrated (backup created)", result.Summary())

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, migratedSource, string(onDisk))

	backup, err := os.ReadFile(fsutil.BackupPath(path, fsutil.BackupModeSidecar))
	require.NoError(t, err)
	assert.Equal(t, cardSource, string(backup))
}

func TestPipeline_ProcessFile_DryRunDoesNotWrite(t *testing.T) {
	t.Parallel()

	path := writeSource(t, cardSource)
	opts := migrate.DefaultPipelineOptions()
	opts.Write = true
	opts.DryRun = true

	result, err := newPipeline().ProcessFile(context.Background(), path, nil, opts)
	require.NoError(t, err)

	assert.True(t, result.Modified)
	assert.False(t, result.Written)
	require.NotNil(t, result.Diff)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cardSource, string(onDisk))
}

func TestPipeline_ProcessFile_Unchanged(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "const a = 1;\n")
	opts := migrate.DefaultPipelineOptions()
	opts.Write = true

	result, err := newPipeline().ProcessFile(context.Background(), path, nil, opts)
	require.NoError(t, err)

	assert.False(t, result.Modified)
	assert.False(t, result.Written)
	assert.Nil(t, result.Diff)
	assert.Equal(t, "unchanged", result.Summary())
}

func TestPipeline_ProcessFile_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := newPipeline().ProcessFile(context.Background(),
			filepath.Join(t.TempDir(), "missing.tsx"), nil, migrate.DefaultPipelineOptions())
		require.ErrorIs(t, err, migrate.ErrFileNotFound)
		assert.True(t, migrate.IsPipelineError(err))
	})

	t.Run("syntax error", func(t *testing.T) {
		t.Parallel()

		path := writeSource(t, brokenSource)
		_, err := newPipeline().ProcessFile(context.Background(), path, nil, migrate.DefaultPipelineOptions())
		require.ErrorIs(t, err, migrate.ErrParseFailure)
	})

	t.Run("step error leaves file untouched", func(t *testing.T) {
		t.Parallel()

		path := writeSource(t, cardSource)
		pipeline := migrate.NewPipeline(newEngine(newFailStep("fail", errBoom)))
		opts := migrate.DefaultPipelineOptions()
		opts.Write = true

		_, err := pipeline.ProcessFile(context.Background(), path, nil, opts)
		require.ErrorIs(t, err, errBoom)
		assert.True(t, migrate.IsPipelineError(err))

		onDisk, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, cardSource, string(onDisk))
	})
}

func TestPipeline_ProcessContent(t *testing.T) {
	t.Parallel()

	result, err := newPipeline().ProcessContent(context.Background(), "a.tsx",
		[]byte(cardSource), nil, migrate.DefaultPipelineOptions())
	require.NoError(t, err)

	assert.True(t, result.Modified)
	assert.Nil(t, result.OriginalInfo)
	assert.Equal(t, migratedSource, string(result.ModifiedContent))
	assert.Equal(t, "a.tsx", result.Diff.Path)
}

func TestPipelineOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Write = true
	cfg.NoBackups = true

	opts := migrate.PipelineOptionsFromConfig(cfg)
	assert.True(t, opts.Write)
	assert.False(t, opts.DryRun)
	assert.False(t, opts.Backup.Enabled)
	assert.Equal(t, fsutil.BackupModeSidecar, opts.Backup.Mode)
	assert.True(t, opts.ReParse)

	assert.Equal(t, migrate.DefaultPipelineOptions(), migrate.PipelineOptionsFromConfig(nil))
}
