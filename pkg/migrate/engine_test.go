package migrate_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jsxmigrate/internal/logging"
	"github.com/yaklabco/jsxmigrate/pkg/config"
	"github.com/yaklabco/jsxmigrate/pkg/migrate"
	"github.com/yaklabco/jsxmigrate/pkg/parser/treesitter"
)

const cardSource = "import {Card, Stack} from '@acme/ui';\n" +
	"export const A = () => <Card><Stack>x</Stack></Card>;\n"

const brokenSource = "import {Card from '@acme/ui';\nconst = <Card\n"

func newEngine(steps ...migrate.Step) *migrate.Engine {
	registry := migrate.NewRegistry()
	for _, s := range steps {
		registry.Register(s)
	}
	return migrate.NewEngine(treesitter.New(), registry)
}

func TestEngine_StepsShareOneTree(t *testing.T) {
	t.Parallel()

	engine := newEngine(
		newRenameStep("a-card", "Card", "AlphaCard"),
		newRenameStep("b-stack", "Stack", "LegacyStack"),
	)

	result, err := engine.MigrateFile(context.Background(), "a.tsx", []byte(cardSource), config.NewConfig())
	require.NoError(t, err)

	assert.True(t, result.Modified)
	assert.Equal(t,
		"import {Card, Stack} from '@acme/ui';\n"+
			"export const A = () => <AlphaCard><LegacyStack>x</LegacyStack></AlphaCard>;\n",
		string(result.Output))
	require.Len(t, result.Changes, 2)
	assert.Equal(t, "a-card", result.Changes[0].StepID)
	assert.Equal(t, "b-stack", result.Changes[1].StepID)
	assert.Equal(t, 2, result.EditCount())
	assert.Equal(t, 2, result.Count(migrate.EditTagRenamed))
	assert.NotEmpty(t, result.Edits)
}

func TestEngine_LogsThroughContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&buf, "warn"))

	engine := newEngine(&warnStep{BaseStep: migrate.NewBaseStep("warn-card", "warn", "", nil, testPattern)})
	require.Nil(t, engine.Logger)

	result, err := engine.MigrateFile(ctx, "a.tsx", []byte(cardSource), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Card is also used as a value"}, result.Warnings())

	out := buf.String()
	assert.Contains(t, out, "Card is also used as a value")
	assert.Contains(t, out, "step=warn-card")
	assert.Contains(t, out, "path=a.tsx")
}

func TestEngine_ExplicitLoggerWins(t *testing.T) {
	t.Parallel()

	var ctxBuf, engineBuf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&ctxBuf, "warn"))

	engine := newEngine(&warnStep{BaseStep: migrate.NewBaseStep("warn-card", "warn", "", nil, testPattern)})
	engine.Logger = logging.NewWithWriter(&engineBuf, "warn")

	_, err := engine.MigrateFile(ctx, "a.tsx", []byte(cardSource), nil)
	require.NoError(t, err)

	assert.Empty(t, ctxBuf.String())
	assert.Contains(t, engineBuf.String(), "step=warn-card")
}

func TestEngine_NoChanges(t *testing.T) {
	t.Parallel()

	engine := newEngine(newRenameStep("a", "Missing", "Other"))
	content := []byte(cardSource)

	result, err := engine.MigrateFile(context.Background(), "a.tsx", content, nil)
	require.NoError(t, err)

	assert.False(t, result.Modified)
	assert.Empty(t, result.Changes)
	assert.Empty(t, result.Edits)
	assert.Equal(t, content, result.Output)
}

func TestEngine_StepErrorDiscardsFile(t *testing.T) {
	t.Parallel()

	engine := newEngine(
		newRenameStep("a-card", "Card", "AlphaCard"),
		newFailStep("b-fail", errBoom),
	)

	result, err := engine.MigrateFile(context.Background(), "a.tsx", []byte(cardSource), nil)
	require.Error(t, err)
	assert.Nil(t, result)

	var stepErr *migrate.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "b-fail", stepErr.StepID)
	assert.Equal(t, "a.tsx", stepErr.Path)
	require.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "a.tsx: step b-fail")
}

func TestEngine_SoftErrorsAreSkipped(t *testing.T) {
	t.Parallel()

	engine := newEngine(
		newFailStep("a-soft", migrate.ErrNotFound),
		newRenameStep("b-card", "Card", "AlphaCard"),
	)

	result, err := engine.MigrateFile(context.Background(), "a.tsx", []byte(cardSource), nil)
	require.NoError(t, err)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, "b-card", result.Changes[0].StepID)
}

func TestEngine_ParseError(t *testing.T) {
	t.Parallel()

	engine := newEngine(newRenameStep("a", "Card", "AlphaCard"))

	_, err := engine.MigrateFile(context.Background(), "a.tsx", []byte(brokenSource), nil)
	require.ErrorIs(t, err, treesitter.ErrSyntax)
}

func TestEngine_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := newEngine(newRenameStep("a", "Card", "AlphaCard"))
	_, err := engine.MigrateFile(ctx, "a.tsx", []byte(cardSource), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEngine_UnknownStepInConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.OnlySteps = []string{"nope"}

	_, err := newEngine().MigrateFile(context.Background(), "a.tsx", []byte(cardSource), cfg)
	require.ErrorIs(t, err, migrate.ErrUnknownStep)
}

func TestIsSoft(t *testing.T) {
	t.Parallel()

	assert.True(t, migrate.IsSoft(migrate.ErrNotFound))
	assert.True(t, migrate.IsSoft(errors.Join(errBoom, migrate.ErrAmbiguousBinding)))
	assert.False(t, migrate.IsSoft(migrate.ErrStructuralMismatch))
	assert.False(t, migrate.IsSoft(nil))
}

func TestChange(t *testing.T) {
	t.Parallel()

	var nilChange *migrate.Change
	assert.True(t, nilChange.Empty())
	assert.Zero(t, nilChange.Count(migrate.EditTagRenamed))

	change := &migrate.Change{}
	change.Warn("careful")
	assert.True(t, change.Empty())
	assert.Equal(t, []string{"careful"}, change.Warnings)
}

func TestStepContext_Options(t *testing.T) {
	t.Parallel()

	stepCfg := &config.StepConfig{Options: map[string]any{"pattern": "x", "strict": true, "n": 3}}
	sc := migrate.NewStepContext(context.Background(), nil, testPattern, stepCfg, nil)

	assert.NotNil(t, sc.Logger)
	assert.Equal(t, "x", sc.OptionString("pattern", "d"))
	assert.Equal(t, "d", sc.OptionString("n", "d"))
	assert.True(t, sc.OptionBool("strict", false))
	assert.Equal(t, 3, sc.Option("n", 0))
	assert.Equal(t, "fallback", sc.Option("missing", "fallback"))
	assert.False(t, sc.Cancelled())

	empty := migrate.NewStepContext(context.Background(), nil, testPattern, nil, nil)
	assert.Equal(t, "d", empty.OptionString("pattern", "d"))
}
