package migrate_test

import (
	"errors"

	"github.com/yaklabco/jsxmigrate/pkg/jsx"
	"github.com/yaklabco/jsxmigrate/pkg/migrate"
	"github.com/yaklabco/jsxmigrate/pkg/pathpattern"
)

var testPattern = pathpattern.Literal("@acme/ui")

// renameStep renames every <from> usage to <to>.
type renameStep struct {
	migrate.BaseStep
	from, to string
}

func newRenameStep(id, from, to string) *renameStep {
	return &renameStep{
		BaseStep: migrate.NewBaseStep(id, "rename "+from, "renames "+from, []string{"test"}, testPattern),
		from:     from,
		to:       to,
	}
}

func (s *renameStep) Run(ctx *migrate.StepContext) (*migrate.Change, error) {
	change := &migrate.Change{}
	if !ctx.Index().HasSpecifier(s.from) {
		return change, nil
	}
	for _, usage := range jsx.FindUsages(ctx.File, s.from) {
		if err := jsx.RenameTag(ctx.File, usage, s.to); err != nil {
			return nil, err
		}
		change.Record(ctx.File, migrate.EditTagRenamed, usage, s.from+" -> "+s.to)
	}
	return change, nil
}

// failStep returns err after touching the tree.
type failStep struct {
	migrate.BaseStep
	err error
}

func newFailStep(id string, err error) *failStep {
	return &failStep{
		BaseStep: migrate.NewBaseStep(id, id, "", nil, testPattern),
		err:      err,
	}
}

func (s *failStep) Run(ctx *migrate.StepContext) (*migrate.Change, error) {
	for _, usage := range jsx.FindUsages(ctx.File, "Card") {
		_ = jsx.RenameTag(ctx.File, usage, "Broken")
	}
	return nil, s.err
}

// warnStep warns once and changes nothing.
type warnStep struct {
	migrate.BaseStep
}

func (s *warnStep) Run(_ *migrate.StepContext) (*migrate.Change, error) {
	change := &migrate.Change{}
	change.Warn("Card is also used as a value")
	return change, nil
}

// disabledStep is off unless enabled by configuration.
type disabledStep struct {
	migrate.BaseStep
}

func (s *disabledStep) DefaultEnabled() bool { return false }

var errBoom = errors.New("boom")
