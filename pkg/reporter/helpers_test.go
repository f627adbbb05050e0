package reporter_test

import (
	"errors"
	"time"

	"github.com/yaklabco/jsxmigrate/pkg/fix"
	"github.com/yaklabco/jsxmigrate/pkg/fsutil"
	"github.com/yaklabco/jsxmigrate/pkg/migrate"
	"github.com/yaklabco/jsxmigrate/pkg/runner"
)

const (
	original = "import {Card} from '@shopify/polaris';\nconst a = <Card>x</Card>;\n"
	migrated = "import {AlphaCard, AlphaStack} from '@shopify/polaris';\n" +
		"const a = <AlphaCard><AlphaStack>x</AlphaStack></AlphaCard>;\n"
)

func cardChange() *migrate.Change {
	return &migrate.Change{
		StepID: "replace-card-component",
		Edits: []migrate.Edit{
			{Kind: migrate.EditImportRenamed, Line: 1, Detail: "Card -> AlphaCard"},
			{Kind: migrate.EditImportAdded, Line: 1, Detail: "AlphaStack"},
			{Kind: migrate.EditTagRenamed, Line: 2, Detail: "Card -> AlphaCard"},
			{Kind: migrate.EditChildrenWrapped, Line: 2, Detail: "AlphaStack"},
		},
	}
}

// sampleResult has one pending file, one unchanged file, one skipped file,
// and one failed file.
func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "/repo/src/Card.tsx",
				Result: &migrate.PipelineResult{
					FileResult: &migrate.FileResult{
						Changes: []*migrate.Change{cardChange()},
						Output:  []byte(migrated),
					},
					Path:            "/repo/src/Card.tsx",
					OriginalInfo:    &fsutil.FileInfo{Size: int64(len(original))},
					Modified:        true,
					ModifiedContent: []byte(migrated),
					Diff:            fix.GenerateDiff("/repo/src/Card.tsx", []byte(original), []byte(migrated)),
				},
			},
			{
				Path:   "/repo/src/Plain.tsx",
				Result: &migrate.PipelineResult{FileResult: &migrate.FileResult{}},
			},
			{
				Path:   "/repo/dist/app.js",
				Result: &migrate.PipelineResult{Skipped: true, SkipReason: "generated file"},
			},
			{
				Path:  "/repo/src/Broken.tsx",
				Error: errors.New("parse failure: syntax error at 2:7"),
			},
		},
		Stats: runner.Stats{
			FilesDiscovered: 4,
			FilesProcessed:  3,
			FilesChanged:    1,
			FilesSkipped:    1,
			FilesErrored:    1,
			EditsTotal:      4,
			Duration:        12 * time.Millisecond,
		},
	}
}
