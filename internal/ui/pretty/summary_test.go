package pretty_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/jsxmigrate/internal/ui/pretty"
	"github.com/yaklabco/jsxmigrate/pkg/runner"
)

func TestFormatSummary_Pending(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	stats := runner.Stats{
		FilesProcessed: 1200,
		FilesChanged:   3,
		FilesSkipped:   1,
		EditsTotal:     14,
		Warnings:       2,
		Duration:       42 * time.Millisecond,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files checked:     1,200")
	assert.Contains(t, result, "Files changed:     3")
	assert.Contains(t, result, "Files skipped:     1")
	assert.Contains(t, result, "Total edits:       14")
	assert.Contains(t, result, "Warnings:          2")
	assert.Contains(t, result, "Elapsed:           42ms")
	assert.Contains(t, result, "Changes pending")
	assert.NotContains(t, result, "Files written:")
}

func TestFormatSummary_Outcomes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{"nothing", runner.Stats{FilesProcessed: 5}, "Nothing to migrate"},
		{"written", runner.Stats{FilesChanged: 1, FilesWritten: 1}, "Migration applied"},
		{"failed", runner.Stats{FilesChanged: 1, FilesErrored: 1}, "Migration finished with failures"},
	}

	styles := pretty.NewStyles(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Contains(t, styles.FormatSummary(tt.stats), tt.want)
		})
	}
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "nothing to migrate",
			stats: runner.Stats{FilesProcessed: 4, Duration: 1500 * time.Microsecond},
			want:  "Nothing to migrate, 4 files checked in 2ms\n",
		},
		{
			name:  "single file",
			stats: runner.Stats{FilesProcessed: 1, FilesChanged: 1, EditsTotal: 1},
			want:  "1 edit in 1 file, 1 file checked in 0s\n",
		},
		{
			name: "written with problems",
			stats: runner.Stats{
				FilesProcessed: 10,
				FilesChanged:   2,
				FilesWritten:   2,
				FilesSkipped:   1,
				FilesErrored:   1,
				EditsTotal:     1500,
				Warnings:       1,
				Duration:       time.Second,
			},
			want: "1,500 edits in 2 files (2 written), 1 skipped, 1 failed, 1 warning, 10 files checked in 1s\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}
