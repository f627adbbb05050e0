package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/jsxmigrate/internal/ui/pretty"
	"github.com/yaklabco/jsxmigrate/pkg/config"
	"github.com/yaklabco/jsxmigrate/pkg/migrate"
)

func TestFormatFileStatus(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "src/Page.tsx  migrated  (4 edits)\n",
		styles.FormatFileStatus("src/Page.tsx", "migrated", 4, ""))
	assert.Equal(t, "a.tsx  pending  (1 edit)\n",
		styles.FormatFileStatus("a.tsx", "pending", 1, ""))
	assert.Equal(t, "b.min.js  skipped: generated file\n",
		styles.FormatFileStatus("b.min.js", "skipped", 0, "generated file"))
}

func TestFormatEdit(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	edit := migrate.Edit{Kind: migrate.EditTagRenamed, Line: 12, Detail: "Card -> AlphaCard"}

	tests := []struct {
		name   string
		format config.StepFormat
		want   string
	}{
		{
			name:   "id",
			format: config.StepFormatID,
			want:   "    12  " + string(migrate.EditTagRenamed) + "  Card -> AlphaCard  (replace-card-component)\n",
		},
		{
			name:   "name",
			format: config.StepFormatName,
			want:   "    12  " + string(migrate.EditTagRenamed) + "  Card -> AlphaCard  (Replace Card with AlphaCard)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := styles.FormatEdit(edit, "replace-card-component", "Replace Card with AlphaCard", tt.format)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatStatus_NoColor(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	for _, status := range []string{"error", "skipped", "migrated", "pending", "unchanged"} {
		assert.Equal(t, status, styles.FormatStatus(status))
	}
}
