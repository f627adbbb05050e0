package fix

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareAndApplyEdits(t *testing.T) {
	t.Parallel()

	content := []byte("import {Card} from 'x';\n<Card/>\n")

	tests := []struct {
		name  string
		edits []TextEdit
		want  string
	}{
		{
			name: "no edits",
			want: string(content),
		},
		{
			name: "rename in two places",
			edits: []TextEdit{
				{StartOffset: 25, EndOffset: 29, NewText: "AlphaCard"},
				{StartOffset: 8, EndOffset: 12, NewText: "AlphaCard"},
			},
			want: "import {AlphaCard} from 'x';\n<AlphaCard/>\n",
		},
		{
			name: "insertions at same offset keep order",
			edits: []TextEdit{
				{StartOffset: 24, EndOffset: 24, NewText: "a;\n"},
				{StartOffset: 24, EndOffset: 24, NewText: "b;\n"},
			},
			want: "import {Card} from 'x';\na;\nb;\n<Card/>\n",
		},
		{
			name: "insertion before replacement at same offset",
			edits: []TextEdit{
				{StartOffset: 24, EndOffset: 31, NewText: "<X/>"},
				{StartOffset: 24, EndOffset: 24, NewText: "// c\n"},
			},
			want: "import {Card} from 'x';\n// c\n<X/>\n",
		},
		{
			name:  "deletion",
			edits: []TextEdit{{StartOffset: 0, EndOffset: 24}},
			want:  "<Card/>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Apply(content, tt.edits)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestPrepareEdits_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	edits := []TextEdit{
		{StartOffset: 5, EndOffset: 6, NewText: "b"},
		{StartOffset: 0, EndOffset: 1, NewText: "a"},
	}

	prepared, err := PrepareEdits(edits, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, prepared[0].StartOffset)
	assert.Equal(t, 5, edits[0].StartOffset)
}

func TestPrepareEdits_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		edits     []TextEdit
		wantValid bool
	}{
		{"negative start", []TextEdit{{StartOffset: -1, EndOffset: 0}}, true},
		{"end before start", []TextEdit{{StartOffset: 3, EndOffset: 2}}, true},
		{"past end", []TextEdit{{StartOffset: 0, EndOffset: 11}}, true},
		{"overlap", []TextEdit{{StartOffset: 0, EndOffset: 4}, {StartOffset: 3, EndOffset: 5}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := PrepareEdits(tt.edits, 10)
			require.Error(t, err)

			var validationErr *ValidationError
			var conflictErr *ConflictError
			if tt.wantValid {
				assert.True(t, errors.As(err, &validationErr), "want ValidationError, got %T", err)
			} else {
				assert.True(t, errors.As(err, &conflictErr), "want ConflictError, got %T", err)
			}
		})
	}
}

func TestEditBuilder(t *testing.T) {
	t.Parallel()

	b := NewEditBuilder()
	b.Insert(0, "x")
	b.Delete(1, 2)
	b.ReplaceRange(3, 4, "y")

	require.Equal(t, 3, b.Len())
	assert.True(t, b.Edits[0].IsInsertion())
	assert.True(t, b.Edits[1].IsDeletion())
	assert.False(t, b.Edits[2].IsDeletion())
}

func TestGenerateDiff(t *testing.T) {
	t.Parallel()

	original := []byte("import {Card} from '@shopify/polaris';\n\nexport const A = () => (\n  <Card>hi</Card>\n);\n")
	modified := []byte("import {AlphaCard, AlphaStack} from '@shopify/polaris';\n\nexport const A = () => (\n  <AlphaCard><AlphaStack>hi</AlphaStack></AlphaCard>\n);\n")

	d := GenerateDiff("src/a.tsx", original, modified)
	require.NotNil(t, d)
	assert.True(t, d.HasChanges())
	assert.Equal(t, 2, d.Additions)
	assert.Equal(t, 2, d.Deletions)
	require.Len(t, d.Hunks, 1)

	hunk := d.Hunks[0]
	assert.Equal(t, 1, hunk.OriginalStart)
	assert.Equal(t, 5, hunk.OriginalCount)
	assert.Equal(t, 5, hunk.ModifiedCount)

	out := d.FullString()
	assert.True(t, strings.HasPrefix(out, "diff --git a/src/a.tsx b/src/a.tsx\n--- a/src/a.tsx\n+++ b/src/a.tsx\n@@ -1,5 +1,5 @@\n"))
	assert.Contains(t, out, "-import {Card} from '@shopify/polaris';\n")
	assert.Contains(t, out, "+  <AlphaCard><AlphaStack>hi</AlphaStack></AlphaCard>\n")
	assert.Contains(t, out, "\n \n")
}

func TestGenerateDiff_NoChanges(t *testing.T) {
	t.Parallel()

	content := []byte("const a = 1;\n")
	assert.Nil(t, GenerateDiff("a.js", content, content))
	assert.Nil(t, GenerateDiff("a.js", nil, nil))

	var d *Diff
	assert.Empty(t, d.String())
	assert.False(t, d.HasChanges())
}

func TestGenerateDiff_SeparateHunks(t *testing.T) {
	t.Parallel()

	var orig, mod strings.Builder
	for i := range 20 {
		line := "line\n"
		if i == 1 || i == 18 {
			orig.WriteString("old\n")
			mod.WriteString("new\n")
			continue
		}
		orig.WriteString(line)
		mod.WriteString(line)
	}

	d := GenerateDiff("f.js", []byte(orig.String()), []byte(mod.String()))
	require.NotNil(t, d)
	require.Len(t, d.Hunks, 2)
	assert.Equal(t, 1, d.Hunks[0].OriginalStart)
	assert.Equal(t, 16, d.Hunks[1].OriginalStart)
}
