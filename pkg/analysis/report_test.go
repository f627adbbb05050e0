package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		totals      Totals
		wantChanges bool
		wantErrors  bool
	}{
		{name: "empty", totals: Totals{}},
		{name: "changed", totals: Totals{FilesChanged: 2}, wantChanges: true},
		{name: "errored", totals: Totals{FilesErrored: 1}, wantErrors: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantChanges, tt.totals.HasChanges())
			assert.Equal(t, tt.wantErrors, tt.totals.HasErrors())
		})
	}
}

func TestSortField_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, SortByCount.IsValid())
	assert.True(t, SortByAlpha.IsValid())
	assert.False(t, SortField("severity").IsValid())
}
