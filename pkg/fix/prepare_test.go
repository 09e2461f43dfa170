package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bracelint/pkg/fix"
)

func TestPrepare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		edits      []fix.TextEdit
		accepted   []fix.TextEdit
		skipped    []fix.TextEdit
		merged     int
		duplicates int
	}{
		{
			name: "empty",
		},
		{
			name: "sorted by offset",
			edits: []fix.TextEdit{
				{StartOffset: 6, EndOffset: 6, NewText: " ", RuleID: "BL001"},
				{StartOffset: 5, EndOffset: 5, NewText: " ", RuleID: "BL001"},
			},
			accepted: []fix.TextEdit{
				{StartOffset: 5, EndOffset: 5, NewText: " ", RuleID: "BL001"},
				{StartOffset: 6, EndOffset: 6, NewText: " ", RuleID: "BL001"},
			},
		},
		{
			name: "identical insertions from two rules",
			edits: []fix.TextEdit{
				{StartOffset: 4, EndOffset: 4, NewText: " ", RuleID: "BL001"},
				{StartOffset: 4, EndOffset: 4, NewText: " ", RuleID: "BL002"},
			},
			accepted:   []fix.TextEdit{{StartOffset: 4, EndOffset: 4, NewText: " ", RuleID: "BL001"}},
			duplicates: 1,
		},
		{
			name: "different insertions at one offset conflict",
			edits: []fix.TextEdit{
				{StartOffset: 4, EndOffset: 4, NewText: " ", RuleID: "BL001"},
				{StartOffset: 4, EndOffset: 4, NewText: "\n", RuleID: "BL020"},
			},
			accepted: []fix.TextEdit{{StartOffset: 4, EndOffset: 4, NewText: " ", RuleID: "BL001"}},
			skipped:  []fix.TextEdit{{StartOffset: 4, EndOffset: 4, NewText: "\n", RuleID: "BL020"}},
		},
		{
			name: "overlapping deletions merge",
			edits: []fix.TextEdit{
				{StartOffset: 10, EndOffset: 14, RuleID: "BL060"},
				{StartOffset: 12, EndOffset: 16, RuleID: "BL031"},
			},
			accepted: []fix.TextEdit{{StartOffset: 10, EndOffset: 16, RuleID: "BL060"}},
			merged:   1,
		},
		{
			name: "replacement overlapping a deletion is skipped",
			edits: []fix.TextEdit{
				{StartOffset: 2, EndOffset: 6, RuleID: "BL060"},
				{StartOffset: 4, EndOffset: 8, NewText: " ", RuleID: "BL002"},
			},
			accepted: []fix.TextEdit{{StartOffset: 2, EndOffset: 6, RuleID: "BL060"}},
			skipped:  []fix.TextEdit{{StartOffset: 4, EndOffset: 8, NewText: " ", RuleID: "BL002"}},
		},
		{
			name: "insertion before a replacement at the same offset",
			edits: []fix.TextEdit{
				{StartOffset: 3, EndOffset: 5, NewText: " ", RuleID: "BL002"},
				{StartOffset: 3, EndOffset: 3, NewText: " ", RuleID: "BL001"},
			},
			accepted: []fix.TextEdit{
				{StartOffset: 3, EndOffset: 3, NewText: " ", RuleID: "BL001"},
				{StartOffset: 3, EndOffset: 5, NewText: " ", RuleID: "BL002"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			plan, err := fix.Prepare(tt.edits, 100)
			require.NoError(t, err)

			assert.Equal(t, tt.accepted, plan.Accepted)
			assert.Equal(t, tt.skipped, plan.Skipped)
			assert.Equal(t, tt.merged, plan.Merged)
			assert.Equal(t, tt.duplicates, plan.Duplicates)
			assert.Equal(t, len(tt.skipped) > 0, plan.HasConflicts())
		})
	}
}

func TestPrepare_DoesNotReorderInput(t *testing.T) {
	t.Parallel()

	edits := []fix.TextEdit{
		{StartOffset: 8, EndOffset: 8, NewText: " "},
		{StartOffset: 1, EndOffset: 1, NewText: " "},
	}
	_, err := fix.Prepare(edits, 10)
	require.NoError(t, err)

	assert.Equal(t, 8, edits[0].StartOffset)
}

func TestValidateEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		edit    fix.TextEdit
		wantErr string
	}{
		{"in range", fix.TextEdit{StartOffset: 0, EndOffset: 10}, ""},
		{"negative start", fix.TextEdit{StartOffset: -1, EndOffset: 2, RuleID: "BL001"}, "BL001: start offset is negative"},
		{"reversed", fix.TextEdit{StartOffset: 5, EndOffset: 2}, "unknown rule: end offset is before start offset"},
		{"past end", fix.TextEdit{StartOffset: 5, EndOffset: 11}, "end offset 11 exceeds content length 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fix.ValidateEdits([]fix.TextEdit{tt.edit}, 10)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			var rangeErr *fix.RangeError
			require.ErrorAs(t, err, &rangeErr)
			assert.Equal(t, tt.edit, rangeErr.Edit)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := fix.Prepare([]fix.TextEdit{{StartOffset: 3, EndOffset: 20}}, 10)
	assert.Error(t, err)
}
