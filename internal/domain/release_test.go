package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitRepo(t *testing.T) {
	testCases := []struct {
		repo        string
		owner, name string
		expectError bool
	}{
		{repo: "daangn/stackflow", owner: "daangn", name: "stackflow"},
		{repo: "stackflow", expectError: true},
		{repo: "/stackflow", expectError: true},
		{repo: "daangn/", expectError: true},
		{repo: "a/b/c", expectError: true},
		{repo: "", expectError: true},
	}
	for _, tc := range testCases {
		t.Run(tc.repo, func(t *testing.T) {
			owner, name, err := SplitRepo(tc.repo)
			if tc.expectError {
				assert.ErrorIs(t, err, ErrInvalidRepository)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.owner, owner)
			assert.Equal(t, tc.name, name)
		})
	}
}

func TestCanonicalRelease_Keys(t *testing.T) {
	r := CanonicalRelease{Year: 2024, Month: 3, Week: 9}
	assert.Equal(t, "2024-03", r.MonthKey())
	assert.Equal(t, "2024-W09", r.WeekKey())
}

func TestMetricTable_Lookup(t *testing.T) {
	table := MetricTable{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}
	v, ok := table.Lookup("b")
	assert.True(t, ok)
	assert.Equal(t, "2", v)
	_, ok = table.Lookup("c")
	assert.False(t, ok)
}
