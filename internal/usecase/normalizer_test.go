package usecase

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/naka-gawa/release-stats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newTestNormalizer(loc *time.Location) *Normalizer {
	return NewNormalizer(loc, log.New(io.Discard, "", 0))
}

func TestNormalizer_Normalize(t *testing.T) {
	testCases := []struct {
		name        string
		loc         *time.Location
		repo        string
		raw         domain.RawRelease
		expected    domain.CanonicalRelease
		expectedErr error
	}{
		{
			name: "weekday release in UTC",
			repo: "daangn/stackflow",
			raw:  domain.RawRelease{TagName: "v1.0.0", Name: strPtr("First"), PublishedAt: "2024-03-01T10:00:00Z", HTMLURL: "https://github.com/daangn/stackflow/releases/tag/v1.0.0"},
			expected: domain.CanonicalRelease{
				Repo: "daangn/stackflow", TagName: "v1.0.0", ReleaseName: strPtr("First"),
				PublishedAt: "2024-03-01T10:00:00Z", Published: time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC),
				Year: 2024, Month: 3, Day: 1, Week: 9, DateString: "2024-03-01", IsWeekend: false,
				HTMLURL: "https://github.com/daangn/stackflow/releases/tag/v1.0.0",
			},
		},
		{
			name: "calendar fields follow the configured location",
			loc:  time.FixedZone("KST", 9*60*60),
			repo: "daangn/seed-design",
			raw:  domain.RawRelease{TagName: "v0.1.0", PublishedAt: "2024-03-01T20:00:00Z"},
			expected: domain.CanonicalRelease{
				Repo: "daangn/seed-design", TagName: "v0.1.0",
				PublishedAt: "2024-03-01T20:00:00Z", Published: time.Date(2024, time.March, 1, 20, 0, 0, 0, time.UTC),
				Year: 2024, Month: 3, Day: 2, Week: 9, DateString: "2024-03-02", IsWeekend: true,
			},
		},
		{
			name:        "unparseable timestamp is rejected",
			repo:        "daangn/stackflow",
			raw:         domain.RawRelease{TagName: "draft", PublishedAt: ""},
			expectedErr: domain.ErrInvalidPublishedAt,
		},
		{
			name:        "repository must be owner/name",
			repo:        "stackflow",
			raw:         domain.RawRelease{TagName: "v1", PublishedAt: "2024-03-01T10:00:00Z"},
			expectedErr: domain.ErrInvalidRepository,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			release, err := newTestNormalizer(tc.loc).Normalize(tc.repo, tc.raw)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, release)
		})
	}
}

func TestNormalizer_NormalizeAll(t *testing.T) {
	raws := []domain.RawRelease{
		{TagName: "v3", PublishedAt: "2024-03-04T09:00:00Z"},
		{TagName: "broken", PublishedAt: "yesterday"},
		{TagName: "v1", PublishedAt: "2024-03-01T10:00:00Z"},
	}
	n := newTestNormalizer(nil)

	first, skipped := n.NormalizeAll("daangn/stackflow", raws)
	assert.Equal(t, 1, skipped)
	require.Len(t, first, 2)
	assert.Equal(t, "v3", first[0].TagName)
	assert.Equal(t, "v1", first[1].TagName)

	second, _ := n.NormalizeAll("daangn/stackflow", raws)
	assert.Equal(t, first, second)
}
