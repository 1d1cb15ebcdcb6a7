// Package usecase contains the business logic of the application.
package usecase

import (
	"log"
	"time"

	"github.com/naka-gawa/release-stats/internal/domain"
)

// Normalizer converts raw GitHub releases into canonical releases.
type Normalizer struct {
	loc    *time.Location
	logger *log.Logger
}

// NewNormalizer creates a Normalizer deriving calendar fields in loc (UTC when nil).
func NewNormalizer(loc *time.Location, logger *log.Logger) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{loc: loc, logger: logger}
}

// Normalize derives the calendar fields of a single release owned by repo.
// Releases whose timestamp does not parse are rejected rather than carried
// forward with invalid calendar fields.
func (n *Normalizer) Normalize(repo string, raw domain.RawRelease) (domain.CanonicalRelease, error) {
	if _, _, err := domain.SplitRepo(repo); err != nil {
		return domain.CanonicalRelease{}, err
	}
	published, err := domain.ParseTimestamp(raw.PublishedAt)
	if err != nil {
		return domain.CanonicalRelease{}, err
	}
	local := published.In(n.loc)
	return domain.CanonicalRelease{
		Repo:        repo,
		TagName:     raw.TagName,
		ReleaseName: raw.Name,
		PublishedAt: raw.PublishedAt,
		Published:   published,
		Year:        local.Year(),
		Month:       int(local.Month()),
		Day:         local.Day(),
		Week:        domain.WeekNumber(local),
		DateString:  domain.FormatDate(local),
		IsWeekend:   domain.IsWeekend(local),
		HTMLURL:     raw.HTMLURL,
	}, nil
}

// NormalizeAll normalizes raws in order, skipping and logging rejected releases.
// It returns the canonical releases and the number of skipped ones.
func (n *Normalizer) NormalizeAll(repo string, raws []domain.RawRelease) ([]domain.CanonicalRelease, int) {
	releases := make([]domain.CanonicalRelease, 0, len(raws))
	skipped := 0
	for _, raw := range raws {
		release, err := n.Normalize(repo, raw)
		if err != nil {
			n.logger.Printf("  Skipping release %q of %s: %v\n", raw.TagName, repo, err)
			skipped++
			continue
		}
		releases = append(releases, release)
	}
	return releases, skipped
}
