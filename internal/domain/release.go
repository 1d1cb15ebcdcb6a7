package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidRepository is returned when a repository is not in owner/name form.
	ErrInvalidRepository = errors.New("repository must be in owner/name form")
	// ErrInvalidPublishedAt is returned when a release timestamp cannot be parsed.
	ErrInvalidPublishedAt = errors.New("invalid published_at timestamp")
)

// RawRelease is a release record as returned by GitHub.
type RawRelease struct {
	TagName     string  `json:"tag_name"`
	Name        *string `json:"name"`
	PublishedAt string  `json:"published_at"`
	HTMLURL     string  `json:"html_url"`
}

// CanonicalRelease is a release after its calendar fields have been derived.
// Every derived field is a pure function of PublishedAt and the location used
// during normalization.
type CanonicalRelease struct {
	Repo        string    `json:"repo"`
	TagName     string    `json:"tag_name"`
	ReleaseName *string   `json:"release_name"`
	PublishedAt string    `json:"published_at"`
	Published   time.Time `json:"-"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	Day         int       `json:"day"`
	Week        int       `json:"week"`
	DateString  string    `json:"date_string"`
	IsWeekend   bool      `json:"is_weekend"`
	HTMLURL     string    `json:"html_url"`
}

// MonthKey returns the YYYY-MM bucket of the release.
func (r CanonicalRelease) MonthKey() string {
	return fmt.Sprintf("%d-%02d", r.Year, r.Month)
}

// WeekKey returns the YYYY-Wnn bucket of the release.
func (r CanonicalRelease) WeekKey() string {
	return fmt.Sprintf("%d-W%02d", r.Year, r.Week)
}

// SplitRepo splits an owner/name repository identifier.
func SplitRepo(repo string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepository, repo)
	}
	return owner, name, nil
}

// ParseTimestamp parses an ISO-8601 timestamp as GitHub emits it.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPublishedAt, s)
	}
	return t, nil
}
