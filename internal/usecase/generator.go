package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/naka-gawa/release-stats/internal/domain"
	"github.com/naka-gawa/release-stats/internal/gateway"
)

// ReportWriter persists the results of a batch run.
type ReportWriter interface {
	Write(ctx context.Context, table domain.MetricTable, releases []domain.CanonicalRelease) error
}

// RepoSummary reports the fetch outcome of a single repository.
type RepoSummary struct {
	Repo    string `json:"repo"`
	Fetched int    `json:"fetched"`
	Error   string `json:"error,omitempty"`
}

// Summary reports the outcome of a batch run.
type Summary struct {
	Repos              []RepoSummary `json:"repos"`
	TotalReleases      int           `json:"total_releases"`
	WorkingDayReleases int           `json:"working_day_releases"`
	SkippedReleases    int           `json:"skipped_releases"`
	AverageGapDays     string        `json:"average_gap_days"`
}

// Generator is the use case for the release statistics batch job.
// It orchestrates fetching, normalizing, aggregating and writing.
type Generator struct {
	fetcher    gateway.ReleaseFetcher
	normalizer *Normalizer
	writer     ReportWriter
	logger     *log.Logger
}

// NewGenerator creates a new Generator instance.
func NewGenerator(fetcher gateway.ReleaseFetcher, normalizer *Normalizer, writer ReportWriter, logger *log.Logger) *Generator {
	return &Generator{
		fetcher:    fetcher,
		normalizer: normalizer,
		writer:     writer,
		logger:     logger,
	}
}

// Generate fetches the releases of every repository one after another.
// A repository whose fetch fails is logged and left out; the run continues
// with the next one. Only a failure to write the reports aborts the run.
func (g *Generator) Generate(ctx context.Context, repos []string) (*Summary, error) {
	g.logger.Println("[1/3] Fetching release data...")

	summary := &Summary{Repos: make([]RepoSummary, 0, len(repos))}
	var releases []domain.CanonicalRelease
	for _, repo := range repos {
		raws, err := g.fetcher.FetchReleases(ctx, repo)
		if err != nil {
			g.logFetchError(repo, err)
			summary.Repos = append(summary.Repos, RepoSummary{Repo: repo, Error: err.Error()})
			continue
		}
		g.logger.Printf("  Fetched %d releases for %s\n", len(raws), repo)

		normalized, skipped := g.normalizer.NormalizeAll(repo, raws)
		releases = append(releases, normalized...)
		summary.SkippedReleases += skipped
		summary.Repos = append(summary.Repos, RepoSummary{Repo: repo, Fetched: len(raws)})
	}
	if releases == nil {
		releases = []domain.CanonicalRelease{}
	}

	g.logger.Println("[2/3] Generating statistics...")
	table := BuildMetricTable(releases)

	g.logger.Println("[3/3] Writing reports...")
	if err := g.writer.Write(ctx, table, releases); err != nil {
		return nil, fmt.Errorf("failed to write reports: %w", err)
	}
	g.logger.Println("Completed generating release statistics.")

	summary.TotalReleases = len(releases)
	for _, r := range releases {
		if !r.IsWeekend {
			summary.WorkingDayReleases++
		}
	}
	summary.AverageGapDays, _ = table.Lookup(MetricAverageGap)
	return summary, nil
}

func (g *Generator) logFetchError(repo string, err error) {
	g.logger.Printf("Error fetching releases for %s: %v\n", repo, err)
	var fe *gateway.FetchError
	if errors.As(err, &fe) {
		if fe.StatusCode != 0 {
			g.logger.Printf("  Status: %d\n", fe.StatusCode)
		}
		if fe.Body != "" {
			g.logger.Printf("  Data: %s\n", fe.Body)
		}
	}
}
