package usecase

import (
	"sort"

	"github.com/naka-gawa/release-stats/internal/domain"
)

// ProjectDashboard builds the dashboard series from every release, weekends included.
// Repositories with equal counts keep the order in which they first appear.
func ProjectDashboard(releases []domain.CanonicalRelease) domain.DashboardStats {
	byMonth := make(map[string]int)
	byRepo := make(map[string]int)
	var repoOrder []string
	weekend, weekday := 0, 0

	for _, r := range releases {
		byMonth[r.MonthKey()]++
		if _, ok := byRepo[r.Repo]; !ok {
			repoOrder = append(repoOrder, r.Repo)
		}
		byRepo[r.Repo]++
		if r.IsWeekend {
			weekend++
		} else {
			weekday++
		}
	}

	monthly := make([]domain.MonthlyReleaseStats, 0, len(byMonth))
	for _, key := range sortedKeys(byMonth) {
		monthly = append(monthly, domain.MonthlyReleaseStats{Date: key, Count: byMonth[key]})
	}

	repos := make([]domain.NamedValue, 0, len(repoOrder))
	for _, repo := range repoOrder {
		repos = append(repos, domain.NamedValue{Name: repo, Value: byRepo[repo]})
	}
	sort.SliceStable(repos, func(i, j int) bool { return repos[i].Value > repos[j].Value })

	return domain.DashboardStats{
		MonthlyData: monthly,
		RepoData:    repos,
		WeekendData: []domain.NamedValue{
			{Name: "Weekend", Value: weekend},
			{Name: "Weekday", Value: weekday},
		},
	}
}
