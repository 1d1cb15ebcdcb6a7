package usecase

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/release-stats/internal/domain"
)

// Metric labels of the statistics table.
const (
	MetricTotalWorkingDay = "Total Working Day Releases"
	MetricAverageGap      = "Average Days Between Working Day Releases"
	NotAvailable          = "N/A"
)

// BuildMetricTable aggregates releases into the ordered statistics table.
//
// Year, month, week and day buckets and the average gap only count working-day
// releases. Per-repository totals count every release, weekends included.
func BuildMetricTable(releases []domain.CanonicalRelease) domain.MetricTable {
	workingDays := make([]domain.CanonicalRelease, 0, len(releases))
	for _, r := range releases {
		if !r.IsWeekend {
			workingDays = append(workingDays, r)
		}
	}

	byYear := make(map[int]int)
	byMonth := make(map[string]int)
	byWeek := make(map[string]int)
	byDay := make(map[string]int)
	for _, r := range workingDays {
		byYear[r.Year]++
		byMonth[r.MonthKey()]++
		byWeek[r.WeekKey()]++
		byDay[r.DateString]++
	}

	byRepo := make(map[string]int)
	for _, r := range releases {
		byRepo[r.Repo]++
	}

	table := domain.MetricTable{{Name: MetricTotalWorkingDay, Value: strconv.Itoa(len(workingDays))}}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)
	for _, year := range years {
		table = append(table, countMetric(fmt.Sprintf("Releases in %d", year), byYear[year]))
	}

	for _, key := range sortedKeys(byMonth) {
		table = append(table, countMetric("Releases in "+key, byMonth[key]))
	}
	for _, key := range sortedKeys(byWeek) {
		table = append(table, countMetric("Releases in "+key, byWeek[key]))
	}
	for _, key := range sortedKeys(byDay) {
		table = append(table, countMetric("Releases on "+key, byDay[key]))
	}
	for _, key := range sortedKeys(byRepo) {
		table = append(table, countMetric("Releases for "+key, byRepo[key]))
	}

	return append(table, domain.Metric{Name: MetricAverageGap, Value: averageGap(workingDays)})
}

// averageGap returns the mean number of whole days between consecutive
// releases, formatted to two decimals, or N/A with fewer than two releases.
func averageGap(releases []domain.CanonicalRelease) string {
	if len(releases) < 2 {
		return NotAvailable
	}
	published := make([]time.Time, len(releases))
	for i, r := range releases {
		published[i] = r.Published
	}
	sort.Slice(published, func(i, j int) bool { return published[i].Before(published[j]) })

	gaps := make([]float64, 0, len(published)-1)
	for i := 1; i < len(published); i++ {
		gaps = append(gaps, domain.DaysBetween(published[i-1], published[i]))
	}
	mean, err := stats.Mean(gaps)
	if err != nil {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f", mean)
}

func countMetric(name string, count int) domain.Metric {
	return domain.Metric{Name: name, Value: strconv.Itoa(count)}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
