// Package domain contains the core data structures and domain logic for the application.
package domain

// Metric is a single labelled row of the statistics table.
type Metric struct {
	Name  string `json:"metric"`
	Value string `json:"value"`
}

// MetricTable is the ordered metric-name/value table written as the statistics file.
// Row order is significant and is preserved on write and read-back.
type MetricTable []Metric

// Lookup returns the value of the first metric with the given name.
func (t MetricTable) Lookup(name string) (string, bool) {
	for _, m := range t {
		if m.Name == name {
			return m.Value, true
		}
	}
	return "", false
}

// MonthlyReleaseStats is one point of the monthly trend series.
type MonthlyReleaseStats struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// NamedValue is one entry of the repository and weekend series.
type NamedValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// DashboardStats holds the three presentation-ready series served to the dashboard.
type DashboardStats struct {
	MonthlyData []MonthlyReleaseStats `json:"monthlyData"`
	RepoData    []NamedValue          `json:"repoData"`
	WeekendData []NamedValue          `json:"weekendData"`
}
