package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/naka-gawa/release-stats/internal/domain"
	"github.com/naka-gawa/release-stats/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rawCSV = `Repo,Tag Name,Release Name,Published At,Year,Month,Day,Week,Date,Is Weekend,URL
daangn/stackflow,v1.0.0,,2024-03-01T10:00:00Z,2024,3,1,9,2024-03-01,FALSE,https://github.com/daangn/stackflow/releases/tag/v1.0.0
daangn/stackflow,v1.0.1,,2024-03-02T10:00:00Z,2024,3,2,9,2024-03-02,TRUE,https://github.com/daangn/stackflow/releases/tag/v1.0.1
daangn/seed-design,v0.1.0,Seed,2024-02-05T10:00:00Z,2024,2,5,6,2024-02-05,FALSE,https://github.com/daangn/seed-design/releases/tag/v0.1.0
daangn/seed-design,broken,,2024-02-06T10:00:00Z,NaN,2,6,6,2024-02-06,FALSE,https://github.com/daangn/seed-design/releases/tag/broken
`

func newTestServer(t *testing.T, rawPath string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(rawPath, log.New(io.Discard, "", 0)).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestReleaseStats(t *testing.T) {
	rawPath := filepath.Join(t.TempDir(), "release_raw_data.csv")
	require.NoError(t, os.WriteFile(rawPath, []byte(rawCSV), 0o644))
	srv := newTestServer(t, rawPath)

	resp, err := http.Get(srv.URL + "/api/dashboard/release-stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var stats domain.DashboardStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, domain.DashboardStats{
		MonthlyData: []domain.MonthlyReleaseStats{
			{Date: "2024-02", Count: 1},
			{Date: "2024-03", Count: 2},
		},
		RepoData: []domain.NamedValue{
			{Name: "daangn/stackflow", Value: 2},
			{Name: "daangn/seed-design", Value: 1},
		},
		WeekendData: []domain.NamedValue{
			{Name: "Weekend", Value: 1},
			{Name: "Weekday", Value: 2},
		},
	}, stats)
}

func TestReleaseStats_ReadsFileWrittenByStore(t *testing.T) {
	rawPath := filepath.Join(t.TempDir(), "data", "release_raw_data.csv")
	require.NoError(t, store.WriteRaw(rawPath, []domain.CanonicalRelease{
		{Repo: "daangn/stackflow", TagName: "v1", PublishedAt: "2024-03-01T10:00:00Z", Year: 2024, Month: 3, Day: 1, Week: 9, DateString: "2024-03-01"},
	}))
	srv := newTestServer(t, rawPath)

	resp, err := http.Get(srv.URL + "/api/dashboard/release-stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"monthlyData": [{"date":"2024-03","count":1}],
		"repoData": [{"name":"daangn/stackflow","value":1}],
		"weekendData": [{"name":"Weekend","value":0},{"name":"Weekday","value":1}]
	}`, string(body))
}

func TestReleaseStats_MissingFile(t *testing.T) {
	srv := newTestServer(t, filepath.Join(t.TempDir(), "missing.csv"))

	resp, err := http.Get(srv.URL + "/api/dashboard/release-stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Failed to fetch dashboard data"}`, string(body))
}

func TestReleaseStats_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, filepath.Join(t.TempDir(), "missing.csv"))

	resp, err := http.Post(srv.URL+"/api/dashboard/release-stats", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHealthzAndDashboardPage(t *testing.T) {
	srv := newTestServer(t, filepath.Join(t.TempDir(), "missing.csv"))

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))

	resp, err = http.Get(srv.URL + "/")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), "/api/dashboard/release-stats"))
}
