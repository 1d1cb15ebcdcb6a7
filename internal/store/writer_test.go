package store

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/naka-gawa/release-stats/internal/domain"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileReportWriter_Write(t *testing.T) {
	dir := t.TempDir()
	statsPath := filepath.Join(dir, "release_stats.csv")
	rawPath := filepath.Join(dir, "data", "release_raw_data.csv")
	parquetPath := filepath.Join(dir, "export", "releases.parquet")
	table := domain.MetricTable{{Name: "Total Working Day Releases", Value: "1"}}

	writer := NewFileReportWriter(statsPath, rawPath, parquetPath, log.New(io.Discard, "", 0))
	require.NoError(t, writer.Write(context.Background(), table, sampleReleases()))

	stats, err := ReadStats(statsPath)
	require.NoError(t, err)
	assert.Equal(t, table, stats)

	releases, _, err := ReadRaw(rawPath)
	require.NoError(t, err)
	assert.Len(t, releases, 2)

	rows, err := parquet.ReadFile[ReleaseRow](parquetPath)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "daangn/stackflow", rows[0].Repo)
	assert.Equal(t, "First, stable", *rows[0].ReleaseName)
	assert.Nil(t, rows[1].ReleaseName)
	assert.True(t, rows[1].IsWeekend)
}

func TestFileReportWriter_WithoutParquet(t *testing.T) {
	dir := t.TempDir()
	writer := NewFileReportWriter(filepath.Join(dir, "s.csv"), filepath.Join(dir, "r.csv"), "", log.New(io.Discard, "", 0))
	require.NoError(t, writer.Write(context.Background(), domain.MetricTable{}, nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestFileReportWriter_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	writer := NewFileReportWriter(filepath.Join(dir, "s.csv"), filepath.Join(dir, "r.csv"), "", log.New(io.Discard, "", 0))
	assert.ErrorIs(t, writer.Write(ctx, domain.MetricTable{}, nil), context.Canceled)
}
