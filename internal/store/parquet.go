package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/naka-gawa/release-stats/internal/domain"
	"github.com/parquet-go/parquet-go"
)

// ReleaseRow is the Parquet schema of a canonical release.
type ReleaseRow struct {
	Repo        string  `parquet:"repo,snappy"`
	TagName     string  `parquet:"tag_name,snappy"`
	ReleaseName *string `parquet:"release_name,optional,snappy"`
	PublishedAt string  `parquet:"published_at,snappy"`
	Year        int32   `parquet:"year,snappy"`
	Month       int32   `parquet:"month,snappy"`
	Day         int32   `parquet:"day,snappy"`
	Week        int32   `parquet:"week,snappy"`
	Date        string  `parquet:"date,snappy"`
	IsWeekend   bool    `parquet:"is_weekend,snappy"`
	URL         string  `parquet:"url,snappy"`
}

// WriteParquet writes the canonical releases to a Parquet file at path.
func WriteParquet(path string, releases []domain.CanonicalRelease) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	rows := make([]ReleaseRow, len(releases))
	for i, r := range releases {
		rows[i] = ReleaseRow{
			Repo:        r.Repo,
			TagName:     r.TagName,
			ReleaseName: r.ReleaseName,
			PublishedAt: r.PublishedAt,
			Year:        int32(r.Year),
			Month:       int32(r.Month),
			Day:         int32(r.Day),
			Week:        int32(r.Week),
			Date:        r.DateString,
			IsWeekend:   r.IsWeekend,
			URL:         r.HTMLURL,
		}
	}

	writer := parquet.NewGenericWriter[ReleaseRow](file)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	// Close flushes the row group and footer.
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return file.Close()
}
