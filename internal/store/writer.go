package store

import (
	"context"
	"log"

	"github.com/naka-gawa/release-stats/internal/domain"
	"golang.org/x/sync/errgroup"
)

// FileReportWriter writes the statistics and raw data files of a batch run.
type FileReportWriter struct {
	StatsPath   string
	RawPath     string
	ParquetPath string // optional
	logger      *log.Logger
}

// NewFileReportWriter creates a FileReportWriter. An empty parquetPath disables the Parquet export.
func NewFileReportWriter(statsPath, rawPath, parquetPath string, logger *log.Logger) *FileReportWriter {
	return &FileReportWriter{
		StatsPath:   statsPath,
		RawPath:     rawPath,
		ParquetPath: parquetPath,
		logger:      logger,
	}
}

// Write writes every output file concurrently. The files are independent, so
// one failing does not stop the others from being written.
func (w *FileReportWriter) Write(ctx context.Context, table domain.MetricTable, releases []domain.CanonicalRelease) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var eg errgroup.Group

	eg.Go(func() error {
		w.logger.Printf("  Writing statistics to %s...\n", w.StatsPath)
		return WriteStats(w.StatsPath, table)
	})
	eg.Go(func() error {
		w.logger.Printf("  Writing raw data to %s...\n", w.RawPath)
		return WriteRaw(w.RawPath, releases)
	})
	if w.ParquetPath != "" {
		eg.Go(func() error {
			w.logger.Printf("  Writing parquet export to %s...\n", w.ParquetPath)
			return WriteParquet(w.ParquetPath, releases)
		})
	}
	return eg.Wait()
}
