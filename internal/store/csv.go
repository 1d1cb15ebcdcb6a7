// Package store persists release reports as flat files.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/naka-gawa/release-stats/internal/domain"
)

// Column headers of the persisted files.
var (
	RawHeader   = []string{"Repo", "Tag Name", "Release Name", "Published At", "Year", "Month", "Day", "Week", "Date", "Is Weekend", "URL"}
	StatsHeader = []string{"Metric", "Value"}
)

const (
	csvTrue  = "TRUE"
	csvFalse = "FALSE"
)

// RowError reports a raw data row that was skipped on read-back.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// EncodeStats writes the metric table as a Metric,Value CSV.
func EncodeStats(w io.Writer, table domain.MetricTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(StatsHeader); err != nil {
		return err
	}
	for _, m := range table {
		if err := cw.Write([]string{m.Name, m.Value}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeStats reads a Metric,Value CSV back into a table.
func DecodeStats(r io.Reader) (domain.MetricTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(StatsHeader)
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.MetricTable{}, nil
		}
		return nil, fmt.Errorf("failed to read stats header: %w", err)
	}
	if header[0] != StatsHeader[0] || header[1] != StatsHeader[1] {
		return nil, fmt.Errorf("unexpected stats header %v", header)
	}
	table := domain.MetricTable{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read stats row: %w", err)
		}
		table = append(table, domain.Metric{Name: record[0], Value: record[1]})
	}
	return table, nil
}

// EncodeRaw writes one row per canonical release under RawHeader.
func EncodeRaw(w io.Writer, releases []domain.CanonicalRelease) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RawHeader); err != nil {
		return err
	}
	for _, r := range releases {
		name := ""
		if r.ReleaseName != nil {
			name = *r.ReleaseName
		}
		weekend := csvFalse
		if r.IsWeekend {
			weekend = csvTrue
		}
		record := []string{
			r.Repo,
			r.TagName,
			name,
			r.PublishedAt,
			strconv.Itoa(r.Year),
			strconv.Itoa(r.Month),
			strconv.Itoa(r.Day),
			strconv.Itoa(r.Week),
			r.DateString,
			weekend,
			r.HTMLURL,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeRaw reads raw release rows by header name. Rows with missing columns
// or malformed numeric fields are skipped and reported as RowErrors.
// An empty input yields no releases.
func DecodeRaw(r io.Reader) ([]domain.CanonicalRelease, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.CanonicalRelease{}, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read raw header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[h] = i
	}
	for _, h := range RawHeader {
		if _, ok := col[h]; !ok {
			return nil, nil, fmt.Errorf("raw data header is missing column %q", h)
		}
	}

	releases := []domain.CanonicalRelease{}
	var rowErrs []RowError
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read raw row: %w", err)
		}
		line, _ := cr.FieldPos(0)
		release, err := decodeRawRecord(record, col)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}
		releases = append(releases, release)
	}
	return releases, rowErrs, nil
}

func decodeRawRecord(record []string, col map[string]int) (domain.CanonicalRelease, error) {
	if len(record) < len(RawHeader) {
		return domain.CanonicalRelease{}, fmt.Errorf("expected %d fields, got %d", len(RawHeader), len(record))
	}
	field := func(name string) string { return record[col[name]] }

	var nums [4]int
	for i, name := range []string{"Year", "Month", "Day", "Week"} {
		n, err := strconv.Atoi(field(name))
		if err != nil {
			return domain.CanonicalRelease{}, fmt.Errorf("invalid %s %q", name, field(name))
		}
		nums[i] = n
	}

	release := domain.CanonicalRelease{
		Repo:        field("Repo"),
		TagName:     field("Tag Name"),
		PublishedAt: field("Published At"),
		Year:        nums[0],
		Month:       nums[1],
		Day:         nums[2],
		Week:        nums[3],
		DateString:  field("Date"),
		IsWeekend:   field("Is Weekend") == csvTrue,
		HTMLURL:     field("URL"),
	}
	if name := field("Release Name"); name != "" {
		release.ReleaseName = &name
	}
	if published, err := domain.ParseTimestamp(release.PublishedAt); err == nil {
		release.Published = published
	}
	return release, nil
}

// WriteStats writes the statistics file at path.
func WriteStats(path string, table domain.MetricTable) error {
	return writeFile(path, func(w io.Writer) error { return EncodeStats(w, table) })
}

// WriteRaw writes the raw data file at path.
func WriteRaw(path string, releases []domain.CanonicalRelease) error {
	return writeFile(path, func(w io.Writer) error { return EncodeRaw(w, releases) })
}

// ReadStats reads the statistics file at path.
func ReadStats(path string) (domain.MetricTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stats file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return DecodeStats(f)
}

// ReadRaw reads the raw data file at path.
func ReadRaw(path string) ([]domain.CanonicalRelease, []RowError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open raw data file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return DecodeRaw(f)
}

// writeFile creates path and its parent directories and runs write against it.
func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
