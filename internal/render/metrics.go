// Package render formats release statistics for the terminal.
package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/naka-gawa/release-stats/internal/domain"
	"github.com/naka-gawa/release-stats/internal/usecase"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// warnColor highlights metrics that could not be computed.
var warnColor = color.New(color.FgYellow, color.Bold)

// MetricTable renders the statistics table followed by a one-line summary.
func MetricTable(w io.Writer, table domain.MetricTable) error {
	t := tablewriter.NewWriter(w)
	t.Header([]string{"Metric", "Value"})
	t.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	data := make([][]string, 0, len(table))
	for _, m := range table {
		value := m.Value
		if value == usecase.NotAvailable {
			value = warnColor.Sprint(value)
		}
		data = append(data, []string{m.Name, value})
	}
	if err := t.Bulk(data); err != nil {
		return err
	}
	if err := t.Render(); err != nil {
		return err
	}

	total, _ := table.Lookup(usecase.MetricTotalWorkingDay)
	avg, _ := table.Lookup(usecase.MetricAverageGap)
	if _, err := fmt.Fprintf(w, "Working day releases: %s, average gap: %s days\n", total, avg); err != nil {
		return err
	}
	return nil
}
