// Package report renders the cross-model comparison table and writes the
// run's artifacts: per-style critique files and the metrics JSON document.
package report

import (
	"fmt"

	"github.com/ashagraev/roast-my-cv/internal/evaluation"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Table renders the evaluation report as a fixed-width terminal table, one
// row per model in report order. Failed styles show their error instead of
// metrics.
func Table(report *evaluation.Report) string {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)

	w.AppendHeader(table.Row{
		"MODEL", "COVERAGE", "SECTIONS", "PRECISION", "RECALL", "F1", "TP", "FP", "FN", "WORDS",
	})

	for _, row := range report.Rows {
		if row.Err != "" {
			w.AppendRow(table.Row{row.Label, "error: " + row.Err})
			continue
		}

		w.AppendRow(table.Row{
			row.Label,
			fmt.Sprintf("%.2f", row.Coverage.Rate),
			fmt.Sprintf("%d/%d", row.Coverage.CoveredPresent, row.Coverage.TotalPresent),
			fmt.Sprintf("%.2f", row.Detection.Precision),
			fmt.Sprintf("%.2f", row.Detection.Recall),
			fmt.Sprintf("%.2f", row.Detection.F1),
			row.Detection.TruePositives,
			row.Detection.FalsePositives,
			row.Detection.FalseNegatives,
			row.CritiqueWords,
		})
	}

	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})

	return w.Render()
}
