package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ashagraev/roast-my-cv/internal/critique"
	"github.com/ashagraev/roast-my-cv/internal/evaluation"

	"github.com/mitchellh/mapstructure"
)

// WriteCritiques saves each successful critique as <stem>_<style>.txt under
// dir and returns the written paths in style order.
func WriteCritiques(dir, stem string, results []critique.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create results directory: %w", err)
	}

	paths := make([]string, 0, len(results))
	for _, result := range results {
		if result.Err != nil {
			continue
		}

		path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", stem, result.Style))
		if err := os.WriteFile(path, []byte(result.Text), 0o644); err != nil {
			return nil, fmt.Errorf("write critique %s: %w", result.Style, err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// summaryRow is the flat per-critique schema appended to the evaluations
// dataset.
type summaryRow struct {
	Model             string `mapstructure:"model"`
	Error             string `mapstructure:"error"`
	CoverageRate      string `mapstructure:"coverage_rate"`
	SectionsAddressed string `mapstructure:"sections_addressed"`
	Precision         string `mapstructure:"precision"`
	Recall            string `mapstructure:"recall"`
	F1                string `mapstructure:"f1_score"`
	TruePositives     string `mapstructure:"true_positives"`
	FalsePositives    string `mapstructure:"false_positives"`
	FalseNegatives    string `mapstructure:"false_negatives"`
	CritiqueLength    string `mapstructure:"critique_length"`
}

// SummaryRecord flattens one evaluation row into the record persisted per
// critique. Failed styles produce a row carrying only the label and error.
func SummaryRecord(row evaluation.Row) (map[string]string, error) {
	summary := summaryRow{Model: row.Label, Error: row.Err}

	if row.Detection != nil {
		summary.Precision = formatRate(row.Detection.Precision)
		summary.Recall = formatRate(row.Detection.Recall)
		summary.F1 = formatRate(row.Detection.F1)
		summary.TruePositives = strconv.Itoa(row.Detection.TruePositives)
		summary.FalsePositives = strconv.Itoa(row.Detection.FalsePositives)
		summary.FalseNegatives = strconv.Itoa(row.Detection.FalseNegatives)
		summary.CritiqueLength = strconv.Itoa(row.CritiqueWords)
	}
	if row.Coverage != nil {
		summary.CoverageRate = formatRate(row.Coverage.Rate)
		summary.SectionsAddressed = fmt.Sprintf("%d/%d", row.Coverage.CoveredPresent, row.Coverage.TotalPresent)
	}

	var record map[string]string
	if err := mapstructure.Decode(summary, &record); err != nil {
		return nil, fmt.Errorf("flatten evaluation row: %w", err)
	}
	return record, nil
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// WriteMetricsJSON saves the full evaluation report, including the
// per-section maps and issue sets, as an indented JSON document.
func WriteMetricsJSON(path string, report *evaluation.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create results directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
