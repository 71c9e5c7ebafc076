package evaluation

import (
	"strings"

	"github.com/ashagraev/roast-my-cv/internal/taxonomy"
)

// Critique pairs a critique text with the label of the model or style that
// produced it. Err carries a generation failure; such entries are still
// reported but not scored.
type Critique struct {
	Label string
	Text  string
	Err   string
}

// Row is the evaluation of a single critique.
type Row struct {
	Label string `json:"model"`
	// Err is set when generation failed for this label; Detection and
	// Coverage are nil in that case.
	Err string `json:"error,omitempty"`

	Detection *Result   `json:"detection,omitempty"`
	Coverage  *Coverage `json:"coverage,omitempty"`

	CritiqueWords int `json:"critique_length"`
}

// Report is the row-per-model comparison table. Rows keep the input order of
// the critiques regardless of how they were produced or scored.
type Report struct {
	Rows []Row `json:"results"`
}

// EvaluateAll scores every critique against the same document. Ground truth
// is resolved exactly once per document (supplied, or auto-detected when nil)
// so the per-model scores stay comparable.
func EvaluateAll(documentText string, critiques []Critique, groundTruth []taxonomy.Issue) (*Report, error) {
	if groundTruth == nil {
		groundTruth = DetectGroundTruthIssues(documentText)
	} else if err := ValidateGroundTruth(groundTruth); err != nil {
		return nil, err
	}

	report := &Report{Rows: make([]Row, 0, len(critiques))}

	for _, critique := range critiques {
		if critique.Err != "" {
			report.Rows = append(report.Rows, Row{Label: critique.Label, Err: critique.Err})
			continue
		}

		report.Rows = append(report.Rows, Row{
			Label:         critique.Label,
			Detection:     Score(groundTruth, DetectIssueMentions(critique.Text)),
			Coverage:      ScoreSectionCoverage(documentText, critique.Text),
			CritiqueWords: len(strings.Fields(critique.Text)),
		})
	}

	return report, nil
}

// Best returns the row with the highest F1 score. Ties are broken by input
// order: the first row with the maximum F1 wins, keeping selection
// deterministic. Rows that recorded a generation failure are never selected.
// Returns nil when no scorable rows exist.
func (r *Report) Best() *Row {
	var best *Row
	for i := range r.Rows {
		row := &r.Rows[i]
		if row.Detection == nil {
			continue
		}
		if best == nil || row.Detection.F1 > best.Detection.F1 {
			best = row
		}
	}
	return best
}
