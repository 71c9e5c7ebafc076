// Package evaluation turns free-text critiques into quantitative quality
// metrics. It treats a critique as a binary multi-label detector over the
// issue taxonomy and scores it against heuristically derived ground truth,
// and separately measures how much of the CV's structure a critique covers.
// Everything here is pure: no I/O, no shared state, total functions of their
// inputs.
package evaluation

import (
	"errors"

	"github.com/ashagraev/roast-my-cv/internal/taxonomy"
)

// ErrUnknownIssue is returned when caller-supplied ground truth contains an
// identifier outside the issue taxonomy.
var ErrUnknownIssue = errors.New("issue is not part of the taxonomy")

// Result holds the issue-detection metrics for one (document, critique) pair.
// Derived entirely from the ground-truth and detected sets.
type Result struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1_score"`

	TruePositives  int `json:"true_positives"`
	FalsePositives int `json:"false_positives"`
	FalseNegatives int `json:"false_negatives"`

	GroundTruth []taxonomy.Issue `json:"ground_truth_issues"`
	Detected    []taxonomy.Issue `json:"detected_issues"`
	Missed      []taxonomy.Issue `json:"missed_issues"`
	Extra       []taxonomy.Issue `json:"extra_mentions"`
}

// Coverage reports which CV sections a critique addressed. The full
// per-section maps are kept for auditability, not just the aggregate rate.
type Coverage struct {
	Present map[taxonomy.Section]bool `json:"sections_present"`
	Covered map[taxonomy.Section]bool `json:"sections_covered"`

	TotalPresent   int     `json:"total_sections_in_cv"`
	CoveredPresent int     `json:"sections_addressed_in_critique"`
	Rate           float64 `json:"coverage_rate"`
}

// safeDiv divides two counts, returning 0 when the denominator is 0. The
// zero-denominator policy is explicit: metrics never become NaN.
func safeDiv(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
