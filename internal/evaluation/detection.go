package evaluation

import (
	"fmt"

	"github.com/ashagraev/roast-my-cv/internal/taxonomy"
)

// DetectIssueMentions scans critique text against the issue taxonomy and
// returns the categories it appears to mention, in canonical order.
// Membership is boolean: multiple trigger hits within one category still
// count once.
func DetectIssueMentions(critiqueText string) []taxonomy.Issue {
	detected := make([]taxonomy.Issue, 0)
	for _, issue := range taxonomy.Issues() {
		if taxonomy.MentionsIssue(critiqueText, issue) {
			detected = append(detected, issue)
		}
	}
	return detected
}

// Score computes precision, recall and F1 for a detected issue set against a
// ground-truth set. Both inputs are treated as sets; order and duplicates do
// not affect the counts. All denominators follow the zero-is-zero policy.
func Score(groundTruth, detected []taxonomy.Issue) *Result {
	truth := toSet(groundTruth)
	found := toSet(detected)

	tp, fp, fn := 0, 0, 0
	missed := make([]taxonomy.Issue, 0)
	extra := make([]taxonomy.Issue, 0)

	for _, issue := range taxonomy.Issues() {
		switch {
		case truth[issue] && found[issue]:
			tp++
		case found[issue]:
			fp++
			extra = append(extra, issue)
		case truth[issue]:
			fn++
			missed = append(missed, issue)
		}
	}

	precision := safeDiv(tp, tp+fp)
	recall := safeDiv(tp, tp+fn)

	f1 := 0.0
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}

	return &Result{
		Precision:      precision,
		Recall:         recall,
		F1:             f1,
		TruePositives:  tp,
		FalsePositives: fp,
		FalseNegatives: fn,
		GroundTruth:    normalize(groundTruth),
		Detected:       normalize(detected),
		Missed:         missed,
		Extra:          extra,
	}
}

// ScoreIssueDetection scores a critique against the document it reviews.
// When groundTruth is nil the issues are auto-detected from the document
// text; a supplied set is validated against the taxonomy first.
func ScoreIssueDetection(documentText, critiqueText string, groundTruth []taxonomy.Issue) (*Result, error) {
	if groundTruth == nil {
		groundTruth = DetectGroundTruthIssues(documentText)
	} else if err := ValidateGroundTruth(groundTruth); err != nil {
		return nil, err
	}

	return Score(groundTruth, DetectIssueMentions(critiqueText)), nil
}

// ValidateGroundTruth rejects any identifier outside the issue taxonomy.
func ValidateGroundTruth(issues []taxonomy.Issue) error {
	for _, issue := range issues {
		if !taxonomy.KnownIssue(issue) {
			return fmt.Errorf("%w: %q", ErrUnknownIssue, issue)
		}
	}
	return nil
}

func toSet(issues []taxonomy.Issue) map[taxonomy.Issue]bool {
	set := make(map[taxonomy.Issue]bool, len(issues))
	for _, issue := range issues {
		set[issue] = true
	}
	return set
}

// normalize deduplicates and orders a set canonically for stable output.
func normalize(issues []taxonomy.Issue) []taxonomy.Issue {
	set := toSet(issues)
	out := make([]taxonomy.Issue, 0, len(set))
	for _, issue := range taxonomy.Issues() {
		if set[issue] {
			out = append(out, issue)
		}
	}
	return out
}
