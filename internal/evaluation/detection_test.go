package evaluation

import (
	"errors"
	"math"
	"testing"

	"github.com/ashagraev/roast-my-cv/internal/taxonomy"
	"github.com/google/go-cmp/cmp"
)

func TestScorePerfectDetection(t *testing.T) {
	set := []taxonomy.Issue{taxonomy.IssueNoMetrics, taxonomy.IssueBuzzwords}
	result := Score(set, set)

	if result.Precision != 1 || result.Recall != 1 || result.F1 != 1 {
		t.Fatalf("expected perfect scores, got P=%v R=%v F1=%v", result.Precision, result.Recall, result.F1)
	}
	if result.TruePositives != 2 || result.FalsePositives != 0 || result.FalseNegatives != 0 {
		t.Fatalf("unexpected confusion counts: %+v", result)
	}
}

func TestScorePartialDetection(t *testing.T) {
	groundTruth := []taxonomy.Issue{taxonomy.IssueVagueObjective, taxonomy.IssueNoMetrics}
	detected := []taxonomy.Issue{taxonomy.IssueNoMetrics}

	result := Score(groundTruth, detected)

	if result.Precision != 1.0 {
		t.Fatalf("precision = %v, want 1.0", result.Precision)
	}
	if result.Recall != 0.5 {
		t.Fatalf("recall = %v, want 0.5", result.Recall)
	}
	if math.Abs(result.F1-2.0/3.0) > 1e-9 {
		t.Fatalf("f1 = %v, want 0.667", result.F1)
	}
	if diff := cmp.Diff([]taxonomy.Issue{taxonomy.IssueVagueObjective}, result.Missed); diff != "" {
		t.Fatalf("unexpected missed set (-want +got):\n%s", diff)
	}
	if len(result.Extra) != 0 {
		t.Fatalf("expected no extra mentions, got %v", result.Extra)
	}
}

func TestScoreEmptyDetectedSet(t *testing.T) {
	groundTruth := []taxonomy.Issue{taxonomy.IssueNoMetrics, taxonomy.IssueLength}
	result := Score(groundTruth, nil)

	if result.Precision != 0 || result.Recall != 0 || result.F1 != 0 {
		t.Fatalf("expected all-zero scores, got %+v", result)
	}
	if result.FalseNegatives != 2 {
		t.Fatalf("false negatives = %d, want 2", result.FalseNegatives)
	}
}

func TestScoreEmptyGroundTruth(t *testing.T) {
	detected := []taxonomy.Issue{taxonomy.IssueFormatting}
	result := Score(nil, detected)

	// Only false positives: recall defaults to 0, not NaN.
	if result.Recall != 0 {
		t.Fatalf("recall = %v, want 0", result.Recall)
	}
	if result.Precision != 0 {
		t.Fatalf("precision = %v, want 0", result.Precision)
	}
	if result.FalsePositives != 1 {
		t.Fatalf("false positives = %d, want 1", result.FalsePositives)
	}
}

func TestScoreInvariants(t *testing.T) {
	groundTruth := []taxonomy.Issue{
		taxonomy.IssueVagueObjective,
		taxonomy.IssueNoMetrics,
		taxonomy.IssueLength,
	}
	detected := []taxonomy.Issue{
		taxonomy.IssueNoMetrics,
		taxonomy.IssueFormatting,
	}

	result := Score(groundTruth, detected)

	if result.TruePositives+result.FalseNegatives != len(groundTruth) {
		t.Fatalf("TP+FN = %d, want |G| = %d", result.TruePositives+result.FalseNegatives, len(groundTruth))
	}
	if result.TruePositives+result.FalsePositives != len(detected) {
		t.Fatalf("TP+FP = %d, want |D| = %d", result.TruePositives+result.FalsePositives, len(detected))
	}
	for _, v := range []float64{result.Precision, result.Recall, result.F1} {
		if v < 0 || v > 1 {
			t.Fatalf("metric out of [0,1]: %v", v)
		}
	}
}

func TestScoreDeduplicatesInputs(t *testing.T) {
	groundTruth := []taxonomy.Issue{taxonomy.IssueNoMetrics, taxonomy.IssueNoMetrics}
	result := Score(groundTruth, groundTruth)

	if result.TruePositives != 1 {
		t.Fatalf("duplicates should collapse to set membership, TP = %d", result.TruePositives)
	}
	if diff := cmp.Diff([]taxonomy.Issue{taxonomy.IssueNoMetrics}, result.GroundTruth); diff != "" {
		t.Fatalf("ground truth not normalized (-want +got):\n%s", diff)
	}
}

func TestDetectIssueMentions(t *testing.T) {
	critique := "Missing quantifiable results. Experience section is too vague. Skills need organization."
	detected := DetectIssueMentions(critique)

	// "quantif" matches no_metrics, "vague" matches vague_objective; the
	// organization remark matches none of the skill_organization triggers.
	want := []taxonomy.Issue{taxonomy.IssueVagueObjective, taxonomy.IssueNoMetrics}
	if diff := cmp.Diff(want, detected); diff != "" {
		t.Fatalf("unexpected detected set (-want +got):\n%s", diff)
	}
}

func TestDetectIssueMentionsEmptyCritique(t *testing.T) {
	if detected := DetectIssueMentions(""); len(detected) != 0 {
		t.Fatalf("empty critique detected %v", detected)
	}
}

func TestScoreIssueDetectionAutoGroundTruth(t *testing.T) {
	critique := "Missing quantifiable results. Experience section is too vague."

	result, err := ScoreIssueDetection(sampleCV, critique, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Auto ground truth is {vague_objective, no_metrics, length}; the
	// critique mentions the first two.
	if result.TruePositives != 2 || result.FalsePositives != 0 || result.FalseNegatives != 1 {
		t.Fatalf("unexpected confusion counts: %+v", result)
	}
	if result.Precision != 1.0 {
		t.Fatalf("precision = %v, want 1.0", result.Precision)
	}
	if math.Abs(result.Recall-2.0/3.0) > 1e-9 {
		t.Fatalf("recall = %v, want 0.667", result.Recall)
	}
}

func TestScoreIssueDetectionRejectsUnknownGroundTruth(t *testing.T) {
	_, err := ScoreIssueDetection(sampleCV, "fine critique", []taxonomy.Issue{"not_a_category"})
	if !errors.Is(err, ErrUnknownIssue) {
		t.Fatalf("expected ErrUnknownIssue, got %v", err)
	}
}

func TestScoreIssueDetectionEmptyCritique(t *testing.T) {
	result, err := ScoreIssueDetection(sampleCV, "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Precision != 0 || result.Recall != 0 || result.F1 != 0 {
		t.Fatalf("expected zero scores for empty critique, got %+v", result)
	}
}
