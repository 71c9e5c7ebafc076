package evaluation

import (
	"regexp"
	"strings"

	"github.com/ashagraev/roast-my-cv/internal/taxonomy"
)

// metricsPattern matches any quantified claim: a percentage, a multiplier
// ("3x"), or an improvement verb (optionally followed by a number).
var metricsPattern = regexp.MustCompile(`\d+%|\d+x|increased|reduced|improved \d+`)

// buzzwords that flag the buzzword issue when two or more appear.
var buzzwords = []string{
	"synergy",
	"innovative",
	"dynamic",
	"results-driven",
	"team player",
	"hard worker",
}

var vaguePhrases = []string{"seeking", "looking for", "opportunity"}

var specificityPhrases = []string{"specific", "specialize", "expert in"}

const (
	minWordCount = 200
	maxWordCount = 1000
)

// DetectGroundTruthIssues inspects CV text with independent deterministic
// rules and returns the issue categories judged present, in canonical
// taxonomy order. Calling it twice on identical text yields identical sets.
//
// Known limitation: there are no rules for typos, skill_organization or
// relevance, so those categories never appear in auto-derived ground truth;
// they can only be scored when ground truth is supplied by the caller.
func DetectGroundTruthIssues(documentText string) []taxonomy.Issue {
	lower := strings.ToLower(documentText)

	present := map[taxonomy.Issue]bool{
		taxonomy.IssueVagueObjective: hasVagueObjective(lower),
		taxonomy.IssueNoMetrics:      !metricsPattern.MatchString(documentText),
		taxonomy.IssueBuzzwords:      countBuzzwords(lower) >= 2,
		taxonomy.IssueLength:         hasLengthIssue(documentText),
		taxonomy.IssueFormatting:     missingCoreSections(documentText),
	}

	issues := make([]taxonomy.Issue, 0, len(present))
	for _, issue := range taxonomy.Issues() {
		if present[issue] {
			issues = append(issues, issue)
		}
	}
	return issues
}

// hasVagueObjective flags objectives that use job-seeking boilerplate without
// any phrase signalling specialisation.
func hasVagueObjective(lower string) bool {
	vague := false
	for _, phrase := range vaguePhrases {
		if strings.Contains(lower, phrase) {
			vague = true
			break
		}
	}
	if !vague {
		return false
	}

	for _, phrase := range specificityPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	return true
}

func countBuzzwords(lower string) int {
	count := 0
	for _, bw := range buzzwords {
		if strings.Contains(lower, bw) {
			count++
		}
	}
	return count
}

// hasLengthIssue flags both tails identically; the signal is binary, not
// directional.
func hasLengthIssue(text string) bool {
	words := len(strings.Fields(text))
	return words < minWordCount || words > maxWordCount
}

func missingCoreSections(text string) bool {
	hasSkills := taxonomy.MentionsSection(text, taxonomy.SectionSkills)
	hasExperience := taxonomy.MentionsSection(text, taxonomy.SectionExperience)
	return !hasSkills || !hasExperience
}
