package evaluation

import "github.com/ashagraev/roast-my-cv/internal/taxonomy"

// ScoreSectionCoverage determines which sections exist in the CV and which of
// those the critique references. The same case-insensitive substring test is
// used on both sides. The rate is covered/present, 0 when no sections are
// present.
func ScoreSectionCoverage(documentText, critiqueText string) *Coverage {
	present := make(map[taxonomy.Section]bool)
	covered := make(map[taxonomy.Section]bool)

	totalPresent := 0
	coveredPresent := 0

	for _, section := range taxonomy.Sections() {
		inDoc := taxonomy.MentionsSection(documentText, section)
		inCritique := taxonomy.MentionsSection(critiqueText, section)

		present[section] = inDoc
		covered[section] = inCritique

		if inDoc {
			totalPresent++
			if inCritique {
				coveredPresent++
			}
		}
	}

	return &Coverage{
		Present:        present,
		Covered:        covered,
		TotalPresent:   totalPresent,
		CoveredPresent: coveredPresent,
		Rate:           safeDiv(coveredPresent, totalPresent),
	}
}
