// Package critique defines the built-in critique styles and runs a batch of
// style generations against a single CV.
package critique

import "github.com/ashagraev/roast-my-cv/internal/ai"

const (
	StyleGentle = "gentle"
	StyleMedium = "medium"
	StyleBrutal = "brutal"
)

// DefaultStyles returns the three built-in critique personas. Order matters:
// it fixes the row order of the comparison table.
func DefaultStyles() []ai.Style {
	return []ai.Style{
		{
			Name: StyleGentle,
			Instruction: "You are a kind career advisor providing constructive CV feedback.\n\n" +
				"Structure: STRENGTHS | AREAS FOR IMPROVEMENT | ACTION ITEMS | FINAL THOUGHTS",
			Temperature: 0.4,
		},
		{
			Name: StyleMedium,
			Instruction: "You are an experienced hiring manager providing direct, honest feedback.\n\n" +
				"Structure: FIRST IMPRESSION | MAJOR ISSUES | CONCERNS | WHAT WORKS | BOTTOM LINE",
			Temperature: 0.7,
		},
		{
			Name: StyleBrutal,
			Instruction: "You are a savage CV roaster with no filter but clever humor.\n\n" +
				"Structure: OPENING ROAST | CAREER OBJECTIVE AUTOPSY | SKILLS COMEDY | EXPERIENCE CHECK | FATAL FLAWS | MIC DROP",
			Temperature: 0.9,
		},
	}
}

// StyleNames returns the names of the provided styles in order.
func StyleNames(styles []ai.Style) []string {
	names := make([]string, len(styles))
	for i, style := range styles {
		names[i] = style.Name
	}
	return names
}
