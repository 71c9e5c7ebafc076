// Package taxonomy holds the fixed lookup tables that drive the evaluation
// engine: the structural sections a CV is expected to have and the issue
// categories a critique may point out. Both tables are immutable after
// process start and shared by the ground-truth detector, the coverage scorer
// and the issue-detection scorer.
package taxonomy

import "strings"

// Section identifies a structural part of a CV.
type Section string

// Issue identifies a class of CV weakness a critique can mention.
type Issue string

const (
	SectionObjective    Section = "career_objective"
	SectionSkills       Section = "skills"
	SectionEducation    Section = "education"
	SectionExperience   Section = "experience"
	SectionContact      Section = "contact"
	SectionAchievements Section = "achievements"
	SectionProjects     Section = "projects"
)

const (
	IssueTypos             Issue = "typos"
	IssueVagueObjective    Issue = "vague_objective"
	IssueSkillOrganization Issue = "skill_organization"
	IssueNoMetrics         Issue = "no_metrics"
	IssueBuzzwords         Issue = "buzzwords"
	IssueFormatting        Issue = "formatting"
	IssueLength            Issue = "length"
	IssueRelevance         Issue = "relevance"
)

// sectionOrder fixes the iteration order for deterministic results.
var sectionOrder = []Section{
	SectionObjective,
	SectionSkills,
	SectionEducation,
	SectionExperience,
	SectionContact,
	SectionAchievements,
	SectionProjects,
}

var sectionTriggers = map[Section][]string{
	SectionObjective:    {"career objective", "objective", "summary", "professional summary"},
	SectionSkills:       {"skills", "technical skills", "competencies", "expertise"},
	SectionEducation:    {"education", "academic", "degree", "university", "college"},
	SectionExperience:   {"experience", "work history", "employment", "professional experience"},
	SectionContact:      {"email", "phone", "address", "contact", "linkedin"},
	SectionAchievements: {"achievement", "award", "accomplishment", "certification"},
	SectionProjects:     {"project", "portfolio"},
}

var issueOrder = []Issue{
	IssueTypos,
	IssueVagueObjective,
	IssueSkillOrganization,
	IssueNoMetrics,
	IssueBuzzwords,
	IssueFormatting,
	IssueLength,
	IssueRelevance,
}

var issueTriggers = map[Issue][]string{
	IssueTypos:             {"typo", "spelling", "grammar", "grammatical"},
	IssueVagueObjective:    {"vague", "generic", "unclear objective", "bland objective"},
	IssueSkillOrganization: {"organize skills", "categorize skills", "skill structure"},
	IssueNoMetrics:         {"quantif", "metric", "number", "measurable", "achievement"},
	IssueBuzzwords:         {"buzzword", "cliché", "jargon", "overused"},
	IssueFormatting:        {"format", "layout", "structure", "consistency"},
	IssueLength:            {"too long", "too short", "concise", "verbose"},
	IssueRelevance:         {"relevant", "irrelevant", "focus"},
}

// Sections returns all section categories in their canonical order.
func Sections() []Section {
	out := make([]Section, len(sectionOrder))
	copy(out, sectionOrder)
	return out
}

// Issues returns all issue categories in their canonical order.
func Issues() []Issue {
	out := make([]Issue, len(issueOrder))
	copy(out, issueOrder)
	return out
}

// SectionTriggers returns the trigger phrases for the given section.
func SectionTriggers(s Section) []string {
	triggers := sectionTriggers[s]
	out := make([]string, len(triggers))
	copy(out, triggers)
	return out
}

// IssueTriggers returns the trigger phrases for the given issue.
func IssueTriggers(i Issue) []string {
	triggers := issueTriggers[i]
	out := make([]string, len(triggers))
	copy(out, triggers)
	return out
}

// KnownIssue reports whether the identifier belongs to the issue taxonomy.
func KnownIssue(i Issue) bool {
	_, ok := issueTriggers[i]
	return ok
}

// KnownSection reports whether the identifier belongs to the section taxonomy.
func KnownSection(s Section) bool {
	_, ok := sectionTriggers[s]
	return ok
}

// MentionsSection reports whether the text contains any of the section's
// trigger phrases. Matching is a case-insensitive substring test; the same
// test decides presence in a CV and mention in a critique.
func MentionsSection(text string, s Section) bool {
	return containsAny(text, sectionTriggers[s])
}

// MentionsIssue reports whether the text contains any of the issue's trigger
// phrases.
func MentionsIssue(text string, i Issue) bool {
	return containsAny(text, issueTriggers[i])
}

func containsAny(text string, triggers []string) bool {
	lower := strings.ToLower(text)
	for _, trigger := range triggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}
