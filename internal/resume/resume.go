// Package resume models an extracted CV document and the loose section
// parsing used to build dataset records. The parsing is lexical only: it
// slices text between recognizable headers and makes no attempt to
// understand the content.
package resume

import (
	"regexp"
	"strings"
	"time"
)

// Document is an extracted CV. Ephemeral: built per run, never persisted by
// the evaluation core.
type Document struct {
	Path string
	Text string
}

func New(path, text string) *Document {
	return &Document{Path: path, Text: text}
}

// WordCount returns the whitespace-separated word count of the raw text.
func (d *Document) WordCount() int {
	return len(strings.Fields(d.Text))
}

// nextHeader matches the start of a following section: either a capitalised
// "Word:" line or an all-caps heading line.
var nextHeader = regexp.MustCompile(`\n[A-Z][a-z]+:|\n[A-Z][A-Z ]+\n`)

// sectionKeywords maps dataset columns to the header keywords that open the
// corresponding section.
var sectionKeywords = []struct {
	column   string
	keywords []string
}{
	{"career_objective", []string{"objective", "summary", "profile"}},
	{"skills", []string{"skills", "technical skills", "competencies"}},
	{"educational_institution_name", []string{"education", "academic background"}},
	{"professional_company_names", []string{"experience", "work history", "employment"}},
	{"certifications", []string{"certification", "licenses"}},
	{"projects", []string{"projects", "portfolio"}},
}

// Record flattens the document into the dataset schema: one column per
// recognized section plus the raw text and the extraction timestamp.
func (d *Document) Record() map[string]string {
	record := make(map[string]string, len(sectionKeywords)+2)
	for _, section := range sectionKeywords {
		record[section.column] = extractSection(d.Text, section.keywords)
	}
	record["raw_text"] = d.Text
	record["extracted_date"] = time.Now().Format(time.RFC3339)
	return record
}

// extractSection returns the text between the first matching header keyword
// and the next recognizable header, with the header itself stripped.
func extractSection(text string, keywords []string) string {
	for _, keyword := range keywords {
		header := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
		loc := header.FindStringIndex(text)
		if loc == nil {
			continue
		}

		section := text[loc[0]:]
		if end := nextHeader.FindStringIndex(section[1:]); end != nil {
			section = section[:end[0]+1]
		}

		// Strip the leading "keyword:" header.
		lead := regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(keyword) + `:?\s*`)
		section = lead.ReplaceAllString(section, "")
		return strings.TrimSpace(section)
	}
	return ""
}
