package adapters

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ppiankov/degreefacts/internal/extract"
	"github.com/ppiankov/degreefacts/internal/model"
)

// lseTitleSelectors is the heading cascade: the page-layout path first, then
// looser fallbacks for redesigned pages.
var lseTitleSelectors = []string{
	"#main > div > div:nth-of-type(1) > div:nth-of-type(2) > div > h1 > span",
	"h1 span",
	"h1",
}

// LSEAdapter extracts course facts from lse.ac.uk programme pages
type LSEAdapter struct {
	BaseAdapter
	strategies []Strategy
	aLevel     extract.Detector
	ib         extract.Detector
}

// NewLSEAdapter creates a new LSE adapter
func NewLSEAdapter() *LSEAdapter {
	return &LSEAdapter{
		BaseAdapter: BaseAdapter{domains: []string{"lse.ac.uk"}},
		strategies: []Strategy{
			ParagraphSet("paragraphs:#entry-requirement__home", "#entry-requirement__home p"),
		},
		aLevel: extract.Pattern("leading-grade", extract.LeadingGrade),
		ib: extract.Detector{
			Name:    "points-overall",
			Applies: func(p string) bool { return strings.Contains(p, "points overall") },
			Extract: extract.LeadingPoints,
		},
	}
}

// Name returns the adapter name
func (a *LSEAdapter) Name() string {
	return "lse"
}

// Schema returns the 6-field layout
func (a *LSEAdapter) Schema() model.Schema {
	return model.StandardSchema
}

// Title matches the degree code in the programme heading and strips it
func (a *LSEAdapter) Title(doc *goquery.Document) TitleFacts {
	raw := a.FirstOwnText(doc, lseTitleSelectors...)
	if raw == "" {
		return TitleFacts{}
	}
	degreeType := extract.MatchDegreeType(raw)
	return TitleFacts{
		DegreeType: degreeType,
		Title:      extract.CleanTitle(raw, degreeType),
	}
}

// Locate collects the home-student requirement paragraphs
func (a *LSEAdapter) Locate(doc *goquery.Document) Section {
	return LocateFirst(doc, a.strategies)
}

// ExtractGrades takes the first paragraph opening with a grade, and the first
// paragraph mentioning "points overall"
func (a *LSEAdapter) ExtractGrades(sec Section) Grades {
	var grades Grades
	for _, p := range sec.Paragraphs {
		if grades.ALevelSpan == "" && a.aLevel.Applies(p) {
			grades.ALevel = extract.Match{Value: a.aLevel.Extract(p), Rule: a.aLevel.Name}
			grades.ALevelSpan = p
		}
		if grades.IBSpan == "" && a.ib.Applies(p) {
			grades.IB = extract.Match{Value: a.ib.Extract(p), Rule: a.ib.Name}
			grades.IBSpan = p
		}
	}
	return grades
}

// ExtractSubjects returns the matched paragraphs whole
func (a *LSEAdapter) ExtractSubjects(sec Section, grades Grades) Subjects {
	var subjects Subjects
	if grades.ALevel.Found() {
		subjects.ALevel = extract.Match{Value: grades.ALevelSpan, Rule: "grade-paragraph"}
	}
	if grades.IBSpan != "" {
		subjects.IB = extract.Match{Value: grades.IBSpan, Rule: "points-paragraph"}
	}
	return subjects
}
