package adapters

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/ppiankov/degreefacts/internal/extract"
	"github.com/ppiankov/degreefacts/internal/model"
)

var cambridgeHonoursSuffix = regexp.MustCompile(`,\s*BA\s*\(Hons\)\s*$`)

// CambridgeAdapter extracts course facts from undergraduate.study.cam.ac.uk pages
type CambridgeAdapter struct {
	BaseAdapter
	strategies []Strategy
	aLevel     extract.Chain
	ib         extract.Chain
}

// NewCambridgeAdapter creates a new Cambridge adapter
func NewCambridgeAdapter() *CambridgeAdapter {
	return &CambridgeAdapter{
		BaseAdapter: BaseAdapter{domains: []string{"cam.ac.uk"}},
		strategies: SelectorCascade(
			"#entry-requirements",
			`[class*="field-entry-overview"]`,
			`[class*="entry-requirements"]`,
		),
		aLevel: extract.Chain{extract.Pattern("a-level-label", extract.LabelledGrade)},
		ib:     extract.Chain{extract.Pattern("ib-label", extract.LabelledPoints)},
	}
}

// Name returns the adapter name
func (a *CambridgeAdapter) Name() string {
	return "cambridge"
}

// Schema returns the 6-field layout
func (a *CambridgeAdapter) Schema() model.Schema {
	return model.StandardSchema
}

// Title reads the first heading. Every Cambridge undergraduate course is a BA;
// only the trailing ", BA (Hons)" is removed from the title.
func (a *CambridgeAdapter) Title(doc *goquery.Document) TitleFacts {
	raw := a.FirstOwnText(doc, "h1")
	if raw == "" {
		return TitleFacts{}
	}
	return TitleFacts{
		DegreeType: "BA",
		Title:      extract.StripSuffixes(raw, cambridgeHonoursSuffix),
	}
}

// Locate runs the entry-requirements selector cascade
func (a *CambridgeAdapter) Locate(doc *goquery.Document) Section {
	return LocateFirst(doc, a.strategies)
}

// ExtractGrades reads the labelled A-level grade and IB total
func (a *CambridgeAdapter) ExtractGrades(sec Section) Grades {
	return Grades{
		ALevel:     a.aLevel.First(sec.Text),
		ALevelSpan: sec.Text,
		IB:         a.ib.First(sec.Text),
		IBSpan:     sec.Text,
	}
}

// ExtractSubjects runs the subject chain; IB text restates the points.
// Subjects only reach the IB text when they would survive on the A-level side.
func (a *CambridgeAdapter) ExtractSubjects(sec Section, grades Grades) Subjects {
	aLevel := extract.SubjectChain.First(grades.ALevelSpan)

	var ib extract.Match
	if grades.IB.Found() {
		subjects := aLevel.Value
		if !grades.ALevel.Found() && subjects != model.NoSpecificSubjects {
			subjects = ""
		}
		ib = extract.Match{
			Value: extract.ComposeIBSubjects(grades.IB.Value, subjects),
			Rule:  "ib-composed",
		}
	}
	return Subjects{ALevel: aLevel, IB: ib}
}
