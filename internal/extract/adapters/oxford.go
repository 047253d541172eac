package adapters

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ppiankov/degreefacts/internal/extract"
	"github.com/ppiankov/degreefacts/internal/model"
)

const (
	oxfordALevelLabel   = "A-levels:"
	oxfordIBLabel       = "International Baccalaureate (IB):"
	oxfordIBMarker      = "International Baccalaureate"
	oxfordEntranceLabel = "Entrance requirements:"

	locatorParagraph = "paragraph:p.audience-copy"
)

var (
	oxfordALevelStops = []string{"Advanced Highers", "International"}
	oxfordIBStops     = []string{"Advanced diploma", "Any other"}
)

// OxfordAdapter extracts course facts from ox.ac.uk course pages
type OxfordAdapter struct {
	BaseAdapter
	strategies []Strategy
}

// NewOxfordAdapter creates a new Oxford adapter
func NewOxfordAdapter() *OxfordAdapter {
	a := &OxfordAdapter{
		BaseAdapter: BaseAdapter{domains: []string{"ox.ac.uk"}},
	}
	a.strategies = []Strategy{
		TableWithMarkers(oxfordALevelLabel, oxfordIBMarker),
		ParagraphScan(locatorParagraph, "p.audience-copy", func(text string) bool {
			return strings.Contains(text, oxfordEntranceLabel) && extract.HasGrade(entranceSentence(text))
		}),
	}
	return a
}

// Name returns the adapter name
func (a *OxfordAdapter) Name() string {
	return "oxford"
}

// Schema returns the 7-field layout with optional_degree_type
func (a *OxfordAdapter) Schema() model.Schema {
	return model.ExtendedSchema
}

// Title reads the first heading. Oxford undergraduate courses are all BAs.
func (a *OxfordAdapter) Title(doc *goquery.Document) TitleFacts {
	raw := a.FirstOwnText(doc, "h1")
	if raw == "" {
		return TitleFacts{}
	}
	return TitleFacts{DegreeType: "BA", Title: raw}
}

// OptionalDegreeType returns the label of the longer course variant
func (a *OxfordAdapter) OptionalDegreeType(doc *goquery.Document) extract.Match {
	cmp, ok := extract.FindDurationComparison(doc.Text())
	if !ok {
		return extract.Match{}
	}
	return extract.Match{Value: cmp.Longer(), Rule: cmp.Rule}
}

// Locate tries the requirements table, then the audience-copy paragraphs
func (a *OxfordAdapter) Locate(doc *goquery.Document) Section {
	return LocateFirst(doc, a.strategies)
}

// ExtractGrades reads the table segments, or the entrance-requirement sentence
func (a *OxfordAdapter) ExtractGrades(sec Section) Grades {
	switch sec.Locator {
	case locatorTable:
		aSeg, ibSeg := oxfordSegments(sec.Text)
		return Grades{
			ALevel:     extract.Chain{extract.Pattern("table-a-levels", extract.FindGrade)}.First(aSeg),
			ALevelSpan: aSeg,
			IB:         extract.Chain{extract.Pattern("table-ib", extract.FindPoints)}.First(ibSeg),
			IBSpan:     ibSeg,
		}
	case locatorParagraph:
		return Grades{
			ALevel:     extract.Chain{extract.Pattern("entrance-sentence", extract.FindGrade)}.First(entranceSentence(sec.Text)),
			ALevelSpan: sec.Text,
		}
	}
	return Grades{}
}

// ExtractSubjects keeps the span each grade was read from
func (a *OxfordAdapter) ExtractSubjects(sec Section, grades Grades) Subjects {
	var subjects Subjects
	if grades.ALevel.Found() {
		rule := "table-a-levels-segment"
		if sec.Locator == locatorParagraph {
			rule = "paragraph"
		}
		subjects.ALevel = extract.Match{Value: grades.ALevelSpan, Rule: rule}
	}
	if grades.IB.Found() {
		subjects.IB = extract.Match{Value: grades.IBSpan, Rule: "table-ib-segment"}
	}
	return subjects
}

// oxfordSegments cuts the table text into its A-level and IB segments
func oxfordSegments(text string) (aLevel, ib string) {
	if seg, ok := extract.Segment(text, oxfordALevelLabel, oxfordALevelStops...); ok {
		aLevel = extract.CollapseWhitespace(seg)
	}
	if seg, ok := extract.Segment(text, oxfordIBLabel, oxfordIBStops...); ok {
		ib = extract.CollapseWhitespace(seg)
	}
	return aLevel, ib
}

// entranceSentence returns the sentence following "Entrance requirements:"
func entranceSentence(text string) string {
	idx := strings.Index(text, oxfordEntranceLabel)
	if idx < 0 {
		return ""
	}
	rest := text[idx+len(oxfordEntranceLabel):]
	if end := strings.Index(rest, "."); end >= 0 {
		rest = rest[:end+1]
	}
	return strings.TrimSpace(rest)
}
