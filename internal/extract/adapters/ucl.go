package adapters

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/ppiankov/degreefacts/internal/extract"
	"github.com/ppiankov/degreefacts/internal/model"
)

var uclCells = CellPaths{
	ALevelGrades:   "#tab1-alevel > div > dl:nth-of-type(1) > dd:nth-of-type(1)",
	ALevelSubjects: "#tab1-alevel > div > dl:nth-of-type(1) > dd:nth-of-type(2)",
	IBPoints:       "#tab2-ibdiploma > div > dl:nth-of-type(1) > dd:nth-of-type(1)",
	IBSubjects:     "#tab2-ibdiploma > div > dl:nth-of-type(1) > dd:nth-of-type(2)",
}

// UCLAdapter extracts course facts from ucl.ac.uk prospectus pages
type UCLAdapter struct {
	BaseAdapter
	strategies []Strategy
}

// NewUCLAdapter creates a new UCL adapter
func NewUCLAdapter() *UCLAdapter {
	return &UCLAdapter{
		BaseAdapter: BaseAdapter{domains: []string{"ucl.ac.uk"}},
		strategies:  []Strategy{FixedCells("cells:#tab1-alevel,#tab2-ibdiploma", uclCells)},
	}
}

// Name returns the adapter name
func (a *UCLAdapter) Name() string {
	return "ucl"
}

// Schema returns the 6-field layout
func (a *UCLAdapter) Schema() model.Schema {
	return model.StandardSchema
}

// Title matches the degree code in the heading and strips it
func (a *UCLAdapter) Title(doc *goquery.Document) TitleFacts {
	raw := a.FirstOwnText(doc, "h1")
	if raw == "" {
		return TitleFacts{}
	}
	degreeType := extract.MatchDegreeType(raw)
	return TitleFacts{
		DegreeType: degreeType,
		Title:      extract.CleanTitle(raw, degreeType),
	}
}

// Locate reads the A-level and IB tab cells
func (a *UCLAdapter) Locate(doc *goquery.Document) Section {
	return LocateFirst(doc, a.strategies)
}

// ExtractGrades takes the first cell of each tab as-is
func (a *UCLAdapter) ExtractGrades(sec Section) Grades {
	return Grades{
		ALevel:     extract.Match{Value: sec.Cells.ALevelGrades, Rule: "a-level-cell"},
		ALevelSpan: sec.Cells.ALevelGrades,
		IB:         extract.Match{Value: sec.Cells.IBPoints, Rule: "ib-cell"},
		IBSpan:     sec.Cells.IBPoints,
	}
}

// ExtractSubjects takes the second cell of each tab as-is
func (a *UCLAdapter) ExtractSubjects(sec Section, _ Grades) Subjects {
	return Subjects{
		ALevel: extract.Match{Value: sec.Cells.ALevelSubjects, Rule: "a-level-subjects-cell"},
		IB:     extract.Match{Value: sec.Cells.IBSubjects, Rule: "ib-subjects-cell"},
	}
}
