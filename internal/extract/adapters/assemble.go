package adapters

import (
	"fmt"
	"runtime/debug"

	"github.com/PuerkitoBio/goquery"
	"github.com/ppiankov/degreefacts/internal/extract"
	"github.com/ppiankov/degreefacts/internal/model"
)

// Extraction is the record built for one page plus how each field was derived
type Extraction struct {
	Facts      model.DegreeFacts
	Provenance model.Provenance
}

// Extract runs the adapter's title, locate, grade and subject steps and
// assembles the record. A panic inside the adapter is recovered: the
// all-absent record is returned together with an error.
func Extract(a Adapter, doc *goquery.Document) (ext Extraction, err error) {
	defer func() {
		if r := recover(); r != nil {
			ext = Extraction{}
			err = fmt.Errorf("%s adapter panicked: %v\n%s", a.Name(), r, debug.Stack())
		}
	}()

	if doc == nil {
		return Extraction{}, fmt.Errorf("%s: nil document", a.Name())
	}

	title := a.Title(doc)

	var optional extract.Match
	if v, ok := a.(VariantExtractor); ok && a.Schema().Has(model.ColumnOptionalDegreeType) {
		optional = v.OptionalDegreeType(doc)
	}

	sec := a.Locate(doc)
	var grades Grades
	var subjects Subjects
	if sec.Found() {
		grades = a.ExtractGrades(sec)
		subjects = a.ExtractSubjects(sec, grades)
	}

	facts, rules := Assemble(title, optional, grades, subjects)
	prov := model.Provenance{Locator: sec.Locator}
	if len(rules) > 0 {
		prov.Rules = make(map[model.Column]string, len(rules))
		for col, rule := range rules {
			prov.Rules[col] = a.Name() + ":" + rule
		}
	}
	return Extraction{Facts: facts, Provenance: prov}, nil
}

// Assemble merges the per-step outputs into one record. A-level subject text
// other than the "no specific subjects" sentinel is dropped when no A-level
// grade was found. The returned map names the rule behind each present field.
func Assemble(title TitleFacts, optional extract.Match, grades Grades, subjects Subjects) (model.DegreeFacts, map[model.Column]string) {
	facts := model.DegreeFacts{
		DegreeType:         title.DegreeType,
		OptionalDegreeType: optional.Value,
		Title:              title.Title,
		ALevelGrades:       grades.ALevel.Value,
		ALevelSubjects:     subjects.ALevel.Value,
		IBPoints:           grades.IB.Value,
		IBSubjects:         subjects.IB.Value,
	}
	rules := map[model.Column]string{}

	if facts.ALevelSubjects != "" && facts.ALevelSubjects != model.NoSpecificSubjects && facts.ALevelGrades == "" {
		facts.ALevelSubjects = ""
	}

	record := func(col model.Column, value, rule string) {
		if value != "" && rule != "" {
			rules[col] = rule
		}
	}
	record(model.ColumnOptionalDegreeType, facts.OptionalDegreeType, optional.Rule)
	record(model.ColumnALevelGrades, facts.ALevelGrades, grades.ALevel.Rule)
	record(model.ColumnALevelSubjects, facts.ALevelSubjects, subjects.ALevel.Rule)
	record(model.ColumnIBPoints, facts.IBPoints, grades.IB.Rule)
	record(model.ColumnIBSubjects, facts.IBSubjects, subjects.IB.Rule)

	return facts, rules
}
