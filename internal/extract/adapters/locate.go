package adapters

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ppiankov/degreefacts/internal/extract"
)

const locatorTable = "table"

// Strategy is one way of locating the requirements section
type Strategy struct {
	Name   string
	Locate func(doc *goquery.Document) (Section, bool)
}

// LocateFirst runs strategies in order and returns the first success.
// The zero Section means nothing was located.
func LocateFirst(doc *goquery.Document, strategies []Strategy) Section {
	for _, strategy := range strategies {
		sec, ok := strategy.Locate(doc)
		if !ok {
			continue
		}
		if sec.Locator == "" {
			sec.Locator = strategy.Name
		}
		return sec
	}
	return Section{}
}

// SelectorCascade returns one strategy per selector; each takes the full text
// of the first element its selector matches.
func SelectorCascade(selectors ...string) []Strategy {
	strategies := make([]Strategy, 0, len(selectors))
	for _, selector := range selectors {
		selector := selector
		strategies = append(strategies, Strategy{
			Name: "selector:" + selector,
			Locate: func(doc *goquery.Document) (Section, bool) {
				sel := doc.Find(selector).First()
				if sel.Length() == 0 {
					return Section{}, false
				}
				return Section{Text: extract.NormalizeSpaces(sel.Text())}, true
			},
		})
	}
	return strategies
}

// TableWithMarkers takes the first table whose text contains every marker
func TableWithMarkers(markers ...string) Strategy {
	return Strategy{
		Name: locatorTable,
		Locate: func(doc *goquery.Document) (Section, bool) {
			var found Section
			ok := false
			doc.Find("table").EachWithBreak(func(_ int, s *goquery.Selection) bool {
				text := extract.NormalizeSpaces(s.Text())
				for _, marker := range markers {
					if !strings.Contains(text, marker) {
						return true
					}
				}
				found = Section{Text: text}
				ok = true
				return false
			})
			return found, ok
		},
	}
}

// ParagraphScan takes the first element matching selector whose trimmed text
// satisfies accept.
func ParagraphScan(name, selector string, accept func(text string) bool) Strategy {
	return Strategy{
		Name: name,
		Locate: func(doc *goquery.Document) (Section, bool) {
			var found Section
			ok := false
			doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
				text := strings.TrimSpace(extract.NormalizeSpaces(s.Text()))
				if !accept(text) {
					return true
				}
				found = Section{Text: text}
				ok = true
				return false
			})
			return found, ok
		},
	}
}

// ParagraphSet collects the trimmed text of every element matching selector
func ParagraphSet(name, selector string) Strategy {
	return Strategy{
		Name: name,
		Locate: func(doc *goquery.Document) (Section, bool) {
			sel := doc.Find(selector)
			if sel.Length() == 0 {
				return Section{}, false
			}
			paragraphs := make([]string, 0, sel.Length())
			sel.Each(func(_ int, s *goquery.Selection) {
				paragraphs = append(paragraphs, strings.TrimSpace(extract.NormalizeSpaces(s.Text())))
			})
			return Section{Paragraphs: paragraphs}, true
		},
	}
}

// CellPaths addresses the four requirement cells by fixed selector
type CellPaths struct {
	ALevelGrades   string
	ALevelSubjects string
	IBPoints       string
	IBSubjects     string
}

// FixedCells reads each cell independently; it succeeds if any cell exists
func FixedCells(name string, paths CellPaths) Strategy {
	return Strategy{
		Name: name,
		Locate: func(doc *goquery.Document) (Section, bool) {
			cell := func(selector string) string {
				if selector == "" {
					return ""
				}
				sel := doc.Find(selector).First()
				if sel.Length() == 0 {
					return ""
				}
				return extract.CollapseWhitespace(extract.NormalizeSpaces(sel.Text()))
			}
			cells := Cells{
				ALevelGrades:   cell(paths.ALevelGrades),
				ALevelSubjects: cell(paths.ALevelSubjects),
				IBPoints:       cell(paths.IBPoints),
				IBSubjects:     cell(paths.IBSubjects),
			}
			if cells == (Cells{}) {
				return Section{}, false
			}
			return Section{Cells: cells}, true
		},
	}
}
