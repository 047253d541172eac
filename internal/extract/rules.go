package extract

// Detector is one rule of a prioritized fallback chain: Applies decides whether
// the rule claims the span, Extract produces the field value.
type Detector struct {
	Name    string
	Applies func(span string) bool
	Extract func(span string) string
}

// Chain is an ordered list of detectors tried in priority order
type Chain []Detector

// Match is the outcome of running a chain
type Match struct {
	Value string // Extracted value ("" when the claiming rule produced nothing)
	Rule  string // Name of the detector that claimed the span ("" when none did)
}

// Found reports whether a non-empty value was produced
func (m Match) Found() bool {
	return m.Value != ""
}

// First runs the detectors in order. The first one whose predicate holds wins,
// even if its extractor comes back empty; later detectors are not consulted.
func (c Chain) First(span string) Match {
	for _, d := range c {
		if d.Applies != nil && !d.Applies(span) {
			continue
		}
		return Match{Value: d.Extract(span), Rule: d.Name}
	}
	return Match{}
}

// Pattern builds a detector whose predicate and extractor are the same
// function: it applies only when the extractor yields a value.
func Pattern(name string, extract func(span string) string) Detector {
	return Detector{
		Name:    name,
		Applies: func(span string) bool { return extract(span) != "" },
		Extract: extract,
	}
}
