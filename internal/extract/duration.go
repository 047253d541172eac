package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Variant is one (duration, label) pair from a course-duration sentence
type Variant struct {
	Years int
	Label string
}

// DurationComparison is a matched sentence naming two course variants
type DurationComparison struct {
	Rule   string
	First  Variant
	Second Variant
}

// durationRules are tried in order; each captures years1, label1, years2, label2.
var durationRules = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{
		name:    "course-duration",
		pattern: regexp.MustCompile(`(?i)Course duration:\s*(\d+)\s*years?\s*\(([^)]+)\);\s*(\d+)\s*years?\s*\(([^)]+)\)`),
	},
	{
		name:    "years-or-years",
		pattern: regexp.MustCompile(`(?i)(\d+)\s*years?\s*\(([^)]+)\)\s*or\s*(\d+)\s*years?\s*\(([^)]+)\)`),
	},
	{
		name:    "studied-for",
		pattern: regexp.MustCompile(`(?i)studied for\s*(\d+)\s*years?\s*\(([^)]+)\)\s*or\s*(\d+)\s*years?[^(]*\(([^)]+)\)`),
	},
}

// FindDurationComparison scans page text for the first duration sentence.
// Newlines and non-breaking spaces are flattened before matching.
func FindDurationComparison(pageText string) (DurationComparison, bool) {
	text := strings.ReplaceAll(NormalizeSpaces(pageText), "\n", " ")

	for _, rule := range durationRules {
		m := rule.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		years1, err1 := strconv.Atoi(m[1])
		years2, err2 := strconv.Atoi(m[3])
		if err1 != nil || err2 != nil {
			continue
		}
		return DurationComparison{
			Rule:   rule.name,
			First:  Variant{Years: years1, Label: strings.TrimSpace(m[2])},
			Second: Variant{Years: years2, Label: strings.TrimSpace(m[4])},
		}, true
	}
	return DurationComparison{}, false
}

// Longer returns the label of the longer variant. Equal durations resolve to
// the second variant.
func (d DurationComparison) Longer() string {
	if d.First.Years > d.Second.Years {
		return d.First.Label
	}
	return d.Second.Label
}
