package extract

import (
	"fmt"
	"regexp"
)

// A grade run is 3-5 characters over {A,B,C,D,E,*}, starting with a letter.
// Anchored runs stop at the first character outside the set, since flattened
// markup often glues the next word on ("A*AAIB: 40").
const gradeRun = `([A-E][A-E*]{2,4})`

var (
	labelledGrade = regexp.MustCompile(`A[ -]levels?:\s*` + gradeRun)
	leadingGrade  = regexp.MustCompile(`^` + gradeRun)

	// Unanchored scans keep word guards so capitalised words do not match
	anyGrade = regexp.MustCompile(`(?:^|[^A-Za-z*])` + gradeRun + `(?:[^A-Za-z*]|$)`)

	labelledPoints = regexp.MustCompile(`IB:\s*(\d{2})(?:\D|$)`)
	leadingPoints  = regexp.MustCompile(`^(\d{2})(?:\D|$)`)
	anyPoints      = regexp.MustCompile(`(?:^|\D)(\d{2})(?:\D|$)`)
)

// LabelledGrade returns the grade following an "A level:" / "A-levels:" label
func LabelledGrade(span string) string {
	return firstGroup(labelledGrade, span)
}

// LeadingGrade returns the grade at the very start of span
func LeadingGrade(span string) string {
	return firstGroup(leadingGrade, span)
}

// FindGrade returns the first grade-shaped token anywhere in span
func FindGrade(span string) string {
	return firstGroup(anyGrade, span)
}

// HasGrade reports whether span contains a grade-shaped token
func HasGrade(span string) bool {
	return anyGrade.MatchString(span)
}

// LabelledPoints returns the two-digit total following an "IB:" label
func LabelledPoints(span string) string {
	return firstGroup(labelledPoints, span)
}

// LeadingPoints returns a two-digit total at the very start of span
func LeadingPoints(span string) string {
	return firstGroup(leadingPoints, span)
}

// FindPoints returns the first standalone two-digit number in span
func FindPoints(span string) string {
	return firstGroup(anyPoints, span)
}

// ComposeIBSubjects renders "<points> points - <subjects>", or "<points> points"
// when no subject text was derived. No points means no IB subject text.
func ComposeIBSubjects(points, subjects string) string {
	switch {
	case points == "":
		return ""
	case subjects == "":
		return fmt.Sprintf("%s points", points)
	default:
		return fmt.Sprintf("%s points - %s", points, subjects)
	}
}

func firstGroup(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}
