package extract

import (
	"regexp"
	"strings"
)

// DegreeVocabulary is the closed set of degree-type codes in canonical casing.
// Alternation order matters only for codes sharing a prefix; the word-boundary
// check makes the longer code win (MB vs MBBS, BA vs BASc).
var DegreeVocabulary = []string{
	"BSc", "BA", "BEng", "MEng", "MSc", "MA", "PhD", "MPhil", "LLB", "LLM",
	"MB", "MBBS", "MD", "BDS", "DDS", "PharmD", "MSci", "MPharm", "DVM",
	"BFA", "BASc", "JD",
}

var (
	degreePattern = buildDegreePattern(DegreeVocabulary)
	canonicalCase = buildCanonicalIndex(DegreeVocabulary)
)

func buildDegreePattern(vocab []string) *regexp.Regexp {
	quoted := make([]string, len(vocab))
	for i, code := range vocab {
		quoted[i] = regexp.QuoteMeta(code)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

func buildCanonicalIndex(vocab []string) map[string]string {
	index := make(map[string]string, len(vocab))
	for _, code := range vocab {
		index[strings.ToLower(code)] = code
	}
	return index
}

// MatchDegreeType returns the first whole-word vocabulary code found in title,
// in canonical casing, or "" when none is present.
func MatchDegreeType(title string) string {
	m := degreePattern.FindStringSubmatch(title)
	if m == nil {
		return ""
	}
	return canonicalCase[strings.ToLower(m[1])]
}

// IsDegreeType reports whether code is a canonical vocabulary member
func IsDegreeType(code string) bool {
	canonical, ok := canonicalCase[strings.ToLower(code)]
	return ok && canonical == code
}

// CleanTitle removes institution suffix patterns and the degree-type token
// (whole word, any casing) from title. Without a degree type the title is
// returned unmodified.
func CleanTitle(title, degreeType string, suffixes ...*regexp.Regexp) string {
	if degreeType == "" {
		return title
	}
	title = StripSuffixes(title, suffixes...)
	token := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(degreeType) + `\b`)
	return CollapseWhitespace(token.ReplaceAllString(title, ""))
}

// StripSuffixes removes every matching suffix pattern and trims the result
func StripSuffixes(title string, suffixes ...*regexp.Regexp) string {
	for _, re := range suffixes {
		title = re.ReplaceAllString(title, "")
	}
	return strings.TrimSpace(title)
}
