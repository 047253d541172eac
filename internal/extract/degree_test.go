package extract

import (
	"regexp"
	"strings"
	"testing"
)

func TestMatchDegreeType(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Economics BSc", "BSc"},
		{"bsc Economics", "BSc"},
		{"Chemistry MSCI", "MSci"},
		{"MBBS Medicine", "MBBS"},
		{"MB Medicine", "MB"},
		{"BASc Arts and Sciences", "BASc"},
		{"LLB Laws", "LLB"},
		{"MEng Engineering BEng", "MEng"},
		{"Basque Studies", ""},
		{"Mathematics", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := MatchDegreeType(tt.title); got != tt.want {
				t.Errorf("MatchDegreeType(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestMatchDegreeType_CanonicalCasing(t *testing.T) {
	for _, code := range DegreeVocabulary {
		for _, variant := range []string{code, strings.ToLower(code), strings.ToUpper(code)} {
			got := MatchDegreeType("Course " + variant + " (Hons)")
			if got != code {
				t.Errorf("MatchDegreeType(%q) = %q, want %q", variant, got, code)
			}
			if !IsDegreeType(got) {
				t.Errorf("IsDegreeType(%q) = false for a matcher result", got)
			}
		}
	}
}

func TestIsDegreeType(t *testing.T) {
	if !IsDegreeType("MSci") {
		t.Error("Expected MSci to be a vocabulary member")
	}
	if IsDegreeType("MSCi") {
		t.Error("Expected non-canonical casing to be rejected")
	}
	if IsDegreeType("MMath") {
		t.Error("Expected MMath to be outside the vocabulary")
	}
}

func TestCleanTitle(t *testing.T) {
	honours := regexp.MustCompile(`,\s*BA\s*\(Hons\)\s*$`)

	tests := []struct {
		name       string
		title      string
		degreeType string
		suffixes   []*regexp.Regexp
		want       string
	}{
		{"trailing code", "Economics BSc", "BSc", nil, "Economics"},
		{"other casing", "Economics bsc (Hons)", "BSc", nil, "Economics (Hons)"},
		{"leading code", "LLB Laws", "LLB", nil, "Laws"},
		{"suffix", "Computer Science, BA (Hons)", "BA", []*regexp.Regexp{honours}, "Computer Science"},
		{"no degree type", "  Basque  Studies ", "", nil, "  Basque  Studies "},
		{"whole word only", "Basque BA", "BA", nil, "Basque"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanTitle(tt.title, tt.degreeType, tt.suffixes...); got != tt.want {
				t.Errorf("CleanTitle(%q, %q) = %q, want %q", tt.title, tt.degreeType, got, tt.want)
			}
		})
	}
}
