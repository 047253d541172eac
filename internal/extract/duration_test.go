package extract

import "testing"

func TestFindDurationComparison(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantRule   string
		wantLonger string
	}{
		{
			name:       "course duration",
			text:       "Course duration: 3 years (BA); 4 years (MMath)",
			wantRule:   "course-duration",
			wantLonger: "MMath",
		},
		{
			name:       "years or years",
			text:       "This course lasts 4 years (MChem) or 3 years (BA) depending on progress.",
			wantRule:   "years-or-years",
			wantLonger: "MChem",
		},
		{
			name:       "studied for",
			text:       "Physics can be studied for 4 years (MPhys) or 3 years without the final year (BA).",
			wantRule:   "studied-for",
			wantLonger: "MPhys",
		},
		{
			name:       "flattened whitespace",
			text:       "Course duration: 3 years (BA);\n4 years (MEarthSci)",
			wantRule:   "course-duration",
			wantLonger: "MEarthSci",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmp, ok := FindDurationComparison(tt.text)
			if !ok {
				t.Fatal("Expected a duration comparison")
			}
			if cmp.Rule != tt.wantRule {
				t.Errorf("Rule = %q, want %q", cmp.Rule, tt.wantRule)
			}
			if got := cmp.Longer(); got != tt.wantLonger {
				t.Errorf("Longer() = %q, want %q", got, tt.wantLonger)
			}
		})
	}
}

func TestDurationComparison_TieGoesToSecond(t *testing.T) {
	cmp, ok := FindDurationComparison("Course duration: 4 years (BA); 4 years (MBiochem)")
	if !ok {
		t.Fatal("Expected a duration comparison")
	}
	if got := cmp.Longer(); got != "MBiochem" {
		t.Errorf("Longer() = %q, want the second variant MBiochem", got)
	}
}

func TestFindDurationComparison_None(t *testing.T) {
	if _, ok := FindDurationComparison("Course duration: 3 years (BA)"); ok {
		t.Error("Expected no comparison for a single variant")
	}
}
