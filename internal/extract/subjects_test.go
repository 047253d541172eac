package extract

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ppiankov/degreefacts/internal/model"
)

func TestSubjectChain(t *testing.T) {
	tests := []struct {
		name      string
		span      string
		wantValue string
		wantRule  string
	}{
		{
			name:      "you will need list",
			span:      "A level: A*A*A\nFor this course you will need:\n• A Level Mathematics\n• A Level Further Mathematics\nWe also recommend Physics.",
			wantValue: "A Level Mathematics A Level Further Mathematics",
			wantRule:  "you-will-need",
		},
		{
			name:      "you will need to end",
			span:      "you will need the following: Chemistry and Biology",
			wantValue: "Chemistry and Biology",
			wantRule:  "you-will-need",
		},
		{
			name:      "negative phrase curly apostrophe",
			span:      "A level: A*AA. We don’t ask for any specific subjects, but Mathematics is useful.",
			wantValue: model.NoSpecificSubjects,
			wantRule:  "no-specific-subjects",
		},
		{
			name:      "negative phrase in other prose",
			span:      "Applicants need no specific subjects for this course. Subjects required: none.",
			wantValue: model.NoSpecificSubjects,
			wantRule:  "no-specific-subjects",
		},
		{
			name:      "specific subjects mention",
			span:      "A level: AAA. Specific subjects required: Chemistry and one of Biology, Physics or Mathematics. College entry requirements vary.",
			wantValue: "Specific subjects required: Chemistry and one of Biology, Physics or Mathematics.",
			wantRule:  "specific-subjects",
		},
		{
			name:      "lead-in beats sentinel",
			span:      "you will need: Mathematics. Otherwise no specific subjects.",
			wantValue: "Mathematics. Otherwise no specific subjects.",
			wantRule:  "you-will-need",
		},
		{
			name: "nothing applies",
			span: "A level: AAA. Interviews are held in December.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SubjectChain.First(tt.span)
			if got.Value != tt.wantValue {
				t.Errorf("Value = %q, want %q", got.Value, tt.wantValue)
			}
			if got.Rule != tt.wantRule {
				t.Errorf("Rule = %q, want %q", got.Rule, tt.wantRule)
			}
		})
	}
}

func TestSubjectChain_TruncatesSpecificMention(t *testing.T) {
	span := "Specific subjects are needed: " + strings.Repeat("Mathematics, ", 20)

	got := SubjectChain.First(span)
	if got.Rule != "specific-subjects" {
		t.Fatalf("Rule = %q, want specific-subjects", got.Rule)
	}
	if !strings.HasSuffix(got.Value, "...") {
		t.Errorf("Expected ellipsis, got %q", got.Value)
	}
	if n := utf8.RuneCountInString(got.Value); n != SubjectSummaryLimit+3 {
		t.Errorf("Expected %d runes, got %d", SubjectSummaryLimit+3, n)
	}
}
