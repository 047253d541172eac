package extract

import (
	"regexp"

	"github.com/ppiankov/degreefacts/internal/model"
)

// SubjectSummaryLimit caps the generic "specific subjects" capture
const SubjectSummaryLimit = 100

// SubjectStops end a captured subject requirement
var SubjectStops = []string{"We also recommend", "College entry"}

var (
	youWillNeed      = regexp.MustCompile(`you will need[^:]*:\s*`)
	noSpecificPhrase = regexp.MustCompile(`(?i)(?:we don['’]t ask for any specific subjects|no specific subjects)`)
	specificRequired = regexp.MustCompile(`(?i)specific subjects?.*?(?:required|needed)`)
	specificMention  = regexp.MustCompile(`(?i)specific subjects?`)
)

// SubjectChain is the ordered A-level subject detector chain used for prose
// requirement sections: explicit "you will need ...:" list, then the negative
// phrase, then a generic "specific subjects ... required" mention.
var SubjectChain = Chain{
	{
		Name:    "you-will-need",
		Applies: youWillNeed.MatchString,
		Extract: requiredSubjects,
	},
	{
		Name:    "no-specific-subjects",
		Applies: noSpecificPhrase.MatchString,
		Extract: func(string) string { return model.NoSpecificSubjects },
	},
	{
		Name:    "specific-subjects",
		Applies: specificRequired.MatchString,
		Extract: specificSubjects,
	},
}

func requiredSubjects(span string) string {
	loc := youWillNeed.FindStringIndex(span)
	if loc == nil {
		return ""
	}
	return CleanListText(cutAtFirst(span[loc[1]:], SubjectStops, false))
}

func specificSubjects(span string) string {
	loc := specificMention.FindStringIndex(span)
	if loc == nil {
		return ""
	}
	text := CollapseWhitespace(cutAtFirst(span[loc[0]:], SubjectStops, true))
	return Truncate(text, SubjectSummaryLimit)
}
