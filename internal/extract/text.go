package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	bulletChars   = strings.NewReplacer("•", " ", "‣", " ", "◦", " ", "·", " ")
)

// NormalizeSpaces replaces non-breaking spaces with regular spaces
func NormalizeSpaces(s string) string {
	return strings.ReplaceAll(s, "\u00a0", " ")
}

// CollapseWhitespace folds every whitespace run into a single space and trims the result
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// CleanListText removes bullet glyphs and collapses whitespace
func CleanListText(s string) string {
	return CollapseWhitespace(bulletChars.Replace(s))
}

// Truncate shortens s to at most limit runes, appending "..." when it was cut
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}

// Segment returns the text following the first occurrence of label, up to the
// earliest of the stop phrases (or the end of text). ok is false when label is absent.
func Segment(text, label string, stops ...string) (segment string, ok bool) {
	idx := strings.Index(text, label)
	if idx < 0 {
		return "", false
	}
	rest := text[idx+len(label):]
	return cutAtFirst(rest, stops, false), true
}

// cutAtFirst truncates s at the earliest occurrence of any stop phrase
func cutAtFirst(s string, stops []string, foldCase bool) string {
	if foldCase {
		var alts []string
		for _, stop := range stops {
			if stop != "" {
				alts = append(alts, regexp.QuoteMeta(stop))
			}
		}
		if len(alts) == 0 {
			return s
		}
		re := regexp.MustCompile(`(?i)` + strings.Join(alts, "|"))
		if loc := re.FindStringIndex(s); loc != nil {
			return s[:loc[0]]
		}
		return s
	}

	end := len(s)
	for _, stop := range stops {
		if stop == "" {
			continue
		}
		if i := strings.Index(s, stop); i >= 0 && i < end {
			end = i
		}
	}
	return s[:end]
}
