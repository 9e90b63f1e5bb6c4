package nlp

import (
	"regexp"
	"strings"
)

var (
	// Trailing "en <lugar>" / "at <place>" clause, anchored to end of string
	// up to the previous comma or semicolon.
	rePreposition = regexp.MustCompile(`(?i)\b(?:en|at|in)\s+([^,;]+)$`)

	// A location candidate that is really a date, time or duration literal.
	reNotAPlace = regexp.MustCompile(`^\d`)
)

// ExtractLocation extracts a trailing location phrase from free text.
// A preposition clause wins over an @place token; no match yields "".
func ExtractLocation(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	if m := rePreposition.FindStringSubmatch(text); m != nil {
		place := strings.TrimSpace(m[1])
		if place != "" && !reNotAPlace.MatchString(place) {
			return place
		}
	}

	// Trailing @place token; the last occurrence wins. The character right
	// after @ must start the place, not whitespace or a separator.
	if i := strings.LastIndex(text, "@"); i >= 0 && i+1 < len(text) {
		rest := text[i+1:]
		if !strings.ContainsAny(rest[:1], " \t,;") {
			return strings.TrimRight(rest, ",; ")
		}
	}

	return ""
}
