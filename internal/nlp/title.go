package nlp

import (
	"regexp"
	"strings"
)

// DefaultTitle is used when nothing of the message survives stripping.
const DefaultTitle = "Evento"

var (
	reLocClause  = regexp.MustCompile(`(?i)\s+(?:en|at|in)\s+[^,;]+$`)
	reLocAt      = regexp.MustCompile(`\s*@[^\s,;]+.*$`)
	reRelWords   = regexp.MustCompile(`(?i)\b(?:pasado\s+mañana|day\s+after\s+tomorrow|hoy|mañana|today|tomorrow)\b`)
	reWeekdays   = regexp.MustCompile(`(?i)\b(?:lunes|martes|mi[eé]rcoles|jueves|viernes|s[aá]bado|domingo|monday|tuesday|wednesday|thursday|friday|saturday|sunday|lun|mar|mié|mie|jue|vie|s[aá]b|dom|mon|tue|wed|thu|fri|sat|sun)\b`)
	reDateLit    = regexp.MustCompile(`\b\d{1,2}/\d{1,2}(?:/\d{2,4})?\b`)
	reClockLit   = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)
	reHourLit    = regexp.MustCompile(`(?i)\b\d{1,2}\s*(?:am|pm|hrs?|h)\b`)
	reConnectors = regexp.MustCompile(`(?i)\s+(?:a las?|al|para|to)\s*$`)
	reSpaces     = regexp.MustCompile(`\s{2,}`)
	reTrailPunct = regexp.MustCompile(`[\s,;.]+$`)
	reLeadPunct  = regexp.MustCompile(`^[\s,;.]+`)
)

// InferTitle strips the recognized location, duration and date/time spans
// from the raw message and returns the residue as the event title. This is
// lossy best-effort text surgery; leftover words are expected. The result is
// never empty.
func InferTitle(raw string, location string) string {
	title := strings.TrimSpace(raw)

	// Location clause first, so its words don't survive as title residue.
	title = reLocClause.ReplaceAllString(title, "")
	title = reLocAt.ReplaceAllString(title, "")
	if location != "" {
		title = strings.ReplaceAll(title, location, "")
	}

	// Duration idioms, in the same shapes ParseDuration recognizes.
	title = reHourPlusMin.ReplaceAllString(title, "")
	title = reColonHours.ReplaceAllString(title, "")
	title = reDecimalHours.ReplaceAllString(title, "")
	title = reBareMinutes.ReplaceAllString(title, "")
	title = reHalfHour.ReplaceAllString(title, "")
	title = reHourAndHalf.ReplaceAllString(title, "")
	title = reOneHour.ReplaceAllString(title, "")

	// Common date/time literals.
	title = reRelWords.ReplaceAllString(title, "")
	title = reDateLit.ReplaceAllString(title, "")
	title = reClockLit.ReplaceAllString(title, "")
	title = reHourLit.ReplaceAllString(title, "")
	title = reWeekdays.ReplaceAllString(title, "")
	title = reConnectors.ReplaceAllString(title, "")

	title = reSpaces.ReplaceAllString(title, " ")
	title = reTrailPunct.ReplaceAllString(title, "")
	title = reLeadPunct.ReplaceAllString(title, "")
	title = strings.TrimSpace(title)

	if title == "" {
		return DefaultTitle
	}
	return title
}
