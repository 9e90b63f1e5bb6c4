package nlp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultMinutes is the event duration used when none is recognized.
	DefaultMinutes = 60

	// defaultHour is applied when a date is found without a time of day.
	// Midnight would schedule everything at 00:00, which nobody means.
	defaultHour = 9
)

var (
	reExplicitDate = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?\b`)
	reClockTime    = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	reAmPmTime     = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(am|pm)\b`)
	reDayAfter     = regexp.MustCompile(`(?i)\b(?:pasado\s+mañana|day\s+after\s+tomorrow)\b`)
	reTomorrow     = regexp.MustCompile(`(?i)\b(?:mañana|tomorrow)\b`)
	reToday        = regexp.MustCompile(`(?i)\b(?:hoy|today)\b`)
	reMonthDate    = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(?:de\s+)?(ene|feb|mar|abr|may|jun|jul|ago|sept?|oct|nov|dic|jan|apr|aug|dec)[a-zá-ú]*\b`)

	reDateHints = regexp.MustCompile(`(?i)\b(hoy|mañana|pasado|today|tomorrow|am|pm|ene|feb|mar|abr|may|jun|jul|ago|sept?|oct|nov|dic|jan|apr|aug|dec|lunes|martes|mi[eé]rcoles|jueves|viernes|s[aá]bado|domingo|monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b|\d{1,2}:\d{2}|\d{1,2}/\d{1,2}`)
)

var weekdays = map[string]time.Weekday{
	"domingo": time.Sunday, "sunday": time.Sunday,
	"lunes": time.Monday, "monday": time.Monday,
	"martes": time.Tuesday, "tuesday": time.Tuesday,
	"miércoles": time.Wednesday, "miercoles": time.Wednesday, "wednesday": time.Wednesday,
	"jueves": time.Thursday, "thursday": time.Thursday,
	"viernes": time.Friday, "friday": time.Friday,
	"sábado": time.Saturday, "sabado": time.Saturday, "saturday": time.Saturday,
}

var months = map[string]time.Month{
	"ene": time.January, "jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"abr": time.April, "apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"ago": time.August, "aug": time.August,
	"sep": time.September, "sept": time.September,
	"oct": time.October,
	"nov": time.November,
	"dic": time.December, "dec": time.December,
}

// Resolver converts natural-language temporal expressions into absolute
// instants in a fixed timezone.
type Resolver struct {
	loc *time.Location
}

// NewResolver creates a resolver for the given IANA timezone string,
// e.g. "America/Mexico_City".
func NewResolver(timezone string) (*Resolver, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Resolver{loc: loc}, nil
}

// Location returns the resolver's timezone.
func (r *Resolver) Location() *time.Location { return r.loc }

// Resolve extracts a temporal expression from free text and resolves it
// against the reference instant. Expressions that would land in the past are
// rolled forward to their next future occurrence; a date without a time of
// day gets the default hour. The second return is false when no temporal
// expression is recognized; malformed dates collapse to false, never panic.
func (r *Resolver) Resolve(text string, ref time.Time) (time.Time, bool) {
	ref = ref.In(r.loc)
	lower := strings.ToLower(text)

	hour, minute, hasTime := findTime(lower)

	year, month, day, hasDate, explicitYear := r.findDate(lower, ref)

	if !hasDate && !hasTime {
		return time.Time{}, false
	}

	if !hasDate {
		year, month, day = ref.Year(), ref.Month(), ref.Day()
	}
	if !hasTime {
		hour, minute = defaultHour, 0
	}

	candidate := time.Date(year, month, day, hour, minute, 0, 0, r.loc)

	// time.Date normalizes out-of-range components (e.g. 31/2 becomes 3/3);
	// treat any shift as an invalid construction.
	if hasDate && (candidate.Day() != day || candidate.Month() != month) {
		return time.Time{}, false
	}

	// Forward-roll: a bare time of day resolves to the upcoming occurrence,
	// and a day/month without a year rolls into next year once it has passed.
	if !candidate.After(ref) {
		if !hasDate {
			candidate = candidate.AddDate(0, 0, 1)
		} else if !explicitYear {
			candidate = candidate.AddDate(1, 0, 0)
			if candidate.Day() != day || candidate.Month() != month {
				return time.Time{}, false
			}
		}
	}

	return candidate, true
}

// HasDateHints reports whether the text contains lexical cues of a date or
// time (month names, am/pm, digit-colon-digit, slash-separated numbers).
// The router uses this to choose between a clarification prompt and help.
func HasDateHints(text string) bool {
	return reDateHints.MatchString(text)
}

// findTime extracts a time of day: HH:mm first, then "N am/pm".
func findTime(lower string) (hour, minute int, ok bool) {
	if m := reClockTime.FindStringSubmatch(lower); m != nil {
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		if h <= 23 && min <= 59 {
			return h, min, true
		}
	}
	if m := reAmPmTime.FindStringSubmatch(lower); m != nil {
		h, _ := strconv.Atoi(m[1])
		if h >= 1 && h <= 12 {
			h = h % 12
			if m[2] == "pm" {
				h += 12
			}
			return h, 0, true
		}
	}
	return 0, 0, false
}

// findDate extracts the date portion. explicitYear reports whether the text
// pinned the year, which disables the roll-into-next-year policy.
func (r *Resolver) findDate(lower string, ref time.Time) (year int, month time.Month, day int, ok, explicitYear bool) {
	if m := reExplicitDate.FindStringSubmatch(lower); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		if d >= 1 && d <= 31 && mo >= 1 && mo <= 12 {
			y := ref.Year()
			if m[3] != "" {
				y, _ = strconv.Atoi(m[3])
				if y < 100 {
					y += 2000
				}
				explicitYear = true
			}
			return y, time.Month(mo), d, true, explicitYear
		}
		return 0, 0, 0, false, false
	}

	if m := reMonthDate.FindStringSubmatch(lower); m != nil {
		d, _ := strconv.Atoi(m[1])
		if mo, known := months[m[2]]; known && d >= 1 && d <= 31 {
			return ref.Year(), mo, d, true, false
		}
	}

	// Relative day words. "pasado mañana" must win over plain "mañana".
	switch {
	case reDayAfter.MatchString(lower):
		t := ref.AddDate(0, 0, 2)
		return t.Year(), t.Month(), t.Day(), true, true
	case reTomorrow.MatchString(lower):
		t := ref.AddDate(0, 0, 1)
		return t.Year(), t.Month(), t.Day(), true, true
	case reToday.MatchString(lower):
		return ref.Year(), ref.Month(), ref.Day(), true, true
	}

	// Bare weekday rolls forward to the upcoming one, never the past.
	// The earliest mention in the text wins when several appear.
	best, bestIdx := time.Weekday(-1), len(lower)+1
	for name, wd := range weekdays {
		if i := wordIndex(lower, name); i >= 0 && i < bestIdx {
			best, bestIdx = wd, i
		}
	}
	if bestIdx <= len(lower) {
		days := int(best-ref.Weekday()+7) % 7
		if days == 0 {
			days = 7
		}
		t := ref.AddDate(0, 0, days)
		return t.Year(), t.Month(), t.Day(), true, true
	}

	return 0, 0, 0, false, false
}

// wordIndex returns the byte index of word in s when it appears on word
// boundaries, or -1.
func wordIndex(s, word string) int {
	for from := 0; from <= len(s)-len(word); {
		i := strings.Index(s[from:], word)
		if i < 0 {
			return -1
		}
		i += from
		startOK := i == 0 || !isWordChar(s[i-1])
		j := i + len(word)
		endOK := j >= len(s) || !isWordChar(s[j])
		if startOK && endOK {
			return i
		}
		from = i + 1
	}
	return -1
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
