package nlp

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Duration idiom patterns, tried in precedence order: first match wins.
// Matching is case-insensitive and tolerant of internal whitespace.
var (
	reHourPlusMin  = regexp.MustCompile(`(?i)\b(\d+(?:[.,]\d+)?)\s*h(?:oras?|ours?)?\s*(?:y\s+|and\s+)?(\d+)\s*m?(?:in(?:utos?|utes?))?\b`)
	reColonHours   = regexp.MustCompile(`(?i)\b(\d+)\s*:\s*(\d+)\s*h\b`)
	reDecimalHours = regexp.MustCompile(`(?i)\b(\d+(?:[.,]\d+)?)\s*h(?:oras?|ours?)?\b`)
	reBareMinutes  = regexp.MustCompile(`(?i)\b(\d+)\s*m(?:in(?:utos?|utes?)?)?\b`)
	reHalfHour     = regexp.MustCompile(`(?i)\b(?:media\s?hora|half\s+an?\s+hour)\b`)
	reHourAndHalf  = regexp.MustCompile(`(?i)\b(?:hora\s+y\s+media|(?:an?\s+)?hour\s+and\s+a\s+half)\b`)
	reOneHour      = regexp.MustCompile(`(?i)\b(?:una\s+hora|one\s+hour|an\s+hour)\b`)
	reSpelledHours = regexp.MustCompile(`(?i)\b(\d+)\s*horas?(?:\s*y\s*(\d+)\s*min)?\b`)
)

// ParseDuration extracts an event duration in minutes from free text.
// It is a total function: unrecognized input yields the 60-minute default.
func ParseDuration(text string) int {
	s := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	if s == "" {
		return DefaultMinutes
	}

	if m := reHourPlusMin.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		mins, _ := strconv.Atoi(m[2])
		return int(math.Round(hours*60)) + mins
	}
	if m := reColonHours.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.Atoi(m[1])
		mins, _ := strconv.Atoi(m[2])
		return hours*60 + mins
	}
	if m := reDecimalHours.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		return int(math.Round(hours * 60))
	}
	if m := reBareMinutes.FindStringSubmatch(s); m != nil {
		mins, _ := strconv.Atoi(m[1])
		if mins > 0 {
			return mins
		}
	}

	if reHalfHour.MatchString(s) {
		return 30
	}
	if reHourAndHalf.MatchString(s) {
		return 90
	}
	if reOneHour.MatchString(s) {
		return 60
	}

	if m := reSpelledHours.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.Atoi(m[1])
		mins := 0
		if m[2] != "" {
			mins, _ = strconv.Atoi(m[2])
		}
		return hours*60 + mins
	}

	return DefaultMinutes
}
