package model

import "time"

// DefaultDurationMinutes is used when no duration could be extracted.
const DefaultDurationMinutes = 60

// EventDraft is the canonical in-flight representation of a user's intent to
// create or modify a calendar event. It lives only for the duration of a
// single request and is never persisted locally.
type EventDraft struct {
	Title           string    // never empty; extraction falls back to a placeholder
	Start           time.Time // absolute instant, normalized to UTC at the provider boundary
	DurationMinutes int       // > 0, default 60
	Location        string    // possibly empty
	Description     string    // possibly empty
	UID             string    // stable identity correlating draft and remote object
}

// End derives the event end from start and duration.
func (d EventDraft) End() time.Time {
	return d.Start.Add(time.Duration(d.DurationMinutes) * time.Minute)
}

// SetEnd back-computes the duration from an explicit end, flooring at one
// minute so the invariant DurationMinutes > 0 holds.
func (d *EventDraft) SetEnd(end time.Time) {
	minutes := int(end.Sub(d.Start).Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	d.DurationMinutes = minutes
}
