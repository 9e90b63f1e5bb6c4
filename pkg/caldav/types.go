package caldav

import "time"

// RemoteEvent is the provider-side materialization of an event. Href is the
// opaque remote locator assigned on creation; an event without one cannot be
// updated or deleted.
type RemoteEvent struct {
	UID             string
	Href            string
	Title           string
	Start           time.Time
	End             time.Time
	DurationMinutes int
	Location        string
}

// Changes carries the fields to substitute on update; nil fields inherit
// from the existing remote event.
type Changes struct {
	Title           *string
	Start           *time.Time
	DurationMinutes *int
	Location        *string
}
