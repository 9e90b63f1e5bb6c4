package caldav

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"wa-assistant/internal/model"
)

const prodID = "-//wa-assistant//ES"

// buildCalendar turns a draft into a single-VEVENT calendar object.
// Timestamps are normalized to UTC so the encoder emits the strict
// YYYYMMDDTHHMMSSZ form; go-ical handles text escaping.
func buildCalendar(draft model.EventDraft) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")

	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, draft.UID)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, draft.Start.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeEnd, draft.End().UTC())
	ve.Props.SetText(ical.PropSummary, flatten(draft.Title))
	if draft.Location != "" {
		ve.Props.SetText(ical.PropLocation, flatten(draft.Location))
	}
	if draft.Description != "" {
		ve.Props.SetText(ical.PropDescription, flatten(draft.Description))
	}

	cal.Children = append(cal.Children, ve)
	return cal
}

// encodeCalendar serializes a calendar object to its wire form.
func encodeCalendar(cal *ical.Calendar) ([]byte, error) {
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("caldav: failed to encode calendar object: %w", err)
	}
	return buf.Bytes(), nil
}

// parseRemoteEvent extracts the first VEVENT of a provider calendar object.
// The bool result is false when the object carries no usable event; callers
// skip those instead of failing the whole batch.
func parseRemoteEvent(cal *ical.Calendar, href string) (RemoteEvent, bool) {
	for _, comp := range cal.Children {
		if comp.Name != ical.CompEvent {
			continue
		}

		ev := RemoteEvent{
			Href:     href,
			UID:      propText(comp, ical.PropUID),
			Title:    propText(comp, ical.PropSummary),
			Location: propText(comp, ical.PropLocation),
		}

		start := comp.Props.Get(ical.PropDateTimeStart)
		if start == nil {
			return RemoteEvent{}, false
		}
		t, err := start.DateTime(time.UTC)
		if err != nil {
			return RemoteEvent{}, false
		}
		ev.Start = t.UTC()

		if end := comp.Props.Get(ical.PropDateTimeEnd); end != nil {
			if t, err := end.DateTime(time.UTC); err == nil {
				ev.End = t.UTC()
			}
		}
		if ev.End.IsZero() {
			ev.End = ev.Start.Add(time.Duration(model.DefaultDurationMinutes) * time.Minute)
		}

		minutes := int(ev.End.Sub(ev.Start).Round(time.Minute) / time.Minute)
		if minutes < 1 {
			minutes = 1
		}
		ev.DurationMinutes = minutes

		return ev, true
	}
	return RemoteEvent{}, false
}

// propText reads a text property, falling back to the raw value when the
// provider mislabels the value type.
func propText(comp *ical.Component, name string) string {
	p := comp.Props.Get(name)
	if p == nil {
		return ""
	}
	if v, err := p.Text(); err == nil {
		return v
	}
	return p.Value
}

// flatten removes embedded newlines so multi-line input stays a single
// calendar text value.
func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
