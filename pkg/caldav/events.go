package caldav

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/emersion/go-webdav/caldav"
	"github.com/google/uuid"

	"wa-assistant/internal/model"
)

// CreateEvent submits the draft as a conditional create: the PUT carries
// If-None-Match so an existing resource with the same name makes the
// provider reject the request instead of overwriting it. The client never
// retries on its own.
func (c *Client) CreateEvent(ctx context.Context, draft model.EventDraft) (RemoteEvent, error) {
	collection, err := c.resolveCollection(ctx)
	if err != nil {
		return RemoteEvent{}, err
	}

	if draft.UID == "" {
		draft.UID = uuid.New().String()
	}

	ics, err := encodeCalendar(buildCalendar(draft))
	if err != nil {
		return RemoteEvent{}, err
	}

	resource := c.absoluteURL(collection + url.PathEscape(draft.UID+".ics"))

	href, err := c.put(ctx, resource, ics, true)
	if err != nil {
		return RemoteEvent{}, err
	}

	c.l.Infof(ctx, "caldav: created event uid=%s title=%q", draft.UID, draft.Title)

	return RemoteEvent{
		UID:             draft.UID,
		Href:            href,
		Title:           draft.Title,
		Start:           draft.Start.UTC(),
		End:             draft.End().UTC(),
		DurationMinutes: draft.DurationMinutes,
		Location:        draft.Location,
	}, nil
}

// ListEvents queries the collection for objects overlapping the window and
// returns them sorted ascending by start. Individual objects that fail to
// parse are skipped, not fatal to the batch.
func (c *Client) ListEvents(ctx context.Context, from, to time.Time) ([]RemoteEvent, error) {
	collection, err := c.resolveCollection(ctx)
	if err != nil {
		return nil, err
	}

	query := &caldav.CalendarQuery{
		CompRequest: caldav.CalendarCompRequest{
			Name:     "VCALENDAR",
			AllProps: true,
			Comps: []caldav.CalendarCompRequest{{
				Name:     "VEVENT",
				AllProps: true,
			}},
		},
		CompFilter: caldav.CompFilter{
			Name: "VCALENDAR",
			Comps: []caldav.CompFilter{{
				Name:  "VEVENT",
				Start: from.UTC(),
				End:   to.UTC(),
			}},
		},
	}

	objects, err := c.dav.QueryCalendar(ctx, collection, query)
	if err != nil {
		return nil, &ProviderError{Status: 0, Body: err.Error()}
	}

	events := make([]RemoteEvent, 0, len(objects))
	for _, obj := range objects {
		if obj.Data == nil {
			continue
		}
		ev, ok := parseRemoteEvent(obj.Data, c.absoluteURL(obj.Path))
		if !ok {
			c.l.Warnf(ctx, "caldav: skipping unparsable object at %s", obj.Path)
			continue
		}
		events = append(events, ev)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
	return events, nil
}

// FindEventByTitle returns the chronologically soonest event in the window
// whose title contains the query, case-insensitively.
func (c *Client) FindEventByTitle(ctx context.Context, query string, from, to time.Time) (RemoteEvent, error) {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return RemoteEvent{}, ErrEventNotFound
	}

	events, err := c.ListEvents(ctx, from, to)
	if err != nil {
		return RemoteEvent{}, err
	}

	for _, ev := range events {
		if strings.Contains(strings.ToLower(ev.Title), query) {
			return ev, nil
		}
	}
	return RemoteEvent{}, ErrEventNotFound
}

// UpdateEvent rebuilds the calendar object preserving the UID, substituting
// only the fields set in changes, and submits a full replace at the event's
// href.
func (c *Client) UpdateEvent(ctx context.Context, existing RemoteEvent, changes Changes) (RemoteEvent, error) {
	if existing.Href == "" {
		return RemoteEvent{}, ErrMissingHref
	}
	if _, err := c.resolveCollection(ctx); err != nil {
		return RemoteEvent{}, err
	}

	updated := existing
	if changes.Title != nil {
		updated.Title = *changes.Title
	}
	if changes.Start != nil {
		updated.Start = changes.Start.UTC()
	}
	if changes.DurationMinutes != nil && *changes.DurationMinutes > 0 {
		updated.DurationMinutes = *changes.DurationMinutes
	}
	if changes.Location != nil {
		updated.Location = *changes.Location
	}
	updated.End = updated.Start.Add(time.Duration(updated.DurationMinutes) * time.Minute)

	draft := model.EventDraft{
		Title:           updated.Title,
		Start:           updated.Start,
		DurationMinutes: updated.DurationMinutes,
		Location:        updated.Location,
		UID:             updated.UID,
	}
	ics, err := encodeCalendar(buildCalendar(draft))
	if err != nil {
		return RemoteEvent{}, err
	}

	if _, err := c.put(ctx, c.absoluteURL(existing.Href), ics, false); err != nil {
		return RemoteEvent{}, err
	}

	c.l.Infof(ctx, "caldav: updated event uid=%s title=%q", updated.UID, updated.Title)
	return updated, nil
}

// DeleteEvent removes the event at its href.
func (c *Client) DeleteEvent(ctx context.Context, existing RemoteEvent) error {
	if existing.Href == "" {
		return ErrMissingHref
	}
	if _, err := c.resolveCollection(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.absoluteURL(existing.Href), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ProviderError{Status: 0, Body: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return newProviderError(resp.StatusCode, body)
	}

	c.l.Infof(ctx, "caldav: deleted event uid=%s", existing.UID)
	return nil
}

// put uploads a calendar object. conditional guards against overwriting an
// existing resource (at-most-once creation); the returned href prefers a
// provider-assigned Location header over the submitted address.
func (c *Client) put(ctx context.Context, resource string, ics []byte, conditional bool) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, resource, bytes.NewReader(ics))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "text/calendar; charset=utf-8")
	if conditional {
		req.Header.Set("If-None-Match", "*")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ProviderError{Status: 0, Body: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", newProviderError(resp.StatusCode, body)
	}

	if loc := resp.Header.Get("Location"); loc != "" {
		return c.absoluteURL(loc), nil
	}
	return resource, nil
}
