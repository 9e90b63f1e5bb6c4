package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"wa-assistant/internal/model"
	"wa-assistant/pkg/caldav"
	"wa-assistant/pkg/onedrive"
)

// Fakes for the assistant's collaborators, shared across usecase tests.

type sentMessage struct {
	to   string
	text string
}

type fakeMessenger struct {
	sent []sentMessage
	err  error
}

func (f *fakeMessenger) SendText(_ context.Context, to, text string) error {
	f.sent = append(f.sent, sentMessage{to: to, text: text})
	return f.err
}

func (f *fakeMessenger) last() sentMessage {
	if len(f.sent) == 0 {
		return sentMessage{}
	}
	return f.sent[len(f.sent)-1]
}

type fakeCalendar struct {
	events []caldav.RemoteEvent

	created   []model.EventDraft
	createErr error

	listFrom, listTo time.Time
	listErr          error

	updated   []caldav.RemoteEvent
	updateErr error

	deleted   []caldav.RemoteEvent
	deleteErr error
}

func (f *fakeCalendar) CreateEvent(_ context.Context, draft model.EventDraft) (caldav.RemoteEvent, error) {
	if f.createErr != nil {
		return caldav.RemoteEvent{}, f.createErr
	}
	f.created = append(f.created, draft)
	return caldav.RemoteEvent{
		UID:             draft.UID,
		Href:            "/cal/" + draft.UID + ".ics",
		Title:           draft.Title,
		Start:           draft.Start,
		End:             draft.End(),
		DurationMinutes: draft.DurationMinutes,
		Location:        draft.Location,
	}, nil
}

func (f *fakeCalendar) ListEvents(_ context.Context, from, to time.Time) ([]caldav.RemoteEvent, error) {
	f.listFrom, f.listTo = from, to
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := append([]caldav.RemoteEvent(nil), f.events...)
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (f *fakeCalendar) FindEventByTitle(ctx context.Context, query string, from, to time.Time) (caldav.RemoteEvent, error) {
	events, err := f.ListEvents(ctx, from, to)
	if err != nil {
		return caldav.RemoteEvent{}, err
	}
	query = strings.ToLower(query)
	for _, ev := range events {
		if strings.Contains(strings.ToLower(ev.Title), query) {
			return ev, nil
		}
	}
	return caldav.RemoteEvent{}, caldav.ErrEventNotFound
}

func (f *fakeCalendar) UpdateEvent(_ context.Context, existing caldav.RemoteEvent, changes caldav.Changes) (caldav.RemoteEvent, error) {
	if f.updateErr != nil {
		return caldav.RemoteEvent{}, f.updateErr
	}
	updated := existing
	if changes.Title != nil {
		updated.Title = *changes.Title
	}
	if changes.Start != nil {
		updated.Start = *changes.Start
	}
	if changes.DurationMinutes != nil {
		updated.DurationMinutes = *changes.DurationMinutes
	}
	if changes.Location != nil {
		updated.Location = *changes.Location
	}
	updated.End = updated.Start.Add(time.Duration(updated.DurationMinutes) * time.Minute)
	f.updated = append(f.updated, updated)
	return updated, nil
}

func (f *fakeCalendar) DeleteEvent(_ context.Context, existing caldav.RemoteEvent) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, existing)
	return nil
}

type fakeStorage struct {
	filename string
	mimeType string
	data     []byte
	err      error
}

func (f *fakeStorage) UploadBuffer(_ context.Context, filename, mimeType string, data []byte) (onedrive.Item, error) {
	if f.err != nil {
		return onedrive.Item{}, f.err
	}
	f.filename, f.mimeType, f.data = filename, mimeType, data
	return onedrive.Item{ID: "item-1", Name: filename, WebURL: "https://onedrive.example/" + filename}, nil
}

type fakeCaller struct {
	userNumber  string
	otherNumber string
	err         error
}

func (f *fakeCaller) StartClickToCall(_ context.Context, userNumber, otherNumber string) error {
	if f.err != nil {
		return f.err
	}
	f.userNumber, f.otherNumber = userNumber, otherNumber
	return nil
}
