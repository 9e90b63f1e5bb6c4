package assistant

import (
	"context"
	"time"

	"wa-assistant/internal/model"
	"wa-assistant/pkg/caldav"
	"wa-assistant/pkg/onedrive"
)

// Calendar is the calendar-provider surface the assistant drives.
// Satisfied by *caldav.Client.
type Calendar interface {
	CreateEvent(ctx context.Context, draft model.EventDraft) (caldav.RemoteEvent, error)
	ListEvents(ctx context.Context, from, to time.Time) ([]caldav.RemoteEvent, error)
	FindEventByTitle(ctx context.Context, query string, from, to time.Time) (caldav.RemoteEvent, error)
	UpdateEvent(ctx context.Context, existing caldav.RemoteEvent, changes caldav.Changes) (caldav.RemoteEvent, error)
	DeleteEvent(ctx context.Context, existing caldav.RemoteEvent) error
}

// Messenger sends outbound text replies. Fire-and-forget from the
// assistant's perspective. Satisfied by *whatsapp.Client.
type Messenger interface {
	SendText(ctx context.Context, to, text string) error
}

// Storage persists attachment bytes. Satisfied by *onedrive.Client.
type Storage interface {
	UploadBuffer(ctx context.Context, filename, mimeType string, data []byte) (onedrive.Item, error)
}

// Caller bridges a phone call between the user and another number.
// Satisfied by *twilio.Client.
type Caller interface {
	StartClickToCall(ctx context.Context, userNumber, otherNumber string) error
}
