package usecase

import (
	"time"

	"wa-assistant/internal/assistant"
	"wa-assistant/internal/nlp"
	"wa-assistant/internal/router"
	pkgLog "wa-assistant/pkg/log"
)

type implUseCase struct {
	l        pkgLog.Logger
	router   router.Router
	calendar assistant.Calendar
	msgr     assistant.Messenger
	storage  assistant.Storage
	caller   assistant.Caller
	resolver *nlp.Resolver
	now      func() time.Time
}

// New creates a new assistant UseCase instance. now is the clock used for
// temporal resolution and list windows; pass time.Now outside tests.
func New(
	l pkgLog.Logger,
	rt router.Router,
	calendar assistant.Calendar,
	msgr assistant.Messenger,
	storage assistant.Storage,
	caller assistant.Caller,
	resolver *nlp.Resolver,
	now func() time.Time,
) *implUseCase {
	if now == nil {
		now = time.Now
	}
	return &implUseCase{
		l:        l,
		router:   rt,
		calendar: calendar,
		msgr:     msgr,
		storage:  storage,
		caller:   caller,
		resolver: resolver,
		now:      now,
	}
}
