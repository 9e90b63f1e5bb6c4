package assistant

import (
	"context"

	"wa-assistant/internal/model"
)

// UseCase defines the business logic interface for the assistant domain.
type UseCase interface {
	// Handle classifies one normalized inbound message and executes its
	// intent. A user-facing reply is attempted on every path; the returned
	// error is for logging only and never reaches the transport boundary.
	Handle(ctx context.Context, msg model.Message) error
}
