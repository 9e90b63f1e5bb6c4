package caldav

import (
	"errors"
	"fmt"
)

// Configuration and lookup errors. Missing credentials or target collection
// are fatal and never retried; a missing event is reported to the user.
var (
	ErrMissingCredentials = errors.New("caldav: username and app password are not configured")
	ErrNoCollection       = errors.New("caldav: no usable calendar collection found")
	ErrEventNotFound      = errors.New("caldav: no matching event found")
	ErrMissingHref        = errors.New("caldav: event has no remote address, cannot mutate it")
)

const maxErrorBody = 200

// ProviderError is a non-success response from the calendar provider.
type ProviderError struct {
	Status int
	Body   string // truncated response body
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("caldav: provider returned %d: %s", e.Status, e.Body)
}

// IsConflict reports whether the error is a conditional-create rejection,
// i.e. an object with the same resource name already exists.
func IsConflict(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Status == 412
}

func newProviderError(status int, body []byte) *ProviderError {
	s := string(body)
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody]
	}
	return &ProviderError{Status: status, Body: s}
}
