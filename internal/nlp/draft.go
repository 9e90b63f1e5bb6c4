package nlp

import (
	"time"

	"wa-assistant/internal/model"
)

// BuildDraft runs the full extraction pipeline over a free-text message:
// temporal expression, duration, location and residual title. The second
// return is false when no temporal expression was recognized; the caller
// decides how to prompt based on HasDateHints.
func (r *Resolver) BuildDraft(text string, ref time.Time) (model.EventDraft, bool) {
	start, ok := r.Resolve(text, ref)
	if !ok {
		return model.EventDraft{}, false
	}

	location := ExtractLocation(text)

	return model.EventDraft{
		Title:           InferTitle(text, location),
		Start:           start,
		DurationMinutes: ParseDuration(text),
		Location:        location,
	}, true
}
