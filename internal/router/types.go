package router

// Intent is the terminal classification of one incoming message. Exactly one
// intent is assigned; the first matching rule wins.
type Intent string

const (
	IntentGreeting   Intent = "greeting"    // empty input
	IntentHelp       Intent = "help"        // greeting/help keywords
	IntentList       Intent = "list"        // "qué tengo hoy/mañana/esta semana"
	IntentMove       Intent = "move"        // "mueve <título> a <cuándo>"
	IntentCancel     Intent = "cancel"      // "cancela <título>"
	IntentCall       Intent = "call"        // "llama al <número>"
	IntentAttachment Intent = "attachment"  // inbound media
	IntentAgendaHelp Intent = "agenda_help" // agenda keyword without action verb
	IntentCreate     Intent = "create"      // catch-all: event creation pipeline
)

// Classification is an intent plus the lexical captures the handler needs.
// Captured fields are raw text; semantic parsing happens downstream.
type Classification struct {
	Intent Intent

	// Number is the phone-number-like token of a call intent; empty when the
	// verb matched but no number was found.
	Number string

	// Query is the title fragment of a move/cancel intent.
	Query string

	// Tail is the date/time fragment of a move intent ("a <cuándo>").
	Tail string

	// Window is the list window word: "hoy", "mañana" or "semana".
	Window string
}
