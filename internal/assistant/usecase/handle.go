package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"wa-assistant/internal/model"
	"wa-assistant/internal/nlp"
	"wa-assistant/internal/router"
	"wa-assistant/pkg/caldav"
)

// findWindowDays bounds how far ahead move/cancel searches look for a
// matching event.
const findWindowDays = 30

// Handle classifies the message and executes its intent. Every branch ends
// in a reply attempt; collaborator failures are logged and answered with a
// persona message, never propagated to the transport.
// Convention: Method accepts context.Context as first parameter
func (uc *implUseCase) Handle(ctx context.Context, msg model.Message) error {
	if msg.From == "" {
		uc.l.Warn(ctx, "assistant: message without sender, nothing to reply to")
		return nil
	}

	c := uc.router.Classify(ctx, msg)
	uc.l.Infof(ctx, "assistant: from=%s intent=%s", msg.From, c.Intent)

	switch c.Intent {
	case router.IntentGreeting:
		uc.reply(ctx, msg.From, replyHello)
	case router.IntentHelp:
		uc.reply(ctx, msg.From, replyGenericHelp)
	case router.IntentAgendaHelp:
		uc.reply(ctx, msg.From, replyAgendaHelp)
	case router.IntentList:
		uc.handleList(ctx, msg.From, c.Window)
	case router.IntentMove:
		uc.handleMove(ctx, msg.From, c.Query, c.Tail)
	case router.IntentCancel:
		uc.handleCancel(ctx, msg.From, c.Query)
	case router.IntentCall:
		uc.handleCall(ctx, msg.From, c.Number)
	case router.IntentAttachment:
		uc.handleAttachment(ctx, msg)
	default:
		uc.handleCreate(ctx, msg.From, msg.Text)
	}
	return nil
}

func (uc *implUseCase) handleCreate(ctx context.Context, from, text string) {
	draft, ok := uc.resolver.BuildDraft(text, uc.now())
	if !ok {
		// Date-like tokens mean the user tried to schedule something; ask
		// for a clearer date instead of showing generic help.
		if nlp.HasDateHints(text) {
			uc.reply(ctx, from, replyParseFailDate)
		} else {
			uc.reply(ctx, from, replyGenericHelp)
		}
		return
	}

	created, err := uc.calendar.CreateEvent(ctx, draft)
	if err != nil {
		uc.l.Errorf(ctx, "assistant: create event failed: %v", err)
		uc.reply(ctx, from, replyCreateFailed)
		return
	}

	loc := uc.resolver.Location()
	uc.reply(ctx, from, replyEventCreated(
		created.Title,
		whenStr(created.Start, loc),
		durStr(created.DurationMinutes),
		locationStr(created.Location),
	))
}

func (uc *implUseCase) handleList(ctx context.Context, from, window string) {
	fromT, toT := uc.listWindow(window)

	events, err := uc.calendar.ListEvents(ctx, fromT, toT)
	if err != nil {
		uc.l.Errorf(ctx, "assistant: list events failed: %v", err)
		uc.reply(ctx, from, replyOops)
		return
	}
	if len(events) == 0 {
		uc.reply(ctx, from, replyListEmpty)
		return
	}

	loc := uc.resolver.Location()
	lines := make([]string, 0, len(events)+1)
	lines = append(lines, replyListHeader)
	for _, ev := range events {
		lines = append(lines, replyListItem(
			whenStr(ev.Start, loc),
			ev.Title,
			durStr(ev.DurationMinutes),
			locationStr(ev.Location),
		))
	}
	uc.reply(ctx, from, strings.Join(lines, "\n"))
}

// listWindow maps "hoy" / "mañana" / "semana" to local day boundaries.
func (uc *implUseCase) listWindow(window string) (time.Time, time.Time) {
	loc := uc.resolver.Location()
	now := uc.now().In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch window {
	case "mañana":
		return dayStart.AddDate(0, 0, 1), dayStart.AddDate(0, 0, 2)
	case "semana":
		return dayStart, dayStart.AddDate(0, 0, 7)
	default:
		return dayStart, dayStart.AddDate(0, 0, 1)
	}
}

func (uc *implUseCase) handleMove(ctx context.Context, from, query, tail string) {
	if query == "" {
		uc.reply(ctx, from, replyMoveAskTitle)
		return
	}
	if tail == "" {
		uc.reply(ctx, from, replyMoveAskWhen)
		return
	}

	when, ok := uc.resolver.Resolve(tail, uc.now())
	if !ok {
		uc.reply(ctx, from, replyParseFailDate)
		return
	}

	now := uc.now()
	existing, err := uc.calendar.FindEventByTitle(ctx, query, now, now.AddDate(0, 0, findWindowDays))
	if err != nil {
		if errors.Is(err, caldav.ErrEventNotFound) {
			uc.reply(ctx, from, replyNotFound(query))
			return
		}
		uc.l.Errorf(ctx, "assistant: find event failed: %v", err)
		uc.reply(ctx, from, replyOops)
		return
	}

	updated, err := uc.calendar.UpdateEvent(ctx, existing, caldav.Changes{Start: &when})
	if err != nil {
		uc.l.Errorf(ctx, "assistant: move event failed: %v", err)
		uc.reply(ctx, from, replyOops)
		return
	}

	loc := uc.resolver.Location()
	uc.reply(ctx, from, replyMoveOK(
		updated.Title,
		whenStr(updated.Start, loc),
		durStr(updated.DurationMinutes),
		locationStr(updated.Location),
	))
}

func (uc *implUseCase) handleCancel(ctx context.Context, from, query string) {
	if query == "" {
		uc.reply(ctx, from, replyCancelAskTitle)
		return
	}

	now := uc.now()
	existing, err := uc.calendar.FindEventByTitle(ctx, query, now, now.AddDate(0, 0, findWindowDays))
	if err != nil {
		if errors.Is(err, caldav.ErrEventNotFound) {
			uc.reply(ctx, from, replyNotFound(query))
			return
		}
		uc.l.Errorf(ctx, "assistant: find event failed: %v", err)
		uc.reply(ctx, from, replyOops)
		return
	}

	if err := uc.calendar.DeleteEvent(ctx, existing); err != nil {
		uc.l.Errorf(ctx, "assistant: cancel event failed: %v", err)
		uc.reply(ctx, from, replyOops)
		return
	}
	uc.reply(ctx, from, replyCancelOK(existing.Title))
}

func (uc *implUseCase) handleCall(ctx context.Context, from, number string) {
	if number == "" {
		uc.reply(ctx, from, replyCallAskNumber)
		return
	}

	// The user's own phone rings first, then the call is bridged.
	if err := uc.caller.StartClickToCall(ctx, from, digitsOnly(number)); err != nil {
		uc.l.Errorf(ctx, "assistant: click-to-call failed: %v", err)
		uc.reply(ctx, from, replyCallFailed)
		return
	}
	uc.reply(ctx, from, replyCalling(number))
}

func (uc *implUseCase) handleAttachment(ctx context.Context, msg model.Message) {
	if len(msg.MediaBuffer) == 0 || msg.Filename == "" {
		uc.reply(ctx, msg.From, replyResend)
		return
	}

	item, err := uc.storage.UploadBuffer(ctx, msg.Filename, msg.MimeType, msg.MediaBuffer)
	if err != nil {
		uc.l.Errorf(ctx, "assistant: upload failed: %v", err)
		uc.reply(ctx, msg.From, replyUploadFailed)
		return
	}

	name := item.Name
	if name == "" {
		name = msg.Filename
	}
	uc.reply(ctx, msg.From, replyFileSaved(name))
}

// reply attempts a user-facing message; a send failure is logged once and
// swallowed so the handling path never fails on the reply itself.
func (uc *implUseCase) reply(ctx context.Context, to, text string) {
	if err := uc.msgr.SendText(ctx, to, text); err != nil {
		uc.l.Errorf(ctx, "assistant: failed to reply to %s: %v", to, err)
	}
}

func digitsOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		} else if r == '+' && sb.Len() == 0 {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
