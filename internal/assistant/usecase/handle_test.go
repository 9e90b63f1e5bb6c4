package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"wa-assistant/internal/model"
	"wa-assistant/internal/nlp"
	"wa-assistant/internal/router"
	"wa-assistant/pkg/caldav"
	"wa-assistant/pkg/log"
)

// Friday, so "mañana" resolves to Saturday Jan 11.
var testNow = time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)

type fixture struct {
	uc       *implUseCase
	msgr     *fakeMessenger
	calendar *fakeCalendar
	storage  *fakeStorage
	caller   *fakeCaller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	resolver, err := nlp.NewResolver("UTC")
	if err != nil {
		t.Fatalf("resolver: %v", err)
	}

	l := log.Init(log.ZapConfig{Level: "error"})
	f := &fixture{
		msgr:     &fakeMessenger{},
		calendar: &fakeCalendar{},
		storage:  &fakeStorage{},
		caller:   &fakeCaller{},
	}
	f.uc = New(l, router.New(l), f.calendar, f.msgr, f.storage, f.caller, resolver,
		func() time.Time { return testNow })
	return f
}

func text(body string) model.Message {
	return model.Message{From: "5215512345678", Type: model.MessageText, Text: body}
}

func TestHandleCreate(t *testing.T) {
	f := newFixture(t)

	if err := f.uc.Handle(context.Background(), text("Dentista mañana 11am 1h en Altavista")); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(f.calendar.created) != 1 {
		t.Fatalf("created %d drafts, want 1", len(f.calendar.created))
	}
	draft := f.calendar.created[0]
	if draft.Title != "Dentista" {
		t.Errorf("title = %q", draft.Title)
	}
	want := time.Date(2025, 1, 11, 11, 0, 0, 0, time.UTC)
	if !draft.Start.Equal(want) {
		t.Errorf("start = %v, want %v", draft.Start, want)
	}
	if draft.DurationMinutes != 60 {
		t.Errorf("duration = %d", draft.DurationMinutes)
	}
	if draft.Location != "Altavista" {
		t.Errorf("location = %q", draft.Location)
	}

	reply := f.msgr.last()
	if reply.to != "5215512345678" {
		t.Errorf("reply to = %q", reply.to)
	}
	if !strings.Contains(reply.text, "Evento creado: Dentista") {
		t.Errorf("reply = %q", reply.text)
	}
	if !strings.Contains(reply.text, "11/01 11:00") || !strings.Contains(reply.text, "1h") {
		t.Errorf("reply missing when/duration: %q", reply.text)
	}
}

func TestHandleCreateFallbacks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Date-like tokens present, but the date itself is invalid.
	f.uc.Handle(ctx, text("algo el 31/2 14:00"))
	if f.msgr.last().text != replyParseFailDate {
		t.Errorf("reply = %q, want parse-fail prompt", f.msgr.last().text)
	}

	// No temporal content at all.
	f.uc.Handle(ctx, text("gracias por todo"))
	if f.msgr.last().text != replyGenericHelp {
		t.Errorf("reply = %q, want generic help", f.msgr.last().text)
	}

	if len(f.calendar.created) != 0 {
		t.Errorf("no events should be created, got %d", len(f.calendar.created))
	}
}

func TestHandleCreateProviderFailure(t *testing.T) {
	f := newFixture(t)
	f.calendar.createErr = &caldav.ProviderError{Status: 412, Body: "exists"}

	f.uc.Handle(context.Background(), text("Dentista mañana 11am"))
	if f.msgr.last().text != replyCreateFailed {
		t.Errorf("reply = %q", f.msgr.last().text)
	}
}

func TestHandleList(t *testing.T) {
	f := newFixture(t)
	f.calendar.events = []caldav.RemoteEvent{
		{Title: "Cena", Start: time.Date(2025, 1, 11, 20, 0, 0, 0, time.UTC), DurationMinutes: 90, Location: "Roma"},
		{Title: "Dentista", Start: time.Date(2025, 1, 11, 11, 0, 0, 0, time.UTC), DurationMinutes: 60},
	}

	f.uc.Handle(context.Background(), text("qué tengo mañana"))

	wantFrom := time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)
	if !f.calendar.listFrom.Equal(wantFrom) || !f.calendar.listTo.Equal(wantFrom.AddDate(0, 0, 1)) {
		t.Errorf("window = [%v, %v]", f.calendar.listFrom, f.calendar.listTo)
	}

	reply := f.msgr.last().text
	if !strings.HasPrefix(reply, replyListHeader) {
		t.Errorf("reply = %q", reply)
	}
	// Sorted ascending: dentist before dinner.
	if strings.Index(reply, "Dentista") > strings.Index(reply, "Cena") {
		t.Errorf("items out of order: %q", reply)
	}
	if !strings.Contains(reply, "1h30m · Roma") {
		t.Errorf("item formatting: %q", reply)
	}
}

func TestHandleListEmptyAndWeek(t *testing.T) {
	f := newFixture(t)

	f.uc.Handle(context.Background(), text("¿qué tengo esta semana?"))

	wantFrom := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	if !f.calendar.listFrom.Equal(wantFrom) || !f.calendar.listTo.Equal(wantFrom.AddDate(0, 0, 7)) {
		t.Errorf("window = [%v, %v]", f.calendar.listFrom, f.calendar.listTo)
	}
	if f.msgr.last().text != replyListEmpty {
		t.Errorf("reply = %q", f.msgr.last().text)
	}
}

func TestHandleMove(t *testing.T) {
	f := newFixture(t)
	f.calendar.events = []caldav.RemoteEvent{{
		UID:             "ev",
		Href:            "/cal/ev.ics",
		Title:           "Dentista",
		Start:           time.Date(2025, 1, 11, 11, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	}}

	f.uc.Handle(context.Background(), text("mueve dentista a mañana 4pm"))

	if len(f.calendar.updated) != 1 {
		t.Fatalf("updated %d events, want 1", len(f.calendar.updated))
	}
	want := time.Date(2025, 1, 11, 16, 0, 0, 0, time.UTC)
	if !f.calendar.updated[0].Start.Equal(want) {
		t.Errorf("moved start = %v, want %v", f.calendar.updated[0].Start, want)
	}
	if !strings.Contains(f.msgr.last().text, "Reprogramado") {
		t.Errorf("reply = %q", f.msgr.last().text)
	}
}

func TestHandleMovePrompts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.uc.Handle(ctx, text("mueve"))
	if f.msgr.last().text != replyMoveAskTitle {
		t.Errorf("reply = %q", f.msgr.last().text)
	}

	f.uc.Handle(ctx, text("mueve dentista"))
	if f.msgr.last().text != replyMoveAskWhen {
		t.Errorf("reply = %q", f.msgr.last().text)
	}

	f.uc.Handle(ctx, text("mueve dentista a mañana 4pm"))
	if f.msgr.last().text != replyNotFound("dentista") {
		t.Errorf("reply = %q", f.msgr.last().text)
	}
}

func TestHandleCancel(t *testing.T) {
	f := newFixture(t)
	f.calendar.events = []caldav.RemoteEvent{{
		UID:   "ev",
		Href:  "/cal/ev.ics",
		Title: "Dentista",
		Start: time.Date(2025, 1, 11, 11, 0, 0, 0, time.UTC),
	}}

	f.uc.Handle(context.Background(), text("cancela el dentista"))

	if len(f.calendar.deleted) != 1 || f.calendar.deleted[0].UID != "ev" {
		t.Fatalf("deleted = %+v", f.calendar.deleted)
	}
	if f.msgr.last().text != replyCancelOK("Dentista") {
		t.Errorf("reply = %q", f.msgr.last().text)
	}

	f.uc.Handle(context.Background(), text("cancela yoga"))
	if f.msgr.last().text != replyNotFound("yoga") {
		t.Errorf("reply = %q", f.msgr.last().text)
	}
}

func TestHandleCall(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.uc.Handle(ctx, text("llama al 55 1234 5678"))
	if f.caller.userNumber != "5215512345678" {
		t.Errorf("user leg = %q", f.caller.userNumber)
	}
	if f.caller.otherNumber != "5512345678" {
		t.Errorf("other leg = %q", f.caller.otherNumber)
	}
	if !strings.Contains(f.msgr.last().text, "Marcando 55 1234 5678") {
		t.Errorf("reply = %q", f.msgr.last().text)
	}

	f.uc.Handle(ctx, text("llama a mi dentista"))
	if f.msgr.last().text != replyCallAskNumber {
		t.Errorf("reply = %q", f.msgr.last().text)
	}

	f.caller.err = errors.New("twilio down")
	f.uc.Handle(ctx, text("llama al 55 1234 5678"))
	if f.msgr.last().text != replyCallFailed {
		t.Errorf("reply = %q", f.msgr.last().text)
	}
}

func TestHandleAttachment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	msg := model.Message{
		From:        "5215512345678",
		Type:        model.MessageDocument,
		MediaBuffer: []byte("%PDF-1.4 fake"),
		Filename:    "recibo.pdf",
		MimeType:    "application/pdf",
	}
	f.uc.Handle(ctx, msg)

	if f.storage.filename != "recibo.pdf" || f.storage.mimeType != "application/pdf" {
		t.Errorf("upload = %q %q", f.storage.filename, f.storage.mimeType)
	}
	if f.msgr.last().text != replyFileSaved("recibo.pdf") {
		t.Errorf("reply = %q", f.msgr.last().text)
	}

	// Media without downloaded bytes asks the user to resend.
	f.uc.Handle(ctx, model.Message{From: "5215512345678", Type: model.MessageImage})
	if f.msgr.last().text != replyResend {
		t.Errorf("reply = %q", f.msgr.last().text)
	}
}

func TestHandleNeverPropagatesReplyFailure(t *testing.T) {
	f := newFixture(t)
	f.msgr.err = errors.New("send API down")

	if err := f.uc.Handle(context.Background(), text("hola")); err != nil {
		t.Errorf("reply failure must be swallowed, got %v", err)
	}
}

func TestHandleWithoutSender(t *testing.T) {
	f := newFixture(t)
	if err := f.uc.Handle(context.Background(), model.Message{Type: model.MessageText, Text: "hola"}); err != nil {
		t.Errorf("handle: %v", err)
	}
	if len(f.msgr.sent) != 0 {
		t.Errorf("no reply possible without sender, sent %d", len(f.msgr.sent))
	}
}
