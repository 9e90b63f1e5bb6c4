package router

import (
	"context"
	"regexp"
	"strings"

	"wa-assistant/internal/model"
)

var (
	reAgenda = regexp.MustCompile(`(?i)\b(?:agenda|evento|cita)\b`)
	reList   = regexp.MustCompile(`(?i)\bqu[eé]\s+(?:tengo|hay)\b`)
	reMove   = regexp.MustCompile(`(?i)\b(?:mueve|mover|cambia|reagenda)\b\s*(?:la\s+|el\s+|mi\s+)?(.*?)(?:\s+(?:a|al|para)\s+(.+))?$`)
	reCancel = regexp.MustCompile(`(?i)\b(?:cancela|cancelar|elimina|borra)\b\s*(?:la\s+|el\s+|mi\s+)?(.*)$`)
	reCall   = regexp.MustCompile(`(?i)\b(?:llama|marc[ae]r?)\b`)
	reNumber = regexp.MustCompile(`\+?\d[\d\s-]{6,}`)
)

// helpKeywords trigger the generic help reply on exact match only; embedded
// occurrences ("hola, dentista mañana") must not short-circuit the pipeline.
var helpKeywords = map[string]bool{
	"hola":   true,
	"buenas": true,
	"hey":    true,
	"menu":   true,
	"menú":   true,
	"ayuda":  true,
	"help":   true,
}

// Classify assigns exactly one intent to the message. Rules run in fixed
// priority order and the first match is terminal.
// Convention: Method accepts context.Context as first parameter
func (r *PatternRouter) Classify(ctx context.Context, msg model.Message) Classification {
	if msg.Type.IsMedia() {
		return r.done(ctx, Classification{Intent: IntentAttachment})
	}

	text := strings.TrimSpace(msg.Text)
	low := strings.ToLower(text)

	if text == "" {
		return r.done(ctx, Classification{Intent: IntentGreeting})
	}

	if helpKeywords[strings.TrimRight(low, "!?. ")] {
		return r.done(ctx, Classification{Intent: IntentHelp})
	}

	if reList.MatchString(text) {
		return r.done(ctx, Classification{Intent: IntentList, Window: listWindow(low)})
	}

	if m := reMove.FindStringSubmatch(text); m != nil {
		return r.done(ctx, Classification{
			Intent: IntentMove,
			Query:  strings.TrimSpace(m[1]),
			Tail:   strings.TrimSpace(m[2]),
		})
	}

	if m := reCancel.FindStringSubmatch(text); m != nil {
		return r.done(ctx, Classification{
			Intent: IntentCancel,
			Query:  strings.Trim(strings.TrimSpace(m[1]), ",.;"),
		})
	}

	if reCall.MatchString(text) {
		return r.done(ctx, Classification{
			Intent: IntentCall,
			Number: strings.TrimSpace(reNumber.FindString(text)),
		})
	}

	if reAgenda.MatchString(text) && !hasCreateShape(text) {
		return r.done(ctx, Classification{Intent: IntentAgendaHelp})
	}

	return r.done(ctx, Classification{Intent: IntentCreate})
}

func (r *PatternRouter) done(ctx context.Context, c Classification) Classification {
	r.l.Debugf(ctx, "router: classified as %s", c.Intent)
	return c
}

// hasCreateShape reports whether the message carries a digit, so that
// "cita dentista mañana 11am" reaches the creation pipeline while a bare
// "cómo agendo una cita" still gets the agenda guide.
func hasCreateShape(text string) bool {
	return strings.IndexFunc(text, func(r rune) bool { return r >= '0' && r <= '9' }) >= 0
}

func listWindow(low string) string {
	switch {
	case strings.Contains(low, "semana"):
		return "semana"
	case strings.Contains(low, "mañana"):
		return "mañana"
	default:
		return "hoy"
	}
}
