package usecase

import (
	"fmt"
	"time"
)

// Reply templates in the house persona: formal Spanish, the user is always
// addressed as "señorita".
const userTitle = "señorita"

var (
	replyHello = "A sus órdenes, " + userTitle + ". ¿Desea agendar, mover o cancelar algo?"

	replyGenericHelp = "Claro, " + userTitle + ". Puedo crear eventos (“Dentista mañana 11am 1h en Altavista”), " +
		"listar (“qué tengo mañana”), mover (“mueve dentista a viernes 12:00”) o cancelar (“cancela dentista”)."

	replyAgendaHelp = "Con gusto, " + userTitle + ". Ejemplos:\n" +
		"• Dentista mañana 11am 1h en Altavista\n" +
		"• Comida, 5/9 14:00, 90m, @Roma\n" +
		"• qué tengo hoy / mañana / esta semana\n" +
		"• mueve dentista a viernes 12:00\n" +
		"• cancela dentista"

	replyListHeader = "Esto es lo que tiene, " + userTitle + ":"
	replyListEmpty  = "No encuentro nada en ese rango, " + userTitle + "."

	replyMoveAskTitle = "¿Qué evento desea mover, " + userTitle + "? Por ejemplo: “mueve dentista a viernes 12:00”."
	replyMoveAskWhen  = "¿A qué fecha/hora lo movemos, " + userTitle + "? Por ejemplo: “mueve dentista a mañana 5pm”."

	replyCancelAskTitle = "¿Cuál desea cancelar, " + userTitle + "? Por ejemplo: “cancela dentista”."

	replyParseFailDate = "No pude entender la fecha/hora. ¿Podría dictármela como en los ejemplos, " + userTitle + "?"
	replyOops          = "Ha ocurrido un detalle inesperado, pero sigo aquí, " + userTitle + "."

	replyCallAskNumber = "Indíqueme a qué número desea llamar (por ejemplo: “llama al 55 1234 5678”)."
	replyCallFailed    = "No fue posible iniciar la llamada ahora mismo."

	replyCreateFailed = "No pude crear el evento. Intentemos otra vez en unos minutos."
	replyUploadFailed = "No logré guardar el archivo en OneDrive en este momento."
	replyResend       = "Puedo guardar sus archivos en OneDrive; envíelos de nuevo y me encargo."
)

func replyEventCreated(title, whenStr, durStr, locationStr string) string {
	return fmt.Sprintf("Listo, %s. Evento creado: %s (%s · %s%s).", userTitle, title, whenStr, durStr, locationStr)
}

func replyListItem(whenStr, title, durStr, locationStr string) string {
	return fmt.Sprintf("• %s: %s (%s%s)", whenStr, title, durStr, locationStr)
}

func replyMoveOK(title, whenStr, durStr, locationStr string) string {
	return fmt.Sprintf("Reprogramado, %s: “%s” a %s (%s%s).", userTitle, title, whenStr, durStr, locationStr)
}

func replyNotFound(query string) string {
	return fmt.Sprintf("No encuentro un evento que coincida con “%s”, %s.", query, userTitle)
}

func replyCancelOK(title string) string {
	return fmt.Sprintf("Hecho, %s. Evento “%s” cancelado.", userTitle, title)
}

func replyCalling(num string) string {
	return fmt.Sprintf("Marcando %s, %s.", num, userTitle)
}

func replyFileSaved(name string) string {
	return fmt.Sprintf("Archivo guardado (%s), %s.", name, userTitle)
}

// whenStr renders an instant in the user's timezone, compact enough for a
// chat bubble.
func whenStr(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02/01 15:04")
}

// durStr renders minutes as "45m", "1h" or "1h30m".
func durStr(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// locationStr renders the " · <place>" suffix, empty when there is no place.
func locationStr(location string) string {
	if location == "" {
		return ""
	}
	return " · " + location
}
