package router_test

import (
	"context"
	"testing"

	"wa-assistant/internal/model"
	"wa-assistant/internal/router"
	"wa-assistant/pkg/log"
)

func newRouter() *router.PatternRouter {
	return router.New(log.Init(log.ZapConfig{Level: "error"}))
}

func TestClassify(t *testing.T) {
	r := newRouter()
	ctx := context.Background()

	cases := []struct {
		name string
		msg  model.Message
		want router.Classification
	}{
		{
			name: "empty input greets",
			msg:  model.Message{Type: model.MessageText},
			want: router.Classification{Intent: router.IntentGreeting},
		},
		{
			name: "exact help keyword",
			msg:  model.Message{Type: model.MessageText, Text: "hola"},
			want: router.Classification{Intent: router.IntentHelp},
		},
		{
			name: "help keyword with punctuation",
			msg:  model.Message{Type: model.MessageText, Text: "Ayuda!"},
			want: router.Classification{Intent: router.IntentHelp},
		},
		{
			name: "embedded greeting is not help",
			msg:  model.Message{Type: model.MessageText, Text: "hola, dentista mañana 11am"},
			want: router.Classification{Intent: router.IntentCreate},
		},
		{
			name: "list today",
			msg:  model.Message{Type: model.MessageText, Text: "¿Qué tengo hoy?"},
			want: router.Classification{Intent: router.IntentList, Window: "hoy"},
		},
		{
			name: "list tomorrow",
			msg:  model.Message{Type: model.MessageText, Text: "qué tengo mañana"},
			want: router.Classification{Intent: router.IntentList, Window: "mañana"},
		},
		{
			name: "list week",
			msg:  model.Message{Type: model.MessageText, Text: "que tengo esta semana"},
			want: router.Classification{Intent: router.IntentList, Window: "semana"},
		},
		{
			name: "move with target",
			msg:  model.Message{Type: model.MessageText, Text: "mueve dentista a mañana 4pm"},
			want: router.Classification{Intent: router.IntentMove, Query: "dentista", Tail: "mañana 4pm"},
		},
		{
			name: "move with para",
			msg:  model.Message{Type: model.MessageText, Text: "cambia la comida para el viernes"},
			want: router.Classification{Intent: router.IntentMove, Query: "comida", Tail: "el viernes"},
		},
		{
			name: "bare move verb prompts downstream",
			msg:  model.Message{Type: model.MessageText, Text: "mueve"},
			want: router.Classification{Intent: router.IntentMove},
		},
		{
			name: "cancel",
			msg:  model.Message{Type: model.MessageText, Text: "cancela el dentista"},
			want: router.Classification{Intent: router.IntentCancel, Query: "dentista"},
		},
		{
			name: "call with number",
			msg:  model.Message{Type: model.MessageText, Text: "llama al 55 1234 5678"},
			want: router.Classification{Intent: router.IntentCall, Number: "55 1234 5678"},
		},
		{
			name: "call without number",
			msg:  model.Message{Type: model.MessageText, Text: "llama a mi dentista"},
			want: router.Classification{Intent: router.IntentCall},
		},
		{
			name: "agenda guide without specifics",
			msg:  model.Message{Type: model.MessageText, Text: "cómo agendo una cita"},
			want: router.Classification{Intent: router.IntentAgendaHelp},
		},
		{
			name: "agenda keyword with digits goes to creation",
			msg:  model.Message{Type: model.MessageText, Text: "cita dentista mañana 11am"},
			want: router.Classification{Intent: router.IntentCreate},
		},
		{
			name: "create catch-all",
			msg:  model.Message{Type: model.MessageText, Text: "Comida, 5/9 14:00, 90m, @Roma"},
			want: router.Classification{Intent: router.IntentCreate},
		},
		{
			name: "attachment wins over text",
			msg:  model.Message{Type: model.MessageDocument, Text: "recibo", Filename: "recibo.pdf"},
			want: router.Classification{Intent: router.IntentAttachment},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := r.Classify(ctx, tc.msg)
			if got != tc.want {
				t.Errorf("Classify(%q) = %+v, want %+v", tc.msg.Text, got, tc.want)
			}
		})
	}
}
