package whatsapp

// Message type constants as Meta names them.
const (
	TypeText        = "text"
	TypeButton      = "button"
	TypeInteractive = "interactive"
	TypeImage       = "image"
	TypeDocument    = "document"
	TypeAudio       = "audio"
	TypeVideo       = "video"
)

// Normalize flattens a webhook payload into the messages it carries. Status
// notifications and changes outside the messages field produce nothing; an
// unrecognized message type yields an Incoming with empty Text so the caller
// can still reply to the sender.
func Normalize(payload WebhookPayload) []Incoming {
	var out []Incoming
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != "messages" {
				continue
			}
			for _, msg := range change.Value.Messages {
				out = append(out, normalizeOne(msg))
			}
		}
	}
	return out
}

func normalizeOne(msg RawMessage) Incoming {
	in := Incoming{From: msg.From, Type: msg.Type}

	switch msg.Type {
	case TypeText:
		if msg.Text != nil {
			in.Text = msg.Text.Body
		}
	case TypeButton:
		if msg.Button != nil {
			in.Text = msg.Button.Text
		}
	case TypeInteractive:
		if msg.Interactive != nil {
			if r := msg.Interactive.ButtonReply; r != nil {
				in.Text = r.Title
			} else if r := msg.Interactive.ListReply; r != nil {
				in.Text = r.Title
			}
		}
	case TypeImage:
		in.fromMedia(msg.Image)
	case TypeDocument:
		in.fromMedia(msg.Document)
	case TypeAudio:
		in.fromMedia(msg.Audio)
	case TypeVideo:
		in.fromMedia(msg.Video)
	}
	return in
}

func (in *Incoming) fromMedia(m *Media) {
	if m == nil {
		return
	}
	in.MediaID = m.ID
	in.MimeType = m.MimeType
	in.Filename = m.Filename
	in.Text = m.Caption
}

// IsMedia reports whether the message carries downloadable content.
func (in Incoming) IsMedia() bool {
	return in.MediaID != ""
}
