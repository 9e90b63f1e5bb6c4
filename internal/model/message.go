package model

// MessageType is the normalized inbound message type.
type MessageType string

const (
	MessageText     MessageType = "text"
	MessageImage    MessageType = "image"
	MessageDocument MessageType = "document"
	MessageAudio    MessageType = "audio"
	MessageVideo    MessageType = "video"
)

// IsMedia reports whether the message carries a binary attachment type.
func (t MessageType) IsMedia() bool {
	switch t {
	case MessageImage, MessageDocument, MessageAudio, MessageVideo:
		return true
	}
	return false
}

// Message is an inbound message already normalized from the raw
// WhatsApp webhook shape by the transport layer.
type Message struct {
	From        string // channel address of the sender
	Type        MessageType
	Text        string
	MediaBuffer []byte // attachment bytes, when the transport downloaded them
	Filename    string // attachment filename
	MimeType    string // attachment content type
}
