package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"wa-assistant/internal/assistant"
	"wa-assistant/internal/model"
	"wa-assistant/internal/webhook"
	pkgLog "wa-assistant/pkg/log"
	pkgResponse "wa-assistant/pkg/response"
	pkgWhatsApp "wa-assistant/pkg/whatsapp"
)

type handler struct {
	l             pkgLog.Logger
	uc            assistant.UseCase
	wa            *pkgWhatsApp.Client
	security      *webhook.SecurityValidator
	signingSecret bool
}

// HandleVerification answers the Meta subscription handshake: a GET carrying
// hub.mode/hub.verify_token/hub.challenge; the challenge is echoed verbatim
// on success.
func (h *handler) HandleVerification(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && h.security.VerifyToken(token) {
		c.String(http.StatusOK, challenge)
		return
	}
	c.String(http.StatusForbidden, "verification failed")
}

// HandleWebhook is the Gin handler for incoming WhatsApp deliveries.
// It responds with HTTP 200 immediately and processes each message in a
// background goroutine: Meta retries slow deliveries aggressively, and our
// pipeline (media download + CalDAV round trip) can take seconds.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := c.GetRawData()
	if err != nil {
		h.l.Errorf(ctx, "whatsapp handler: failed to read body: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	if err := h.security.ValidateIPAddress(c.Request); err != nil {
		h.l.Warnf(ctx, "whatsapp handler: %v", err)
		pkgResponse.Forbidden(c)
		return
	}
	if h.signingSecret {
		if err := h.security.ValidateMetaSignature(body, c.GetHeader("X-Hub-Signature-256")); err != nil {
			h.l.Warnf(ctx, "whatsapp handler: %v", err)
			pkgResponse.Unauthorized(c)
			return
		}
	}

	var payload pkgWhatsApp.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		h.l.Errorf(ctx, "whatsapp handler: failed to parse payload: %v", err)
		// Still 200: Meta re-delivers on non-2xx and the payload will not
		// get any better.
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	messages := pkgWhatsApp.Normalize(payload)
	if len(messages) == 0 {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	for _, in := range messages {
		if err := h.security.CheckRateLimit(in.From); err != nil {
			h.l.Warnf(ctx, "whatsapp handler: %v", err)
			continue
		}

		// Critical: process in goroutine, return 200 immediately to Meta
		in := in
		go func() {
			// Detach from HTTP request context (which gets cancelled after response)
			bgCtx := context.Background()
			if err := h.uc.Handle(bgCtx, h.toModel(bgCtx, in)); err != nil {
				h.l.Errorf(bgCtx, "whatsapp handler: background handle failed: %v", err)
			}
		}()
	}

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// toModel converts a normalized inbound message to the domain shape,
// resolving media bytes when present. A failed download leaves MediaBuffer
// empty; the usecase asks the user to resend.
func (h *handler) toModel(ctx context.Context, in pkgWhatsApp.Incoming) model.Message {
	msg := model.Message{
		From:     in.From,
		Type:     messageType(in.Type),
		Text:     in.Text,
		Filename: in.Filename,
		MimeType: in.MimeType,
	}

	if in.IsMedia() {
		data, mime, err := h.wa.DownloadMedia(ctx, in.MediaID)
		if err != nil {
			h.l.Errorf(ctx, "whatsapp handler: media download failed: %v", err)
			return msg
		}
		msg.MediaBuffer = data
		if msg.MimeType == "" {
			msg.MimeType = mime
		}
		if msg.Filename == "" {
			msg.Filename = mediaFilename(in.MediaID, msg.MimeType)
		}
	}
	return msg
}

func messageType(t string) model.MessageType {
	switch t {
	case pkgWhatsApp.TypeImage:
		return model.MessageImage
	case pkgWhatsApp.TypeDocument:
		return model.MessageDocument
	case pkgWhatsApp.TypeAudio:
		return model.MessageAudio
	case pkgWhatsApp.TypeVideo:
		return model.MessageVideo
	default:
		// button and interactive replies carry text
		return model.MessageText
	}
}

// mediaFilename names attachments that arrive without one (images, audio,
// video) after their media ID.
func mediaFilename(mediaID, mimeType string) string {
	ext := map[string]string{
		"image/jpeg":      ".jpg",
		"image/png":       ".png",
		"image/webp":      ".webp",
		"application/pdf": ".pdf",
		"audio/ogg":       ".ogg",
		"audio/mpeg":      ".mp3",
		"video/mp4":       ".mp4",
	}[mimeType]
	return "wa-" + mediaID + ext
}
