package whatsapp

import (
	"github.com/gin-gonic/gin"

	"wa-assistant/internal/assistant"
	"wa-assistant/internal/webhook"
	pkgLog "wa-assistant/pkg/log"
	pkgWhatsApp "wa-assistant/pkg/whatsapp"
)

// Handler is the interface for the WhatsApp delivery handler.
type Handler interface {
	HandleVerification(c *gin.Context)
	HandleWebhook(c *gin.Context)
}

// New creates a new WhatsApp delivery handler.
func New(
	l pkgLog.Logger,
	uc assistant.UseCase,
	wa *pkgWhatsApp.Client,
	securityConfig webhook.SecurityConfig,
) Handler {
	return &handler{
		l:             l,
		uc:            uc,
		wa:            wa,
		security:      webhook.NewSecurityValidator(securityConfig),
		signingSecret: securityConfig.Secret != "",
	}
}
