package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()
	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() {
	ctx := context.Background()

	switch {
	case srv.whatsappHandler == nil:
		srv.l.Infof(ctx, "WhatsApp handler not configured, skipping webhook routes")
	case !srv.webhookEnabled:
		srv.l.Infof(ctx, "Webhook disabled by config, skipping webhook routes")
	default:
		srv.gin.GET("/webhook", srv.whatsappHandler.HandleVerification)
		srv.gin.POST("/webhook", srv.whatsappHandler.HandleWebhook)
		srv.l.Infof(ctx, "WhatsApp webhook routes registered at /webhook")
	}
}
