package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"wa-assistant/config"
	waDelivery "wa-assistant/internal/assistant/delivery/whatsapp"
	"wa-assistant/internal/assistant/usecase"
	"wa-assistant/internal/httpserver"
	"wa-assistant/internal/nlp"
	"wa-assistant/internal/router"
	"wa-assistant/internal/webhook"
	"wa-assistant/pkg/caldav"
	"wa-assistant/pkg/log"
	"wa-assistant/pkg/onedrive"
	"wa-assistant/pkg/twilio"
	"wa-assistant/pkg/whatsapp"
)

func main() {
	// 1. Configuration (.env is optional, real env wins)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting wa-assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Temporal resolver
	resolver, err := nlp.NewResolver(cfg.CalDAV.Timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.CalDAV.Timezone, err)
		resolver, _ = nlp.NewResolver("UTC")
	}

	// 4. Provider clients
	calendarClient, err := caldav.New(logger, caldav.Config{
		Username:      cfg.CalDAV.Username,
		AppPassword:   cfg.CalDAV.AppPassword,
		BaseURL:       cfg.CalDAV.BaseURL,
		CollectionURL: cfg.CalDAV.CollectionURL,
		CalendarName:  cfg.CalDAV.CalendarName,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize calendar client: %v", err)
		return
	}

	waClient := whatsapp.NewClient(cfg.WhatsApp.Token, cfg.WhatsApp.PhoneNumberID)

	driveClient := onedrive.New(ctx, onedrive.Config{
		ClientID:     cfg.OneDrive.ClientID,
		ClientSecret: cfg.OneDrive.ClientSecret,
		TenantID:     cfg.OneDrive.TenantID,
		RefreshToken: cfg.OneDrive.RefreshToken,
		Scopes:       strings.Join(cfg.OneDrive.Scopes, " "),
	})

	twilioClient := twilio.NewClient(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.CallerID)

	// 5. Assistant domain
	intentRouter := router.New(logger)
	assistantUC := usecase.New(logger, intentRouter, calendarClient, waClient,
		driveClient, twilioClient, resolver, time.Now)

	whatsappHandler := waDelivery.New(logger, assistantUC, waClient, webhook.SecurityConfig{
		Secret:          cfg.Webhook.Secret,
		VerifyToken:     cfg.WhatsApp.VerifyToken,
		AllowedIPs:      cfg.Webhook.AllowedIPs,
		RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
	})

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		WhatsAppHandler: whatsappHandler,
		WebhookEnabled:  cfg.Webhook.Enabled,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
