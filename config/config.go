package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Assistant specifics
	WhatsApp WhatsAppConfig
	CalDAV   CalDAVConfig
	OneDrive OneDriveConfig
	Twilio   TwilioConfig

	// Webhooks
	Webhook WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// WhatsAppConfig configures the Meta WhatsApp Cloud API.
type WhatsAppConfig struct {
	Token         string // Bearer token for the Graph API
	PhoneNumberID string // Sending phone number ID
	VerifyToken   string // Webhook verification token (GET handshake)
}

// CalDAVConfig configures the calendar provider.
type CalDAVConfig struct {
	Username      string
	AppPassword   string
	BaseURL       string // CalDAV discovery endpoint
	CollectionURL string // Direct collection URL; skips discovery when set
	CalendarName  string // Display-name match during discovery (optional)
	Timezone      string // IANA zone for interpreting user dates
}

// OneDriveConfig configures Microsoft Graph file storage.
type OneDriveConfig struct {
	ClientID     string
	ClientSecret string
	TenantID     string
	RefreshToken string
	Scopes       []string
}

// TwilioConfig configures click-to-call.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	CallerID   string
}

type WebhookConfig struct {
	Enabled         bool
	Secret          string // Meta app secret for X-Hub-Signature-256
	AllowedIPs      []string
	RateLimitPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// WhatsApp Cloud API
	cfg.WhatsApp.Token = viper.GetString("whatsapp.token")
	cfg.WhatsApp.PhoneNumberID = viper.GetString("whatsapp.phone_number_id")
	cfg.WhatsApp.VerifyToken = viper.GetString("whatsapp.verify_token")
	if v := viper.GetString("whatsapp_token"); v != "" {
		cfg.WhatsApp.Token = v
	}
	if v := viper.GetString("whatsapp_phone_number_id"); v != "" {
		cfg.WhatsApp.PhoneNumberID = v
	}
	if v := viper.GetString("whatsapp_verify_token"); v != "" {
		cfg.WhatsApp.VerifyToken = v
	}

	// CalDAV calendar
	cfg.CalDAV.Username = viper.GetString("caldav.username")
	cfg.CalDAV.AppPassword = viper.GetString("caldav.app_password")
	cfg.CalDAV.BaseURL = viper.GetString("caldav.base_url")
	cfg.CalDAV.CollectionURL = viper.GetString("caldav.collection_url")
	cfg.CalDAV.CalendarName = viper.GetString("caldav.calendar_name")
	cfg.CalDAV.Timezone = viper.GetString("caldav.timezone")
	if v := viper.GetString("caldav_username"); v != "" {
		cfg.CalDAV.Username = v
	}
	if v := viper.GetString("caldav_app_password"); v != "" {
		cfg.CalDAV.AppPassword = v
	}
	if v := viper.GetString("caldav_collection_url"); v != "" {
		cfg.CalDAV.CollectionURL = v
	}

	// OneDrive / Microsoft Graph
	cfg.OneDrive.ClientID = viper.GetString("onedrive.client_id")
	cfg.OneDrive.ClientSecret = viper.GetString("onedrive.client_secret")
	cfg.OneDrive.TenantID = viper.GetString("onedrive.tenant_id")
	cfg.OneDrive.RefreshToken = viper.GetString("onedrive.refresh_token")
	if v := viper.GetString("ms_client_id"); v != "" {
		cfg.OneDrive.ClientID = v
	}
	if v := viper.GetString("ms_client_secret"); v != "" {
		cfg.OneDrive.ClientSecret = v
	}
	if v := viper.GetString("ms_tenant_id"); v != "" {
		cfg.OneDrive.TenantID = v
	}
	if v := viper.GetString("ms_refresh_token"); v != "" {
		cfg.OneDrive.RefreshToken = v
	}
	if raw := viper.GetString("onedrive.scopes"); raw != "" {
		for _, s := range strings.Split(raw, " ") {
			if s = strings.TrimSpace(s); s != "" {
				cfg.OneDrive.Scopes = append(cfg.OneDrive.Scopes, s)
			}
		}
	}

	// Twilio
	cfg.Twilio.AccountSID = viper.GetString("twilio.account_sid")
	cfg.Twilio.AuthToken = viper.GetString("twilio.auth_token")
	cfg.Twilio.CallerID = viper.GetString("twilio.caller_id")
	if v := viper.GetString("twilio_account_sid"); v != "" {
		cfg.Twilio.AccountSID = v
	}
	if v := viper.GetString("twilio_auth_token"); v != "" {
		cfg.Twilio.AuthToken = v
	}
	if v := viper.GetString("twilio_caller_id"); v != "" {
		cfg.Twilio.CallerID = v
	}

	// Webhooks
	cfg.Webhook.Enabled = viper.GetBool("webhook.enabled")
	cfg.Webhook.Secret = viper.GetString("webhook.secret")
	if v := viper.GetString("webhook_secret"); v != "" {
		cfg.Webhook.Secret = v
	}
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")

	// Split allowed IPs since viper might not parse array seamlessly from env
	var ips []string
	if rawIps := viper.GetString("webhook.allowed_ips"); rawIps != "" {
		for _, ip := range strings.Split(rawIps, ",") {
			ip = strings.TrimSpace(ip)
			if ip != "" {
				ips = append(ips, ip)
			}
		}
	}
	cfg.Webhook.AllowedIPs = ips

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("caldav.base_url", "https://caldav.icloud.com/")
	viper.SetDefault("caldav.timezone", "America/Mexico_City")
	viper.SetDefault("onedrive.scopes", "offline_access Files.ReadWrite")
	viper.SetDefault("webhook.rate_limit_per_min", 60)
	viper.SetDefault("webhook.enabled", true)
}
