package webhook_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http/httptest"
	"testing"

	"wa-assistant/internal/webhook"
)

func sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestValidateMetaSignature(t *testing.T) {
	v := webhook.NewSecurityValidator(webhook.SecurityConfig{Secret: "app-secret"})
	payload := []byte(`{"object":"whatsapp_business_account"}`)

	t.Run("valid signature", func(t *testing.T) {
		if err := v.ValidateMetaSignature(payload, sign("app-secret", payload)); err != nil {
			t.Errorf("expected valid signature, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		if err := v.ValidateMetaSignature(payload, sign("other-secret", payload)); err == nil {
			t.Error("expected signature failure")
		}
	})

	t.Run("tampered payload", func(t *testing.T) {
		sig := sign("app-secret", payload)
		if err := v.ValidateMetaSignature([]byte(`{"object":"evil"}`), sig); err == nil {
			t.Error("expected signature failure")
		}
	})

	t.Run("missing prefix", func(t *testing.T) {
		if err := v.ValidateMetaSignature(payload, "deadbeef"); err == nil {
			t.Error("expected format error")
		}
	})

	t.Run("unconfigured secret", func(t *testing.T) {
		empty := webhook.NewSecurityValidator(webhook.SecurityConfig{})
		if err := empty.ValidateMetaSignature(payload, sign("", payload)); err == nil {
			t.Error("expected error with no secret configured")
		}
	})
}

func TestVerifyToken(t *testing.T) {
	v := webhook.NewSecurityValidator(webhook.SecurityConfig{VerifyToken: "verify-me"})

	if !v.VerifyToken("verify-me") {
		t.Error("expected token to verify")
	}
	if v.VerifyToken("wrong") {
		t.Error("expected wrong token to fail")
	}
	if webhook.NewSecurityValidator(webhook.SecurityConfig{}).VerifyToken("") {
		t.Error("empty configured token must never verify")
	}
}

func TestValidateIPAddress(t *testing.T) {
	v := webhook.NewSecurityValidator(webhook.SecurityConfig{
		AllowedIPs: []string{"10.0.0.1", "192.168.0.0/16"},
	})

	t.Run("exact match", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/webhook", nil)
		r.RemoteAddr = "10.0.0.1:4567"
		if err := v.ValidateIPAddress(r); err != nil {
			t.Errorf("expected allowed, got %v", err)
		}
	})

	t.Run("cidr match via forwarded header", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/webhook", nil)
		r.Header.Set("X-Forwarded-For", "192.168.5.9, 10.9.9.9")
		if err := v.ValidateIPAddress(r); err != nil {
			t.Errorf("expected allowed, got %v", err)
		}
	})

	t.Run("not whitelisted", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/webhook", nil)
		r.RemoteAddr = "203.0.113.7:999"
		if err := v.ValidateIPAddress(r); err == nil {
			t.Error("expected rejection")
		}
	})

	t.Run("no restriction configured", func(t *testing.T) {
		open := webhook.NewSecurityValidator(webhook.SecurityConfig{})
		r := httptest.NewRequest("POST", "/webhook", nil)
		r.RemoteAddr = "203.0.113.7:999"
		if err := open.ValidateIPAddress(r); err != nil {
			t.Errorf("expected allowed, got %v", err)
		}
	})
}

func TestCheckRateLimit(t *testing.T) {
	v := webhook.NewSecurityValidator(webhook.SecurityConfig{RateLimitPerMin: 60})

	// Burst of 6 allowed, then throttled.
	var denied bool
	for i := 0; i < 20; i++ {
		if err := v.CheckRateLimit("5215512345678"); err != nil {
			denied = true
			break
		}
	}
	if !denied {
		t.Error("expected rate limit to kick in within 20 rapid calls")
	}

	// A different source is unaffected.
	if err := v.CheckRateLimit("5215598765432"); err != nil {
		t.Errorf("independent source throttled: %v", err)
	}
}
