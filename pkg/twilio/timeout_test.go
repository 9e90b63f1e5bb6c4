package twilio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClientBoundsOutboundCalls(t *testing.T) {
	c := NewClient("AC123", "secret", "+15550001111")
	if c.httpClient.Timeout <= 0 {
		t.Fatal("http client has no timeout, outbound calls are unbounded")
	}
}

func TestStartClickToCallStalledServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient("AC123", "secret", "+15550001111")
	c.SetAPIURL(srv.URL)
	c.httpClient.Timeout = 100 * time.Millisecond

	start := time.Now()
	err := c.StartClickToCall(context.Background(), "5215512345678", "5512345678")
	if err == nil {
		t.Fatal("expected error from stalled server, got nil")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("StartClickToCall returned after %v, timeout did not bound the call", elapsed)
	}
}
