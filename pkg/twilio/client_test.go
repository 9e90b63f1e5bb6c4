package twilio_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wa-assistant/pkg/twilio"
)

func TestStartClickToCall(t *testing.T) {
	var gotPath, gotTo, gotFrom, gotTwiml string
	var gotUser, gotPass string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		r.ParseForm()
		gotTo = r.PostFormValue("To")
		gotFrom = r.PostFormValue("From")
		gotTwiml = r.PostFormValue("Twiml")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"CA123","status":"queued"}`))
	}))
	defer ts.Close()

	client := twilio.NewClient("AC123", "secret", "+15550001111")
	client.SetAPIURL(ts.URL)

	err := client.StartClickToCall(context.Background(), "+5215512345678", "+5215598765432")
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}

	if gotPath != "/2010-04-01/Accounts/AC123/Calls.json" {
		t.Errorf("path = %q", gotPath)
	}
	if gotUser != "AC123" || gotPass != "secret" {
		t.Errorf("basic auth = %q:%q", gotUser, gotPass)
	}
	// The user's own phone rings first; the other party is bridged in TwiML.
	if gotTo != "+5215512345678" {
		t.Errorf("To = %q", gotTo)
	}
	if gotFrom != "+15550001111" {
		t.Errorf("From = %q", gotFrom)
	}
	if !strings.Contains(gotTwiml, `<Dial callerId="+15550001111">`) ||
		!strings.Contains(gotTwiml, "<Number>+5215598765432</Number>") {
		t.Errorf("Twiml = %q", gotTwiml)
	}
}

func TestStartClickToCallAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":21211,"message":"invalid number"}`, http.StatusBadRequest)
	}))
	defer ts.Close()

	client := twilio.NewClient("AC123", "secret", "+15550001111")
	client.SetAPIURL(ts.URL)

	if err := client.StartClickToCall(context.Background(), "bad", "worse"); err == nil {
		t.Fatal("expected an error on 400")
	}
}

func TestStartClickToCallMissingConfig(t *testing.T) {
	client := twilio.NewClient("", "", "")
	if err := client.StartClickToCall(context.Background(), "+52", "+52"); err == nil {
		t.Fatal("expected an error without credentials")
	}
}
