package twilio

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultAPIURL  = "https://api.twilio.com"
	defaultTimeout = 15 * time.Second
)

// Client is a thin Twilio Voice API client covering call origination.
type Client struct {
	accountSID string
	authToken  string
	callerID   string
	apiURL     string
	httpClient *http.Client
}

// NewClient creates a Twilio client. callerID is the verified number calls
// originate from.
func NewClient(accountSID, authToken, callerID string) *Client {
	return &Client{
		accountSID: accountSID,
		authToken:  authToken,
		callerID:   callerID,
		apiURL:     defaultAPIURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// SetAPIURL overrides the default Twilio API URL for testing purposes.
func (c *Client) SetAPIURL(url string) {
	c.apiURL = url
}

// StartClickToCall rings userNumber first and, once answered, bridges the
// call to otherNumber. The caller ID is presented on both legs.
func (c *Client) StartClickToCall(ctx context.Context, userNumber, otherNumber string) error {
	if c.accountSID == "" || c.authToken == "" || c.callerID == "" {
		return fmt.Errorf("twilio: missing credentials or caller ID")
	}

	twiml := fmt.Sprintf(`<Response><Dial callerId="%s"><Number>%s</Number></Dial></Response>`,
		xmlEscape(c.callerID), xmlEscape(otherNumber))

	form := url.Values{}
	form.Set("To", userNumber)
	form.Set("From", c.callerID)
	form.Set("Twiml", twiml)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Calls.json", c.apiURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("twilio: failed to create call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("twilio: calls API error %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}

func xmlEscape(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
