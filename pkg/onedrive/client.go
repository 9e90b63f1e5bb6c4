package onedrive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

const (
	defaultAPIURL  = "https://graph.microsoft.com/v1.0"
	defaultFolder  = "WhatsApp"
	defaultTimeout = 15 * time.Second
)

// Config configures the OneDrive client. The refresh token comes from a
// one-time consent flow done outside the service.
type Config struct {
	ClientID     string
	ClientSecret string
	TenantID     string
	RefreshToken string
	Scopes       string // space-separated, e.g. "offline_access Files.ReadWrite"
	Folder       string // drive folder uploads land in, default "WhatsApp"
}

// Item is the stored drive item an upload resolves to.
type Item struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	WebURL string `json:"webUrl"`
}

// Client talks to the Microsoft Graph drive API. The underlying HTTP client
// refreshes the access token transparently.
type Client struct {
	folder     string
	apiURL     string
	httpClient *http.Client
}

// New creates a OneDrive client that authenticates with the configured
// refresh token.
func New(ctx context.Context, cfg Config) *Client {
	tenant := cfg.TenantID
	if tenant == "" {
		tenant = "common"
	}
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       strings.Fields(cfg.Scopes),
		Endpoint:     microsoft.AzureADEndpoint(tenant),
	}

	// Bound both the token refresh and the API calls themselves.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: defaultTimeout})
	tokenSource := oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})
	httpClient := oauth2.NewClient(ctx, tokenSource)
	httpClient.Timeout = defaultTimeout

	return &Client{
		folder:     folderOrDefault(cfg.Folder),
		apiURL:     defaultAPIURL,
		httpClient: httpClient,
	}
}

// NewFromHTTP creates a client from a pre-configured HTTP client. Meant for
// tests and callers that manage authentication themselves.
func NewFromHTTP(httpClient *http.Client, folder string) *Client {
	return &Client{
		folder:     folderOrDefault(folder),
		apiURL:     defaultAPIURL,
		httpClient: httpClient,
	}
}

// SetAPIURL overrides the default Graph API URL for testing purposes.
func (c *Client) SetAPIURL(url string) {
	c.apiURL = url
}

// UploadBuffer stores the bytes under the configured folder and returns the
// resulting drive item. Name collisions are resolved by the provider
// renaming the new item.
func (c *Client) UploadBuffer(ctx context.Context, filename, mimeType string, data []byte) (Item, error) {
	if filename == "" {
		return Item{}, fmt.Errorf("onedrive: filename is required")
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	uploadURL := fmt.Sprintf("%s/me/drive/root:/%s/%s:/content?@microsoft.graph.conflictBehavior=rename",
		c.apiURL, url.PathEscape(c.folder), url.PathEscape(filename))

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return Item{}, err
	}
	req.Header.Set("Content-Type", mimeType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Item{}, fmt.Errorf("onedrive: upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		return Item{}, fmt.Errorf("onedrive: upload API error %d: %s", resp.StatusCode, string(raw))
	}

	var item Item
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return Item{}, fmt.Errorf("onedrive: failed to decode upload response: %w", err)
	}
	return item, nil
}

func folderOrDefault(folder string) string {
	if folder == "" {
		return defaultFolder
	}
	return folder
}
