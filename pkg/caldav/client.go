package caldav

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/emersion/go-webdav/caldav"

	pkgLog "wa-assistant/pkg/log"
)

const (
	// collectionTTL bounds how long a resolved collection is trusted before
	// discovery runs again. Never invalidated on provider errors: a stale
	// collection simply surfaces the provider's error upstream.
	collectionTTL = 15 * time.Minute

	defaultTimeout = 15 * time.Second
)

// Config configures the calendar provider client.
type Config struct {
	Username      string
	AppPassword   string
	BaseURL       string        // discovery endpoint, e.g. https://caldav.icloud.com/
	CollectionURL string        // direct collection URL; set it to skip discovery
	CalendarName  string        // display-name match during discovery (optional)
	Timeout       time.Duration // per-request bound, default 15s
}

// basicAuthTransport adds Basic Auth and identification headers to every
// request going to the provider.
type basicAuthTransport struct {
	username  string
	password  string
	transport http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(t.username, t.password)
	req.Header.Set("User-Agent", "wa-assistant/1.0")
	return t.transport.RoundTrip(req)
}

// Client is the only component talking to the remote calendar provider.
// It owns the resolved-collection cache; construct once per process and
// inject it wherever calendar access is needed.
type Client struct {
	cfg        Config
	l          pkgLog.Logger
	httpClient *http.Client
	dav        *caldav.Client
	origin     string // scheme://host of the endpoint, for building absolute hrefs

	mu             sync.RWMutex
	collectionPath string
	resolvedAt     time.Time
}

// New creates a calendar client. Credentials are not validated here; they
// are checked on first use so a misconfigured optional integration does not
// prevent startup.
func New(l pkgLog.Logger, cfg Config) (*Client, error) {
	endpoint := cfg.BaseURL
	if cfg.CollectionURL != "" {
		endpoint = cfg.CollectionURL
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("caldav: invalid endpoint %q", endpoint)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &basicAuthTransport{
			username:  cfg.Username,
			password:  cfg.AppPassword,
			transport: http.DefaultTransport,
		},
	}

	origin := u.Scheme + "://" + u.Host
	davClient, err := caldav.NewClient(httpClient, origin)
	if err != nil {
		return nil, fmt.Errorf("caldav: failed to create caldav client: %w", err)
	}

	return &Client{
		cfg:        cfg,
		l:          l,
		httpClient: httpClient,
		dav:        davClient,
		origin:     origin,
	}, nil
}

// Invalidate drops the cached collection, forcing re-resolution on next use.
// Meant for explicit reconfiguration, never called on provider errors.
func (c *Client) Invalidate() {
	c.mu.Lock()
	c.collectionPath = ""
	c.resolvedAt = time.Time{}
	c.mu.Unlock()
}

// resolveCollection returns the path of the target calendar collection,
// resolving and caching it when needed. Two concurrent resolutions may both
// run and one overwrite the other; resolution is idempotent so the race is
// benign.
func (c *Client) resolveCollection(ctx context.Context) (string, error) {
	if c.cfg.Username == "" || c.cfg.AppPassword == "" {
		return "", ErrMissingCredentials
	}

	c.mu.RLock()
	path, at := c.collectionPath, c.resolvedAt
	c.mu.RUnlock()
	if path != "" && time.Since(at) < collectionTTL {
		return path, nil
	}

	path, err := c.discoverCollection(ctx)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.collectionPath = path
	c.resolvedAt = time.Now()
	c.mu.Unlock()

	return path, nil
}

func (c *Client) discoverCollection(ctx context.Context) (string, error) {
	// A directly configured collection address wins over discovery.
	if c.cfg.CollectionURL != "" {
		u, err := url.Parse(c.cfg.CollectionURL)
		if err != nil {
			return "", fmt.Errorf("caldav: invalid collection URL: %w", err)
		}
		return ensureSlash(u.Path), nil
	}

	principal, err := c.dav.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return "", fmt.Errorf("caldav: failed to find principal: %w", err)
	}

	homeSet, err := c.dav.FindCalendarHomeSet(ctx, principal)
	if err != nil {
		return "", fmt.Errorf("caldav: failed to find calendar home set: %w", err)
	}

	calendars, err := c.dav.FindCalendars(ctx, homeSet)
	if err != nil {
		return "", fmt.Errorf("caldav: failed to list calendars: %w", err)
	}
	if len(calendars) == 0 {
		return "", ErrNoCollection
	}

	c.l.Infof(ctx, "caldav: discovered %d collections", len(calendars))

	// Priority: configured display name, then the first collection that
	// supports event objects, then whatever came first.
	if c.cfg.CalendarName != "" {
		for _, cal := range calendars {
			if strings.EqualFold(cal.Name, c.cfg.CalendarName) {
				return ensureSlash(cal.Path), nil
			}
		}
	}
	for _, cal := range calendars {
		if supportsEvents(cal) {
			return ensureSlash(cal.Path), nil
		}
	}
	return ensureSlash(calendars[0].Path), nil
}

func supportsEvents(cal caldav.Calendar) bool {
	for _, comp := range cal.SupportedComponentSet {
		if comp == "VEVENT" {
			return true
		}
	}
	return false
}

// absoluteURL turns a provider path into a full URL; hrefs the provider
// already returned absolute are kept as-is.
func (c *Client) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return c.origin + href
}

func ensureSlash(p string) string {
	if strings.HasSuffix(p, "/") {
		return p
	}
	return p + "/"
}
