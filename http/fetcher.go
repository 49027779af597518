// Package http provides an HTTP-based implementation of unwall.Fetcher
// that presents a real browser's request fingerprint. WAF-protected sites
// reject obviously non-browser clients, so every request carries the
// header set of a configurable browser profile.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mgrzeszczak/unwall"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultBrowser is the profile used when none is configured.
const DefaultBrowser = "chrome"

// supportedBrowsers lists the impersonation profiles, grouped by family.
var supportedBrowsers = []string{
	"chrome", "chrome110", "chrome116", "chrome119", "chrome120", "chrome124",
	"safari", "safari17_0", "safari18_0",
	"edge", "edge101",
	"firefox", "firefox109",
}

// SupportedBrowsers returns the impersonation profiles in display order.
func SupportedBrowsers() []string {
	out := make([]string, len(supportedBrowsers))
	copy(out, supportedBrowsers)
	return out
}

// userAgent returns the User-Agent string for a profile family.
func userAgent(browser string) string {
	switch {
	case strings.HasPrefix(browser, "firefox"):
		return "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/109.0"
	case strings.HasPrefix(browser, "safari"):
		return "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15"
	case strings.HasPrefix(browser, "edge"):
		return "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36 Edg/124.0.0.0"
	default:
		return "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	}
}

// browserHeaders is the common header set sent with every request.
var browserHeaders = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.5",
	"DNT":                       "1",
	"Upgrade-Insecure-Requests": "1",
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "none",
	"Cache-Control":             "max-age=0",
}

// Ensure Fetcher implements unwall.Fetcher at compile time.
var _ unwall.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves content over plain HTTP with browser impersonation
// headers. Suitable for sites whose protection checks request identity but
// does not require JavaScript execution.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	browser string
	headers map[string]string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithBrowser sets the impersonation profile.
func WithBrowser(browser string) Option {
	return func(f *Fetcher) {
		f.browser = browser
	}
}

// WithHeaders adds headers merged over the profile's defaults.
func WithHeaders(headers map[string]string) Option {
	return func(f *Fetcher) {
		f.headers = headers
	}
}

// NewFetcher creates a new impersonating Fetcher. An unknown browser
// profile is EINVALID.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		browser: DefaultBrowser,
	}
	for _, opt := range opts {
		opt(f)
	}

	supported := false
	for _, b := range supportedBrowsers {
		if f.browser == b {
			supported = true
			break
		}
	}
	if !supported {
		return nil, unwall.Errorf(unwall.EINVALID, "unsupported browser profile %q", f.browser)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f, nil
}

// CanonicalURL rewrites Reddit URLs to the old.reddit.com host, whose
// markup dialect is the scrapable one. Other URLs pass through unchanged.
func CanonicalURL(url string) string {
	if !strings.Contains(url, "reddit.com") || strings.Contains(url, "old.reddit.com") {
		return url
	}
	if strings.Contains(url, "www.reddit.com") {
		return strings.Replace(url, "www.reddit.com", "old.reddit.com", 1)
	}
	return strings.Replace(url, "://reddit.com", "://old.reddit.com", 1)
}

// FetchText retrieves the raw document at url with impersonation headers.
func (f *Fetcher) FetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, CanonicalURL(url), nil)
	if err != nil {
		return "", unwall.Errorf(unwall.EINVALID, "invalid URL %q: %v", url, err)
	}
	f.setHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", unwall.Errorf(unwall.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", unwall.Errorf(unwall.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", unwall.Errorf(unwall.EUNAVAILABLE, "read %s: %v", url, err)
	}

	return string(body), nil
}

// FetchJSON posts payload as JSON to url and decodes the response.
func (f *Fetcher) FetchJSON(ctx context.Context, url string, payload any) (any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, unwall.Errorf(unwall.EINVALID, "encode payload: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, unwall.Errorf(unwall.EINVALID, "invalid URL %q: %v", url, err)
	}
	f.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, unwall.Errorf(unwall.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, unwall.Errorf(unwall.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	var decoded any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, unwall.Errorf(unwall.EINVALID, "decode response from %s: %v", url, err)
	}
	return decoded, nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func (f *Fetcher) setHeaders(req *http.Request) {
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}
	req.Header.Set("User-Agent", userAgent(f.browser))
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}
}
