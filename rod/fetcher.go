// Package rod provides a browser-automation implementation of unwall.Fetcher.
// Sites whose protection requires JavaScript execution get fetched through a
// headless Chrome instance; JSON API calls don't need rendering and are
// delegated to a plain HTTP fetcher.
package rod

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/mgrzeszczak/unwall"
	unwallhttp "github.com/mgrzeszczak/unwall/http"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 60 * time.Second

// Ensure Fetcher implements unwall.Fetcher at compile time.
var _ unwall.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser *rod.Browser
	httpf   unwall.Fetcher
	timeout time.Duration

	mu     sync.Mutex
	closed bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds each page render.
// Defaults to DefaultFetchTimeout if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	httpf, err := unwallhttp.NewFetcher()
	if err != nil {
		return nil, err
	}
	f.httpf = httpf

	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	f.browser = browser

	return f, nil
}

// FetchText navigates to the URL and returns the rendered HTML.
func (f *Fetcher) FetchText(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return "", unwall.Errorf(unwall.EINVALID, "fetcher is closed")
	}
	f.mu.Unlock()

	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if err := page.Navigate(unwallhttp.CanonicalURL(url)); err != nil {
		return "", err
	}

	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	return html, nil
}

// FetchJSON posts payload as JSON and decodes the response. API endpoints
// return data directly, so rendering is skipped.
func (f *Fetcher) FetchJSON(ctx context.Context, url string, payload any) (any, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, unwall.Errorf(unwall.EINVALID, "fetcher is closed")
	}
	f.mu.Unlock()

	return f.httpf.FetchJSON(ctx, url, payload)
}

// Close releases browser resources. Close is idempotent.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true

	if err := f.httpf.Close(); err != nil {
		return err
	}
	return f.browser.Close()
}
