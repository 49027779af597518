package unwall

import "context"

// Fetcher retrieves documents from URLs. Implementations own browser
// impersonation, redirect handling, and request timeouts; the engine only
// supplies URLs and payloads.
type Fetcher interface {
	// FetchText retrieves the raw document at url.
	// The context controls timeout and cancellation.
	FetchText(ctx context.Context, url string) (string, error)

	// FetchJSON posts payload as JSON to url and returns the decoded
	// response value.
	FetchJSON(ctx context.Context, url string, payload any) (any, error)

	// Close releases transport resources.
	Close() error
}
