package mock

import (
	"context"

	"github.com/mgrzeszczak/unwall"
)

var _ unwall.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of unwall.Fetcher.
type Fetcher struct {
	FetchTextFn func(ctx context.Context, url string) (string, error)
	FetchJSONFn func(ctx context.Context, url string, payload any) (any, error)
	CloseFn     func() error
}

func (f *Fetcher) FetchText(ctx context.Context, url string) (string, error) {
	return f.FetchTextFn(ctx, url)
}

func (f *Fetcher) FetchJSON(ctx context.Context, url string, payload any) (any, error) {
	return f.FetchJSONFn(ctx, url, payload)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
