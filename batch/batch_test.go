package batch_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgrzeszczak/unwall"
	"github.com/mgrzeszczak/unwall/batch"
	"github.com/mgrzeszczak/unwall/scrape"
)

// scraperFunc adapts a function to the batch.Scraper interface.
type scraperFunc func(ctx context.Context, url string, opts scrape.Options) (*unwall.Result, error)

func (f scraperFunc) Scrape(ctx context.Context, url string, opts scrape.Options) (*unwall.Result, error) {
	return f(ctx, url, opts)
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("returns outcomes in input order", func(t *testing.T) {
		t.Parallel()

		scraper := scraperFunc(func(ctx context.Context, url string, opts scrape.Options) (*unwall.Result, error) {
			return &unwall.Result{Kind: unwall.KindGeneric, URL: url}, nil
		})

		r := batch.NewRunner(scraper, batch.WithLogger(slog.New(slog.DiscardHandler)))

		urls := []string{
			"https://example.com/a",
			"https://example.com/b",
			"https://example.com/c",
		}
		outcomes := r.Run(context.Background(), urls)

		require.Len(t, outcomes, 3)
		for i, out := range outcomes {
			assert.Equal(t, i, out.Position)
			assert.Equal(t, urls[i], out.URL)
			require.NoError(t, out.Err)
			require.NotNil(t, out.Result)
			assert.Equal(t, urls[i], out.Result.URL)
		}
	})

	t.Run("drops duplicate URLs", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		calls := map[string]int{}
		scraper := scraperFunc(func(ctx context.Context, url string, opts scrape.Options) (*unwall.Result, error) {
			mu.Lock()
			calls[url]++
			mu.Unlock()
			return &unwall.Result{URL: url}, nil
		})

		r := batch.NewRunner(scraper, batch.WithLogger(slog.New(slog.DiscardHandler)))

		outcomes := r.Run(context.Background(), []string{
			"https://example.com/a",
			"https://example.com/a",
			"https://example.com/b",
			"https://example.com/a",
		})

		require.Len(t, outcomes, 2)
		assert.Equal(t, 0, outcomes[0].Position)
		assert.Equal(t, 2, outcomes[1].Position)
		assert.Equal(t, 1, calls["https://example.com/a"])
		assert.Equal(t, 1, calls["https://example.com/b"])
	})

	t.Run("one failing URL does not abort the batch", func(t *testing.T) {
		t.Parallel()

		scraper := scraperFunc(func(ctx context.Context, url string, opts scrape.Options) (*unwall.Result, error) {
			if strings.HasSuffix(url, "/bad") {
				return nil, errors.New("boom")
			}
			return &unwall.Result{URL: url}, nil
		})

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		r := batch.NewRunner(scraper, batch.WithLogger(logger))

		outcomes := r.Run(context.Background(), []string{
			"https://example.com/good",
			"https://example.com/bad",
			"https://example.com/also-good",
		})

		require.Len(t, outcomes, 3)
		assert.NoError(t, outcomes[0].Err)
		assert.Error(t, outcomes[1].Err)
		assert.NoError(t, outcomes[2].Err)
		assert.Contains(t, buf.String(), "scrape failed")
	})

	t.Run("passes scrape options through", func(t *testing.T) {
		t.Parallel()

		var got scrape.Options
		scraper := scraperFunc(func(ctx context.Context, url string, opts scrape.Options) (*unwall.Result, error) {
			got = opts
			return &unwall.Result{URL: url}, nil
		})

		r := batch.NewRunner(scraper,
			batch.WithLogger(slog.New(slog.DiscardHandler)),
			batch.WithScrapeOptions(scrape.Options{IncludeComments: true, CommentCharLimit: 1000}),
		)

		r.Run(context.Background(), []string{"https://example.com/a"})

		assert.True(t, got.IncludeComments)
		assert.Equal(t, 1000, got.CommentCharLimit)
	})

	t.Run("applies per-host rate limiting", func(t *testing.T) {
		t.Parallel()

		scraper := scraperFunc(func(ctx context.Context, url string, opts scrape.Options) (*unwall.Result, error) {
			return &unwall.Result{URL: url}, nil
		})

		r := batch.NewRunner(scraper,
			batch.WithLogger(slog.New(slog.DiscardHandler)),
			batch.WithHostLimiter(batch.NewHostLimiter(1000)),
		)

		outcomes := r.Run(context.Background(), []string{
			"https://example.com/a",
			"https://example.com/b",
		})

		require.Len(t, outcomes, 2)
		assert.NoError(t, outcomes[0].Err)
		assert.NoError(t, outcomes[1].Err)
	})
}

func TestParseList(t *testing.T) {
	t.Parallel()

	input := strings.NewReader(`# batch input
https://example.com/a

https://example.com/b
  https://example.com/c
# trailing comment
`)

	urls, err := batch.ParseList(input)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
	}, urls)
}
