// Package batch runs the scrape pipeline over many URLs concurrently.
// Duplicate inputs are skipped, hosts are rate limited independently, and
// one failing URL never aborts the rest of the batch.
package batch

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mgrzeszczak/unwall"
	"github.com/mgrzeszczak/unwall/bloom"
	"github.com/mgrzeszczak/unwall/scrape"
)

// DefaultConcurrency is the worker count used when none is configured.
const DefaultConcurrency = 4

// Scraper is the single-URL operation run for each input.
type Scraper interface {
	Scrape(ctx context.Context, url string, opts scrape.Options) (*unwall.Result, error)
}

// Outcome is the per-URL result of a batch run. Position is the URL's
// 0-based index in the input list.
type Outcome struct {
	Position int
	URL      string
	Result   *unwall.Result
	Err      error
}

// Runner executes scrapes over a list of URLs.
type Runner struct {
	scraper     Scraper
	limiter     *HostLimiter
	concurrency int
	logger      *slog.Logger
	opts        scrape.Options
}

// Option configures a Runner.
type Option func(*Runner)

// WithConcurrency sets the number of concurrent workers.
// Defaults to DefaultConcurrency if not specified.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		r.concurrency = n
	}
}

// WithHostLimiter sets the per-host rate limiter.
func WithHostLimiter(l *HostLimiter) Option {
	return func(r *Runner) {
		r.limiter = l
	}
}

// WithLogger sets the logger for per-URL failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithScrapeOptions sets the options passed to every scrape.
func WithScrapeOptions(opts scrape.Options) Option {
	return func(r *Runner) {
		r.opts = opts
	}
}

// NewRunner creates a Runner over scraper.
func NewRunner(scraper Scraper, opts ...Option) *Runner {
	r := &Runner{
		scraper:     scraper,
		concurrency: DefaultConcurrency,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run scrapes all urls and returns one outcome per unique URL, in input
// order. Duplicate URLs after the first occurrence are dropped. A per-URL
// failure is recorded in its outcome and logged, not returned.
func (r *Runner) Run(ctx context.Context, urls []string) []Outcome {
	seen := bloom.NewFilter(uint(len(urls))+1, 0.01)

	var unique []Outcome
	for i, u := range urls {
		if seen.Test(u) {
			continue
		}
		seen.Add(u)
		unique = append(unique, Outcome{Position: i, URL: u})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i := range unique {
		out := &unique[i]
		g.Go(func() error {
			if r.limiter != nil {
				if err := r.limiter.Wait(gctx, hostOf(out.URL)); err != nil {
					out.Err = err
					return nil
				}
			}

			result, err := r.scraper.Scrape(gctx, out.URL, r.opts)
			if err != nil {
				out.Err = err
				r.logger.Warn("scrape failed",
					"url", out.URL,
					"err", err,
				)
				return nil
			}
			out.Result = result
			return nil
		})
	}
	_ = g.Wait()

	return unique
}

// hostOf extracts the host for rate limiting. Unparseable URLs rate limit
// under their raw string.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

// ParseList reads a URL list, one per line. Blank lines and lines starting
// with # are skipped.
func ParseList(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}
