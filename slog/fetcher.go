// Package slog provides logging decorators for unwall services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mgrzeszczak/unwall"
)

// Ensure LoggingFetcher implements unwall.Fetcher.
var _ unwall.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   unwall.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next unwall.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// FetchText logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) FetchText(ctx context.Context, url string) (text string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch text",
			"url", url,
			"bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchText(ctx, url)
}

// FetchJSON logs the URL being posted to and delegates to the wrapped fetcher.
func (f *LoggingFetcher) FetchJSON(ctx context.Context, url string, payload any) (decoded any, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch json",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchJSON(ctx, url, payload)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
