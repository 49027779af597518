// Package scrape orchestrates fetching and extraction. A URL is routed to
// the extractor matching its site: Reddit threads, YouTube videos, or the
// generic article pipeline for everything else.
package scrape

import (
	"context"
	"log/slog"

	"github.com/mgrzeszczak/unwall"
	"github.com/mgrzeszczak/unwall/htmltomarkdown"
	"github.com/mgrzeszczak/unwall/readability"
	"github.com/mgrzeszczak/unwall/reddit"
	"github.com/mgrzeszczak/unwall/trafilatura"
	"github.com/mgrzeszczak/unwall/youtube"
)

// Options controls a single scrape.
type Options struct {
	// IncludeComments fetches YouTube comments via the continuation API.
	// Reddit comments are always part of the thread page.
	IncludeComments bool

	// CommentCharLimit caps the total characters of YouTube comment text.
	// Zero means the default limit.
	CommentCharLimit int

	// MaxCommentPages caps the number of comment pages fetched.
	// Zero means a single page.
	MaxCommentPages int
}

// Scraper routes URLs to site extractors and assembles results.
type Scraper struct {
	fetcher unwall.Fetcher
	reddit  *reddit.Extractor
	youtube *youtube.Extractor
	generic unwall.Extractor
	logger  *slog.Logger
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithLogger sets the logger for the scraper and its site extractors.
// Defaults to slog.Default if not specified.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scraper) {
		s.logger = logger
	}
}

// WithGenericExtractor replaces the default article pipeline.
func WithGenericExtractor(e unwall.Extractor) Option {
	return func(s *Scraper) {
		s.generic = e
	}
}

// NewScraper creates a Scraper reading pages through fetcher. The default
// article pipeline tries trafilatura first and falls back to readability,
// both rendering markdown.
func NewScraper(fetcher unwall.Fetcher, opts ...Option) *Scraper {
	s := &Scraper{
		fetcher: fetcher,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.reddit = reddit.NewExtractor(reddit.WithLogger(s.logger))
	s.youtube = youtube.NewExtractor(fetcher, youtube.WithLogger(s.logger))

	if s.generic == nil {
		conv := htmltomarkdown.NewConverter()
		s.generic = unwall.NewChainExtractor(
			trafilatura.NewExtractor(trafilatura.WithConverter(conv)),
			readability.NewExtractor(readability.WithConverter(conv)),
		)
	}

	return s
}

// Scrape fetches url and extracts it with the extractor matching its site.
func (s *Scraper) Scrape(ctx context.Context, url string, opts Options) (*unwall.Result, error) {
	kind := unwall.DetectKind(url)

	rawHTML, err := s.fetcher.FetchText(ctx, url)
	if err != nil {
		return nil, err
	}

	result := &unwall.Result{Kind: kind, URL: url}

	switch kind {
	case unwall.KindReddit:
		thread, err := s.reddit.Parse(rawHTML, url)
		if err != nil {
			return nil, err
		}
		result.Thread = thread

	case unwall.KindYouTube:
		video, err := s.youtube.Parse(ctx, rawHTML, url, youtube.ParseOptions{
			IncludeComments:  opts.IncludeComments,
			CommentCharLimit: opts.CommentCharLimit,
			MaxCommentPages:  opts.MaxCommentPages,
		})
		if err != nil {
			return nil, err
		}
		result.Video = video

	default:
		article, err := s.generic.Extract(rawHTML, url)
		if err != nil {
			return nil, err
		}
		result.Article = article
	}

	return result, nil
}
