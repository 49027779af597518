// Package readability implements generic content extraction on top of
// go-readability, used as the fallback when trafilatura yields nothing.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/mgrzeszczak/unwall"
)

// Ensure Extractor implements unwall.Extractor at compile time.
var _ unwall.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct {
	converter unwall.Converter
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConverter sets the HTML-to-Markdown converter used for the article's
// Markdown body.
func WithConverter(c unwall.Converter) Option {
	return func(e *Extractor) {
		e.converter = c
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML, sourceURL string) (*unwall.Article, error) {
	if rawHTML == "" {
		return nil, unwall.Errorf(unwall.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	result := &unwall.Article{
		Title:       article.Title,
		Author:      article.Byline,
		Description: article.Excerpt,
		Text:        strings.TrimSpace(article.TextContent),
		URL:         sourceURL,
	}

	if e.converter != nil && article.Content != "" {
		markdown, err := e.converter.Convert(article.Content)
		if err != nil {
			return nil, err
		}
		result.Markdown = markdown
	}

	return result, nil
}
