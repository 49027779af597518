// Package trafilatura implements generic boilerplate-removing extraction
// on top of go-trafilatura. It produces the pass-through article shape the
// engine returns for documents that match no site-specific extractor.
package trafilatura

import (
	"bytes"
	nurl "net/url"
	"strings"
	"time"

	"github.com/markusmobius/go-trafilatura"
	"github.com/mgrzeszczak/unwall"
	"golang.org/x/net/html"
)

// Ensure Extractor implements unwall.Extractor at compile time.
var _ unwall.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
// An optional Converter adds a Markdown rendition of the content.
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

// Extract processes raw HTML and returns the main content with metadata.
func (e *Extractor) Extract(rawHTML, sourceURL string) (*unwall.Article, error) {
	if rawHTML == "" {
		return nil, unwall.Errorf(unwall.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		IncludeLinks:   true,
	}
	if sourceURL != "" {
		if u, err := nurl.Parse(sourceURL); err == nil {
			opts.OriginalURL = u
		}
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	article := &unwall.Article{
		Title:       result.Metadata.Title,
		Author:      result.Metadata.Author,
		Description: result.Metadata.Description,
		Language:    result.Metadata.Language,
		Text:        result.ContentText,
		URL:         sourceURL,
	}
	if !result.Metadata.Date.IsZero() {
		article.Date = result.Metadata.Date.Format(time.DateOnly)
	}

	if result.ContentNode != nil {
		article.Links = collectLinks(result.ContentNode)

		if e.converter != nil {
			contentHTML, err := renderNode(result.ContentNode)
			if err != nil {
				return nil, err
			}
			markdown, err := e.converter.Convert(contentHTML)
			if err != nil {
				return nil, err
			}
			article.Markdown = markdown
		}
	}

	return article, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// collectLinks gathers anchor targets from the extracted content, in
// document order, deduplicated.
func collectLinks(n *html.Node) []string {
	var links []string
	seen := make(map[string]bool)

	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" && attr.Val != "" && !seen[attr.Val] {
					seen[attr.Val] = true
					links = append(links, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)

	return links
}
