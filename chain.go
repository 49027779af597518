package unwall

// ChainExtractor tries extractors strictly in order and returns the first
// article with non-empty text. The same ordered-fallback discipline as the
// locator chains: candidates are ordered from most to least preferred, and
// the first usable result wins.
type ChainExtractor struct {
	extractors []Extractor
}

// Ensure ChainExtractor implements Extractor at compile time.
var _ Extractor = (*ChainExtractor)(nil)

// NewChainExtractor creates a ChainExtractor over the given candidates.
func NewChainExtractor(extractors ...Extractor) *ChainExtractor {
	return &ChainExtractor{extractors: extractors}
}

// Extract returns the first candidate result with non-empty text. When no
// candidate produces text, the last non-nil result is returned so callers
// still get whatever metadata was recoverable; an error is returned only
// when every candidate fails outright.
func (c *ChainExtractor) Extract(rawHTML, sourceURL string) (*Article, error) {
	var (
		lastArticle *Article
		lastErr     error
	)

	for _, e := range c.extractors {
		article, err := e.Extract(rawHTML, sourceURL)
		if err != nil {
			lastErr = err
			continue
		}
		if article.Text != "" {
			return article, nil
		}
		lastArticle = article
	}

	if lastArticle != nil {
		return lastArticle, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, Errorf(ENOTFOUND, "no extractor produced content")
}
