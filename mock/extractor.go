package mock

import "github.com/mgrzeszczak/unwall"

var _ unwall.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of unwall.Extractor.
type Extractor struct {
	ExtractFn func(rawHTML, sourceURL string) (*unwall.Article, error)
}

func (e *Extractor) Extract(rawHTML, sourceURL string) (*unwall.Article, error) {
	return e.ExtractFn(rawHTML, sourceURL)
}
