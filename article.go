package unwall

// Article represents generic page content produced by a boilerplate-removal
// extractor. The engine does not define the extraction algorithm, only the
// pass-through shape.
type Article struct {
	Title       string   `json:"title,omitempty"`
	Author      string   `json:"author,omitempty"`
	Date        string   `json:"date,omitempty"`
	Description string   `json:"description,omitempty"`
	Language    string   `json:"language,omitempty"`
	Text        string   `json:"text"`
	Markdown    string   `json:"markdown,omitempty"`
	Links       []string `json:"links,omitempty"`
	URL         string   `json:"url"`
}

// Extractor extracts main content from HTML pages, removing boilerplate
// (navigation, ads, template chrome).
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// The source URL is used to resolve relative links and enrich metadata.
	Extract(rawHTML, sourceURL string) (*Article, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean HTML content into Markdown.
	Convert(html string) (string, error)
}
