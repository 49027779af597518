// Package goquery adapts a parsed HTML tree for locator-chain extraction.
// The underlying markup dialect is not known in advance and changes over
// time, so fields are located by trying several independently-sufficient
// CSS locators in priority order rather than detecting a site "version" up
// front. Chains are data, evaluated by one generic resolver; new dialects
// are supported by appending locators, never by editing control flow.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ExtractMode controls what a matched element yields.
type ExtractMode int

const (
	// Text yields the element's text with whitespace collapsed.
	Text ExtractMode = iota

	// TextLines yields the element's text with line breaks preserved
	// between block-level fragments.
	TextLines

	// AttrValue yields the value of the attribute named by Locator.Attr.
	AttrValue
)

// Locator is one candidate structural query in a fallback chain.
type Locator struct {
	Selector string
	Mode     ExtractMode
	Attr     string
}

// Resolve tries candidates against root strictly in list order and returns
// the extracted value of the first candidate that matches an element and
// yields non-empty text. Candidates are hand-ordered from most to least
// confidently correct; the first structural match wins even if a later
// candidate would also match. No match across all candidates yields
// ("", false), never an error.
func Resolve(root *goquery.Selection, candidates []Locator) (string, bool) {
	return ResolveClean(root, candidates, nil)
}

// ResolveClean is Resolve with a post-processing rule applied to the raw
// extracted value before the emptiness check.
func ResolveClean(root *goquery.Selection, candidates []Locator, clean func(string) string) (string, bool) {
	for _, c := range candidates {
		sel := root.Find(c.Selector).First()
		if sel.Length() == 0 {
			continue
		}

		var raw string
		switch c.Mode {
		case AttrValue:
			raw, _ = sel.Attr(c.Attr)
		case TextLines:
			raw = textLines(sel)
		default:
			raw = strings.TrimSpace(sel.Text())
		}

		if clean != nil {
			raw = clean(raw)
		}
		if strings.TrimSpace(raw) != "" {
			return raw, true
		}
	}
	return "", false
}

// ResolveOr resolves a chain, falling back to def when nothing matches.
func ResolveOr(root *goquery.Selection, candidates []Locator, def string) string {
	if v, ok := Resolve(root, candidates); ok {
		return v
	}
	return def
}

// FirstMatches returns the matches of the first selector in the list that
// matches at least one element, preserving document order. An empty
// selection is returned when no selector matches.
func FirstMatches(root *goquery.Selection, selectors []string) *goquery.Selection {
	for _, s := range selectors {
		if sel := root.Find(s); sel.Length() > 0 {
			return sel
		}
	}
	return root.Find(selectors[len(selectors)-1])
}

// Parse wraps goquery document construction for a raw HTML string.
func Parse(rawHTML string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
}

// textLines extracts the text content of a selection with line breaks
// between text nodes, mirroring how threaded post bodies render multiple
// paragraphs.
func textLines(sel *goquery.Selection) string {
	var parts []string
	for _, node := range sel.Nodes {
		collectText(node, &parts)
	}
	return strings.Join(parts, "\n")
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
