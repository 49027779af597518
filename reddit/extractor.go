// Package reddit extracts thread records from Reddit HTML. Reddit serves
// several incompatible markup dialects (old Reddit, shreddit, test-id
// variants) depending on cohort and rollout, so every field is resolved
// through an ordered locator chain instead of dialect detection.
package reddit

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/mgrzeszczak/unwall"
	"github.com/mgrzeszczak/unwall/goquery"
)

var (
	titleChain = []goquery.Locator{
		{Selector: "a.title"},
		{Selector: "h1"},
		{Selector: `[slot="title"]`},
		{Selector: "shreddit-post h1"},
		{Selector: `[data-testid="post-title"]`},
		{Selector: "p.title a.title"},
	}

	authorChain = []goquery.Locator{
		{Selector: "a.author"},
		{Selector: `[slot="authorName"]`},
		{Selector: `shreddit-post [slot="authorName"]`},
		{Selector: `a[href*="/user/"]`},
		{Selector: "p.tagline a.author"},
	}

	scoreChain = []goquery.Locator{
		{Selector: "div.score.unvoted"},
		{Selector: "div.score"},
		{Selector: `[slot="score"]`},
		{Selector: `shreddit-post [slot="score"]`},
		{Selector: `[data-testid="post-score"]`},
		{Selector: `[class*="score"]`, Mode: goquery.AttrValue, Attr: "title"},
	}

	// Post body chains must not match the sidebar, which also carries
	// usertext-body in the old dialect.
	bodyChain = []goquery.Locator{
		{Selector: "div.expando div.usertext-body", Mode: goquery.TextLines},
		{Selector: "div.expando div.md", Mode: goquery.TextLines},
		{Selector: "form.usertext div.md", Mode: goquery.TextLines},
		{Selector: `[slot="text-body"]`, Mode: goquery.TextLines},
		{Selector: `div[data-testid="post-content"]`, Mode: goquery.TextLines},
		{Selector: `shreddit-post div[slot="text-body"]`, Mode: goquery.TextLines},
	}

	commentSelectors = []string{
		"div.comment",
		"div.entry",
		"shreddit-comment",
		`[data-testid="comment"]`,
		"div.Comment",
	}

	commentAuthorChain = []goquery.Locator{
		{Selector: "a.author"},
		{Selector: `[slot="authorName"]`},
		{Selector: `a[href*="/user/"]`},
		{Selector: "p.tagline a.author"},
	}

	commentTextChain = []goquery.Locator{
		{Selector: "div.md", Mode: goquery.TextLines},
		{Selector: "div.usertext-body div.md", Mode: goquery.TextLines},
		{Selector: `[slot="comment"]`, Mode: goquery.TextLines},
		{Selector: `div[data-testid="comment-text"]`, Mode: goquery.TextLines},
	}

	commentScoreChain = []goquery.Locator{
		{Selector: "span.score.unvoted"},
		{Selector: "span.score"},
		{Selector: `[slot="score"]`},
		{Selector: `[data-testid="vote-score"]`},
	}

	// Absolute timestamps ride in the title attribute of <time>; the
	// element text is a relative display string. The attribute is
	// preferred when both exist.
	commentTimeChain = []goquery.Locator{
		{Selector: "time", Mode: goquery.AttrValue, Attr: "title"},
		{Selector: "time"},
		{Selector: "p.tagline time", Mode: goquery.AttrValue, Attr: "title"},
		{Selector: "p.tagline time"},
		{Selector: `[slot="timestamp"]`},
	}
)

var (
	subredditPattern  = regexp.MustCompile(`r/(\w+)`)
	titleSuffix       = regexp.MustCompile(`\s*:\s*r/\w+\s*$`)
	scorePointsSuffix = regexp.MustCompile(`\s*points?$`)
)

// Extractor parses Reddit thread documents.
type Extractor struct {
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for per-comment warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse extracts a thread record from raw HTML. A single malformed comment
// never aborts the thread: per-comment failures are logged and skipped.
func (e *Extractor) Parse(rawHTML, sourceURL string) (*unwall.Thread, error) {
	doc, err := goquery.Parse(rawHTML)
	if err != nil {
		return nil, unwall.Errorf(unwall.EINVALID, "failed to parse HTML: %v", err)
	}
	root := doc.Selection

	return &unwall.Thread{
		Title:     e.extractTitle(root),
		Author:    resolveAuthor(root, authorChain),
		Subreddit: extractSubreddit(sourceURL),
		Score:     goquery.ResolveOr(root, scoreChain, ""),
		Body:      goquery.ResolveOr(root, bodyChain, ""),
		URL:       sourceURL,
		Comments:  e.extractComments(root),
	}, nil
}

func (e *Extractor) extractTitle(root *gq.Selection) string {
	if title, ok := goquery.Resolve(root, titleChain); ok {
		return title
	}

	// Fall back to the page title, stripping the " : r/subreddit" suffix.
	if title, ok := goquery.Resolve(root, []goquery.Locator{{Selector: "title"}}); ok {
		return titleSuffix.ReplaceAllString(title, "")
	}

	return "Unknown Title"
}

func resolveAuthor(root *gq.Selection, chain []goquery.Locator) string {
	author, ok := goquery.ResolveClean(root, chain, func(s string) string {
		return strings.ReplaceAll(s, "u/", "")
	})
	if !ok {
		return "Unknown"
	}
	return author
}

func extractSubreddit(sourceURL string) string {
	if m := subredditPattern.FindStringSubmatch(sourceURL); m != nil {
		return m[1]
	}
	return "Unknown"
}

// commentOutcome is the explicit per-item result for one comment
// container: either a comment or a skip with its reason.
type commentOutcome struct {
	comment *unwall.Comment
	skip    string
}

const skipEmptyText = "empty text"

func (e *Extractor) extractComments(root *gq.Selection) []unwall.Comment {
	containers := collectContainers(root)

	comments := make([]unwall.Comment, 0, len(containers))
	for idx, container := range containers {
		out := parseComment(container)
		if out.comment != nil {
			comments = append(comments, *out.comment)
			continue
		}
		// Empty-text containers are dropped silently; anything else is a
		// parse failure worth a warning. The 1-based position identifies
		// the container in the source document.
		if out.skip != skipEmptyText {
			e.logger.Warn("failed to parse comment",
				"position", idx+1,
				"reason", out.skip,
			)
		}
	}
	return comments
}

// collectContainers enumerates candidate comment containers, first
// matching selector set wins. In the old dialect the comment and entry
// classes nest, so when "comment"-classed elements are present the nested
// "entry" ones are filtered out to avoid double-counting replies.
func collectContainers(root *gq.Selection) []*gq.Selection {
	matched := goquery.FirstMatches(root, commentSelectors)

	var containers []*gq.Selection
	hasCommentClass := false
	matched.Each(func(_ int, s *gq.Selection) {
		if strings.Contains(classAttr(s), "comment") {
			hasCommentClass = true
		}
	})

	if hasCommentClass {
		matched.Each(func(_ int, s *gq.Selection) {
			classes := classList(s)
			if classes["comment"] && !classes["entry"] {
				containers = append(containers, s)
			}
		})
		if len(containers) > 0 {
			return containers
		}
		containers = containers[:0]
	}

	matched.Each(func(_ int, s *gq.Selection) {
		containers = append(containers, s)
	})
	return containers
}

func classAttr(s *gq.Selection) string {
	attr, _ := s.Attr("class")
	return attr
}

func classList(s *gq.Selection) map[string]bool {
	classes := make(map[string]bool)
	for _, c := range strings.Fields(classAttr(s)) {
		classes[c] = true
	}
	return classes
}

// parseComment resolves one comment container. It never lets a malformed
// container escalate: panics from unexpected markup shapes are converted
// into a skip outcome at this boundary.
func parseComment(container *gq.Selection) (out commentOutcome) {
	defer func() {
		if r := recover(); r != nil {
			out = commentOutcome{skip: fmt.Sprintf("panic: %v", r)}
		}
	}()

	text, ok := goquery.Resolve(container, commentTextChain)
	if !ok || strings.TrimSpace(text) == "" {
		return commentOutcome{skip: skipEmptyText}
	}

	score, _ := goquery.ResolveClean(container, commentScoreChain, func(s string) string {
		return scorePointsSuffix.ReplaceAllString(s, "")
	})

	timestamp, _ := goquery.Resolve(container, commentTimeChain)

	return commentOutcome{comment: &unwall.Comment{
		Author:    resolveAuthor(container, commentAuthorChain),
		Text:      text,
		Score:     score,
		Timestamp: timestamp,
	}}
}
