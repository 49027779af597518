package unwall

import "strings"

// Kind identifies which extractor produced a result.
type Kind string

// Kind constants for routed extraction.
const (
	KindReddit  Kind = "reddit"
	KindYouTube Kind = "youtube"
	KindGeneric Kind = "generic"
)

// Result is the routed outcome of a single extraction. Exactly one of
// Thread, Video, or Article is set, matching Kind.
type Result struct {
	Kind    Kind     `json:"kind"`
	URL     string   `json:"url"`
	Thread  *Thread  `json:"thread,omitempty"`
	Video   *Video   `json:"video,omitempty"`
	Article *Article `json:"article,omitempty"`
}

// DetectKind routes a source URL to an extractor kind. Dispatch is a closed
// decision over host markers in the URL string, never content sniffing, so
// the routing is decidable before any document is fetched.
func DetectKind(url string) Kind {
	switch {
	case strings.Contains(url, "reddit.com"):
		return KindReddit
	case strings.Contains(url, "youtube.com"), strings.Contains(url, "youtu.be"):
		return KindYouTube
	default:
		return KindGeneric
	}
}
