// Package youtube extracts video records from YouTube watch pages. The
// page data lives in an embedded ytInitialData JSON blob whose schema is
// deeply nested and loosely typed; every field is read through safe graph
// walks with typed defaults rather than assertion-heavy access. Comments
// require a second, continuation-token-driven API call.
package youtube

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/mgrzeszczak/unwall"
	"github.com/mgrzeszczak/unwall/jsonwalk"
)

const (
	initialDataMarker = "var ytInitialData = "
	origin            = "https://www.youtube.com"

	// DefaultCommentCharLimit bounds the cumulative comment text size.
	DefaultCommentCharLimit = 50000

	defaultClientVersion = "2.20231120.00.00"
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`embed/([0-9A-Za-z_-]{11})`),
}

var (
	likeLabelPattern = regexp.MustCompile(`(?i)([\d.,KMB]+)\s*like`)
	redirectQPattern = regexp.MustCompile(`[?&]q=([^&]+)`)
)

// watchContents is the path to the section list of a watch page. Sections
// are exposed as an unordered list of single-key tagged variants, so
// callers append a Scan step rather than indexing.
var watchContents = []jsonwalk.Step{
	jsonwalk.Key("contents"),
	jsonwalk.Key("twoColumnWatchNextResults"),
	jsonwalk.Key("results"),
	jsonwalk.Key("results"),
	jsonwalk.Key("contents"),
}

// sectionPath returns a fresh path to a tagged section variant.
func sectionPath(variant string) []jsonwalk.Step {
	path := make([]jsonwalk.Step, 0, len(watchContents)+1)
	path = append(path, watchContents...)
	return append(path, jsonwalk.Scan(variant))
}

// Extractor parses YouTube watch pages. The fetcher is only used for the
// comments API call and may be nil, in which case comments are unavailable.
type Extractor struct {
	fetcher       unwall.Fetcher
	logger        *slog.Logger
	clientVersion string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for degradation warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithClientVersion overrides the client version sent to the comments API.
func WithClientVersion(version string) Option {
	return func(e *Extractor) {
		e.clientVersion = version
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(fetcher unwall.Fetcher, opts ...Option) *Extractor {
	e := &Extractor{
		fetcher:       fetcher,
		logger:        slog.Default(),
		clientVersion: defaultClientVersion,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ParseOptions controls comment retrieval during Parse.
type ParseOptions struct {
	// IncludeComments opts into the paginated comments fetch.
	IncludeComments bool

	// CommentCharLimit is the cumulative comment text budget in runes.
	// Zero means DefaultCommentCharLimit.
	CommentCharLimit int

	// MaxCommentPages caps how many continuation pages are fetched.
	// Zero means one page.
	MaxCommentPages int
}

// Parse extracts a video record from raw HTML. A missing or undecodable
// ytInitialData blob degrades every field to its typed default; only a
// video ID that cannot be derived from the URL fails the whole record.
func (e *Extractor) Parse(ctx context.Context, rawHTML, sourceURL string, opts ParseOptions) (*unwall.Video, error) {
	videoID, err := extractVideoID(sourceURL)
	if err != nil {
		return nil, err
	}

	root := e.decodeInitialData(rawHTML)

	primary, _ := jsonwalk.Map(root, sectionPath("videoPrimaryInfoRenderer")...)
	secondary, _ := jsonwalk.Map(root, sectionPath("videoSecondaryInfoRenderer")...)

	video := &unwall.Video{
		Title: jsonwalk.StringOr(primary, "Unknown Title",
			jsonwalk.Key("title"), jsonwalk.Key("runs"), jsonwalk.Index(0), jsonwalk.Key("text")),
		ChannelName: jsonwalk.StringOr(secondary, "Unknown Channel",
			jsonwalk.Key("owner"), jsonwalk.Key("videoOwnerRenderer"),
			jsonwalk.Key("title"), jsonwalk.Key("runs"), jsonwalk.Index(0), jsonwalk.Key("text")),
		Description: jsonwalk.StringOr(secondary, "",
			jsonwalk.Key("attributedDescription"), jsonwalk.Key("content")),
		DescriptionLinks: extractDescriptionLinks(secondary),
		ViewCount: jsonwalk.StringOr(primary, "",
			jsonwalk.Key("viewCount"), jsonwalk.Key("videoViewCountRenderer"),
			jsonwalk.Key("viewCount"), jsonwalk.Key("simpleText")),
		UploadDate: jsonwalk.StringOr(primary, "",
			jsonwalk.Key("dateText"), jsonwalk.Key("simpleText")),
		LikeCount: extractLikeCount(primary),
		VideoID:   videoID,
		URL:       sourceURL,
	}

	if opts.IncludeComments && e.fetcher != nil {
		video.Comments, video.CommentsTruncated = e.assembleComments(ctx, root, opts)
	}

	return video, nil
}

// decodeInitialData recovers and decodes the embedded state blob. Failure
// at either stage is a warning, not an error: downstream extraction
// degrades field-by-field to defaults.
func (e *Extractor) decodeInitialData(rawHTML string) any {
	blob, err := jsonwalk.ExtractObject(rawHTML, initialDataMarker)
	if err != nil {
		e.logger.Warn("could not locate ytInitialData in document", "err", err)
		return nil
	}

	var root any
	if err := json.Unmarshal(blob, &root); err != nil {
		e.logger.Warn("failed to decode ytInitialData", "err", err)
		return nil
	}
	return root
}

// extractVideoID derives the video ID from the URL. This is the only
// required field: without an ID there is no video record.
func extractVideoID(sourceURL string) (string, error) {
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(sourceURL); m != nil {
			return m[1], nil
		}
	}
	return "", unwall.Errorf(unwall.EINVALID, "could not extract video ID from URL: %s", sourceURL)
}

// extractDescriptionLinks recovers hyperlinks from the description's
// command runs. Each run carries a rune offset and length into the
// description text plus a target URL; runs whose resolved URL is empty are
// dropped.
func extractDescriptionLinks(secondary map[string]any) []unwall.Link {
	attributed, ok := jsonwalk.Map(secondary, jsonwalk.Key("attributedDescription"))
	if !ok {
		return nil
	}

	content := jsonwalk.StringOr(attributed, "", jsonwalk.Key("content"))
	runs, ok := jsonwalk.Slice(attributed, jsonwalk.Key("commandRuns"))
	if !ok {
		return nil
	}

	var links []unwall.Link
	for _, run := range runs {
		start := intOr(run, 0, jsonwalk.Key("startIndex"))
		length := intOr(run, 0, jsonwalk.Key("length"))
		text := runeSlice(content, start, length)

		target := jsonwalk.StringOr(run, "",
			jsonwalk.Key("onTap"), jsonwalk.Key("innertubeCommand"),
			jsonwalk.Key("urlEndpoint"), jsonwalk.Key("url"))
		if target == "" {
			continue
		}

		resolved := resolveLinkURL(target)
		if text == "" {
			text = resolved
		}
		links = append(links, unwall.Link{Text: text, URL: resolved})
	}
	return links
}

// resolveLinkURL unwraps redirect-wrapper URLs (the destination rides in
// the q query parameter) and resolves site-relative paths against the
// origin.
func resolveLinkURL(target string) string {
	if containsRedirect(target) {
		if m := redirectQPattern.FindStringSubmatch(target); m != nil {
			if dest, err := url.QueryUnescape(m[1]); err == nil {
				return dest
			}
		}
		return target
	}
	if len(target) > 0 && target[0] == '/' {
		return origin + target
	}
	return target
}

func containsRedirect(target string) bool {
	return strings.Contains(target, "/redirect?") || strings.Contains(target, "youtube.com/redirect")
}

// extractLikeCount scans the action buttons for the like toggle and reads
// its accessibility label, which renders the count as abbreviated display
// text.
func extractLikeCount(primary map[string]any) string {
	buttons, ok := jsonwalk.Slice(primary,
		jsonwalk.Key("videoActions"), jsonwalk.Key("menuRenderer"), jsonwalk.Key("topLevelButtons"))
	if !ok {
		return ""
	}

	for _, button := range buttons {
		label, ok := jsonwalk.String(button,
			jsonwalk.Key("segmentedLikeDislikeButtonRenderer"),
			jsonwalk.Key("likeButton"), jsonwalk.Key("toggleButtonRenderer"),
			jsonwalk.Key("defaultText"), jsonwalk.Key("accessibility"),
			jsonwalk.Key("accessibilityData"), jsonwalk.Key("label"))
		if !ok || label == "" {
			continue
		}
		if m := likeLabelPattern.FindStringSubmatch(label); m != nil {
			return m[1]
		}
	}
	return ""
}

// intOr walks to a JSON number and returns it as an int.
func intOr(root any, def int, steps ...jsonwalk.Step) int {
	v, ok := jsonwalk.Walk(root, steps...)
	if !ok {
		return def
	}
	f, ok := v.(float64)
	if !ok {
		return def
	}
	return int(f)
}

// runeSlice slices s by rune offsets, clamping out-of-range bounds.
func runeSlice(s string, start, length int) string {
	if start < 0 || length <= 0 {
		return ""
	}
	runes := []rune(s)
	if start >= len(runes) {
		return ""
	}
	end := start + length
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[start:end])
}
