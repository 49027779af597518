package unwall

// Thread represents a Reddit discussion thread. All fields are assembled
// once during extraction and never mutated afterwards.
type Thread struct {
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Subreddit string    `json:"subreddit"`
	Score     string    `json:"score,omitempty"`
	Body      string    `json:"body,omitempty"`
	URL       string    `json:"url"`
	Comments  []Comment `json:"comments"`
}

// Comment represents a single thread comment. Text is always non-empty:
// containers that resolve to empty text are dropped during extraction,
// never emitted.
type Comment struct {
	Author    string `json:"author"`
	Text      string `json:"text"`
	Score     string `json:"score,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}
