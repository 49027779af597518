package unwall

// Video represents a YouTube video page. VideoID is the only required
// field; extraction fails outright when it cannot be derived from the URL.
// Every other field degrades to a typed default.
type Video struct {
	Title            string         `json:"title"`
	ChannelName      string         `json:"channelName"`
	Description      string         `json:"description"`
	DescriptionLinks []Link         `json:"descriptionLinks"`
	ViewCount        string         `json:"viewCount,omitempty"`
	UploadDate       string         `json:"uploadDate,omitempty"`
	LikeCount        string         `json:"likeCount,omitempty"`
	VideoID          string         `json:"videoId"`
	URL              string         `json:"url"`
	Comments         []VideoComment `json:"comments,omitempty"`

	// CommentsTruncated is true only when the comment character budget was
	// exhausted before all available comments were consumed. It is never
	// true when comment fetching was skipped or unavailable.
	CommentsTruncated bool `json:"commentsTruncated"`
}

// Link is a hyperlink recovered from a video description, with redirect
// wrappers already unwrapped.
type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// VideoComment represents a single video comment. Text is always non-empty.
type VideoComment struct {
	Author    string `json:"author"`
	Text      string `json:"text"`
	Likes     string `json:"likes,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	IsPinned  bool   `json:"isPinned"`
	IsHearted bool   `json:"isHearted"`
}
