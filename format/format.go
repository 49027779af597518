// Package format renders extraction results as plain text, Markdown, or
// JSON.
package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mgrzeszczak/unwall"
)

// Format identifies an output format.
type Format string

// Supported output formats.
const (
	Text     Format = "text"
	Markdown Format = "markdown"
	JSON     Format = "json"
)

const rule = 80

// ParseFormat validates a format name. Unknown names are EINVALID.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case Text, Markdown, JSON:
		return Format(name), nil
	default:
		return "", unwall.Errorf(unwall.EINVALID, "unknown format %q (supported: text, markdown, json)", name)
	}
}

// Render formats a result. JSON renders the extracted record itself, not
// the routing envelope.
func Render(result *unwall.Result, f Format) (string, error) {
	switch f {
	case JSON:
		return renderJSON(result)
	case Markdown:
		return renderMarkdown(result), nil
	case Text:
		return renderText(result), nil
	default:
		return "", unwall.Errorf(unwall.EINVALID, "unknown format %q", f)
	}
}

func renderJSON(result *unwall.Result) (string, error) {
	var record any
	switch result.Kind {
	case unwall.KindReddit:
		record = result.Thread
	case unwall.KindYouTube:
		record = result.Video
	default:
		record = result.Article
	}

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", unwall.Errorf(unwall.EINTERNAL, "encode result: %v", err)
	}
	return string(out), nil
}

func renderText(result *unwall.Result) string {
	switch result.Kind {
	case unwall.KindReddit:
		return threadText(result.Thread)
	case unwall.KindYouTube:
		return videoText(result.Video)
	default:
		return articleText(result.Article)
	}
}

func renderMarkdown(result *unwall.Result) string {
	switch result.Kind {
	case unwall.KindReddit:
		return threadMarkdown(result.Thread)
	case unwall.KindYouTube:
		return videoMarkdown(result.Video)
	default:
		return articleMarkdown(result.Article)
	}
}

func threadText(t *unwall.Thread) string {
	var lines []string
	lines = append(lines, strings.Repeat("=", rule))
	lines = append(lines, "TITLE: "+t.Title)
	lines = append(lines, "SUBREDDIT: r/"+t.Subreddit)
	lines = append(lines, "AUTHOR: u/"+t.Author)
	if t.Score != "" {
		lines = append(lines, "SCORE: "+t.Score)
	}
	lines = append(lines, "URL: "+t.URL)
	lines = append(lines, strings.Repeat("=", rule))

	if t.Body != "" {
		lines = append(lines, "\nPOST CONTENT:")
		lines = append(lines, strings.Repeat("-", rule))
		lines = append(lines, t.Body)
		lines = append(lines, strings.Repeat("-", rule))
	}

	if len(t.Comments) > 0 {
		lines = append(lines, fmt.Sprintf("\nCOMMENTS (%d):", len(t.Comments)))
		lines = append(lines, strings.Repeat("=", rule))

		for i, c := range t.Comments {
			lines = append(lines, fmt.Sprintf("\n[%d] u/%s", i+1, c.Author))
			if c.Score != "" {
				lines = append(lines, "Score: "+c.Score)
			}
			if c.Timestamp != "" {
				lines = append(lines, "Time: "+c.Timestamp)
			}
			lines = append(lines, strings.Repeat("-", rule))
			lines = append(lines, c.Text)
			lines = append(lines, strings.Repeat("-", rule))
		}
	}

	return strings.Join(lines, "\n")
}

func threadMarkdown(t *unwall.Thread) string {
	var lines []string
	lines = append(lines, "# "+t.Title+"\n")
	lines = append(lines, "**Subreddit:** r/"+t.Subreddit+"  ")
	lines = append(lines, "**Author:** u/"+t.Author+"  ")
	if t.Score != "" {
		lines = append(lines, "**Score:** "+t.Score+"  ")
	}
	lines = append(lines, "**URL:** "+t.URL+"\n")

	if t.Body != "" {
		lines = append(lines, "## Post Content\n")
		lines = append(lines, t.Body)
		lines = append(lines, "")
	}

	if len(t.Comments) > 0 {
		lines = append(lines, fmt.Sprintf("## Comments (%d)\n", len(t.Comments)))

		for i, c := range t.Comments {
			lines = append(lines, fmt.Sprintf("### Comment %d\n", i+1))
			lines = append(lines, "**Author:** u/"+c.Author+"  ")
			if c.Score != "" {
				lines = append(lines, "**Score:** "+c.Score+"  ")
			}
			if c.Timestamp != "" {
				lines = append(lines, "**Posted:** "+c.Timestamp+"  ")
			}
			lines = append(lines, "")
			lines = append(lines, c.Text)
			lines = append(lines, "\n---\n")
		}
	}

	return strings.Join(lines, "\n")
}

func videoText(v *unwall.Video) string {
	var lines []string
	lines = append(lines, strings.Repeat("=", rule))
	lines = append(lines, "TITLE: "+v.Title)
	lines = append(lines, "CHANNEL: "+v.ChannelName)
	if v.ViewCount != "" {
		lines = append(lines, "VIEWS: "+v.ViewCount)
	}
	if v.UploadDate != "" {
		lines = append(lines, "UPLOADED: "+v.UploadDate)
	}
	if v.LikeCount != "" {
		lines = append(lines, "LIKES: "+v.LikeCount)
	}
	lines = append(lines, "URL: "+v.URL)
	lines = append(lines, strings.Repeat("=", rule))

	if v.Description != "" {
		lines = append(lines, "\nDESCRIPTION:")
		lines = append(lines, strings.Repeat("-", rule))
		lines = append(lines, v.Description)
		lines = append(lines, strings.Repeat("-", rule))
	}

	if len(v.DescriptionLinks) > 0 {
		lines = append(lines, fmt.Sprintf("\nLINKS (%d):", len(v.DescriptionLinks)))
		for _, l := range v.DescriptionLinks {
			lines = append(lines, fmt.Sprintf("- %s: %s", l.Text, l.URL))
		}
	}

	if len(v.Comments) > 0 {
		lines = append(lines, fmt.Sprintf("\nCOMMENTS (%d):", len(v.Comments)))
		lines = append(lines, strings.Repeat("=", rule))

		for i, c := range v.Comments {
			header := fmt.Sprintf("\n[%d] %s", i+1, c.Author)
			if c.IsPinned {
				header += " [pinned]"
			}
			if c.IsHearted {
				header += " [hearted]"
			}
			lines = append(lines, header)
			if c.Likes != "" {
				lines = append(lines, "Likes: "+c.Likes)
			}
			if c.Timestamp != "" {
				lines = append(lines, "Time: "+c.Timestamp)
			}
			lines = append(lines, strings.Repeat("-", rule))
			lines = append(lines, c.Text)
			lines = append(lines, strings.Repeat("-", rule))
		}

		if v.CommentsTruncated {
			lines = append(lines, "\n(comments truncated)")
		}
	}

	return strings.Join(lines, "\n")
}

func videoMarkdown(v *unwall.Video) string {
	var lines []string
	lines = append(lines, "# "+v.Title+"\n")
	lines = append(lines, "**Channel:** "+v.ChannelName+"  ")
	if v.ViewCount != "" {
		lines = append(lines, "**Views:** "+v.ViewCount+"  ")
	}
	if v.UploadDate != "" {
		lines = append(lines, "**Uploaded:** "+v.UploadDate+"  ")
	}
	if v.LikeCount != "" {
		lines = append(lines, "**Likes:** "+v.LikeCount+"  ")
	}
	lines = append(lines, "**URL:** "+v.URL+"\n")

	if v.Description != "" {
		lines = append(lines, "## Description\n")
		lines = append(lines, v.Description)
		lines = append(lines, "")
	}

	if len(v.DescriptionLinks) > 0 {
		lines = append(lines, "## Links\n")
		for _, l := range v.DescriptionLinks {
			lines = append(lines, fmt.Sprintf("- [%s](%s)", l.Text, l.URL))
		}
		lines = append(lines, "")
	}

	if len(v.Comments) > 0 {
		lines = append(lines, fmt.Sprintf("## Comments (%d)\n", len(v.Comments)))

		for i, c := range v.Comments {
			lines = append(lines, fmt.Sprintf("### Comment %d\n", i+1))
			author := "**Author:** " + c.Author
			if c.IsPinned {
				author += " (pinned)"
			}
			if c.IsHearted {
				author += " (hearted)"
			}
			lines = append(lines, author+"  ")
			if c.Likes != "" {
				lines = append(lines, "**Likes:** "+c.Likes+"  ")
			}
			if c.Timestamp != "" {
				lines = append(lines, "**Posted:** "+c.Timestamp+"  ")
			}
			lines = append(lines, "")
			lines = append(lines, c.Text)
			lines = append(lines, "\n---\n")
		}

		if v.CommentsTruncated {
			lines = append(lines, "*(comments truncated)*")
		}
	}

	return strings.Join(lines, "\n")
}

func articleText(a *unwall.Article) string {
	var lines []string
	lines = append(lines, strings.Repeat("=", rule))
	lines = append(lines, "TITLE: "+a.Title)
	if a.Author != "" {
		lines = append(lines, "AUTHOR: "+a.Author)
	}
	if a.Date != "" {
		lines = append(lines, "DATE: "+a.Date)
	}
	lines = append(lines, "URL: "+a.URL)
	lines = append(lines, strings.Repeat("=", rule))
	lines = append(lines, "")
	lines = append(lines, a.Text)
	return strings.Join(lines, "\n")
}

func articleMarkdown(a *unwall.Article) string {
	var lines []string
	lines = append(lines, "# "+a.Title+"\n")
	if a.Author != "" {
		lines = append(lines, "**Author:** "+a.Author+"  ")
	}
	if a.Date != "" {
		lines = append(lines, "**Date:** "+a.Date+"  ")
	}
	lines = append(lines, "**URL:** "+a.URL+"\n")

	if a.Markdown != "" {
		lines = append(lines, a.Markdown)
	} else {
		lines = append(lines, a.Text)
	}
	return strings.Join(lines, "\n")
}
