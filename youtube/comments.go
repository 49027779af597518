package youtube

import (
	"context"
	"unicode/utf8"

	"github.com/mgrzeszczak/unwall"
	"github.com/mgrzeszczak/unwall/jsonwalk"
)

// commentsAPIURL is the continuation endpoint for paginated comments.
const commentsAPIURL = "https://www.youtube.com/youtubei/v1/next"

// assembleComments drives the continuation-token pagination protocol:
// locate a token in the initial graph, fetch pages through the external
// fetcher, decode each page's entity mutations into flat comment records,
// and stop when the rune budget or the page cap is reached. A missing
// token or a failed fetch degrades to (nil, false) with a warning; it is
// never an error for the enclosing record.
func (e *Extractor) assembleComments(ctx context.Context, root any, opts ParseOptions) ([]unwall.VideoComment, bool) {
	charLimit := opts.CommentCharLimit
	if charLimit <= 0 {
		charLimit = DefaultCommentCharLimit
	}
	maxPages := opts.MaxCommentPages
	if maxPages <= 0 {
		maxPages = 1
	}

	token, ok := continuationToken(root)
	if !ok {
		e.logger.Warn("could not find continuation token for comments")
		return nil, false
	}

	var (
		comments   []unwall.VideoComment
		totalRunes int
		truncated  bool
		seen       = make(map[string]bool)
	)

	for page := 0; page < maxPages && token != ""; page++ {
		payload := map[string]any{
			"continuation": token,
			"context": map[string]any{
				"client": map[string]any{
					"clientName":    "WEB",
					"clientVersion": e.clientVersion,
				},
			},
		}

		resp, err := e.fetcher.FetchJSON(ctx, commentsAPIURL, payload)
		if err != nil {
			e.logger.Warn("comments API request failed", "page", page+1, "err", err)
			if page == 0 {
				return nil, false
			}
			break
		}

		for _, entity := range commentEntities(resp, seen) {
			comment, ok := parseCommentEntity(entity)
			if !ok {
				continue
			}

			textRunes := utf8.RuneCountInString(comment.Text)
			if totalRunes+textRunes > charLimit {
				// The overflowing comment is excluded, not trimmed.
				truncated = true
				break
			}
			comments = append(comments, comment)
			totalRunes += textRunes
		}
		if truncated {
			break
		}

		token, _ = nextContinuationToken(resp)
	}

	if len(comments) == 0 {
		return nil, truncated
	}
	return comments, truncated
}

// continuationToken locates the comments continuation token in the
// watch-page graph. The section list usually carries several
// itemSectionRenderer variants (related content, shelves) ahead of the
// comments one, so every section is searched rather than only the first.
func continuationToken(root any) (string, bool) {
	sections, ok := jsonwalk.Slice(root, watchContents...)
	if !ok {
		return "", false
	}

	for _, section := range sections {
		contents, ok := jsonwalk.Slice(section,
			jsonwalk.Key("itemSectionRenderer"), jsonwalk.Key("contents"))
		if !ok {
			continue
		}
		for _, content := range contents {
			token, ok := jsonwalk.String(content,
				jsonwalk.Key("continuationItemRenderer"),
				jsonwalk.Key("continuationEndpoint"),
				jsonwalk.Key("continuationCommand"),
				jsonwalk.Key("token"))
			if ok && token != "" {
				return token, true
			}
		}
	}
	return "", false
}

// nextContinuationToken locates the follow-up page token in a comments API
// response.
func nextContinuationToken(resp any) (string, bool) {
	endpoints, ok := jsonwalk.Slice(resp, jsonwalk.Key("onResponseReceivedEndpoints"))
	if !ok {
		return "", false
	}

	for _, endpoint := range endpoints {
		items, ok := jsonwalk.Slice(endpoint,
			jsonwalk.Key("appendContinuationItemsAction"), jsonwalk.Key("continuationItems"))
		if !ok {
			items, ok = jsonwalk.Slice(endpoint,
				jsonwalk.Key("reloadContinuationItemsCommand"), jsonwalk.Key("continuationItems"))
		}
		if !ok {
			continue
		}

		for _, item := range items {
			token, ok := jsonwalk.String(item,
				jsonwalk.Key("continuationItemRenderer"),
				jsonwalk.Key("continuationEndpoint"),
				jsonwalk.Key("continuationCommand"),
				jsonwalk.Key("token"))
			if ok && token != "" {
				return token, true
			}
		}
	}
	return "", false
}

// commentEntities decodes a page's entity-mutation list into comment
// payloads. The API returns comments as a flat batch of entity updates
// keyed by comment ID, not a nested thread tree; reply nesting is not
// reconstructed. First-seen mutation order is preserved explicitly so
// repeated runs on identical input yield identical output.
func commentEntities(resp any, seen map[string]bool) []map[string]any {
	mutations, ok := jsonwalk.Slice(resp,
		jsonwalk.Key("frameworkUpdates"), jsonwalk.Key("entityBatchUpdate"), jsonwalk.Key("mutations"))
	if !ok {
		return nil
	}

	var entities []map[string]any
	for _, mutation := range mutations {
		payload, ok := jsonwalk.Map(mutation,
			jsonwalk.Key("payload"), jsonwalk.Key("commentEntityPayload"))
		if !ok {
			continue
		}

		id, ok := jsonwalk.String(payload, jsonwalk.Key("properties"), jsonwalk.Key("commentId"))
		if !ok || id == "" || seen[id] {
			continue
		}
		seen[id] = true
		entities = append(entities, payload)
	}
	return entities
}

// parseCommentEntity converts one entity payload into a comment record.
// Entities without text are skipped, never emitted empty.
func parseCommentEntity(entity map[string]any) (unwall.VideoComment, bool) {
	text := jsonwalk.StringOr(entity, "",
		jsonwalk.Key("properties"), jsonwalk.Key("content"), jsonwalk.Key("content"))
	if text == "" {
		return unwall.VideoComment{}, false
	}

	likes := jsonwalk.StringOr(entity, "", jsonwalk.Key("toolbar"), jsonwalk.Key("likeCountNotliked"))
	if likes == "" {
		likes = jsonwalk.StringOr(entity, "", jsonwalk.Key("toolbar"), jsonwalk.Key("likeCountLiked"))
	}

	_, hearted := jsonwalk.Walk(entity, jsonwalk.Key("toolbar"), jsonwalk.Key("heartActiveTooltip"))

	return unwall.VideoComment{
		Author:    jsonwalk.StringOr(entity, "Unknown", jsonwalk.Key("author"), jsonwalk.Key("displayName")),
		Text:      text,
		Likes:     likes,
		Timestamp: jsonwalk.StringOr(entity, "", jsonwalk.Key("properties"), jsonwalk.Key("publishedTime")),
		IsHearted: hearted,
		// Pin state is not exposed in the entity-mutation shape.
		IsPinned: false,
	}, true
}
