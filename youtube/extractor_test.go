package youtube_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mgrzeszczak/unwall"
	"github.com/mgrzeszczak/unwall/mock"
	"github.com/mgrzeszczak/unwall/youtube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const watchURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

const initialData = `{
	"contents": {
		"twoColumnWatchNextResults": {
			"results": {
				"results": {
					"contents": [
						{
							"videoPrimaryInfoRenderer": {
								"title": {"runs": [{"text": "Writing a Scraper in Go"}]},
								"viewCount": {
									"videoViewCountRenderer": {
										"viewCount": {"simpleText": "1,234,567 views"}
									}
								},
								"dateText": {"simpleText": "Nov 20, 2023"},
								"videoActions": {
									"menuRenderer": {
										"topLevelButtons": [
											{"subscribeButtonRenderer": {}},
											{
												"segmentedLikeDislikeButtonRenderer": {
													"likeButton": {
														"toggleButtonRenderer": {
															"defaultText": {
																"accessibility": {
																	"accessibilityData": {
																		"label": "45K likes"
																	}
																}
															}
														}
													}
												}
											}
										]
									}
								}
							}
						},
						{
							"videoSecondaryInfoRenderer": {
								"owner": {
									"videoOwnerRenderer": {
										"title": {"runs": [{"text": "Gopher Academy"}]}
									}
								},
								"attributedDescription": {
									"content": "Visit https://example.org for the code. Channel page here.",
									"commandRuns": [
										{
											"startIndex": 6,
											"length": 19,
											"onTap": {
												"innertubeCommand": {
													"urlEndpoint": {
														"url": "https://www.youtube.com/redirect?event=video_description&q=https%3A%2F%2Fexample.org"
													}
												}
											}
										},
										{
											"startIndex": 40,
											"length": 12,
											"onTap": {
												"innertubeCommand": {
													"urlEndpoint": {"url": "/channel/UCabc"}
												}
											}
										},
										{
											"startIndex": 0,
											"length": 5,
											"onTap": {
												"innertubeCommand": {"urlEndpoint": {"url": ""}}
											}
										}
									]
								}
							}
						},
						{
							"itemSectionRenderer": {
								"contents": [
									{
										"continuationItemRenderer": {
											"continuationEndpoint": {
												"continuationCommand": {"token": "token-page-1"}
											}
										}
									}
								]
							}
						}
					]
				}
			}
		}
	}
}`

func watchPage(t *testing.T) string {
	t.Helper()
	// Sanity-check the fixture before embedding it in markup.
	var v any
	require.NoError(t, json.Unmarshal([]byte(initialData), &v))
	return `<html><body><script>var ytInitialData = ` + initialData + `;</script></body></html>`
}

func TestExtractor_Parse(t *testing.T) {
	t.Parallel()

	ext := youtube.NewExtractor(nil)
	video, err := ext.Parse(context.Background(), watchPage(t), watchURL, youtube.ParseOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Writing a Scraper in Go", video.Title)
	assert.Equal(t, "Gopher Academy", video.ChannelName)
	assert.Equal(t, "dQw4w9WgXcQ", video.VideoID)
	assert.Equal(t, watchURL, video.URL)
	assert.Equal(t, "1,234,567 views", video.ViewCount)
	assert.Equal(t, "Nov 20, 2023", video.UploadDate)
	assert.Equal(t, "45K", video.LikeCount)
	assert.Equal(t, "Visit https://example.org for the code. Channel page here.", video.Description)

	// Comments were not requested: none present, not truncated.
	assert.Nil(t, video.Comments)
	assert.False(t, video.CommentsTruncated)
}

func TestExtractor_Parse_DescriptionLinks(t *testing.T) {
	t.Parallel()

	ext := youtube.NewExtractor(nil)
	video, err := ext.Parse(context.Background(), watchPage(t), watchURL, youtube.ParseOptions{})
	require.NoError(t, err)

	// The run with an empty URL is dropped; two links survive.
	require.Len(t, video.DescriptionLinks, 2)

	// Redirect wrapper unwrapped to the destination in the q parameter.
	assert.Equal(t, "https://example.org", video.DescriptionLinks[0].URL)
	assert.Equal(t, "https://example.org", video.DescriptionLinks[0].Text)

	// Site-relative path resolved against the origin.
	assert.Equal(t, "https://www.youtube.com/channel/UCabc", video.DescriptionLinks[1].URL)
	assert.Equal(t, "Channel page", video.DescriptionLinks[1].Text)
}

func TestExtractor_Parse_MissingVideoID(t *testing.T) {
	t.Parallel()

	ext := youtube.NewExtractor(nil)
	_, err := ext.Parse(context.Background(), watchPage(t), "https://www.youtube.com/", youtube.ParseOptions{})

	require.Error(t, err)
	assert.Equal(t, unwall.EINVALID, unwall.ErrorCode(err))
}

func TestExtractor_Parse_MissingInitialData(t *testing.T) {
	t.Parallel()

	ext := youtube.NewExtractor(nil)
	video, err := ext.Parse(context.Background(), "<html><body></body></html>", watchURL, youtube.ParseOptions{})
	require.NoError(t, err)

	// Everything degrades to typed defaults except the URL-derived ID.
	assert.Equal(t, "Unknown Title", video.Title)
	assert.Equal(t, "Unknown Channel", video.ChannelName)
	assert.Empty(t, video.Description)
	assert.Empty(t, video.DescriptionLinks)
	assert.Empty(t, video.ViewCount)
	assert.Empty(t, video.LikeCount)
	assert.Equal(t, "dQw4w9WgXcQ", video.VideoID)
}

func TestExtractor_Parse_MissingSecondaryInfo(t *testing.T) {
	t.Parallel()

	page := `<html><script>var ytInitialData = {
		"contents": {"twoColumnWatchNextResults": {"results": {"results": {"contents": [
			{"videoPrimaryInfoRenderer": {"title": {"runs": [{"text": "Solo"}]}}}
		]}}}}
	};</script></html>`

	ext := youtube.NewExtractor(nil)
	video, err := ext.Parse(context.Background(), page, watchURL, youtube.ParseOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Solo", video.Title)
	assert.Equal(t, "Unknown Channel", video.ChannelName)
	assert.Empty(t, video.Description)
}

func TestExtractor_Parse_ShortLinkAndEmbedURLs(t *testing.T) {
	t.Parallel()

	ext := youtube.NewExtractor(nil)

	for _, url := range []string{
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
	} {
		video, err := ext.Parse(context.Background(), "<html></html>", url, youtube.ParseOptions{})
		require.NoError(t, err)
		assert.Equal(t, "dQw4w9WgXcQ", video.VideoID)
	}
}

func TestExtractor_Parse_Idempotent(t *testing.T) {
	t.Parallel()

	ext := youtube.NewExtractor(nil)
	page := watchPage(t)

	first, err := ext.Parse(context.Background(), page, watchURL, youtube.ParseOptions{})
	require.NoError(t, err)
	second, err := ext.Parse(context.Background(), page, watchURL, youtube.ParseOptions{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

var _ unwall.Fetcher = (*mock.Fetcher)(nil)
