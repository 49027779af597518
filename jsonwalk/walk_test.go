package jsonwalk_test

import (
	"encoding/json"
	"testing"

	"github.com/mgrzeszczak/unwall"
	"github.com/mgrzeszczak/unwall/jsonwalk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, src string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(src), &v))
	return v
}

func TestWalk(t *testing.T) {
	t.Parallel()

	root := decode(t, `{
		"contents": {
			"results": {
				"items": [
					{"headerRenderer": {"title": "ignored"}},
					{"infoRenderer": {"title": {"runs": [{"text": "hello"}]}}}
				]
			}
		}
	}`)

	t.Run("key lookups", func(t *testing.T) {
		t.Parallel()

		v, ok := jsonwalk.Walk(root, jsonwalk.Key("contents"), jsonwalk.Key("results"))
		require.True(t, ok)
		assert.NotNil(t, v)
	})

	t.Run("scan finds tagged variant regardless of position", func(t *testing.T) {
		t.Parallel()

		s, ok := jsonwalk.String(root,
			jsonwalk.Key("contents"),
			jsonwalk.Key("results"),
			jsonwalk.Key("items"),
			jsonwalk.Scan("infoRenderer"),
			jsonwalk.Key("title"),
			jsonwalk.Key("runs"),
			jsonwalk.Index(0),
			jsonwalk.Key("text"),
		)
		require.True(t, ok)
		assert.Equal(t, "hello", s)
	})

	t.Run("missing intermediate key", func(t *testing.T) {
		t.Parallel()

		_, ok := jsonwalk.Walk(root, jsonwalk.Key("contents"), jsonwalk.Key("nope"), jsonwalk.Key("items"))
		assert.False(t, ok)
	})

	t.Run("type mismatch", func(t *testing.T) {
		t.Parallel()

		_, ok := jsonwalk.Walk(root, jsonwalk.Key("contents"), jsonwalk.Index(0))
		assert.False(t, ok)
	})

	t.Run("index out of range", func(t *testing.T) {
		t.Parallel()

		_, ok := jsonwalk.Walk(root,
			jsonwalk.Key("contents"), jsonwalk.Key("results"), jsonwalk.Key("items"), jsonwalk.Index(5))
		assert.False(t, ok)
	})

	t.Run("negative index", func(t *testing.T) {
		t.Parallel()

		_, ok := jsonwalk.Walk(root,
			jsonwalk.Key("contents"), jsonwalk.Key("results"), jsonwalk.Key("items"), jsonwalk.Index(-1))
		assert.False(t, ok)
	})

	t.Run("scan with no matching variant", func(t *testing.T) {
		t.Parallel()

		_, ok := jsonwalk.Walk(root,
			jsonwalk.Key("contents"), jsonwalk.Key("results"), jsonwalk.Key("items"),
			jsonwalk.Scan("missingRenderer"))
		assert.False(t, ok)
	})

	t.Run("nil root", func(t *testing.T) {
		t.Parallel()

		_, ok := jsonwalk.Walk(nil, jsonwalk.Key("anything"))
		assert.False(t, ok)
	})

	t.Run("empty path returns root", func(t *testing.T) {
		t.Parallel()

		v, ok := jsonwalk.Walk(root)
		require.True(t, ok)
		assert.Equal(t, root, v)
	})
}

func TestStringOr(t *testing.T) {
	t.Parallel()

	root := decode(t, `{"title": "x", "count": 3}`)

	assert.Equal(t, "x", jsonwalk.StringOr(root, "fallback", jsonwalk.Key("title")))
	assert.Equal(t, "fallback", jsonwalk.StringOr(root, "fallback", jsonwalk.Key("missing")))
	// Non-string values fall back rather than being coerced.
	assert.Equal(t, "fallback", jsonwalk.StringOr(root, "fallback", jsonwalk.Key("count")))
}

func TestSliceAndMap(t *testing.T) {
	t.Parallel()

	root := decode(t, `{"items": [1, 2], "meta": {"a": true}}`)

	l, ok := jsonwalk.Slice(root, jsonwalk.Key("items"))
	require.True(t, ok)
	assert.Len(t, l, 2)

	m, ok := jsonwalk.Map(root, jsonwalk.Key("meta"))
	require.True(t, ok)
	assert.Contains(t, m, "a")

	_, ok = jsonwalk.Slice(root, jsonwalk.Key("meta"))
	assert.False(t, ok)

	_, ok = jsonwalk.Map(root, jsonwalk.Key("items"))
	assert.False(t, ok)
}

func TestExtractObject(t *testing.T) {
	t.Parallel()

	t.Run("extracts balanced object after marker", func(t *testing.T) {
		t.Parallel()

		src := `<script>var ytInitialData = {"a": {"b": [1, 2]}, "c": "d"};</script>`
		blob, err := jsonwalk.ExtractObject(src, "var ytInitialData = ")

		require.NoError(t, err)
		assert.Equal(t, `{"a": {"b": [1, 2]}, "c": "d"}`, string(blob))
	})

	t.Run("braces inside strings do not break balancing", func(t *testing.T) {
		t.Parallel()

		src := `var ytInitialData = {"text": "a } b { c", "esc": "quote \" and } brace"};`
		blob, err := jsonwalk.ExtractObject(src, "var ytInitialData = ")

		require.NoError(t, err)

		var v map[string]any
		require.NoError(t, json.Unmarshal(blob, &v))
		assert.Equal(t, "a } b { c", v["text"])
	})

	t.Run("marker absent", func(t *testing.T) {
		t.Parallel()

		_, err := jsonwalk.ExtractObject("<html></html>", "var ytInitialData = ")
		assert.Equal(t, unwall.ENOTFOUND, unwall.ErrorCode(err))
	})

	t.Run("no object after marker", func(t *testing.T) {
		t.Parallel()

		_, err := jsonwalk.ExtractObject("var ytInitialData = null;", "var ytInitialData = ")
		assert.Equal(t, unwall.EINVALID, unwall.ErrorCode(err))
	})

	t.Run("unbalanced object", func(t *testing.T) {
		t.Parallel()

		_, err := jsonwalk.ExtractObject(`var ytInitialData = {"a": {`, "var ytInitialData = ")
		assert.Equal(t, unwall.EINVALID, unwall.ErrorCode(err))
	})
}
