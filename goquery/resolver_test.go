package goquery_test

import (
	"strings"
	"testing"

	unwallquery "github.com/mgrzeszczak/unwall/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dialectHTML = `<!DOCTYPE html>
<html>
<head><title>Page Title : r/golang</title></head>
<body>
<p class="title"><a class="title" href="/r/golang/1">Old Dialect Title</a></p>
<h1>New Dialect Title</h1>
<div class="score unvoted" title="1234">1.2k</div>
<div class="expando">
	<div class="usertext-body">
		<p>First paragraph.</p>
		<p>Second paragraph.</p>
	</div>
</div>
<span class="empty-marker"></span>
</body>
</html>`

func TestResolve(t *testing.T) {
	t.Parallel()

	doc, err := unwallquery.Parse(dialectHTML)
	require.NoError(t, err)
	root := doc.Selection

	t.Run("first match wins in strict list order", func(t *testing.T) {
		t.Parallel()

		// Both selectors match; the first in the list must win even though
		// the h1 also matches.
		v, ok := unwallquery.Resolve(root, []unwallquery.Locator{
			{Selector: "a.title"},
			{Selector: "h1"},
		})
		require.True(t, ok)
		assert.Equal(t, "Old Dialect Title", v)
	})

	t.Run("falls through to later candidate", func(t *testing.T) {
		t.Parallel()

		v, ok := unwallquery.Resolve(root, []unwallquery.Locator{
			{Selector: "div.nonexistent"},
			{Selector: "h1"},
		})
		require.True(t, ok)
		assert.Equal(t, "New Dialect Title", v)
	})

	t.Run("empty-text match falls through", func(t *testing.T) {
		t.Parallel()

		v, ok := unwallquery.Resolve(root, []unwallquery.Locator{
			{Selector: "span.empty-marker"},
			{Selector: "h1"},
		})
		require.True(t, ok)
		assert.Equal(t, "New Dialect Title", v)
	})

	t.Run("attribute extraction", func(t *testing.T) {
		t.Parallel()

		v, ok := unwallquery.Resolve(root, []unwallquery.Locator{
			{Selector: `[class*="score"]`, Mode: unwallquery.AttrValue, Attr: "title"},
		})
		require.True(t, ok)
		assert.Equal(t, "1234", v)
	})

	t.Run("text with line breaks preserved", func(t *testing.T) {
		t.Parallel()

		v, ok := unwallquery.Resolve(root, []unwallquery.Locator{
			{Selector: "div.expando div.usertext-body", Mode: unwallquery.TextLines},
		})
		require.True(t, ok)
		assert.Equal(t, "First paragraph.\nSecond paragraph.", v)
	})

	t.Run("no match yields false, never an error", func(t *testing.T) {
		t.Parallel()

		v, ok := unwallquery.Resolve(root, []unwallquery.Locator{
			{Selector: "div.missing"},
			{Selector: "section.also-missing"},
		})
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("deterministic across repeated runs", func(t *testing.T) {
		t.Parallel()

		chain := []unwallquery.Locator{{Selector: "a.title"}, {Selector: "h1"}}
		first, _ := unwallquery.Resolve(root, chain)
		second, _ := unwallquery.Resolve(root, chain)
		assert.Equal(t, first, second)
	})
}

func TestResolveClean(t *testing.T) {
	t.Parallel()

	doc, err := unwallquery.Parse(`<span class="author">u/gopher</span>`)
	require.NoError(t, err)

	v, ok := unwallquery.ResolveClean(doc.Selection, []unwallquery.Locator{
		{Selector: "span.author"},
	}, func(s string) string {
		return strings.TrimPrefix(s, "u/")
	})

	require.True(t, ok)
	assert.Equal(t, "gopher", v)
}

func TestResolveOr(t *testing.T) {
	t.Parallel()

	doc, err := unwallquery.Parse(`<div>no author here</div>`)
	require.NoError(t, err)

	v := unwallquery.ResolveOr(doc.Selection, []unwallquery.Locator{
		{Selector: "a.author"},
	}, "Unknown")

	assert.Equal(t, "Unknown", v)
}

func TestFirstMatches(t *testing.T) {
	t.Parallel()

	doc, err := unwallquery.Parse(`
		<div class="comment">one</div>
		<div class="comment">two</div>
		<div class="Comment">modern</div>`)
	require.NoError(t, err)

	t.Run("first selector with matches wins", func(t *testing.T) {
		t.Parallel()

		sel := unwallquery.FirstMatches(doc.Selection, []string{"div.comment", "div.Comment"})
		assert.Equal(t, 2, sel.Length())
	})

	t.Run("falls through empty selectors", func(t *testing.T) {
		t.Parallel()

		sel := unwallquery.FirstMatches(doc.Selection, []string{"shreddit-comment", "div.Comment"})
		assert.Equal(t, 1, sel.Length())
	})

	t.Run("no selector matches", func(t *testing.T) {
		t.Parallel()

		sel := unwallquery.FirstMatches(doc.Selection, []string{"article", "section"})
		assert.Equal(t, 0, sel.Length())
	})
}
