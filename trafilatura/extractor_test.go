package trafilatura_test

import (
	"testing"

	"github.com/mgrzeszczak/unwall"
	"github.com/mgrzeszczak/unwall/mock"
	"github.com/mgrzeszczak/unwall/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements unwall.Extractor at compile time.
var _ unwall.Extractor = (*trafilatura.Extractor)(nil)

const articleHTML = `<!DOCTYPE html>
<html>
<head>
<title>Understanding Token Buckets - Example Blog</title>
<meta name="author" content="Jane Doe">
<meta name="description" content="A practical look at rate limiting.">
</head>
<body>
<nav><a href="/">Home</a><a href="/archive">Archive</a></nav>
<article>
<h1>Understanding Token Buckets</h1>
<p>Rate limiting protects upstream services from bursts of traffic. The
token bucket algorithm is the most common implementation and it is worth
understanding in detail before reaching for a library.</p>
<p>See <a href="https://example.org/spec">the spec document</a> for the
formal definition of the refill behavior used by most libraries.</p>
</article>
<footer>Copyright 2025</footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts main content and metadata", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		article, err := ext.Extract(articleHTML, "https://example.com/posts/token-buckets")

		require.NoError(t, err)
		assert.NotEmpty(t, article.Title)
		assert.Contains(t, article.Text, "token bucket algorithm")
		assert.NotContains(t, article.Text, "Copyright 2025")
		assert.Equal(t, "https://example.com/posts/token-buckets", article.URL)
	})

	t.Run("collects content links", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		article, err := ext.Extract(articleHTML, "https://example.com/posts/token-buckets")

		require.NoError(t, err)
		assert.Contains(t, article.Links, "https://example.org/spec")
	})

	t.Run("renders markdown through the converter", func(t *testing.T) {
		t.Parallel()

		converter := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				assert.NotEmpty(t, html)
				return "# converted", nil
			},
		}

		ext := trafilatura.NewExtractor(trafilatura.WithConverter(converter))
		article, err := ext.Extract(articleHTML, "https://example.com/posts/token-buckets")

		require.NoError(t, err)
		assert.Equal(t, "# converted", article.Markdown)
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.Extract("", "https://example.com")

		require.Error(t, err)
		assert.Equal(t, unwall.EINVALID, unwall.ErrorCode(err))
	})
}
