package goquery_test

import (
	"strings"
	"testing"

	"github.com/awalczak/cardscan"
	"github.com/awalczak/cardscan/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ cardscan.ContentExtractor = (*goquery.ContentSelector)(nil)

func TestContentSelector_MainContent(t *testing.T) {
	t.Parallel()

	filler := strings.Repeat("All work and no play makes for dull prose. ", 10)

	t.Run("prefers the article region", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<nav>Home | About | Contact</nav>
<article><h1>The Post</h1><p>` + filler + `</p></article>
<footer>Copyright</footer>
</body></html>`

		c := goquery.NewContentSelector()
		content, err := c.MainContent(html)
		require.NoError(t, err)

		assert.Contains(t, content, "The Post")
		assert.Contains(t, content, "dull prose")
		assert.NotContains(t, content, "Copyright")
	})

	t.Run("falls back to the largest block without chrome", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<nav>Home | About | Contact | Careers | Press</nav>
<div class="wrapper"><p>` + filler + `</p></div>
<footer>Copyright and a long legal notice nobody reads</footer>
</body></html>`

		c := goquery.NewContentSelector()
		content, err := c.MainContent(html)
		require.NoError(t, err)

		assert.Contains(t, content, "dull prose")
		assert.NotContains(t, content, "Careers")
		assert.NotContains(t, content, "Copyright")
	})

	t.Run("thin pages fall back to the body", func(t *testing.T) {
		t.Parallel()

		c := goquery.NewContentSelector()
		content, err := c.MainContent(`<html><body><p>Short note.</p></body></html>`)
		require.NoError(t, err)

		assert.Contains(t, content, "Short note.")
	})

	t.Run("empty page yields empty content", func(t *testing.T) {
		t.Parallel()

		c := goquery.NewContentSelector()
		content, err := c.MainContent(`<html><body></body></html>`)
		require.NoError(t, err)

		assert.Equal(t, "", content)
	})
}

func TestContentSelector_PlainText(t *testing.T) {
	t.Parallel()

	t.Run("renders structural markers", func(t *testing.T) {
		t.Parallel()

		html := `<div>
<h2>Heading</h2>
<p>First paragraph with <strong>bold</strong> text.</p>
<ul><li>One</li><li>Two</li></ul>
</div>`

		c := goquery.NewContentSelector()
		text := c.PlainText(html)

		assert.Contains(t, text, "## Heading")
		assert.Contains(t, text, "First paragraph with **bold** text.")
		assert.Contains(t, text, "- One")
		assert.Contains(t, text, "- Two")
	})

	t.Run("drops scripts and styles", func(t *testing.T) {
		t.Parallel()

		html := `<div><script>alert(1)</script><style>.x{}</style><p>Visible</p></div>`

		c := goquery.NewContentSelector()
		text := c.PlainText(html)

		assert.Equal(t, "Visible", text)
	})

	t.Run("collapses blank line runs", func(t *testing.T) {
		t.Parallel()

		c := goquery.NewContentSelector()
		text := c.PlainText(`<div><p>A</p><p>B</p><p>C</p></div>`)

		assert.NotContains(t, text, "\n\n\n")
		assert.Contains(t, text, "A")
		assert.Contains(t, text, "C")
	})
}
