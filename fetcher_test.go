package cardscan_test

import (
	"testing"

	"github.com/awalczak/cardscan"
	"github.com/stretchr/testify/assert"
)

func TestAlternateURLs(t *testing.T) {
	t.Parallel()

	t.Run("substack sites get archive variants first", func(t *testing.T) {
		t.Parallel()

		alts := cardscan.AlternateURLs("https://example.substack.com/")

		assert.Equal(t, []string{
			"https://example.substack.com/archive",
			"https://example.substack.com/posts",
			"https://example.substack.com/p",
			"https://example.substack.com/blog",
			"https://example.substack.com/articles",
			"https://example.substack.com/posts",
		}, alts)
	})

	t.Run("generic sites get blog variants", func(t *testing.T) {
		t.Parallel()

		alts := cardscan.AlternateURLs("https://example.com")

		assert.Equal(t, []string{
			"https://example.com/blog",
			"https://example.com/articles",
			"https://example.com/posts",
		}, alts)
	})
}
