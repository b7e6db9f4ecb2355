package goquery_test

import (
	"testing"

	"github.com/awalczak/cardscan"
	"github.com/awalczak/cardscan/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ cardscan.PlatformCardExtractor = (*goquery.PlatformExtractor)(nil)

func substackMatch() *cardscan.PlatformMatch {
	sig := cardscan.Signatures()[0]
	return &cardscan.PlatformMatch{
		Name:       sig.Name,
		Confidence: 0.8,
		Selectors:  sig.Selectors,
	}
}

func TestPlatformExtractor_ExtractPlatformStructure(t *testing.T) {
	t.Parallel()

	t.Run("extracts posts through the selector bundle", func(t *testing.T) {
		t.Parallel()

		html := `<html>
<head><title>My Newsletter</title><meta name="description" content="Weekly notes"></head>
<body>
<div class="post-preview">
	<h2 class="post-preview-title"><a href="/p/scaling">Scaling the Inbox</a></h2>
	<div class="post-preview-description">How we kept delivery fast as the list grew.</div>
	<span class="post-preview-byline"><a href="/@jane">Jane Doe</a></span>
	<time class="post-preview-date">Mar 3, 2025</time>
</div>
<div class="post-preview">
	<h2 class="post-preview-title"><a href="/p/hiring">Hiring Writers</a></h2>
</div>
</body>
</html>`

		e := goquery.NewPlatformExtractor()
		s, err := e.ExtractPlatformStructure(html, "https://x.substack.com", substackMatch(), 0)
		require.NoError(t, err)

		assert.Equal(t, "My Newsletter", s.PageTitle)
		assert.Equal(t, "Weekly notes", s.PageDescription)
		require.Len(t, s.TopicGroups, 1)

		group := s.TopicGroups[0]
		assert.Equal(t, "Substack Posts (2 found)", group.HeaderText)
		require.Len(t, group.Cards, 2)

		first := group.Cards[0]
		assert.Equal(t, "Scaling the Inbox", first.Label)
		assert.Equal(t, "https://x.substack.com/p/scaling", first.MainLink)
		assert.Equal(t, "How we kept delivery fast as the list grew.", first.Description)
		assert.Equal(t, cardscan.CardPost, first.CardType)
		assert.Equal(t, "Jane Doe", first.Metadata[cardscan.MetaAuthor].Value)
		assert.Equal(t, "Mar 3, 2025", first.Metadata[cardscan.MetaDate].Value)
		require.Len(t, first.SecondaryLinks, 1)
		assert.Equal(t, cardscan.RoleAuthor, first.SecondaryLinks[0].Role)
		assert.Equal(t, "https://x.substack.com/@jane", first.SecondaryLinks[0].URL)
	})

	t.Run("bare post links widen to their container", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="archive-row">
	<a href="/p/first">First Letter</a>
	<time>Jan 1, 2025</time>
</div>
</body></html>`

		e := goquery.NewPlatformExtractor()
		s, err := e.ExtractPlatformStructure(html, "https://x.substack.com", substackMatch(), 0)
		require.NoError(t, err)

		require.Len(t, s.TopicGroups, 1)
		require.Len(t, s.TopicGroups[0].Cards, 1)
		card := s.TopicGroups[0].Cards[0]
		assert.Equal(t, "First Letter", card.Label)
		assert.Equal(t, "https://x.substack.com/p/first", card.MainLink)
	})

	t.Run("deduplicates posts and honors the card cap", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="post-preview"><h2><a href="/p/a">Alpha</a></h2></div>
<div class="post-preview"><h2><a href="/p/a">Alpha Again</a></h2></div>
<div class="post-preview"><h2><a href="/p/b">Beta</a></h2></div>
<div class="post-preview"><h2><a href="/p/c">Gamma</a></h2></div>
</body></html>`

		e := goquery.NewPlatformExtractor()
		s, err := e.ExtractPlatformStructure(html, "https://x.substack.com", substackMatch(), 2)
		require.NoError(t, err)

		require.Len(t, s.TopicGroups, 1)
		cards := s.TopicGroups[0].Cards
		require.Len(t, cards, 2)
		assert.Equal(t, "https://x.substack.com/p/a", cards[0].MainLink)
		assert.Equal(t, "https://x.substack.com/p/b", cards[1].MainLink)
	})

	t.Run("no posts yields a structure with zero groups", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewPlatformExtractor()
		s, err := e.ExtractPlatformStructure(`<html><head><title>T</title></head><body><p>nothing</p></body></html>`, "https://x.substack.com", substackMatch(), 0)
		require.NoError(t, err)

		assert.Empty(t, s.TopicGroups)
		assert.Equal(t, 0, s.CardCount())
	})
}
