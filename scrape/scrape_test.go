package scrape_test

import (
	"context"
	"errors"
	"testing"

	"github.com/awalczak/cardscan"
	"github.com/awalczak/cardscan/mock"
	"github.com/awalczak/cardscan/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func structureWithCards(cards ...*cardscan.Card) *cardscan.HierarchicalStructure {
	return &cardscan.HierarchicalStructure{
		PageTitle: "Test Page",
		TopicGroups: []*cardscan.TopicGroup{{
			GroupType:  cardscan.GroupGeneral,
			HeaderText: "All Items",
			Cards:      cards,
		}},
	}
}

func TestScraper_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("flattens detected cards into items", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html></html>", nil
			},
		}
		detector := &mock.StructureDetector{
			DetectStructureFn: func(html, baseURL string, maxArticles int) (*cardscan.HierarchicalStructure, error) {
				return structureWithCards(
					&cardscan.Card{Label: "Google", MainLink: "https://example.com/google", Description: "Guide"},
					&cardscan.Card{Label: "Meta", MainLink: "https://example.com/meta", Description: "Guide"},
				), nil
			},
		}

		s := scrape.NewScraper(fetcher, detector)
		result, extraction, err := s.Scrape(context.Background(), "https://www.example.com/guides")
		require.NoError(t, err)

		assert.Equal(t, "example.com", result.Site)
		require.Len(t, result.Items, 2)
		assert.Equal(t, "Google", result.Items[0].Title)
		assert.Equal(t, "Guide", result.Items[0].Content)
		assert.Equal(t, cardscan.ContentBlog, result.Items[0].ContentType)
		assert.Equal(t, "https://example.com/google", result.Items[0].SourceURL)

		assert.Equal(t, "Test Page", extraction.PageTitle)
		assert.Len(t, extraction.TopicGroups, 1)
		assert.Empty(t, extraction.OriginalURL)
	})

	t.Run("initial fetch failure is fatal", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("connection refused")
			},
		}
		detector := &mock.StructureDetector{
			DetectStructureFn: func(html, baseURL string, maxArticles int) (*cardscan.HierarchicalStructure, error) {
				t.Fatal("detector should not run")
				return nil, nil
			},
		}

		s := scrape.NewScraper(fetcher, detector)
		_, _, err := s.Scrape(context.Background(), "https://example.com")
		require.Error(t, err)
		assert.Equal(t, cardscan.EINTERNAL, cardscan.ErrorCode(err))
	})

	t.Run("deduplicates items across groups", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) { return "<html></html>", nil },
		}
		detector := &mock.StructureDetector{
			DetectStructureFn: func(html, baseURL string, maxArticles int) (*cardscan.HierarchicalStructure, error) {
				return &cardscan.HierarchicalStructure{
					TopicGroups: []*cardscan.TopicGroup{
						{Cards: []*cardscan.Card{{Label: "A", MainLink: "https://example.com/a"}}},
						{Cards: []*cardscan.Card{
							{Label: "A again", MainLink: "https://example.com/a#section"},
							{Label: "B", MainLink: "https://example.com/b"},
						}},
					},
				}, nil
			},
		}

		s := scrape.NewScraper(fetcher, detector)
		result, _, err := s.Scrape(context.Background(), "https://example.com")
		require.NoError(t, err)

		require.Len(t, result.Items, 2)
		assert.Equal(t, "A", result.Items[0].Title)
		assert.Equal(t, "B", result.Items[1].Title)
	})

	t.Run("platform fast path wins when confident", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) { return "<html></html>", nil },
		}
		detector := &mock.StructureDetector{
			DetectStructureFn: func(html, baseURL string, maxArticles int) (*cardscan.HierarchicalStructure, error) {
				t.Fatal("generic detection should not run")
				return nil, nil
			},
		}
		platformDetector := &mock.PlatformDetector{
			DetectFn: func(html, url string) *cardscan.PlatformMatch {
				return &cardscan.PlatformMatch{Name: cardscan.PlatformSubstack, Confidence: 0.8}
			},
		}
		platformExtractor := &mock.PlatformCardExtractor{
			ExtractPlatformStructureFn: func(html, baseURL string, match *cardscan.PlatformMatch, maxCards int) (*cardscan.HierarchicalStructure, error) {
				return &cardscan.HierarchicalStructure{
					PageTitle: "Newsletter",
					TopicGroups: []*cardscan.TopicGroup{{
						GroupType:  cardscan.GroupBlogArticles,
						HeaderText: "Substack Posts (1 found)",
						Cards:      []*cardscan.Card{{Label: "Post", MainLink: "https://x.substack.com/p/post", CardType: cardscan.CardPost}},
					}},
				}, nil
			},
		}

		s := scrape.NewScraper(fetcher, detector,
			scrape.WithPlatformDetection(platformDetector, platformExtractor),
		)
		result, extraction, err := s.Scrape(context.Background(), "https://x.substack.com")
		require.NoError(t, err)

		require.Len(t, result.Items, 1)
		assert.Equal(t, cardscan.ContentBlog, result.Items[0].ContentType)
		require.NotNil(t, extraction.Platform)
		assert.Equal(t, cardscan.PlatformSubstack, extraction.Platform.Name)
	})

	t.Run("falls back to generic detection when the fast path is empty", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) { return "<html></html>", nil },
		}
		detector := &mock.StructureDetector{
			DetectStructureFn: func(html, baseURL string, maxArticles int) (*cardscan.HierarchicalStructure, error) {
				return structureWithCards(&cardscan.Card{Label: "A", MainLink: "https://example.com/a"}), nil
			},
		}
		platformDetector := &mock.PlatformDetector{
			DetectFn: func(html, url string) *cardscan.PlatformMatch {
				return &cardscan.PlatformMatch{Name: cardscan.PlatformSubstack, Confidence: 0.9}
			},
		}
		platformExtractor := &mock.PlatformCardExtractor{
			ExtractPlatformStructureFn: func(html, baseURL string, match *cardscan.PlatformMatch, maxCards int) (*cardscan.HierarchicalStructure, error) {
				return &cardscan.HierarchicalStructure{PageTitle: "Empty"}, nil
			},
		}

		s := scrape.NewScraper(fetcher, detector,
			scrape.WithPlatformDetection(platformDetector, platformExtractor),
		)
		result, _, err := s.Scrape(context.Background(), "https://x.substack.com")
		require.NoError(t, err)

		require.Len(t, result.Items, 1)
		assert.Equal(t, "A", result.Items[0].Title)
	})

	t.Run("tries alternate URLs when nothing is found", func(t *testing.T) {
		t.Parallel()

		var fetched []string
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				fetched = append(fetched, url)
				if url == "https://example.com/blog" {
					return "<html>blog</html>", nil
				}
				return "<html>empty</html>", nil
			},
		}
		detector := &mock.StructureDetector{
			DetectStructureFn: func(html, baseURL string, maxArticles int) (*cardscan.HierarchicalStructure, error) {
				if html == "<html>blog</html>" {
					return &cardscan.HierarchicalStructure{
						TopicGroups: []*cardscan.TopicGroup{{
							GroupType: cardscan.GroupBlogArticles,
							Cards:     []*cardscan.Card{{Label: "Post", MainLink: "https://example.com/blog/post"}},
						}},
					}, nil
				}
				return &cardscan.HierarchicalStructure{}, nil
			},
		}

		s := scrape.NewScraper(fetcher, detector)
		result, extraction, err := s.Scrape(context.Background(), "https://example.com")
		require.NoError(t, err)

		assert.Contains(t, fetched, "https://example.com/blog")
		require.Len(t, result.Items, 1)
		assert.Equal(t, "https://example.com", extraction.OriginalURL)
		assert.Equal(t, "https://example.com/blog", extraction.SuccessfulURL)
	})

	t.Run("skips alternates once blog articles are found", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				calls++
				return "<html></html>", nil
			},
		}
		detector := &mock.StructureDetector{
			DetectStructureFn: func(html, baseURL string, maxArticles int) (*cardscan.HierarchicalStructure, error) {
				return &cardscan.HierarchicalStructure{
					TopicGroups: []*cardscan.TopicGroup{{
						GroupType: cardscan.GroupBlogArticles,
						Cards:     []*cardscan.Card{{Label: "Post", MainLink: "https://example.com/blog/post"}},
					}},
				}, nil
			},
		}

		s := scrape.NewScraper(fetcher, detector)
		_, _, err := s.Scrape(context.Background(), "https://example.com")
		require.NoError(t, err)

		assert.Equal(t, 1, calls)
	})

	t.Run("enriches blog items with converted page content", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if url == "https://example.com/blog/post" {
					return "<html><article>full post body</article></html>", nil
				}
				return "<html></html>", nil
			},
		}
		detector := &mock.StructureDetector{
			DetectStructureFn: func(html, baseURL string, maxArticles int) (*cardscan.HierarchicalStructure, error) {
				return structureWithCards(&cardscan.Card{
					Label:       "Post",
					MainLink:    "https://example.com/blog/post",
					Description: "short",
				}), nil
			},
		}
		content := &mock.ContentExtractor{
			MainContentFn: func(html string) (string, error) {
				return "<article>full post body</article>", nil
			},
			PlainTextFn: func(fragment string) string { return "plain text" },
		}
		converter := &mock.Converter{
			ConvertFn: func(html string) (string, error) { return "full post body as markdown", nil },
		}

		s := scrape.NewScraper(fetcher, detector,
			scrape.WithContentEnrichment(content, converter),
		)
		result, _, err := s.Scrape(context.Background(), "https://example.com")
		require.NoError(t, err)

		require.Len(t, result.Items, 1)
		assert.Equal(t, "full post body as markdown", result.Items[0].Content)
	})

	t.Run("falls back to plain text when conversion fails", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) { return "<html></html>", nil },
		}
		detector := &mock.StructureDetector{
			DetectStructureFn: func(html, baseURL string, maxArticles int) (*cardscan.HierarchicalStructure, error) {
				return structureWithCards(&cardscan.Card{Label: "Post", MainLink: "https://example.com/blog/post"}), nil
			},
		}
		content := &mock.ContentExtractor{
			MainContentFn: func(html string) (string, error) { return "<article>body</article>", nil },
			PlainTextFn:   func(fragment string) string { return "plain fallback" },
		}
		converter := &mock.Converter{
			ConvertFn: func(html string) (string, error) { return "", errors.New("bad input") },
		}

		s := scrape.NewScraper(fetcher, detector,
			scrape.WithContentEnrichment(content, converter),
		)
		result, _, err := s.Scrape(context.Background(), "https://example.com")
		require.NoError(t, err)

		require.Len(t, result.Items, 1)
		assert.Equal(t, "plain fallback", result.Items[0].Content)
	})

	t.Run("enrichment fetch failure keeps the card description", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if url == "https://example.com" {
					return "<html></html>", nil
				}
				return "", errors.New("timeout")
			},
		}
		detector := &mock.StructureDetector{
			DetectStructureFn: func(html, baseURL string, maxArticles int) (*cardscan.HierarchicalStructure, error) {
				return structureWithCards(&cardscan.Card{
					Label:       "Post",
					MainLink:    "https://example.com/blog/post",
					Description: "existing description",
				}), nil
			},
		}
		content := &mock.ContentExtractor{
			MainContentFn: func(html string) (string, error) { return "", nil },
			PlainTextFn:   func(fragment string) string { return "" },
		}

		s := scrape.NewScraper(fetcher, detector,
			scrape.WithContentEnrichment(content, &mock.Converter{ConvertFn: func(string) (string, error) { return "", nil }}),
		)
		result, _, err := s.Scrape(context.Background(), "https://example.com")
		require.NoError(t, err)

		require.Len(t, result.Items, 1)
		assert.Equal(t, "existing description", result.Items[0].Content)
	})

	t.Run("additional page budget limits non-blog enrichment", func(t *testing.T) {
		t.Parallel()

		var enriched []string
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if url != "https://example.com" {
					enriched = append(enriched, url)
				}
				return "<html></html>", nil
			},
		}
		detector := &mock.StructureDetector{
			DetectStructureFn: func(html, baseURL string, maxArticles int) (*cardscan.HierarchicalStructure, error) {
				return structureWithCards(
					&cardscan.Card{Label: "Podcast Ep 1", MainLink: "https://example.com/podcast/1"},
					&cardscan.Card{Label: "Podcast Ep 2", MainLink: "https://example.com/podcast/2"},
					&cardscan.Card{Label: "Podcast Ep 3", MainLink: "https://example.com/podcast/3"},
				), nil
			},
		}
		content := &mock.ContentExtractor{
			MainContentFn: func(html string) (string, error) { return "", nil },
			PlainTextFn:   func(fragment string) string { return "" },
		}

		s := scrape.NewScraper(fetcher, detector,
			scrape.WithContentEnrichment(content, nil),
			scrape.WithMaxAdditionalPages(2),
		)
		_, _, err := s.Scrape(context.Background(), "https://example.com")
		require.NoError(t, err)

		assert.Len(t, enriched, 2)
	})
}
