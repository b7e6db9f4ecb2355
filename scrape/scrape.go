// Package scrape orchestrates a full scrape pass: fetch, platform
// fingerprinting, structure detection, alternate-URL retries, content
// enrichment, and flattening into standardized items.
package scrape

import (
	"context"
	"net/url"
	"strings"

	"github.com/awalczak/cardscan"
)

// ProgressEvent reports a step of a scrape pass for user-facing output.
type ProgressEvent struct {
	Stage  string
	URL    string
	Detail string
}

// ProgressFunc receives progress events. Nil disables reporting.
type ProgressFunc func(ProgressEvent)

// Extraction is the structural half of a scrape pass: what the page
// looked like before flattening. Persisted alongside the item result for
// debugging and downstream analysis.
type Extraction struct {
	Site            string                   `json:"site"`
	PageTitle       string                   `json:"page_title"`
	PageDescription string                   `json:"page_description"`
	Platform        *cardscan.PlatformMatch  `json:"platform_info"`
	TopicGroups     []*cardscan.TopicGroup   `json:"groups"`
	Navigation      map[string]string        `json:"navigation_structure"`
	OriginalURL     string                   `json:"original_url,omitempty"`
	SuccessfulURL   string                   `json:"successful_url,omitempty"`
}

// Scraper runs the scrape pipeline. All collaborators are interfaces
// from the root package; any of the optional ones may be left nil.
type Scraper struct {
	fetcher   cardscan.Fetcher
	detector  cardscan.StructureDetector
	redirects cardscan.RedirectChecker
	platforms cardscan.PlatformDetector
	platform  cardscan.PlatformCardExtractor
	content   cardscan.ContentExtractor
	converter cardscan.Converter

	maxArticles        int
	maxAdditionalPages int
	progress           ProgressFunc
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithPlatformDetection enables the platform fast path.
func WithPlatformDetection(detector cardscan.PlatformDetector, extractor cardscan.PlatformCardExtractor) Option {
	return func(s *Scraper) {
		s.platforms = detector
		s.platform = extractor
	}
}

// WithRedirectChecker enables alternate-URL retries on redirect-looking
// pages.
func WithRedirectChecker(checker cardscan.RedirectChecker) Option {
	return func(s *Scraper) {
		s.redirects = checker
	}
}

// WithContentEnrichment enables follow-up fetches that fill item content
// from the linked pages.
func WithContentEnrichment(content cardscan.ContentExtractor, converter cardscan.Converter) Option {
	return func(s *Scraper) {
		s.content = content
		s.converter = converter
	}
}

// WithMaxArticles caps blog-article and platform-post extraction.
// Defaults to cardscan.DefaultMaxArticles.
func WithMaxArticles(n int) Option {
	return func(s *Scraper) {
		s.maxArticles = n
	}
}

// WithMaxAdditionalPages caps enrichment fetches for non-blog items.
// Blog articles are always enriched; zero disables the rest.
func WithMaxAdditionalPages(n int) Option {
	return func(s *Scraper) {
		s.maxAdditionalPages = n
	}
}

// WithProgress installs a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Scraper) {
		s.progress = fn
	}
}

// NewScraper creates a Scraper around the required fetcher and detector.
func NewScraper(fetcher cardscan.Fetcher, detector cardscan.StructureDetector, opts ...Option) *Scraper {
	s := &Scraper{
		fetcher:            fetcher,
		detector:           detector,
		maxArticles:        cardscan.DefaultMaxArticles,
		maxAdditionalPages: cardscan.DefaultMaxAdditionalPages,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape runs the full pipeline against a URL. The returned Result holds
// the flattened items; the Extraction holds the structural view. Only
// the initial fetch is fatal: every later fetch failure degrades to
// missing content.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*cardscan.Result, *Extraction, error) {
	s.report("fetch", rawURL, "")
	html, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, nil, cardscan.Errorf(cardscan.EINTERNAL, "failed to fetch %s: %v", rawURL, err)
	}

	structure, match := s.extract(html, rawURL)
	successfulURL := rawURL

	// A structure-free or redirect-looking page is retried against
	// alternate URL variants. Blog listings are final.
	if s.shouldTryAlternates(structure, html) {
		for _, alt := range cardscan.AlternateURLs(rawURL) {
			s.report("fetch_alternate", alt, "")
			altHTML, err := s.fetcher.Fetch(ctx, alt)
			if err != nil {
				continue
			}
			if s.redirects != nil && s.redirects.LooksLikeRedirect(altHTML) {
				continue
			}
			altStructure, altMatch := s.extract(altHTML, alt)
			if altStructure.CardCount() > structure.CardCount() {
				structure, match = altStructure, altMatch
				successfulURL = alt
			}
			if structure.HasBlogArticles() {
				break
			}
		}
	}

	extraction := &Extraction{
		Site:            siteName(rawURL),
		PageTitle:       structure.PageTitle,
		PageDescription: structure.PageDescription,
		Platform:        match,
		TopicGroups:     structure.TopicGroups,
		Navigation:      structure.Navigation,
	}
	if successfulURL != rawURL {
		extraction.OriginalURL = rawURL
		extraction.SuccessfulURL = successfulURL
	}

	items := s.flatten(ctx, structure, match)

	return &cardscan.Result{
		Site:  extraction.Site,
		Items: items,
	}, extraction, nil
}

// extract resolves a page's structure: the platform fast path when the
// fingerprint is confident and yields cards, generic detection otherwise.
func (s *Scraper) extract(html, pageURL string) (*cardscan.HierarchicalStructure, *cardscan.PlatformMatch) {
	var match *cardscan.PlatformMatch
	if s.platforms != nil {
		match = s.platforms.Detect(html, pageURL)
	}

	if match != nil && s.platform != nil && match.Confidence > 0.3 && platformHasFastPath(match.Name) {
		s.report("platform_extract", pageURL, string(match.Name))
		structure, err := s.platform.ExtractPlatformStructure(html, pageURL, match, s.maxArticles)
		if err == nil && structure.CardCount() > 0 {
			return structure, match
		}
	}

	s.report("detect_structure", pageURL, "")
	structure, err := s.detector.DetectStructure(html, pageURL, s.maxArticles)
	if err != nil || structure == nil {
		structure = &cardscan.HierarchicalStructure{PageTitle: "Untitled Page"}
	}
	return structure, match
}

func platformHasFastPath(p cardscan.Platform) bool {
	switch p {
	case cardscan.PlatformSubstack, cardscan.PlatformMedium, cardscan.PlatformGhost:
		return true
	}
	return false
}

// shouldTryAlternates decides whether the primary page's result warrants
// retrying URL variants.
func (s *Scraper) shouldTryAlternates(structure *cardscan.HierarchicalStructure, html string) bool {
	if structure.HasBlogArticles() {
		return false
	}
	if structure.CardCount() == 0 {
		return true
	}
	return s.redirects != nil && s.redirects.LooksLikeRedirect(html)
}

// flatten turns the structure's cards into standardized items,
// deduplicated by normalized source URL across groups, with content
// enrichment where enabled.
func (s *Scraper) flatten(ctx context.Context, structure *cardscan.HierarchicalStructure, match *cardscan.PlatformMatch) []*cardscan.StandardItem {
	platform := cardscan.PlatformUnknown
	if match != nil {
		platform = match.Name
	}

	var items []*cardscan.StandardItem
	seen := make(map[string]bool)
	additional := 0

	for _, group := range structure.TopicGroups {
		for _, card := range group.Cards {
			norm := normalizeItemURL(card.MainLink)
			if seen[norm] {
				continue
			}
			seen[norm] = true

			item := &cardscan.StandardItem{
				Title:       card.Label,
				Content:     card.Description,
				ContentType: cardscan.ClassifyContent(card, platform),
				SourceURL:   card.MainLink,
			}

			if s.shouldEnrich(item, &additional) {
				if content := s.fetchContent(ctx, card.MainLink); content != "" {
					if len(content) > len(item.Content) {
						item.Content = content
					}
				}
			}

			items = append(items, item)
		}
	}

	return items
}

// shouldEnrich decides whether an item's linked page gets fetched. Blog
// items always do; others consume the additional-page budget only when
// they have no content yet.
func (s *Scraper) shouldEnrich(item *cardscan.StandardItem, additional *int) bool {
	if s.content == nil {
		return false
	}
	if item.ContentType == cardscan.ContentBlog {
		return true
	}
	if item.Content != "" {
		return false
	}
	if *additional >= s.maxAdditionalPages {
		return false
	}
	*additional++
	return true
}

// fetchContent retrieves an item's page and renders its main content as
// markdown, capped at 10000 characters. Failures return empty.
func (s *Scraper) fetchContent(ctx context.Context, pageURL string) string {
	s.report("enrich", pageURL, "")
	html, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return ""
	}

	fragment, err := s.content.MainContent(html)
	if err != nil || fragment == "" {
		return ""
	}

	var text string
	if s.converter != nil {
		if md, err := s.converter.Convert(fragment); err == nil {
			text = md
		}
	}
	if text == "" {
		text = s.content.PlainText(fragment)
	}

	if runes := []rune(text); len(runes) > 10000 {
		text = string(runes[:10000])
	}
	return strings.TrimSpace(text)
}

func (s *Scraper) report(stage, url, detail string) {
	if s.progress != nil {
		s.progress(ProgressEvent{Stage: stage, URL: url, Detail: detail})
	}
}

// normalizeItemURL strips the fragment for cross-group deduplication.
func normalizeItemURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Fragment = ""
	return u.String()
}

// siteName derives the site identifier from a URL's host.
func siteName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return strings.TrimPrefix(u.Host, "www.")
}
