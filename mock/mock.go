// Package mock provides function-field mocks for cardscan interfaces.
package mock

import (
	"context"

	"github.com/awalczak/cardscan"
)

var _ cardscan.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of cardscan.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ cardscan.Converter = (*Converter)(nil)

// Converter is a mock implementation of cardscan.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ cardscan.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of cardscan.ContentExtractor.
type ContentExtractor struct {
	MainContentFn func(html string) (string, error)
	PlainTextFn   func(fragment string) string
}

func (e *ContentExtractor) MainContent(html string) (string, error) {
	return e.MainContentFn(html)
}

func (e *ContentExtractor) PlainText(fragment string) string {
	return e.PlainTextFn(fragment)
}

var _ cardscan.StructureDetector = (*StructureDetector)(nil)

// StructureDetector is a mock implementation of cardscan.StructureDetector.
type StructureDetector struct {
	DetectStructureFn func(html, baseURL string, maxArticles int) (*cardscan.HierarchicalStructure, error)
}

func (d *StructureDetector) DetectStructure(html, baseURL string, maxArticles int) (*cardscan.HierarchicalStructure, error) {
	return d.DetectStructureFn(html, baseURL, maxArticles)
}

var _ cardscan.RedirectChecker = (*RedirectChecker)(nil)

// RedirectChecker is a mock implementation of cardscan.RedirectChecker.
type RedirectChecker struct {
	LooksLikeRedirectFn func(html string) bool
}

func (c *RedirectChecker) LooksLikeRedirect(html string) bool {
	return c.LooksLikeRedirectFn(html)
}

var _ cardscan.PlatformDetector = (*PlatformDetector)(nil)

// PlatformDetector is a mock implementation of cardscan.PlatformDetector.
type PlatformDetector struct {
	DetectFn func(html, url string) *cardscan.PlatformMatch
}

func (d *PlatformDetector) Detect(html, url string) *cardscan.PlatformMatch {
	return d.DetectFn(html, url)
}

var _ cardscan.PlatformCardExtractor = (*PlatformCardExtractor)(nil)

// PlatformCardExtractor is a mock implementation of
// cardscan.PlatformCardExtractor.
type PlatformCardExtractor struct {
	ExtractPlatformStructureFn func(html, baseURL string, match *cardscan.PlatformMatch, maxCards int) (*cardscan.HierarchicalStructure, error)
}

func (e *PlatformCardExtractor) ExtractPlatformStructure(html, baseURL string, match *cardscan.PlatformMatch, maxCards int) (*cardscan.HierarchicalStructure, error) {
	return e.ExtractPlatformStructureFn(html, baseURL, match, maxCards)
}

var _ cardscan.ItemService = (*ItemService)(nil)

// ItemService is a mock implementation of cardscan.ItemService.
type ItemService struct {
	SaveResultFn        func(ctx context.Context, result *cardscan.Result) (string, error)
	FindResultByRunIDFn func(ctx context.Context, runID string) (*cardscan.Result, error)
	FindRunsFn          func(ctx context.Context) ([]*cardscan.ScrapeRun, error)
}

func (s *ItemService) SaveResult(ctx context.Context, result *cardscan.Result) (string, error) {
	return s.SaveResultFn(ctx, result)
}

func (s *ItemService) FindResultByRunID(ctx context.Context, runID string) (*cardscan.Result, error) {
	return s.FindResultByRunIDFn(ctx, runID)
}

func (s *ItemService) FindRuns(ctx context.Context) ([]*cardscan.ScrapeRun, error) {
	return s.FindRunsFn(ctx)
}
