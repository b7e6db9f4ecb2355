package cardscan

import (
	"context"
	"strings"
)

// Fetcher retrieves HTML from URLs. Implementations own transport,
// headers, pacing, and session state; the core treats a fetch failure as
// "no content", never as fatal.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// AlternateURLs returns candidate URLs to try when the primary page has
// no detectable structure or looks like a redirect page. Substack sites
// get their archive variants first.
func AlternateURLs(rawURL string) []string {
	base := strings.TrimRight(rawURL, "/")

	var alternatives []string
	if strings.Contains(rawURL, "substack.com") {
		alternatives = append(alternatives,
			base+"/archive",
			base+"/posts",
			base+"/p",
		)
	}

	alternatives = append(alternatives,
		base+"/blog",
		base+"/articles",
		base+"/posts",
	)

	return alternatives
}
