// Package cardscan turns an arbitrary, previously-unseen HTML page into a
// normalized model of topic groups containing cards, such as a
// company-grouped set of interview guides or a blog's article listing,
// without any site-specific configuration. Detection is a deterministic
// cascade of heuristics that degrades to an empty or partial result
// rather than failing.
//
// This package contains domain types, interfaces, and pure classification
// logic following Ben Johnson's Standard Package Layout. Implementations
// live in subdirectories named after their primary dependency
// (e.g., goquery/, htmltomarkdown/, sqlite/).
package cardscan

// Default operational limits.
const (
	// DefaultMaxArticles caps how many blog articles or platform posts a
	// single detection pass returns.
	DefaultMaxArticles = 20

	// DefaultMaxAdditionalPages caps follow-up fetches used to fill in
	// content for non-blog items. Zero disables them.
	DefaultMaxAdditionalPages = 0
)
