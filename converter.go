package cardscan

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be a content fragment selected by a
	// ContentExtractor. Returns the Markdown representation.
	Convert(html string) (string, error)
}

// ContentExtractor selects the main content fragment of a page for
// full-content enrichment, and provides a plain-text rendering used when
// markdown conversion fails.
type ContentExtractor interface {
	// MainContent returns the HTML of the largest qualifying content
	// container, or the empty string when the page holds nothing
	// substantial. It never returns an error for "not found".
	MainContent(html string) (string, error)

	// PlainText renders a fragment as plain text with lightweight
	// structural markers (## headings, - list items, **strong**).
	PlainText(fragment string) string
}
