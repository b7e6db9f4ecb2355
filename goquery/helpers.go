// Package goquery implements cardscan's DOM heuristics on top of
// PuerkitoBio/goquery: platform fingerprinting, structure detection,
// and card field extraction.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// flatText returns the concatenated text of all descendant text nodes,
// each trimmed of surrounding whitespace. Adjacent fragments join with
// no separator, so `<h3>Google</h3><a>Interview</a>` yields
// "GoogleInterview". The pattern heuristics rely on this compaction.
func flatText(s *goquery.Selection) string {
	var b strings.Builder
	for _, n := range s.Nodes {
		appendFlatText(&b, n)
	}
	return b.String()
}

func appendFlatText(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(strings.TrimSpace(n.Data))
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		appendFlatText(b, c)
	}
}

// resolveURL resolves href against base and returns the absolute URL.
// Returns empty string if href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// normalizeURL strips the fragment from an absolute URL for deduplication.
func normalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Fragment = ""
	return u.String()
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// splitSelectors breaks a comma-separated selector list into its parts,
// preserving order.
func splitSelectors(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// isHeadingName reports whether name is one of h1..h6.
func isHeadingName(name string) bool {
	switch name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

const headingSelector = "h1, h2, h3, h4, h5, h6"
