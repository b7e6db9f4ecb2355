package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/awalczak/cardscan"
	"golang.org/x/net/html"
)

var _ cardscan.ContentExtractor = (*ContentSelector)(nil)

// contentSelectors locate a page's primary content region, most specific
// first.
var contentSelectors = []string{
	"article", ".post-content", ".entry-content", ".content",
	".article-content", ".blog-content", "main", ".main",
	`[role="main"]`, ".post-body", ".entry", ".post",
	".available-content", ".body",
}

// ContentSelector isolates the main content region of a page and renders
// DOM fragments as readable plain text.
type ContentSelector struct{}

// NewContentSelector creates a ContentSelector.
func NewContentSelector() *ContentSelector {
	return &ContentSelector{}
}

// MainContent returns the HTML of the page's primary content region.
// Candidate selectors are tried first; the largest match with more than
// 200 characters of text wins. Failing that, the largest top-level block
// outside chrome elements; failing that, the whole body. Returns empty
// when the page has no usable content.
func (c *ContentSelector) MainContent(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", cardscan.Errorf(cardscan.EINVALID, "failed to parse HTML: %v", err)
	}

	var best *goquery.Selection
	bestLen := 0
	for _, selector := range contentSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			if n := len(strings.TrimSpace(s.Text())); n > bestLen {
				best = s
				bestLen = n
			}
		})
	}
	if best != nil && bestLen > 200 {
		return outerHTML(best), nil
	}

	// Strip chrome and take the largest remaining block.
	body := doc.Find("body").First()
	if body.Length() > 0 {
		body.Find("nav, header, footer, aside, script, style").Remove()

		best, bestLen = nil, 0
		body.Find("div, section, main").Each(func(_ int, s *goquery.Selection) {
			if n := len(strings.TrimSpace(s.Text())); n > bestLen {
				best = s
				bestLen = n
			}
		})
		if best != nil && bestLen > 200 {
			return outerHTML(best), nil
		}

		if strings.TrimSpace(body.Text()) != "" {
			return outerHTML(body), nil
		}
	}

	return "", nil
}

// PlainText renders an HTML fragment as markdown-flavored plain text:
// headings, paragraphs, list items and line breaks keep their shape,
// scripts and styles are dropped.
func (c *ContentSelector) PlainText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}

	var b strings.Builder
	for _, n := range doc.Find("body").Nodes {
		renderText(&b, n)
	}
	return tidyText(b.String())
}

func renderText(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	if n.Type != html.ElementNode && n.Type != html.DocumentNode {
		return
	}

	switch n.Data {
	case "script", "style":
		return
	case "h1", "h2", "h3", "h4", "h5", "h6":
		b.WriteString("\n\n## ")
		renderChildren(b, n)
		b.WriteString("\n")
		return
	case "p":
		b.WriteString("\n")
		renderChildren(b, n)
		b.WriteString("\n")
		return
	case "li":
		b.WriteString("\n- ")
		renderChildren(b, n)
		return
	case "br":
		b.WriteString("\n")
		return
	case "strong", "b":
		b.WriteString("**")
		renderChildren(b, n)
		b.WriteString("**")
		return
	}

	renderChildren(b, n)
}

func renderChildren(b *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderText(b, c)
	}
}

// tidyText collapses runs of blank lines and horizontal whitespace.
func tidyText(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blanks++
			if blanks > 1 {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func outerHTML(s *goquery.Selection) string {
	out, err := goquery.OuterHtml(s)
	if err != nil {
		return ""
	}
	return out
}
