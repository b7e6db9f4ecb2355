package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/awalczak/cardscan"
)

// Ensure StructureDetector implements the root interfaces at compile time.
var (
	_ cardscan.StructureDetector = (*StructureDetector)(nil)
	_ cardscan.RedirectChecker   = (*StructureDetector)(nil)
)

// StructureDetector discovers the topic-group/card hierarchy of an
// arbitrary HTML page. Strategies cascade: a blog-article shortcut,
// indicator headings, generic container patterns, and a single-group
// fallback. The first strategy that yields groups wins.
type StructureDetector struct {
	vocab cardscan.Vocabulary
	cards *CardExtractor
}

// NewStructureDetector creates a StructureDetector over the stock
// vocabulary.
func NewStructureDetector() *StructureDetector {
	vocab := cardscan.DefaultVocabulary()
	return &StructureDetector{
		vocab: vocab,
		cards: NewCardExtractor(vocab),
	}
}

// DetectStructure analyzes an HTML document and returns its hierarchical
// structure. Deterministic: identical input always yields an identical
// structure. A structure with no groups is a valid result, not an error.
func (d *StructureDetector) DetectStructure(html, baseURL string, maxArticles int) (*cardscan.HierarchicalStructure, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, cardscan.Errorf(cardscan.EINVALID, "invalid base URL: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, cardscan.Errorf(cardscan.EINVALID, "failed to parse HTML: %v", err)
	}
	if maxArticles <= 0 {
		maxArticles = cardscan.DefaultMaxArticles
	}

	pageTitle := d.pageTitle(doc)
	pageDescription := d.pageDescription(doc)
	navigation := navigationAnchors(doc)

	// Blog-article listings short-circuit the group strategies.
	if articles := d.findBlogArticles(doc, base, maxArticles); len(articles) > 0 {
		return buildBlogStructure(articles, pageTitle, pageDescription, navigation), nil
	}

	groups := d.findGroupsByHeaders(doc, base)
	if len(groups) == 0 {
		groups = d.findGroupsByPatterns(doc, base)
	}
	if len(groups) == 0 {
		groups = d.createSingleGroupFallback(doc, base)
	}

	return &cardscan.HierarchicalStructure{
		PageTitle:       pageTitle,
		PageDescription: pageDescription,
		TopicGroups:     groups,
		Navigation:      navigation,
	}, nil
}

// LooksLikeRedirect reports whether a fetched page is a redirect, terms
// or loading interstitial rather than real content. Unparseable input
// counts as a redirect.
func (d *StructureDetector) LooksLikeRedirect(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return true
	}
	text := strings.ToLower(doc.Text())
	for _, ind := range d.vocab.RedirectIndicators {
		if strings.Contains(text, ind) {
			return true
		}
	}
	return false
}

// pageTitle resolves the page title from visible headings, then the
// document title, then a fixed fallback.
func (d *StructureDetector) pageTitle(doc *goquery.Document) string {
	for _, selector := range []string{"h1", ".page-title", ".main-title"} {
		if s := doc.Find(selector).First(); s.Length() > 0 {
			if text := flatText(s); text != "" {
				return text
			}
		}
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return "Untitled Page"
}

// pageDescription resolves an introductory description: lead-paragraph
// selectors with substantial text, then the meta description.
func (d *StructureDetector) pageDescription(doc *goquery.Document) string {
	for _, selector := range []string{".page-description", ".subtitle", "p.lead", ".intro"} {
		if s := doc.Find(selector).First(); s.Length() > 0 {
			if text := flatText(s); len(text) > 20 {
				return text
			}
		}
	}
	if content := doc.Find(`meta[name="description"]`).AttrOr("content", ""); content != "" {
		return strings.TrimSpace(content)
	}
	return ""
}

// navigationAnchors maps in-page fragment targets to their navigation
// link text. First occurrence of an href wins.
func navigationAnchors(doc *goquery.Document) map[string]string {
	anchors := make(map[string]string)
	doc.Find(`nav a[href^="#"], .nav a[href^="#"], .table-of-contents a[href^="#"]`).Each(func(_ int, link *goquery.Selection) {
		href := link.AttrOr("href", "")
		text := flatText(link)
		if href == "#" || text == "" {
			return
		}
		if _, ok := anchors[href]; ok {
			return
		}
		anchors[href] = text
	})
	return anchors
}
