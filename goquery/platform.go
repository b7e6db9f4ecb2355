package goquery

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/awalczak/cardscan"
	"golang.org/x/net/html"
)

var _ cardscan.PlatformCardExtractor = (*PlatformExtractor)(nil)

// PlatformExtractor pulls post cards straight through a fingerprinted
// platform's selector bundle, skipping generic structure detection.
type PlatformExtractor struct{}

// NewPlatformExtractor creates a PlatformExtractor.
func NewPlatformExtractor() *PlatformExtractor {
	return &PlatformExtractor{}
}

// ExtractPlatformStructure builds a single posts group from the match's
// selector bundle. An empty structure (no groups) means the selectors
// found nothing and the caller should fall back to generic detection.
func (e *PlatformExtractor) ExtractPlatformStructure(htmlContent, baseURL string, match *cardscan.PlatformMatch, maxCards int) (*cardscan.HierarchicalStructure, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, cardscan.Errorf(cardscan.EINVALID, "invalid base URL: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, cardscan.Errorf(cardscan.EINVALID, "failed to parse HTML: %v", err)
	}
	if maxCards <= 0 {
		maxCards = cardscan.DefaultMaxArticles
	}

	posts := findPostElements(doc, match)
	if len(posts) > 30 {
		posts = posts[:30]
	}

	var cards []*cardscan.Card
	seen := make(map[string]bool)
	for _, post := range posts {
		card := platformCard(post, base, match)
		if card == nil {
			continue
		}
		norm := normalizeURL(card.MainLink)
		if seen[norm] {
			continue
		}
		seen[norm] = true
		cards = append(cards, card)
		if len(cards) >= maxCards {
			break
		}
	}

	structure := &cardscan.HierarchicalStructure{
		PageTitle:       strings.TrimSpace(doc.Find("title").First().Text()),
		PageDescription: strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", "")),
	}
	if structure.PageTitle == "" {
		structure.PageTitle = "Untitled Page"
	}
	if len(cards) > 0 {
		structure.TopicGroups = []*cardscan.TopicGroup{{
			GroupType:  cardscan.GroupBlogArticles,
			HeaderText: fmt.Sprintf("%s Posts (%d found)", displayName(match.Name), len(cards)),
			Cards:      cards,
		}}
	}
	return structure, nil
}

// findPostElements collects candidate post containers from the bundle's
// post selectors, tried in order until more than five accumulate. Bare
// post links are widened to their enclosing container.
func findPostElements(doc *goquery.Document, match *cardscan.PlatformMatch) []*goquery.Selection {
	var posts []*goquery.Selection
	seen := make(map[*html.Node]bool)

	add := func(s *goquery.Selection) {
		if len(s.Nodes) == 0 || seen[s.Nodes[0]] {
			return
		}
		seen[s.Nodes[0]] = true
		posts = append(posts, s)
	}

	for _, selector := range splitSelectors(match.Selectors.Posts) {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			if goquery.NodeName(s) == "a" {
				// A bare post link is a poor card boundary; widen to its
				// enclosing container when one exists.
				if parent := s.Closest("div, article, section"); parent.Length() > 0 && goquery.NodeName(parent) != "body" {
					add(parent)
					return
				}
			}
			add(s)
		})
		if len(posts) > 5 {
			break
		}
	}

	return posts
}

// platformCard extracts one card from a post container using the match's
// selector bundle.
func platformCard(post *goquery.Selection, base *url.URL, match *cardscan.PlatformMatch) *cardscan.Card {
	title, titleLink := platformTitle(post, match)
	if title == "" {
		return nil
	}

	mainLink := ""
	if titleLink != "" {
		mainLink = resolveURL(base, titleLink)
	}
	if mainLink == "" {
		if link := post.Find("a[href]").First(); link.Length() > 0 {
			mainLink = resolveURL(base, link.AttrOr("href", ""))
		}
	}
	if mainLink == "" && goquery.NodeName(post) == "a" {
		mainLink = resolveURL(base, post.AttrOr("href", ""))
	}
	if mainLink == "" {
		return nil
	}

	card := &cardscan.Card{
		Label:       title,
		MainLink:    mainLink,
		Description: platformDescription(post, match, title),
		CardType:    cardscan.CardPost,
		Metadata:    make(cardscan.Metadata),
	}

	if author := firstSelectorText(post, match.Selectors.Author); author != "" {
		card.Metadata[cardscan.MetaAuthor] = cardscan.String(author)
		for _, selector := range splitSelectors(match.Selectors.Author) {
			if link := post.Find(selector).Find("a[href]").First(); link.Length() > 0 {
				card.SecondaryLinks = append(card.SecondaryLinks, cardscan.SecondaryLink{
					Role: cardscan.RoleAuthor,
					URL:  resolveURL(base, link.AttrOr("href", "")),
					Text: flatText(link),
				})
				break
			}
		}
	}
	if date := firstSelectorText(post, match.Selectors.Date); date != "" {
		card.Metadata[cardscan.MetaDate] = cardscan.String(date)
	}
	if interactions := collectSelectorText(post, match.Selectors.Interaction); len(interactions) > 0 {
		card.Metadata[cardscan.MetaInteractions] = cardscan.Strings(interactions)
	}

	return card
}

// platformTitle resolves a post's title and, when the title element is or
// contains a link, that link's href.
func platformTitle(post *goquery.Selection, match *cardscan.PlatformMatch) (string, string) {
	for _, selector := range splitSelectors(match.Selectors.Title) {
		el := post.Find(selector).First()
		if el.Length() == 0 {
			continue
		}
		title := flatText(el)
		if title == "" {
			continue
		}
		href := el.AttrOr("href", "")
		if href == "" {
			href = el.Find("a[href]").First().AttrOr("href", "")
		}
		if href == "" {
			href = el.Closest("a[href]").AttrOr("href", "")
		}
		return title, href
	}

	// Substack archive pages often carry titles only as /p/ link text.
	if link := post.Find(`a[href*="/p/"]`).First(); link.Length() > 0 {
		if title := flatText(link); title != "" {
			return title, link.AttrOr("href", "")
		}
	}

	if h := post.Find("h1, h2, h3, h4").First(); h.Length() > 0 {
		return flatText(h), ""
	}
	return "", ""
}

// platformDescription resolves a post's excerpt: content selectors first,
// then the post's remaining text with the title removed. Capped at 500
// characters.
func platformDescription(post *goquery.Selection, match *cardscan.PlatformMatch, title string) string {
	for _, selector := range splitSelectors(match.Selectors.Content) {
		if el := post.Find(selector).First(); el.Length() > 0 {
			if text := flatText(el); text != "" {
				return truncate(text, 500)
			}
		}
	}

	text := strings.TrimSpace(strings.Replace(flatText(post), title, "", 1))
	return truncate(text, 500)
}

// firstSelectorText returns the text of the first element matching any
// selector in a comma-separated list.
func firstSelectorText(s *goquery.Selection, selectors string) string {
	for _, selector := range splitSelectors(selectors) {
		if el := s.Find(selector).First(); el.Length() > 0 {
			if text := flatText(el); text != "" {
				return text
			}
		}
	}
	return ""
}

// collectSelectorText gathers non-empty texts from all elements matching
// the selector list.
func collectSelectorText(s *goquery.Selection, selectors string) []string {
	var out []string
	for _, selector := range splitSelectors(selectors) {
		s.Find(selector).Each(func(_ int, el *goquery.Selection) {
			if text := flatText(el); text != "" {
				out = append(out, text)
			}
		})
	}
	return out
}

// displayName renders a platform identifier for group headers.
func displayName(p cardscan.Platform) string {
	switch p {
	case cardscan.PlatformSubstack:
		return "Substack"
	case cardscan.PlatformMedium:
		return "Medium"
	case cardscan.PlatformGhost:
		return "Ghost"
	case cardscan.PlatformWordPress:
		return "WordPress"
	case cardscan.PlatformGenericBlog:
		return "Blog"
	}
	name := string(p)
	if name == "" {
		return "Unknown"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
