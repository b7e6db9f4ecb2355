package goquery

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/awalczak/cardscan"
)

// blogSelectors locate article containers and article links across common
// blog markup. Tried in order, cumulatively; scanning stops once more
// than five candidates accumulate.
var blogSelectors = []string{
	"article", ".post", ".blog-post", ".entry", ".article",
	".post-item", ".blog-item", ".article-item", ".entry-item",
	".substack-post", ".medium-post", ".ghost-post",
	`a[href*="/blogs/"]`, `a[href*="/blog/"]`, `a[href*="/post/"]`,
}

var (
	datePattern = regexp.MustCompile(`\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{1,2},?\s+\d{4}`)

	dateFormats = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{1,2},?\s+\d{4}`),
		regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}`),
		regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}`),
	}

	readMoreSuffixes = []string{"Learn more", "Read more", "Continue reading", "Click here"}

	sentenceEnd = regexp.MustCompile(`[.!?]\s+`)
)

// article is an intermediate blog-article candidate before it becomes a
// card.
type article struct {
	title string
	url   string
	desc  string
	date  string
}

// findBlogArticles scans the document for blog-article links. Candidate
// containers come from the blog selector list; when none yield articles,
// every link on the page is screened instead. Articles are deduplicated
// by normalized URL and capped at maxArticles.
func (d *StructureDetector) findBlogArticles(doc *goquery.Document, base *url.URL, maxArticles int) []article {
	var candidates []*goquery.Selection
	for _, selector := range blogSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			candidates = append(candidates, s)
		})
		if len(candidates) > 5 {
			break
		}
	}

	var articles []article
	seen := make(map[string]bool)

	add := func(a article) bool {
		norm := normalizeURL(a.url)
		if seen[norm] {
			return len(articles) < maxArticles
		}
		seen[norm] = true
		articles = append(articles, a)
		return len(articles) < maxArticles
	}

	for _, c := range candidates {
		a, ok := d.articleFromElement(c, base)
		if !ok {
			continue
		}
		if !add(a) {
			return articles
		}
	}
	if len(articles) > 0 {
		return articles
	}

	// No structured containers: screen every link on the page.
	doc.Find("a[href]").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href := link.AttrOr("href", "")
		if !d.isArticleLink(href) {
			return true
		}
		title := cleanTitle(flatText(link))
		if title == "" {
			return true
		}
		abs := resolveURL(base, href)
		if abs == "" {
			return true
		}
		return add(article{title: title, url: abs})
	})

	return articles
}

// articleFromElement builds an article candidate from a container or a
// bare link element.
func (d *StructureDetector) articleFromElement(s *goquery.Selection, base *url.URL) (article, bool) {
	var link *goquery.Selection
	if goquery.NodeName(s) == "a" {
		link = s
	} else {
		link = s.Find("a[href]").First()
	}
	if link.Length() == 0 {
		return article{}, false
	}

	href := link.AttrOr("href", "")
	if !d.isArticleLink(href) {
		return article{}, false
	}

	title := cleanTitle(flatText(link))
	if title == "" {
		// The link itself may carry no text; fall back to a heading in
		// the container.
		if h := s.Find(headingSelector).First(); h.Length() > 0 {
			title = cleanTitle(flatText(h))
		}
	}
	if title == "" {
		return article{}, false
	}

	abs := resolveURL(base, href)
	if abs == "" {
		return article{}, false
	}

	text := flatText(s)
	return article{
		title: title,
		url:   abs,
		desc:  descriptionFromText(text, title),
		date:  dateFromText(text),
	}, true
}

// isArticleLink reports whether an href points to an article. Exclusions
// are checked before indicators.
func (d *StructureDetector) isArticleLink(href string) bool {
	lower := strings.ToLower(strings.TrimSpace(href))
	if lower == "" {
		return false
	}
	for _, excl := range d.vocab.ArticleExclusions {
		if strings.Contains(lower, excl) {
			return false
		}
	}
	for _, ind := range d.vocab.ArticleIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}

// cleanTitle normalizes raw link text into an article title. Dates are
// stripped, boilerplate sentences rejected, and long titles truncated at
// a word boundary.
func cleanTitle(raw string) string {
	title := strings.TrimSpace(raw)
	if title == "" {
		return ""
	}

	if loc := datePattern.FindStringIndex(title); loc != nil {
		before := strings.TrimSpace(title[:loc[0]])
		after := strings.TrimSpace(title[loc[1]:])
		if len(before) >= len(after) {
			title = before
		} else {
			title = after
		}
	}

	for _, sentence := range sentenceEnd.Split(title, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= 10 || len(sentence) >= 120 {
			continue
		}
		lower := strings.ToLower(sentence)
		if strings.Contains(lower, "click") || strings.Contains(lower, "read more") || strings.Contains(lower, "continue") {
			continue
		}
		title = sentence
		break
	}

	if len(title) > 100 {
		cut := title[:100]
		if idx := strings.LastIndex(cut, " "); idx > 50 {
			cut = cut[:idx]
		}
		title = cut
	}

	return strings.TrimSpace(title)
}

// descriptionFromText derives a short description from a container's
// compacted text, preferring the portion after a date stamp and falling
// back to the first substantial sentence.
func descriptionFromText(text, title string) string {
	text = strings.TrimSpace(strings.Replace(text, title, "", 1))
	if text == "" {
		return ""
	}

	if loc := datePattern.FindStringIndex(text); loc != nil {
		after := strings.TrimSpace(text[loc[1]:])
		if len(after) > 20 {
			return tidyDescription(after)
		}
	}

	for _, sentence := range sentenceEnd.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= 50 || len(sentence) >= 300 {
			continue
		}
		lower := strings.ToLower(sentence)
		if datePattern.MatchString(sentence) ||
			strings.Contains(lower, "click") || strings.Contains(lower, "read") || strings.Contains(lower, "learn") {
			continue
		}
		return sentence
	}

	return ""
}

// tidyDescription strips read-more boilerplate and trims overlong text to
// two sentences or 300 characters.
func tidyDescription(desc string) string {
	for _, suffix := range readMoreSuffixes {
		if idx := strings.Index(desc, suffix); idx >= 0 {
			desc = strings.TrimSpace(desc[:idx])
		}
	}

	if len(desc) > 300 {
		sentences := sentenceEnd.Split(desc, -1)
		if len(sentences) >= 2 {
			two := strings.TrimSpace(sentences[0] + ". " + sentences[1] + ".")
			if len(two) <= 300 {
				return two
			}
		}
		cut := desc[:300]
		if idx := strings.LastIndex(cut, " "); idx > 200 {
			cut = cut[:idx]
		}
		desc = cut
	}

	return strings.TrimSpace(desc)
}

// dateFromText extracts the first recognizable date stamp from text.
func dateFromText(text string) string {
	for _, format := range dateFormats {
		if m := format.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

// buildBlogStructure wraps the found articles in a single Blog Articles
// group.
func buildBlogStructure(articles []article, pageTitle, pageDescription string, navigation map[string]string) *cardscan.HierarchicalStructure {
	group := &cardscan.TopicGroup{
		GroupType:  cardscan.GroupBlogArticles,
		HeaderText: fmt.Sprintf("Blog Articles (%d found)", len(articles)),
	}
	for _, a := range articles {
		card := &cardscan.Card{
			Label:    a.title,
			MainLink: a.url,
			CardType: cardscan.CardBlogArticle,
		}
		if a.desc != "" {
			card.Description = a.desc
		}
		if a.date != "" {
			card.Metadata = cardscan.Metadata{cardscan.MetaDate: cardscan.String(a.date)}
		}
		group.Cards = append(group.Cards, card)
	}

	return &cardscan.HierarchicalStructure{
		PageTitle:       pageTitle,
		PageDescription: pageDescription,
		TopicGroups:     []*cardscan.TopicGroup{group},
		Navigation:      navigation,
	}
}
