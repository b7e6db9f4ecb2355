package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/awalczak/cardscan"
	"golang.org/x/net/html"
)

var (
	trailingPunct  = regexp.MustCompile(`[^\w\s]+$`)
	leadingNonWord = regexp.MustCompile(`^[^\w]*`)
	watchSplit     = regexp.MustCompile(`(?i)watch`)
	countPattern   = regexp.MustCompile(`(?i)(\d+)\s*(replay|interview|question|video)`)

	// namePrefixes peel a leading company/language/topic name off
	// concatenated card text so the remainder can serve as description.
	namePrefixes = []*regexp.Regexp{
		regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*`),
		regexp.MustCompile(`^[A-Z#]+`),
		regexp.MustCompile(`^\w+`),
	}
)

// CardExtractor produces Cards from candidate DOM elements. Every field
// is extracted through an ordered chain of strategies; the first
// non-empty result wins. Extraction fails (no card) when no label or no
// main link can be resolved.
type CardExtractor struct {
	vocab cardscan.Vocabulary
}

// NewCardExtractor creates a CardExtractor with the given vocabulary.
func NewCardExtractor(vocab cardscan.Vocabulary) *CardExtractor {
	return &CardExtractor{vocab: vocab}
}

// Extract parses an HTML fragment and extracts a card from its first
// element. Returns (nil, nil) when the fragment does not yield a card.
func (e *CardExtractor) Extract(fragment, baseURL string) (*cardscan.Card, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, cardscan.Errorf(cardscan.EINVALID, "invalid base URL: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, cardscan.Errorf(cardscan.EINVALID, "failed to parse HTML: %v", err)
	}
	el := doc.Find("body").Children().First()
	if el.Length() == 0 {
		return nil, nil
	}
	return e.extract(el, base), nil
}

// extract pulls all card fields out of a candidate element.
func (e *CardExtractor) extract(s *goquery.Selection, base *url.URL) *cardscan.Card {
	label := e.extractLabel(s)
	if label == "" {
		return nil
	}

	mainLink := e.extractMainLink(s, base)
	if mainLink == "" {
		return nil
	}

	return &cardscan.Card{
		Label:          label,
		MainLink:       mainLink,
		Description:    e.extractDescription(s),
		SecondaryLinks: e.extractSecondaryLinks(s, base, mainLink),
		Metadata:       e.extractMetadata(s),
		CardType:       e.cardType(label, mainLink),
	}
}

// extractLabel resolves the card's label: headings, then title-class
// elements, then non-generic anchor text, then pattern heuristics over
// the element's compacted text, then a first-words fallback.
func (e *CardExtractor) extractLabel(s *goquery.Selection) string {
	var label string
	s.Find(headingSelector).EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if text := flatText(h); text != "" {
			label = text
			return false
		}
		return true
	})
	if label != "" {
		return label
	}

	for _, selector := range e.vocab.TitleSelectors {
		if el := s.Find(selector).First(); el.Length() > 0 {
			if text := flatText(el); text != "" {
				return text
			}
		}
	}

	if link := s.Find("a").First(); link.Length() > 0 {
		text := flatText(link)
		if text != "" && !containsAnyFold(text, e.vocab.GenericLinkPhrases) {
			return text
		}
	}

	allText := flatText(s)

	for _, company := range e.vocab.CompanyNames {
		if strings.HasPrefix(allText, company) {
			return company
		}
	}

	if m := e.vocab.LanguagePattern.FindStringSubmatch(allText); m != nil {
		return m[1]
	}

	if m := e.vocab.CapitalizedRunPattern.FindStringSubmatch(allText); m != nil {
		if run := m[1]; len(strings.Fields(run)) <= 3 && run != "" {
			return run
		}
	}

	for _, keyword := range e.vocab.LabelSplitKeywords {
		if !strings.Contains(allText, keyword) {
			continue
		}
		name := strings.TrimSpace(strings.SplitN(allText, keyword, 2)[0])
		name = trailingPunct.ReplaceAllString(name, "")
		if name != "" && len(name) <= 30 {
			return name
		}
	}

	words := strings.Fields(allText)
	if len(words) > 3 {
		words = words[:3]
	}
	var title []string
	for _, w := range words {
		title = append(title, w)
		if len(strings.Join(title, " ")) > 25 {
			break
		}
	}
	return strings.Join(title, " ")
}

// extractMainLink picks the primary anchor. A lone anchor wins outright;
// otherwise anchors are scored and the highest wins, ties broken by
// document order.
func (e *CardExtractor) extractMainLink(s *goquery.Selection, base *url.URL) string {
	links := s.Find("a[href]")
	if links.Length() == 0 {
		return ""
	}
	if links.Length() == 1 {
		return resolveURL(base, links.AttrOr("href", ""))
	}

	bestScore := -1 << 31
	bestHref := ""
	links.Each(func(_ int, link *goquery.Selection) {
		text := strings.ToLower(flatText(link))
		classes := strings.ToLower(link.AttrOr("class", ""))

		score := 0
		if strings.Contains(classes, "main") || strings.Contains(classes, "primary") || strings.Contains(classes, "title") {
			score += 3
		}
		if strings.Contains(text, "interview") || strings.Contains(text, "guide") || strings.Contains(text, "process") {
			score += 2
		} else if strings.Contains(text, "questions") {
			score += 1
		}
		if strings.Contains(text, "watch") || strings.Contains(text, "replay") || strings.Contains(text, "video") {
			score -= 1
		}
		if len(text) > 10 {
			score += 1
		}

		if score > bestScore {
			bestScore = score
			bestHref = link.AttrOr("href", "")
		}
	})

	return resolveURL(base, bestHref)
}

// extractDescription resolves the card's description: description-class
// selectors, then the interview-phrase pattern library, then a "watch"
// boundary split with the leading name stripped, then text following the
// first heading. Returns empty when nothing matches.
func (e *CardExtractor) extractDescription(s *goquery.Selection) string {
	for _, selector := range e.vocab.DescriptionSelectors {
		if el := s.Find(selector).First(); el.Length() > 0 {
			if text := flatText(el); len(text) > 5 {
				return text
			}
		}
	}

	allText := flatText(s)

	for _, pattern := range e.vocab.DescriptionPatterns {
		if m := pattern.FindString(allText); m != "" {
			return m
		}
	}

	if strings.Contains(strings.ToLower(allText), "watch") {
		beforeWatch := strings.TrimSpace(watchSplit.Split(allText, 2)[0])
		for _, prefix := range namePrefixes {
			loc := prefix.FindStringIndex(beforeWatch)
			if loc == nil {
				continue
			}
			desc := strings.TrimSpace(beforeWatch[loc[1]:])
			desc = leadingNonWord.ReplaceAllString(desc, "")
			if len(desc) > 3 {
				return desc
			}
		}
	}

	if heading := s.Find(headingSelector).First(); heading.Length() > 0 {
		if desc := textAfterHeading(heading); desc != "" {
			return desc
		}
	}

	return ""
}

// textAfterHeading returns the first substantial text following a
// heading: a sibling text node, or a p/div/span sibling.
func textAfterHeading(heading *goquery.Selection) string {
	if len(heading.Nodes) == 0 {
		return ""
	}
	for n := heading.Nodes[0].NextSibling; n != nil; n = n.NextSibling {
		switch n.Type {
		case html.TextNode:
			if text := strings.TrimSpace(n.Data); len(text) > 5 {
				return text
			}
		case html.ElementNode:
			switch n.Data {
			case "p", "div", "span":
				var b strings.Builder
				appendFlatText(&b, n)
				if text := b.String(); len(text) > 5 {
					return text
				}
			}
		}
	}
	return ""
}

// extractSecondaryLinks collects every anchor other than the main link,
// each tagged with its classified role. Roles are never empty, so every
// non-main link is kept.
func (e *CardExtractor) extractSecondaryLinks(s *goquery.Selection, base *url.URL, mainLink string) []cardscan.SecondaryLink {
	var secondary []cardscan.SecondaryLink
	mainNorm := normalizeURL(mainLink)

	s.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href := resolveURL(base, link.AttrOr("href", ""))
		if href == "" || normalizeURL(href) == mainNorm {
			return
		}
		text := flatText(link)
		secondary = append(secondary, cardscan.SecondaryLink{
			Role: cardscan.ClassifyLink(text, href),
			URL:  href,
			Text: text,
		})
	})

	return secondary
}

// extractMetadata scans for count indicators ("12 replays") and
// badge-like elements.
func (e *CardExtractor) extractMetadata(s *goquery.Selection) cardscan.Metadata {
	meta := make(cardscan.Metadata)

	for _, m := range countPattern.FindAllStringSubmatch(s.Text(), -1) {
		meta[cardscan.CountKey(strings.ToLower(m[2]))] = cardscan.String(m[1])
	}

	var badges []string
	s.Find("[class]").Each(func(_ int, el *goquery.Selection) {
		classes := strings.ToLower(el.AttrOr("class", ""))
		if strings.Contains(classes, "badge") || strings.Contains(classes, "tag") || strings.Contains(classes, "label") {
			badges = append(badges, flatText(el))
		}
	})
	if len(badges) > 0 {
		meta[cardscan.MetaBadges] = cardscan.Strings(badges)
	}

	return meta
}

// cardType infers the card's type from its label and main link.
func (e *CardExtractor) cardType(label, mainLink string) cardscan.CardType {
	labelLower := strings.ToLower(label)
	linkLower := strings.ToLower(mainLink)

	if containsAnySub(labelLower, e.vocab.CompanyKeywords) {
		return cardscan.CardCompany
	}
	if containsAnySub(labelLower, e.vocab.LanguageKeywords) {
		return cardscan.CardProgrammingLanguage
	}
	if containsAnySub(labelLower, e.vocab.TechnicalKeywords) {
		return cardscan.CardTechnicalTopic
	}

	if strings.Contains(linkLower, "/guides/hiring-process/") {
		return cardscan.CardCompany
	}
	if strings.Contains(linkLower, "interview-questions") {
		return cardscan.CardQuestionSet
	}

	return cardscan.CardGeneral
}

func containsAnySub(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func containsAnyFold(s string, subs []string) bool {
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}
