package goquery

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/awalczak/cardscan"
)

// findGroupsByHeaders locates topic groups anchored on headings whose
// text carries a group indicator phrase. For each such heading the
// following sibling region is scanned for cards.
func (d *StructureDetector) findGroupsByHeaders(doc *goquery.Document, base *url.URL) []*cardscan.TopicGroup {
	var groups []*cardscan.TopicGroup

	doc.Find("h1, h2, h3, h4").Each(func(_ int, header *goquery.Selection) {
		text := flatText(header)
		lower := strings.ToLower(text)

		indicated := false
		for _, ind := range d.vocab.GroupIndicators {
			if strings.Contains(lower, ind) {
				indicated = true
				break
			}
		}
		if !indicated {
			return
		}

		cards := d.cardsAfterHeader(header, base)
		if len(cards) == 0 {
			return
		}

		groups = append(groups, &cardscan.TopicGroup{
			GroupType:  groupTypeFromHeader(lower),
			HeaderText: text,
			AnchorID:   anchorID(header),
			Cards:      cards,
		})
	})

	return groups
}

// groupTypeFromHeader maps a heading's text to a group type.
func groupTypeFromHeader(lower string) cardscan.GroupType {
	switch {
	case strings.Contains(lower, "company"):
		return cardscan.GroupCompany
	case strings.Contains(lower, "language") || strings.Contains(lower, "programming"):
		return cardscan.GroupProgrammingLanguage
	case strings.Contains(lower, "technical") || strings.Contains(lower, "topic"):
		return cardscan.GroupTechnicalTopic
	case strings.Contains(lower, "interview"):
		return cardscan.GroupInterviewResource
	}
	return cardscan.GroupGeneral
}

// anchorID returns the heading's id attribute as a fragment reference.
func anchorID(header *goquery.Selection) string {
	if id := header.AttrOr("id", ""); id != "" {
		return "#" + id
	}
	return ""
}

// cardsAfterHeader extracts the cards belonging to a group header. The
// header's following siblings are scanned up to the next heading for the
// first container holding at least two card candidates; when none
// qualifies, the parent's following siblings are tried. Only that one
// container contributes cards.
func (d *StructureDetector) cardsAfterHeader(header *goquery.Selection, base *url.URL) []*cardscan.Card {
	container := d.cardContainer(header.NextAll(), func(sib *goquery.Selection) bool {
		return isHeadingName(goquery.NodeName(sib))
	})
	if container == nil {
		container = d.cardContainer(header.Parent().NextAll(), func(sib *goquery.Selection) bool {
			return sib.Find("h1, h2, h3").Length() > 0
		})
	}
	if container == nil {
		return nil
	}

	var cards []*cardscan.Card
	for _, candidate := range d.cards.findPotentialCards(container) {
		if card := d.cards.extract(candidate, base); card != nil {
			cards = append(cards, card)
		}
	}
	return dedupCards(cards)
}

// cardContainer walks siblings until stop fires and returns the first
// one holding at least two card candidates.
func (d *StructureDetector) cardContainer(siblings *goquery.Selection, stop func(*goquery.Selection) bool) *goquery.Selection {
	var container *goquery.Selection
	siblings.EachWithBreak(func(_ int, sib *goquery.Selection) bool {
		if stop(sib) {
			return false
		}
		if len(d.cards.findPotentialCards(sib)) >= 2 {
			container = sib
			return false
		}
		return true
	})
	return container
}

// findGroupsByPatterns scans generic containers for clusters of at least
// three card candidates and wraps the first such cluster in a single
// inferred group.
func (d *StructureDetector) findGroupsByPatterns(doc *goquery.Document, base *url.URL) []*cardscan.TopicGroup {
	var group *cardscan.TopicGroup

	doc.Find("div, section, ul, ol").EachWithBreak(func(_ int, container *goquery.Selection) bool {
		candidates := d.cards.findPotentialCards(container)
		if len(candidates) < 3 {
			return true
		}

		var cards []*cardscan.Card
		for _, candidate := range candidates {
			if card := d.cards.extract(candidate, base); card != nil {
				cards = append(cards, card)
			}
		}
		cards = dedupCards(cards)
		if len(cards) == 0 {
			return true
		}

		groupType := inferGroupTypeFromCards(cards)
		group = &cardscan.TopicGroup{
			GroupType:  groupType,
			HeaderText: fmt.Sprintf("Detected %s Group", groupType),
			Cards:      cards,
		}
		return false
	})

	if group == nil {
		return nil
	}
	return []*cardscan.TopicGroup{group}
}

// inferGroupTypeFromCards derives a group type from the majority card
// type. Ties resolve to the type that appeared first. Mixed Content when
// no type reaches a majority.
func inferGroupTypeFromCards(cards []*cardscan.Card) cardscan.GroupType {
	counts := make(map[cardscan.CardType]int)
	var order []cardscan.CardType
	for _, card := range cards {
		if counts[card.CardType] == 0 {
			order = append(order, card.CardType)
		}
		counts[card.CardType]++
	}

	best := cardscan.CardType("")
	bestCount := 0
	for _, t := range order {
		if counts[t] > bestCount {
			best = t
			bestCount = counts[t]
		}
	}

	if bestCount*2 <= len(cards) {
		return cardscan.GroupMixed
	}

	switch best {
	case cardscan.CardCompany:
		return cardscan.GroupCompany
	case cardscan.CardProgrammingLanguage:
		return cardscan.GroupProgrammingLanguage
	case cardscan.CardTechnicalTopic:
		return cardscan.GroupTechnicalTopic
	case cardscan.CardQuestionSet:
		return cardscan.GroupInterviewResource
	}
	return cardscan.GroupGeneral
}

// createSingleGroupFallback is the last-resort strategy: every main
// content region is scanned for card candidates and, when at least two
// survive extraction, they form one catch-all group.
func (d *StructureDetector) createSingleGroupFallback(doc *goquery.Document, base *url.URL) []*cardscan.TopicGroup {
	regions := doc.Find("main, article, .content, .main-content")
	if regions.Length() == 0 {
		regions = doc.Find("body").First()
	}
	if regions.Length() == 0 {
		return nil
	}

	var candidates []*goquery.Selection
	regions.Each(func(_ int, region *goquery.Selection) {
		candidates = append(candidates, d.cards.findPotentialCards(region)...)
	})
	if len(candidates) > 20 {
		candidates = candidates[:20]
	}

	var cards []*cardscan.Card
	for _, candidate := range candidates {
		if card := d.cards.extract(candidate, base); card != nil {
			cards = append(cards, card)
		}
	}
	cards = dedupCards(cards)
	if len(cards) < 2 {
		return nil
	}

	return []*cardscan.TopicGroup{{
		GroupType:  cardscan.GroupGeneral,
		HeaderText: "All Items",
		Cards:      cards,
	}}
}

// dedupCards removes cards whose normalized main link was already seen,
// preserving order.
func dedupCards(cards []*cardscan.Card) []*cardscan.Card {
	seen := make(map[string]bool, len(cards))
	out := cards[:0]
	for _, card := range cards {
		norm := normalizeURL(card.MainLink)
		if seen[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, card)
	}
	return out
}
