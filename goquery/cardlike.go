package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// looksLikeCard is the card-likeness predicate. An element qualifies if
// its class attribute carries a card vocabulary token, or if it contains
// a link, has at least 5 characters of text, and shows card structure
// (a heading, or a second link).
func (e *CardExtractor) looksLikeCard(s *goquery.Selection) bool {
	classes := strings.ToLower(s.AttrOr("class", ""))
	for _, token := range e.vocab.CardClassTokens {
		if strings.Contains(classes, token) {
			return true
		}
	}

	links := s.Find("a").Length()
	if links == 0 {
		return false
	}
	if len(flatText(s)) < 5 {
		return false
	}

	headings := s.Find(headingSelector).Length()
	return headings >= 1 || links >= 2
}

// findPotentialCards locates card candidates within a container. Direct
// children are scanned first; failing that, class-matching descendants
// that contain a link; failing that, clusters of structurally similar
// links.
func (e *CardExtractor) findPotentialCards(container *goquery.Selection) []*goquery.Selection {
	var potential []*goquery.Selection

	container.Children().Each(func(_ int, child *goquery.Selection) {
		if e.looksLikeCard(child) {
			potential = append(potential, child)
		}
	})
	if len(potential) > 0 {
		return potential
	}

	container.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		classes := strings.ToLower(s.AttrOr("class", ""))
		for _, token := range e.vocab.CardClassTokens {
			if strings.Contains(classes, token) {
				if s.Find("a").Length() > 0 {
					potential = append(potential, s)
				}
				return
			}
		}
	})
	if len(potential) > 0 {
		return potential
	}

	var links []*goquery.Selection
	container.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		links = append(links, link)
	})
	if len(links) >= 2 {
		for _, cluster := range groupSimilarLinks(links) {
			for _, link := range cluster {
				if parent := link.Parent(); parent.Length() > 0 {
					potential = append(potential, parent)
				}
			}
		}
	}

	return potential
}

// groupSimilarLinks clusters links that share context or href structure.
// Only clusters of two or more survive.
func groupSimilarLinks(links []*goquery.Selection) [][]*goquery.Selection {
	var groups [][]*goquery.Selection
	processed := make([]bool, len(links))

	for i, link := range links {
		if processed[i] {
			continue
		}
		group := []*goquery.Selection{link}
		processed[i] = true

		for j := i + 1; j < len(links); j++ {
			if processed[j] {
				continue
			}
			if linksAreSimilar(link, links[j]) {
				group = append(group, links[j])
				processed[j] = true
			}
		}

		if len(group) >= 2 {
			groups = append(groups, group)
		}
	}

	return groups
}

// linksAreSimilar reports whether two links share an identical non-empty
// parent class set, or have structurally similar href paths: the same
// segment count and a shared prefix of at least max(1, segments-2)
// components.
func linksAreSimilar(a, b *goquery.Selection) bool {
	aClasses := classSet(a.Parent())
	bClasses := classSet(b.Parent())
	if len(aClasses) > 0 && len(bClasses) > 0 && sameSet(aClasses, bClasses) {
		return true
	}

	aParts := pathSegments(a.AttrOr("href", ""))
	bParts := pathSegments(b.AttrOr("href", ""))
	if len(aParts) == 0 || len(aParts) != len(bParts) {
		return false
	}

	common := 0
	for i := 0; i < len(aParts)-1; i++ {
		if aParts[i] == bParts[i] {
			common++
		}
	}
	required := len(aParts) - 2
	if required < 1 {
		required = 1
	}
	return common >= required
}

func classSet(s *goquery.Selection) map[string]bool {
	set := make(map[string]bool)
	if s.Length() == 0 {
		return set
	}
	for _, c := range strings.Fields(s.AttrOr("class", "")) {
		set[c] = true
	}
	return set
}

func sameSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func pathSegments(href string) []string {
	var parts []string
	for _, p := range strings.Split(href, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
