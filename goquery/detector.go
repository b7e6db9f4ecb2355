package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/awalczak/cardscan"
)

// Ensure Detector implements cardscan.PlatformDetector at compile time.
var _ cardscan.PlatformDetector = (*Detector)(nil)

// Detector fingerprints documents against the platform signature table.
// Scoring: +2 per URL pattern found in the page URL, +3 per meta
// indicator found in the serialized document, and min(3, hits) per DOM
// pattern. Confidence is the score over 10, clamped to [0,1].
type Detector struct {
	signatures []cardscan.PlatformSignature
}

// NewDetector creates a Detector over the stock signature table.
func NewDetector() *Detector {
	return &Detector{signatures: cardscan.Signatures()}
}

// Detect scores the document against every signature and returns the
// best match. Ties resolve to the signature declared first in the table,
// so the result is deterministic for identical inputs.
func (d *Detector) Detect(html, url string) *cardscan.PlatformMatch {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		doc = nil // score on URL and meta indicators only
	}
	lowerHTML := strings.ToLower(html)

	var best *cardscan.PlatformMatch
	bestScore := -1

	for _, sig := range d.signatures {
		score := 0
		var matched []string

		for _, pattern := range sig.URLPatterns {
			if strings.Contains(url, pattern) {
				score += 2
				matched = append(matched, "url_pattern:"+pattern)
			}
		}

		for _, indicator := range sig.MetaIndicators {
			if strings.Contains(lowerHTML, indicator) {
				score += 3
				matched = append(matched, "meta:"+indicator)
			}
		}

		if doc != nil {
			for _, pattern := range sig.DOMPatterns {
				n := doc.Find(pattern).Length()
				if n > 0 {
					hits := n
					if hits > 3 {
						hits = 3
					}
					score += hits
					matched = append(matched, fmt.Sprintf("dom:%s(%d)", pattern, n))
				}
			}
		}

		if score > bestScore {
			bestScore = score
			architecture := "unknown"
			if len(sig.Characteristics) > 0 {
				architecture = sig.Characteristics[0]
			}
			best = &cardscan.PlatformMatch{
				Name:         sig.Name,
				Confidence:   clampConfidence(score),
				Architecture: architecture,
				Matched:      matched,
				Selectors:    sig.Selectors,
			}
		}
	}

	return best
}

func clampConfidence(score int) float64 {
	c := float64(score) / 10
	if c > 1 {
		return 1
	}
	return c
}
