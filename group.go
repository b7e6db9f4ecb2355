package cardscan

import "encoding/json"

// GroupType is the semantic category shared by the cards in a topic group.
type GroupType string

// Group type values.
const (
	GroupCompany             GroupType = "Company"
	GroupProgrammingLanguage GroupType = "Programming Language"
	GroupTechnicalTopic      GroupType = "Technical Topic"
	GroupInterviewResource   GroupType = "Interview Resource"
	GroupGeneral             GroupType = "General"
	GroupBlogArticles        GroupType = "Blog Articles"
	GroupMixed               GroupType = "Mixed Content"
)

// TopicGroup is a named cluster of cards sharing a semantic category,
// e.g. "By Company". Cards preserve document encounter order; duplicates
// by normalized main link are removed within the group.
type TopicGroup struct {
	GroupType  GroupType `json:"type"`
	HeaderText string    `json:"header"`
	AnchorID   string    `json:"anchor_id,omitempty"`
	Cards      []*Card   `json:"cards"`
}

// MarshalJSON includes the card count alongside the cards.
func (g *TopicGroup) MarshalJSON() ([]byte, error) {
	type alias TopicGroup
	return json.Marshal(struct {
		*alias
		CardCount int `json:"card_count"`
	}{
		alias:     (*alias)(g),
		CardCount: len(g.Cards),
	})
}

// HierarchicalStructure is the complete detected structure of a page.
type HierarchicalStructure struct {
	PageTitle       string            `json:"page_title"`
	PageDescription string            `json:"page_description"`
	TopicGroups     []*TopicGroup     `json:"groups"`
	Navigation      map[string]string `json:"navigation_structure"`
}

// CardCount returns the total number of cards across all groups.
func (s *HierarchicalStructure) CardCount() int {
	n := 0
	for _, g := range s.TopicGroups {
		n += len(g.Cards)
	}
	return n
}

// HasBlogArticles reports whether any group came from the blog-listing
// shortcut. The scrape layer skips alternate-URL retries in that case.
func (s *HierarchicalStructure) HasBlogArticles() bool {
	for _, g := range s.TopicGroups {
		if g.GroupType == GroupBlogArticles {
			return true
		}
	}
	return false
}

// StructureDetector partitions a document into topic groups.
// Implementations try a fixed cascade of strategies and return a
// structure with zero groups, not an error, when nothing is found.
type StructureDetector interface {
	// DetectStructure analyzes HTML and returns the hierarchical
	// structure. The baseURL resolves relative links; maxArticles caps
	// the blog-listing shortcut. Returns EINVALID only for unparsable
	// input.
	DetectStructure(html, baseURL string, maxArticles int) (*HierarchicalStructure, error)
}

// RedirectChecker reports whether a page looks like a redirect,
// loading, or terms page rather than real content.
type RedirectChecker interface {
	LooksLikeRedirect(html string) bool
}
