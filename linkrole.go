package cardscan

import "strings"

// LinkRole describes what a secondary link on a card is for.
type LinkRole string

// Link roles, in classification priority order. RoleOther is the final
// fallback: every non-main link gets a role, so none are dropped.
const (
	RoleReplay    LinkRole = "replay"
	RoleQuestions LinkRole = "questions"
	RoleTips      LinkRole = "tips"
	RolePractice  LinkRole = "practice"
	RoleGuide     LinkRole = "guide"
	RoleAuthor    LinkRole = "author"
	RoleOther     LinkRole = "other"
)

// ClassifyLink maps a link's text and href to a role. The rules run in
// fixed priority order; the first match wins.
func ClassifyLink(text, href string) LinkRole {
	t := strings.ToLower(text)
	h := strings.ToLower(href)

	switch {
	case containsAny(t, "watch", "replay", "video") || containsAny(h, "watch", "replay", "video"):
		return RoleReplay
	case containsAny(t, "question", "problems"):
		return RoleQuestions
	case containsAny(t, "tip", "advice"):
		return RoleTips
	case strings.Contains(h, "mock") || strings.Contains(t, "practice"):
		return RolePractice
	case containsAny(t, "guide", "tutorial"):
		return RoleGuide
	default:
		return RoleOther
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
