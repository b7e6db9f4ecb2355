package cardscan

import "strings"

// ContentType is the coarse category assigned to a flattened item.
type ContentType string

// Content type values.
const (
	ContentBlog              ContentType = "blog"
	ContentPodcastTranscript ContentType = "podcast_transcript"
	ContentCallTranscript    ContentType = "call_transcript"
	ContentBook              ContentType = "book"
	ContentLinkedInPost      ContentType = "linkedin_post"
	ContentRedditComment     ContentType = "reddit_comment"
	ContentOther             ContentType = "other"
)

// ClassifyContent assigns a content category to a card. Known platforms
// short-circuit; otherwise the card's title, description and URL are
// scanned for keyword sets. Defaults to blog.
func ClassifyContent(card *Card, platform Platform) ContentType {
	switch platform {
	case PlatformSubstack, PlatformMedium:
		return ContentBlog
	case PlatformLinkedIn:
		return ContentLinkedInPost
	case PlatformReddit:
		return ContentRedditComment
	}

	text := strings.ToLower(card.Label) + " " + strings.ToLower(card.Description)
	url := strings.ToLower(card.MainLink)

	switch {
	case containsAny(text, "podcast", "episode", "interview", "transcript"):
		return ContentPodcastTranscript
	case containsAny(text, "call", "meeting", "transcript", "recording"):
		return ContentCallTranscript
	case containsAny(url, "book", "chapter", "read"):
		return ContentBook
	}

	return ContentBlog
}
