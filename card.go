package cardscan

import "encoding/json"

// CardType classifies what a card represents, inferred from its label
// and main link.
type CardType string

// Card type values.
const (
	CardCompany             CardType = "company"
	CardProgrammingLanguage CardType = "programming_language"
	CardTechnicalTopic      CardType = "technical_topic"
	CardQuestionSet         CardType = "question_set"
	CardBlogArticle         CardType = "blog_article"
	CardPost                CardType = "post"
	CardGeneral             CardType = "general"
)

// Card represents a single extracted unit: one topic, company, article,
// or post with a label and a primary link.
type Card struct {
	Label          string          `json:"label"`
	MainLink       string          `json:"main_link"`
	Description    string          `json:"description"`
	CardType       CardType        `json:"card_type"`
	SecondaryLinks []SecondaryLink `json:"secondary_links"`
	Metadata       Metadata        `json:"metadata"`
}

// Validate returns an error if the card is missing required fields.
// A card without a label or main link does not exist as a card.
func (c *Card) Validate() error {
	if c.Label == "" {
		return Errorf(EINVALID, "card label required")
	}
	if c.MainLink == "" {
		return Errorf(EINVALID, "card main link required")
	}
	return nil
}

// SecondaryLink is a non-main link on a card, tagged with a role.
type SecondaryLink struct {
	Role LinkRole `json:"type"`
	URL  string   `json:"url"`
	Text string   `json:"text"`
}

// Known metadata keys. Count keys are produced by CountKey.
const (
	MetaAuthor       = "author"
	MetaDate         = "date"
	MetaCategory     = "category"
	MetaInteractions = "interactions"
	MetaBadges       = "badges"
)

// CountKey returns the metadata key for an item count, e.g. "replay_count".
func CountKey(itemType string) string {
	return itemType + "_count"
}

// Metadata holds open-ended card attributes (counts, badges, author, date).
// Values are either a single string or a list of strings.
type Metadata map[string]MetaValue

// MetaValue is a metadata value: a single string, or a list of strings
// when List is non-nil.
type MetaValue struct {
	Value string
	List  []string
}

// String wraps a single string as a MetaValue.
func String(s string) MetaValue {
	return MetaValue{Value: s}
}

// Strings wraps a list of strings as a MetaValue.
func Strings(list []string) MetaValue {
	return MetaValue{List: list}
}

// MarshalJSON emits the value as a bare string or a JSON array.
func (v MetaValue) MarshalJSON() ([]byte, error) {
	if v.List != nil {
		return json.Marshal(v.List)
	}
	return json.Marshal(v.Value)
}

// UnmarshalJSON accepts either a string or an array of strings.
func (v *MetaValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = MetaValue{Value: s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*v = MetaValue{List: list}
	return nil
}
