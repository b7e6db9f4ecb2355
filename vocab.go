package cardscan

import "regexp"

// Vocabulary holds the word lists and patterns the detection heuristics
// match against. Algorithms take a Vocabulary value so tests can extend
// or replace the lists without touching algorithm code.
type Vocabulary struct {
	// GroupIndicators are lowercase substrings that mark a heading as a
	// topic-group header.
	GroupIndicators []string

	// CardClassTokens are class-attribute tokens that mark an element as
	// card-like.
	CardClassTokens []string

	// TitleSelectors are class-based selectors tried for a card's label
	// after headings.
	TitleSelectors []string

	// GenericLinkPhrases disqualify anchor text from serving as a label.
	GenericLinkPhrases []string

	// CompanyNames is the known-entity prefix list for label extraction,
	// in display casing.
	CompanyNames []string

	// CompanyKeywords, LanguageKeywords and TechnicalKeywords drive card
	// type inference (lowercase substring match against the label).
	CompanyKeywords   []string
	LanguageKeywords  []string
	TechnicalKeywords []string

	// LabelSplitKeywords mark where a label ends and a description
	// begins in concatenated card text.
	LabelSplitKeywords []string

	// DescriptionPatterns is the fixed library of interview-phrase
	// regexes tried for card descriptions.
	DescriptionPatterns []*regexp.Regexp

	// DescriptionSelectors are tried first for card descriptions.
	DescriptionSelectors []string

	// ArticleIndicators and ArticleExclusions decide whether an href
	// points to an article (lowercase substring match).
	ArticleIndicators []string
	ArticleExclusions []string

	// RedirectIndicators mark a page as a redirect/terms/loading page.
	RedirectIndicators []string

	// LanguagePattern anchors a known language name at the start of text.
	LanguagePattern *regexp.Regexp

	// CapitalizedRunPattern matches a leading run of capitalized words.
	CapitalizedRunPattern *regexp.Regexp
}

// DefaultVocabulary returns the stock vocabulary.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		GroupIndicators: []string{
			"by company", "by programming language", "by language", "by technical topic",
			"by topic", "companies", "languages", "topics", "categories", "sections",
			"programming languages", "technical topics", "interview topics",
		},
		CardClassTokens: []string{
			"card", "item", "tile", "box", "entry", "topic", "company", "language",
		},
		TitleSelectors: []string{
			".title", ".name", ".label", ".heading", ".card-title",
			".topic-name", ".company-name", ".language-name",
		},
		GenericLinkPhrases: []string{"click", "here", "link", "read more"},
		CompanyNames: []string{
			"Google", "Meta", "Facebook", "Amazon", "Microsoft", "Apple", "Netflix",
			"Uber", "Airbnb", "Tesla", "Twitter", "LinkedIn", "Spotify", "Stripe",
			"Palantir", "Snowflake", "OpenAI", "Nvidia", "Salesforce", "Adobe",
			"ByteDance", "TikTok", "Snap", "Shopify", "Slack", "Dropbox",
		},
		CompanyKeywords: []string{
			"google", "meta", "facebook", "amazon", "microsoft", "apple", "netflix",
		},
		LanguageKeywords: []string{
			"python", "java", "javascript", "c++", "go", "rust", "swift",
		},
		TechnicalKeywords: []string{
			"algorithm", "data structure", "system design", "tree", "graph", "array",
		},
		LabelSplitKeywords: []string{"Interview", "Questions", "Tips", "Watch"},
		DescriptionPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)Interview process\s*&\s*questions`),
			regexp.MustCompile(`(?i)Questions\s*&\s*tips`),
			regexp.MustCompile(`(?i)Interview\s*questions`),
			regexp.MustCompile(`(?i)Technical\s*interview`),
			regexp.MustCompile(`(?i)Coding\s*interview`),
			regexp.MustCompile(`(?i)System\s*design`),
			regexp.MustCompile(`(?i)Behavioral\s*interview`),
		},
		DescriptionSelectors: []string{
			".description", ".desc", ".summary", ".subtitle",
			".card-description", ".card-text", "p",
		},
		ArticleIndicators: []string{
			"/blog/", "/post/", "/article/", "/news/", "/p/",
			"blog", "post", "article", "story",
		},
		ArticleExclusions: []string{
			"/tag/", "/category/", "/author/", "/search/", "/page/",
			"javascript:", "mailto:", "#", "/privacy", "/terms",
			".pdf", ".jpg", ".png", ".gif", ".css", ".js",
		},
		RedirectIndicators: []string{
			"terms of use", "terms of service", "privacy policy",
			"redirecting", "please wait", "loading",
			"terms-of-use", "tos", "legal",
		},
		LanguagePattern:       regexp.MustCompile(`^(JavaScript|Python|Java|C\+\+|C#|Go|Rust|Swift|Ruby)`),
		CapitalizedRunPattern: regexp.MustCompile(`^([A-Z][a-z]*(?:\s+[A-Z][a-z]*)*)`),
	}
}
