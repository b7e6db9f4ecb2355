package cardscan

// Platform identifies a known content platform.
type Platform string

// Recognized platforms. Substack, Medium and Ghost have selector-based
// fast paths; LinkedIn and Reddit only influence content typing.
const (
	PlatformUnknown     Platform = ""
	PlatformSubstack    Platform = "substack"
	PlatformMedium      Platform = "medium"
	PlatformGhost       Platform = "ghost"
	PlatformWordPress   Platform = "wordpress"
	PlatformGenericBlog Platform = "generic_blog"
	PlatformLinkedIn    Platform = "linkedin"
	PlatformReddit      Platform = "reddit"
)

// SelectorBundle holds the comma-separated CSS selector lists a platform
// uses for its post cards. Each field is tried left to right; the first
// non-empty match per field wins.
type SelectorBundle struct {
	Posts       string
	Title       string
	Content     string
	Author      string
	Date        string
	Interaction string
}

// PlatformSignature is a static fingerprint describing a platform's DOM
// and URL conventions. The signature table is a process-wide constant;
// declaration order is the score tie-break.
type PlatformSignature struct {
	Name            Platform
	URLPatterns     []string
	MetaIndicators  []string
	DOMPatterns     []string
	Characteristics []string
	Selectors       SelectorBundle
}

// PlatformMatch is the outcome of fingerprinting a document.
type PlatformMatch struct {
	Name         Platform `json:"name"`
	Confidence   float64  `json:"confidence"`
	Architecture string   `json:"architecture"`

	// Matched lists which signature characteristics hit, e.g.
	// "url_pattern:/p/" or "dom:.post-preview(4)".
	Matched []string `json:"-"`

	// Selectors is the winning signature's selector bundle.
	Selectors SelectorBundle `json:"-"`
}

// PlatformDetector scores a document against the signature table.
// Deterministic: identical document and URL always yield an identical
// match.
type PlatformDetector interface {
	Detect(html, url string) *PlatformMatch
}

// PlatformCardExtractor extracts post cards directly through a platform's
// selector bundle, bypassing structure detection.
type PlatformCardExtractor interface {
	// ExtractPlatformStructure returns a structure holding a single posts
	// group with up to maxCards cards, deduplicated by normalized main
	// link, in document order. A structure with no groups signals that
	// the fast path found nothing and the caller should fall back.
	ExtractPlatformStructure(html, baseURL string, match *PlatformMatch, maxCards int) (*HierarchicalStructure, error)
}

// Signatures returns the platform signature table. The returned slice is
// freshly allocated; callers may not rely on shared state.
func Signatures() []PlatformSignature {
	return []PlatformSignature{
		{
			Name:            PlatformSubstack,
			MetaIndicators:  []string{"substack.com", "substack-frontend"},
			DOMPatterns:     []string{".post-preview", ".post-title", ".subscribe-button", ".pencraft"},
			URLPatterns:     []string{"/p/", "/archive", "/about"},
			Characteristics: []string{"newsletter-style", "subscription-focus", "author-centric"},
			Selectors: SelectorBundle{
				Posts:       `.post-preview, .post, article[data-testid="post-preview"], a[href*="/p/"]`,
				Title:       `.post-preview-title, .post-title, h1, h2, h3, [data-testid*="post-title"]`,
				Content:     `.post-preview-content, .post-content, .available-content, .post-preview-description`,
				Author:      `.post-preview-byline, .byline, [data-testid="post-author"]`,
				Date:        `.post-preview-date, .post-date, time`,
				Interaction: `.post-preview-reactions, .post-reactions, .like-button, [data-testid*="like"], [data-testid*="comment"]`,
			},
		},
		{
			Name:            PlatformMedium,
			MetaIndicators:  []string{"medium.com", "medium-frontend"},
			DOMPatterns:     []string{".postArticle", ".streamItem", ".js-postStream"},
			URLPatterns:     []string{"/@", "/tagged/", "?source="},
			Characteristics: []string{"article-focus", "social-features", "clap-system"},
			Selectors: SelectorBundle{
				Posts:       `.postArticle, .streamItem-card, article`,
				Title:       `.graf--title, h1, .postArticle-title`,
				Content:     `.graf, .postArticle-content, .section-content`,
				Author:      `.postMetaInline-authorLockup, .author`,
				Date:        `.postMetaInline time, time`,
				Interaction: `.buttonSet, .clapButton`,
			},
		},
		{
			Name:            PlatformGhost,
			MetaIndicators:  []string{"ghost.io", "ghost-frontend"},
			DOMPatterns:     []string{".post-card", ".post-content", ".kg-card"},
			URLPatterns:     []string{"/tag/", "/author/", "/page/"},
			Characteristics: []string{"modern-cms", "member-focus", "newsletter-integration"},
			Selectors: SelectorBundle{
				Posts:       `.post-card, .post-preview, article`,
				Title:       `.post-card-title, h1, .post-title`,
				Content:     `.post-card-excerpt, .post-content, .kg-card`,
				Author:      `.post-card-meta .author, .author-card`,
				Date:        `.post-card-meta time, time`,
				Interaction: `.post-card-readmore, .read-more`,
			},
		},
		{
			Name:            PlatformWordPress,
			MetaIndicators:  []string{"wp-content", "wordpress"},
			DOMPatterns:     []string{".post", ".entry", ".wp-block"},
			URLPatterns:     []string{"/wp-content/", "/category/", "/?p="},
			Characteristics: []string{"flexible-cms", "plugin-ecosystem", "theme-variety"},
			Selectors: SelectorBundle{
				Posts:       `.post, .entry, article`,
				Title:       `.entry-title, h1, .post-title`,
				Content:     `.entry-content, .post-content, .content`,
				Author:      `.author, .byline, .post-author`,
				Date:        `.entry-date, .post-date, time`,
				Interaction: `.entry-meta, .post-meta`,
			},
		},
		{
			Name:            PlatformGenericBlog,
			DOMPatterns:     []string{".post", ".article", ".blog"},
			URLPatterns:     []string{"/blog/", "/posts/", "/articles/"},
			Characteristics: []string{"custom-build", "varied-structure"},
			Selectors: SelectorBundle{
				Posts:       `.post, .article, article, .blog-post`,
				Title:       `h1, h2, .title, .post-title`,
				Content:     `.content, .post-content, .article-content`,
				Author:      `.author, .byline, .writer`,
				Date:        `.date, time, .published`,
				Interaction: `.meta, .post-meta, .article-meta`,
			},
		},
	}
}
