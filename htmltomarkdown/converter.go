// Package htmltomarkdown converts HTML content regions to Markdown.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/awalczak/cardscan"
)

// Ensure Converter implements cardscan.Converter at compile time.
var _ cardscan.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into cleaned-up Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", cardscan.Errorf(cardscan.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return CleanMarkdown(result), nil
}

var (
	excessNewlines = regexp.MustCompile(`\n{3,}`)
	headerSpacing  = regexp.MustCompile(`(#+[^\n]+)\n([^\n#])`)
	listSpacing    = regexp.MustCompile(`([^\n])\n([-*+] )`)
)

// CleanMarkdown normalizes converter output: collapses blank-line runs,
// trims trailing line whitespace, and restores the blank line after
// headers and before lists.
func CleanMarkdown(md string) string {
	md = excessNewlines.ReplaceAllString(md, "\n\n")

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	md = strings.Join(lines, "\n")

	md = headerSpacing.ReplaceAllString(md, "$1\n\n$2")
	md = listSpacing.ReplaceAllString(md, "$1\n\n$2")

	return strings.TrimSpace(md)
}
