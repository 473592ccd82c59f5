// Package markdown renders admin-authored Markdown to HTML for the public page.
package markdown

import (
	"html/template"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var renderer = blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
	Flags: blackfriday.CommonHTMLFlags | blackfriday.SkipHTML | blackfriday.Safelink |
		blackfriday.NofollowLinks | blackfriday.NoreferrerLinks | blackfriday.HrefTargetBlank,
})

// Render converts src to HTML. Raw HTML in src is dropped.
func Render(src string) template.HTML {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	out := blackfriday.Run([]byte(src),
		blackfriday.WithRenderer(renderer),
		blackfriday.WithExtensions(blackfriday.CommonExtensions),
	)
	return template.HTML(out)
}

// Excerpt returns at most n runes of src with an ellipsis when cut.
func Excerpt(src string, n int) string {
	src = strings.TrimSpace(src)
	rs := []rune(src)
	if n <= 0 || len(rs) <= n {
		return src
	}
	return strings.TrimSpace(string(rs[:n])) + "..."
}
