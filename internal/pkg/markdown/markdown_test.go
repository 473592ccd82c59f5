package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		contains    []string
		notContains []string
	}{
		{name: "empty", src: "   "},
		{name: "heading and emphasis", src: "# Title\n\nSome *bold* idea", contains: []string{"<h1>Title</h1>", "<em>bold</em>"}},
		{name: "list", src: "- Go\n- SQLite\n", contains: []string{"<ul>", "<li>Go</li>"}},
		{name: "raw html dropped", src: "Hi <script>alert(1)</script>", notContains: []string{"<script>"}},
		{name: "external link", src: "[site](https://example.com)", contains: []string{`href="https://example.com"`, `rel="nofollow noreferrer"`}},
		{name: "javascript link neutralized", src: "[x](javascript:alert(1))", notContains: []string{`href="javascript:`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := string(Render(tt.src))
			if len(tt.contains) == 0 && len(tt.notContains) == 0 {
				assert.Empty(t, out)
			}
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("short", 10))
	assert.Equal(t, "héllo...", Excerpt("héllo world", 5))
	assert.Equal(t, "anything", Excerpt(" anything ", 0))
}
