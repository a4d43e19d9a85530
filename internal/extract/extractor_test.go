package extract

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readcast/internal/model"
)

func articleHTML(title string, paragraphs ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<html><head><title>%s</title></head><body><article><h1>%s</h1>", title, title)
	for _, p := range paragraphs {
		fmt.Fprintf(&b, "<p>%s</p>", p)
	}
	b.WriteString("</article></body></html>")
	return b.String()
}

func TestExtract(t *testing.T) {
	long := strings.Repeat("Go makes concurrent programming pleasant and practical for everyone. ", 8)
	raw := articleHTML("Why Go", long, long, long, long)

	item := model.SourceItem{
		ID:        "a1",
		Title:     "Why Go",
		SourceURL: "https://www.example.com/posts/why-go",
	}

	article, err := New().Extract(item, raw)
	require.NoError(t, err)

	assert.Equal(t, "a1", article.ID)
	assert.Equal(t, "Why Go", article.Title)
	assert.Equal(t, "example.com", article.SourceName)
	assert.Contains(t, article.Body, "concurrent programming")
	assert.Equal(t, "From example.com: Why Go.", article.Announcement)
	assert.True(t, strings.HasPrefix(article.FullText(), article.Announcement))
}

func TestExtract_ShortBodyIsRejected(t *testing.T) {
	raw := articleHTML("Stub", "Too short.")
	item := model.SourceItem{ID: "a1", Title: "Stub", SourceURL: "https://example.com/stub"}

	_, err := New().Extract(item, raw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrExtractionFailed))
}

func TestExtract_TitleFallsBackToPage(t *testing.T) {
	long := strings.Repeat("A perfectly reasonable sentence about software engineering topics. ", 8)
	raw := articleHTML("Fallback Title", long, long, long, long)
	item := model.SourceItem{ID: "a1", SourceURL: "https://example.com/post"}

	article, err := New().Extract(item, raw)
	require.NoError(t, err)
	assert.Equal(t, "Fallback Title", article.Title)
}

func TestAnnouncement(t *testing.T) {
	assert.Equal(t, "From example.com: Why Go.", Announcement("example.com", "Why Go"))
	assert.Equal(t, "From example.com: Why Go.", Announcement(" example.com ", " Why Go "))
	assert.Equal(t, "Why Go.", Announcement("", "Why Go"))
}

func TestSourceName(t *testing.T) {
	tests := []struct {
		rawURL string
		want   string
	}{
		{"https://www.example.com/post/1", "example.com"},
		{"https://blog.golang.org/slices", "blog.golang.org"},
		{"https://WWW.EXAMPLE.COM/x", "example.com"},
		{"not a url", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SourceName(tt.rawURL), "url %q", tt.rawURL)
	}
}

func TestNormalizeText(t *testing.T) {
	in := "  a  b\t\tc\n\n\n\n\nd  "
	assert.Equal(t, "a b c\n\nd", normalizeText(in))
}
