// Package extract converts an item's raw HTML into the plain text the
// synthesis pipeline speaks.
package extract

import (
	"fmt"
	nurl "net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"

	"readcast/internal/model"
)

// minBodyLength is the minimum extracted length to accept. Shorter results
// are usually login walls, cookie banners, or empty pages.
const minBodyLength = 100

// Extractor derives an ExtractedArticle from raw page content.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract runs readability over the raw content and assembles the spoken
// article: plain body plus a short announcement naming source and title.
func (e *Extractor) Extract(item model.SourceItem, raw string) (*model.ExtractedArticle, error) {
	pageURL, _ := nurl.Parse(item.SourceURL)

	article, err := readability.FromReader(strings.NewReader(raw), pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: readability: %w", model.ErrExtractionFailed, err)
	}

	body := normalizeText(article.TextContent)
	if utf8.RuneCountInString(body) < minBodyLength {
		return nil, fmt.Errorf("%w: extracted %d chars, likely blocked or empty page",
			model.ErrExtractionFailed, utf8.RuneCountInString(body))
	}

	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = strings.TrimSpace(article.Title)
	}
	if title == "" {
		title = "Untitled"
	}

	sourceName := strings.TrimSpace(article.SiteName)
	if sourceName == "" {
		sourceName = SourceName(item.SourceURL)
	}

	return &model.ExtractedArticle{
		ID:           item.ID,
		Title:        title,
		SourceName:   sourceName,
		Body:         body,
		Announcement: Announcement(sourceName, title),
	}, nil
}

// Announcement builds the short spoken intro for an article. The pipeline
// calls it again after translation so the intro uses the translated title.
func Announcement(sourceName, title string) string {
	sourceName = strings.TrimSpace(sourceName)
	title = strings.TrimSpace(title)
	if sourceName == "" {
		return fmt.Sprintf("%s.", title)
	}
	return fmt.Sprintf("From %s: %s.", sourceName, title)
}

// SourceName derives a best-effort human label from a URL, e.g.
// "https://www.example.com/post/1" becomes "example.com".
func SourceName(rawURL string) string {
	u, err := nurl.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

var (
	multiSpace   = regexp.MustCompile(`[ \t]+`)
	multiNewline = regexp.MustCompile(`\n{3,}`)
)

func normalizeText(s string) string {
	s = strings.TrimSpace(s)
	s = multiSpace.ReplaceAllString(s, " ")
	s = multiNewline.ReplaceAllString(s, "\n\n")
	return s
}
