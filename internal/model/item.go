package model

import (
	"sort"
	"strings"
)

// SourceItem is one saved article as reported by the bookmark provider.
// The pipeline never mutates it; items are re-fetched from the provider on
// every run and deduplicated against committed episodes by ID.
type SourceItem struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	SourceURL string   `json:"source_url"`
	Tags      []string `json:"tags,omitempty"`
}

// HasTag reports whether the item carries the given tag (case-insensitive).
func (s SourceItem) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// ExtractedArticle is the ephemeral result of extracting one item's content.
// It lives only for the duration of one worker's processing and is never
// persisted.
type ExtractedArticle struct {
	ID           string
	Title        string
	SourceName   string
	Body         string
	Announcement string
}

// FullText is the complete spoken text: announcement followed by the body.
func (a ExtractedArticle) FullText() string {
	if a.Announcement == "" {
		return a.Body
	}
	return a.Announcement + "\n\n" + a.Body
}

// DedupeItems returns items with duplicate IDs removed, keeping the first
// occurrence. Used when several configured tags match the same item.
func DedupeItems(items []SourceItem) []SourceItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]SourceItem, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ID]; ok {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}

// SortItemsByID orders items by ID ascending. Processing order carries no
// guarantees; this only keeps logs and tests deterministic.
func SortItemsByID(items []SourceItem) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}
