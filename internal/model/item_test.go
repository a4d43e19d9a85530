package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasTag(t *testing.T) {
	item := SourceItem{ID: "a1", Tags: []string{"Podcast", "tech"}}
	assert.True(t, item.HasTag("podcast"))
	assert.True(t, item.HasTag("TECH"))
	assert.False(t, item.HasTag("news"))
	assert.False(t, SourceItem{}.HasTag("podcast"))
}

func TestFullText(t *testing.T) {
	a := ExtractedArticle{Announcement: "From example.com: Hi.", Body: "Body text."}
	assert.Equal(t, "From example.com: Hi.\n\nBody text.", a.FullText())

	noIntro := ExtractedArticle{Body: "Body text."}
	assert.Equal(t, "Body text.", noIntro.FullText())
}

func TestDedupeItems(t *testing.T) {
	items := []SourceItem{
		{ID: "1", Title: "first"},
		{ID: "2"},
		{ID: "1", Title: "duplicate, dropped"},
		{ID: "3"},
	}
	got := DedupeItems(items)
	assert.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Title, "the first occurrence wins")
	assert.Equal(t, "2", got[1].ID)
	assert.Equal(t, "3", got[2].ID)
}

func TestSortItemsByID(t *testing.T) {
	items := []SourceItem{{ID: "c"}, {ID: "a"}, {ID: "b"}}
	SortItemsByID(items)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "b", items[1].ID)
	assert.Equal(t, "c", items[2].ID)
}
