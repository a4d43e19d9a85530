// Package feed renders the committed episode list as a podcast RSS feed.
package feed

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gorilla/feeds"

	"readcast/internal/model"
	"readcast/internal/synth"
)

// Builder renders RSS for a fixed feed identity.
type Builder struct {
	title       string
	description string
	baseURL     string
}

// New creates a feed builder. baseURL is the externally reachable root the
// audio files are served under.
func New(title, description, baseURL string) *Builder {
	return &Builder{
		title:       title,
		description: description,
		baseURL:     strings.TrimRight(baseURL, "/"),
	}
}

// AudioURL returns the public URL for an episode's audio artifact.
func (b *Builder) AudioURL(audioRef string) string {
	return b.baseURL + "/audio/" + audioRef
}

// RSS renders the episodes (already sorted newest first by the store) as an
// RSS document with one audio enclosure per episode.
func (b *Builder) RSS(episodes []model.Episode) (string, error) {
	f := &feeds.Feed{
		Title:       b.title,
		Link:        &feeds.Link{Href: b.baseURL + "/feed.xml"},
		Description: b.description,
	}
	if len(episodes) > 0 {
		f.Created = episodes[0].PublishedAt
	}

	for _, ep := range episodes {
		// Enclosure length is derived from the same fixed-bitrate constant
		// the duration came from; feed consumers only need an indicative value.
		length := int64(ep.DurationSeconds) * synth.BytesPerSecond
		f.Items = append(f.Items, &feeds.Item{
			Id:          ep.ID,
			Title:       ep.Title,
			Link:        &feeds.Link{Href: b.AudioURL(ep.AudioRef)},
			Description: fmt.Sprintf("From %s (%s)", ep.Source, formatDuration(ep.DurationSeconds)),
			Created:     ep.PublishedAt,
			Enclosure: &feeds.Enclosure{
				Url:    b.AudioURL(ep.AudioRef),
				Length: strconv.FormatInt(length, 10),
				Type:   "audio/mpeg",
			},
		})
	}

	return f.ToRss()
}

func formatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
