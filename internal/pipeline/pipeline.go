// Package pipeline orchestrates one processing run: discover saved items,
// skip the ones already committed, and drive every new item through
// fetch → extract → translate → synthesize → commit on a bounded worker pool.
package pipeline

import (
	"context"
	"time"

	"readcast/internal/extract"
	"readcast/internal/model"
	"readcast/internal/synth"
)

// defaultConcurrency bounds how many items are in flight at once. The limit
// exists to respect remote rate limits and audio buffer memory, not for
// correctness; any positive value is safe.
const defaultConcurrency = 2

// Source lists saved items and fetches their raw content.
type Source interface {
	List(ctx context.Context, tag string) ([]model.SourceItem, error)
	FetchContent(ctx context.Context, id string) (string, error)
}

// Extractor turns raw content into the spoken article.
type Extractor interface {
	Extract(item model.SourceItem, raw string) (*model.ExtractedArticle, error)
}

// Translator converts text into the configured target language.
type Translator interface {
	Translate(ctx context.Context, text string, isTitle bool) (string, error)
}

// Synthesizer renders the spoken text to an audio artifact.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, id, title string) (synth.Result, error)
}

// StateStore is the durable record of processed items.
type StateStore interface {
	IsProcessed(id string) bool
	Commit(ep model.Episode) error
	TouchLastRun() error
}

// Announcer rebuilds the spoken intro once the title has been translated.
type Announcer func(sourceName, title string) string

// Orchestrator runs the processing pipeline.
type Orchestrator struct {
	source      Source
	extractor   Extractor
	translator  Translator // nil disables translation
	synthesizer Synthesizer
	store       StateStore
	announce    Announcer
	tags        []string
	concurrency int
	now         func() time.Time
}

// Deps wires the orchestrator's collaborators.
type Deps struct {
	Source      Source
	Extractor   Extractor
	Translator  Translator // nil disables translation
	Synthesizer Synthesizer
	Store       StateStore
	Announce    Announcer
	Tags        []string
	Concurrency int

	// Now overrides the clock (tests). Defaults to time.Now.
	Now func() time.Time
}

// New creates an orchestrator.
func New(deps Deps) *Orchestrator {
	concurrency := deps.Concurrency
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	announce := deps.Announce
	if announce == nil {
		announce = extract.Announcement
	}
	return &Orchestrator{
		source:      deps.Source,
		extractor:   deps.Extractor,
		translator:  deps.Translator,
		synthesizer: deps.Synthesizer,
		store:       deps.Store,
		announce:    announce,
		tags:        deps.Tags,
		concurrency: concurrency,
		now:         now,
	}
}
