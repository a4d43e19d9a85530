// Package store persists the pipeline's durable state: the map of committed
// episodes plus the last run timestamp, serialized as a single JSON file.
//
// Every read re-loads the file so writers in other processes stay visible,
// and every write replaces the file via temp-file-then-rename, so readers
// never observe a truncated aggregate.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"readcast/internal/model"
)

// Store is the single source of truth for what has been processed.
// Writes are serialized by mu: the load→modify→rename cycle must not
// interleave or a concurrent commit's episode is lost to the second rename.
// Reads stay lock-free; rename is atomic, so they always see a whole file.
type Store struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// New creates a store persisting to the given file path. The file is created
// lazily on the first commit.
func New(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// load reads the aggregate from disk. A missing or corrupt file yields an
// empty aggregate rather than an error: first run and disaster recovery both
// degrade to "start clean".
func (s *Store) load() model.PipelineState {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("state file unreadable, starting clean", "path", s.path, "error", err)
		}
		return model.NewPipelineState()
	}

	var state model.PipelineState
	if err := json.Unmarshal(raw, &state); err != nil {
		slog.Warn("state file corrupt, starting clean", "path", s.path, "error", err)
		return model.NewPipelineState()
	}
	if state.Episodes == nil {
		state.Episodes = make(map[string]model.Episode)
	}
	return state
}

// IsProcessed reports whether the given item ID already has a committed
// episode. Reads through to disk on every call.
func (s *Store) IsProcessed(id string) bool {
	_, ok := s.load().Episodes[id]
	return ok
}

// ListEpisodes returns all committed episodes newest first, ties broken by
// ID ascending so the order is a stable total order.
func (s *Store) ListEpisodes() []model.Episode {
	state := s.load()
	episodes := make([]model.Episode, 0, len(state.Episodes))
	for _, ep := range state.Episodes {
		episodes = append(episodes, ep)
	}
	sort.Slice(episodes, func(i, j int) bool {
		if !episodes[i].PublishedAt.Equal(episodes[j].PublishedAt) {
			return episodes[i].PublishedAt.After(episodes[j].PublishedAt)
		}
		return episodes[i].ID < episodes[j].ID
	})
	return episodes
}

// EpisodeCount returns the number of committed episodes.
func (s *Store) EpisodeCount() int {
	return len(s.load().Episodes)
}

// LastRun returns the last run timestamp, or nil before the first run.
func (s *Store) LastRun() *time.Time {
	return s.load().LastRunAt
}

// Commit records an episode and advances the last run timestamp in one
// atomic replace. A write failure propagates so the caller treats the item
// as unprocessed and retries it on the next run.
func (s *Store) Commit(ep model.Episode) error {
	if ep.ID == "" {
		return fmt.Errorf("%w: episode has no id", model.ErrStateWrite)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.load()
	state.Episodes[ep.ID] = ep
	now := s.now().UTC()
	state.LastRunAt = &now
	return s.persist(state)
}

// TouchLastRun advances the last run timestamp without adding an episode.
// Used when a run completes with nothing new to process.
func (s *Store) TouchLastRun() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.load()
	now := s.now().UTC()
	state.LastRunAt = &now
	return s.persist(state)
}

// persist serializes the full aggregate to a temporary file in the same
// directory and renames it over the canonical path. A crash between the two
// steps leaves either the old or the new file intact, never a partial one.
func (s *Store) persist(state model.PipelineState) error {
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal state: %w", model.ErrStateWrite, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create state dir: %w", model.ErrStateWrite, err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%s", filepath.Base(s.path), uuid.NewString()))
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("%w: create temp state: %w", model.ErrStateWrite, err)
	}
	if _, err := f.Write(raw); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: write temp state: %w", model.ErrStateWrite, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: sync temp state: %w", model.ErrStateWrite, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: close temp state: %w", model.ErrStateWrite, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: replace state: %w", model.ErrStateWrite, err)
	}
	return nil
}
