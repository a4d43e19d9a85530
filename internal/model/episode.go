package model

import "time"

// Episode is the durable record of one successfully synthesized item.
// Created exactly once per source item ID and immutable afterwards; deleting
// the state file is the only way episodes go away, and it re-processes
// everything.
type Episode struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Source          string    `json:"source"`
	AudioRef        string    `json:"audio_ref"`
	DurationSeconds int       `json:"duration_seconds"`
	PublishedAt     time.Time `json:"published_at"`
}

// PipelineState is the full durable aggregate persisted as a single file.
// It is loaded from disk before every read and replaced atomically on every
// write, so concurrent readers (feed generation, other processes) never see
// a partial state.
type PipelineState struct {
	Episodes  map[string]Episode `json:"episodes"`
	LastRunAt *time.Time         `json:"last_run_at,omitempty"`
}

// NewPipelineState returns an empty aggregate. A missing or corrupt state
// file degrades to this: first run and disaster recovery both start clean.
func NewPipelineState() PipelineState {
	return PipelineState{Episodes: make(map[string]Episode)}
}
