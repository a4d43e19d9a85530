// Package api serves the podcast feed, the audio artifacts, and the small
// trigger/status surface used by the admin UI.
package api

import (
	"encoding/json"
	"net/http"

	"readcast/internal/feed"
	"readcast/internal/model"
	"readcast/internal/scheduler"
)

// maxRequestBody is the maximum allowed request body size (64 KB); every
// write endpoint here is a bare trigger.
const maxRequestBody int64 = 64 << 10

// EpisodeStore lists committed episodes for the feed and episode endpoints.
type EpisodeStore interface {
	ListEpisodes() []model.Episode
}

// Trigger is the run surface the scheduler exposes.
type Trigger interface {
	TriggerNow() bool
	Status() scheduler.Status
}

// Server holds the HTTP handlers and dependencies.
type Server struct {
	episodes EpisodeStore
	trigger  Trigger
	feed     *feed.Builder
	audioDir string
	mux      *http.ServeMux
}

// New creates the API server.
func New(episodes EpisodeStore, trigger Trigger, fb *feed.Builder, audioDir string) *Server {
	srv := &Server{
		episodes: episodes,
		trigger:  trigger,
		feed:     fb,
		audioDir: audioDir,
		mux:      http.NewServeMux(),
	}
	srv.routes()
	return srv
}

// Handler returns the root http.Handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return limitBody(s.mux)
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /feed.xml", s.handleFeed)
	s.mux.HandleFunc("GET /audio/{file}", s.handleAudio)
	s.mux.HandleFunc("POST /api/run", s.handleRun)
	s.mux.HandleFunc("GET /api/status", s.handleStatus)
	s.mux.HandleFunc("GET /api/episodes", s.handleEpisodes)
}

// limitBody restricts the request body to maxRequestBody bytes.
func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
