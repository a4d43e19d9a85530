package api

import (
	"net/http"
	"path/filepath"
	"strings"

	"readcast/internal/model"
)

// ---------------------------------------------------------------------------
// GET /feed.xml
// ---------------------------------------------------------------------------

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	rss, err := s.feed.RSS(s.episodes.ListEpisodes())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render feed")
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Write([]byte(rss))
}

// ---------------------------------------------------------------------------
// GET /audio/{file}
// ---------------------------------------------------------------------------

func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("file")
	// Reject anything that could escape the audio directory.
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		writeError(w, http.StatusBadRequest, "invalid audio name")
		return
	}
	http.ServeFile(w, r, filepath.Join(s.audioDir, name))
}

// ---------------------------------------------------------------------------
// POST /api/run — fire-and-forget: acknowledges "started" before the run
// finishes; per-item outcomes are visible via status/logs only.
// ---------------------------------------------------------------------------

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	started := s.trigger.TriggerNow()
	writeJSON(w, http.StatusAccepted, map[string]bool{"started": started})
}

// ---------------------------------------------------------------------------
// GET /api/status
// ---------------------------------------------------------------------------

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.trigger.Status())
}

// ---------------------------------------------------------------------------
// GET /api/episodes
// ---------------------------------------------------------------------------

func (s *Server) handleEpisodes(w http.ResponseWriter, r *http.Request) {
	episodes := s.episodes.ListEpisodes()
	if episodes == nil {
		episodes = []model.Episode{}
	}
	writeJSON(w, http.StatusOK, episodes)
}
