package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"aimtrainer/internal/records"
	"aimtrainer/internal/session"
	"aimtrainer/internal/sounds"
)

type Server struct {
	Sessions *session.Manager
	Store    records.Store
	DB       *records.SQL
	Sounds   *sounds.Registry
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

type sessionResponse struct {
	ID    string           `json:"id"`
	Phase string           `json:"phase"`
	State session.Snapshot `json:"state"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	fmt.Println("[Handle:CreateSession] Request Received")

	entry := s.Sessions.Create()
	writeJSON(w, http.StatusCreated, sessionResponse{
		ID:    entry.Session.ID,
		Phase: string(entry.Session.Phase()),
		State: entry.Session.Snapshot(),
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	entry := s.Sessions.Get(r.PathValue("id"))
	if entry == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		ID:    entry.Session.ID,
		Phase: string(entry.Session.Phase()),
		State: entry.Session.Snapshot(),
	})
}

func (s *Server) handleStopSession(w http.ResponseWriter, r *http.Request) {
	fmt.Println("[Handle:StopSession] Request Received")

	entry := s.Sessions.Get(r.PathValue("id"))
	if entry == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	entry.Session.Stop()
	writeJSON(w, http.StatusOK, sessionResponse{
		ID:    entry.Session.ID,
		Phase: string(entry.Session.Phase()),
		State: entry.Session.Snapshot(),
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	fmt.Println("[Handle:DeleteSession] Request Received")

	if s.Sessions.Get(r.PathValue("id")) == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	s.Sessions.Delete(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

type optionsResponse struct {
	Durations     []int     `json:"durations"`
	CursorStyles  []string  `json:"cursorStyles"`
	Sensitivities []float64 `json:"sensitivities"`
	Sounds        []string  `json:"sounds"`
	Modes         []string  `json:"modes"`
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, optionsResponse{
		Durations:     session.Durations,
		CursorStyles:  session.CursorStyles,
		Sensitivities: session.Sensitivities,
		Sounds:        session.SoundNames,
		Modes:         session.Modes,
	})
}

func (s *Server) handleTopRecords(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	recs, err := s.Store.TopN(limit)
	if err != nil {
		// The leaderboard should never take the page down with it.
		fmt.Printf("[Handle:TopRecords] Read failed: %v\n", err)
		recs = []records.GameRecord{}
	}
	if recs == nil {
		recs = []records.GameRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleAllRecords(w http.ResponseWriter, r *http.Request) {
	recs, err := s.Store.All()
	if err != nil {
		fmt.Printf("[Handle:AllRecords] Read failed: %v\n", err)
		recs = []records.GameRecord{}
	}
	if recs == nil {
		recs = []records.GameRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleSound(w http.ResponseWriter, r *http.Request) {
	if s.Sounds == nil {
		writeError(w, http.StatusNotFound, "sound not found")
		return
	}
	name := strings.TrimSuffix(r.PathValue("name"), ".wav")
	data := s.Sounds.Get(name)
	if data == nil {
		writeError(w, http.StatusNotFound, "sound not found")
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Ping(); err != nil {
		writeError(w, http.StatusServiceUnavailable, "store unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
