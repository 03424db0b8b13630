package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"aimtrainer/internal/config"
	"aimtrainer/internal/records"
	"aimtrainer/internal/session"
	"aimtrainer/internal/sounds"
)

func Run() error {
	appCfg := config.Load()

	var db *records.SQL
	if appCfg.DatabaseURL != "" {
		var err error
		db, err = records.OpenPostgres(appCfg.DatabaseURL)
		if err != nil {
			log.Printf("[DB] Failed to connect to Postgres: %v (falling back to SQLite)\n", err)
		}
	}
	if db == nil {
		var err error
		db, err = records.OpenSQLite(appCfg.SQLitePath)
		if err != nil {
			log.Printf("[DB] Failed to open SQLite: %v (records will not survive restarts)\n", err)
		}
	}

	var store records.Store
	if db != nil {
		store = db
	} else {
		store = records.NewMemoryStore()
	}
	writer := records.NewWriter(store)

	registry, err := sounds.NewRegistry()
	if err != nil {
		// A failed synth means silent feedback, not a dead server.
		log.Printf("[Sounds] Failed to build registry: %v (feedback degrades to silence)\n", err)
	}

	srv := &Server{
		Sessions: session.NewManager(writer, time.Duration(appCfg.SessionTTLMin)*time.Minute),
		Store:    store,
		DB:       db,
		Sounds:   registry,
	}

	addr := "0.0.0.0:" + appCfg.Port
	fmt.Printf("Server listening on http://localhost:%s\n", appCfg.Port)
	return http.ListenAndServe(addr, srv.routes())
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "static/index.html")
	})
	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("POST /api/sessions/{id}/stop", s.handleStopSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("GET /api/sessions/{id}/play", s.handlePlay)
	mux.HandleFunc("GET /api/options", s.handleOptions)
	mux.HandleFunc("GET /api/records", s.handleTopRecords)
	mux.HandleFunc("GET /api/records/all", s.handleAllRecords)
	mux.HandleFunc("GET /api/analytics/summary", s.handleAnalyticsSummary)
	mux.HandleFunc("GET /api/analytics/kinds", s.handleAnalyticsKinds)
	mux.HandleFunc("GET /api/analytics/trend", s.handleAnalyticsTrend)
	mux.HandleFunc("GET /sounds/{name}", s.handleSound)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	return mux
}
