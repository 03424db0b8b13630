package server

import (
	"log"
	"net/http"
	"strconv"

	"aimtrainer/internal/analytics"
)

func (s *Server) handleAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeError(w, http.StatusServiceUnavailable, "analytics requires a database connection")
		return
	}

	q := analytics.NewQueries(s.DB)
	summary, err := q.GetSummary()
	if err != nil {
		log.Printf("[Analytics] summary error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "error loading summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleAnalyticsKinds(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeError(w, http.StatusServiceUnavailable, "analytics requires a database connection")
		return
	}

	q := analytics.NewQueries(s.DB)
	kinds, err := q.GetKindBreakdown()
	if err != nil {
		log.Printf("[Analytics] kind breakdown error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "error loading kind breakdown")
		return
	}
	if kinds == nil {
		kinds = []analytics.KindStats{}
	}
	writeJSON(w, http.StatusOK, kinds)
}

func (s *Server) handleAnalyticsTrend(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeError(w, http.StatusServiceUnavailable, "analytics requires a database connection")
		return
	}

	n := 20
	if raw := r.URL.Query().Get("n"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			n = v
		}
	}

	q := analytics.NewQueries(s.DB)
	trend, err := q.GetTrend(n)
	if err != nil {
		log.Printf("[Analytics] trend error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "error loading trend")
		return
	}
	if trend == nil {
		trend = []analytics.TrendPoint{}
	}
	writeJSON(w, http.StatusOK, trend)
}
