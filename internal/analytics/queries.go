// Package analytics derives review-screen aggregates from the
// persisted records and the best-effort hit-event log.
package analytics

import (
	"fmt"

	"aimtrainer/internal/records"
)

type Queries struct {
	DB *records.SQL
}

func NewQueries(db *records.SQL) *Queries {
	return &Queries{DB: db}
}

func (q *Queries) GetSummary() (*Summary, error) {
	s := &Summary{}

	err := q.DB.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(MAX(score), 0),
			COALESCE(SUM(total_clicks), 0),
			COALESCE(AVG(accuracy), 0),
			COALESCE(SUM(total_distance), 0),
			COALESCE(SUM(duration_sec), 0)
		FROM game_records
	`).Scan(&s.GamesPlayed, &s.BestScore, &s.TotalClicks, &s.AvgAccuracy, &s.TotalDistance, &s.TotalPlaySecs)
	if err != nil {
		return nil, fmt.Errorf("getting record summary: %w", err)
	}

	var hits, intenseHits int
	err = q.DB.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(intense), 0),
			COALESCE(MIN(reaction_ms), 0),
			COALESCE(AVG(reaction_ms), 0)
		FROM hit_events
	`).Scan(&hits, &intenseHits, &s.BestReactionMs, &s.AvgReactionMs)
	if err != nil {
		return nil, fmt.Errorf("getting hit summary: %w", err)
	}
	if hits > 0 {
		s.IntenseHitShare = float64(intenseHits) / float64(hits) * 100
	}

	return s, nil
}

func (q *Queries) GetKindBreakdown() ([]KindStats, error) {
	rows, err := q.DB.Query(`
		SELECT target_kind, COUNT(*), AVG(reaction_ms), MIN(reaction_ms)
		FROM hit_events
		GROUP BY target_kind
		ORDER BY target_kind
	`)
	if err != nil {
		return nil, fmt.Errorf("getting kind breakdown: %w", err)
	}
	defer rows.Close()

	var out []KindStats
	for rows.Next() {
		var ks KindStats
		if err := rows.Scan(&ks.TargetKind, &ks.Hits, &ks.AvgReactionMs, &ks.MinReactionMs); err != nil {
			return nil, err
		}
		out = append(out, ks)
	}
	return out, rows.Err()
}

// GetTrend returns the most recent n sessions in chronological order.
func (q *Queries) GetTrend(n int) ([]TrendPoint, error) {
	rows, err := q.DB.Query(`
		SELECT created_at, score, accuracy, avg_reaction_ms
		FROM game_records
		ORDER BY created_at DESC
		LIMIT $1
	`, n)
	if err != nil {
		return nil, fmt.Errorf("getting trend: %w", err)
	}
	defer rows.Close()

	var out []TrendPoint
	for rows.Next() {
		var tp TrendPoint
		if err := rows.Scan(&tp.CreatedAt, &tp.Score, &tp.Accuracy, &tp.AvgReactionMs); err != nil {
			return nil, err
		}
		out = append(out, tp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Oldest first for charting.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
