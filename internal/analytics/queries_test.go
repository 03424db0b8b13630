package analytics

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"aimtrainer/internal/records"
)

func seededQueries(t *testing.T) *Queries {
	t.Helper()
	db, err := records.OpenSQLite(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	recs := []records.GameRecord{
		{ID: "r1", Score: 10, Accuracy: 50, AvgReactionMs: 400, TotalDistance: 1000, CPS: 1.0, DurationSec: 30, TotalClicks: 20, AccurateClicks: 10, Mode: "classic", CreatedAt: base},
		{ID: "r2", Score: 30, Accuracy: 75, AvgReactionMs: 300, TotalDistance: 2000, CPS: 1.3, DurationSec: 60, TotalClicks: 40, AccurateClicks: 30, Mode: "classic", CreatedAt: base.Add(time.Hour)},
		{ID: "r3", Score: 20, Accuracy: 100, AvgReactionMs: 250, TotalDistance: 500, CPS: 1.6, DurationSec: 15, TotalClicks: 20, AccurateClicks: 20, Mode: "tracking", CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, r := range recs {
		if err := db.Append(r); err != nil {
			t.Fatal(err)
		}
	}

	hits := []records.HitEvent{
		{SessionID: "s1", TargetKind: "standard", ReactionMs: 200, Intense: false, HitAt: base},
		{SessionID: "s1", TargetKind: "standard", ReactionMs: 400, Intense: true, HitAt: base},
		{SessionID: "s1", TargetKind: "double", ReactionMs: 600, Intense: false, HitAt: base},
		{SessionID: "s2", TargetKind: "path", ReactionMs: 1500, Intense: true, HitAt: base},
	}
	if err := db.AppendHits(hits); err != nil {
		t.Fatal(err)
	}

	return NewQueries(db)
}

func TestGetSummary(t *testing.T) {
	q := seededQueries(t)

	s, err := q.GetSummary()
	if err != nil {
		t.Fatalf("GetSummary() error: %v", err)
	}

	if s.GamesPlayed != 3 {
		t.Errorf("GamesPlayed = %d, want 3", s.GamesPlayed)
	}
	if s.BestScore != 30 {
		t.Errorf("BestScore = %d, want 30", s.BestScore)
	}
	if s.TotalClicks != 80 {
		t.Errorf("TotalClicks = %d, want 80", s.TotalClicks)
	}
	if math.Abs(s.AvgAccuracy-75) > 1e-9 {
		t.Errorf("AvgAccuracy = %f, want 75", s.AvgAccuracy)
	}
	if s.BestReactionMs != 200 {
		t.Errorf("BestReactionMs = %f, want 200", s.BestReactionMs)
	}
	if s.TotalPlaySecs != 105 {
		t.Errorf("TotalPlaySecs = %d, want 105", s.TotalPlaySecs)
	}
	if math.Abs(s.IntenseHitShare-50) > 1e-9 {
		t.Errorf("IntenseHitShare = %f, want 50", s.IntenseHitShare)
	}
}

func TestGetSummary_EmptyDB(t *testing.T) {
	db, err := records.OpenSQLite(filepath.Join(t.TempDir(), "empty.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	s, err := NewQueries(db).GetSummary()
	if err != nil {
		t.Fatalf("GetSummary() on empty db error: %v", err)
	}
	if s.GamesPlayed != 0 || s.BestScore != 0 || s.IntenseHitShare != 0 {
		t.Errorf("empty summary = %+v, want zeros", s)
	}
}

func TestGetKindBreakdown(t *testing.T) {
	q := seededQueries(t)

	ks, err := q.GetKindBreakdown()
	if err != nil {
		t.Fatalf("GetKindBreakdown() error: %v", err)
	}
	if len(ks) != 3 {
		t.Fatalf("breakdown has %d kinds, want 3", len(ks))
	}

	// Ordered by kind name: double, path, standard.
	if ks[0].TargetKind != "double" || ks[0].Hits != 1 || ks[0].AvgReactionMs != 600 {
		t.Errorf("double stats = %+v", ks[0])
	}
	if ks[2].TargetKind != "standard" || ks[2].Hits != 2 || math.Abs(ks[2].AvgReactionMs-300) > 1e-9 {
		t.Errorf("standard stats = %+v", ks[2])
	}
	if ks[2].MinReactionMs != 200 {
		t.Errorf("standard MinReactionMs = %f, want 200", ks[2].MinReactionMs)
	}
}

func TestGetTrend_ChronologicalAndLimited(t *testing.T) {
	q := seededQueries(t)

	trend, err := q.GetTrend(2)
	if err != nil {
		t.Fatalf("GetTrend() error: %v", err)
	}
	if len(trend) != 2 {
		t.Fatalf("trend has %d points, want 2", len(trend))
	}

	// The two newest sessions, oldest first.
	if trend[0].Score != 30 || trend[1].Score != 20 {
		t.Errorf("trend scores = %d, %d; want 30, 20", trend[0].Score, trend[1].Score)
	}
	if !trend[0].CreatedAt.Before(trend[1].CreatedAt) {
		t.Error("trend should be chronological, oldest first")
	}
}
