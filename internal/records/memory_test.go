package records

import (
	"testing"
	"time"
)

func rec(id string, score int) GameRecord {
	return GameRecord{
		ID:        id,
		Score:     score,
		Mode:      "classic",
		CreatedAt: time.Now(),
	}
}

func TestMemoryStore_OrderedByScoreDesc(t *testing.T) {
	s := NewMemoryStore()
	for _, r := range []GameRecord{rec("a", 10), rec("b", 30), rec("c", 20), rec("d", 30)} {
		if err := s.Append(r); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Fatalf("All() returned %d records, want 4", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Score > all[i-1].Score {
			t.Fatalf("records out of order: %d before %d", all[i-1].Score, all[i].Score)
		}
	}
}

func TestMemoryStore_TopN(t *testing.T) {
	s := NewMemoryStore()
	for _, r := range []GameRecord{rec("a", 5), rec("b", 50), rec("c", 25)} {
		s.Append(r)
	}

	top, err := s.TopN(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 2 {
		t.Fatalf("TopN(2) returned %d records, want 2", len(top))
	}
	if top[0].ID != "b" || top[1].ID != "c" {
		t.Errorf("TopN(2) = [%s, %s], want [b, c]", top[0].ID, top[1].ID)
	}

	// Asking for more than exist returns everything.
	top, _ = s.TopN(10)
	if len(top) != 3 {
		t.Errorf("TopN(10) returned %d records, want 3", len(top))
	}
}

func TestMemoryStore_Hits(t *testing.T) {
	s := NewMemoryStore()
	evs := []HitEvent{
		{SessionID: "s1", TargetKind: "standard", ReactionMs: 200, HitAt: time.Now()},
		{SessionID: "s1", TargetKind: "double", ReactionMs: 450, Intense: true, HitAt: time.Now()},
	}
	if err := s.AppendHits(evs); err != nil {
		t.Fatal(err)
	}

	if got := len(s.Hits()); got != 2 {
		t.Errorf("Hits() length = %d, want 2", got)
	}
}
