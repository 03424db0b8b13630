package records

import "sync"

// MemoryStore keeps records in memory, sorted by score descending on
// every insert. Used when no database is wanted, and in tests.
type MemoryStore struct {
	mu      sync.Mutex
	records []GameRecord
	hits    []HitEvent
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(rec GameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := len(s.records)
	for i > 0 && s.records[i-1].Score < rec.Score {
		i--
	}
	s.records = append(s.records, GameRecord{})
	copy(s.records[i+1:], s.records[i:])
	s.records[i] = rec
	return nil
}

func (s *MemoryStore) AppendHits(events []HitEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hits = append(s.hits, events...)
	return nil
}

func (s *MemoryStore) TopN(n int) ([]GameRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > len(s.records) {
		n = len(s.records)
	}
	out := make([]GameRecord, n)
	copy(out, s.records[:n])
	return out, nil
}

func (s *MemoryStore) All() ([]GameRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]GameRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Hits returns the logged hit events. Not part of the Store interface;
// tests use it to observe the best-effort hit log.
func (s *MemoryStore) Hits() []HitEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]HitEvent, len(s.hits))
	copy(out, s.hits)
	return out
}

func (s *MemoryStore) Ping() error { return nil }

func (s *MemoryStore) Close() error { return nil }
