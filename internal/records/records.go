// Package records persists finished sessions. A GameRecord is written
// exactly once when a session finalizes and never mutated afterwards.
package records

import "time"

type GameRecord struct {
	ID             string    `json:"id"`
	Score          int       `json:"score"`
	Accuracy       float64   `json:"accuracy"` // percent
	AvgReactionMs  float64   `json:"avgReactionMs"`
	TotalDistance  float64   `json:"totalDistance"`
	CPS            float64   `json:"cps"` // clicks per second
	DurationSec    int       `json:"durationSec"`
	TotalClicks    int       `json:"totalClicks"`
	AccurateClicks int       `json:"accurateClicks"`
	Mode           string    `json:"mode"`
	CreatedAt      time.Time `json:"createdAt"`
}

// HitEvent is one resolved target, logged best-effort for analytics.
type HitEvent struct {
	SessionID  string    `json:"sessionId"`
	TargetKind string    `json:"targetKind"`
	ReactionMs float64   `json:"reactionMs"`
	Intense    bool      `json:"intense"`
	HitAt      time.Time `json:"hitAt"`
}

// Store is the record persistence boundary. Implementations keep
// records ordered by score descending.
type Store interface {
	Append(rec GameRecord) error
	AppendHits(events []HitEvent) error
	TopN(n int) ([]GameRecord, error)
	All() ([]GameRecord, error)
	Ping() error
	Close() error
}
