package analytics

import "time"

// Summary aggregates every persisted session for the trend view.
type Summary struct {
	GamesPlayed     int     `json:"gamesPlayed"`
	BestScore       int     `json:"bestScore"`
	TotalClicks     int     `json:"totalClicks"`
	AvgAccuracy     float64 `json:"avgAccuracy"`
	BestReactionMs  float64 `json:"bestReactionMs"`
	AvgReactionMs   float64 `json:"avgReactionMs"`
	TotalDistance   float64 `json:"totalDistance"`
	TotalPlaySecs   int     `json:"totalPlaySecs"`
	IntenseHitShare float64 `json:"intenseHitShare"` // percent of hits landed in intense mode
}

// KindStats breaks reaction times down by target kind.
type KindStats struct {
	TargetKind    string  `json:"targetKind"`
	Hits          int     `json:"hits"`
	AvgReactionMs float64 `json:"avgReactionMs"`
	MinReactionMs float64 `json:"minReactionMs"`
}

// TrendPoint is one finished session on the history chart, oldest
// first.
type TrendPoint struct {
	CreatedAt     time.Time `json:"createdAt"`
	Score         int       `json:"score"`
	Accuracy      float64   `json:"accuracy"`
	AvgReactionMs float64   `json:"avgReactionMs"`
}
