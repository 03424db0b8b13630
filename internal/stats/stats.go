// Package stats accumulates per-session accuracy, reaction-time, and
// cursor-travel totals. Everything is session-cumulative: no decay, no
// windowing, reset only at session start.
package stats

import "math"

type Aggregator struct {
	totalClicks    int
	accurateClicks int
	reactionSumMs  float64
	totalDistance  float64

	lastX, lastY float64
	hasLast      bool
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// RecordClick counts one play-area interaction, hit or miss.
func (a *Aggregator) RecordClick() {
	a.totalClicks++
}

// RecordHit counts one accurate interaction and folds its reaction
// time into the running average.
func (a *Aggregator) RecordHit(reactionMs float64) {
	a.accurateClicks++
	a.reactionSumMs += reactionMs
}

// RecordCursorMove accumulates scaled travel distance from the last
// known cursor position. The first sample after a reset only sets the
// baseline and contributes no distance.
func (a *Aggregator) RecordCursorMove(x, y, sensitivity float64) {
	if !a.hasLast {
		a.lastX, a.lastY = x, y
		a.hasLast = true
		return
	}
	dx := (x - a.lastX) * sensitivity
	dy := (y - a.lastY) * sensitivity
	a.totalDistance += math.Sqrt(dx*dx + dy*dy)
	a.lastX, a.lastY = x, y
}

func (a *Aggregator) Reset() {
	*a = Aggregator{}
}

// Snapshot is a read-only view of the running totals.
type Snapshot struct {
	TotalClicks    int     `json:"totalClicks"`
	AccurateClicks int     `json:"accurateClicks"`
	Accuracy       float64 `json:"accuracy"` // percent
	AvgReactionMs  float64 `json:"avgReactionMs"`
	TotalDistance  float64 `json:"totalDistance"`
}

func (a *Aggregator) Snapshot() Snapshot {
	s := Snapshot{
		TotalClicks:    a.totalClicks,
		AccurateClicks: a.accurateClicks,
		TotalDistance:  a.totalDistance,
	}
	// Zero clicks means zero accuracy, never a division error.
	if a.totalClicks > 0 {
		s.Accuracy = float64(a.accurateClicks) / float64(a.totalClicks) * 100
	}
	if a.accurateClicks > 0 {
		s.AvgReactionMs = a.reactionSumMs / float64(a.accurateClicks)
	}
	return s
}
