package targets

import (
	"math"
	"time"

	"aimtrainer/internal/geom"
)

// Outcome classifies what a player interaction did to a target.
type Outcome int

const (
	// NoMatch means the interaction did not apply to the target.
	NoMatch Outcome = iota
	// Pending means the target took progress but stays live.
	Pending
	// Resolved means the target is hit and leaves the live set.
	Resolved
)

type InteractionKind int

const (
	Click InteractionKind = iota
	DragStart
	DragMove
	DragEnd
)

type Interaction struct {
	Kind InteractionKind
	Pos  geom.Point // DragMove only reads Pos.X
}

type Result struct {
	Outcome    Outcome
	ReactionMs float64 // set on Resolved: time from spawn to resolution
}

// Resolve applies one interaction to one target and reports the
// outcome. It mutates the target's progress and drag state but never
// removes it; removal and scoring stay with the caller.
func Resolve(t *Target, in Interaction, now time.Time) Result {
	if t == nil || t.Settling {
		return Result{Outcome: NoMatch}
	}

	switch in.Kind {
	case Click:
		if t.Kind == KindPath {
			// Path targets resolve by dragging, not clicking.
			return Result{Outcome: NoMatch}
		}
		if in.Pos.Dist(t.Pos) > t.Radius {
			return Result{Outcome: NoMatch}
		}
		if t.Kind == KindDouble && t.HitProgress < 1 {
			t.HitProgress = 1
			return Result{Outcome: Pending}
		}
		return resolved(t, now)

	case DragStart:
		if t.Kind != KindPath || in.Pos.Dist(t.Pos) > t.Radius {
			return Result{Outcome: NoMatch}
		}
		t.Dragging = true
		t.dragRefX = in.Pos.X
		return Result{Outcome: Pending}

	case DragMove:
		if t.Kind != KindPath || !t.Dragging {
			return Result{Outcome: NoMatch}
		}
		extent := t.PathExtent()
		if extent <= 0 {
			return Result{Outcome: NoMatch}
		}
		delta := (in.Pos.X - t.dragRefX) / extent
		t.dragRefX = in.Pos.X
		t.HitProgress = math.Max(0, math.Min(1, t.HitProgress+delta))
		t.Pos = t.Path[int(t.HitProgress*float64(len(t.Path)-1))]
		if t.HitProgress >= 1 {
			t.Dragging = false
			return resolved(t, now)
		}
		return Result{Outcome: Pending}

	case DragEnd:
		if t.Kind != KindPath || !t.Dragging {
			return Result{Outcome: NoMatch}
		}
		// Progress is kept; releasing early is not penalized.
		t.Dragging = false
		return Result{Outcome: Pending}
	}

	return Result{Outcome: NoMatch}
}

func resolved(t *Target, now time.Time) Result {
	return Result{
		Outcome:    Resolved,
		ReactionMs: float64(now.Sub(t.CreatedAt).Milliseconds()),
	}
}
