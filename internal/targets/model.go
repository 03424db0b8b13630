package targets

import (
	"time"

	"aimtrainer/internal/geom"
)

// Kind selects the resolution rule for a target. It is decided once at
// spawn and never changes.
type Kind string

const (
	KindStandard Kind = "standard" // one click resolves
	KindDouble   Kind = "double"   // two clicks resolve
	KindPath     Kind = "path"     // dragged along a waypoint arc
)

type Target struct {
	ID     int        `json:"id"`
	Pos    geom.Point `json:"pos"`
	Radius float64    `json:"r"`
	Kind   Kind       `json:"kind"`
	Color  string     `json:"color"`

	// HitProgress counts received clicks for double targets (0 or 1)
	// and holds normalized [0,1] path progress for path targets.
	HitProgress float64 `json:"progress"`

	// Path is the waypoint arc for KindPath, immutable once generated.
	Path []geom.Point `json:"path,omitempty"`

	// Settling marks a resolved target waiting out its removal delay.
	// A settling target is still rendered but no longer hittable.
	Settling bool `json:"settling"`

	CreatedAt time.Time `json:"-"`

	// drag state, KindPath only
	Dragging bool `json:"-"`
	dragRefX float64
}

// PathExtent returns the horizontal span of the waypoint arc. Cursor
// displacement is converted to path progress by dividing by this.
func (t *Target) PathExtent() float64 {
	if len(t.Path) == 0 {
		return 0
	}
	min, max := t.Path[0].X, t.Path[0].X
	for _, p := range t.Path[1:] {
		if p.X < min {
			min = p.X
		}
		if p.X > max {
			max = p.X
		}
	}
	return max - min
}
