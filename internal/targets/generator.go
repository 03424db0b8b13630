package targets

import (
	"math"
	"math/rand"
	"time"

	"aimtrainer/internal/geom"
	"aimtrainer/internal/utility"
)

const (
	// MaxLive is the hard cap on simultaneously live targets.
	MaxLive = 3

	DefaultRadius = 24

	// DoubleChance tags a freshly spawned standard target as double-click.
	DoubleChance = 0.20
	// PathChance spawns a path target instead of a standard one when
	// path targets are enabled.
	PathChance = 0.25
	// IntenseFanoutChance makes a single generate call produce two
	// targets while intense mode is active.
	IntenseFanoutChance = 0.50

	// PathWaypoints is the number of interpolated points on a path arc.
	PathWaypoints = 30
)

// Generator produces spawn positions and motion paths. It only returns
// new Target values; the session owns insertion and the live set.
type Generator struct {
	rng    *rand.Rand
	nextID int
}

// NewGenerator creates a Generator. Pass a seeded rng for deterministic
// spawns in tests; nil uses a time-seeded source.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng, nextID: 1}
}

// Generate returns zero or more new targets for the given play area.
// It refuses to generate when the live count is at the cap or the
// bounds are not yet measurable; intense mode may fan out to two
// targets in one call, truncated at the cap.
func (g *Generator) Generate(b geom.Bounds, liveCount int, intense, paths bool, now time.Time) []*Target {
	if liveCount >= MaxLive || !b.Valid() {
		return nil
	}

	n := 1
	if intense && g.rng.Float64() < IntenseFanoutChance {
		n = 2
	}
	if liveCount+n > MaxLive {
		n = MaxLive - liveCount
	}

	out := make([]*Target, 0, n)
	for range n {
		if t := g.spawnOne(b, paths, now); t != nil {
			out = append(out, t)
		}
	}
	return out
}

func (g *Generator) spawnOne(b geom.Bounds, paths bool, now time.Time) *Target {
	if paths && g.rng.Float64() < PathChance {
		if t := g.spawnPath(b, now); t != nil {
			return t
		}
		// Arc does not fit the current bounds; fall through to a
		// standard spawn.
	}
	return g.spawnStandard(b, now)
}

func (g *Generator) spawnStandard(b geom.Bounds, now time.Time) *Target {
	inner := b.Inset(DefaultRadius)
	if !inner.Valid() {
		return nil
	}

	kind := KindStandard
	if g.rng.Float64() < DoubleChance {
		kind = KindDouble
	}

	id := g.nextID
	g.nextID++
	return &Target{
		ID: id,
		Pos: geom.Point{
			X: DefaultRadius + g.rng.Float64()*inner.W,
			Y: DefaultRadius + g.rng.Float64()*inner.H,
		},
		Radius:    DefaultRadius,
		Kind:      kind,
		Color:     utility.RandomColorHex(),
		CreatedAt: now,
	}
}

// spawnPath builds a path target tracing a semicircle of radius
// min(W,H)/4 with a randomly chosen winding direction. Returns nil when
// the arc cannot fit inside the bounds.
func (g *Generator) spawnPath(b geom.Bounds, now time.Time) *Target {
	arcRadius := math.Min(b.W, b.H) / 4
	inner := b.Inset(arcRadius + DefaultRadius)
	if !inner.Valid() {
		return nil
	}

	center := geom.Point{
		X: arcRadius + DefaultRadius + g.rng.Float64()*inner.W,
		Y: arcRadius + DefaultRadius + g.rng.Float64()*inner.H,
	}

	// Winding is decided once: +1 bulges the arc downward, -1 upward.
	winding := 1.0
	if g.rng.Float64() < 0.5 {
		winding = -1.0
	}

	path := make([]geom.Point, PathWaypoints)
	for i := range PathWaypoints {
		theta := math.Pi * float64(i) / float64(PathWaypoints-1)
		path[i] = geom.Point{
			X: center.X - arcRadius*math.Cos(theta),
			Y: center.Y + winding*arcRadius*math.Sin(theta),
		}
	}

	id := g.nextID
	g.nextID++
	return &Target{
		ID:        id,
		Pos:       path[0],
		Radius:    DefaultRadius,
		Kind:      KindPath,
		Color:     utility.RandomColorHex(),
		Path:      path,
		CreatedAt: now,
	}
}
