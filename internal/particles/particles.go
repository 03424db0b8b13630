// Package particles holds the ephemeral hit-feedback bursts. Particles
// carry no identity beyond their batch; the session prunes expired ones
// on each clock tick.
package particles

import (
	"math"
	"math/rand"
	"time"

	"aimtrainer/internal/geom"
)

const (
	NormalCount  = 12
	IntenseCount = 16

	NormalLifetime  = 800 * time.Millisecond
	IntenseLifetime = 400 * time.Millisecond

	baseSpeed    = 120.0 // px/s
	intenseSpeed = 200.0
)

type Particle struct {
	Pos       geom.Point    `json:"pos"`
	VX        float64       `json:"vx"`
	VY        float64       `json:"vy"`
	Size      float64       `json:"size"`
	SpawnedAt time.Time     `json:"-"`
	Lifetime  time.Duration `json:"-"`
}

// Field is one session's particle collection. Like the target set it
// is unlocked and owned exclusively by the session state machine.
type Field struct {
	rng       *rand.Rand
	particles []Particle
}

func NewField(rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Field{rng: rng}
}

// Burst launches a radial batch of particles at p. Intense mode fires
// more and faster particles that expire sooner.
func (f *Field) Burst(p geom.Point, intense bool, now time.Time) {
	count := NormalCount
	speed := baseSpeed
	lifetime := NormalLifetime
	if intense {
		count = IntenseCount
		speed = intenseSpeed
		lifetime = IntenseLifetime
	}

	for i := range count {
		angle := 2 * math.Pi * float64(i) / float64(count)
		v := speed * (0.5 + f.rng.Float64())
		f.particles = append(f.particles, Particle{
			Pos:       p,
			VX:        v * math.Cos(angle),
			VY:        v * math.Sin(angle),
			Size:      2 + f.rng.Float64()*4,
			SpawnedAt: now,
			Lifetime:  lifetime,
		})
	}
}

// Prune drops particles past their lifetime.
func (f *Field) Prune(now time.Time) {
	kept := f.particles[:0]
	for _, p := range f.particles {
		if now.Sub(p.SpawnedAt) < p.Lifetime {
			kept = append(kept, p)
		}
	}
	f.particles = kept
}

func (f *Field) List() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

func (f *Field) Clear() {
	f.particles = nil
}
