// Package events carries engine happenings out to the presentation
// boundary. The session publishes; a per-session broadcaster drains.
package events

import "aimtrainer/internal/records"

// PhaseChangeEvent announces a session phase transition.
type PhaseChangeEvent struct {
	Phase string
}

// TickEvent fires once per clock second while a session runs.
type TickEvent struct {
	Remaining int
	Intense   bool
}

// SoundEvent requests feedback playback; the engine never plays audio
// itself, it only names the selector.
type SoundEvent struct {
	Name string
}

// SummaryEvent delivers the frozen record of a finished session.
type SummaryEvent struct {
	Record records.GameRecord
}

type Bus struct {
	PhaseChanges chan PhaseChangeEvent
	Ticks        chan TickEvent
	Sounds       chan SoundEvent
	Summaries    chan SummaryEvent
	// Dirty marks that live state changed and a fresh snapshot is
	// worth pushing.
	Dirty chan struct{}
}

func NewBus() *Bus {
	return &Bus{
		PhaseChanges: make(chan PhaseChangeEvent, 10),
		Ticks:        make(chan TickEvent, 10),
		Sounds:       make(chan SoundEvent, 10),
		Summaries:    make(chan SummaryEvent, 10),
		Dirty:        make(chan struct{}, 64),
	}
}

// PublishDirty is a non-blocking dirty mark; a full channel means a
// snapshot push is already pending, so dropping is fine.
func (b *Bus) PublishDirty() {
	select {
	case b.Dirty <- struct{}{}:
	default:
	}
}
