package targets

import "aimtrainer/internal/geom"

// Set is the live-target collection for one session. It is not locked:
// the session state machine owns it exclusively and mutates it only
// from its own event handlers.
type Set struct {
	targets []*Target
}

func NewSet() *Set {
	return &Set{}
}

func (s *Set) Insert(t *Target) {
	s.targets = append(s.targets, t)
}

func (s *Set) Get(id int) *Target {
	for _, t := range s.targets {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *Set) Remove(id int) {
	for i, t := range s.targets {
		if t.ID == id {
			s.targets = append(s.targets[:i], s.targets[i+1:]...)
			return
		}
	}
}

// LiveCount counts targets still in play. Settling targets are already
// resolved and do not count against the spawn cap.
func (s *Set) LiveCount() int {
	n := 0
	for _, t := range s.targets {
		if !t.Settling {
			n++
		}
	}
	return n
}

// List returns every target including settling ones, newest last. The
// returned slice is a copy; the targets themselves are shared.
func (s *Set) List() []*Target {
	out := make([]*Target, len(s.targets))
	copy(out, s.targets)
	return out
}

// FindAt returns the newest live target under the given point, or nil.
func (s *Set) FindAt(p geom.Point) *Target {
	for i := len(s.targets) - 1; i >= 0; i-- {
		t := s.targets[i]
		if t.Settling {
			continue
		}
		if p.Dist(t.Pos) <= t.Radius {
			return t
		}
	}
	return nil
}

func (s *Set) Clear() {
	s.targets = nil
}
