package session

import (
	"sync"
	"time"

	"aimtrainer/internal/broadcast"
)

const sweepInterval = 1 * time.Minute

// entry couples a session with its event fan-out.
type Entry struct {
	Session     *Session
	Broadcaster *broadcast.Broadcaster
}

// Manager is the registry of live sessions, one per connected player.
// Idle sessions are swept after the TTL so abandoned tabs do not leak
// tickers.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Entry
	ttl      time.Duration
	recorder Recorder
	stop     chan struct{}
}

func NewManager(recorder Recorder, ttl time.Duration) *Manager {
	m := &Manager{
		sessions: make(map[string]*Entry),
		ttl:      ttl,
		recorder: recorder,
		stop:     make(chan struct{}),
	}
	go m.sweepStale()
	return m
}

func (m *Manager) Create() *Entry {
	s := New(m.recorder, nil)
	e := &Entry{
		Session:     s,
		Broadcaster: broadcast.NewBroadcaster(s.Events),
	}
	m.mu.Lock()
	m.sessions[s.ID] = e
	m.mu.Unlock()
	return e
}

func (m *Manager) Get(id string) *Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id]
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	e := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if e != nil {
		e.Session.Shutdown()
		e.Broadcaster.Close()
	}
}

func (m *Manager) List() []*Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*Entry, 0, len(m.sessions))
	for _, e := range m.sessions {
		list = append(list, e)
	}
	return list
}

func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) sweepStale() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.evictIdle(time.Now())
		}
	}
}

func (m *Manager) evictIdle(now time.Time) {
	m.mu.Lock()
	var stale []*Entry
	for id, e := range m.sessions {
		if now.Sub(e.Session.LastActive()) > m.ttl {
			stale = append(stale, e)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, e := range stale {
		e.Session.Shutdown()
		e.Broadcaster.Close()
	}
}

// Close stops the sweeper and shuts every session down.
func (m *Manager) Close() {
	close(m.stop)
	for _, e := range m.List() {
		m.Delete(e.Session.ID)
	}
}
