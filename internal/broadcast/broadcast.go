// Package broadcast fans one session's engine events out to every
// connected play-socket subscriber.
package broadcast

import (
	"sync"

	"aimtrainer/internal/events"
)

// EventMessage is what subscribers receive. Data is nil for events
// that only need their name (e.g. the state-dirty mark).
type EventMessage struct {
	Event string
	Data  any
}

type Broadcaster struct {
	Mu      sync.Mutex
	Clients map[chan EventMessage]bool
	done    chan struct{}
}

// NewBroadcaster starts a drain goroutine over the bus channels and
// forwards every event to subscribers. Close stops the drain.
func NewBroadcaster(bus *events.Bus) *Broadcaster {
	b := &Broadcaster{
		Clients: make(map[chan EventMessage]bool),
		done:    make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-b.done:
				return
			case ev := <-bus.PhaseChanges:
				b.Broadcast("phase", ev)
			case ev := <-bus.Ticks:
				b.Broadcast("tick", ev)
			case ev := <-bus.Sounds:
				b.Broadcast("sound", ev)
			case ev := <-bus.Summaries:
				b.Broadcast("summary", ev)
			case <-bus.Dirty:
				b.Broadcast("state", nil)
			}
		}
	}()
	return b
}

func (b *Broadcaster) Subscribe() chan EventMessage {
	ch := make(chan EventMessage, 16)
	b.Mu.Lock()
	b.Clients[ch] = true
	b.Mu.Unlock()
	return ch
}

func (b *Broadcaster) Unsubscribe(ch chan EventMessage) {
	b.Mu.Lock()
	delete(b.Clients, ch)
	b.Mu.Unlock()
	close(ch)
}

// Broadcast delivers to every subscriber without blocking; clients
// with full channels miss the message.
func (b *Broadcaster) Broadcast(event string, data any) {
	b.Mu.Lock()
	defer b.Mu.Unlock()
	for ch := range b.Clients {
		select {
		case ch <- EventMessage{Event: event, Data: data}:
		default:
			// skip clients with full data channels
		}
	}
}

// Close stops the drain goroutine. Subscriber channels stay open;
// callers unsubscribe themselves.
func (b *Broadcaster) Close() {
	close(b.done)
}
