package records

import (
	"log"
	"time"
)

const (
	recordBuffer  = 16
	hitBuffer     = 1000
	hitBatchSize  = 50
	flushInterval = 500 * time.Millisecond
)

// Writer decouples the session engine from storage: saves are
// fire-and-forget channel sends, flushed by a single goroutine.
// Records are written immediately; hit events are batched. A full
// buffer drops the event with a log line, never blocking gameplay.
type Writer struct {
	store   Store
	records chan GameRecord
	hits    chan HitEvent
	stop    chan struct{}
}

func NewWriter(store Store) *Writer {
	w := &Writer{
		store:   store,
		records: make(chan GameRecord, recordBuffer),
		hits:    make(chan HitEvent, hitBuffer),
		stop:    make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *Writer) SaveRecord(rec GameRecord) {
	select {
	case w.records <- rec:
	default:
		log.Println("[DB] Record buffer full, dropping record")
	}
}

func (w *Writer) SaveHit(ev HitEvent) {
	select {
	case w.hits <- ev:
	default:
		log.Println("[DB] Hit buffer full, dropping event")
	}
}

func (w *Writer) run() {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	batch := make([]HitEvent, 0, hitBatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := w.store.AppendHits(batch); err != nil {
			log.Printf("[DB] AppendHits error: %v\n", err)
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-w.stop:
			flush()
			return
		case rec := <-w.records:
			if err := w.store.Append(rec); err != nil {
				log.Printf("[DB] Append error: %v\n", err)
			}
		case ev := <-w.hits:
			batch = append(batch, ev)
			if len(batch) >= hitBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

// Close stops the writer goroutine and flushes whatever is still
// queued. Either the run loop or this drain picks up each event, so
// nothing queued before Close is lost.
func (w *Writer) Close() {
	close(w.stop)

	var batch []HitEvent
	for {
		select {
		case rec := <-w.records:
			if err := w.store.Append(rec); err != nil {
				log.Printf("[DB] Append error: %v\n", err)
			}
		case ev := <-w.hits:
			batch = append(batch, ev)
		default:
			if len(batch) > 0 {
				if err := w.store.AppendHits(batch); err != nil {
					log.Printf("[DB] AppendHits error: %v\n", err)
				}
			}
			return
		}
	}
}
