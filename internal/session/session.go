package session

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"aimtrainer/internal/events"
	"aimtrainer/internal/geom"
	"aimtrainer/internal/particles"
	"aimtrainer/internal/records"
	"aimtrainer/internal/stats"
	"aimtrainer/internal/targets"
)

type Phase string

const (
	PhaseSetup   = Phase("setup")
	PhaseRunning = Phase("running")
	PhaseSummary = Phase("summary")
)

const (
	// Settle delay: a resolved target stays rendered this long before
	// removal, for hit-feedback pacing.
	NormalSettleDelay  = 500 * time.Millisecond
	IntenseSettleDelay = 300 * time.Millisecond
)

// Recorder is the engine's fire-and-forget persistence port. The
// session never blocks on writes and never retries them.
type Recorder interface {
	SaveRecord(rec records.GameRecord)
	SaveHit(ev records.HitEvent)
}

// Session is the state machine for one timed play. Every exported
// method is an event handler that runs to completion under the one
// mutex, so handlers never interleave. The live-target set, particle
// field, and stats are owned here exclusively.
type Session struct {
	ID     string
	Events *events.Bus

	mu         sync.Mutex
	phase      Phase
	cfg        Config
	clock      *Clock
	gen        *targets.Generator
	live       *targets.Set
	parts      *particles.Field
	agg        *stats.Aggregator
	score      int
	bounds     geom.Bounds
	record     *records.GameRecord
	lastActive time.Time

	// epoch invalidates scheduled settle-removal callbacks from an
	// earlier run of this session.
	epoch int

	stopTicker chan struct{}

	recorder  Recorder
	now       func() time.Time
	after     func(d time.Duration, f func())
	runTicker bool
}

// New creates an idle session. Pass a seeded rng for deterministic
// spawns in tests; nil uses a time-seeded source.
func New(recorder Recorder, rng *rand.Rand) *Session {
	s := &Session{
		ID:         uuid.New().String(),
		Events:     events.NewBus(),
		phase:      PhaseSetup,
		cfg:        DefaultConfig(),
		clock:      NewClock(),
		gen:        targets.NewGenerator(rng),
		live:       targets.NewSet(),
		parts:      particles.NewField(rng),
		agg:        stats.NewAggregator(),
		recorder:   recorder,
		now:        time.Now,
		runTicker:  true,
		lastActive: time.Now(),
	}
	s.after = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	return s
}

// Start validates the config, resets all per-session state, spawns the
// first target, and begins the countdown.
func (s *Session) Start(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseRunning {
		return fmt.Errorf("session already running")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	s.epoch++
	s.cfg = cfg
	s.score = 0
	s.record = nil
	s.agg.Reset()
	s.live.Clear()
	s.parts.Clear()
	s.clock.Start(cfg.DurationSec)
	s.phase = PhaseRunning
	s.touchLocked()

	// Bounds may not be measurable yet; generation retries on the
	// next resize.
	s.generateLocked()

	if s.runTicker {
		s.stopTicker = make(chan struct{})
		go s.tickLoop(s.stopTicker)
	}

	s.publishPhase()
	s.Events.PublishDirty()
	return nil
}

func (s *Session) tickLoop(stop chan struct{}) {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			s.tick()
		}
	}
}

func (s *Session) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseRunning {
		return
	}
	remaining, expired := s.clock.Tick()
	s.parts.Prune(s.now())

	select {
	case s.Events.Ticks <- events.TickEvent{Remaining: remaining, Intense: s.clock.Intense()}:
	default:
	}

	if expired {
		s.finalizeLocked()
		return
	}
	s.Events.PublishDirty()
}

// Click records one play-area interaction at (x, y). A click on empty
// area is a miss: it counts toward total clicks, nothing else.
func (s *Session) Click(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseRunning {
		return
	}
	s.touchLocked()
	s.agg.RecordClick()

	p := geom.Point{X: x, Y: y}
	t := s.live.FindAt(p)
	res := targets.Resolve(t, targets.Interaction{Kind: targets.Click, Pos: p}, s.now())
	if res.Outcome == targets.Resolved {
		s.resolveLocked(t, res)
	}
	s.Events.PublishDirty()
}

// Move feeds a cursor position sample into the travel-distance total.
func (s *Session) Move(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseRunning {
		return
	}
	s.touchLocked()
	s.agg.RecordCursorMove(x, y, s.cfg.Sensitivity)
}

// DragStart grabs a path target. A grab that lands on nothing is a
// miss like any other interaction.
func (s *Session) DragStart(id int, x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseRunning {
		return
	}
	s.touchLocked()
	s.agg.RecordClick()

	t := s.live.Get(id)
	targets.Resolve(t, targets.Interaction{Kind: targets.DragStart, Pos: geom.Point{X: x, Y: y}}, s.now())
	s.Events.PublishDirty()
}

// DragMove advances a grabbed path target by the cursor's horizontal
// displacement. Reaching full progress resolves the target.
func (s *Session) DragMove(id int, x float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseRunning {
		return
	}
	s.touchLocked()

	t := s.live.Get(id)
	res := targets.Resolve(t, targets.Interaction{Kind: targets.DragMove, Pos: geom.Point{X: x}}, s.now())
	if res.Outcome == targets.Resolved {
		s.resolveLocked(t, res)
	}
	if res.Outcome != targets.NoMatch {
		s.Events.PublishDirty()
	}
}

// DragEnd releases a grabbed path target, keeping its progress.
func (s *Session) DragEnd(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseRunning {
		return
	}
	s.touchLocked()

	t := s.live.Get(id)
	if res := targets.Resolve(t, targets.Interaction{Kind: targets.DragEnd}, s.now()); res.Outcome != targets.NoMatch {
		s.Events.PublishDirty()
	}
}

// Resize sets the play-area bounds. Generation that was refused while
// the area was unmeasurable retries here.
func (s *Session) Resize(w, h float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bounds = geom.Bounds{W: w, H: h}
	if s.phase == PhaseRunning && s.live.LiveCount() == 0 {
		s.generateLocked()
	}
	s.Events.PublishDirty()
}

// Stop finalizes the session early. Only meaningful from Running;
// calling it after the clock expired is a no-op, so one session never
// produces two records.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseRunning {
		return
	}
	s.finalizeLocked()
}

// Reset returns a summarized session to setup for another run.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseSummary {
		return
	}
	s.phase = PhaseSetup
	s.record = nil
	s.score = 0
	s.agg.Reset()
	s.publishPhase()
	s.Events.PublishDirty()
}

// resolveLocked handles one resolved target: score, stats, feedback,
// settle-delayed removal, and an immediate refill.
func (s *Session) resolveLocked(t *targets.Target, res targets.Result) {
	now := s.now()
	intense := s.clock.Intense()

	t.Settling = true
	s.score++
	s.agg.RecordHit(res.ReactionMs)
	s.parts.Burst(t.Pos, intense, now)

	s.recorder.SaveHit(records.HitEvent{
		SessionID:  s.ID,
		TargetKind: string(t.Kind),
		ReactionMs: res.ReactionMs,
		Intense:    intense,
		HitAt:      now,
	})

	if s.cfg.Sound != "none" {
		select {
		case s.Events.Sounds <- events.SoundEvent{Name: s.cfg.Sound}:
		default:
		}
	}

	delay := NormalSettleDelay
	if intense {
		delay = IntenseSettleDelay
	}
	id, epoch := t.ID, s.epoch
	s.after(delay, func() { s.settleRemove(id, epoch) })

	// Refill right away instead of waiting out the settle delay.
	s.generateLocked()
}

// settleRemove is the deferred settle callback. The epoch token drops
// callbacks that outlived their session run.
func (s *Session) settleRemove(id, epoch int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		return
	}
	s.live.Remove(id)
	if s.phase == PhaseRunning && s.live.LiveCount() == 0 {
		// Self-healing: the board is never left empty while time
		// remains.
		s.generateLocked()
	}
	s.Events.PublishDirty()
}

func (s *Session) generateLocked() {
	if s.phase != PhaseRunning {
		return
	}
	spawned := s.gen.Generate(s.bounds, s.live.LiveCount(), s.clock.Intense(), s.cfg.Mode == "tracking", s.now())
	for _, t := range spawned {
		s.live.Insert(t)
	}
}

// finalizeLocked runs exactly once per session run, for both clock
// expiry and manual stop: freeze stats into a record, hand it to the
// recorder, and move to the summary phase.
func (s *Session) finalizeLocked() {
	if s.phase != PhaseRunning {
		return
	}
	s.clock.Stop()
	if s.stopTicker != nil {
		close(s.stopTicker)
		s.stopTicker = nil
	}
	s.epoch++
	s.live.Clear()
	s.parts.Clear()

	snap := s.agg.Snapshot()
	elapsed := s.clock.Duration() - s.clock.Remaining()
	cps := 0.0
	if elapsed > 0 {
		cps = float64(snap.TotalClicks) / float64(elapsed)
	}
	rec := records.GameRecord{
		ID:             uuid.New().String(),
		Score:          s.score,
		Accuracy:       snap.Accuracy,
		AvgReactionMs:  snap.AvgReactionMs,
		TotalDistance:  snap.TotalDistance,
		CPS:            cps,
		DurationSec:    s.clock.Duration(),
		TotalClicks:    snap.TotalClicks,
		AccurateClicks: snap.AccurateClicks,
		Mode:           s.cfg.Mode,
		CreatedAt:      s.now(),
	}
	s.record = &rec
	s.recorder.SaveRecord(rec)

	s.phase = PhaseSummary
	s.publishPhase()
	select {
	case s.Events.Summaries <- events.SummaryEvent{Record: rec}:
	default:
	}
	s.Events.PublishDirty()
}

// Shutdown finalizes a running session and stops its ticker. The
// manager calls this on eviction so no goroutine outlives the session.
func (s *Session) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finalizeLocked()
}

func (s *Session) publishPhase() {
	select {
	case s.Events.PhaseChanges <- events.PhaseChangeEvent{Phase: string(s.phase)}:
	default:
	}
}

func (s *Session) touchLocked() {
	s.lastActive = s.now()
}

func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Snapshot is the read-only view the presentation layer renders from.
type Snapshot struct {
	ID        string               `json:"id"`
	Phase     Phase                `json:"phase"`
	Config    Config               `json:"config"`
	Score     int                  `json:"score"`
	Remaining int                  `json:"remaining"`
	Intense   bool                 `json:"intense"`
	Targets   []targets.Target     `json:"targets"`
	Particles []particles.Particle `json:"particles"`
	Stats     stats.Snapshot       `json:"stats"`
	Record    *records.GameRecord  `json:"record,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.live.List()
	ts := make([]targets.Target, len(live))
	for i, t := range live {
		ts[i] = *t
	}

	return Snapshot{
		ID:        s.ID,
		Phase:     s.phase,
		Config:    s.cfg,
		Score:     s.score,
		Remaining: s.clock.Remaining(),
		Intense:   s.clock.Intense(),
		Targets:   ts,
		Particles: s.parts.List(),
		Stats:     s.agg.Snapshot(),
		Record:    s.record,
	}
}
