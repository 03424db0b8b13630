package session

import (
	"math"
	"math/rand"
	"sync"
	"testing"
	"time"

	"aimtrainer/internal/records"
	"aimtrainer/internal/targets"
)

type fakeRecorder struct {
	mu      sync.Mutex
	records []records.GameRecord
	hits    []records.HitEvent
}

func (r *fakeRecorder) SaveRecord(rec records.GameRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
}

func (r *fakeRecorder) SaveHit(ev records.HitEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hits = append(r.hits, ev)
}

func (r *fakeRecorder) Records() []records.GameRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]records.GameRecord, len(r.records))
	copy(out, r.records)
	return out
}

// testSession wires a session to a controllable clock and a manual
// settle-callback queue; the real ticker goroutine stays off.
type testSession struct {
	s        *Session
	rec      *fakeRecorder
	now      time.Time
	settlers []func()
}

func newTestSession(t *testing.T, seed int64) *testSession {
	t.Helper()
	ts := &testSession{
		rec: &fakeRecorder{},
		now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	ts.s = New(ts.rec, rand.New(rand.NewSource(seed)))
	ts.s.runTicker = false
	ts.s.now = func() time.Time { return ts.now }
	ts.s.after = func(d time.Duration, f func()) {
		ts.settlers = append(ts.settlers, f)
	}
	return ts
}

func (ts *testSession) advance(d time.Duration) {
	ts.now = ts.now.Add(d)
}

// fireSettlers runs and clears all queued settle callbacks.
func (ts *testSession) fireSettlers() {
	pending := ts.settlers
	ts.settlers = nil
	for _, f := range pending {
		f()
	}
}

func (ts *testSession) startRunning(t *testing.T, cfg Config) {
	t.Helper()
	ts.s.Resize(600, 400)
	if err := ts.s.Start(cfg); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
}

func TestStart_RejectsInvalidConfig(t *testing.T) {
	ts := newTestSession(t, 1)
	cfg := DefaultConfig()
	cfg.DurationSec = 7

	if err := ts.s.Start(cfg); err == nil {
		t.Fatal("Start() accepted an off-menu duration")
	}
	if ts.s.Phase() != PhaseSetup {
		t.Errorf("phase after rejected start = %q, want setup", ts.s.Phase())
	}
}

func TestStart_SpawnsFirstTarget(t *testing.T) {
	ts := newTestSession(t, 1)
	ts.startRunning(t, DefaultConfig())

	snap := ts.s.Snapshot()
	if snap.Phase != PhaseRunning {
		t.Errorf("phase = %q, want running", snap.Phase)
	}
	if len(snap.Targets) == 0 {
		t.Error("no target on the board after start")
	}
	if snap.Remaining != 60 {
		t.Errorf("remaining = %d, want 60", snap.Remaining)
	}
}

func TestStart_WhileRunningFails(t *testing.T) {
	ts := newTestSession(t, 1)
	ts.startRunning(t, DefaultConfig())

	if err := ts.s.Start(DefaultConfig()); err == nil {
		t.Error("Start() on a running session should fail")
	}
}

func TestStart_UnmeasuredBoundsThenResize(t *testing.T) {
	ts := newTestSession(t, 1)
	if err := ts.s.Start(DefaultConfig()); err != nil {
		t.Fatal(err)
	}

	// Generation was a no-op without bounds; the resize retries it.
	if n := len(ts.s.Snapshot().Targets); n != 0 {
		t.Fatalf("%d targets spawned without measurable bounds, want 0", n)
	}

	ts.s.Resize(600, 400)
	if n := len(ts.s.Snapshot().Targets); n == 0 {
		t.Error("no target after the play area became measurable")
	}
}

func TestClick_StandardTargetScenario(t *testing.T) {
	ts := newTestSession(t, 1)
	cfg := DefaultConfig()
	cfg.DurationSec = 30
	ts.startRunning(t, cfg)

	tgt := ts.s.live.List()[0]
	tgt.Kind = targets.KindStandard

	ts.advance(250 * time.Millisecond)
	ts.s.Click(tgt.Pos.X, tgt.Pos.Y)

	snap := ts.s.Snapshot()
	if snap.Score != 1 {
		t.Errorf("score = %d, want 1", snap.Score)
	}
	if snap.Stats.AccurateClicks != 1 || snap.Stats.TotalClicks != 1 {
		t.Errorf("clicks = %d/%d, want 1/1", snap.Stats.AccurateClicks, snap.Stats.TotalClicks)
	}
	if math.Abs(snap.Stats.AvgReactionMs-250) > 1 {
		t.Errorf("AvgReactionMs = %f, want 250", snap.Stats.AvgReactionMs)
	}
}

func TestClick_MissCountsTotalOnly(t *testing.T) {
	ts := newTestSession(t, 1)
	ts.startRunning(t, DefaultConfig())

	tgt := ts.s.live.List()[0]
	ts.s.Click(tgt.Pos.X+200, tgt.Pos.Y+200)

	snap := ts.s.Snapshot()
	if snap.Score != 0 {
		t.Errorf("score after miss = %d, want 0", snap.Score)
	}
	if snap.Stats.TotalClicks != 1 || snap.Stats.AccurateClicks != 0 {
		t.Errorf("clicks = %d/%d, want 0/1", snap.Stats.AccurateClicks, snap.Stats.TotalClicks)
	}
	if math.Abs(snap.Stats.Accuracy-0) > 1e-9 {
		t.Errorf("accuracy = %f, want 0", snap.Stats.Accuracy)
	}
}

func TestClick_DoubleTargetScenario(t *testing.T) {
	ts := newTestSession(t, 1)
	ts.startRunning(t, DefaultConfig())

	tgt := ts.s.live.List()[0]
	tgt.Kind = targets.KindDouble

	ts.s.Click(tgt.Pos.X, tgt.Pos.Y)
	snap := ts.s.Snapshot()
	if snap.Score != 0 {
		t.Errorf("score after first click = %d, want 0", snap.Score)
	}
	if tgt.HitProgress != 1 {
		t.Errorf("HitProgress = %f, want 1", tgt.HitProgress)
	}
	if tgt.Settling {
		t.Error("double target should stay live after one click")
	}

	ts.s.Click(tgt.Pos.X, tgt.Pos.Y)
	snap = ts.s.Snapshot()
	if snap.Score != 1 {
		t.Errorf("score after second click = %d, want 1", snap.Score)
	}
	if !tgt.Settling {
		t.Error("double target should be settling after the second click")
	}
}

func TestResolve_RefillsImmediately(t *testing.T) {
	ts := newTestSession(t, 1)
	ts.startRunning(t, DefaultConfig())

	tgt := ts.s.live.List()[0]
	tgt.Kind = targets.KindStandard
	ts.s.Click(tgt.Pos.X, tgt.Pos.Y)

	// The replacement arrives before the settle delay elapses.
	if n := ts.s.live.LiveCount(); n == 0 {
		t.Error("no replacement target before the settle delay elapsed")
	}

	ts.fireSettlers()
	if ts.s.live.Get(tgt.ID) != nil {
		t.Error("settled target should be removed after the delay")
	}
}

func TestSettleCallback_StaleEpochDropped(t *testing.T) {
	ts := newTestSession(t, 1)
	ts.startRunning(t, DefaultConfig())

	tgt := ts.s.live.List()[0]
	tgt.Kind = targets.KindStandard
	ts.s.Click(tgt.Pos.X, tgt.Pos.Y)

	// The session ends before the settle callback fires.
	ts.s.Stop()
	ts.fireSettlers()

	snap := ts.s.Snapshot()
	if snap.Phase != PhaseSummary {
		t.Fatalf("phase = %q, want summary", snap.Phase)
	}
	if len(snap.Targets) != 0 {
		t.Errorf("%d targets after finalize, want 0 (stale callback must not regenerate)", len(snap.Targets))
	}
}

func TestLiveCount_NeverExceedsCap(t *testing.T) {
	ts := newTestSession(t, 5)
	cfg := DefaultConfig()
	cfg.DurationSec = 60
	ts.startRunning(t, cfg)

	// Tick into intense mode so fan-out spawns happen.
	for i := 0; i < 45; i++ {
		ts.s.tick()
	}
	if !ts.s.clock.Intense() {
		t.Fatal("clock should be intense at remaining=15 of 60")
	}

	for i := 0; i < 50; i++ {
		for _, tgt := range ts.s.live.List() {
			if !tgt.Settling && tgt.Kind != targets.KindPath {
				tgt.Kind = targets.KindStandard
				ts.s.Click(tgt.Pos.X, tgt.Pos.Y)
				break
			}
		}
		if n := ts.s.live.LiveCount(); n > targets.MaxLive {
			t.Fatalf("live count = %d, exceeds cap %d", n, targets.MaxLive)
		}
		if i%3 == 0 {
			ts.fireSettlers()
		}
	}
}

func TestSelfHealing_BoardNeverEmptyWhileRunning(t *testing.T) {
	ts := newTestSession(t, 2)
	ts.startRunning(t, DefaultConfig())

	for i := 0; i < 30; i++ {
		for _, tgt := range ts.s.live.List() {
			if !tgt.Settling {
				tgt.Kind = targets.KindStandard
				ts.s.Click(tgt.Pos.X, tgt.Pos.Y)
			}
		}
		ts.fireSettlers()
		if ts.s.Phase() == PhaseRunning && ts.s.live.LiveCount() == 0 {
			t.Fatal("board empty while running")
		}
	}
}

func TestStop_IsIdempotent(t *testing.T) {
	ts := newTestSession(t, 1)
	ts.startRunning(t, DefaultConfig())

	ts.s.Stop()
	ts.s.Stop()

	if got := len(ts.rec.Records()); got != 1 {
		t.Errorf("stored %d records after double stop, want 1", got)
	}
}

func TestTimeoutThenStop_OneRecord(t *testing.T) {
	ts := newTestSession(t, 1)
	cfg := DefaultConfig()
	cfg.DurationSec = 15
	ts.startRunning(t, cfg)

	for i := 0; i < 15; i++ {
		ts.s.tick()
	}
	if ts.s.Phase() != PhaseSummary {
		t.Fatalf("phase after timeout = %q, want summary", ts.s.Phase())
	}

	ts.s.Stop()

	if got := len(ts.rec.Records()); got != 1 {
		t.Errorf("stored %d records, want 1", got)
	}
}

func TestFinalize_RecordContents(t *testing.T) {
	ts := newTestSession(t, 1)
	cfg := DefaultConfig()
	cfg.DurationSec = 15
	ts.startRunning(t, cfg)

	tgt := ts.s.live.List()[0]
	tgt.Kind = targets.KindStandard
	ts.advance(200 * time.Millisecond)
	ts.s.Click(tgt.Pos.X, tgt.Pos.Y)
	ts.s.Click(1, 1) // miss: spawns are inset by the target radius

	for i := 0; i < 15; i++ {
		ts.s.tick()
	}

	recs := ts.rec.Records()
	if len(recs) != 1 {
		t.Fatalf("stored %d records, want 1", len(recs))
	}
	rec := recs[0]
	if rec.Score != 1 {
		t.Errorf("Score = %d, want 1", rec.Score)
	}
	if rec.TotalClicks != 2 || rec.AccurateClicks != 1 {
		t.Errorf("clicks = %d/%d, want 1/2", rec.AccurateClicks, rec.TotalClicks)
	}
	if math.Abs(rec.Accuracy-50) > 1e-9 {
		t.Errorf("Accuracy = %f, want 50", rec.Accuracy)
	}
	if math.Abs(rec.AvgReactionMs-200) > 1 {
		t.Errorf("AvgReactionMs = %f, want 200", rec.AvgReactionMs)
	}
	if rec.DurationSec != 15 {
		t.Errorf("DurationSec = %d, want 15", rec.DurationSec)
	}
	if math.Abs(rec.CPS-2.0/15.0) > 1e-9 {
		t.Errorf("CPS = %f, want %f", rec.CPS, 2.0/15.0)
	}
	if rec.ID == "" {
		t.Error("record ID should be set")
	}

	// The snapshot exposes the frozen record and a cleared board.
	snap := ts.s.Snapshot()
	if snap.Record == nil || snap.Record.ID != rec.ID {
		t.Error("snapshot should carry the finalized record")
	}
	if len(snap.Targets) != 0 || len(snap.Particles) != 0 {
		t.Error("targets and particles should be cleared at session end")
	}
}

func TestHitEvents_Logged(t *testing.T) {
	ts := newTestSession(t, 1)
	ts.startRunning(t, DefaultConfig())

	tgt := ts.s.live.List()[0]
	tgt.Kind = targets.KindStandard
	ts.s.Click(tgt.Pos.X, tgt.Pos.Y)

	ts.rec.mu.Lock()
	defer ts.rec.mu.Unlock()
	if len(ts.rec.hits) != 1 {
		t.Fatalf("logged %d hit events, want 1", len(ts.rec.hits))
	}
	if ts.rec.hits[0].SessionID != ts.s.ID || ts.rec.hits[0].TargetKind != "standard" {
		t.Errorf("hit event = %+v", ts.rec.hits[0])
	}
}

func TestInteractions_IgnoredOutsideRunning(t *testing.T) {
	ts := newTestSession(t, 1)
	ts.s.Resize(600, 400)

	ts.s.Click(10, 10)
	ts.s.Move(20, 20)
	ts.s.DragStart(1, 10, 10)
	ts.s.DragMove(1, 50)
	ts.s.DragEnd(1)

	snap := ts.s.Snapshot()
	if snap.Stats.TotalClicks != 0 {
		t.Errorf("clicks before start = %d, want 0", snap.Stats.TotalClicks)
	}
	if ts.s.Phase() != PhaseSetup {
		t.Errorf("phase = %q, want setup", ts.s.Phase())
	}
}

func TestMove_AccumulatesScaledDistance(t *testing.T) {
	ts := newTestSession(t, 1)
	cfg := DefaultConfig()
	cfg.Sensitivity = 1.25
	ts.startRunning(t, cfg)

	ts.s.Move(0, 0)
	ts.s.Move(0, 40)

	if got := ts.s.Snapshot().Stats.TotalDistance; math.Abs(got-50) > 1e-9 {
		t.Errorf("TotalDistance = %f, want 50", got)
	}
}

func TestTrackingMode_PathDragResolution(t *testing.T) {
	ts := newTestSession(t, 3)
	cfg := DefaultConfig()
	cfg.Mode = "tracking"
	ts.startRunning(t, cfg)

	// Spawn until a path target shows up.
	var path *targets.Target
	for i := 0; i < 400 && path == nil; i++ {
		for _, tgt := range ts.s.live.List() {
			if tgt.Kind == targets.KindPath && !tgt.Settling {
				path = tgt
			} else if !tgt.Settling {
				tgt.Kind = targets.KindStandard
				ts.s.Click(tgt.Pos.X, tgt.Pos.Y)
			}
		}
		ts.fireSettlers()
	}
	if path == nil {
		t.Fatal("tracking mode never spawned a path target")
	}

	scoreBefore := ts.s.Snapshot().Score
	extent := path.PathExtent()

	ts.s.DragStart(path.ID, path.Pos.X, path.Pos.Y)
	ts.s.DragMove(path.ID, path.Pos.X+extent/2)
	if ts.s.Snapshot().Score != scoreBefore {
		t.Error("partial drag should not score")
	}

	ts.s.DragMove(path.ID, path.Pos.X+extent)
	if got := ts.s.Snapshot().Score; got != scoreBefore+1 {
		t.Errorf("score after completed drag = %d, want %d", got, scoreBefore+1)
	}
}

func TestReset_BackToSetup(t *testing.T) {
	ts := newTestSession(t, 1)
	ts.startRunning(t, DefaultConfig())
	ts.s.Stop()

	ts.s.Reset()

	snap := ts.s.Snapshot()
	if snap.Phase != PhaseSetup {
		t.Errorf("phase = %q, want setup", snap.Phase)
	}
	if snap.Record != nil {
		t.Error("record should be cleared on reset")
	}
	if snap.Score != 0 {
		t.Errorf("score = %d, want 0", snap.Score)
	}
}

func TestShutdown_FinalizesRunningSession(t *testing.T) {
	ts := newTestSession(t, 1)
	ts.startRunning(t, DefaultConfig())

	ts.s.Shutdown()

	if ts.s.Phase() != PhaseSummary {
		t.Errorf("phase after shutdown = %q, want summary", ts.s.Phase())
	}
	if got := len(ts.rec.Records()); got != 1 {
		t.Errorf("stored %d records, want 1", got)
	}
}
