package session

// ClockPhase is the countdown lifecycle: Idle until Start, Running
// while time remains, Ended exactly once.
type ClockPhase int

const (
	ClockIdle ClockPhase = iota
	ClockRunning
	ClockEnded
)

// Clock is the pure countdown state machine. The session drives Tick
// once per second from its ticker goroutine; tests drive it directly.
type Clock struct {
	phase     ClockPhase
	duration  int // seconds
	remaining int
}

func NewClock() *Clock {
	return &Clock{}
}

func (c *Clock) Start(durationSec int) {
	c.duration = durationSec
	c.remaining = durationSec
	c.phase = ClockRunning
}

// Tick decrements the remaining time by one second. It reports the new
// remaining time and whether this tick expired the countdown. Expiry
// fires at most once; further ticks are no-ops.
func (c *Clock) Tick() (remaining int, expired bool) {
	if c.phase != ClockRunning {
		return c.remaining, false
	}
	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.phase = ClockEnded
		return 0, true
	}
	return c.remaining, false
}

// Stop ends the countdown early. Idempotent.
func (c *Clock) Stop() {
	if c.phase == ClockRunning {
		c.phase = ClockEnded
	}
}

func (c *Clock) Phase() ClockPhase { return c.phase }

func (c *Clock) Remaining() int { return c.remaining }

func (c *Clock) Duration() int { return c.duration }

// Intense reports the derived difficulty flag: the final quarter of
// the session. It is recomputed from the countdown, never stored.
func (c *Clock) Intense() bool {
	return c.phase == ClockRunning && c.remaining <= c.duration/4
}
