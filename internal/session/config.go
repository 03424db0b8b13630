package session

import "fmt"

// Config is the immutable per-session setup, chosen before Start and
// never mutated while the session runs.
type Config struct {
	DurationSec int     `json:"duration"`
	CursorStyle string  `json:"cursor"`
	Sensitivity float64 `json:"sensitivity"`
	Sound       string  `json:"sound"`
	Mode        string  `json:"mode"`
}

// Permitted option sets. The /api/options endpoint serves these to the
// client; Validate accepts nothing outside of them.
var (
	Durations     = []int{15, 30, 60, 120, 300, 600}
	CursorStyles  = []string{"default", "crosshair", "none", "pointer", "move", "grab", "cell"}
	Sensitivities = []float64{0.5, 0.75, 1.0, 1.25, 1.5}
	SoundNames    = []string{"none", "pop", "laser", "chime", "whoosh"}
	Modes         = []string{"classic", "tracking"}
)

func DefaultConfig() Config {
	return Config{
		DurationSec: 60,
		CursorStyle: "default",
		Sensitivity: 1.0,
		Sound:       "pop",
		Mode:        "classic",
	}
}

func (c Config) Validate() error {
	if !containsInt(Durations, c.DurationSec) {
		return fmt.Errorf("invalid duration: %d", c.DurationSec)
	}
	if !containsString(CursorStyles, c.CursorStyle) {
		return fmt.Errorf("invalid cursor style: %q", c.CursorStyle)
	}
	if !containsFloat(Sensitivities, c.Sensitivity) {
		return fmt.Errorf("invalid sensitivity: %v", c.Sensitivity)
	}
	if !containsString(SoundNames, c.Sound) {
		return fmt.Errorf("invalid sound: %q", c.Sound)
	}
	if !containsString(Modes, c.Mode) {
		return fmt.Errorf("invalid mode: %q", c.Mode)
	}
	return nil
}

func containsInt(set []int, v int) bool {
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(set []string, v string) bool {
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}

func containsFloat(set []float64, v float64) bool {
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}
