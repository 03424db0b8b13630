// Package sounds renders the feedback effects the engine can request.
// The engine itself never touches playback: it names a selector over
// the event bus, the client fetches the rendered WAV and plays it.
package sounds

import (
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

const sampleRate = beep.SampleRate(44100)

// Registry holds the four named effects, synthesized once at startup.
type Registry struct {
	assets map[string][]byte
}

func NewRegistry() (*Registry, error) {
	r := &Registry{assets: make(map[string][]byte)}

	effects := map[string]beep.Streamer{
		"pop":    popEffect(),
		"laser":  laserEffect(),
		"chime":  chimeEffect(),
		"whoosh": whooshEffect(),
	}
	for name, s := range effects {
		data, err := render(s)
		if err != nil {
			return nil, fmt.Errorf("rendering %s effect: %w", name, err)
		}
		r.assets[name] = data
	}
	return r, nil
}

// Get returns the WAV bytes for a selector, or nil for "none" and
// unknown names — missing sounds degrade to silence.
func (r *Registry) Get(name string) []byte {
	return r.assets[name]
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.assets))
	for n := range r.assets {
		names = append(names, n)
	}
	return names
}

// popEffect is a short sine blip.
func popEffect() beep.Streamer {
	d := 120 * time.Millisecond
	osc := newOscillator(880, 880, d, waveSine, sampleRate)
	return newEnvelope(osc, d, 5*time.Millisecond, 80*time.Millisecond, 0.6, sampleRate)
}

// laserEffect is a saw wave sweeping down an octave and a half.
func laserEffect() beep.Streamer {
	d := 180 * time.Millisecond
	osc := newOscillator(1400, 300, d, waveSaw, sampleRate)
	return newEnvelope(osc, d, 2*time.Millisecond, 120*time.Millisecond, 0.4, sampleRate)
}

// chimeEffect is a two-note square sequence (B5 then E6).
func chimeEffect() beep.Streamer {
	d1 := 90 * time.Millisecond
	d2 := 160 * time.Millisecond
	n1 := newEnvelope(newOscillator(987.77, 987.77, d1, waveSquare, sampleRate), d1, 3*time.Millisecond, 40*time.Millisecond, 0.35, sampleRate)
	n2 := newEnvelope(newOscillator(1318.51, 1318.51, d2, waveSquare, sampleRate), d2, 3*time.Millisecond, 110*time.Millisecond, 0.35, sampleRate)
	return beep.Seq(n1, n2)
}

// whooshEffect is shaped noise.
func whooshEffect() beep.Streamer {
	d := 220 * time.Millisecond
	osc := newOscillator(0, 0, d, waveNoise, sampleRate)
	return newEnvelope(osc, d, 60*time.Millisecond, 140*time.Millisecond, 0.5, sampleRate)
}

func render(s beep.Streamer) ([]byte, error) {
	var buf memWriter
	format := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(&buf, s, format); err != nil {
		return nil, err
	}
	return buf.data, nil
}

// memWriter is the in-memory WriteSeeker wav.Encode needs so effects
// never touch disk.
type memWriter struct {
	data []byte
	pos  int
}

func (m *memWriter) Write(p []byte) (int, error) {
	if need := m.pos + len(p); need > len(m.data) {
		m.data = append(m.data, make([]byte, need-len(m.data))...)
	}
	copy(m.data[m.pos:], p)
	m.pos += len(p)
	return len(p), nil
}

func (m *memWriter) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(m.pos) + offset
	case io.SeekEnd:
		abs = int64(len(m.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("negative seek position: %d", abs)
	}
	m.pos = int(abs)
	return abs, nil
}
