package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the fixed output rate for generated sounds
const SampleRate = beep.SampleRate(44100)

// Reveal chime shape: two rising sine notes with a bell overtone
const (
	chimeNote1    = 659.25 // E5
	chimeNote2    = 987.77 // B5
	chimeNote1Dur = 70 * time.Millisecond
	chimeNote2Dur = 140 * time.Millisecond
	chimeAttack   = 4 * time.Millisecond
	chimeRelease  = 60 * time.Millisecond
)

// sine generates a fixed-length sine wave
type sine struct {
	freq     float64
	phase    float64
	remain   int
	phaseInc float64
}

func newSine(freq float64, d time.Duration, rate beep.SampleRate) *sine {
	return &sine{freq: freq, remain: rate.N(d), phaseInc: freq / float64(rate)}
}

func (s *sine) Stream(samples [][2]float64) (int, bool) {
	if s.remain <= 0 {
		return 0, false
	}
	n := min(len(samples), s.remain)
	for i := 0; i < n; i++ {
		v := math.Sin(2 * math.Pi * s.phase)
		samples[i][0], samples[i][1] = v, v
		s.phase += s.phaseInc
		s.phase -= math.Floor(s.phase)
	}
	s.remain -= n
	return n, true
}

func (s *sine) Err() error { return nil }

// envelope applies linear attack and release to a finite stream
type envelope struct {
	src     beep.Streamer
	pos     int
	total   int
	attack  int
	release int
}

func newEnvelope(src beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{src: src, total: rate.N(d), attack: rate.N(attack), release: rate.N(release)}
}

func (e *envelope) gain() float64 {
	switch {
	case e.attack > 0 && e.pos < e.attack:
		return float64(e.pos) / float64(e.attack)
	case e.release > 0 && e.pos >= e.total-e.release:
		return math.Max(0, float64(e.total-e.pos)/float64(e.release))
	}
	return 1
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.src.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.src.Err() }

// volume wraps s at a linear gain; zero or less is silent
func volume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

func note(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	fund := newEnvelope(newSine(freq, d, rate), d, chimeAttack, chimeRelease, rate)
	over := newEnvelope(newSine(freq*2, d, rate), d, chimeAttack, chimeRelease/2, rate)
	return beep.Mix(volume(fund, 0.75), volume(over, 0.25))
}

// Chime builds the reveal sound at the given linear gain
func Chime(gain float64, rate beep.SampleRate) beep.Streamer {
	seq := beep.Seq(
		note(chimeNote1, chimeNote1Dur, rate),
		note(chimeNote2, chimeNote2Dur, rate),
	)
	return volume(seq, gain)
}

// ChimeDuration is the total length of the reveal sound
func ChimeDuration() time.Duration {
	return chimeNote1Dur + chimeNote2Dur
}
