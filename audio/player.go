// Package audio plays the detail view reveal chime through the system speaker.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

// Player plays short cues; implementations never block the caller
type Player interface {
	Chime()
	Close()
}

// Nop is a silent Player
type Nop struct{}

func (Nop) Chime() {}
func (Nop) Close() {}

// Speaker plays through the beep speaker device
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	gain   float64
	closed bool
}

var speakerInit = func(rate beep.SampleRate) error {
	return speaker.Init(rate, rate.N(100*time.Millisecond))
}

// Open returns a speaker-backed Player when enabled; any init failure is logged and yields Nop
func Open(enabled bool, gain float64, log zerolog.Logger) Player {
	if !enabled {
		return Nop{}
	}
	if err := speakerInit(SampleRate); err != nil {
		log.Warn().Err(err).Msg("audio init failed, continuing without sound")
		return Nop{}
	}
	s := &Speaker{mixer: &beep.Mixer{}, gain: gain}
	speaker.Play(s.mixer)
	log.Debug().Int("rate", int(SampleRate)).Msg("audio ready")
	return s
}

// Chime queues the reveal sound on the shared mixer
func (s *Speaker) Chime() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	speaker.Lock()
	s.mixer.Add(Chime(s.gain, SampleRate))
	speaker.Unlock()
}

// Close stops playback and releases the device
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}
