// Package audio plays short synthesized cues for game events.
package audio

import (
	"fmt"
	"io"
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"classic-snake/game"
)

const sampleRate = beep.SampleRate(44100)

type Cue int

const (
	CueFood Cue = iota
	CueGameOver
	CueNewBest
)

func (c Cue) String() string {
	switch c {
	case CueFood:
		return "food"
	case CueGameOver:
		return "game-over"
	case CueNewBest:
		return "new-best"
	}
	return "unknown"
}

type note struct {
	freq float64
	dur  time.Duration
}

var cueNotes = map[Cue][]note{
	CueFood:     {{880, 60 * time.Millisecond}},
	CueGameOver: {{220, 150 * time.Millisecond}, {165, 250 * time.Millisecond}},
	CueNewBest:  {{660, 90 * time.Millisecond}, {880, 90 * time.Millisecond}, {1320, 160 * time.Millisecond}},
}

// Player is where finished streamers go. The speaker in production, a
// recorder in tests.
type Player interface {
	Play(s beep.Streamer)
}

type speakerPlayer struct{}

func (speakerPlayer) Play(s beep.Streamer) { speaker.Play(s) }

// Sounds maps game events to cues.
type Sounds struct {
	mu      sync.Mutex
	player  Player
	rate    beep.SampleRate
	volume  float64
	enabled bool
	logger  *log.Logger
}

// New initializes the speaker. A failure is returned so the caller can log
// it and run silent.
func New(volume float64, logger *log.Logger) (*Sounds, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}
	return NewWithPlayer(speakerPlayer{}, sampleRate, volume, logger), nil
}

func NewWithPlayer(p Player, rate beep.SampleRate, volume float64, logger *log.Logger) *Sounds {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Sounds{
		player:  p,
		rate:    rate,
		volume:  volume,
		enabled: true,
		logger:  logger,
	}
}

func (s *Sounds) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

// OnEvent plays the cue for ev, if any. A new best replaces the plain game
// over cue.
func (s *Sounds) OnEvent(ev game.Event) {
	switch {
	case ev.Type == game.EventFoodEaten:
		s.Play(CueFood)
	case ev.Type.Terminal() && ev.NewBest:
		s.Play(CueNewBest)
	case ev.Type.Terminal():
		s.Play(CueGameOver)
	}
}

func (s *Sounds) Play(cue Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return
	}
	streamer, err := Streamer(cue, s.rate, s.volume)
	if err != nil {
		s.logger.Printf("cue %s: %v", cue, err)
		return
	}
	s.player.Play(streamer)
}

// Close stops anything still playing.
func (s *Sounds) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.player.(speakerPlayer); ok {
		speaker.Clear()
	}
	s.enabled = false
}

// Streamer builds the finite streamer for a cue.
func Streamer(cue Cue, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	notes, ok := cueNotes[cue]
	if !ok {
		return nil, fmt.Errorf("unknown cue %d", cue)
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(rate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("tone %.0fHz: %w", n.freq, err)
		}
		parts = append(parts, beep.Take(rate.N(n.dur), tone))
	}
	return withVolume(beep.Seq(parts...), volume), nil
}

// withVolume maps a linear gain in [0,1] onto beep's logarithmic volume.
// math.Log2(0) is -Inf, so zero means silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(math.Min(vol, 1))}
}

// Length returns the number of samples a cue lasts at rate.
func Length(cue Cue, rate beep.SampleRate) int {
	total := 0
	for _, n := range cueNotes[cue] {
		total += rate.N(n.dur)
	}
	return total
}
