package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/cutin-killer/engine"
	"github.com/lixenwraith/cutin-killer/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// Player turns simulation events into cue tones on the speaker
// Safe for concurrent use; Handle is meant to be a GameContext listener
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	log         zerolog.Logger

	// sink receives built streamers, replaced in tests
	sink func(beep.Streamer)
	now  func() time.Time

	lastPlayed [cueCount]time.Time
	played     [cueCount]int64
}

// NewPlayer creates a silent player; Start opens the speaker
func NewPlayer(volume float64, log zerolog.Logger) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		log:    log,
		now:    time.Now,
	}
}

// Start initializes the speaker and begins mixing
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBuffer)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.sink = func(s beep.Streamer) {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	}
	p.initialized = true
	return nil
}

// Stop silences everything queued
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.sink = nil
	p.initialized = false
}

// Play queues c unless the same cue played within AudioCueThrottle
func (p *Player) Play(c Cue) bool {
	if c >= cueCount {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sink == nil {
		return false
	}
	now := p.now()
	if last := p.lastPlayed[c]; !last.IsZero() && now.Sub(last) < parameter.AudioCueThrottle {
		return false
	}
	s := Build(c, sampleRate, p.volume)
	if s == nil {
		return false
	}
	p.lastPlayed[c] = now
	p.played[c]++
	p.sink(s)
	return true
}

// Handle plays the cue for ev, if any
func (p *Player) Handle(ev engine.Event) {
	if c, ok := CueFor(ev); ok && p.Play(c) {
		p.log.Trace().Str("cue", c.String()).Int64("frame", ev.Frame).Msg("cue")
	}
}

// Played returns how many times c was queued
func (p *Player) Played(c Cue) int64 {
	if c >= cueCount {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[c]
}
