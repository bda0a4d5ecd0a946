package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/cutin-killer/component"
	"github.com/lixenwraith/cutin-killer/engine"
	"github.com/lixenwraith/cutin-killer/parameter"
)

// Cue is one gameplay sound
type Cue uint8

const (
	CueHit Cue = iota
	CueFriendlyHit
	CueExplosion
	CueExit
	CueEscape
	CueTrain
	CueGameOver
	cueCount
)

var cueNames = [cueCount]string{
	CueHit:         "hit",
	CueFriendlyHit: "friendly_hit",
	CueExplosion:   "explosion",
	CueExit:        "exit",
	CueEscape:      "escape",
	CueTrain:       "train",
	CueGameOver:    "game_over",
}

func (c Cue) String() string {
	if c < cueCount {
		return cueNames[c]
	}
	return "unknown"
}

// CueFor maps a simulation event onto its sound, ok false for silent events
func CueFor(ev engine.Event) (Cue, bool) {
	switch ev.Type {
	case engine.EventNPCEliminated:
		if ev.Disposition == component.Compliant {
			return CueFriendlyHit, true
		}
		return CueHit, true
	case engine.EventBombExploded:
		return CueExplosion, true
	case engine.EventNPCExited:
		if ev.Disposition == component.Disruptive {
			return CueEscape, true
		}
		return CueExit, true
	case engine.EventTrainArrived:
		return CueTrain, true
	case engine.EventGameOver:
		return CueGameOver, true
	}
	return 0, false
}

// Build synthesizes the cue at rate, scaled by volume
func Build(c Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueHit:
		s = tone(parameter.HitToneFreq, parameter.HitToneDuration, WaveSquare, rate)
	case CueFriendlyHit:
		s = tone(parameter.FriendlyHitFreq, parameter.FriendlyHitDuration, WaveSaw, rate)
	case CueExplosion:
		noise := NewOscillator(0, parameter.ExplosionDuration, WaveNoise, rate)
		rumble := NewOscillator(60, parameter.ExplosionDuration, WaveSine, rate)
		s = newDecay(beep.Mix(newVolume(noise, 0.6), newVolume(rumble, 0.4)), 8, rate)
	case CueExit:
		s = beep.Seq(
			tone(parameter.ExitChimeNote1, parameter.ExitChimeNoteDur, WaveSine, rate),
			tone(parameter.ExitChimeNote2, parameter.ExitChimeNoteDur, WaveSine, rate),
		)
	case CueEscape:
		s = tone(parameter.EscapeBuzzFreq, parameter.EscapeBuzzDuration, WaveSaw, rate)
	case CueTrain:
		s = beep.Mix(
			newVolume(tone(parameter.TrainHornFreq, parameter.TrainHornDuration, WaveSine, rate), 0.6),
			newVolume(tone(parameter.TrainHornFreq*1.5, parameter.TrainHornDuration, WaveSine, rate), 0.4),
		)
	case CueGameOver:
		third := parameter.GameOverDuration / 3
		s = beep.Seq(
			tone(392, third, WaveSine, rate),
			tone(330, third, WaveSine, rate),
			tone(262, third, WaveSine, rate),
		)
	default:
		return nil
	}
	return newVolume(s, volume)
}

func tone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, parameter.CueAttack, parameter.CueRelease, rate)
}
