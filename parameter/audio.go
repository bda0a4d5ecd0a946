package parameter

import "time"

// Audio output
const (
	AudioSampleRate = 48000
	AudioBuffer     = 100 * time.Millisecond

	// AudioCueThrottle is the minimum gap between two plays of the same cue
	AudioCueThrottle = 60 * time.Millisecond
)

// Cue tones
const (
	HitToneFreq     = 660.0
	HitToneDuration = 120 * time.Millisecond

	FriendlyHitFreq     = 110.0
	FriendlyHitDuration = 220 * time.Millisecond

	ExplosionDuration = 450 * time.Millisecond

	ExitChimeNote1     = 987.77
	ExitChimeNote2     = 1318.51
	ExitChimeNoteDur   = 80 * time.Millisecond
	EscapeBuzzFreq     = 90.0
	EscapeBuzzDuration = 200 * time.Millisecond

	TrainHornFreq     = 233.08
	TrainHornDuration = 600 * time.Millisecond

	GameOverDuration = 900 * time.Millisecond

	CueAttack  = 5 * time.Millisecond
	CueRelease = 40 * time.Millisecond
)
