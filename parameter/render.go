package parameter

// Terminal layout
const (
	// HUDRows is reserved at the top of the screen for score and cooldown
	HUDRows = 1

	// CooldownBarWidth is the HUD cooldown gauge length in cells
	CooldownBarWidth = 10

	// EffectRingPoints is how many samples outline a circular effect
	EffectRingPoints = 48
)
