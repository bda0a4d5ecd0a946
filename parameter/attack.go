package parameter

import "time"

// Body slam (instant area)
const (
	BodySlamCooldown       = 500 * time.Millisecond
	BodySlamRadius         = 50.0
	BodySlamEffectDuration = 300 * time.Millisecond

	// BodySlamKnockbackRadius bounds how far survivors are pushed
	BodySlamKnockbackRadius = 2 * BodySlamRadius
	BodySlamKnockback       = 60000.0
)

// Bomb (delayed area)
const (
	BombCooldown          = 3 * time.Second
	BombRadius            = 80.0
	BombFuse              = 1 * time.Second
	BombExplosionDuration = 500 * time.Millisecond
	BombShockRadius       = 1.5 * BombRadius
	BombShockStrength     = 120.0
)

// Laser (directional beam)
const (
	LaserCooldown       = 1500 * time.Millisecond
	LaserWidth          = 20.0
	LaserLength         = 600.0
	LaserEffectDuration = 500 * time.Millisecond
)

// MinAttackDistance guards inverse falloff against division by zero
const MinAttackDistance = 1.0
