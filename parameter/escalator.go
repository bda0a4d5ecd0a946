package parameter

import "time"

// Escalator defaults
const (
	EscalatorCapacity        = 1
	EscalatorReleaseInterval = 2 * time.Second

	EscalatorWidth  = 40.0
	EscalatorHeight = 60.0

	// EntranceZoneDepth extends from the open side of the escalator
	EntranceZoneDepth = 80.0

	// EntranceZonePadding widens the zone beyond the escalator width
	EntranceZonePadding = 40.0
)
