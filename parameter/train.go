package parameter

import "time"

// Train lifecycle
const (
	TrainArriveDuration = 1500 * time.Millisecond
	TrainStopDuration   = 3 * time.Second
	TrainDepartDuration = 1500 * time.Millisecond

	// TrainApproachOffset is how far above its stop line a train starts
	TrainApproachOffset = 200.0

	TrainWidth  = 100.0
	TrainHeight = 40.0
)

// Passenger generation
const (
	PassengersMin     = 5
	PassengersMax     = 15
	CompliantRatioMin = 0.5
	CompliantRatioMax = 0.8
	DoorJitter        = 30.0
)
