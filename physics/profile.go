package physics

import "github.com/lixenwraith/cutin-killer/parameter"

// SteeringProfile defines body tuning for one NPC class
// Profiles are pre-defined as package variables for zero allocation
type SteeringProfile struct {
	Mass          float64
	MaxSpeed      float64
	MaxForce      float64
	SteerGain     float64
	ArrivalRadius float64
	Damping       float64
	Separation    float64 // Multiplier on crowd separation force
}

// CompliantSteering respects personal space and walks at normal pace
var CompliantSteering = SteeringProfile{
	Mass:          parameter.CompliantMass,
	MaxSpeed:      parameter.CompliantSpeed,
	MaxForce:      parameter.CompliantMaxForce,
	SteerGain:     parameter.SteerGain,
	ArrivalRadius: parameter.ArrivalRadius,
	Damping:       parameter.WalkDamping,
	Separation:    parameter.CompliantSeparation,
}

// DisruptiveSteering is heavier and faster, separating less to push through crowds
var DisruptiveSteering = SteeringProfile{
	Mass:          parameter.DisruptiveMass,
	MaxSpeed:      parameter.DisruptiveSpeed,
	MaxForce:      parameter.DisruptiveMaxForce,
	SteerGain:     parameter.SteerGain,
	ArrivalRadius: parameter.ArrivalRadius,
	Damping:       parameter.WalkDamping,
	Separation:    parameter.DisruptiveSeparation,
}

// CollisionProfile defines pairwise contact resolution parameters
type CollisionProfile struct {
	MinSeparation   float64 // Center distance below which bodies overlap
	Restitution     float64 // 0 = perfectly inelastic, 1 = elastic
	CorrectionShare float64 // Fraction of overlap each body is moved by
}

// NPCContact resolves NPC-to-NPC overlap
var NPCContact = CollisionProfile{
	MinSeparation:   parameter.MinSeparation,
	Restitution:     parameter.Restitution,
	CorrectionShare: parameter.CorrectionShare,
}
