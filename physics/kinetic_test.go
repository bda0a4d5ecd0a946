package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cutin-killer/parameter"
	"github.com/lixenwraith/cutin-killer/vmath"
)

var plainProfile = SteeringProfile{
	Mass:          1,
	MaxSpeed:      30,
	MaxForce:      1000,
	SteerGain:     1,
	ArrivalRadius: 20,
	Damping:       1,
}

func TestSeekZeroDistanceSkipped(t *testing.T) {
	b := NewBody(vmath.V(5, 5), &plainProfile)
	assert.Equal(t, vmath.Vec2{}, b.Seek(vmath.V(5, 5), 0))
}

func TestSeekArrivalScaling(t *testing.T) {
	b := NewBody(vmath.Vec2{}, &plainProfile)

	far := b.Seek(vmath.V(100, 0), 100)
	assert.InDelta(t, 30, far.X, 1e-9)

	// Half the arrival radius halves desired speed
	near := b.Seek(vmath.V(10, 0), 10)
	assert.InDelta(t, 15, near.X, 1e-9)
	assert.InDelta(t, 0, near.Y, 1e-9)
}

func TestSeekClampedToMaxForce(t *testing.T) {
	p := plainProfile
	p.MaxForce = 5
	b := NewBody(vmath.Vec2{}, &p)
	b.Vel = vmath.V(-30, 0)

	f := b.Seek(vmath.V(100, 0), 100)
	assert.InDelta(t, 5, f.Len(), 1e-9)
	assert.Greater(t, f.X, 0.0)
}

func TestApplyForceUsesMass(t *testing.T) {
	p := plainProfile
	p.Mass = 2
	b := NewBody(vmath.Vec2{}, &p)
	b.ApplyForce(vmath.V(4, 0))
	assert.InDelta(t, 2, b.Acc.X, 1e-12)

	b.ApplyForce(vmath.V(math.NaN(), 0))
	assert.InDelta(t, 2, b.Acc.X, 1e-12, "non-finite force must be dropped")

	p.Mass = 0
	z := NewBody(vmath.Vec2{}, &p)
	z.ApplyForce(vmath.V(3, 0))
	assert.InDelta(t, 3, z.Acc.X, 1e-12)
}

func TestIntegrateClampsAndResets(t *testing.T) {
	p := plainProfile
	p.Damping = 0.5
	b := NewBody(vmath.Vec2{}, &p)
	b.Vel = vmath.V(100, 0)
	b.ApplyForce(vmath.V(0, 10))

	require.True(t, b.Integrate(0.1))
	assert.LessOrEqual(t, b.Vel.Len(), 30+1e-9)
	assert.Equal(t, vmath.Vec2{}, b.Acc)
	assert.Greater(t, b.Pos.X, 0.0)
}

func TestIntegrateNaNRecovery(t *testing.T) {
	b := NewBody(vmath.V(10, 10), &plainProfile)
	b.Vel = vmath.V(1, 0)
	require.True(t, b.Integrate(1.0/60))
	good := b.Pos

	b.Acc = vmath.V(math.Inf(1), 0)
	assert.False(t, b.Integrate(1.0/60))
	assert.Equal(t, vmath.Vec2{}, b.Vel)
	assert.Equal(t, good, b.Pos)
	assert.Equal(t, vmath.Vec2{}, b.Acc)
}

func TestUnrecoverablePositionSnapsToSafe(t *testing.T) {
	b := NewBody(vmath.V(math.NaN(), 0), &plainProfile)
	assert.True(t, b.Sanitize())
	assert.Equal(t, vmath.V(parameter.SafeX, parameter.SafeY), b.Pos)
	assert.True(t, b.Pos.IsFinite())
}

func TestMoveTowardsNoOvershoot(t *testing.T) {
	b := NewBody(vmath.Vec2{}, &plainProfile)
	rem := b.MoveTowards(vmath.V(10, 0), 20, 0.25)
	assert.InDelta(t, 5, rem, 1e-9)
	assert.InDelta(t, 5, b.Pos.X, 1e-9)

	rem = b.MoveTowards(vmath.V(10, 0), 20, 1)
	assert.Zero(t, rem)
	assert.Equal(t, vmath.V(10, 0), b.Pos)
}

func TestDetachedBodyIgnoresInput(t *testing.T) {
	b := NewBody(vmath.V(1, 1), &plainProfile)
	b.Detach()
	b.ApplyForce(vmath.V(10, 0))
	assert.False(t, b.Integrate(1))
	assert.Equal(t, vmath.V(1, 1), b.Pos)
	assert.False(t, b.Attached())
}

func TestProfilesDifferByDisposition(t *testing.T) {
	assert.Greater(t, DisruptiveSteering.MaxSpeed, CompliantSteering.MaxSpeed)
	assert.Greater(t, DisruptiveSteering.Mass, CompliantSteering.Mass)
	assert.Less(t, DisruptiveSteering.Separation, CompliantSteering.Separation)
}

func TestSteadyStateSpeed(t *testing.T) {
	b := NewBody(vmath.Vec2{}, &CompliantSteering)
	target := vmath.V(10000, 0)
	for i := 0; i < 600; i++ {
		b.ApplyForce(b.Seek(target, vmath.Distance(b.Pos, target)))
		b.Integrate(1.0 / 60)
	}
	// Floor drag keeps cruise speed a little under MaxSpeed
	assert.Greater(t, b.Vel.Len(), 0.8*CompliantSteering.MaxSpeed)
	assert.LessOrEqual(t, b.Vel.Len(), CompliantSteering.MaxSpeed)
}
