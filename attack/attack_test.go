package attack

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cutin-killer/component"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// testField is a plain NPC list with idempotent deactivation
type testField struct {
	npcs        []*component.NPC
	deactivated int
}

func (f *testField) NPCs() []*component.NPC { return f.npcs }

func (f *testField) Deactivate(n *component.NPC) bool {
	if !n.Active {
		return false
	}
	n.Active = false
	n.Body.Detach()
	f.deactivated++
	return true
}

func (f *testField) spawn(d component.Disposition, x, y float64) *component.NPC {
	n := component.NewNPC(component.EntityID(len(f.npcs)+1), d, vmath.V(x, y))
	f.npcs = append(f.npcs, n)
	return n
}

func TestAreaEliminatesWithinRadius(t *testing.T) {
	f := &testField{}
	near := f.spawn(component.Disruptive, 140, 100) // distance 40
	far := f.spawn(component.Compliant, 160, 100)   // distance 60

	a := NewBodySlam()
	hits, ok := a.Use(vmath.V(100, 100), f)
	require.True(t, ok)
	require.Len(t, hits, 1)
	assert.Equal(t, near.ID, hits[0].ID)
	assert.False(t, near.Active)
	assert.True(t, far.Active)

	// Survivor in the knockback ring is pushed outward
	assert.Greater(t, far.Body.Vel.X, 0.0)
}

func TestCooldownGating(t *testing.T) {
	f := &testField{}
	f.spawn(component.Disruptive, 100, 100)

	a := NewBodySlam()
	_, ok := a.Use(vmath.V(500, 500), f)
	require.True(t, ok)
	assert.False(t, a.Ready())
	assert.Zero(t, a.CooldownFraction())

	hits, ok := a.Use(vmath.V(100, 100), f)
	assert.False(t, ok)
	assert.Nil(t, hits)
	assert.True(t, f.npcs[0].Active, "use on cooldown must not change anything")
	assert.Len(t, a.Effects(), 1)

	a.Update(250 * time.Millisecond)
	assert.InDelta(t, 0.5, a.CooldownFraction(), 1e-9)
	a.Update(250 * time.Millisecond)
	assert.True(t, a.Ready())
	assert.Equal(t, 1.0, a.CooldownFraction())

	_, ok = a.Use(vmath.V(100, 100), f)
	assert.True(t, ok)
	assert.False(t, f.npcs[0].Active)
}

func TestEffectsAgeOut(t *testing.T) {
	a := NewBodySlam()
	_, ok := a.Use(vmath.V(0, 0), &testField{})
	require.True(t, ok)

	a.Update(100 * time.Millisecond)
	effects := a.Effects()
	require.Len(t, effects, 1)
	assert.InDelta(t, 1.0/3, effects[0].Progress(), 1e-9)

	a.Update(200 * time.Millisecond)
	assert.Empty(t, a.Effects())
}

func TestBombFuseMissesLeaver(t *testing.T) {
	f := &testField{}
	leaver := f.spawn(component.Disruptive, 300, 100)

	b := NewBomb()
	origin := vmath.V(100, 100)
	hits, ok := b.Use(origin, f)
	require.True(t, ok)
	assert.Empty(t, hits)

	step := 100 * time.Millisecond
	for i := 1; i <= 10; i++ {
		switch i {
		case 5:
			leaver.Body.Pos = vmath.V(120, 100) // enters radius at t=0.5
		case 8:
			leaver.Body.Pos = vmath.V(400, 100) // leaves before t=1.0
		}
		hits = append(hits, b.Update(step)...)
	}
	assert.Empty(t, hits)
	assert.True(t, leaver.Active)
}

func TestBombFuseHitsStayer(t *testing.T) {
	f := &testField{}
	stayer := f.spawn(component.Compliant, 300, 100)

	b := NewBomb()
	origin := vmath.V(100, 100)
	_, ok := b.Use(origin, f)
	require.True(t, ok)

	// Added after placement, never hit
	late := f.spawn(component.Disruptive, 100, 100)

	var hits []Hit
	step := 100 * time.Millisecond
	for i := 1; i <= 10; i++ {
		if i == 5 {
			stayer.Body.Pos = vmath.V(150, 100)
		}
		hits = append(hits, b.Update(step)...)
	}
	require.Len(t, hits, 1)
	assert.Equal(t, stayer.ID, hits[0].ID)
	assert.Equal(t, KindBomb, hits[0].Kind)
	assert.False(t, stayer.Active)
	assert.True(t, late.Active)

	// Explosion effect lingers then clears
	effects := b.Effects()
	require.Len(t, effects, 1)
	assert.False(t, effects[0].Armed)
	b.Update(500 * time.Millisecond)
	assert.Zero(t, b.Pending())
}

func TestBombIgnoresAlreadyRemoved(t *testing.T) {
	f := &testField{}
	n := f.spawn(component.Disruptive, 100, 100)

	b := NewBomb()
	_, ok := b.Use(vmath.V(100, 100), f)
	require.True(t, ok)
	f.Deactivate(n)

	hits := b.Update(time.Second)
	assert.Empty(t, hits)
	assert.Equal(t, 1, f.deactivated)
}

func TestBeamBand(t *testing.T) {
	f := &testField{}
	above := f.spawn(component.Disruptive, 105, 300)  // lateral 5, along 200
	edge := f.spawn(component.Compliant, 110, 400)    // lateral 10, on the edge
	wide := f.spawn(component.Disruptive, 115, 300)   // lateral 15
	behind := f.spawn(component.Disruptive, 100, 600) // below the origin
	tooFar := f.spawn(component.Disruptive, 100, -200)

	l := NewLaser()
	hits, ok := l.Use(vmath.V(100, 500), f)
	require.True(t, ok)
	assert.Len(t, hits, 2)
	assert.False(t, above.Active)
	assert.False(t, edge.Active)
	assert.True(t, wide.Active)
	assert.True(t, behind.Active)
	assert.True(t, tooFar.Active)
}

func TestByName(t *testing.T) {
	for name, kind := range map[string]Kind{"bodyslam": KindArea, "BOMB": KindBomb, "laser": KindBeam, "": KindArea} {
		a, err := ByName(name)
		require.NoError(t, err)
		assert.Equal(t, kind, a.Kind())
	}
	_, err := ByName("railgun")
	assert.True(t, errors.Is(err, ErrUnknownAttack))
}

func TestResetClearsState(t *testing.T) {
	b := NewBomb()
	_, ok := b.Use(vmath.V(0, 0), &testField{})
	require.True(t, ok)
	b.Reset()
	assert.True(t, b.Ready())
	assert.Zero(t, b.Pending())
}
