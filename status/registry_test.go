package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCachesCells(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get("npc.active")
	a.Store(12)
	assert.Same(t, a, r.Ints.Get("npc.active"))

	r.Floats.Get("sim.dt").Set(0.016)
	r.Bools.Get("game.over").Store(true)

	v := r.Values()
	assert.Equal(t, 12.0, v["npc.active"])
	assert.InDelta(t, 0.016, v["sim.dt"], 1e-12)
	assert.Equal(t, 1.0, v["game.over"])
	assert.Equal(t, 3, r.TotalCount())
}

func TestAtomicFloatAdd(t *testing.T) {
	var f AtomicFloat
	f.Add(1.5)
	assert.Equal(t, 4.0, f.Add(2.5))
}

func TestExporterBindsWithNoopMeter(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("score").Store(5)
	r.Floats.Get("queue.mean").Set(1)

	e := NewExporter(false)
	require.NoError(t, e.Bind(r))
	assert.NoError(t, e.Close())

	empty := NewExporter(false)
	require.NoError(t, empty.Bind(NewRegistry()))
	assert.NoError(t, empty.Close())
}
