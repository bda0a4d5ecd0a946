package component

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/cutin-killer/parameter"
	"github.com/lixenwraith/cutin-killer/vmath"
)

func TestTrainLifecycle(t *testing.T) {
	tr := NewTrain(vmath.V(300, 200))
	assert.Equal(t, vmath.V(300, 200-parameter.TrainApproachOffset), tr.Position)

	step := 100 * time.Millisecond
	unloads := 0
	var elapsed time.Duration
	for tr.Active() && elapsed < 10*time.Second {
		if tr.Advance(step) {
			unloads++
			assert.Equal(t, TrainStopped, tr.Phase)
			assert.Equal(t, tr.StopLine, tr.Position)
		}
		elapsed += step
	}

	assert.Equal(t, 1, unloads)
	assert.False(t, tr.Active())
	total := parameter.TrainArriveDuration + parameter.TrainStopDuration + parameter.TrainDepartDuration
	assert.InDelta(t, float64(total), float64(elapsed), float64(3*step))
}

func TestNewNPCDefaults(t *testing.T) {
	n := NewNPC(3, Disruptive, vmath.V(10, 20))
	assert.True(t, n.Active)
	assert.Equal(t, StateWalking, n.State)
	assert.Equal(t, NoEscalator, n.Target)
	assert.Equal(t, NoRank, n.QueueRank)
	assert.Equal(t, 1.0, n.Opacity)
	assert.Equal(t, parameter.DisruptiveSpeed, n.Body.MaxSpeed)
	assert.True(t, n.Body.Attached())
	assert.Equal(t, "disruptive", n.Disposition.String())
}
