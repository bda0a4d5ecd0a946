package engine

import (
	"time"

	"github.com/lixenwraith/cutin-killer/parameter"
)

// ClampDelta bounds a wall-clock gap to a stable simulation step
// Gaps beyond MaxStepMultiple nominal steps (stalls, backgrounding) collapse to one nominal step,
// shorter gaps are capped at nominal
func ClampDelta(elapsed, nominal time.Duration) time.Duration {
	if nominal <= 0 {
		nominal = parameter.SimulationStep
	}
	if elapsed <= 0 {
		return 0
	}
	if elapsed > parameter.MaxStepMultiple*nominal {
		return nominal
	}
	return min(elapsed, nominal)
}
