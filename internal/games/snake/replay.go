package snake

import "time"

// Input is a heading request that arrived before the given step was taken.
type Input struct {
	Step    int
	Heading Heading
}

// Replay re-runs a game from its seed and recorded inputs, stepping until the
// game ends or maxSteps steps have been taken. Inputs must be in arrival order.
func Replay(cfg Config, seed int64, inputs []Input, maxSteps int) *Engine {
	e := NewEngine(cfg, seed, time.Time{})

	next := 0
	for !e.Over() && e.steps < maxSteps {
		for next < len(inputs) && inputs[next].Step <= e.steps {
			e.SetHeading(inputs[next].Heading)
			next++
		}
		e.step()
	}
	return e
}
