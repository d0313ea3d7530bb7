package rabbit

import "github.com/vovakirdan/run-rabbit/internal/config"

// Fox chases the rabbit for a limited time after an obstacle hit.
//
// HasHitDuringChase is only ever true while Chasing. A second obstacle hit
// while it is set ends the run.
type Fox struct {
	X                 float64
	Y                 float64
	Chasing           bool
	Timer             int // ticks left in the current chase
	HasHitDuringChase bool
}

func newFox(cfg *config.RabbitConfig) Fox {
	return Fox{
		X: cfg.Fox.RestX,
		Y: cfg.Physics.GroundY + cfg.Fox.YOffset,
	}
}

// strike records an obstacle hit. started is true when the hit began a chase;
// fatal is true when it was the second hit of the current chase.
func (f *Fox) strike(cfg *config.RabbitConfig) (started, fatal bool) {
	if !f.Chasing {
		f.Chasing = true
		f.Timer = cfg.Fox.ChaseTicks
		f.HasHitDuringChase = true
		f.X = cfg.Fox.StartX
		return true, false
	}
	if f.HasHitDuringChase {
		return false, true
	}
	f.HasHitDuringChase = true
	return false, false
}

// advance runs one tick of the chase. worldSpeed is the current scroll speed.
// ended reports an uncaught chase running out; caught reports the fox reaching
// the rabbit.
func (f *Fox) advance(cfg *config.RabbitConfig, worldSpeed float64) (ended, caught bool) {
	fc := cfg.Fox
	rabbitX := cfg.Rabbit.X

	if !f.Chasing {
		if f.X < fc.RestX {
			f.X += worldSpeed * fc.DriftFactor
		} else if f.X > fc.RestX {
			f.X = fc.RestX
		}
		f.HasHitDuringChase = false
		return false, false
	}

	if f.X < rabbitX-fc.ApproachMargin {
		f.X += worldSpeed * fc.SpeedFactor
	}

	f.Timer--
	if f.Timer <= 0 {
		f.Chasing = false
		f.HasHitDuringChase = false
		f.X = fc.RestX
		return true, false
	}

	return false, f.X >= rabbitX-fc.CatchMargin
}

// SecondsLeft returns the whole seconds shown on the chase countdown.
func (f Fox) SecondsLeft(tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	return f.Timer/tickRate + 1
}
