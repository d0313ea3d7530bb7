package rabbit

import (
	"github.com/vovakirdan/run-rabbit/internal/config"
	"github.com/vovakirdan/run-rabbit/internal/core"
)

// Rabbit is the player. Its X is fixed by configuration.
type Rabbit struct {
	Y         float64
	VelocityY float64
	OnGround  bool
	RunPhase  float64 // advances only while grounded; drives the leg animation
}

func newRabbit(cfg *config.RabbitConfig) Rabbit {
	return Rabbit{Y: cfg.Physics.GroundY, OnGround: true}
}

// jump applies the impulse if the rabbit is grounded.
func (r *Rabbit) jump(cfg *config.RabbitConfig) bool {
	if !r.OnGround {
		return false
	}
	r.VelocityY = cfg.Physics.JumpImpulse
	r.OnGround = false
	return true
}

// integrate advances vertical motion by one tick.
func (r *Rabbit) integrate(cfg *config.RabbitConfig) {
	r.VelocityY += cfg.Physics.Gravity
	r.Y += r.VelocityY
	r.OnGround = r.Y <= cfg.Physics.GroundY
	if r.OnGround {
		r.Y = cfg.Physics.GroundY
		r.VelocityY = 0
		r.RunPhase += cfg.Physics.RunPhaseStep
	}
}

func (r Rabbit) circle(cfg *config.RabbitConfig) core.Circle {
	return core.Circle{X: cfg.Rabbit.X, Y: r.Y, R: cfg.Rabbit.Radius}
}
