package rabbit

import "github.com/vovakirdan/run-rabbit/internal/core"

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Tick     int
	RabbitX  float64
	Rabbit   Rabbit
	Fox      Fox
	Pools    Pools
	Score    int
	GameOver bool
	Paused   bool
	Reason   core.EndReason
	TickRate int
}

// Snapshot copies the current state. Mutating the result does not affect the game.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tickCount,
		RabbitX:  g.cfg.Rabbit.X,
		Rabbit:   g.rabbit,
		Fox:      g.fox,
		Pools:    g.pools.clone(),
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
		Reason:   g.reason,
		TickRate: g.runtime.TickRate,
	}
}

// RunStats summarizes the current run.
type RunStats struct {
	Score   int
	Carrots int
	Strikes int
	Ticks   int
	Reason  core.EndReason
}

// Stats returns the statistics of the current run.
func (g *Game) Stats() RunStats {
	return RunStats{
		Score:   g.score,
		Carrots: g.carrots,
		Strikes: g.strikes,
		Ticks:   g.tickCount,
		Reason:  g.reason,
	}
}
