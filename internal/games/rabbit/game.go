// Package rabbit implements Run Rabbit: a side-scroller where a rabbit jumps
// over obstacles and pits, collects carrots, and escapes a fox that gives chase
// after an obstacle hit.
//
// The simulation works in normalized world units: the view spans [-1, 1] on
// both axes and the world scrolls right to left past a rabbit with fixed X.
package rabbit

import (
	"github.com/vovakirdan/run-rabbit/internal/config"
	"github.com/vovakirdan/run-rabbit/internal/core"
)

// Game is one player's session. It owns all mutable state; sessions share nothing.
type Game struct {
	cfg        config.RabbitConfig
	runtime    core.RuntimeConfig
	rng        Rand
	injected   bool // rng was supplied by the caller and survives Reset
	difficulty *config.DifficultyManager

	rabbit Rabbit
	fox    Fox
	pools  Pools

	score     int
	gameOver  bool
	paused    bool
	reason    core.EndReason
	tickCount int // ticks simulated in the current run
	carrots   int // carrots collected in the current run
	strikes   int // obstacles hit in the current run
}

// New creates a game that seeds its random source from the runtime config on Reset.
func New(cfg config.RabbitConfig) *Game {
	return &Game{cfg: cfg}
}

// NewWithRand creates a game drawing spawn positions from rng.
func NewWithRand(cfg config.RabbitConfig, rng Rand) *Game {
	return &Game{cfg: cfg, rng: rng, injected: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "rabbit"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Run Rabbit"
}

// Config returns the configuration the session runs with.
func (g *Game) Config() config.RabbitConfig {
	return g.cfg
}

// Reset starts a new session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if !g.injected {
		g.rng = NewRand(runtime.Seed)
	}
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.restart()
}

// Resize updates the terminal dimensions. World coordinates are normalized, so
// the run continues untouched.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
}

// restart reinitializes the rabbit, the fox, the score and every pool.
// The random stream continues, so each run gets a fresh layout.
func (g *Game) restart() {
	g.rabbit = newRabbit(&g.cfg)
	g.fox = newFox(&g.cfg)
	g.pools = spawn(&g.cfg, g.rng)
	g.score = 0
	g.gameOver = false
	g.paused = false
	g.reason = core.ReasonNone
	g.tickCount = 0
	g.carrots = 0
	g.strikes = 0
}

// Jump makes the rabbit jump. It is accepted only while the rabbit is grounded
// and the run is live.
func (g *Game) Jump() bool {
	if g.gameOver || g.paused {
		return false
	}
	return g.rabbit.jump(&g.cfg)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		if in.Has(core.ActionRestart) {
			g.restart()
			return core.StepResult{
				State:  g.State(),
				Events: []core.Event{{Kind: core.EventRestarted}},
			}
		}
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionJump) {
		g.Jump()
	}

	events := g.tick()
	return core.StepResult{State: g.State(), Events: events}
}

// tick runs one full update. A game over raised mid-tick does not skip the
// remaining updates of that tick.
func (g *Game) tick() []core.Event {
	var events []core.Event
	g.tickCount++
	emit := func(e core.Event) {
		e.Tick = g.tickCount
		events = append(events, e)
	}
	end := func(reason core.EndReason) {
		if g.reason == core.ReasonNone {
			g.reason = reason
		}
		g.gameOver = true
	}

	cfg := &g.cfg
	speed := g.worldSpeed()

	g.rabbit.integrate(cfg)
	body := g.rabbit.circle(cfg)

	for i := range g.pools.Carrots {
		c := &g.pools.Carrots[i]
		scroll(c, speed, cfg.World.RecycleX, cfg.Carrots.RespawnX, cfg.Carrots.RespawnJitter, g.rng)
		if c.Active && body.Overlaps(c.Circle()) {
			c.Active = false
			g.score += cfg.Carrots.Reward
			g.carrots++
			emit(core.Event{Kind: core.EventCarrotCollected, Points: cfg.Carrots.Reward})
		}
	}

	for i := range g.pools.Obstacles {
		o := &g.pools.Obstacles[i]
		scroll(o, speed, cfg.World.RecycleX, cfg.Obstacles.RespawnX, cfg.Obstacles.RespawnJitter, g.rng)
		if !o.Active || !body.Overlaps(o.Circle()) {
			continue
		}
		o.Active = false
		g.strikes++
		emit(core.Event{Kind: core.EventStrike})

		started, fatal := g.fox.strike(cfg)
		if started {
			emit(core.Event{Kind: core.EventChaseStarted})
		}
		if fatal {
			end(core.ReasonSecondStrike)
		}
	}

	for i := range g.pools.Pits {
		p := &g.pools.Pits[i]
		scroll(p, speed, cfg.World.RecycleX, cfg.Pits.RespawnX, cfg.Pits.RespawnJitter, g.rng)
		if p.Active && g.rabbit.OnGround && core.WithinBand(cfg.Rabbit.X, p.X, p.Size/2) {
			end(core.ReasonPit)
		}
	}

	for i := range g.pools.Trees {
		scrollTree(&g.pools.Trees[i], speed*cfg.World.TreeSpeedFactor, cfg.World.RecycleX, cfg.Trees.WrapX)
	}

	ended, caught := g.fox.advance(cfg, speed)
	if ended {
		emit(core.Event{Kind: core.EventChaseEnded})
	}
	if caught {
		end(core.ReasonCaught)
	}

	if g.gameOver {
		emit(core.Event{Kind: core.EventGameOver, Reason: g.reason})
	}
	return events
}

// worldSpeed returns the scroll speed for the current score and tick.
func (g *Game) worldSpeed() float64 {
	if g.difficulty == nil {
		return g.cfg.World.Speed
	}
	return g.difficulty.Speed(g.cfg.World.Speed, g.score, g.tickCount)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Rabbit returns the rabbit's state.
func (g *Game) Rabbit() Rabbit {
	return g.rabbit
}

// Fox returns the fox's state.
func (g *Game) Fox() Fox {
	return g.fox
}
