package rabbit

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/run-rabbit/internal/config"
	"github.com/vovakirdan/run-rabbit/internal/core"
)

// seqRand replays a fixed sequence of values, each reduced modulo n.
type seqRand struct {
	vals []int
	i    int
}

func (s *seqRand) Intn(n int) int {
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func newTestGame(t *testing.T, vals ...int) *Game {
	t.Helper()
	g := NewWithRand(config.DefaultRabbitConfig(), &seqRand{vals: vals})
	g.Reset(core.DefaultConfig())
	return g
}

// clearWorld parks every collidable object far to the right, inactive.
func clearWorld(g *Game) {
	for _, pool := range [][]Object{g.pools.Carrots, g.pools.Obstacles, g.pools.Pits} {
		for i := range pool {
			pool[i].X = 50
			pool[i].Active = false
		}
	}
}

// placeAtRabbit puts o where it will sit on the rabbit's column after one tick.
func placeAtRabbit(g *Game, o *Object) {
	o.X = g.cfg.Rabbit.X + g.cfg.World.Speed
	o.Active = true
}

func hasEvent(events []core.Event, kind core.EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestGroundedRabbitStaysOnGround(t *testing.T) {
	g := newTestGame(t)
	clearWorld(g)

	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}

	r := g.Rabbit()
	if r.VelocityY != 0 || r.Y != g.cfg.Physics.GroundY || !r.OnGround {
		t.Errorf("grounded rabbit moved: %+v", r)
	}
	if !near(r.RunPhase, 10*g.cfg.Physics.RunPhaseStep) {
		t.Errorf("RunPhase = %v, expected %v", r.RunPhase, 10*g.cfg.Physics.RunPhaseStep)
	}
}

func TestJumpOnlyWhenGrounded(t *testing.T) {
	g := newTestGame(t)
	clearWorld(g)

	if !g.Jump() {
		t.Fatal("jump from the ground should be accepted")
	}
	r := g.Rabbit()
	if r.VelocityY != g.cfg.Physics.JumpImpulse || r.OnGround {
		t.Errorf("after jump: %+v", r)
	}

	if g.Jump() {
		t.Error("jump while airborne should be rejected")
	}
	if g.Rabbit().VelocityY != g.cfg.Physics.JumpImpulse {
		t.Error("rejected jump must not change velocity")
	}

	// Rise, fall and land again.
	for i := 0; i < 200 && !g.Rabbit().OnGround; i++ {
		g.Step(core.NewInputFrame())
		if i == 0 && g.Rabbit().RunPhase != 0 {
			t.Error("run phase should not advance while airborne")
		}
	}
	if !g.Rabbit().OnGround || g.Rabbit().Y != g.cfg.Physics.GroundY {
		t.Errorf("rabbit should land, got %+v", g.Rabbit())
	}
}

func TestJumpThroughStepInput(t *testing.T) {
	g := newTestGame(t)
	clearWorld(g)

	g.Step(core.FrameOf(core.ActionJump))
	r := g.Rabbit()
	if r.OnGround {
		t.Fatal("rabbit should be airborne after a jump tick")
	}
	want := g.cfg.Physics.JumpImpulse + g.cfg.Physics.Gravity
	if !near(r.VelocityY, want) {
		t.Errorf("VelocityY = %v, expected %v", r.VelocityY, want)
	}
}

func TestSpawnLayout(t *testing.T) {
	g := newTestGame(t) // every draw is 0
	p := g.pools
	cfg := g.cfg

	if len(p.CarrotGroups) != cfg.Carrots.Groups {
		t.Fatalf("got %d carrot groups, expected %d", len(p.CarrotGroups), cfg.Carrots.Groups)
	}
	wantX := []float64{1.5, 2.04, 2.58, 3.12, 3.66}
	if len(p.Carrots) != len(wantX) {
		t.Fatalf("got %d carrots, expected %d", len(p.Carrots), len(wantX))
	}
	for i, c := range p.Carrots {
		if !near(c.X, wantX[i]) || !c.Active || !near(c.Y, cfg.Physics.GroundY+cfg.Carrots.YOffset) {
			t.Errorf("carrot %d = %+v, expected X=%v", i, c, wantX[i])
		}
	}

	for i, o := range p.Obstacles {
		if !near(o.X, 2.5+float64(i)*1.8) || o.Size != cfg.Obstacles.Size {
			t.Errorf("obstacle %d = %+v", i, o)
		}
	}
	for i, pit := range p.Pits {
		if !near(pit.X, 3.0+float64(i)*2.0) || pit.Y != cfg.Physics.GroundY {
			t.Errorf("pit %d = %+v", i, pit)
		}
	}
	for i, tr := range p.Trees {
		want := 0.8
		if i%2 == 1 {
			want = 1.1
		}
		if !near(tr.Scale, want) {
			t.Errorf("tree %d scale = %v, expected %v", i, tr.Scale, want)
		}
	}

	f := g.Fox()
	if f.Chasing || f.HasHitDuringChase || f.X != cfg.Fox.RestX {
		t.Errorf("fox should start idle at rest: %+v", f)
	}
}

func TestSpawnGroupSizesFromRand(t *testing.T) {
	// Group sizes draw first in each group: 3 -> 4 carrots, then spacing and gap draws.
	g := NewWithRand(config.DefaultRabbitConfig(), &seqRand{vals: []int{3, 0, 0, 0, 0, 0}})
	g.Reset(core.DefaultConfig())

	if g.pools.CarrotGroups[0] != 4 {
		t.Errorf("first group size = %d, expected 4", g.pools.CarrotGroups[0])
	}
	total := 0
	for _, n := range g.pools.CarrotGroups {
		if n < 1 || n > 4 {
			t.Errorf("group size %d out of range", n)
		}
		total += n
	}
	if total != len(g.pools.Carrots) {
		t.Errorf("group sizes sum to %d, pool has %d carrots", total, len(g.pools.Carrots))
	}
}

func TestObjectsScrollLeft(t *testing.T) {
	g := newTestGame(t)
	before := g.Snapshot().Pools

	g.Step(core.NewInputFrame())
	after := g.Snapshot().Pools

	for i := range before.Carrots {
		if after.Carrots[i].X >= before.Carrots[i].X {
			t.Errorf("carrot %d did not move left: %v -> %v", i, before.Carrots[i].X, after.Carrots[i].X)
		}
	}
	for i := range before.Obstacles {
		if !near(before.Obstacles[i].X-after.Obstacles[i].X, g.cfg.World.Speed) {
			t.Errorf("obstacle %d moved %v", i, before.Obstacles[i].X-after.Obstacles[i].X)
		}
	}
	for i := range before.Trees {
		if !near(before.Trees[i].X-after.Trees[i].X, g.cfg.World.Speed*g.cfg.World.TreeSpeedFactor) {
			t.Errorf("tree %d moved %v", i, before.Trees[i].X-after.Trees[i].X)
		}
	}
}

func TestRecycleAheadAndReactivated(t *testing.T) {
	g := newTestGame(t, 50) // jitter draws 50 -> +1.0
	clearWorld(g)
	g.pools.Carrots[0].X = g.cfg.World.RecycleX + g.cfg.World.Speed/2
	g.pools.Obstacles[0].X = g.cfg.World.RecycleX
	g.pools.Pits[0].X = g.cfg.World.RecycleX
	g.pools.Trees[0].X = g.cfg.World.RecycleX

	g.Step(core.NewInputFrame())

	tests := []struct {
		name string
		obj  Object
		want float64
	}{
		{"carrot", g.pools.Carrots[0], 3.0},
		{"obstacle", g.pools.Obstacles[0], 3.5},
		{"pit", g.pools.Pits[0], 4.0},
	}
	for _, tc := range tests {
		if !near(tc.obj.X, tc.want) || !tc.obj.Active {
			t.Errorf("%s after recycle = %+v, expected active at %v", tc.name, tc.obj, tc.want)
		}
		if tc.obj.X <= g.cfg.World.VisibleRight {
			t.Errorf("%s recycled inside the view at %v", tc.name, tc.obj.X)
		}
	}
	if g.pools.Trees[0].X != g.cfg.Trees.WrapX {
		t.Errorf("tree should wrap to %v, got %v", g.cfg.Trees.WrapX, g.pools.Trees[0].X)
	}
}

func TestCarrotCollected(t *testing.T) {
	g := newTestGame(t)
	clearWorld(g)
	placeAtRabbit(g, &g.pools.Carrots[0])

	res := g.Step(core.NewInputFrame())

	if g.pools.Carrots[0].Active {
		t.Error("collected carrot should be inactive")
	}
	if res.State.Score != g.cfg.Carrots.Reward {
		t.Errorf("score = %d, expected %d", res.State.Score, g.cfg.Carrots.Reward)
	}
	if !hasEvent(res.Events, core.EventCarrotCollected) {
		t.Error("expected a carrot event")
	}
	r := g.Rabbit()
	if !r.OnGround || r.VelocityY != 0 || r.Y != g.cfg.Physics.GroundY {
		t.Errorf("carrot must not affect the rabbit: %+v", r)
	}

	// An inactive carrot is not collected twice.
	g.Step(core.NewInputFrame())
	if g.State().Score != g.cfg.Carrots.Reward || g.Stats().Carrots != 1 {
		t.Errorf("carrot counted twice: score=%d stats=%+v", g.State().Score, g.Stats())
	}
}

func TestFirstObstacleStartsChase(t *testing.T) {
	g := newTestGame(t)
	clearWorld(g)
	placeAtRabbit(g, &g.pools.Obstacles[0])

	res := g.Step(core.NewInputFrame())

	f := g.Fox()
	if !f.Chasing || !f.HasHitDuringChase {
		t.Fatalf("fox should be chasing with the hit flag set: %+v", f)
	}
	// The chase already ran one tick after being armed.
	if f.Timer != g.cfg.Fox.ChaseTicks-1 {
		t.Errorf("Timer = %d, expected %d", f.Timer, g.cfg.Fox.ChaseTicks-1)
	}
	if res.State.GameOver {
		t.Error("a first hit must not end the game")
	}
	if g.pools.Obstacles[0].Active {
		t.Error("hit obstacle should be inactive")
	}
	if !hasEvent(res.Events, core.EventStrike) || !hasEvent(res.Events, core.EventChaseStarted) {
		t.Errorf("expected strike and chase events, got %v", res.Events)
	}
}

func TestFoxStrikeArmsFullTimer(t *testing.T) {
	cfg := config.DefaultRabbitConfig()
	f := newFox(&cfg)
	f.X = -0.95

	started, fatal := f.strike(&cfg)
	if !started || fatal {
		t.Errorf("strike from idle = (%v, %v), expected (true, false)", started, fatal)
	}
	if f.Timer != cfg.Fox.ChaseTicks || f.X != cfg.Fox.StartX || !f.HasHitDuringChase {
		t.Errorf("chase not armed: %+v", f)
	}

	started, fatal = f.strike(&cfg)
	if started || !fatal {
		t.Errorf("second strike = (%v, %v), expected (false, true)", started, fatal)
	}
}

func TestSecondObstacleEndsGame(t *testing.T) {
	g := newTestGame(t)
	clearWorld(g)
	placeAtRabbit(g, &g.pools.Obstacles[0])
	g.Step(core.NewInputFrame())

	// Plenty of chase time left.
	placeAtRabbit(g, &g.pools.Obstacles[1])
	res := g.Step(core.NewInputFrame())

	if !res.State.GameOver {
		t.Fatal("second hit during a chase should end the game")
	}
	if g.Stats().Reason != core.ReasonSecondStrike || g.Stats().Strikes != 2 {
		t.Errorf("stats = %+v", g.Stats())
	}
	if !hasEvent(res.Events, core.EventGameOver) {
		t.Error("expected a game over event")
	}
}

func TestSecondObstacleOnLastChaseTick(t *testing.T) {
	g := newTestGame(t)
	clearWorld(g)
	g.fox.Chasing = true
	g.fox.HasHitDuringChase = true
	g.fox.Timer = 1
	g.fox.X = -0.85
	g.strikes = 1

	// Hits are resolved before the timer runs out.
	placeAtRabbit(g, &g.pools.Obstacles[0])
	res := g.Step(core.NewInputFrame())

	if !res.State.GameOver {
		t.Fatal("a hit on the last chase tick should end the game in that tick")
	}
	if g.Stats().Reason != core.ReasonSecondStrike {
		t.Errorf("reason = %v, expected %v", g.Stats().Reason, core.ReasonSecondStrike)
	}
	if !hasEvent(res.Events, core.EventGameOver) {
		t.Error("expected a game over event")
	}
}

func TestChaseExpires(t *testing.T) {
	g := newTestGame(t)
	clearWorld(g)
	g.fox.Chasing = true
	g.fox.HasHitDuringChase = true
	g.fox.Timer = 1
	g.fox.X = -0.85

	res := g.Step(core.NewInputFrame())

	f := g.Fox()
	if f.Chasing || f.HasHitDuringChase || f.X != g.cfg.Fox.RestX {
		t.Errorf("chase should end with the fox at rest: %+v", f)
	}
	if res.State.GameOver {
		t.Error("an expired chase must not end the game")
	}
	if !hasEvent(res.Events, core.EventChaseEnded) {
		t.Error("expected a chase ended event")
	}

	// A new hit after the chase starts a fresh chase instead of ending the run.
	placeAtRabbit(g, &g.pools.Obstacles[0])
	res = g.Step(core.NewInputFrame())
	if res.State.GameOver || !g.Fox().Chasing {
		t.Errorf("hit after expiry should start a new chase, fox=%+v", g.Fox())
	}
}

func TestFoxNeverCatchesWithDefaultMargins(t *testing.T) {
	g := newTestGame(t)
	clearWorld(g)
	placeAtRabbit(g, &g.pools.Obstacles[0])
	g.Step(core.NewInputFrame())
	clearWorld(g) // keep the recycled obstacle from coming round again

	for i := 0; i < g.cfg.Fox.ChaseTicks; i++ {
		if res := g.Step(core.NewInputFrame()); res.State.GameOver {
			t.Fatalf("fox caught the rabbit on tick %d: %+v", i, g.Fox())
		}
		if g.Fox().X > g.cfg.Rabbit.X-g.cfg.Fox.ApproachMargin+g.cfg.World.Speed {
			t.Fatalf("fox passed the approach margin: %v", g.Fox().X)
		}
	}
	if g.Fox().Chasing {
		t.Error("chase should have expired")
	}
}

func TestFoxCatchesWithHardPreset(t *testing.T) {
	cfg := config.DefaultRabbitConfig()
	config.ApplyRabbitPreset(&cfg, config.DifficultyHard)
	cfg.Difficulty.Enabled = false
	g := NewWithRand(cfg, &seqRand{})
	g.Reset(core.DefaultConfig())
	clearWorld(g)
	placeAtRabbit(g, &g.pools.Obstacles[0])

	for i := 0; i < cfg.Fox.ChaseTicks && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Stats().Reason != core.ReasonCaught {
		t.Errorf("expected the fox to catch the rabbit, stats=%+v fox=%+v", g.Stats(), g.Fox())
	}
}

func TestIdleFoxDriftsAndSnaps(t *testing.T) {
	cfg := config.DefaultRabbitConfig()
	f := newFox(&cfg)

	f.X = cfg.Fox.RestX - 0.01
	f.HasHitDuringChase = true
	f.advance(&cfg, cfg.World.Speed)
	if !near(f.X, cfg.Fox.RestX-0.01+cfg.World.Speed*cfg.Fox.DriftFactor) {
		t.Errorf("idle fox should drift toward rest, X=%v", f.X)
	}
	if f.HasHitDuringChase {
		t.Error("idle fox must not keep the hit flag")
	}

	f.X = cfg.Fox.RestX + 0.3
	f.advance(&cfg, cfg.World.Speed)
	if f.X != cfg.Fox.RestX {
		t.Errorf("fox past rest should snap back, X=%v", f.X)
	}
}

func TestPitEndsGameOnlyWhenGrounded(t *testing.T) {
	g := newTestGame(t)
	clearWorld(g)
	placeAtRabbit(g, &g.pools.Pits[0])

	res := g.Step(core.FrameOf(core.ActionJump))
	if res.State.GameOver {
		t.Fatal("airborne rabbit must clear the pit")
	}

	g = newTestGame(t)
	clearWorld(g)
	placeAtRabbit(g, &g.pools.Pits[0])

	res = g.Step(core.NewInputFrame())
	if !res.State.GameOver || g.Stats().Reason != core.ReasonPit {
		t.Errorf("grounded rabbit over a pit should fall in, stats=%+v", g.Stats())
	}
}

func TestPitBandIsStrict(t *testing.T) {
	g := newTestGame(t)
	clearWorld(g)
	pit := &g.pools.Pits[0]
	// After the tick the rabbit sits on the band edge, far enough to avoid rounding.
	pit.X = g.cfg.Rabbit.X + pit.Size/2 + g.cfg.World.Speed + 1e-6
	pit.Active = true

	if g.Step(core.NewInputFrame()).State.GameOver {
		t.Error("rabbit outside the pit band should not fall in")
	}
}

func TestGameOverFreezesWorld(t *testing.T) {
	g := newTestGame(t)
	clearWorld(g)
	placeAtRabbit(g, &g.pools.Pits[0])
	g.Step(core.NewInputFrame())

	before := g.Snapshot()
	res := g.Step(core.FrameOf(core.ActionJump, core.ActionPause))
	after := g.Snapshot()

	if !res.State.GameOver || len(res.Events) != 0 {
		t.Errorf("step during game over should do nothing, got %+v", res)
	}
	if before.Tick != after.Tick || before.Pools.Trees[0].X != after.Pools.Trees[0].X || after.Rabbit != before.Rabbit {
		t.Error("world moved during game over")
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := newTestGame(t, 2, 1, 0)
	groups := len(g.pools.CarrotGroups)

	clearWorld(g)
	placeAtRabbit(g, &g.pools.Carrots[0])
	g.Step(core.NewInputFrame())
	placeAtRabbit(g, &g.pools.Pits[0])
	g.Step(core.NewInputFrame())
	if !g.State().GameOver {
		t.Fatal("setup should end the game")
	}

	res := g.Step(core.FrameOf(core.ActionRestart))

	if res.State.GameOver || res.State.Score != 0 {
		t.Errorf("restart should clear game over and score: %+v", res.State)
	}
	if !hasEvent(res.Events, core.EventRestarted) {
		t.Error("expected a restart event")
	}
	r := g.Rabbit()
	if !r.OnGround || r.Y != g.cfg.Physics.GroundY || r.VelocityY != 0 || r.RunPhase != 0 {
		t.Errorf("rabbit not reset: %+v", r)
	}
	f := g.Fox()
	if f.Chasing || f.HasHitDuringChase || f.X != g.cfg.Fox.RestX {
		t.Errorf("fox not reset: %+v", f)
	}
	if len(g.pools.CarrotGroups) != groups || len(g.pools.Obstacles) != g.cfg.Obstacles.Count ||
		len(g.pools.Pits) != g.cfg.Pits.Count || len(g.pools.Trees) != g.cfg.Trees.Count {
		t.Error("pool structure changed across restart")
	}
	for _, o := range g.pools.Obstacles {
		if !o.Active {
			t.Error("restart should reactivate every obstacle")
		}
	}
	if g.Stats() != (RunStats{}) {
		t.Errorf("stats not reset: %+v", g.Stats())
	}
}

func TestRestartIgnoredWhileRunning(t *testing.T) {
	g := newTestGame(t)
	clearWorld(g)
	placeAtRabbit(g, &g.pools.Carrots[0])
	g.Step(core.NewInputFrame())

	g.Step(core.FrameOf(core.ActionRestart))
	if g.State().Score == 0 {
		t.Error("restart must only be accepted after game over")
	}
}

func TestPauseToggle(t *testing.T) {
	g := newTestGame(t)
	g.Step(core.FrameOf(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	x := g.pools.Trees[0].X
	g.Step(core.NewInputFrame())
	if g.pools.Trees[0].X != x {
		t.Error("world moved while paused")
	}
	if g.Jump() {
		t.Error("jump should be rejected while paused")
	}
	g.Step(core.FrameOf(core.ActionPause))
	if g.State().Paused {
		t.Error("expected unpaused")
	}
}

func TestGameDeterminism(t *testing.T) {
	rt := core.DefaultConfig()
	rt.Seed = 12345

	run := func() (Snapshot, RunStats) {
		g := New(config.DefaultRabbitConfig())
		g.Reset(rt)
		for i := 0; i < 2000; i++ {
			in := core.NewInputFrame()
			if i%45 == 0 {
				in.Set(core.ActionJump)
			}
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot(), g.Stats()
	}

	s1, st1 := run()
	s2, st2 := run()
	if st1 != st2 {
		t.Errorf("stats differ: %+v vs %+v", st1, st2)
	}
	if s1.Rabbit != s2.Rabbit || s1.Fox != s2.Fox {
		t.Error("rabbit or fox state differs between identical runs")
	}
	for i := range s1.Pools.Carrots {
		if s1.Pools.Carrots[i] != s2.Pools.Carrots[i] {
			t.Fatalf("carrot %d differs", i)
		}
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	g := newTestGame(t)
	s := g.Snapshot()
	s.Pools.Carrots[0].X = 99
	if g.pools.Carrots[0].X == 99 {
		t.Error("snapshot shares pool storage with the game")
	}
}

func TestSecondsLeft(t *testing.T) {
	tests := []struct {
		timer, rate, want int
	}{
		{300, 60, 6},
		{299, 60, 5},
		{59, 60, 1},
		{1, 0, 1},
	}
	for _, tc := range tests {
		f := Fox{Timer: tc.timer}
		if got := f.SecondsLeft(tc.rate); got != tc.want {
			t.Errorf("SecondsLeft(timer=%d, rate=%d) = %d, expected %d", tc.timer, tc.rate, got, tc.want)
		}
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD missing, row 0 = %q", screen.Row(0))
	}
	if !strings.ContainsRune(screen.String(), GroundChar) {
		t.Error("ground not drawn")
	}
	if strings.Contains(screen.String(), "CHASE!") {
		t.Error("chase banner drawn while idle")
	}

	clearWorld(g)
	placeAtRabbit(g, &g.pools.Obstacles[0])
	g.Step(core.NewInputFrame())
	g.Render(screen)
	if !strings.Contains(screen.Row(1), "CHASE! 5s remaining") {
		t.Errorf("chase banner missing, row 1 = %q", screen.Row(1))
	}

	placeAtRabbit(g, &g.pools.Pits[0])
	g.Step(core.NewInputFrame())
	g.Render(screen)
	if !strings.Contains(screen.String(), GameOverText) {
		t.Error("game over banner missing")
	}
}
