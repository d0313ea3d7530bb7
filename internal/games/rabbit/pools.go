package rabbit

import (
	"github.com/vovakirdan/run-rabbit/internal/config"
	"github.com/vovakirdan/run-rabbit/internal/core"
)

// Object is a scrolling carrot, obstacle or pit.
// An inactive object has been consumed or hit: it is invisible and keeps
// scrolling until it is recycled.
type Object struct {
	X, Y   float64
	Size   float64
	Active bool
}

// Circle returns the collision circle of the object.
func (o Object) Circle() core.Circle {
	return core.Circle{X: o.X, Y: o.Y, R: o.Size}
}

// Tree is background scenery. It has no collision and never deactivates.
type Tree struct {
	X, Y  float64
	Scale float64
}

// Pools holds every scrolling object of a session. The slices are allocated by
// spawn and only their elements change afterwards.
type Pools struct {
	Carrots      []Object
	CarrotGroups []int // size of each carrot group, in spawn order
	Obstacles    []Object
	Pits         []Object
	Trees        []Tree
}

// spawn lays out a fresh world.
func spawn(cfg *config.RabbitConfig, rng Rand) Pools {
	var p Pools
	ground := cfg.Physics.GroundY

	cc := cfg.Carrots
	p.CarrotGroups = make([]int, cc.Groups)
	p.Carrots = make([]Object, 0, cc.Groups*cc.MaxGroupSize)
	x := cc.SpawnX
	for i := range p.CarrotGroups {
		size := between(rng, cc.MinGroupSize, cc.MaxGroupSize)
		p.CarrotGroups[i] = size
		for range size {
			spacing := cc.Spacing + sample(rng, cc.SpacingJitter)
			p.Carrots = append(p.Carrots, Object{X: x, Y: ground + cc.YOffset, Size: cc.Size, Active: true})
			x += spacing
		}
		x += cc.GroupGap + sample(rng, cc.GapJitter)
	}

	p.Obstacles = lane(cfg.Obstacles, ground)
	p.Pits = lane(cfg.Pits, ground)

	p.Trees = make([]Tree, cfg.Trees.Count)
	for i := range p.Trees {
		p.Trees[i] = Tree{
			X:     cfg.Trees.SpawnX + float64(i)*cfg.Trees.Step,
			Y:     ground,
			Scale: cfg.Trees.Scale + float64(i%2)*cfg.Trees.AltScale,
		}
	}
	return p
}

func lane(lc config.LaneConfig, ground float64) []Object {
	objs := make([]Object, lc.Count)
	for i := range objs {
		objs[i] = Object{
			X:      lc.SpawnX + float64(i)*lc.Step,
			Y:      ground + lc.YOffset,
			Size:   lc.Size,
			Active: true,
		}
	}
	return objs
}

// scroll moves an object left by speed and recycles it ahead of the view once
// it passes recycleX. It reports whether the object was recycled.
func scroll(o *Object, speed, recycleX, respawnX float64, jitter config.Jitter, rng Rand) bool {
	o.X -= speed
	if o.X >= recycleX {
		return false
	}
	o.X = respawnX + sample(rng, jitter)
	o.Active = true
	return true
}

// scrollTree moves a tree and wraps it to wrapX without jitter.
func scrollTree(t *Tree, speed, recycleX, wrapX float64) {
	t.X -= speed
	if t.X < recycleX {
		t.X = wrapX
	}
}

// clone returns a deep copy for read-only consumers.
func (p Pools) clone() Pools {
	return Pools{
		Carrots:      append([]Object(nil), p.Carrots...),
		CarrotGroups: append([]int(nil), p.CarrotGroups...),
		Obstacles:    append([]Object(nil), p.Obstacles...),
		Pits:         append([]Object(nil), p.Pits...),
		Trees:        append([]Tree(nil), p.Trees...),
	}
}
