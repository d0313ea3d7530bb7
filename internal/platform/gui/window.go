// Package gui runs Run Rabbit in a desktop window using Ebitengine.
package gui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/run-rabbit/internal/core"
	"github.com/vovakirdan/run-rabbit/internal/games/rabbit"
)

// Window size in pixels. The world square [-1, 1] is stretched over it.
const (
	ScreenWidth  = 900
	ScreenHeight = 600
)

// Options configures a window session.
type Options struct {
	Title     string
	Listeners []core.StepListener
	// OnGameOver is called once per finished run.
	OnGameOver func(rabbit.RunStats)
}

// Window adapts a rabbit.Game to ebiten.Game.
type Window struct {
	game     *rabbit.Game
	opts     Options
	frame    core.InputFrame
	canvas   *canvas
	reported bool
}

// NewWindow wraps an already reset game.
func NewWindow(game *rabbit.Game, opts Options) *Window {
	return &Window{
		game:   game,
		opts:   opts,
		frame:  core.NewInputFrame(),
		canvas: newCanvas(),
	}
}

// keyBindings maps physical keys to simulation actions.
var keyBindings = []struct {
	key    ebiten.Key
	action core.Action
}{
	{ebiten.KeySpace, core.ActionJump},
	{ebiten.KeyArrowUp, core.ActionJump},
	{ebiten.KeyW, core.ActionJump},
	{ebiten.KeyP, core.ActionPause},
	{ebiten.KeyR, core.ActionRestart},
}

// fillFrame sets every action whose key was pressed this tick.
func fillFrame(frame *core.InputFrame, pressed func(ebiten.Key) bool) {
	for _, b := range keyBindings {
		if pressed(b.key) {
			frame.Set(b.action)
		}
	}
}

// Update advances the simulation by one tick.
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	w.frame.Clear()
	fillFrame(&w.frame, inpututil.IsKeyJustPressed)
	w.step(w.frame.Clone())
	return nil
}

func (w *Window) step(in core.InputFrame) core.StepResult {
	res := w.game.Step(in)
	for _, l := range w.opts.Listeners {
		l.OnStep(in, res)
	}
	for _, e := range res.Events {
		if e.Kind == core.EventRestarted {
			w.reported = false
		}
	}
	if res.State.GameOver && !w.reported {
		w.reported = true
		if w.opts.OnGameOver != nil {
			w.opts.OnGameOver(w.game.Stats())
		}
	}
	return res
}

// Draw paints the current snapshot.
func (w *Window) Draw(screen *ebiten.Image) {
	drawWorld(w.canvas, screen, w.game.Snapshot(), w.game.Config())
}

// Layout keeps the logical screen fixed.
func (w *Window) Layout(_, _ int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Run opens the window and blocks until it is closed.
func Run(game *rabbit.Game, runtime core.RuntimeConfig, opts Options) error {
	if opts.Title == "" {
		opts.Title = "Run Rabbit - Fox Chase Game"
	}
	game.Reset(runtime)

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle(opts.Title)
	if runtime.TickRate > 0 {
		ebiten.SetTPS(runtime.TickRate)
	}
	return ebiten.RunGame(NewWindow(game, opts))
}

func rgb(r, g, b float64) color.RGBA {
	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 0xff}
}
