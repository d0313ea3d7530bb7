package rabbit

import (
	"fmt"
	"math"

	"github.com/vovakirdan/run-rabbit/internal/core"
)

// Visual characters for rendering
const (
	CarrotChar   = '▼'
	ObstacleChar = '▓'
	GroundChar   = '═'
	SoilChar     = '░'
	CanopyChar   = '▲'
	TrunkChar    = '│'
)

// GameOverText is the banner shown when a run ends.
const GameOverText = "GAME OVER - PRESS R TO RESTART"

// Rabbit sprite rows, top to bottom. Legs alternate with the run phase.
var (
	earsRest   = "(\\_/)"
	earsRising = "(|_|)"
	face       = "(o.o)"
	legsA      = " / \\ "
	legsB      = " \\ / "
	legsAir    = " v v "
)

// Fox sprite rows; the nose sits at the fox's X.
var foxSprite = []string{
	" /\\_/\\  ",
	"(=o.o=)>",
}

// view maps world coordinates to screen cells.
type view struct {
	w, h int
}

func (v view) col(x float64) int {
	return int(math.Floor((x + 1) / 2 * float64(v.w)))
}

func (v view) row(y float64) int {
	return int(math.Floor((1 - y) / 2 * float64(v.h)))
}

// span returns the columns covered by [x-half, x+half].
func (v view) span(x, half float64) (int, int) {
	left, right := v.col(x-half), v.col(x+half)
	if right < left {
		right = left
	}
	return left, right
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	v := view{w: dst.Width(), h: dst.Height()}
	cfg := &g.cfg
	groundRow := v.row(cfg.Physics.GroundY)

	for _, t := range g.pools.Trees {
		drawTree(dst, v, t, groundRow)
	}

	// Ground and soil
	dst.DrawHLine(0, groundRow, dst.Width(), GroundChar, core.ColorGreen)
	for y := groundRow + 1; y < dst.Height(); y++ {
		dst.DrawHLine(0, y, dst.Width(), SoilChar, core.ColorDarkGreen)
	}

	for _, p := range g.pools.Pits {
		if !p.Active {
			continue
		}
		left, right := v.span(p.X, p.Size/2)
		for x := left; x <= right; x++ {
			for y := groundRow; y < min(groundRow+3, dst.Height()); y++ {
				dst.Set(x, y, ' ')
			}
		}
	}

	for _, c := range g.pools.Carrots {
		if c.Active {
			dst.SetColored(v.col(c.X), min(v.row(c.Y), groundRow-1), CarrotChar, core.ColorOrange)
		}
	}

	for _, o := range g.pools.Obstacles {
		if !o.Active {
			continue
		}
		left, right := v.span(o.X, o.Size)
		top := min(v.row(o.Y+o.Size/2), groundRow-1)
		for y := top; y < groundRow; y++ {
			dst.DrawHLine(left, y, right-left+1, ObstacleChar, core.ColorBrown)
		}
	}

	if g.fox.Chasing {
		g.drawFox(dst, v, groundRow)
	}
	g.drawRabbit(dst, v, groundRow)

	// Draw HUD
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", g.score), core.ColorBrightWhite)
	if g.fox.Chasing {
		chase := fmt.Sprintf(" CHASE! %ds remaining ", g.fox.SecondsLeft(g.runtime.TickRate))
		dst.DrawTextColored(2, 1, chase, core.ColorBrightRed)
	}

	// Show speed if progression is enabled
	if g.difficulty != nil && g.difficulty.IsEnabled() {
		levelText := fmt.Sprintf(" Spd: x%.2f ", g.worldSpeed()/g.cfg.World.Speed)
		dst.DrawText(dst.Width()-len(levelText)-2, 0, levelText)
	}

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume", core.ColorBrightYellow)
	}

	if g.gameOver {
		g.drawCenteredMessage(dst, GameOverText, fmt.Sprintf("Score: %d  |  %s", g.score, Describe(g.reason)), core.ColorBrightRed)
	}
}

func drawTree(dst *core.Screen, v view, t Tree, groundRow int) {
	x := v.col(t.X)
	trunk := max(1, int(math.Round(t.Scale*2)))
	for i := 1; i <= trunk; i++ {
		dst.SetColored(x, groundRow-i, TrunkChar, core.ColorBrown)
	}
	top := groundRow - trunk - 1
	dst.DrawHLine(x-2, top, 5, CanopyChar, core.ColorDarkGreen)
	dst.DrawHLine(x-1, top-1, 3, CanopyChar, core.ColorDarkGreen)
	dst.SetColored(x, top-2, CanopyChar, core.ColorDarkGreen)
}

// drawRabbit renders the rabbit with its feet on the row above its center.
func (g *Game) drawRabbit(dst *core.Screen, v view, groundRow int) {
	r := g.rabbit
	feet := min(v.row(r.Y), groundRow) - 1
	x := v.col(g.cfg.Rabbit.X) - 2

	ears := earsRest
	if r.VelocityY > 0 {
		ears = earsRising
	}
	legs := legsAir
	if r.OnGround {
		legs = legsA
		if int(r.RunPhase)%2 == 1 {
			legs = legsB
		}
	}

	dst.DrawTextColored(x, feet-2, ears, core.ColorBrightWhite)
	dst.DrawTextColored(x, feet-1, face, core.ColorBrightWhite)
	dst.DrawTextColored(x, feet, legs, core.ColorBrightWhite)
}

func (g *Game) drawFox(dst *core.Screen, v view, groundRow int) {
	nose := v.col(g.fox.X)
	width := len([]rune(foxSprite[len(foxSprite)-1]))
	for i, line := range foxSprite {
		dst.DrawTextColored(nose-width+1, groundRow-len(foxSprite)+i, line, core.ColorOrange)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), c)

	// Draw text
	dst.DrawTextCentered(boxY+1, title, c)
	dst.DrawTextCentered(boxY+3, subtitle, core.ColorDefault)
}

// Describe returns the player-facing cause of a game over.
func Describe(r core.EndReason) string {
	switch r {
	case core.ReasonPit:
		return "Fell into a pit"
	case core.ReasonCaught:
		return "Caught by the fox"
	case core.ReasonSecondStrike:
		return "Tripped twice during the chase"
	default:
		return "Run over"
	}
}
