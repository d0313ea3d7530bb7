package gui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/run-rabbit/internal/config"
	"github.com/vovakirdan/run-rabbit/internal/games/rabbit"
)

var (
	skyColor      = rgb(0.5, 0.8, 1.0)
	grassColor    = rgb(0.2, 0.7, 0.2)
	pitColor      = rgb(0.15, 0.5, 0.1)
	trunkColor    = rgb(0.55, 0.27, 0.07)
	leafColor     = rgb(0.0, 0.6, 0.0)
	carrotColor   = rgb(1.0, 0.5, 0.0)
	carrotTop     = rgb(0.0, 0.8, 0.0)
	obstacleColor = rgb(0.5, 0.3, 0.1)
	foxBody       = rgb(1.0, 0.4, 0.2)
	foxHead       = rgb(1.0, 0.5, 0.2)
	foxEar        = rgb(1.0, 0.4, 0.1)
	foxEarInner   = rgb(1.0, 0.7, 0.5)
	whiskerColor  = rgb(0.8, 0.8, 0.8)
	furColor      = rgb(0.95, 0.95, 0.95)
	legColor      = rgb(0.9, 0.9, 0.9)
	headColor     = rgb(0.97, 0.97, 0.97)
	innerEarColor = rgb(1.0, 0.85, 0.85)
	noseColor     = rgb(0.9, 0.6, 0.6)
	black         = rgb(0, 0, 0)
	white         = rgb(1, 1, 1)
)

// ovalSegments is the polygon resolution of ovals and circles.
const ovalSegments = 32

// toScreen maps a world point to pixels.
func toScreen(x, y float64) (float32, float32) {
	return float32((x + 1) / 2 * ScreenWidth), float32((1 - y) / 2 * ScreenHeight)
}

// toPixels maps a world extent to pixels.
func toPixels(dx, dy float64) (float32, float32) {
	return float32(dx / 2 * ScreenWidth), float32(dy / 2 * ScreenHeight)
}

// ovalPoints returns the outline of an axis-aligned oval in world coordinates.
func ovalPoints(cx, cy, rx, ry float64) [][2]float64 {
	pts := make([][2]float64, ovalSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / ovalSegments
		pts[i] = [2]float64{cx + math.Cos(a)*rx, cy + math.Sin(a)*ry}
	}
	return pts
}

// canvas fills convex polygons through DrawTriangles.
type canvas struct {
	src      *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func newCanvas() *canvas {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return &canvas{src: img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)}
}

func (c *canvas) polygon(dst *ebiten.Image, clr color.RGBA, pts ...[2]float64) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	for i, p := range pts {
		x, y := toScreen(p[0], p[1])
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()

	c.vertices, c.indices = path.AppendVerticesAndIndicesForFilling(c.vertices[:0], c.indices[:0])
	for i := range c.vertices {
		c.vertices[i].SrcX = 1
		c.vertices[i].SrcY = 1
		c.vertices[i].ColorR = float32(clr.R) / 0xff
		c.vertices[i].ColorG = float32(clr.G) / 0xff
		c.vertices[i].ColorB = float32(clr.B) / 0xff
		c.vertices[i].ColorA = 1
	}
	dst.DrawTriangles(c.vertices, c.indices, c.src, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (c *canvas) oval(dst *ebiten.Image, clr color.RGBA, cx, cy, rx, ry float64) {
	c.polygon(dst, clr, ovalPoints(cx, cy, rx, ry)...)
}

func circle(dst *ebiten.Image, clr color.RGBA, cx, cy, r float64) {
	x, y := toScreen(cx, cy)
	pr, _ := toPixels(r, r)
	vector.DrawFilledCircle(dst, x, y, pr, clr, true)
}

// rect fills a rectangle centered on (cx, cy).
func rect(dst *ebiten.Image, clr color.RGBA, cx, cy, w, h float64) {
	x, y := toScreen(cx-w/2, cy+h/2)
	pw, ph := toPixels(w, h)
	vector.DrawFilledRect(dst, x, y, pw, ph, clr, false)
}

func line(dst *ebiten.Image, clr color.RGBA, x0, y0, x1, y1 float64) {
	ax, ay := toScreen(x0, y0)
	bx, by := toScreen(x1, y1)
	vector.StrokeLine(dst, ax, ay, bx, by, 1, clr, true)
}

func drawWorld(c *canvas, dst *ebiten.Image, s rabbit.Snapshot, cfg config.RabbitConfig) {
	ground := cfg.Physics.GroundY

	dst.Fill(skyColor)
	_, gy := toScreen(0, ground)
	vector.DrawFilledRect(dst, 0, gy, ScreenWidth, ScreenHeight-gy, grassColor, false)

	for _, p := range s.Pools.Pits {
		if p.Active {
			c.oval(dst, pitColor, p.X, ground, p.Size, 0.02)
		}
	}
	for _, t := range s.Pools.Trees {
		drawTree(c, dst, t)
	}
	for _, k := range s.Pools.Carrots {
		if k.Active {
			c.oval(dst, carrotColor, k.X, k.Y-0.02, 0.02, 0.05)
			c.oval(dst, carrotTop, k.X, k.Y+0.025, 0.015, 0.03)
		}
	}
	for _, o := range s.Pools.Obstacles {
		if o.Active {
			rect(dst, obstacleColor, o.X, o.Y, o.Size*2, o.Size*0.5)
		}
	}

	if s.Fox.Chasing {
		drawFox(c, dst, s.Fox, ground)
	}
	drawRabbit(c, dst, s.RabbitX, s.Rabbit)
	drawHUD(dst, s)
}

func drawTree(c *canvas, dst *ebiten.Image, t rabbit.Tree) {
	x, y, k := t.X, t.Y, t.Scale
	c.oval(dst, trunkColor, x, y, 0.02*k, 0.05*k)
	for i := range 3 {
		half := (0.05 - 0.01*float64(i)) * k
		base := y + (0.03+0.04*float64(i))*k
		top := y + (0.12+0.04*float64(i))*k
		c.polygon(dst, leafColor, [2]float64{x - half, base}, [2]float64{x + half, base}, [2]float64{x, top})
	}
}

func drawRabbit(c *canvas, dst *ebiten.Image, x float64, r rabbit.Rabbit) {
	y := r.Y
	legSwing := 0.0
	if r.OnGround {
		legSwing = math.Sin(r.RunPhase) * 0.025
	}
	earBounce := -r.VelocityY * 0.4
	tilt := math.Sin(r.RunPhase*1.5) * 0.2

	c.oval(dst, furColor, x, y, 0.085, 0.055)
	c.oval(dst, legColor, x-0.045, y-0.04+legSwing, 0.045, 0.03)
	c.oval(dst, legColor, x+0.025, y-0.045-legSwing, 0.022, 0.028)
	c.oval(dst, headColor, x+0.095, y+0.03, 0.04, 0.035)
	c.oval(dst, furColor, x+0.085+tilt*0.02, y+0.08+earBounce, 0.015, 0.045)
	c.oval(dst, furColor, x+0.115-tilt*0.02, y+0.08+earBounce, 0.015, 0.045)
	c.oval(dst, innerEarColor, x+0.085+tilt*0.02, y+0.08+earBounce, 0.007, 0.03)
	c.oval(dst, innerEarColor, x+0.115-tilt*0.02, y+0.08+earBounce, 0.007, 0.03)
	circle(dst, black, x+0.105, y+0.04, 0.005)
	circle(dst, noseColor, x+0.13, y+0.025, 0.004)
	circle(dst, white, x-0.10, y+0.02, 0.02)
}

func drawFox(c *canvas, dst *ebiten.Image, f rabbit.Fox, ground float64) {
	x, y := f.X, f.Y

	c.oval(dst, foxBody, x, y, 0.09, 0.05)
	c.oval(dst, foxHead, x+0.08, y+0.03, 0.06, 0.05)

	for _, ear := range []float64{0.05, 0.13} {
		c.polygon(dst, foxEar, [2]float64{x + ear - 0.02, y + 0.05}, [2]float64{x + ear + 0.02, y + 0.05}, [2]float64{x + ear, y + 0.12})
		c.polygon(dst, foxEarInner, [2]float64{x + ear - 0.01, y + 0.06}, [2]float64{x + ear + 0.01, y + 0.06}, [2]float64{x + ear, y + 0.10})
		c.oval(dst, foxHead, x+ear, y+0.04, 0.02, 0.01)
	}

	for _, eye := range []float64{0.07, 0.11} {
		circle(dst, white, x+eye, y+0.04, 0.008)
		circle(dst, black, x+eye, y+0.04, 0.004)
		circle(dst, white, x+eye-0.002, y+0.042, 0.0015)
	}

	c.polygon(dst, rgb(0.1, 0.1, 0.1), [2]float64{x + 0.13, y + 0.03}, [2]float64{x + 0.14, y + 0.025}, [2]float64{x + 0.135, y + 0.02})
	for _, dy := range []float64{-0.005, 0.005} {
		line(dst, whiskerColor, x+0.12, y+0.03, x+0.10, y+0.03+dy)
		line(dst, whiskerColor, x+0.15, y+0.03, x+0.17, y+0.03+dy)
	}

	rect(dst, foxBody, x+0.03, ground+0.02, 0.02, 0.04)
	rect(dst, foxBody, x-0.05, ground+0.02, 0.02, 0.04)

	tail := [][2]float64{{x - 0.12, y - 0.01}}
	for i := 0; i <= ovalSegments/2; i++ {
		a := math.Pi * float64(i) / (ovalSegments / 2)
		tail = append(tail, [2]float64{x - 0.12 + math.Cos(a)*0.06, y - 0.01 + math.Sin(a)*0.03})
	}
	c.polygon(dst, foxHead, tail...)
	circle(dst, white, x-0.17, y-0.01, 0.015)
}

func drawHUD(dst *ebiten.Image, s rabbit.Snapshot) {
	x, y := toScreen(-0.95, 0.8)
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("Score: %d", s.Score), int(x), int(y))

	if s.Fox.Chasing {
		_, cy := toScreen(0, 0.7)
		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("CHASE! %ds remaining", s.Fox.SecondsLeft(s.TickRate)), int(x), int(cy))
	}

	switch {
	case s.GameOver:
		centered(dst, rabbit.GameOverText, 0)
		centered(dst, rabbit.Describe(s.Reason), -0.06)
	case s.Paused:
		centered(dst, "PAUSED - PRESS P TO RESUME", 0)
	}
}

// debugGlyphWidth is the advance of the ebitenutil debug font.
const debugGlyphWidth = 6

func centered(dst *ebiten.Image, text string, y float64) {
	_, py := toScreen(0, y)
	ebitenutil.DebugPrintAt(dst, text, (ScreenWidth-len(text)*debugGlyphWidth)/2, int(py))
}
