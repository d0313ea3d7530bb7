// Package core provides fundamental types and utilities shared by the simulation
// and its front-ends. It contains no external dependencies (especially no Bubble Tea
// or Ebiten) to keep game logic pure and testable.
package core

// Rect represents an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Circle is a collision circle in world units.
type Circle struct {
	X, Y float64 // Center
	R    float64 // Radius
}

// Overlaps reports whether two circles intersect.
// Touching circles (distance equal to the sum of radii) do not overlap.
func (c Circle) Overlaps(other Circle) bool {
	dx := c.X - other.X
	dy := c.Y - other.Y
	rr := c.R + other.R
	return dx*dx+dy*dy < rr*rr
}

// WithinBand reports whether x lies strictly inside (center-half, center+half).
func WithinBand(x, center, half float64) bool {
	return x > center-half && x < center+half
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
