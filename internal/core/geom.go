// Package core provides fundamental types and utilities for the lanerush platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect is an integer rectangle in screen cells.
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

// RectF is an axis-aligned box in field units, described by its edges.
// Used for collision hitboxes.
type RectF struct {
	Left, Right float64
	Top, Bottom float64
}

// Overlaps reports whether two boxes intersect. Edges are inclusive:
// boxes that only touch count as overlapping.
func (r RectF) Overlaps(other RectF) bool {
	// Disjoint if one box lies entirely beyond the other's opposite edge
	if r.Right < other.Left || r.Left > other.Right {
		return false
	}
	if r.Bottom < other.Top || r.Top > other.Bottom {
		return false
	}
	return true
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

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
