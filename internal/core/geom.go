// Package core provides fundamental types and utilities for the tile runtime.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Point is a 2D integer coordinate, in pixels or grid cells depending on use.
type Point struct {
	X, Y int
}

// Rectangle is an axis-aligned box in pixel units.
// Corner points include the far edge: the bottom-right corner is (X+Width, Y+Height).
type Rectangle struct {
	X, Y          int
	Width, Height int
}

// NewRectangle creates a new rectangle with the given position and dimensions.
func NewRectangle(x, y, w, h int) Rectangle {
	return Rectangle{X: x, Y: y, Width: w, Height: h}
}

// SetTopLeft moves the rectangle so its top-left corner is at (x, y).
func (r *Rectangle) SetTopLeft(x, y int) {
	r.X = x
	r.Y = y
}

// SetCenterPoint moves the rectangle so it is centered on (x, y).
func (r *Rectangle) SetCenterPoint(x, y int) {
	r.X = x - r.Width/2
	r.Y = y - r.Height/2
}

// TopLeft returns the top-left corner.
func (r Rectangle) TopLeft() Point {
	return Point{r.X, r.Y}
}

// TopRight returns the top-right corner.
func (r Rectangle) TopRight() Point {
	return Point{r.X + r.Width, r.Y}
}

// BottomLeft returns the bottom-left corner.
func (r Rectangle) BottomLeft() Point {
	return Point{r.X, r.Y + r.Height}
}

// BottomRight returns the bottom-right corner.
func (r Rectangle) BottomRight() Point {
	return Point{r.X + r.Width, r.Y + r.Height}
}

// Corners returns the four corners in scan order: top-left, top-right,
// bottom-left, bottom-right.
func (r Rectangle) Corners() [4]Point {
	return [4]Point{r.TopLeft(), r.TopRight(), r.BottomLeft(), r.BottomRight()}
}

// Offset returns a copy of the rectangle translated by (dx, dy).
func (r Rectangle) Offset(dx, dy int) Rectangle {
	return Rectangle{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Empty reports whether the rectangle covers no area.
func (r Rectangle) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersects returns true if this rectangle overlaps with another.
// Edges are exclusive, so touching rectangles do not intersect.
func (r Rectangle) Intersects(other Rectangle) bool {
	if r.X >= other.X+other.Width || other.X >= r.X+r.Width {
		return false
	}
	if r.Y >= other.Y+other.Height || other.Y >= r.Y+r.Height {
		return false
	}
	return true
}

// Union returns the smallest rectangle containing both rectangles.
// An empty rectangle does not contribute.
func (r Rectangle) Union(other Rectangle) Rectangle {
	if r.Empty() {
		return other
	}
	if other.Empty() {
		return r
	}
	x0 := min(r.X, other.X)
	y0 := min(r.Y, other.Y)
	x1 := max(r.X+r.Width, other.X+other.Width)
	y1 := max(r.Y+r.Height, other.Y+other.Height)
	return Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Anchor is anything with a pixel position a bounding box can follow.
type Anchor interface {
	Position() (x, y int)
}

// BoundingBox is an axis-aligned box kept at a fixed offset from an anchor.
// The anchor owns the box; the box only reads the anchor's position.
type BoundingBox struct {
	Rectangle
	DX, DY int

	anchor Anchor
}

// NewBoundingBox creates a box of the given size at offset (dx, dy) from anchor.
func NewBoundingBox(anchor Anchor, dx, dy, w, h int) *BoundingBox {
	ax, ay := anchor.Position()
	return &BoundingBox{
		Rectangle: NewRectangle(ax+dx, ay+dy, w, h),
		DX:        dx,
		DY:        dy,
		anchor:    anchor,
	}
}

// Update re-derives the box position from the anchor.
func (b *BoundingBox) Update() {
	ax, ay := b.anchor.Position()
	b.SetTopLeft(ax+b.DX, ay+b.DY)
}

// At returns the rectangle the box would occupy if its anchor were at (x, y).
func (b *BoundingBox) At(x, y int) Rectangle {
	return NewRectangle(x+b.DX, y+b.DY, b.Width, b.Height)
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// FloorDiv divides rounding toward negative infinity, so pixel -1 maps to
// cell -1 rather than cell 0.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
