package core

import (
	"strings"
)

// Cell is a single character on the screen with its color.
type Cell struct {
	Rune  rune
	Color Color
}

// Screen is a 2D character buffer the renderer composes layers into.
// It decouples drawing from the terminal, so layers only deal with runes.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.cells = make([][]Cell, height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, width)
	}
	s.Clear()
	return s
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Clear fills the entire screen with spaces.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

// Set places a rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune, c Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = Cell{Rune: r, Color: c}
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{Rune: ' '}
	}
	return s.cells[y][x]
}

// String converts the screen buffer to plain text, one line per row.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// Default pixel size of one terminal cell. A 16px tile covers 4x2 cells,
// which keeps tiles roughly square in most terminal fonts.
const (
	DefaultCellW = 4
	DefaultCellH = 8
)

// Viewport projects display pixels onto a Screen.
// One cell covers CellW x CellH pixels; drawing is clipped to Clip.
type Viewport struct {
	Screen *Screen
	CellW  int
	CellH  int
	Clip   Rectangle // in pixels
}

// NewViewport creates a viewport whose clip covers the whole screen.
func NewViewport(s *Screen, cellW, cellH int) *Viewport {
	return &Viewport{
		Screen: s,
		CellW:  cellW,
		CellH:  cellH,
		Clip:   NewRectangle(0, 0, s.Width()*cellW, s.Height()*cellH),
	}
}

// cellSpan converts the pixel rectangle r, clipped, to a half-open cell range.
func (v *Viewport) cellSpan(r Rectangle) (x0, y0, x1, y1 int) {
	clip := v.Clip
	px0 := max(r.X, clip.X)
	py0 := max(r.Y, clip.Y)
	px1 := min(r.X+r.Width, clip.X+clip.Width)
	py1 := min(r.Y+r.Height, clip.Y+clip.Height)
	if px0 >= px1 || py0 >= py1 {
		return 0, 0, 0, 0
	}
	x0 = FloorDiv(px0, v.CellW)
	y0 = FloorDiv(py0, v.CellH)
	x1 = FloorDiv(px1+v.CellW-1, v.CellW)
	y1 = FloorDiv(py1+v.CellH-1, v.CellH)
	return x0, y0, x1, y1
}

// Fill paints every cell touched by the pixel rectangle r.
func (v *Viewport) Fill(r Rectangle, ch rune, c Color) {
	x0, y0, x1, y1 := v.cellSpan(r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			v.Screen.Set(x, y, ch, c)
		}
	}
}

// Blank clears every cell touched by the pixel rectangle r.
func (v *Viewport) Blank(r Rectangle) {
	v.Fill(r, ' ', ColorDefault)
}

// Text writes s starting at pixel (x, y), one cell per rune.
func (v *Viewport) Text(x, y int, s string, c Color) {
	cx := FloorDiv(x, v.CellW)
	cy := FloorDiv(y, v.CellH)
	for i, r := range []rune(s) {
		px := (cx + i) * v.CellW
		py := cy * v.CellH
		if !v.Clip.Intersects(NewRectangle(px, py, v.CellW, v.CellH)) {
			continue
		}
		v.Screen.Set(cx+i, cy, r, c)
	}
}
