// Package tilemap provides the tile grid used for drawing the level and for
// collision queries, plus its transient camera-shake effect.
package tilemap

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/trace"
)

// DefaultShakeAmount is the shake displacement in pixels.
const DefaultShakeAmount = 4

// DefaultFramesToShake is how many ticks a shake lasts.
const DefaultFramesToShake = 4

// Tile describes how a tile-type code is drawn.
type Tile struct {
	Glyph rune
	Color core.Color
}

// Palette maps tile-type codes to their look. Missing codes draw blank.
type Palette map[int]Tile

// Occupant is whatever stands on a tile when a trigger fires.
type Occupant interface {
	Position() (x, y int)
}

// TriggerFunc handles an occupant overlapping a trigger tile at cell (x, y).
type TriggerFunc func(who Occupant, x, y, tileType int)

// Refresher is told when the map needs a full-screen redraw.
type Refresher interface {
	ForceRefresh()
}

// DimensionMismatchError reports row strings that do not match the grid.
// Row is -1 when the row count itself is wrong.
type DimensionMismatchError struct {
	Row      int
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("tilemap: got %d rows, expected %d", e.Actual, e.Expected)
	}
	return fmt.Sprintf("tilemap: row %d has length %d, expected %d", e.Row, e.Actual, e.Expected)
}

// Unwrap ties the error to core.ErrConfiguration.
func (e *DimensionMismatchError) Unwrap() error { return core.ErrConfiguration }

// InvalidTileError reports a character that is not a hex digit.
type InvalidTileError struct {
	Row, Col int
	Char     rune
}

func (e *InvalidTileError) Error() string {
	return fmt.Sprintf("tilemap: invalid tile %q at row %d column %d", e.Char, e.Row, e.Col)
}

// Unwrap ties the error to core.ErrConfiguration.
func (e *InvalidTileError) Unwrap() error { return core.ErrConfiguration }

// TileMap is a width x height grid of tile-type codes.
// Cells are stored in row-major order: index = y*width + x.
type TileMap struct {
	width    int
	height   int
	tileSize int
	cells    []int

	solid   map[int]bool
	trigger map[int]bool

	// x, y is the rest position; shakeOffset is added while shaking.
	x, y        int
	shakeOffset int

	shaking       int
	FramesToShake int
	curShakeFrame int

	Palette   Palette
	OnTrigger TriggerFunc
	refresher Refresher
}

// New creates an all-zero map of width x height tiles of tileSize pixels.
func New(width, height, tileSize int) *TileMap {
	return &TileMap{
		width:         width,
		height:        height,
		tileSize:      tileSize,
		cells:         make([]int, width*height),
		solid:         make(map[int]bool),
		trigger:       make(map[int]bool),
		FramesToShake: DefaultFramesToShake,
		Palette:       make(Palette),
	}
}

// Width returns the grid width in tiles.
func (m *TileMap) Width() int { return m.width }

// Height returns the grid height in tiles.
func (m *TileMap) Height() int { return m.height }

// TileSize returns the edge length of one tile in pixels.
func (m *TileMap) TileSize() int { return m.tileSize }

// SetFromRowStrings fills the grid from one string per row, one hex digit
// (0-F) per column. The grid is left untouched on error.
func (m *TileMap) SetFromRowStrings(rows []string) error {
	if len(rows) != m.height {
		return &DimensionMismatchError{Row: -1, Expected: m.height, Actual: len(rows)}
	}

	cells := make([]int, m.width*m.height)
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != m.width {
			return &DimensionMismatchError{Row: y, Expected: m.width, Actual: len(runes)}
		}
		for x, r := range runes {
			v, err := strconv.ParseUint(string(r), 16, 8)
			if err != nil {
				return &InvalidTileError{Row: y, Col: x, Char: r}
			}
			cells[y*m.width+x] = int(v)
		}
	}

	m.cells = cells
	return nil
}

// InBounds returns true if (x, y) is a cell of the grid.
func (m *TileMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// Tile returns the tile-type code at (x, y). Callers bounds-check first;
// out-of-range cells read as 0.
func (m *TileMap) Tile(x, y int) int {
	if !m.InBounds(x, y) {
		return 0
	}
	return m.cells[y*m.width+x]
}

// SetTile sets the tile-type code at (x, y). Out-of-range cells are ignored.
func (m *TileMap) SetTile(x, y, tileType int) {
	if m.InBounds(x, y) {
		m.cells[y*m.width+x] = tileType
	}
}

// SetSolidTypes replaces the set of tile types that block movement.
func (m *TileMap) SetSolidTypes(types ...int) {
	m.solid = make(map[int]bool, len(types))
	for _, t := range types {
		m.solid[t] = true
	}
}

// SetTriggerTypes replaces the set of tile types that fire HandleTrigger.
func (m *TileMap) SetTriggerTypes(types ...int) {
	m.trigger = make(map[int]bool, len(types))
	for _, t := range types {
		m.trigger[t] = true
	}
}

// IsSolid reports whether tileType blocks movement.
func (m *TileMap) IsSolid(tileType int) bool {
	return m.solid[tileType]
}

// IsTrigger reports whether tileType fires HandleTrigger.
func (m *TileMap) IsTrigger(tileType int) bool {
	return m.trigger[tileType]
}

// HandleTrigger runs the configured trigger handler, if any.
func (m *TileMap) HandleTrigger(who Occupant, x, y, tileType int) {
	trace.Emitf("trigger", "tilemap", "cell (%d,%d) type %d", x, y, tileType)
	if m.OnTrigger != nil {
		m.OnTrigger(who, x, y, tileType)
	}
}

// AttachRefresher sets who is told to redraw the full screen while shaking.
func (m *TileMap) AttachRefresher(r Refresher) {
	m.refresher = r
}

// Shake starts a horizontal shake of the given amplitude for FramesToShake ticks.
func (m *TileMap) Shake(amount int) {
	m.shaking = amount
	m.curShakeFrame = 0
}

// Shaking reports whether a shake is in progress.
func (m *TileMap) Shaking() bool {
	return m.shaking != 0
}

// Update advances the shake effect by one tick.
func (m *TileMap) Update() error {
	if m.shaking == 0 {
		// Settle back to the rest position the tick after a shake ends.
		if m.shakeOffset != 0 {
			m.shakeOffset = 0
			m.forceRefresh()
		}
		return nil
	}

	m.forceRefresh()
	if m.curShakeFrame%2 == 0 {
		m.shakeOffset = m.shaking
	} else {
		m.shakeOffset = -m.shaking
	}

	m.curShakeFrame++
	if m.curShakeFrame >= m.FramesToShake {
		m.curShakeFrame = 0
		m.shaking = 0
	}
	return nil
}

func (m *TileMap) forceRefresh() {
	if m.refresher != nil {
		m.refresher.ForceRefresh()
	}
}

// Move sets the map's rest position on the display.
func (m *TileMap) Move(x, y int) {
	m.x = x
	m.y = y
}

// Position returns the drawn position, including any shake displacement.
func (m *TileMap) Position() (x, y int) {
	return m.x + m.shakeOffset, m.y
}

// Bounds implements core.Layer.
func (m *TileMap) Bounds() core.Rectangle {
	x, y := m.Position()
	return core.NewRectangle(x, y, m.width*m.tileSize, m.height*m.tileSize)
}

// Draw implements core.Layer.
func (m *TileMap) Draw(v *core.Viewport) {
	ox, oy := m.Position()
	for ty := 0; ty < m.height; ty++ {
		for tx := 0; tx < m.width; tx++ {
			tile, ok := m.Palette[m.cells[ty*m.width+tx]]
			if !ok {
				continue
			}
			r := core.NewRectangle(ox+tx*m.tileSize, oy+ty*m.tileSize, m.tileSize, m.tileSize)
			v.Fill(r, tile.Glyph, tile.Color)
		}
	}
}
