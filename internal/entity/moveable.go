// Package entity implements moveable sprites: a position, a collider box,
// an animation state machine, and tile collision against the active map.
package entity

import (
	"fmt"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/fsm"
	"github.com/vovakirdan/tilequest/internal/tilemap"
	"github.com/vovakirdan/tilequest/internal/trace"
)

// Default collider, relative to the sprite's top-left corner.
const (
	DefaultColliderDX = 2
	DefaultColliderDY = 2
	DefaultColliderW  = 12
	DefaultColliderH  = 12
)

// World is what an entity needs from the running session.
type World interface {
	Map() *tilemap.TileMap
	Config() core.RuntimeConfig
}

// Controller decides how an entity wants to move and which animation fits.
// Player input and AI are both controllers.
type Controller interface {
	// Movement returns the desired displacement for this tick.
	// Collision is resolved one axis at a time, so diagonals are not swept.
	Movement(e *Moveable) (dx, dy int)
	// Animate picks an animation for the displacement left after collision.
	Animate(e *Moveable, dx, dy int) error
}

// Moveable is a sprite that moves under a Controller and collides with
// the solid tiles of the world's map.
type Moveable struct {
	Name       string
	X, Y       int
	Sprite     *core.Sprite
	Collider   *core.BoundingBox
	Animations *fsm.Machine
	Controller Controller

	world World
}

// New creates an entity at (x, y) with the default collider.
func New(world World, sprite *core.Sprite, x, y int) *Moveable {
	e := &Moveable{
		Name:       "entity",
		X:          x,
		Y:          y,
		Sprite:     sprite,
		Animations: fsm.NewMachine("entity"),
		world:      world,
	}
	e.Collider = core.NewBoundingBox(e, DefaultColliderDX, DefaultColliderDY, DefaultColliderW, DefaultColliderH)
	if sprite != nil {
		sprite.Move(x, y)
	}
	return e
}

// SetCollider replaces the collider with one at offset (dx, dy) of size w x h.
func (e *Moveable) SetCollider(dx, dy, w, h int) {
	e.Collider = core.NewBoundingBox(e, dx, dy, w, h)
}

// Position implements core.Anchor and tilemap.Occupant.
func (e *Moveable) Position() (x, y int) {
	return e.X, e.Y
}

// Bounds implements core.Layer. An entity without a sprite has empty bounds
// at its position.
func (e *Moveable) Bounds() core.Rectangle {
	if e.Sprite == nil {
		return core.NewRectangle(e.X, e.Y, 0, 0)
	}
	return e.Sprite.Bounds()
}

// Draw implements core.Layer.
func (e *Moveable) Draw(v *core.Viewport) {
	if e.Sprite == nil {
		return
	}
	e.Sprite.Draw(v)
}

func (e *Moveable) tileSize() int {
	if m := e.world.Map(); m != nil && m.TileSize() > 0 {
		return m.TileSize()
	}
	return e.world.Config().SpriteSize
}

// TilesInCollider returns the grid cells under the collider's corners with
// the entity displaced by (dx, dy). Cells come in corner order (top-left,
// top-right, bottom-left, bottom-right) without duplicates, and corners
// outside the grid are left out.
func (e *Moveable) TilesInCollider(dx, dy int) []core.Point {
	return e.cellsUnder(e.Collider.At(e.X+dx, e.Y+dy))
}

func (e *Moveable) cellsUnder(r core.Rectangle) []core.Point {
	m := e.world.Map()
	if m == nil {
		return nil
	}
	size := e.tileSize()

	tiles := make([]core.Point, 0, 4)
	for _, corner := range r.Corners() {
		cell := core.Point{X: core.FloorDiv(corner.X, size), Y: core.FloorDiv(corner.Y, size)}
		if !m.InBounds(cell.X, cell.Y) || containsPoint(tiles, cell) {
			continue
		}
		tiles = append(tiles, cell)
	}
	return tiles
}

func containsPoint(ps []core.Point, p core.Point) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}

// CheckTileCollision resolves (dx, dy) against the map one axis at a time.
// On the first solid cell in corner order the entity is snapped flush
// against it and that axis is zeroed. Trigger cells fire the map's trigger
// handler and do not stop the scan. The y axis is probed from the resolved x.
func (e *Moveable) CheckTileCollision(dx, dy int) (int, int) {
	m := e.world.Map()
	if m == nil {
		return dx, dy
	}
	size := e.tileSize()
	c := e.Collider

	if dx != 0 {
		for _, t := range e.cellsUnder(c.At(e.X+dx, e.Y)) {
			tileType := m.Tile(t.X, t.Y)
			if m.IsSolid(tileType) {
				if dx > 0 {
					e.X = t.X*size - c.DX - c.Width - 1
				} else {
					e.X = (t.X+1)*size - c.DX + 1
				}
				trace.Emitf("collide", e.Name, "x blocked by (%d,%d) type %d", t.X, t.Y, tileType)
				dx = 0
				break
			}
			if m.IsTrigger(tileType) {
				m.HandleTrigger(e, t.X, t.Y, tileType)
			}
		}
	}

	if dy != 0 {
		for _, t := range e.cellsUnder(c.At(e.X+dx, e.Y+dy)) {
			tileType := m.Tile(t.X, t.Y)
			if m.IsSolid(tileType) {
				if dy > 0 {
					e.Y = t.Y*size - c.DY - c.Height - 1
				} else {
					e.Y = (t.Y+1)*size - c.DY + 1
				}
				trace.Emitf("collide", e.Name, "y blocked by (%d,%d) type %d", t.X, t.Y, tileType)
				dy = 0
				break
			}
			if m.IsTrigger(tileType) {
				m.HandleTrigger(e, t.X, t.Y, tileType)
			}
		}
	}

	return dx, dy
}

// ApplyMovementAndAnims moves the entity by (dx, dy) clamped to the display,
// syncs the sprite and collider, and advances the animation by one tick.
func (e *Moveable) ApplyMovementAndAnims(dx, dy int) error {
	cfg := e.world.Config()
	e.X = core.Clamp(e.X+dx, 0, cfg.BounceX())
	e.Y = core.Clamp(e.Y+dy, 0, cfg.BounceY())

	if e.Sprite != nil {
		e.Sprite.Move(e.X, e.Y)
	}
	e.Collider.Update()

	if err := e.Animations.Update(); err != nil {
		return fmt.Errorf("entity: %s animation: %w", e.Name, err)
	}
	return nil
}

// Update runs one tick: movement intent, collision, animation choice, commit.
func (e *Moveable) Update() error {
	var dx, dy int
	if e.Controller != nil {
		dx, dy = e.Controller.Movement(e)
	}

	dx, dy = e.CheckTileCollision(dx, dy)

	if e.Controller != nil {
		if err := e.Controller.Animate(e, dx, dy); err != nil {
			return fmt.Errorf("entity: %s: %w", e.Name, err)
		}
	}

	return e.ApplyMovementAndAnims(dx, dy)
}
