package tui

import (
	"github.com/vovakirdan/tilequest/internal/core"
)

// Renderer composes session layers into a terminal-cell screen.
// It implements session.Renderer.
type Renderer struct {
	screen *core.Screen
	view   *core.Viewport
	bounds core.Rectangle

	// last holds where each sprite was drawn, so moving it also repaints
	// the area it left.
	last map[core.Layer]core.Rectangle

	FullRedraws    int
	PartialRedraws int
}

// NewRenderer creates a renderer for the display described by rc.
func NewRenderer(rc core.RuntimeConfig) *Renderer {
	cols := (rc.GameW + core.DefaultCellW - 1) / core.DefaultCellW
	rows := (rc.GameH + core.DefaultCellH - 1) / core.DefaultCellH
	screen := core.NewScreen(cols, rows)
	return &Renderer{
		screen: screen,
		view:   core.NewViewport(screen, core.DefaultCellW, core.DefaultCellH),
		bounds: rc.Bounds(),
		last:   make(map[core.Layer]core.Rectangle),
	}
}

// Screen returns the cell buffer the renderer draws into.
func (r *Renderer) Screen() *core.Screen { return r.screen }

// RenderFullRegion repaints region from every layer.
func (r *Renderer) RenderFullRegion(layers []core.Layer, region core.Rectangle) {
	r.paint(layers, region)
	for _, l := range layers {
		r.last[l] = l.Bounds()
	}
	r.FullRedraws++
}

// RenderIncremental repaints only the old and new area of each sprite.
func (r *Renderer) RenderIncremental(layers, sprites []core.Layer) {
	for _, sp := range sprites {
		cur := sp.Bounds()
		dirty := cur
		if prev, ok := r.last[sp]; ok {
			dirty = dirty.Union(prev)
		}
		r.paint(layers, dirty)
		r.last[sp] = cur
	}
	r.PartialRedraws++
}

// paint blanks region and redraws the layers back to front inside it.
func (r *Renderer) paint(layers []core.Layer, region core.Rectangle) {
	clip, ok := intersect(region, r.bounds)
	if !ok {
		return
	}
	r.view.Clip = clip
	r.view.Blank(clip)
	for i := len(layers) - 1; i >= 0; i-- {
		if layers[i].Bounds().Intersects(clip) {
			layers[i].Draw(r.view)
		}
	}
	r.view.Clip = r.bounds
}

func intersect(a, b core.Rectangle) (core.Rectangle, bool) {
	x0 := max(a.X, b.X)
	y0 := max(a.Y, b.Y)
	x1 := min(a.X+a.Width, b.X+b.Width)
	y1 := min(a.Y+a.Height, b.Y+b.Height)
	if x0 >= x1 || y0 >= y1 {
		return core.Rectangle{}, false
	}
	return core.NewRectangle(x0, y0, x1-x0, y1-y0), true
}
