package session

import (
	"fmt"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/tilemap"
	"github.com/vovakirdan/tilequest/internal/trace"
)

// Dialog text margins relative to the dialog's top-left corner.
const (
	DefaultMarginX  = 4
	DefaultMarginY  = 4
	DefaultMarginX2 = 4
	DefaultMarginY2 = 19
)

// DefaultDialogWait is how many ticks a dialog ignores input after opening.
const DefaultDialogWait = 2

// DialogOptions configures NewDialog.
type DialogOptions struct {
	Text1, Text2 string
	TextColor    core.Color

	// Decoration is an extra layer shown above the text, e.g. a portrait.
	Decoration core.Layer

	// FramesToWait overrides DefaultDialogWait when positive.
	FramesToWait int

	// OnUpdate runs each tick after the entry window with the buttons
	// pressed this tick.
	OnUpdate func(d *Dialog, pressed core.Buttons) error
}

// Dialog is a modal overlay: a tile-map frame with up to two text lines.
// While shown it holds the session's pause, so it is the only updatable.
type Dialog struct {
	*tilemap.TileMap

	Text1, Text2 *core.Text
	Decoration   core.Layer

	MarginX, MarginY   int
	MarginX2, MarginY2 int

	FramesToWait int
	OnUpdate     func(d *Dialog, pressed core.Buttons) error

	session          *Session
	showing          bool
	curFramesWaiting int
}

// NewDialog creates a hidden dialog drawn with tm.
func NewDialog(s *Session, tm *tilemap.TileMap, opts DialogOptions) *Dialog {
	d := &Dialog{
		TileMap:      tm,
		Decoration:   opts.Decoration,
		MarginX:      DefaultMarginX,
		MarginY:      DefaultMarginY,
		MarginX2:     DefaultMarginX2,
		MarginY2:     DefaultMarginY2,
		FramesToWait: DefaultDialogWait,
		OnUpdate:     opts.OnUpdate,
		session:      s,
	}
	if opts.FramesToWait > 0 {
		d.FramesToWait = opts.FramesToWait
	}
	if opts.Text1 != "" {
		d.Text1 = core.NewText(opts.Text1, opts.TextColor)
	}
	if opts.Text2 != "" {
		d.Text2 = core.NewText(opts.Text2, opts.TextColor)
	}
	d.Move(tm.Position())
	return d
}

// Move places the dialog frame at (x, y); the text lines follow.
func (d *Dialog) Move(x, y int) {
	if d.Text1 != nil {
		d.Text1.Move(x+d.MarginX, y+d.MarginY)
	}
	if d.Text2 != nil {
		d.Text2.Move(x+d.MarginX2, y+d.MarginY2)
	}
	d.TileMap.Move(x, y)
}

// Showing reports whether the dialog is on screen.
func (d *Dialog) Showing() bool { return d.showing }

// elements returns the dialog's layers in insertion order, back first.
func (d *Dialog) elements() []core.Layer {
	layers := []core.Layer{d}
	if d.Text1 != nil {
		layers = append(layers, d.Text1)
	}
	if d.Text2 != nil {
		layers = append(layers, d.Text2)
	}
	if d.Decoration != nil {
		layers = append(layers, d.Decoration)
	}
	return layers
}

// Show puts the dialog in front of every layer and pauses the session.
// Showing an open dialog does nothing.
func (d *Dialog) Show() error {
	if d.showing {
		return nil
	}
	if err := d.session.Pause(d); err != nil {
		return fmt.Errorf("session: show dialog: %w", err)
	}
	d.session.InsertLayersFront(d.elements()...)
	d.session.ForceRefresh()
	d.showing = true
	d.curFramesWaiting = 0
	trace.Emit("dialog", "session", "show")
	return nil
}

// Hide removes the dialog's layers and resumes the session.
// Hiding a closed dialog does nothing.
func (d *Dialog) Hide() {
	if !d.showing {
		return
	}
	d.session.RemoveLayers(d.elements()...)
	d.session.ForceRefresh()
	d.session.Resume()
	d.showing = false
	trace.Emit("dialog", "session", "hide")
}

// Update reads this tick's input, ignores it during the entry window, and
// otherwise passes it to OnUpdate.
func (d *Dialog) Update() error {
	var pressed core.Buttons
	if in := d.session.Input(); in != nil {
		pressed = in.Pressed()
	}

	if d.curFramesWaiting < d.FramesToWait {
		d.curFramesWaiting++
		return nil
	}
	if d.OnUpdate == nil {
		return nil
	}
	return d.OnUpdate(d, pressed)
}
