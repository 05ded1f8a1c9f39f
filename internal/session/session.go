// Package session runs the fixed-timestep game loop: it owns the updatables,
// the render layers, the active tile map, and the pause/debounce protocol.
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/tilemap"
	"github.com/vovakirdan/tilequest/internal/trace"
)

// Updatable is anything the loop advances once per tick:
// entities, map effects, dialogs.
type Updatable interface {
	Update() error
}

// Renderer draws the session's layers. The session decides which method
// runs each tick.
type Renderer interface {
	// RenderIncremental redraws only the areas covered by sprites.
	RenderIncremental(layers, sprites []core.Layer)
	// RenderFullRegion redraws every layer inside region.
	RenderFullRegion(layers []core.Layer, region core.Rectangle)
}

// Mode is the loop's pause state.
type Mode int

const (
	Running          Mode = iota // every updatable runs, then a render
	Paused                       // only the pause holder runs
	ResumingDebounce             // input is discarded for a few ticks
)

func (m Mode) String() string {
	switch m {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case ResumingDebounce:
		return "resuming"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ErrAlreadyPaused is returned by Pause when another holder has the loop.
var ErrAlreadyPaused = errors.New("session: already paused by another holder")

type nopRenderer struct{}

func (nopRenderer) RenderIncremental(_, _ []core.Layer)            {}
func (nopRenderer) RenderFullRegion(_ []core.Layer, _ core.Rectangle) {}

// Session is the single game loop of a running scene.
// All methods must be called from the goroutine that calls Tick.
type Session struct {
	cfg      core.RuntimeConfig
	input    core.InputProvider
	renderer Renderer

	tm       *tilemap.TileMap
	updaters []Updatable
	sprites  []core.Layer
	layers   []core.Layer // front to back

	forceRefresh bool

	pauseHolder   Updatable
	framesWaiting int

	frame uint64
}

// New creates a session. A nil renderer discards rendering.
// Like a fresh resume, the first FramesToWaitAfterPause ticks discard input.
func New(cfg core.RuntimeConfig, input core.InputProvider, r Renderer) *Session {
	if r == nil {
		r = nopRenderer{}
	}
	return &Session{
		cfg:      cfg,
		input:    input,
		renderer: r,
	}
}

// Config returns the runtime configuration.
func (s *Session) Config() core.RuntimeConfig { return s.cfg }

// Input returns the input provider. It may be nil in headless runs.
func (s *Session) Input() core.InputProvider { return s.input }

// Map returns the active tile map, or nil.
func (s *Session) Map() *tilemap.TileMap { return s.tm }

// SetMap makes m the active map and lets it request full redraws.
func (s *Session) SetMap(m *tilemap.TileMap) {
	s.tm = m
	if m != nil {
		m.AttachRefresher(s)
	}
}

// ForceRefresh requests a full redraw at the end of the current tick.
func (s *Session) ForceRefresh() { s.forceRefresh = true }

// Frame returns the number of completed ticks.
func (s *Session) Frame() uint64 { return s.frame }

// AddToUpdates registers updatables; they run in registration order.
func (s *Session) AddToUpdates(objs ...Updatable) {
	s.updaters = append(s.updaters, objs...)
}

// RemoveFromUpdates unregisters updatables. Unknown objects are ignored.
func (s *Session) RemoveFromUpdates(objs ...Updatable) {
	for _, o := range objs {
		if i := slices.Index(s.updaters, o); i >= 0 {
			s.updaters = slices.Delete(s.updaters, i, i+1)
		}
	}
}

// AddToSprites adds layers to the incremental render set. With updater set,
// every object that is also Updatable is registered for updates too.
func (s *Session) AddToSprites(updater bool, objs ...core.Layer) {
	s.sprites = append(s.sprites, objs...)
	if !updater {
		return
	}
	for _, o := range objs {
		if u, ok := o.(Updatable); ok {
			s.AddToUpdates(u)
		}
	}
}

// RemoveFromSprites is the inverse of AddToSprites.
func (s *Session) RemoveFromSprites(updater bool, objs ...core.Layer) {
	for _, o := range objs {
		if i := slices.Index(s.sprites, o); i >= 0 {
			s.sprites = slices.Delete(s.sprites, i, i+1)
		}
		if !updater {
			continue
		}
		if u, ok := o.(Updatable); ok {
			s.RemoveFromUpdates(u)
		}
	}
}

// Sprites returns a copy of the incremental render set.
func (s *Session) Sprites() []core.Layer { return slices.Clone(s.sprites) }

// SetLayers replaces the render layers, front to back.
func (s *Session) SetLayers(layers ...core.Layer) {
	s.layers = slices.Clone(layers)
}

// InsertLayersFront inserts each layer at the front in turn, so the last
// argument ends up frontmost.
func (s *Session) InsertLayersFront(layers ...core.Layer) {
	for _, l := range layers {
		s.layers = slices.Insert(s.layers, 0, l)
	}
}

// RemoveLayers removes the given layers. Unknown layers are ignored.
func (s *Session) RemoveLayers(layers ...core.Layer) {
	for _, l := range layers {
		if i := slices.Index(s.layers, l); i >= 0 {
			s.layers = slices.Delete(s.layers, i, i+1)
		}
	}
}

// Layers returns a copy of the render layers, front to back.
func (s *Session) Layers() []core.Layer { return slices.Clone(s.layers) }

// Pause hands the loop to holder: until Resume, only holder is updated.
// Pausing again with the same holder is a no-op.
func (s *Session) Pause(holder Updatable) error {
	if holder == nil {
		return fmt.Errorf("session: nil pause holder: %w", core.ErrConfiguration)
	}
	if s.pauseHolder != nil {
		if s.pauseHolder == holder {
			return nil
		}
		return ErrAlreadyPaused
	}
	s.pauseHolder = holder
	trace.Emitf("pause", "session", "held by %T", holder)
	return nil
}

// Resume releases the pause holder and starts the input debounce window.
// It does nothing when the loop is not paused.
func (s *Session) Resume() {
	if s.pauseHolder == nil {
		return
	}
	s.pauseHolder = nil
	s.framesWaiting = 0
	trace.Emit("resume", "session", "")
}

// PauseHolder returns the object holding the pause, or nil.
func (s *Session) PauseHolder() Updatable { return s.pauseHolder }

// Mode returns the loop's current pause state.
func (s *Session) Mode() Mode {
	switch {
	case s.pauseHolder != nil:
		return Paused
	case s.framesWaiting < s.cfg.FramesToWaitAfterPause:
		return ResumingDebounce
	default:
		return Running
	}
}

// Tick runs one loop iteration. While paused only the holder is updated;
// while debouncing the pending input is discarded; otherwise every updatable
// runs in order and the frame is rendered, fully if a refresh was forced.
// The frame clock advances whichever branch runs.
func (s *Session) Tick() error {
	defer s.advance()

	switch s.Mode() {
	case Paused:
		if err := s.pauseHolder.Update(); err != nil {
			return fmt.Errorf("session: pause holder: %w", err)
		}

	case ResumingDebounce:
		if s.input != nil {
			s.input.Pressed()
		}
		s.framesWaiting++

	default:
		// Updaters may register or remove others mid-tick; run this tick's set.
		for _, u := range slices.Clone(s.updaters) {
			if err := u.Update(); err != nil {
				return fmt.Errorf("session: update: %w", err)
			}
		}
		if s.forceRefresh {
			s.renderer.RenderFullRegion(s.Layers(), s.cfg.Bounds())
			s.forceRefresh = false
		} else {
			s.renderer.RenderIncremental(s.Layers(), s.Sprites())
		}
	}
	return nil
}

func (s *Session) advance() {
	s.frame++
	trace.SetFrame(s.frame)
}

// Run ticks at cfg.TickRate until ctx is done, a tick fails, or maxTicks
// ticks have run (0 means no limit).
func (s *Session) Run(ctx context.Context, maxTicks int) error {
	if s.cfg.TickRate <= 0 {
		return fmt.Errorf("session: tick rate %d: %w", s.cfg.TickRate, core.ErrConfiguration)
	}

	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.TickRate))
	defer ticker.Stop()

	for n := 0; maxTicks <= 0 || n < maxTicks; n++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		if err := s.Tick(); err != nil {
			return err
		}
	}
	return nil
}
