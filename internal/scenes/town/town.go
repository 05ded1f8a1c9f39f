// Package town implements the demo village: a walkable map, a player with
// idle, walk and attack animations, and a modal text dialog.
package town

import (
	"fmt"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/entity"
	"github.com/vovakirdan/tilequest/internal/fsm"
	"github.com/vovakirdan/tilequest/internal/registry"
	"github.com/vovakirdan/tilequest/internal/session"
	"github.com/vovakirdan/tilequest/internal/tilemap"
)

func init() {
	registry.Register("town", func() registry.Scene { return &Scene{} })
}

// Scene builds the town. After Setup, Player and Dialog are set.
type Scene struct {
	Player *entity.Moveable
	Dialog *session.Dialog
}

// ID implements registry.Scene.
func (sc *Scene) ID() string { return "town" }

// Title implements registry.Scene.
func (sc *Scene) Title() string { return "Town" }

// Setup implements registry.Scene.
func (sc *Scene) Setup(s *session.Session, cfg config.SceneConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	rc := s.Config()

	world, err := buildMap(rc, cfg.Map)
	if err != nil {
		return err
	}
	s.SetMap(world)

	dialog, err := buildDialog(s, rc, cfg.Dialog)
	if err != nil {
		return err
	}

	player, err := buildPlayer(s, cfg.Player, dialog)
	if err != nil {
		return err
	}

	s.AddToUpdates(world)
	s.AddToSprites(true, player)
	s.SetLayers(player, world)

	sc.Player = player
	sc.Dialog = dialog
	return nil
}

func buildMap(rc core.RuntimeConfig, mc config.MapConfig) (*tilemap.TileMap, error) {
	m := tilemap.New(rc.TilesX(), rc.TilesY(), rc.SpriteSize)
	if err := m.SetFromRowStrings(mc.Rows); err != nil {
		return nil, fmt.Errorf("town: map: %w", err)
	}
	palette, err := config.BuildPalette(mc.Palette)
	if err != nil {
		return nil, fmt.Errorf("town: map: %w", err)
	}
	m.Palette = palette
	m.SetSolidTypes(mc.Solid...)
	m.SetTriggerTypes(mc.Triggers...)

	amount := mc.ShakeAmount
	if amount <= 0 {
		amount = tilemap.DefaultShakeAmount
	}
	// Stepping on a trigger tile rattles the screen.
	m.OnTrigger = func(_ tilemap.Occupant, _, _, _ int) {
		if !m.Shaking() {
			m.Shake(amount)
		}
	}
	return m, nil
}

func buildDialog(s *session.Session, rc core.RuntimeConfig, dc config.DialogConfig) (*session.Dialog, error) {
	tm := tilemap.New(rc.TilesX(), len(dc.Rows), rc.SpriteSize)
	if err := tm.SetFromRowStrings(dc.Rows); err != nil {
		return nil, fmt.Errorf("town: dialog: %w", err)
	}
	palette, err := config.BuildPalette(dc.Palette)
	if err != nil {
		return nil, fmt.Errorf("town: dialog: %w", err)
	}
	tm.Palette = palette

	textColor, err := config.Color(dc.TextColor)
	if err != nil {
		return nil, fmt.Errorf("town: dialog: %w", err)
	}

	var decoration core.Layer
	if dc.Decoration != "" {
		glyph, err := config.Glyph(dc.Decoration)
		if err != nil {
			return nil, fmt.Errorf("town: dialog: %w", err)
		}
		color, err := config.Color(dc.DecorationColor)
		if err != nil {
			return nil, fmt.Errorf("town: dialog: %w", err)
		}
		size := rc.SpriteSize
		decoration = core.NewSprite([]rune{glyph}, size, rc.GameW-2*size, rc.GameH-size*3/2, color)
	}

	d := session.NewDialog(s, tm, session.DialogOptions{
		Text1:        dc.Text1,
		Text2:        dc.Text2,
		TextColor:    textColor,
		Decoration:   decoration,
		FramesToWait: dc.FramesToWait,
		OnUpdate:     closeOnO,
	})
	d.Move(0, rc.GameH-2*rc.SpriteSize)
	return d, nil
}

func closeOnO(d *session.Dialog, pressed core.Buttons) error {
	if pressed.Has(core.ButtonO) {
		d.Hide()
	}
	return nil
}

func buildPlayer(s *session.Session, pc config.PlayerConfig, dialog *session.Dialog) (*entity.Moveable, error) {
	color, err := config.Color(pc.Color)
	if err != nil {
		return nil, fmt.Errorf("town: player: %w", err)
	}

	sprite := core.NewSprite([]rune(pc.Frames), s.Config().SpriteSize, pc.X, pc.Y, color)
	p := entity.New(s, sprite, pc.X, pc.Y)
	p.Name = "player"
	p.SetCollider(pc.Collider.DX, pc.Collider.DY, pc.Collider.Width, pc.Collider.Height)
	p.Animations = fsm.NewMachine("player")

	if err := addAnimations(p.Animations, sprite); err != nil {
		return nil, fmt.Errorf("town: player: %w", err)
	}

	p.Controller = &Controller{
		Speed:  pc.Speed,
		Input:  s.Input(),
		Dialog: dialog,
	}
	return p, nil
}
