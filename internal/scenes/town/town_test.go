package town

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/registry"
	"github.com/vovakirdan/tilequest/internal/session"
)

func setup(t *testing.T) (*Scene, *session.Session, *core.ButtonLatch) {
	t.Helper()
	cfg := config.DefaultTownConfig()
	latch := core.NewButtonLatch()
	s := session.New(cfg.Runtime(), latch, nil)

	sc := &Scene{}
	if err := sc.Setup(s, cfg); err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}
	for s.Mode() != session.Running {
		s.Tick()
	}
	return sc, s, latch
}

// hold presses buttons before each of n ticks.
func hold(s *session.Session, latch *core.ButtonLatch, b core.Buttons, n int) {
	for i := 0; i < n; i++ {
		latch.Press(b)
		s.Tick()
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("town") {
		t.Fatal("town scene should register itself")
	}
	sc, err := registry.Create("town")
	if err != nil {
		t.Fatal(err)
	}
	if sc.ID() != "town" || sc.Title() != "Town" {
		t.Errorf("got %s/%s", sc.ID(), sc.Title())
	}
}

func TestSetupBuildsScene(t *testing.T) {
	sc, s, _ := setup(t)

	m := s.Map()
	if m == nil {
		t.Fatal("Setup should set the map")
	}
	if m.Tile(4, 0) != 14 || m.Tile(9, 1) != 8 {
		t.Errorf("map tiles wrong: (4,0)=%d (9,1)=%d", m.Tile(4, 0), m.Tile(9, 1))
	}
	if !m.IsSolid(14) || !m.IsTrigger(8) {
		t.Error("tile classes not applied")
	}

	layers := s.Layers()
	if len(layers) != 2 || layers[0] != core.Layer(sc.Player) || layers[1] != core.Layer(m) {
		t.Errorf("layers = %v, expected [player, map]", layers)
	}
	if sc.Player.X != 8 || sc.Player.Y != 8 {
		t.Errorf("player at (%d, %d)", sc.Player.X, sc.Player.Y)
	}
	if sc.Player.Animations.CurrentName() != IdleRight {
		t.Errorf("player starts in %q", sc.Player.Animations.CurrentName())
	}

	if x, y := sc.Dialog.Position(); x != 0 || y != 96 {
		t.Errorf("dialog at (%d, %d), expected (0, 96)", x, y)
	}
	if b := sc.Dialog.Decoration.Bounds(); b.X != 128 || b.Y != 104 {
		t.Errorf("decoration at (%d, %d), expected (128, 104)", b.X, b.Y)
	}
}

func TestWalkIntoWall(t *testing.T) {
	sc, s, latch := setup(t)
	p := sc.Player

	hold(s, latch, core.ButtonRight, 10)
	if p.X != 48 || p.Animations.CurrentName() != WalkRight {
		t.Errorf("X=%d state=%q, expected 48/walkRight", p.X, p.Animations.CurrentName())
	}

	// Blocked movement resolves to zero, which reads as standing still.
	hold(s, latch, core.ButtonRight, 2)
	if p.X != 49 {
		t.Errorf("X = %d, expected 49 against the first tree", p.X)
	}
	if p.Animations.CurrentName() != IdleRight {
		t.Errorf("state = %q against the wall, expected idleRight", p.Animations.CurrentName())
	}

	hold(s, latch, core.ButtonLeft, 1)
	if p.X != 45 || p.Animations.CurrentName() != WalkLeft {
		t.Errorf("walking left: X=%d state=%q", p.X, p.Animations.CurrentName())
	}
	if p.Sprite.Rotate != core.RotateMirror {
		t.Error("walking left should mirror the sprite")
	}
	s.Tick()
	if p.Animations.CurrentName() != IdleLeft {
		t.Errorf("state = %q, expected idleLeft", p.Animations.CurrentName())
	}
}

func TestAttack(t *testing.T) {
	sc, s, latch := setup(t)
	anims := sc.Player.Animations

	hold(s, latch, core.ButtonX, 1)
	if anims.CurrentName() != Attack {
		t.Fatalf("state = %q, expected attack", anims.CurrentName())
	}

	ticks := 1
	for anims.CurrentName() == Attack && ticks < 50 {
		s.Tick()
		ticks++
	}
	if anims.CurrentName() != IdleRight {
		t.Errorf("attack should end in idleRight, got %q", anims.CurrentName())
	}
	if ticks != 8 {
		t.Errorf("attack lasted %d ticks, expected 8", ticks)
	}
}

func TestTalkOpensAndClosesDialog(t *testing.T) {
	sc, s, latch := setup(t)

	hold(s, latch, core.ButtonO, 1)
	if !sc.Dialog.Showing() || s.Mode() != session.Paused {
		t.Fatalf("O should open the dialog, mode=%v", s.Mode())
	}

	// Held O during the entry window does not close it.
	hold(s, latch, core.ButtonO, sc.Dialog.FramesToWait)
	if !sc.Dialog.Showing() {
		t.Fatal("dialog closed during its entry window")
	}

	// The player does not move while the dialog is open.
	hold(s, latch, core.ButtonRight, 3)
	if sc.Player.X != 8 {
		t.Errorf("player moved to %d while paused", sc.Player.X)
	}

	hold(s, latch, core.ButtonO, 1)
	if sc.Dialog.Showing() {
		t.Fatal("O should close the dialog")
	}
	if s.Mode() != session.ResumingDebounce {
		t.Errorf("mode = %v after closing, expected resuming", s.Mode())
	}
}

func TestTriggerShakesMap(t *testing.T) {
	sc, s, _ := setup(t)
	m := s.Map()

	m.HandleTrigger(sc.Player, 9, 1, 8)
	if !m.Shaking() {
		t.Fatal("trigger tile should start a shake")
	}
	s.Tick()
	if x, _ := m.Position(); x != 4 {
		t.Errorf("map x = %d on the first shake tick, expected 4", x)
	}
}

func TestSetupRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.SceneConfig)
	}{
		{"short map", func(c *config.SceneConfig) { c.Map.Rows = c.Map.Rows[:7] }},
		{"bad palette color", func(c *config.SceneConfig) { c.Map.Palette[0].Color = "plaid" }},
		{"bad dialog row", func(c *config.SceneConfig) { c.Dialog.Rows = []string{"012"} }},
		{"no player frames", func(c *config.SceneConfig) { c.Player.Frames = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultTownConfig()
			tc.mutate(&cfg)
			s := session.New(cfg.Runtime(), nil, nil)
			err := (&Scene{}).Setup(s, cfg)
			if !errors.Is(err, core.ErrConfiguration) {
				t.Errorf("Setup() = %v, expected configuration error", err)
			}
		})
	}
}
