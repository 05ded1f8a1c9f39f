package session

import (
	"testing"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/tilemap"
)

func newTestDialog(t *testing.T, s *Session) (*Dialog, *core.Sprite) {
	t.Helper()
	tm := tilemap.New(10, 2, 16)
	if err := tm.SetFromRowStrings([]string{"0111111112", "3444444445"}); err != nil {
		t.Fatal(err)
	}
	deco := core.NewSprite([]rune{'*'}, 16, 128, 104, core.ColorYellow)
	d := NewDialog(s, tm, DialogOptions{
		Text1:      "Meow Mix",
		Text2:      "Delivers!",
		Decoration: deco,
		OnUpdate: func(d *Dialog, pressed core.Buttons) error {
			if pressed.Has(core.ButtonO) {
				d.Hide()
			}
			return nil
		},
	})
	d.Move(0, 96)
	return d, deco
}

func TestDialogMoveCarriesText(t *testing.T) {
	s, _, _ := newTestSession(t)
	d, _ := newTestDialog(t, s)

	if x, y := d.Position(); x != 0 || y != 96 {
		t.Errorf("dialog at (%d, %d), expected (0, 96)", x, y)
	}
	if d.Text1.X != 4 || d.Text1.Y != 100 {
		t.Errorf("text1 at (%d, %d), expected (4, 100)", d.Text1.X, d.Text1.Y)
	}
	if d.Text2.X != 4 || d.Text2.Y != 115 {
		t.Errorf("text2 at (%d, %d), expected (4, 115)", d.Text2.X, d.Text2.Y)
	}
}

func TestDialogShowHideLayers(t *testing.T) {
	s, _, r := newTestSession(t)
	settle(t, s)
	d, deco := newTestDialog(t, s)

	player := core.NewSprite([]rune{'@'}, 16, 8, 8, core.ColorWhite)
	world := tilemap.New(10, 8, 16)
	s.SetLayers(player, world)

	if err := d.Show(); err != nil {
		t.Fatal(err)
	}
	expected := []core.Layer{deco, d.Text2, d.Text1, d, player, world}
	layers := s.Layers()
	if len(layers) != len(expected) {
		t.Fatalf("got %d layers, expected %d", len(layers), len(expected))
	}
	for i := range expected {
		if layers[i] != expected[i] {
			t.Errorf("layer %d = %T, expected %T", i, layers[i], expected[i])
		}
	}
	if s.PauseHolder() != d {
		t.Error("dialog should hold the pause")
	}

	// A second Show changes nothing.
	d.Show()
	if len(s.Layers()) != 6 {
		t.Errorf("double Show added layers: %d", len(s.Layers()))
	}

	d.Hide()
	layers = s.Layers()
	if len(layers) != 2 || layers[0] != player || layers[1] != world {
		t.Errorf("Hide did not restore layers: %v", layers)
	}
	if d.Showing() {
		t.Error("Showing() should be false after Hide")
	}
	d.Hide() // no-op

	// Show and Hide both request a full redraw; it lands on the next running tick.
	settle(t, s)
	s.Tick()
	if r.full != 1 {
		t.Errorf("full redraws = %d, expected 1", r.full)
	}
}

func TestDialogIsModal(t *testing.T) {
	s, latch, _ := newTestSession(t)
	settle(t, s)
	d, _ := newTestDialog(t, s)

	c := &counter{}
	s.AddToUpdates(c)
	s.Tick()
	if c.updates != 1 {
		t.Fatalf("updates = %d before dialog", c.updates)
	}

	if err := d.Show(); err != nil {
		t.Fatal(err)
	}
	const n = 6
	for i := 0; i < n; i++ {
		s.Tick()
	}
	if c.updates != 1 {
		t.Errorf("updatable ran %d times while dialog open", c.updates-1)
	}

	latch.Press(core.ButtonO)
	s.Tick()
	if d.Showing() {
		t.Fatal("O after the entry window should close the dialog")
	}

	// Back to running exactly FramesToWaitAfterPause ticks after hide.
	wait := s.Config().FramesToWaitAfterPause
	for i := 0; i < wait; i++ {
		if s.Mode() == Running {
			t.Fatalf("running after only %d ticks", i)
		}
		s.Tick()
	}
	if s.Mode() != Running {
		t.Fatalf("mode = %v after %d ticks", s.Mode(), wait)
	}
	if c.updates != 1 {
		t.Error("debounce ticks should not update")
	}
	s.Tick()
	if c.updates != 2 {
		t.Errorf("updates = %d, expected 2 after resuming", c.updates)
	}
}

func TestDialogEntryWindowSwallowsInput(t *testing.T) {
	s, latch, _ := newTestSession(t)
	settle(t, s)
	d, _ := newTestDialog(t, s)

	// An updatable opens the dialog mid-tick, as the player does on O.
	opener := &counter{}
	opener.onTick = func() {
		if opener.updates == 1 {
			d.Show()
		}
	}
	s.AddToUpdates(opener)
	s.Tick()
	if !d.Showing() {
		t.Fatal("dialog should be open")
	}

	for i := 0; i < d.FramesToWait; i++ {
		latch.Press(core.ButtonO)
		s.Tick()
		if !d.Showing() {
			t.Fatalf("press during entry tick %d closed the dialog", i)
		}
	}

	s.Tick()
	if !d.Showing() {
		t.Fatal("presses from the entry window must not carry over")
	}

	latch.Press(core.ButtonO)
	s.Tick()
	if d.Showing() {
		t.Error("dialog should close on O")
	}
}
