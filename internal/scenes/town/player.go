package town

import (
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/entity"
	"github.com/vovakirdan/tilequest/internal/fsm"
	"github.com/vovakirdan/tilequest/internal/session"
)

// Player animation states.
const (
	IdleRight = "idleRight"
	IdleLeft  = "idleLeft"
	WalkRight = "walkRight"
	WalkLeft  = "walkLeft"
	Attack    = "attack"
)

func addAnimations(m *fsm.Machine, sprite fsm.Frameable) error {
	states := []fsm.State{
		fsm.NewAnimLoop(IdleRight, sprite, 0, 0, 0, core.RotateNone),
		fsm.NewAnimLoop(IdleLeft, sprite, 0, 0, 0, core.RotateMirror),
		fsm.NewAnimLoop(WalkRight, sprite, 0, 2, 0, core.RotateNone),
		fsm.NewAnimLoop(WalkLeft, sprite, 0, 2, 0, core.RotateMirror),
		fsm.NewAnimRepeat(Attack, sprite, 3, 6, 0, 1, IdleRight, core.RotateNone),
	}
	for _, st := range states {
		if err := m.AddState(st); err != nil {
			return err
		}
	}
	return m.GoToState(IdleRight, false)
}

// Controller drives the player from the buttons: the d-pad walks one axis
// at a time, X attacks, O opens the dialog.
type Controller struct {
	Speed  int
	Input  core.InputProvider
	Dialog *session.Dialog

	attack bool
	talk   bool
}

// Movement implements entity.Controller. Right wins over left, left over
// up, up over down.
func (c *Controller) Movement(*entity.Moveable) (dx, dy int) {
	var keys core.Buttons
	if c.Input != nil {
		keys = c.Input.Pressed()
	}

	switch {
	case keys.Has(core.ButtonRight):
		dx = c.Speed
	case keys.Has(core.ButtonLeft):
		dx = -c.Speed
	case keys.Has(core.ButtonUp):
		dy = -c.Speed
	case keys.Has(core.ButtonDown):
		dy = c.Speed
	}

	c.attack = keys.Has(core.ButtonX)
	c.talk = keys.Has(core.ButtonO)
	return dx, dy
}

// Animate implements entity.Controller.
func (c *Controller) Animate(e *entity.Moveable, dx, dy int) error {
	anims := e.Animations
	if c.attack {
		if err := anims.GoToState(Attack, false); err != nil {
			return err
		}
	}
	if c.talk && c.Dialog != nil {
		if err := c.Dialog.Show(); err != nil {
			return err
		}
	}

	cur := anims.CurrentName()
	if dx != 0 || dy != 0 {
		switch {
		case dx < 0 || (dy != 0 && cur == IdleLeft):
			return anims.GoToState(WalkLeft, false)
		case dx > 0 || (dy != 0 && cur == IdleRight):
			return anims.GoToState(WalkRight, false)
		}
		return nil
	}

	switch cur {
	case WalkLeft:
		return anims.GoToState(IdleLeft, false)
	case WalkRight:
		return anims.GoToState(IdleRight, false)
	}
	return nil
}
