package fsm

import (
	"fmt"

	"github.com/vovakirdan/tilequest/internal/core"
)

// LoopForever is the NumTimes sentinel for an animation that never ends.
const LoopForever = -1

// Frameable is what an animation drives: something showing one sprite-sheet
// frame at a time.
type Frameable interface {
	SetFrame(frame int, rotate core.Rotation)
}

// AnimationState steps a sprite through the contiguous frames
// FrameStart..FrameEnd (inclusive), holding each for Delay extra ticks.
// After NumTimes full repeats it moves the machine to NextState.
type AnimationState struct {
	BaseState

	Sprite     Frameable
	FrameStart int
	FrameEnd   int
	Delay      int
	NumTimes   int
	NextState  string
	Rotate     core.Rotation

	curFrame int
	curDelay int
	curTimes int
}

// AnimOptions configures NewAnimationState. Zero values mean: advance every
// tick, loop forever, next state "idle", no rotation.
type AnimOptions struct {
	Delay     int
	NumTimes  int // 0 is treated as LoopForever; use NewAnimRepeat for counts
	NextState string
	Rotate    core.Rotation
}

// NewAnimationState creates an animation state over frames start..end.
func NewAnimationState(name string, sprite Frameable, start, end int, opts AnimOptions) *AnimationState {
	numTimes := opts.NumTimes
	if numTimes == 0 {
		numTimes = LoopForever
	}
	next := opts.NextState
	if next == "" {
		next = "idle"
	}
	return &AnimationState{
		BaseState:  NewBaseState(name),
		Sprite:     sprite,
		FrameStart: start,
		FrameEnd:   end,
		Delay:      opts.Delay,
		NumTimes:   numTimes,
		NextState:  next,
		Rotate:     opts.Rotate,
		curFrame:   start,
	}
}

// NewAnimLoop creates an animation that loops forever.
func NewAnimLoop(name string, sprite Frameable, start, end, delay int, rotate core.Rotation) *AnimationState {
	return NewAnimationState(name, sprite, start, end, AnimOptions{Delay: delay, Rotate: rotate})
}

// NewAnimRepeat creates an animation that plays numTimes and then moves
// the machine to next.
func NewAnimRepeat(name string, sprite Frameable, start, end, delay, numTimes int, next string, rotate core.Rotation) *AnimationState {
	a := NewAnimationState(name, sprite, start, end, AnimOptions{Delay: delay, NextState: next, Rotate: rotate})
	a.NumTimes = numTimes
	return a
}

// Enter shows the first frame and rewinds the cursor.
func (a *AnimationState) Enter(*Machine) error {
	a.Sprite.SetFrame(a.FrameStart, a.Rotate)
	a.curFrame = a.FrameStart
	a.curDelay = 0
	a.curTimes = 0
	return nil
}

// Update advances the animation by one tick.
func (a *AnimationState) Update(m *Machine) error {
	if a.Delay > 0 && a.curDelay < a.Delay {
		a.curDelay++
		return nil
	}

	a.curFrame++
	a.curDelay = 0

	if a.curFrame > a.FrameEnd {
		a.curFrame = a.FrameStart
		a.curTimes++
		if a.NumTimes != LoopForever && a.curTimes > a.NumTimes {
			if err := m.GoToState(a.NextState, false); err != nil {
				return fmt.Errorf("fsm: %q finished: %w", a.Name(), err)
			}
			return nil
		}
	}

	a.Sprite.SetFrame(a.curFrame, a.Rotate)
	return nil
}

// Frame returns the frame the cursor is on.
func (a *AnimationState) Frame() int {
	return a.curFrame
}

// Repeats returns how many times the frame range has wrapped since Enter.
func (a *AnimationState) Repeats() int {
	return a.curTimes
}
