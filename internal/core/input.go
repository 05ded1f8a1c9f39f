package core

import "strings"

// Buttons is a bitmask of logical handheld buttons.
// Games work with these instead of raw key presses.
type Buttons uint8

const (
	ButtonUp    Buttons = 1 << iota // D-pad up
	ButtonDown                      // D-pad down
	ButtonLeft                      // D-pad left
	ButtonRight                     // D-pad right
	ButtonX                         // X (attack)
	ButtonO                         // O (talk / confirm)
	ButtonStart                     // Start
	ButtonSelect                    // Select
)

var buttonNames = []struct {
	b    Buttons
	name string
}{
	{ButtonUp, "Up"},
	{ButtonDown, "Down"},
	{ButtonLeft, "Left"},
	{ButtonRight, "Right"},
	{ButtonX, "X"},
	{ButtonO, "O"},
	{ButtonStart, "Start"},
	{ButtonSelect, "Select"},
}

// Has returns true if every button in b is pressed.
func (m Buttons) Has(b Buttons) bool {
	return b != 0 && m&b == b
}

// String returns a human-readable list of pressed buttons.
func (m Buttons) String() string {
	if m == 0 {
		return "None"
	}
	var parts []string
	for _, bn := range buttonNames {
		if m&bn.b != 0 {
			parts = append(parts, bn.name)
		}
	}
	return strings.Join(parts, "+")
}

// InputProvider returns the buttons pressed since the previous query.
// A query consumes the presses, so two reads in one tick see different sets.
type InputProvider interface {
	Pressed() Buttons
}

// ButtonLatch collects presses from an event source (e.g. terminal key
// messages) until the next Pressed call.
type ButtonLatch struct {
	pending Buttons
}

// NewButtonLatch creates an empty latch.
func NewButtonLatch() *ButtonLatch {
	return &ButtonLatch{}
}

// Press latches b until the next read.
func (l *ButtonLatch) Press(b Buttons) {
	l.pending |= b
}

// Pressed returns and clears the latched buttons.
func (l *ButtonLatch) Pressed() Buttons {
	b := l.pending
	l.pending = 0
	return b
}

// Peek returns the latched buttons without consuming them.
func (l *ButtonLatch) Peek() Buttons {
	return l.pending
}
