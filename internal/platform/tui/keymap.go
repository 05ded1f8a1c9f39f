package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilequest/internal/core"
)

// KeyMap binds terminal keys to handheld buttons and runner commands.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	X      key.Binding
	O      key.Binding
	Start  key.Binding
	Select key.Binding

	Help       key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings: arrows or WASD for the d-pad,
// x/j to attack and o/k to talk.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		X: key.NewBinding(
			key.WithKeys("x", "j"),
			key.WithHelp("x/j", "attack"),
		),
		O: key.NewBinding(
			key.WithKeys("o", "k"),
			key.WithHelp("o/k", "talk"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Select: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "select"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.X, k.O, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.X, k.O, k.Start, k.Select},
		{k.Screenshot, k.Help, k.Quit},
	}
}

// Buttons returns the handheld buttons a key message presses, or 0.
func (k KeyMap) Buttons(msg tea.KeyMsg) core.Buttons {
	bindings := []struct {
		binding key.Binding
		button  core.Buttons
	}{
		{k.Up, core.ButtonUp},
		{k.Down, core.ButtonDown},
		{k.Left, core.ButtonLeft},
		{k.Right, core.ButtonRight},
		{k.X, core.ButtonX},
		{k.O, core.ButtonO},
		{k.Start, core.ButtonStart},
		{k.Select, core.ButtonSelect},
	}

	var b core.Buttons
	for _, kb := range bindings {
		if key.Matches(msg, kb.binding) {
			b |= kb.button
		}
	}
	return b
}
