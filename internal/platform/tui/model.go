package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/registry"
	"github.com/vovakirdan/tilequest/internal/session"
)

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Options tunes a terminal run.
type Options struct {
	// ScreenshotDir is where ctrl+s writes plain-text frames.
	// Empty means ~/.tilequest/screenshots.
	ScreenshotDir string
}

// Model is the Bubble Tea model that owns one scene session.
type Model struct {
	scene    registry.Scene
	session  *session.Session
	latch    *core.ButtonLatch
	renderer *Renderer
	keys     KeyMap
	help     help.Model
	opts     Options
	quitting bool
	err      error
}

// NewModel creates the session for sc, sets the scene up from cfg and
// paints the first frame.
func NewModel(sc registry.Scene, cfg config.SceneConfig, opts Options) (Model, error) {
	rc := cfg.Runtime()
	latch := core.NewButtonLatch()
	renderer := NewRenderer(rc)
	s := session.New(rc, latch, renderer)

	if err := sc.Setup(s, cfg); err != nil {
		return Model{}, fmt.Errorf("tui: setting up %s: %w", sc.ID(), err)
	}
	renderer.RenderFullRegion(s.Layers(), rc.Bounds())

	return Model{
		scene:    sc,
		session:  s,
		latch:    latch,
		renderer: renderer,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		opts:     opts,
	}, nil
}

// Session returns the session the model drives.
func (m Model) Session() *session.Session { return m.session }

// Err returns the error that stopped the loop, if any.
func (m Model) Err() error { return m.err }

// Init starts the frame clock.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.session.Config().TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		//nolint:errcheck // Best-effort save, the loop keeps running
		m.saveScreenshot()
		return m, nil
	}

	if b := m.keys.Buttons(msg); b != 0 {
		m.latch.Press(b)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if err := m.session.Tick(); err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.session.Config().TickRate)
}

// saveScreenshot writes the current frame as plain text and returns its path.
func (m Model) saveScreenshot() (string, error) {
	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".tilequest", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s_f%d.txt", m.scene.ID(), timestamp, m.session.Frame()))
	return path, os.WriteFile(path, []byte(m.renderer.Screen().String()), 0o600)
}

// View renders the current frame, a status line and the key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	status := fmt.Sprintf("%s  frame %d  %s", m.scene.Title(), m.session.Frame(), m.session.Mode())
	return RenderFramed(m.renderer.Screen()) + "\n" +
		statusStyle.Render(status) + "\n" +
		m.help.View(m.keys)
}

// Run plays sc in the terminal until the user quits or a tick fails.
func Run(sc registry.Scene, cfg config.SceneConfig, opts Options) error {
	model, err := NewModel(sc, cfg, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
