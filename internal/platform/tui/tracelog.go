package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilequest/internal/storage"
)

// Trace browser layout constants
const (
	minWidthForRuns = 90  // Minimum width to show the run list sidebar
	runsWidth       = 24  // Width of the run list sidebar
	maxRuns         = 50  // Max runs to list
	maxEvents       = 500 // Max events to load per run
)

// TraceKeyMap defines the key bindings for the trace browser.
type TraceKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextRun key.Binding
	PrevRun key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k TraceKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextRun, k.PrevRun, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k TraceKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextRun, k.PrevRun, k.Quit},
	}
}

// DefaultTraceKeyMap returns default key bindings.
func DefaultTraceKeyMap() TraceKeyMap {
	return TraceKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextRun: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "older run"),
		),
		PrevRun: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "newer run"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// TraceModel is the Bubble Tea model for browsing recorded runs.
type TraceModel struct {
	runs      []storage.RunSummary
	runCursor int
	store     *storage.Store
	events    []storage.EventRecord
	table     table.Model
	help      help.Model
	keys      TraceKeyMap
	width     int
	height    int
	showRuns  bool
	quitting  bool
	loadErr   error
}

// NewTraceModel creates a trace browser over store.
func NewTraceModel(store *storage.Store, width, height int) TraceModel {
	m := TraceModel{
		store:    store,
		keys:     DefaultTraceKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
		showRuns: width >= minWidthForRuns,
	}
	m.table = m.createTable()

	if store != nil {
		runs, err := store.Runs(maxRuns)
		m.runs = runs
		m.loadErr = err
	}
	if len(m.runs) > 0 {
		m.loadEvents(m.runs[0].RunID)
	}
	return m
}

func (m *TraceModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Frame", Width: 7},
		{Title: "Kind", Width: 10},
		{Title: "Source", Width: 12},
		{Title: "Detail", Width: 30},
	}

	tableWidth := m.width - 4
	if m.showRuns {
		tableWidth -= runsWidth + 3
	}
	if detail := tableWidth - 35; detail > 30 {
		columns[3].Width = detail
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *TraceModel) loadEvents(runID string) {
	events, err := m.store.RunEvents(runID, maxEvents)
	m.events = events
	m.loadErr = err
	m.updateTableRows()
}

func (m *TraceModel) updateTableRows() {
	rows := make([]table.Row, len(m.events))
	for i, e := range m.events {
		rows[i] = table.Row{
			fmt.Sprintf("%d", e.Frame),
			e.Kind,
			e.Source,
			e.Detail,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *TraceModel) selectRun(delta int) {
	if len(m.runs) == 0 {
		return
	}
	m.runCursor = (m.runCursor + delta + len(m.runs)) % len(m.runs)
	m.loadEvents(m.runs[m.runCursor].RunID)
}

// Init initializes the trace browser.
func (m TraceModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the trace browser.
func (m TraceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextRun):
			m.selectRun(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevRun):
			m.selectRun(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showRuns = m.width >= minWidthForRuns
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the trace browser.
func (m TraceModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "TRACES"
	if len(m.runs) > 0 {
		r := m.runs[m.runCursor]
		title = fmt.Sprintf("TRACES - %s %s", r.SceneID, shortID(r.RunID))
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	events := boxStyle.Render(m.renderTableContent())
	if m.showRuns {
		runs := boxStyle.Width(runsWidth).Render(m.renderRunList())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, runs, "  ", events))
	} else {
		b.WriteString(events)
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m TraceModel) renderRunList() string {
	var sb strings.Builder
	sb.WriteString("Runs\n")
	sb.WriteString(strings.Repeat("-", runsWidth-4))
	sb.WriteString("\n")

	for i, r := range m.runs {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.runCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		line := fmt.Sprintf("%s%s %s", cursor, r.StartedAt.Format("01-02 15:04"), shortID(r.RunID))
		sb.WriteString(style.Render(line))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m TraceModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not read traces:\n" + m.loadErr.Error())
	case len(m.events) == 0:
		return emptyStyle.Render("No events recorded.\nPlay with --record to record a run.")
	}
	return m.table.View()
}

// shortID returns the first block of a run UUID.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// RunTraceBrowser shows the recorded runs in store until the user quits.
func RunTraceBrowser(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewTraceModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
