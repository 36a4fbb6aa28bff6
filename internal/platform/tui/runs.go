package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/journal"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// RunLoader fetches a run with its inputs. *storage.Store satisfies it.
type RunLoader interface {
	Run(id int64) (*storage.Run, error)
}

// RunsKeyMap defines the key bindings for the run browser.
type RunsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Verify key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Verify, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Verify, k.Quit}}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Verify: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "verify replay"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for browsing recorded runs.
type RunsModel struct {
	runs     []storage.Run
	loader   RunLoader
	table    table.Model
	help     help.Model
	keys     RunsKeyMap
	width    int
	height   int
	status   string // Result of the last verification
	quitting bool
}

// NewRunsModel creates a run browser over runs, newest first.
func NewRunsModel(runs []storage.Run, loader RunLoader, width, height int) RunsModel {
	h := help.New()
	h.Width = width

	m := RunsModel{
		runs:   runs,
		loader: loader,
		help:   h,
		keys:   DefaultRunsKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a new table with the run columns.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Score", Width: 7},
		{Title: "Cause", Width: 11},
		{Title: "Steps", Width: 7},
		{Title: "Seed", Width: 20},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for title, status and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("28")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table from the loaded runs.
func (m *RunsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = RunRow(r)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// RunRow formats a run as table cells.
func RunRow(r storage.Run) table.Row {
	return table.Row{
		fmt.Sprintf("%d", r.ID),
		fmt.Sprintf("%d", r.Score),
		r.Cause,
		fmt.Sprintf("%d", r.Steps),
		fmt.Sprintf("%d", r.Seed),
		r.EndedAt.Local().Format("Jan 02 15:04"),
	}
}

// Init initializes the run browser.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run browser.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Verify):
			m.verifySelected()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// verifySelected replays the highlighted run and stores the outcome in status.
func (m *RunsModel) verifySelected() {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) || m.loader == nil {
		return
	}

	run, err := m.loader.Run(m.runs[i].ID)
	if err != nil {
		m.status = fmt.Sprintf("run %d: %v", m.runs[i].ID, err)
		return
	}
	res, err := journal.Verify(*run)
	if err != nil {
		m.status = fmt.Sprintf("run %d: %v", run.ID, err)
		return
	}
	m.status = VerifySummary(res)
}

// VerifySummary describes a replay verification in one line.
func VerifySummary(res journal.Result) string {
	if res.Matches() {
		return fmt.Sprintf("run %d verified: score %d, %s after %d steps",
			res.Run.ID, res.Snapshot.Score, res.Snapshot.Cause, res.Snapshot.Steps)
	}
	return fmt.Sprintf("run %d MISMATCH: stored score %d/%s/%d steps, replay %d/%s/%d steps",
		res.Run.ID, res.Run.Score, res.Run.Cause, res.Run.Steps,
		res.Snapshot.Score, res.Snapshot.Cause, res.Snapshot.Steps)
}

// View renders the run browser.
func (m RunsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("10"))
	b.WriteString(titleStyle.Render(fmt.Sprintf("RECENT RUNS (%d)", len(m.runs))))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No runs recorded yet.\nPlay a game to fill the journal!")))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render(m.status))
	}
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// BrowseRuns runs the run browser screen.
func BrowseRuns(runs []storage.Run, loader RunLoader, width, height int) error {
	model := NewRunsModel(runs, loader, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
