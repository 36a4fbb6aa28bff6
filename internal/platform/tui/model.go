package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/journal"
)

// Options configures the game screen.
type Options struct {
	Snake         snake.Config
	CellWidth     int
	Runtime       core.RuntimeConfig
	Saver         journal.Saver // nil disables the run journal
	Logger        *log.Logger
	ScreenshotDir string           // Defaults to ~/.snake/screenshots
	Clock         func() time.Time // Defaults to time.Now
}

// Model is the Bubble Tea model for a snake session.
type Model struct {
	session       *snake.Session
	recorder      *journal.Recorder
	screen        *core.Screen
	keys          KeyMap
	help          help.Model
	logger        *log.Logger
	config        core.RuntimeConfig
	cellWidth     int
	screenshotDir string
	clock         func() time.Time
	status        string // Transient HUD message
	quitting      bool
}

// NewModel creates a new Bubble Tea model with a fresh session.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	dir := opts.ScreenshotDir
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".snake", "screenshots")
	}

	h := help.New()
	h.ShowAll = false
	h.Width = cfg.ScreenW

	m := Model{
		session:       snake.NewSession(opts.Snake, cfg.Seed, snake.WithClock(clock)),
		recorder:      journal.NewRecorder(opts.Saver, opts.Snake, logger),
		screen:        core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 0)),
		keys:          DefaultKeyMap(),
		help:          h,
		logger:        logger,
		config:        cfg,
		cellWidth:     opts.CellWidth,
		screenshotDir: dir,
		clock:         clock,
	}
	m.startRecording()
	return m
}

// Session returns the session the model drives.
func (m Model) Session() *snake.Session {
	return m.session
}

// Init starts the poll loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionScreenshot:
		m.saveScreenshot()
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	case core.ActionRestart:
		m.session.HandleRestart()
		m.status = ""
		m.startRecording()
	default:
		if action.IsDirection() {
			h, _ := HeadingFor(action)
			m.steer(h)
		}
	}

	return m, nil
}

// steer forwards a heading request and journals it when accepted.
func (m Model) steer(h snake.Heading) {
	e := m.session.Engine()
	if e == nil {
		return
	}
	step := e.Steps()
	if m.session.HandleDirection(h) {
		m.recorder.Input(step, h)
	}
}

// handleResize processes window resize events. A board that no longer fits
// shows the too-small overlay and holds the game.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	return m, nil
}

// handleTick polls the session and records the run when the game ends.
// The game holds while the board does not fit the terminal.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.tooSmall() {
		m.session.Hold(now)
		return m, tickCmd(m.config.FPS)
	}

	if m.session.Advance(now) {
		v := m.session.View()
		m.logger.Info("game over", "game", v.Game, "score", v.Score, "cause", v.Cause, "steps", v.Steps, "seed", v.Seed)
		//nolint:errcheck // Logged by the recorder, the game continues regardless
		m.recorder.Finish(v, now)
	}

	// Continue ticking
	return m, tickCmd(m.config.FPS)
}

// startRecording begins journaling the session's current game.
func (m Model) startRecording() {
	v := m.session.View()
	m.logger.Debug("game started", "game", v.Game, "seed", v.Seed)
	m.recorder.Start(v.Seed, m.clock())
}

// helpLines is the number of rows the help footer takes.
func (m Model) helpLines() int {
	if m.help.ShowAll {
		rows := 0
		for _, col := range m.keys.FullHelp() {
			rows = max(rows, len(col))
		}
		return rows
	}
	return 1
}

// tooSmall reports whether the board is hidden behind the resize overlay.
func (m Model) tooSmall() bool {
	h := max(m.config.ScreenH-m.helpLines(), 0)
	return BoardLayout(m.config.ScreenW, h, m.session.View().Grid, m.cellWidth).TooSmall
}

// render draws the current state into the screen buffer.
func (m *Model) render() {
	m.screen.Resize(m.config.ScreenW, max(m.config.ScreenH-m.helpLines(), 0))
	DrawGame(m.screen, m.session.View(), m.cellWidth, m.status)
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.render()

	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "dir", m.screenshotDir, "err", err)
		m.status = "screenshot failed"
		return
	}

	// Generate filename with timestamp
	timestamp := m.clock().Format("20060102_150405")
	path := filepath.Join(m.screenshotDir, fmt.Sprintf("snake_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "err", err)
		m.status = "screenshot failed"
		return
	}
	m.logger.Info("screenshot saved", "path", path)
	m.status = "saved " + filepath.Base(path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.render()
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program for a new session.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
