package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/grid"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

const interval = 100 * time.Millisecond

type memSaver struct {
	runs []storage.Run
}

func (m *memSaver) SaveRun(run storage.Run) (int64, error) {
	m.runs = append(m.runs, run)
	return int64(len(m.runs)), nil
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func newTestModel(t *testing.T, w, h int, origin grid.Coord) (Model, *memSaver, *testClock) {
	t.Helper()
	saver := &memSaver{}
	clock := &testClock{now: t0}
	m := NewModel(Options{
		Snake: snake.Config{
			Grid:         grid.New(w, h),
			Origin:       origin,
			Heading:      snake.Right,
			TickInterval: interval,
			FoodRetries:  16,
		},
		CellWidth:     2,
		Runtime:       core.RuntimeConfig{ScreenW: 80, ScreenH: 30, FPS: 60, Seed: 7},
		Saver:         saver,
		ScreenshotDir: t.TempDir(),
		Clock:         clock.Now,
	})
	return m, saver, clock
}

// send applies a message and returns the updated model.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

// tick advances the clock by one interval and delivers a tick.
func tick(t *testing.T, m Model, clock *testClock) Model {
	t.Helper()
	clock.now = clock.now.Add(interval)
	m, cmd := send(t, m, TickMsg(clock.now))
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	return m
}

func TestModelInit(t *testing.T) {
	m, _, _ := newTestModel(t, 20, 20, grid.Coord{X: 5, Y: 5})
	if m.Init() == nil {
		t.Error("Init should start the tick loop")
	}
	if _, ok := m.Session().State().(snake.Playing); !ok {
		t.Error("new model should be playing")
	}
}

func TestModelSteers(t *testing.T) {
	m, _, clock := newTestModel(t, 20, 20, grid.Coord{X: 5, Y: 5})

	m, _ = send(t, m, runeKey('s'))
	m = tick(t, m, clock)

	if head := m.Session().View().Body[0]; head != (grid.Coord{X: 5, Y: 6}) {
		t.Errorf("head = %v, expected (5,6)", head)
	}
}

func TestModelRecordsFinishedGame(t *testing.T) {
	m, saver, clock := newTestModel(t, 5, 5, grid.Coord{X: 2, Y: 2})

	// Reversal is rejected and not journaled
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})

	// (2,3), (2,4), then the bottom wall
	for range 3 {
		m = tick(t, m, clock)
	}

	v := m.Session().View()
	if !v.Over || v.Cause != snake.CauseWall {
		t.Fatalf("view = %+v, expected a wall ending", v)
	}
	if len(saver.runs) != 1 {
		t.Fatalf("expected one recorded run, got %d", len(saver.runs))
	}

	run := saver.runs[0]
	if run.Seed != v.Seed || run.Steps != 3 || run.Cause != "wall" {
		t.Errorf("run = %+v, expected seed %d, 3 steps, wall", run, v.Seed)
	}
	want := []storage.RunInput{{Step: 0, Heading: "down"}}
	if len(run.Inputs) != 1 || run.Inputs[0] != want[0] {
		t.Errorf("inputs = %+v, expected %+v", run.Inputs, want)
	}

	// Further ticks do not record again
	m = tick(t, m, clock)
	if len(saver.runs) != 1 {
		t.Errorf("ended game recorded %d times", len(saver.runs))
	}
}

func TestModelRestart(t *testing.T) {
	m, saver, clock := newTestModel(t, 5, 5, grid.Coord{X: 4, Y: 2})
	m = tick(t, m, clock)
	if !m.Session().View().Over {
		t.Fatal("expected the first game to end")
	}

	m, _ = send(t, m, runeKey('r'))

	v := m.Session().View()
	if v.Over || v.Game != 2 || v.Score != 0 {
		t.Errorf("after restart view = %+v, expected fresh game 2", v)
	}

	// The second game is journaled as its own run
	m = tick(t, m, clock)
	if len(saver.runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(saver.runs))
	}
	if saver.runs[0].Seed == saver.runs[1].Seed {
		t.Error("restarted game should use a new seed")
	}
}

func TestModelQuit(t *testing.T) {
	m, _, _ := newTestModel(t, 20, 20, grid.Coord{X: 5, Y: 5})

	m, cmd := send(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestModelHelpToggle(t *testing.T) {
	m, _, _ := newTestModel(t, 20, 20, grid.Coord{X: 5, Y: 5})
	if m.helpLines() != 1 {
		t.Errorf("short help lines = %d, expected 1", m.helpLines())
	}

	m, _ = send(t, m, runeKey('?'))
	if !m.help.ShowAll {
		t.Error("? should expand the help")
	}
	if m.helpLines() != 4 {
		t.Errorf("full help lines = %d, expected 4", m.helpLines())
	}
}

func TestModelResize(t *testing.T) {
	m, _, _ := newTestModel(t, 20, 20, grid.Coord{X: 5, Y: 5})

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 30, Height: 12})
	m.View()

	if m.screen.Width() != 30 || m.screen.Height() != 11 {
		t.Errorf("screen = %dx%d, expected 30x11", m.screen.Width(), m.screen.Height())
	}
	if !strings.Contains(m.screen.String(), "Window too small") {
		t.Error("20x20 board should not fit a 30x12 terminal")
	}

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	m.View()
	if strings.Contains(m.screen.String(), "Window too small") {
		t.Error("board should fit after growing the terminal")
	}
}

func TestModelHoldsWhileTooSmall(t *testing.T) {
	m, saver, clock := newTestModel(t, 10, 10, grid.Coord{X: 5, Y: 5})

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 10, Height: 5})
	if !m.tooSmall() {
		t.Fatal("10x10 board should not fit a 10x5 terminal")
	}
	for range 20 {
		m = tick(t, m, clock)
	}

	v := m.Session().View()
	if v.Over || v.Steps != 0 {
		t.Fatalf("view = %+v, expected the game to hold", v)
	}
	if len(saver.runs) != 0 {
		t.Fatalf("held game recorded %d runs", len(saver.runs))
	}

	// Resuming takes one step per interval, with no catch-up
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	clock.now = clock.now.Add(interval / 2)
	m, _ = send(t, m, TickMsg(clock.now))
	if steps := m.Session().View().Steps; steps != 0 {
		t.Fatalf("steps = %d half an interval after resuming, expected 0", steps)
	}
	m = tick(t, m, clock)
	if steps := m.Session().View().Steps; steps != 1 {
		t.Errorf("steps = %d after resuming, expected 1", steps)
	}
}

func TestModelScreenshot(t *testing.T) {
	m, _, _ := newTestModel(t, 20, 20, grid.Coord{X: 5, Y: 5})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	path := filepath.Join(m.screenshotDir, "snake_"+t0.Format("20060102_150405")+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("screenshot not written: %v", err)
	}
	if !strings.Contains(string(data), "Score: 0") {
		t.Errorf("screenshot missing HUD:\n%s", data)
	}
	if !strings.HasPrefix(m.status, "saved ") {
		t.Errorf("status = %q, expected a saved message", m.status)
	}
}
