// Package tui provides the Bubble Tea shell around the snake session.
// It polls the session on a fixed frame rate, maps keys to actions and draws
// the session view onto a core.Screen.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent on every host poll. The session decides on its own whether
// enough time has passed to step the game.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
