package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/grid"
)

// Board layout constants
const (
	hudHeight = 2 // Status line plus separator
	frameSize = 2 // One border cell on each side
)

// Cell runes
const (
	headRune = 'O'
	bodyRune = 'o'
	foodRune = '*'
)

// Layout places the board on a screen.
type Layout struct {
	Board     core.Rect // Inner playfield, excluding the frame
	CellWidth int       // Screen columns per grid cell
	TooSmall  bool
}

// BoardLayout centers a grid below the HUD. The board is marked TooSmall
// when the screen cannot hold it with its frame.
func BoardLayout(screenW, screenH int, g grid.Grid, cellWidth int) Layout {
	if cellWidth < 1 {
		cellWidth = 1
	}
	w := g.Width * cellWidth
	h := g.Height

	if w+frameSize > screenW || h+frameSize+hudHeight > screenH {
		return Layout{CellWidth: cellWidth, TooSmall: true}
	}

	area := core.NewRect(0, hudHeight, screenW, screenH-hudHeight)
	outer := area.Centered(w+frameSize, h+frameSize)
	return Layout{
		Board:     core.NewRect(outer.X+1, outer.Y+1, w, h),
		CellWidth: cellWidth,
	}
}

// MinScreenSize returns the smallest screen that fits the board.
func MinScreenSize(g grid.Grid, cellWidth int) (w, h int) {
	if cellWidth < 1 {
		cellWidth = 1
	}
	return g.Width*cellWidth + frameSize, g.Height + frameSize + hudHeight
}

// DrawGame paints the session view onto the screen: HUD, framed board,
// snake, food and any overlay.
func DrawGame(dst *core.Screen, v snake.View, cellWidth int, status string) {
	dst.Clear()
	drawHUD(dst, v, status)

	layout := BoardLayout(dst.Width(), dst.Height(), v.Grid, cellWidth)
	if layout.TooSmall {
		minW, minH := MinScreenSize(v.Grid, cellWidth)
		drawOverlay(dst, core.ColorYellow,
			"Window too small",
			fmt.Sprintf("Need %dx%d, have %dx%d", minW, minH, dst.Width(), dst.Height()),
			"Resize to continue",
		)
		return
	}

	frame := core.NewRect(layout.Board.X-1, layout.Board.Y-1, layout.Board.W+frameSize, layout.Board.H+frameSize)
	dst.DrawBox(frame, core.ColorGray)

	if v.HasFood {
		drawCell(dst, layout, v.Food, foodRune, core.ColorRed)
	}

	// Tail first so the head wins if anything overlaps
	for i := len(v.Body) - 1; i >= 0; i-- {
		if i == 0 {
			drawCell(dst, layout, v.Body[i], headRune, core.ColorBrightGreen)
		} else {
			drawCell(dst, layout, v.Body[i], bodyRune, core.ColorGreen)
		}
	}

	if v.Over {
		drawOverlay(dst, core.ColorYellow,
			"Game Over!",
			fmt.Sprintf("Final score: %d", v.Score),
			causeText(v.Cause),
			"Press R to restart",
		)
	}
}

// drawCell fills the screen columns of one grid cell.
func drawCell(dst *core.Screen, l Layout, c grid.Coord, r rune, color core.Color) {
	x := l.Board.X + c.X*l.CellWidth
	y := l.Board.Y + c.Y
	for i := range l.CellWidth {
		if l.Board.Contains(x+i, y) {
			dst.SetColored(x+i, y, r, color)
		}
	}
}

// drawHUD draws the top status bar.
func drawHUD(dst *core.Screen, v snake.View, status string) {
	title := " Snake "
	dst.DrawText(0, 0, title, core.ColorCyan)

	stats := fmt.Sprintf("Score: %d  Length: %d  Game: %d", v.Score, len(v.Body), v.Game)
	dst.DrawText(len(title)+1, 0, stats, core.ColorDefault)

	if status != "" {
		x := dst.Width() - len([]rune(status)) - 1
		if x > len(title)+len(stats)+2 {
			dst.DrawText(x, 0, status, core.ColorGray)
		}
	}

	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// drawOverlay draws a framed box of centered lines in the middle of the screen.
func drawOverlay(dst *core.Screen, c core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	screen := core.NewRect(0, 0, dst.Width(), dst.Height())
	box := screen.Centered(maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, c)

	for i, line := range lines {
		dst.DrawTextCentered(box.Y+1+i, line, c)
	}
}

// causeText describes why a game ended.
func causeText(c snake.EndCause) string {
	switch c {
	case snake.CauseWall:
		return "Hit the wall"
	case snake.CauseSelf:
		return "Ran into itself"
	case snake.CauseBoardFull:
		return "Board full, you win"
	default:
		return ""
	}
}
