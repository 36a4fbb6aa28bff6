package core

// Color represents a foreground color for a screen cell.
// The platform maps these to terminal colors.
type Color uint8

// Colors used by the board and HUD.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorBrightGreen
	ColorRed
	ColorYellow
	ColorCyan
	ColorGray
)
