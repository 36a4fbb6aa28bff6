// Package grid provides the fixed-size discrete coordinate space the snake
// lives on. It has no mutable state: a Grid only answers whether a Coord is
// on the board.
package grid

import "fmt"

// Coord is a cell position. Components are signed so that a step off the
// low edge yields -1 and fails Contains, the same way a step off the high
// edge does.
type Coord struct {
	X, Y int
}

// Add returns the coordinate offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Grid is a W×H board with cells 0 <= x < W and 0 <= y < H.
type Grid struct {
	Width  int
	Height int
}

// New creates a grid with the given dimensions.
func New(width, height int) Grid {
	return Grid{Width: width, Height: height}
}

// Contains reports whether c lies on the grid.
func (g Grid) Contains(c Coord) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Size returns the number of cells on the grid.
func (g Grid) Size() int {
	if g.Width <= 0 || g.Height <= 0 {
		return 0
	}
	return g.Width * g.Height
}

// Free returns every on-grid cell not present in occupied, in row-major order.
func (g Grid) Free(occupied func(Coord) bool) []Coord {
	cells := make([]Coord, 0, g.Size())
	for y := range g.Height {
		for x := range g.Width {
			c := Coord{X: x, Y: y}
			if !occupied(c) {
				cells = append(cells, c)
			}
		}
	}
	return cells
}
