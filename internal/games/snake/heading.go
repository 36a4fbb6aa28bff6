package snake

import "fmt"

// Heading is the direction the snake moves on the next step.
type Heading int

const (
	Up Heading = iota
	Down
	Left
	Right
)

// Offset returns the unit grid delta for the heading. Y grows downwards.
func (h Heading) Offset() (dx, dy int) {
	switch h {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the 180° reverse of h.
func (h Heading) Opposite() Heading {
	switch h {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Valid reports whether h is one of the four headings.
func (h Heading) Valid() bool {
	return h >= Up && h <= Right
}

func (h Heading) String() string {
	switch h {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseHeading converts a name produced by String back into a Heading.
func ParseHeading(s string) (Heading, error) {
	switch s {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, fmt.Errorf("snake: unknown heading %q", s)
}
