// Package snake implements the grid snake simulation: the engine that moves,
// grows and collides the snake, and the session that wraps it in a
// Playing/Ended lifecycle. It has no UI dependencies; the platform layer
// feeds it input and timestamps and draws its View.
package snake

import (
	"math/rand"
	"slices"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/grid"
)

// Config holds the fixed parameters of a game.
type Config struct {
	Grid         grid.Grid
	Origin       grid.Coord
	Heading      Heading
	TickInterval time.Duration
	FoodRetries  int
}

// DefaultConfig returns the classic 40x40 board stepping every 100ms.
func DefaultConfig() Config {
	cfg, _ := ConfigFrom(config.DefaultSnakeConfig())
	return cfg
}

// ConfigFrom converts a loaded YAML config into engine parameters.
func ConfigFrom(c config.SnakeConfig) (Config, error) {
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	heading, err := ParseHeading(c.Start.Heading)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Grid:         grid.New(c.Grid.Width, c.Grid.Height),
		Origin:       grid.Coord{X: c.Start.X, Y: c.Start.Y},
		Heading:      heading,
		TickInterval: c.TickInterval(),
		FoodRetries:  c.Food.Retries,
	}, nil
}

// EndCause records why a game stopped.
type EndCause int

const (
	CauseNone EndCause = iota
	CauseWall
	CauseSelf
	CauseBoardFull // No free cell left to place food
)

func (c EndCause) String() string {
	switch c {
	case CauseWall:
		return "wall"
	case CauseSelf:
		return "self"
	case CauseBoardFull:
		return "board_full"
	default:
		return "none"
	}
}

// ParseEndCause converts a name produced by String back into an EndCause.
func ParseEndCause(s string) EndCause {
	switch s {
	case "wall":
		return CauseWall
	case "self":
		return CauseSelf
	case "board_full":
		return CauseBoardFull
	default:
		return CauseNone
	}
}

// Engine owns one game's snake, food and score.
type Engine struct {
	cfg  Config
	rng  *rand.Rand
	seed int64

	body    []grid.Coord // Head at index 0
	heading Heading      // Applied on the last step
	pending Heading      // Applied on the next step

	food    grid.Coord
	hasFood bool
	score   int

	steps    int
	lastTick time.Time
	cause    EndCause
}

// NewEngine starts a game with a single-segment snake at the configured
// origin. All randomness comes from seed, so equal seeds and inputs give
// equal games.
func NewEngine(cfg Config, seed int64, now time.Time) *Engine {
	e := &Engine{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(seed)),
		seed:     seed,
		body:     []grid.Coord{cfg.Origin},
		heading:  cfg.Heading,
		pending:  cfg.Heading,
		lastTick: now,
	}
	e.spawnFood()
	return e
}

// SetHeading buffers a direction change for the next step. A request that
// reverses the last applied heading or the pending one is ignored, so no
// sequence of inputs between two steps can turn the snake back on itself.
// Returns whether the request was accepted.
func (e *Engine) SetHeading(h Heading) bool {
	if e.Over() || !h.Valid() {
		return false
	}
	if h == e.heading.Opposite() || h == e.pending.Opposite() {
		return false
	}
	e.pending = h
	return true
}

// Tick advances the game by one step if at least TickInterval has passed
// since the last step. Returns whether a step was taken.
func (e *Engine) Tick(now time.Time) bool {
	if e.Over() {
		return false
	}
	if now.Sub(e.lastTick) < e.cfg.TickInterval {
		return false
	}
	e.step()
	if !e.Over() {
		e.lastTick = now
	}
	return true
}

// Hold restarts the step interval at now without moving the snake.
// A paused host calls it on every poll so resuming does not catch up.
func (e *Engine) Hold(now time.Time) {
	if !e.Over() {
		e.lastTick = now
	}
}

// step moves the snake one cell unconditionally.
func (e *Engine) step() {
	e.steps++
	e.heading = e.pending

	dx, dy := e.heading.Offset()
	newHead := e.body[0].Add(dx, dy)

	if !e.cfg.Grid.Contains(newHead) {
		e.cause = CauseWall
		return
	}
	if e.occupies(newHead) {
		e.cause = CauseSelf
		return
	}

	e.body = append([]grid.Coord{newHead}, e.body...)

	if e.hasFood && newHead == e.food {
		e.score++
		e.spawnFood()
		return
	}

	// Move without growth
	e.body = e.body[:len(e.body)-1]
}

// spawnFood places food on a cell the snake does not occupy. A full board
// ends the game.
func (e *Engine) spawnFood() {
	food, ok := RandomFood(e.rng, e.cfg.Grid, e.occupies, e.cfg.FoodRetries)
	e.food = food
	e.hasFood = ok
	if !ok {
		e.cause = CauseBoardFull
	}
}

// RandomFood draws a uniformly random free cell. It tries up to retries
// random draws, then picks from the explicit list of free cells so it always
// terminates. Returns false only when every cell is occupied.
func RandomFood(rng *rand.Rand, g grid.Grid, occupied func(grid.Coord) bool, retries int) (grid.Coord, bool) {
	if g.Size() == 0 {
		return grid.Coord{}, false
	}
	for range retries {
		c := grid.Coord{X: rng.Intn(g.Width), Y: rng.Intn(g.Height)}
		if !occupied(c) {
			return c, true
		}
	}

	free := g.Free(occupied)
	if len(free) == 0 {
		return grid.Coord{}, false
	}
	return free[rng.Intn(len(free))], true
}

// occupies reports whether any body segment is at c.
func (e *Engine) occupies(c grid.Coord) bool {
	return slices.Contains(e.body, c)
}

// Over reports whether the game has ended.
func (e *Engine) Over() bool {
	return e.cause != CauseNone
}

// Cause returns why the game ended, or CauseNone while it runs.
func (e *Engine) Cause() EndCause {
	return e.cause
}

// Score returns the number of food items eaten.
func (e *Engine) Score() int {
	return e.score
}

// Heading returns the heading the next step will use.
func (e *Engine) Heading() Heading {
	return e.pending
}

// Body returns a copy of the snake, head first.
func (e *Engine) Body() []grid.Coord {
	return slices.Clone(e.body)
}

// Head returns the head position.
func (e *Engine) Head() grid.Coord {
	return e.body[0]
}

// Food returns the food position and whether food is on the board.
func (e *Engine) Food() (grid.Coord, bool) {
	return e.food, e.hasFood
}

// Steps returns how many steps have been taken, including a final colliding one.
func (e *Engine) Steps() int {
	return e.steps
}

// Seed returns the seed the game's randomness was drawn from.
func (e *Engine) Seed() int64 {
	return e.seed
}
