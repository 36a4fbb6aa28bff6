package snake

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StateGameOver GameStateType = "game_over"
)

// Snapshot captures the scalar game state for determinism testing and replay.
// It is comparable with ==.
type Snapshot struct {
	Seed     int64
	Steps    int
	Score    int
	SnakeLen int
	HeadX    int
	HeadY    int
	Dir      Heading
	FoodX    int
	FoodY    int
	Cause    EndCause
	State    GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (e *Engine) Snapshot() Snapshot {
	state := StatePlaying
	if e.Over() {
		state = StateGameOver
	}

	head := e.Head()
	return Snapshot{
		Seed:     e.seed,
		Steps:    e.steps,
		Score:    e.score,
		SnakeLen: len(e.body),
		HeadX:    head.X,
		HeadY:    head.Y,
		Dir:      e.heading,
		FoodX:    e.food.X,
		FoodY:    e.food.Y,
		Cause:    e.cause,
		State:    state,
	}
}
