package snake

import (
	"math/rand"
	"slices"
	"time"

	"github.com/vovakirdan/tui-snake/internal/grid"
)

// State is the session lifecycle. Exactly one of Playing or Ended is live.
type State interface {
	isState()
}

// Playing holds the running engine.
type Playing struct {
	Engine *Engine
}

// Ended retains the outcome of a finished game and its last frame.
type Ended struct {
	Score int
	Cause EndCause
	Seed  int64
	Steps int
	Frame Frame
}

func (Playing) isState() {}
func (Ended) isState()   {}

// Frame is the drawable part of a board.
type Frame struct {
	Body    []grid.Coord // Head first
	Food    grid.Coord
	HasFood bool
}

// View is a read-only snapshot for the drawing layer.
type View struct {
	Frame
	Grid    grid.Grid
	Score   int // Final score when Over
	Heading Heading
	Over    bool
	Cause   EndCause
	Seed    int64
	Steps   int
	Game    int // 1 for the first game, incremented on every restart
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the time source used when a fresh game starts.
func WithClock(clock func() time.Time) Option {
	return func(s *Session) {
		s.clock = clock
	}
}

// Session wraps the engine in the Playing/Ended lifecycle. It is owned by a
// single control loop and is not safe for concurrent use.
type Session struct {
	cfg   Config
	rng   *rand.Rand // Seeds each new game
	clock func() time.Time
	state State
	games int
}

// NewSession creates a session that is already Playing a fresh game.
func NewSession(cfg Config, seed int64, opts ...Option) *Session {
	s := &Session{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.start()
	return s
}

// start replaces the current state with a brand new game.
func (s *Session) start() {
	s.games++
	s.state = Playing{Engine: NewEngine(s.cfg, s.rng.Int63(), s.clock())}
}

// HandleDirection forwards a heading request to the running game. It is
// ignored once the game has ended. Returns whether the heading was accepted.
func (s *Session) HandleDirection(h Heading) bool {
	p, ok := s.state.(Playing)
	if !ok {
		return false
	}
	return p.Engine.SetHeading(h)
}

// HandleRestart discards the current game, running or ended, and starts a
// fresh one.
func (s *Session) HandleRestart() {
	s.start()
}

// Advance steps the running game if its interval has elapsed. Returns true
// when this call ended the game.
func (s *Session) Advance(now time.Time) bool {
	p, ok := s.state.(Playing)
	if !ok {
		return false
	}
	p.Engine.Tick(now)
	if !p.Engine.Over() {
		return false
	}

	e := p.Engine
	food, hasFood := e.Food()
	s.state = Ended{
		Score: e.Score(),
		Cause: e.Cause(),
		Seed:  e.Seed(),
		Steps: e.Steps(),
		Frame: Frame{Body: e.Body(), Food: food, HasFood: hasFood},
	}
	return true
}

// Hold keeps the running game in place, restarting its step interval at now.
func (s *Session) Hold(now time.Time) {
	if p, ok := s.state.(Playing); ok {
		p.Engine.Hold(now)
	}
}

// State returns the live lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Engine returns the running engine, or nil once the game has ended.
func (s *Session) Engine() *Engine {
	if p, ok := s.state.(Playing); ok {
		return p.Engine
	}
	return nil
}

// View returns a snapshot of the current state for drawing.
func (s *Session) View() View {
	v := View{Grid: s.cfg.Grid, Game: s.games}

	switch st := s.state.(type) {
	case Playing:
		e := st.Engine
		food, hasFood := e.Food()
		v.Frame = Frame{Body: e.Body(), Food: food, HasFood: hasFood}
		v.Score = e.Score()
		v.Heading = e.Heading()
		v.Seed = e.Seed()
		v.Steps = e.Steps()
	case Ended:
		v.Frame = Frame{Body: slices.Clone(st.Frame.Body), Food: st.Frame.Food, HasFood: st.Frame.HasFood}
		v.Score = st.Score
		v.Over = true
		v.Cause = st.Cause
		v.Seed = st.Seed
		v.Steps = st.Steps
	}
	return v
}
