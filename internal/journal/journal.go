// Package journal records finished games into the run store and replays
// stored runs back through the engine.
package journal

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/grid"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Saver persists a finished run. *storage.Store satisfies it.
type Saver interface {
	SaveRun(run storage.Run) (int64, error)
}

// Recorder collects one game's inputs and writes the run when it ends.
// A nil saver turns it into a no-op, which is how --no-journal works.
type Recorder struct {
	saver    Saver
	logger   *log.Logger
	settings storage.RunSettings

	active  bool
	current storage.Run
}

// NewRecorder creates a recorder for games played with cfg.
func NewRecorder(saver Saver, cfg snake.Config, logger *log.Logger) *Recorder {
	return &Recorder{
		saver:    saver,
		logger:   logger,
		settings: SettingsFrom(cfg),
	}
}

// Start begins recording a game. Any unfinished recording is dropped.
func (r *Recorder) Start(seed int64, now time.Time) {
	if r.active {
		r.logger.Debug("dropping unfinished run", "seed", r.current.Seed, "inputs", len(r.current.Inputs))
	}
	r.active = true
	r.current = storage.Run{
		Seed:      seed,
		Settings:  r.settings,
		StartedAt: now,
	}
}

// Input records an accepted heading request that arrived before step.
func (r *Recorder) Input(step int, h snake.Heading) {
	if !r.active {
		return
	}
	r.current.Inputs = append(r.current.Inputs, storage.RunInput{Step: step, Heading: h.String()})
}

// Finish stores the run that v ended. Returns the stored run ID, or 0 when
// nothing was written.
func (r *Recorder) Finish(v snake.View, now time.Time) (int64, error) {
	if !r.active || !v.Over {
		return 0, nil
	}
	r.active = false

	if v.Seed != r.current.Seed {
		r.logger.Warn("run seed mismatch, not recording", "recorded", r.current.Seed, "ended", v.Seed)
		return 0, nil
	}

	run := r.current
	run.Score = v.Score
	run.Cause = v.Cause.String()
	run.Steps = v.Steps
	run.EndedAt = now

	if r.saver == nil {
		return 0, nil
	}
	id, err := r.saver.SaveRun(run)
	if err != nil {
		r.logger.Error("failed to save run", "err", err)
		return 0, err
	}
	r.logger.Info("run recorded", "id", id, "score", run.Score, "cause", run.Cause, "steps", run.Steps)
	return id, nil
}

// SettingsFrom converts engine parameters into their stored form.
func SettingsFrom(cfg snake.Config) storage.RunSettings {
	return storage.RunSettings{
		GridW:       cfg.Grid.Width,
		GridH:       cfg.Grid.Height,
		OriginX:     cfg.Origin.X,
		OriginY:     cfg.Origin.Y,
		Heading:     cfg.Heading.String(),
		TickMS:      int(cfg.TickInterval / time.Millisecond),
		FoodRetries: cfg.FoodRetries,
	}
}

// ConfigFrom rebuilds engine parameters from stored settings.
func ConfigFrom(st storage.RunSettings) (snake.Config, error) {
	heading, err := snake.ParseHeading(st.Heading)
	if err != nil {
		return snake.Config{}, fmt.Errorf("journal: %w", err)
	}
	if st.GridW <= 0 || st.GridH <= 0 {
		return snake.Config{}, fmt.Errorf("journal: invalid grid %dx%d", st.GridW, st.GridH)
	}
	return snake.Config{
		Grid:         grid.New(st.GridW, st.GridH),
		Origin:       grid.Coord{X: st.OriginX, Y: st.OriginY},
		Heading:      heading,
		TickInterval: time.Duration(st.TickMS) * time.Millisecond,
		FoodRetries:  st.FoodRetries,
	}, nil
}

// InputsFrom converts stored inputs back into engine inputs.
func InputsFrom(in []storage.RunInput) ([]snake.Input, error) {
	out := make([]snake.Input, 0, len(in))
	for i, ri := range in {
		h, err := snake.ParseHeading(ri.Heading)
		if err != nil {
			return nil, fmt.Errorf("journal: input %d: %w", i, err)
		}
		out = append(out, snake.Input{Step: ri.Step, Heading: h})
	}
	return out, nil
}

// Result compares a stored run against its replay.
type Result struct {
	Run      storage.Run
	Snapshot snake.Snapshot // Final replayed state
}

// Matches reports whether the replay reached the stored outcome.
func (r Result) Matches() bool {
	return r.Snapshot.Score == r.Run.Score &&
		r.Snapshot.Steps == r.Run.Steps &&
		r.Snapshot.Cause.String() == r.Run.Cause
}

// Verify replays a stored run from its seed and inputs.
func Verify(run storage.Run) (Result, error) {
	cfg, err := ConfigFrom(run.Settings)
	if err != nil {
		return Result{}, err
	}
	inputs, err := InputsFrom(run.Inputs)
	if err != nil {
		return Result{}, err
	}
	e := snake.Replay(cfg, run.Seed, inputs, run.Steps)
	return Result{Run: run, Snapshot: e.Snapshot()}, nil
}
