package dodge

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
)

// Direction is a horizontal steering intent.
type Direction int

const (
	DirLeft  Direction = -1
	DirStop  Direction = 0
	DirRight Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "stop"
	}
}

// Options configure a new Engine.
type Options struct {
	Config     config.DodgeConfig
	Viewport   Viewport
	Seed       int64
	HighScores HighScoreStore // defaults to an empty in-memory store
	Logger     *log.Logger    // defaults to a discarding logger
	OnStop     func()         // called on every transition away from playing
}

// Engine drives one dodge game: it owns the session, runs the subsystems
// in their fixed order and implements the phase transitions.
// It is not safe for concurrent use; the tick driver owns it.
type Engine struct {
	cfg config.DodgeConfig
	rng *rand.Rand

	spawner  *Spawner
	motion   Motion
	collider *Collider
	scaler   *Scaler

	session *Session
	maxStep time.Duration

	highScores HighScoreStore
	highScore  int
	logger     *log.Logger
	onStop     func()
}

// NewEngine validates the configuration, loads the high score once and
// returns an engine in the menu phase.
func NewEngine(opts Options) (*Engine, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("dodge: %w", err)
	}
	kinds, err := ParseKinds(opts.Config.Obstacles.Kinds)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:        opts.Config,
		rng:        rand.New(rand.NewSource(opts.Seed)),
		highScores: opts.HighScores,
		logger:     opts.Logger,
		onStop:     opts.OnStop,
		maxStep:    opts.Config.Simulation.MaxStep(),
		motion:     Motion{StopAtEdges: opts.Config.Player.StopAtEdges},
		collider:   NewCollider(opts.Config.Hitbox, opts.Config.Player),
		scaler:     NewScaler(opts.Config.Difficulty),
	}
	if e.highScores == nil {
		e.highScores = NewMemoryHighScores(0)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.maxStep <= 0 {
		e.maxStep = time.Second / 30
	}
	e.spawner = NewSpawner(e.rng, kinds, opts.Config.Obstacles)

	if hs, err := e.highScores.LoadHighScore(); err != nil {
		e.logger.Warn("cannot load high score", "err", err)
	} else if hs > 0 {
		e.highScore = hs
	}

	e.session = NewSession(e.cfg, opts.Viewport, e.highScore)
	return e, nil
}

// Session exposes the live session. Callers outside the tick driver
// should use Snapshot instead.
func (e *Engine) Session() *Session {
	return e.session
}

// Phase returns the current phase.
func (e *Engine) Phase() core.Phase {
	return e.session.Phase
}

// HighScore returns the best score known to the engine.
func (e *Engine) HighScore() int {
	return e.highScore
}

// Start begins a new run from the menu or game-over phase. Everything but
// the high score is reset and all timers are re-anchored.
func (e *Engine) Start() bool {
	if e.session.Phase == core.PhasePlaying {
		return false
	}

	s := NewSession(e.cfg, e.session.Viewport, e.highScore)
	if e.scaler.Enabled() {
		e.scaler.Normalize(&s.Params)
		for i := 0; i < e.cfg.Difficulty.InitialEscalations; i++ {
			e.scaler.Escalate(&s.Params)
		}
	}
	s.NextSpawnDelay = e.spawner.NextDelay(s.Params)
	s.Phase = core.PhasePlaying

	e.session = s
	e.logger.Info("run started", "high_score", e.highScore, "spawn_min", s.Params.MinSpawn, "spawn_max", s.Params.MaxSpawn)
	return true
}

// Restart begins a new run after a game over.
func (e *Engine) Restart() bool {
	if e.session.Phase != core.PhaseGameOver {
		return false
	}
	return e.Start()
}

// ReturnToMenu abandons the current run. A run abandoned while playing
// does not update the high score.
func (e *Engine) ReturnToMenu() bool {
	if e.session.Phase == core.PhaseMenu {
		return false
	}
	e.session.Phase = core.PhaseMenu
	e.session.Paused = false
	e.session.Entities.Clear()
	e.session.Entities.Player().Velocity = 0
	e.stop()
	return true
}

// TogglePause pauses or resumes a running game. Simulation time does not
// advance while paused.
func (e *Engine) TogglePause() bool {
	if e.session.Phase != core.PhasePlaying {
		return false
	}
	e.session.Paused = !e.session.Paused
	return true
}

// SetPlayerIntent sets the player's velocity from a direction. Ignored
// unless a run is active; the effect shows on the next tick.
func (e *Engine) SetPlayerIntent(dir Direction) {
	if !e.session.Playing() {
		return
	}
	e.session.Entities.Player().Velocity = float64(dir) * e.cfg.Player.Speed
}

// PointerIntent maps a pointer x coordinate to a direction using the
// configured reference: the viewport midpoint or the player's center.
func (e *Engine) PointerIntent(x float64) Direction {
	ref := e.session.Viewport.W / 2
	if e.cfg.Input.PointerMode == config.PointerPlayer {
		ref = e.session.Entities.Player().CenterX()
	}
	d := x - ref
	switch {
	case math.Abs(d) < e.cfg.Input.DeadZone:
		return DirStop
	case d < 0:
		return DirLeft
	default:
		return DirRight
	}
}

// PointAt steers toward a pointer press at x.
func (e *Engine) PointAt(x float64) {
	e.SetPlayerIntent(e.PointerIntent(x))
}

// Resize changes the viewport. The player is re-anchored to the bottom and
// clamped; obstacles left outside the new area are dropped without points.
func (e *Engine) Resize(w, h float64) {
	s := e.session
	s.Viewport = Viewport{W: w, H: h}
	s.placePlayer(e.cfg.Player.BottomMargin)
	s.Entities.RemoveWhere(func(o *Obstacle) bool {
		return o.Y-o.Radius > h || o.X+o.Radius < 0 || o.X-o.Radius > w
	})
}

// Advance runs one simulation tick of dt, clamped to the maximum step.
// Order: difficulty, spawn, integrate, collide, phase check.
func (e *Engine) Advance(dt time.Duration) {
	s := e.session
	if dt <= 0 || !s.Playing() {
		return
	}
	if dt > e.maxStep {
		dt = e.maxStep
	}
	s.Now += dt

	if e.scaler.Update(s) {
		e.logger.Debug("difficulty escalated",
			"level", s.Escalations,
			"spawn_min", s.Params.MinSpawn,
			"spawn_max", s.Params.MaxSpawn,
			"speed_min", s.Params.MinSpeed,
			"speed_max", s.Params.MaxSpeed,
		)
	}

	e.spawner.Update(s)
	s.Score += e.motion.Integrate(s, dt)

	if _, dead := e.collider.Resolve(s); dead {
		e.gameOver()
	}
}

// gameOver ends the run and reconciles the high score. The record is saved
// once per run that beats it; a failed save keeps the in-memory value.
func (e *Engine) gameOver() {
	s := e.session
	s.Phase = core.PhaseGameOver
	s.Paused = false
	s.Entities.Player().Velocity = 0

	if s.Score > e.highScore {
		e.highScore = s.Score
		s.HighScore = s.Score
		s.NewRecord = true
		if err := e.highScores.SaveHighScore(s.Score); err != nil {
			e.logger.Warn("cannot save high score", "score", s.Score, "err", err)
		}
	}

	e.logger.Info("game over", "score", s.Score, "high_score", e.highScore, "duration", s.Elapsed().Round(time.Millisecond))
	e.stop()
}

func (e *Engine) stop() {
	if e.onStop != nil {
		e.onStop()
	}
}

// Snapshot is a read-only copy of everything a renderer or UI needs.
type Snapshot struct {
	Phase       core.Phase
	Paused      bool
	Score       int
	HighScore   int
	NewRecord   bool
	MaxHealth   int
	Escalations int
	Elapsed     time.Duration
	Viewport    Viewport
	Params      Params
	Player      Player
	Obstacles   []Obstacle
}

// Snapshot copies the current session.
func (e *Engine) Snapshot() Snapshot {
	s := e.session
	return Snapshot{
		Phase:       s.Phase,
		Paused:      s.Paused,
		Score:       s.Score,
		HighScore:   e.highScore,
		NewRecord:   s.NewRecord,
		MaxHealth:   s.MaxHealth,
		Escalations: s.Escalations,
		Elapsed:     s.Elapsed(),
		Viewport:    s.Viewport,
		Params:      s.Params,
		Player:      *s.Entities.Player(),
		Obstacles:   s.Entities.Obstacles(),
	}
}

// State returns the UI-facing game state.
func (e *Engine) State() core.GameState {
	s := e.session
	return core.GameState{
		Score:     s.Score,
		HighScore: e.highScore,
		Health:    s.Entities.Player().Health,
		MaxHealth: s.MaxHealth,
		Phase:     s.Phase,
		Paused:    s.Paused,
		Elapsed:   s.Elapsed(),
	}
}
