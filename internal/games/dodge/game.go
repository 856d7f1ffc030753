// Package dodge implements a falling-shapes dodging game: the player slides
// along the bottom of the screen while obstacles fall from the top.
//
// The simulation is split into small subsystems (spawner, motion, collider,
// scaler) that all operate on one Session, driven by an Engine. Game adapts
// the engine to the arcade registry.
package dodge

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/registry"
)

// Game identifiers.
const (
	IDShapes  = "dodge"
	IDClassic = "dodge_classic"
)

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	highScoreSource  func(gameID string) HighScoreStore
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names reset it
// to the loaded config's own settings.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetHighScoreSource sets how games obtain their persistent high score.
// Without a source each game keeps its record in memory.
func SetHighScoreSource(fn func(gameID string) HighScoreStore) {
	highScoreSource = fn
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// VariantOf returns the config variant behind a game ID.
func VariantOf(gameID string) (config.Variant, bool) {
	switch gameID {
	case IDShapes:
		return config.VariantDodge, true
	case IDClassic:
		return config.VariantClassic, true
	default:
		return "", false
	}
}

// Game adapts an Engine to registry.Game.
type Game struct {
	id      string
	title   string
	variant config.Variant
	runtime core.RuntimeConfig
	cfg     config.DodgeConfig
	engine  *Engine
}

// NewShapes creates the five-shape variant with health and escalation.
func NewShapes() *Game {
	return &Game{id: IDShapes, title: "Shape Dodge", variant: config.VariantDodge}
}

// NewClassic creates the lives-based variant with fixed pacing.
func NewClassic() *Game {
	return &Game{id: IDClassic, title: "Classic Dodge", variant: config.VariantClassic}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the configuration and builds a fresh engine in the menu phase.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	l := logger.With("game", g.id)

	cfg, err := config.Load(g.variant, configPath)
	if err != nil {
		l.Warn("cannot load config, using defaults", "err", err)
		cfg = config.Defaults(g.variant)
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}

	var scores HighScoreStore
	if highScoreSource != nil {
		scores = highScoreSource(g.id)
	}

	opts := Options{
		Config:     cfg,
		Viewport:   Viewport{W: float64(runtime.ScreenW), H: float64(runtime.ScreenH)},
		Seed:       runtime.Seed,
		HighScores: scores,
		Logger:     l,
	}
	eng, err := NewEngine(opts)
	if err != nil {
		l.Warn("invalid config, using defaults", "err", err)
		opts.Config = config.Defaults(g.variant)
		eng, _ = NewEngine(opts) //nolint:errcheck
	}

	g.cfg = opts.Config
	g.engine = eng
}

// Engine returns the underlying engine.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Config returns the configuration the engine was built with.
func (g *Game) Config() config.DodgeConfig {
	return g.cfg
}

// Step applies the frame's input and advances a running game by dt.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	e := g.engine

	switch e.Phase() {
	case core.PhaseMenu:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) {
			e.Start()
		}
	case core.PhaseGameOver:
		switch {
		case in.Has(core.ActionRestart) || in.Has(core.ActionConfirm):
			e.Restart()
		case in.Has(core.ActionBack):
			e.ReturnToMenu()
		}
	case core.PhasePlaying:
		if g.handlePlayingInput(in) {
			e.Advance(dt)
		}
	}

	return core.StepResult{State: e.State()}
}

// handlePlayingInput maps actions to engine calls. Returns false if the
// run was left or is paused.
func (g *Game) handlePlayingInput(in core.InputFrame) bool {
	e := g.engine

	if in.Has(core.ActionPause) {
		e.TogglePause()
	}
	if in.Has(core.ActionBack) {
		e.ReturnToMenu()
		return false
	}
	if e.Session().Paused {
		return false
	}

	switch {
	case in.Has(core.ActionLeft):
		e.SetPlayerIntent(DirLeft)
	case in.Has(core.ActionRight):
		e.SetPlayerIntent(DirRight)
	case in.Has(core.ActionStop), in.Has(core.ActionPointerUp):
		e.SetPlayerIntent(DirStop)
	case in.Has(core.ActionPointerDown):
		e.PointAt(float64(in.PointerX) + 0.5)
	}
	return true
}

// Resize adapts the playfield to a new screen size.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.engine.Resize(float64(w), float64(h))
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.engine.State()
}

func init() {
	registry.Register(IDShapes, func() registry.Game {
		return NewShapes()
	})
	registry.Register(IDClassic, func() registry.Game {
		return NewClassic()
	})
}
