package dodge

import (
	"time"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
)

// Viewport is the playfield size in world units.
type Viewport struct {
	W, H float64
}

// Params are the difficulty parameters the spawner draws from.
// Only the Scaler changes them during a run.
type Params struct {
	MinSpawn        time.Duration
	MaxSpawn        time.Duration
	MinSpeed        float64
	MaxSpeed        float64
	SpeedMultiplier float64
}

// ParamsFromConfig builds the initial parameters of a run.
func ParamsFromConfig(c config.SpawnConfig) Params {
	mult := c.SpeedMultiplier
	if mult <= 0 {
		mult = 1
	}
	return Params{
		MinSpawn:        config.Millis(c.MinIntervalMS),
		MaxSpawn:        config.Millis(c.MaxIntervalMS),
		MinSpeed:        c.MinSpeed,
		MaxSpeed:        c.MaxSpeed,
		SpeedMultiplier: mult,
	}
}

// Session is the complete mutable state of one run. Every subsystem takes
// it by pointer; a new run gets a new Session instead of patching the old one.
//
// Times are simulation time: the sum of the clamped dt values integrated
// since the session was created.
type Session struct {
	Phase     core.Phase
	Paused    bool
	Score     int
	HighScore int
	MaxHealth int
	// NewRecord is set when the finished run beat the previous record.
	NewRecord bool

	Params      Params
	Escalations int
	Viewport    Viewport
	Entities    *Store

	Now            time.Duration
	StartedAt      time.Duration
	LastSpawn      time.Duration
	NextSpawnDelay time.Duration
	LastEscalation time.Duration
}

// NewSession creates a fresh session in the menu phase with the player
// centered at the bottom of the viewport and no obstacles.
func NewSession(cfg config.DodgeConfig, vp Viewport, highScore int) *Session {
	s := &Session{
		Phase:     core.PhaseMenu,
		HighScore: highScore,
		MaxHealth: cfg.Player.MaxHealth,
		Params:    ParamsFromConfig(cfg.Spawn),
		Viewport:  vp,
		Entities:  NewStore(),
	}

	p := s.Entities.Player()
	p.Size = cfg.Player.Size
	p.Health = cfg.Player.MaxHealth
	p.X = vp.W/2 - p.Size/2
	s.placePlayer(cfg.Player.BottomMargin)
	return s
}

// Elapsed returns how long the run has been simulated.
func (s *Session) Elapsed() time.Duration {
	return s.Now - s.StartedAt
}

// Playing reports whether simulation subsystems may run.
func (s *Session) Playing() bool {
	return s.Phase == core.PhasePlaying && !s.Paused
}

// placePlayer fixes the player's y above the bottom edge and clamps x.
func (s *Session) placePlayer(bottomMargin float64) {
	p := s.Entities.Player()
	p.Y = s.Viewport.H - p.Size - bottomMargin
	p.X = clampPlayerX(p.X, p.Size, s.Viewport.W)
}

func clampPlayerX(x, size, width float64) float64 {
	maxX := width - size
	if maxX < 0 {
		maxX = 0
	}
	return core.ClampF(x, 0, maxX)
}
