package dodge

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
)

var testViewport = Viewport{W: 80, H: 24}

// playingSession returns a session in the playing phase.
func playingSession(cfg config.DodgeConfig) *Session {
	s := NewSession(cfg, testViewport, 0)
	s.Phase = core.PhasePlaying
	return s
}

func testSpawner(cfg config.DodgeConfig, seed int64) *Spawner {
	kinds, err := ParseKinds(cfg.Obstacles.Kinds)
	if err != nil {
		panic(err)
	}
	return NewSpawner(rand.New(rand.NewSource(seed)), kinds, cfg.Obstacles)
}

func newTestEngine(t *testing.T, cfg config.DodgeConfig, scores HighScoreStore) *Engine {
	t.Helper()
	e, err := NewEngine(Options{
		Config:     cfg,
		Viewport:   testViewport,
		Seed:       1,
		HighScores: scores,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

// obstacleOnPlayer returns an obstacle centered on the player's hitbox.
func obstacleOnPlayer(p *Player, cfg config.DodgeConfig, kind Kind) Obstacle {
	return Obstacle{
		Kind:   kind,
		X:      p.CenterX(),
		Y:      p.Y + p.Size*cfg.Hitbox.CenterY,
		Radius: cfg.Obstacles.BaseRadius,
		Speed:  1,
	}
}

func approxDuration(got, want, tol time.Duration) bool {
	d := got - want
	if d < 0 {
		d = -d
	}
	return d <= tol
}
