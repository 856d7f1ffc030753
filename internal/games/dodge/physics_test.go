package dodge

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tui-dodge/internal/config"
)

func TestIntegrateObstacles(t *testing.T) {
	s := playingSession(config.DefaultDodgeConfig())
	s.Entities.AddObstacle(Obstacle{Kind: KindSquare, X: 10, Y: 2, Radius: 1, Speed: 10, RotationSpeed: 2})

	Motion{}.Integrate(s, 100*time.Millisecond)

	o := s.Entities.Obstacles()[0]
	if math.Abs(o.Y-3) > 1e-9 {
		t.Errorf("y = %v, want 3", o.Y)
	}
	if math.Abs(o.Rotation-0.2) > 1e-9 {
		t.Errorf("rotation = %v, want 0.2", o.Rotation)
	}
}

func TestIntegrateYStrictlyIncreases(t *testing.T) {
	s := playingSession(config.DefaultDodgeConfig())
	s.Entities.AddObstacle(Obstacle{X: 10, Y: -1, Radius: 1, Speed: 6})

	prev := -1.0
	for i := 0; i < 50; i++ {
		Motion{}.Integrate(s, 16*time.Millisecond)
		y := s.Entities.Obstacles()[0].Y
		if y <= prev {
			t.Fatalf("tick %d: y went from %v to %v", i, prev, y)
		}
		prev = y
	}
}

func TestIntegrateOffscreenAwardsPoints(t *testing.T) {
	s := playingSession(config.DefaultDodgeConfig())
	s.Entities.AddObstacle(Obstacle{Kind: KindHexagon, X: 10, Y: s.Viewport.H + 0.9, Radius: 1, Speed: 10})
	s.Entities.AddObstacle(Obstacle{Kind: KindCircle, X: 20, Y: 5, Radius: 1, Speed: 10})

	points := Motion{}.Integrate(s, 100*time.Millisecond)

	if points != KindHexagon.Info().Points {
		t.Errorf("points = %d, want %d", points, KindHexagon.Info().Points)
	}
	if s.Entities.Len() != 1 {
		t.Errorf("%d obstacles left, want 1", s.Entities.Len())
	}
}

func TestIntegrateClampsPlayer(t *testing.T) {
	tests := []struct {
		name        string
		stopAtEdges bool
		velocity    float64
		wantX       float64
		wantVel     float64
	}{
		{"left wall stops", true, -1000, 0, 0},
		{"right wall stops", true, 1000, 77, 0},
		{"left wall keeps velocity", false, -1000, 0, -1000},
		{"inside keeps velocity", true, 10, 39.5, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := playingSession(config.DefaultDodgeConfig())
			p := s.Entities.Player()
			p.Velocity = tt.velocity

			Motion{StopAtEdges: tt.stopAtEdges}.Integrate(s, 100*time.Millisecond)

			if math.Abs(p.X-tt.wantX) > 1e-9 {
				t.Errorf("x = %v, want %v", p.X, tt.wantX)
			}
			if p.Velocity != tt.wantVel {
				t.Errorf("velocity = %v, want %v", p.Velocity, tt.wantVel)
			}
			if p.X < 0 || p.X > s.Viewport.W-p.Size {
				t.Errorf("x = %v escapes [0, W-size]", p.X)
			}
		})
	}
}

func TestIntegrateHitFlashDecays(t *testing.T) {
	s := playingSession(config.DefaultDodgeConfig())
	p := s.Entities.Player()
	p.HitFlash = 150 * time.Millisecond

	Motion{}.Integrate(s, 100*time.Millisecond)
	if p.HitFlash != 50*time.Millisecond {
		t.Errorf("flash = %v, want 50ms", p.HitFlash)
	}

	Motion{}.Integrate(s, 100*time.Millisecond)
	if p.HitFlash != 0 || p.Flashing() {
		t.Errorf("flash = %v, want 0", p.HitFlash)
	}
}

func TestIntegrateIdleWhenPaused(t *testing.T) {
	s := playingSession(config.DefaultDodgeConfig())
	s.Paused = true
	s.Entities.AddObstacle(Obstacle{Y: 5, Radius: 1, Speed: 10})

	Motion{}.Integrate(s, time.Second)

	if y := s.Entities.Obstacles()[0].Y; y != 5 {
		t.Errorf("obstacle moved while paused: y=%v", y)
	}
}
