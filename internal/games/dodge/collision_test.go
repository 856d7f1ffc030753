package dodge

import (
	"testing"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
)

func TestResolveAppliesDamage(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	s := playingSession(cfg)
	p := s.Entities.Player()
	s.Entities.AddObstacle(obstacleOnPlayer(p, cfg, KindHexagon))

	hits, dead := NewCollider(cfg.Hitbox, cfg.Player).Resolve(s)

	if len(hits) != 1 || hits[0].Damage != 20 {
		t.Fatalf("hits = %+v, want one hit for 20", hits)
	}
	if p.Health != 80 {
		t.Errorf("health = %d, want 80", p.Health)
	}
	if dead {
		t.Error("player should survive")
	}
	if s.Entities.Len() != 0 {
		t.Error("colliding obstacle should be removed")
	}
	if p.HitFlash != cfg.Player.HitFlash() {
		t.Errorf("flash = %v, want %v", p.HitFlash, cfg.Player.HitFlash())
	}
	if s.Score != 0 {
		t.Error("collisions must not award points")
	}
}

func TestResolveSingleHitPerObstacle(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	s := playingSession(cfg)
	p := s.Entities.Player()
	s.Entities.AddObstacle(obstacleOnPlayer(p, cfg, KindCircle))
	c := NewCollider(cfg.Hitbox, cfg.Player)

	c.Resolve(s)
	c.Resolve(s)

	if p.Health != 97 {
		t.Errorf("health = %d, want 97 after a single hit", p.Health)
	}
}

func TestResolveAllOverlapsInOneTick(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	s := playingSession(cfg)
	p := s.Entities.Player()
	for _, k := range []Kind{KindCircle, KindSquare, KindPentagon} {
		s.Entities.AddObstacle(obstacleOnPlayer(p, cfg, k))
	}
	far := obstacleOnPlayer(p, cfg, KindHexagon)
	far.Y = 2
	s.Entities.AddObstacle(far)

	hits, _ := NewCollider(cfg.Hitbox, cfg.Player).Resolve(s)

	if len(hits) != 3 {
		t.Fatalf("got %d hits, want 3", len(hits))
	}
	if p.Health != 100-3-10-15 {
		t.Errorf("health = %d, want %d", p.Health, 100-3-10-15)
	}
	if s.Entities.Len() != 1 {
		t.Errorf("%d obstacles left, want the distant one", s.Entities.Len())
	}
}

func TestResolveHealthFloor(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	s := playingSession(cfg)
	p := s.Entities.Player()
	p.Health = 10
	s.Entities.AddObstacle(obstacleOnPlayer(p, cfg, KindHexagon))

	_, dead := NewCollider(cfg.Hitbox, cfg.Player).Resolve(s)

	if p.Health != 0 {
		t.Errorf("health = %d, want 0", p.Health)
	}
	if !dead {
		t.Error("player should be out of health")
	}
}

func TestResolveLivesMode(t *testing.T) {
	cfg := config.DefaultClassicConfig()
	s := playingSession(cfg)
	p := s.Entities.Player()
	s.Entities.AddObstacle(obstacleOnPlayer(p, cfg, KindHexagon))

	hits, dead := NewCollider(cfg.Hitbox, cfg.Player).Resolve(s)

	if len(hits) != 1 || hits[0].Damage != 1 {
		t.Fatalf("hits = %+v, want one hit for 1", hits)
	}
	if p.Health != cfg.Player.MaxHealth-1 || dead {
		t.Errorf("health = %d, dead = %v", p.Health, dead)
	}
}

func TestResolveIdleOutsidePlaying(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	s := NewSession(cfg, testViewport, 0)
	s.Phase = core.PhaseGameOver
	p := s.Entities.Player()
	s.Entities.AddObstacle(obstacleOnPlayer(p, cfg, KindHexagon))

	hits, _ := NewCollider(cfg.Hitbox, cfg.Player).Resolve(s)

	if len(hits) != 0 || p.Health != cfg.Player.MaxHealth {
		t.Error("collisions must not resolve outside playing")
	}
}

func TestOverlapsShapes(t *testing.T) {
	player := Player{X: 10, Y: 10, Size: 4}

	tests := []struct {
		name  string
		shape config.HitboxShape
		o     Obstacle
		want  bool
	}{
		// circle hitbox: center (12, 12.4), radius 1.8
		{"circle center", config.HitboxCircle, Obstacle{X: 12, Y: 12.4, Radius: 1}, true},
		{"circle near miss", config.HitboxCircle, Obstacle{X: 14.9, Y: 12.4, Radius: 1}, false},
		{"circle diagonal miss", config.HitboxCircle, Obstacle{X: 14.2, Y: 10.2, Radius: 1}, false},
		// box hitbox: center (12, 12.4), half extent 1.8
		{"box edge", config.HitboxBox, Obstacle{X: 14.7, Y: 12.4, Radius: 1}, true},
		{"box corner region", config.HitboxBox, Obstacle{X: 14.2, Y: 10.2, Radius: 1}, true},
		{"box miss", config.HitboxBox, Obstacle{X: 15, Y: 12.4, Radius: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollider(
				config.HitboxConfig{Shape: tt.shape, Scale: 0.45, CenterY: 0.6},
				config.PlayerConfig{DamageMode: config.DamageHealth},
			)
			if got := c.Overlaps(player, tt.o); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}
