package dodge

import (
	"time"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
)

// Collider tests the player's hitbox against every obstacle and applies
// the resulting damage.
type Collider struct {
	shape    config.HitboxShape
	scale    float64
	centerY  float64
	mode     config.DamageMode
	hitFlash time.Duration
}

// NewCollider creates a collider from the hitbox and player settings.
func NewCollider(hb config.HitboxConfig, pl config.PlayerConfig) *Collider {
	return &Collider{
		shape:    hb.Shape,
		scale:    hb.Scale,
		centerY:  hb.CenterY,
		mode:     pl.DamageMode,
		hitFlash: pl.HitFlash(),
	}
}

// Hit describes one collision resolved during a tick.
type Hit struct {
	Obstacle Obstacle
	Damage   int
}

// Overlaps reports whether the player's hitbox touches o.
func (c *Collider) Overlaps(p Player, o Obstacle) bool {
	cx := p.X + p.Size/2
	cy := p.Y + p.Size*c.centerY
	extent := p.Size * c.scale

	if c.shape == config.HitboxBox {
		box := core.Box{X: cx, Y: cy, HW: extent, HH: extent}
		return box.OverlapsCircle(core.Circle{X: o.X, Y: o.Y, Radius: o.Radius})
	}
	hb := core.Circle{X: cx, Y: cy, Radius: extent}
	return hb.Overlaps(core.Circle{X: o.X, Y: o.Y, Radius: o.Radius})
}

// Resolve removes every obstacle overlapping the player, applies damage
// for each and starts the hit flash. Health never drops below zero.
// The returned bool reports whether the player is out of health.
func (c *Collider) Resolve(s *Session) ([]Hit, bool) {
	if !s.Playing() {
		return nil, false
	}

	p := s.Entities.Player()
	removed := s.Entities.RemoveWhere(func(o *Obstacle) bool {
		return c.Overlaps(*p, *o)
	})
	if len(removed) == 0 {
		return nil, p.Health <= 0
	}

	hits := make([]Hit, 0, len(removed))
	for _, o := range removed {
		dmg := 1
		if c.mode == config.DamageHealth {
			dmg = o.Kind.Info().Damage
		}
		p.Health -= dmg
		hits = append(hits, Hit{Obstacle: o, Damage: dmg})
	}
	if p.Health < 0 {
		p.Health = 0
	}
	p.HitFlash = c.hitFlash

	return hits, p.Health <= 0
}
