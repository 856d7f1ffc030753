package dodge

import (
	"math"
	"time"
)

// Motion holds the integration settings of the update step.
type Motion struct {
	StopAtEdges bool
}

// Integrate advances every obstacle and the player by dt. Obstacles that
// fall fully below the viewport are removed; their points are returned so
// the caller can add them to the score.
func (m Motion) Integrate(s *Session, dt time.Duration) int {
	if !s.Playing() || dt <= 0 {
		return 0
	}
	sec := dt.Seconds()

	s.Entities.ForEachObstacle(func(o *Obstacle) {
		o.Y += o.Speed * sec
		o.Rotation = math.Mod(o.Rotation+o.RotationSpeed*sec, 2*math.Pi)
	})

	points := 0
	for _, o := range s.Entities.RemoveWhere(func(o *Obstacle) bool {
		return o.Y-o.Radius > s.Viewport.H
	}) {
		points += o.Kind.Info().Points
	}

	p := s.Entities.Player()
	x := p.X + p.Velocity*sec
	clamped := clampPlayerX(x, p.Size, s.Viewport.W)
	if clamped != x && m.StopAtEdges {
		p.Velocity = 0
	}
	p.X = clamped

	p.HitFlash -= dt
	if p.HitFlash < 0 {
		p.HitFlash = 0
	}

	return points
}
