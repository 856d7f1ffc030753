package dodge

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-dodge/internal/config"
)

// Spawner creates obstacles at the top of the viewport on a randomized
// schedule. It owns no timing state; anchors live in the Session.
type Spawner struct {
	rng        *rand.Rand
	kinds      []Kind
	baseRadius float64
	minRot     float64
	maxRot     float64
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(rng *rand.Rand, kinds []Kind, cfg config.ObstacleConfig) *Spawner {
	minRot, maxRot := cfg.MinRotationScale, cfg.MaxRotationScale
	if maxRot < minRot {
		minRot, maxRot = maxRot, minRot
	}
	return &Spawner{
		rng:        rng,
		kinds:      kinds,
		baseRadius: cfg.BaseRadius,
		minRot:     minRot,
		maxRot:     maxRot,
	}
}

// Update spawns one obstacle if more than the pending delay has passed
// since the last spawn, then resamples the delay. Returns true on spawn.
func (sp *Spawner) Update(s *Session) bool {
	if !s.Playing() {
		return false
	}
	if s.Now-s.LastSpawn <= s.NextSpawnDelay {
		return false
	}

	sp.Spawn(s)
	s.LastSpawn = s.Now
	s.NextSpawnDelay = sp.NextDelay(s.Params)
	return true
}

// NextDelay draws a delay uniformly from [MinSpawn, MaxSpawn].
// A collapsed or inverted range yields MinSpawn.
func (sp *Spawner) NextDelay(p Params) time.Duration {
	span := p.MaxSpawn - p.MinSpawn
	if span <= 0 {
		return p.MinSpawn
	}
	return p.MinSpawn + time.Duration(sp.rng.Int63n(int64(span)+1))
}

// Spawn creates an obstacle just above the visible area and returns its ID.
func (sp *Spawner) Spawn(s *Session) ObstacleID {
	kind := sp.kinds[sp.rng.Intn(len(sp.kinds))]
	info := kind.Info()
	radius := sp.baseRadius * info.SizeFactor

	x := s.Viewport.W / 2
	if span := s.Viewport.W - 2*radius; span > 0 {
		x = radius + sp.rng.Float64()*span
	}

	speed := sp.uniform(s.Params.MinSpeed, s.Params.MaxSpeed) * s.Params.SpeedMultiplier

	return s.Entities.AddObstacle(Obstacle{
		Kind:          kind,
		X:             x,
		Y:             -radius,
		Radius:        radius,
		Speed:         speed,
		Rotation:      sp.rng.Float64() * 2 * math.Pi,
		RotationSpeed: info.RotationRate * sp.uniform(sp.minRot, sp.maxRot),
	})
}

func (sp *Spawner) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + sp.rng.Float64()*(hi-lo)
}
