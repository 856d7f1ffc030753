package dodge

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-dodge/internal/config"
)

// Scaler periodically tightens the spawn parameters. Every adjustment
// keeps the spawn interval above the floor, the speeds under the ceiling,
// and both ranges at least a margin wide.
type Scaler struct {
	enabled     bool
	interval    time.Duration
	divisor     float64
	factor      float64
	floor       time.Duration
	margin      time.Duration
	ceiling     float64
	headroom    float64
	speedMargin float64
}

// NewScaler creates a scaler from cfg. Factors below one are inverted so
// escalation always makes the game harder.
func NewScaler(cfg config.DifficultyConfig) *Scaler {
	sc := &Scaler{
		enabled:     cfg.Enabled && cfg.IntervalMS > 0,
		interval:    cfg.Interval(),
		divisor:     harderFactor(cfg.SpawnDivisor),
		factor:      harderFactor(cfg.SpeedFactor),
		floor:       config.Millis(cfg.SpawnFloorMS),
		margin:      config.Millis(cfg.SpawnMarginMS),
		ceiling:     cfg.SpeedCeiling,
		headroom:    math.Max(cfg.MinSpeedHeadroom, 0),
		speedMargin: math.Max(cfg.SpeedMargin, 0),
	}
	if sc.floor <= 0 {
		sc.floor = time.Millisecond
	}
	if sc.margin <= 0 {
		sc.margin = time.Millisecond
	}
	if sc.ceiling <= 0 {
		sc.ceiling = math.Inf(1)
	}
	return sc
}

func harderFactor(f float64) float64 {
	switch {
	case f <= 0 || math.IsNaN(f) || math.IsInf(f, 0):
		return 1
	case f < 1:
		return 1 / f
	default:
		return f
	}
}

// Enabled reports whether escalation runs at all.
func (sc *Scaler) Enabled() bool {
	return sc.enabled
}

// Update escalates once if more than the interval has passed since the
// last escalation. Returns true when the parameters changed.
func (sc *Scaler) Update(s *Session) bool {
	if !sc.enabled || !s.Playing() {
		return false
	}
	if s.Now-s.LastEscalation <= sc.interval {
		return false
	}
	sc.Escalate(&s.Params)
	s.LastEscalation = s.Now
	s.Escalations++
	return true
}

// Escalate applies one tightening step to p.
func (sc *Scaler) Escalate(p *Params) {
	p.MinSpawn = time.Duration(float64(p.MinSpawn) / sc.divisor)
	p.MaxSpawn = time.Duration(float64(p.MaxSpawn) / sc.divisor)
	p.MinSpeed *= sc.factor
	p.MaxSpeed *= sc.factor
	sc.Normalize(p)
}

// Normalize corrects p so the scaler's bounds hold.
func (sc *Scaler) Normalize(p *Params) {
	if p.MinSpawn < sc.floor {
		p.MinSpawn = sc.floor
	}
	if p.MaxSpawn < p.MinSpawn+sc.margin {
		p.MaxSpawn = p.MinSpawn + sc.margin
	}

	p.MaxSpeed = math.Min(p.MaxSpeed, sc.ceiling)
	p.MinSpeed = math.Min(p.MinSpeed, sc.ceiling-sc.headroom)
	if p.MinSpeed > p.MaxSpeed-sc.speedMargin {
		p.MinSpeed = p.MaxSpeed - sc.speedMargin
	}
	if p.MinSpeed <= 0 {
		p.MinSpeed = p.MaxSpeed
	}
}
