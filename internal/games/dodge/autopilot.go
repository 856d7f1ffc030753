package dodge

import (
	"math"

	"github.com/vovakirdan/tui-dodge/internal/core"
)

// Autopilot steers away from the most imminent obstacle on a collision
// course. It is used by headless simulation runs.
type Autopilot struct {
	// Lookahead is how far ahead, in seconds, threats are considered.
	Lookahead float64
}

// Decide returns the steering direction for the current snapshot.
func (a Autopilot) Decide(snap Snapshot) Direction {
	p := snap.Player
	if snap.Phase != core.PhasePlaying || p.Size <= 0 {
		return DirStop
	}

	lookahead := a.Lookahead
	if lookahead <= 0 {
		lookahead = 1.5
	}

	cx := p.CenterX()
	var threat *Obstacle
	soonest := math.Inf(1)
	for i := range snap.Obstacles {
		o := &snap.Obstacles[i]
		if o.Y-o.Radius > p.Y+p.Size || o.Speed <= 0 {
			continue
		}
		if math.Abs(o.X-cx) > o.Radius+p.Size {
			continue
		}
		eta := (p.Y - (o.Y + o.Radius)) / o.Speed
		if eta < lookahead && eta < soonest {
			soonest = eta
			threat = o
		}
	}
	if threat == nil {
		return DirStop
	}

	dir := DirLeft
	if threat.X < cx {
		dir = DirRight
	}

	// Turn back when a wall blocks the escape.
	if dir == DirLeft && p.X <= 0 {
		dir = DirRight
	} else if dir == DirRight && p.X+p.Size >= snap.Viewport.W {
		dir = DirLeft
	}
	return dir
}
