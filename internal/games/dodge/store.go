package dodge

import "time"

// ObstacleID identifies a live obstacle within one session.
type ObstacleID uint64

// Player is the player-controlled shape. X is the left edge of its bounding
// box; Y is the top edge and only changes on resize.
type Player struct {
	X, Y     float64
	Size     float64
	Velocity float64 // signed horizontal speed, units per second
	Health   int
	HitFlash time.Duration // remaining time of the damage flash
}

// CenterX returns the horizontal center of the player's bounding box.
func (p Player) CenterX() float64 {
	return p.X + p.Size/2
}

// Flashing reports whether the hit flash is showing.
func (p Player) Flashing() bool {
	return p.HitFlash > 0
}

// Obstacle is a falling shape.
type Obstacle struct {
	ID            ObstacleID
	Kind          Kind
	X, Y          float64 // center
	Radius        float64
	Speed         float64 // downward, units per second
	Rotation      float64 // radians
	RotationSpeed float64 // radians per second
}

// Store owns the player record and the live obstacles. Obstacles are kept
// in no particular order; removal swaps with the last element.
type Store struct {
	player    Player
	obstacles []Obstacle
	nextID    ObstacleID
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		obstacles: make([]Obstacle, 0, 32),
	}
}

// Player returns the mutable player record.
func (s *Store) Player() *Player {
	return &s.player
}

// AddObstacle inserts an obstacle and returns its assigned ID.
func (s *Store) AddObstacle(o Obstacle) ObstacleID {
	s.nextID++
	o.ID = s.nextID
	s.obstacles = append(s.obstacles, o)
	return o.ID
}

// RemoveObstacle deletes the obstacle with the given ID.
// Returns false if no such obstacle is alive.
func (s *Store) RemoveObstacle(id ObstacleID) bool {
	for i := range s.obstacles {
		if s.obstacles[i].ID == id {
			s.removeAt(i)
			return true
		}
	}
	return false
}

// ForEachObstacle calls fn for every live obstacle. fn may mutate the
// obstacle but must not add or remove obstacles.
func (s *Store) ForEachObstacle(fn func(o *Obstacle)) {
	for i := range s.obstacles {
		fn(&s.obstacles[i])
	}
}

// RemoveWhere deletes every obstacle matching pred and returns the removed
// obstacles. pred is called exactly once per live obstacle.
func (s *Store) RemoveWhere(pred func(o *Obstacle) bool) []Obstacle {
	var removed []Obstacle
	for i := len(s.obstacles) - 1; i >= 0; i-- {
		if pred(&s.obstacles[i]) {
			removed = append(removed, s.obstacles[i])
			s.removeAt(i)
		}
	}
	return removed
}

// Len returns the number of live obstacles.
func (s *Store) Len() int {
	return len(s.obstacles)
}

// Obstacles returns a copy of the live obstacles.
func (s *Store) Obstacles() []Obstacle {
	out := make([]Obstacle, len(s.obstacles))
	copy(out, s.obstacles)
	return out
}

// Clear removes every obstacle.
func (s *Store) Clear() {
	s.obstacles = s.obstacles[:0]
}

func (s *Store) removeAt(i int) {
	last := len(s.obstacles) - 1
	s.obstacles[i] = s.obstacles[last]
	s.obstacles = s.obstacles[:last]
}
