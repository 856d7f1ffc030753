package dodge

import (
	"fmt"

	"github.com/vovakirdan/tui-dodge/internal/core"
)

// Kind is an obstacle shape. The set is fixed; per-kind constants live in
// the kinds table and are shared by the spawner, physics and collision code.
type Kind int

const (
	KindCircle Kind = iota
	KindTriangle
	KindSquare
	KindPentagon
	KindHexagon
)

// KindInfo holds the immutable constants of an obstacle kind.
type KindInfo struct {
	Name         string
	Sides        int     // 0 for the circle
	Damage       int     // HP removed on collision
	Points       int     // score awarded when it falls past the bottom
	RotationRate float64 // base spin in radians per second; the sign is the spin direction
	SizeFactor   float64 // radius multiplier over the base radius
	Color        core.Color
}

var kinds = [...]KindInfo{
	KindCircle:   {Name: "circle", Sides: 0, Damage: 3, Points: 1, RotationRate: 1.05, SizeFactor: 1.0, Color: core.ColorBrightYellow},
	KindTriangle: {Name: "triangle", Sides: 3, Damage: 6, Points: 2, RotationRate: -1.575, SizeFactor: 1.15, Color: core.ColorAmber},
	KindSquare:   {Name: "square", Sides: 4, Damage: 10, Points: 3, RotationRate: 1.26, SizeFactor: 1.2, Color: core.ColorOrange},
	KindPentagon: {Name: "pentagon", Sides: 5, Damage: 15, Points: 4, RotationRate: -1.05, SizeFactor: 1.25, Color: core.ColorDarkOrange},
	KindHexagon:  {Name: "hexagon", Sides: 6, Damage: 20, Points: 5, RotationRate: 0.9, SizeFactor: 1.3, Color: core.ColorBrightRed},
}

// Info returns the constants for k. Unknown kinds fall back to the circle.
func (k Kind) Info() KindInfo {
	if k < 0 || int(k) >= len(kinds) {
		return kinds[KindCircle]
	}
	return kinds[k]
}

// String returns the kind's config name.
func (k Kind) String() string {
	return k.Info().Name
}

// AllKinds returns every kind in declaration order.
func AllKinds() []Kind {
	out := make([]Kind, len(kinds))
	for i := range kinds {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind resolves a config name to a kind.
func ParseKind(name string) (Kind, error) {
	for i, info := range kinds {
		if info.Name == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("dodge: unknown obstacle kind %q", name)
}

// ParseKinds resolves a list of names, dropping duplicates.
func ParseKinds(names []string) ([]Kind, error) {
	seen := make(map[Kind]bool, len(names))
	out := make([]Kind, 0, len(names))
	for _, name := range names {
		k, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("dodge: no obstacle kinds enabled")
	}
	return out, nil
}
