package sim

import (
	"fmt"
	"math"

	"github.com/plus3/lifeforms/config"
	"github.com/plus3/lifeforms/ecs"
)

// ForceScheme selects how displacements are accumulated and applied.
type ForceScheme int

const (
	// SchemeSingle sums the force from every other participant into a fresh
	// accumulator and applies it once per tick, using positions as they were
	// when the step began.
	SchemeSingle ForceScheme = iota
	// SchemeCompounding keeps one accumulator across all participants and
	// adds the running total to the position after every other participant.
	// Displacements compound within a tick.
	SchemeCompounding
)

func (s ForceScheme) String() string {
	switch s {
	case SchemeSingle:
		return config.SchemeSingle
	case SchemeCompounding:
		return config.SchemeCompounding
	}
	return fmt.Sprintf("ForceScheme(%d)", int(s))
}

// ParseScheme maps a config scheme name to a ForceScheme.
func ParseScheme(name string) (ForceScheme, error) {
	switch name {
	case config.SchemeSingle:
		return SchemeSingle, nil
	case config.SchemeCompounding:
		return SchemeCompounding, nil
	}
	return 0, fmt.Errorf("unknown force scheme %q", name)
}

// Displacement returns the push on self from other: (self - other) * g/d,
// or zero when the two coincide.
func Displacement(self, other Position, g float64) (dx, dy float64) {
	rx := float64(self.X) - float64(other.X)
	ry := float64(self.Y) - float64(other.Y)
	d := math.Sqrt(rx*rx + ry*ry)
	if d > 0 {
		f := g / d
		return f * rx, f * ry
	}
	return 0, 0
}

// ApplyForces moves every position in selves by the force exerted on it by
// every position in others. The two slices may share elements; an element is
// never pushed by itself.
func ApplyForces(selves, others []*Position, g float64, scheme ForceScheme) {
	switch scheme {
	case SchemeCompounding:
		applyCompounding(selves, others, float32(g))
	default:
		applySingle(selves, others, g)
	}
}

func applySingle(selves, others []*Position, g float64) {
	start := make([]Position, len(others))
	for i, o := range others {
		start[i] = *o
	}

	shifts := make([][2]float64, len(selves))
	for i, self := range selves {
		origin := *self
		var fx, fy float64
		for j, other := range others {
			if other == self {
				continue
			}
			dx, dy := Displacement(origin, start[j], g)
			fx += dx
			fy += dy
		}
		shifts[i] = [2]float64{fx, fy}
	}

	for i, self := range selves {
		self.X += float32(shifts[i][0])
		self.Y += float32(shifts[i][1])
	}
}

// applyCompounding reads positions live and never resets the accumulator.
func applyCompounding(selves, others []*Position, g float32) {
	var fx, fy float32
	for _, self := range selves {
		for _, other := range others {
			dx := self.X - other.X
			dy := self.Y - other.Y
			d := float32(math.Sqrt(float64(dx*dx + dy*dy)))
			if d > 0 {
				f := g / d
				fx += f * dx
				fy += f * dy
			}
			self.X += fx
			self.Y += fy
		}
	}
}

// ForceSystem applies the pairwise force across all lifeforms once per tick.
type ForceSystem struct {
	Lifeforms ecs.Query[struct {
		*Position
		*Lifeform
	}]
	Config ecs.Singleton[SimConfig]

	positions []*Position
}

func (s *ForceSystem) Execute(frame *ecs.UpdateFrame) {
	cfg := s.Config.Get()
	if cfg == nil {
		return
	}

	s.positions = s.positions[:0]
	for item := range s.Lifeforms.Iter() {
		s.positions = append(s.positions, item.Position)
	}
	ApplyForces(s.positions, s.positions, cfg.G, cfg.Scheme)
}
