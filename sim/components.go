// Package sim holds the lifeform simulation: its components, the pairwise
// force and lifetime systems, and scene construction.
package sim

import (
	"image/color"

	"github.com/plus3/lifeforms/ecs"
)

// Position is a point in world space: origin at the viewport centre, y up.
type Position struct {
	X, Y float32
}

// Lifeform tags an entity as a participant of the pairwise force.
type Lifeform struct{}

// Circle is how the renderer draws an entity.
type Circle struct {
	Radius       float32
	Fill         color.RGBA
	Outline      color.RGBA
	OutlineWidth float32
}

// Lifetime expires its entity, and everything the entity owns, once the
// timer finishes.
type Lifetime struct {
	Timer Timer
}

// Halo is a ring drawn around the owning entity. It has no position of its
// own and is removed together with its owner.
type Halo struct {
	Radius float32
	Color  color.RGBA
}

// Camera is the 2D view onto world space.
type Camera struct {
	X, Y float32
	Zoom float32
}

// SimConfig is the singleton the force system reads each tick.
type SimConfig struct {
	G      float64
	Scheme ForceScheme
}

// RegisterComponents registers every sim component type with registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Lifeform](registry)
	ecs.RegisterComponent[Circle](registry)
	ecs.RegisterComponent[Lifetime](registry)
	ecs.RegisterComponent[Halo](registry)
}
