package ecs_test

import (
	"fmt"
	"slices"

	"github.com/plus3/lifeforms/ecs"
)

// ExampleQuery shows iterating every entity that has both a Position and a
// Velocity. Pointers in the result struct write straight into storage.
func ExampleQuery() {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 1, DY: 0})
	storage.Spawn(Position{X: 10, Y: 10}, Velocity{DX: 0, DY: 1}, Health{Current: 100, Max: 100})
	storage.Spawn(Position{X: 20, Y: 20})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)

	for item := range query.Iter() {
		item.Position.X += item.Velocity.DX
		item.Position.Y += item.Velocity.DY
	}

	var lines []string
	for item := range ecs.NewView[struct{ *Position }](storage).Iter() {
		lines = append(lines, fmt.Sprintf("(%.0f, %.0f)", item.Position.X, item.Position.Y))
	}
	slices.Sort(lines)
	for _, line := range lines {
		fmt.Println(line)
	}

	// Output:
	// (1, 0)
	// (10, 11)
	// (20, 20)
}
