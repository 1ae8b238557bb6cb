package ecs_test

import (
	"fmt"

	"github.com/plus3/lifeforms/ecs"
)

// ExampleStorage_DeleteRecursive removes an entity together with the
// entities it owns.
func ExampleStorage_DeleteRecursive() {
	storage := ecs.NewStorage(newTestRegistry())

	ship := storage.Spawn(Name("ship"))
	turret := storage.Spawn(Name("turret"))
	bystander := storage.Spawn(Name("bystander"))
	turret, ship = storage.SetParent(turret, ship)

	removed := storage.DeleteRecursive(ship)

	fmt.Println("removed:", len(removed))
	fmt.Println("turret alive:", storage.Alive(turret))
	fmt.Println("bystander alive:", storage.Alive(bystander))

	// Output:
	// removed: 2
	// turret alive: false
	// bystander alive: true
}
