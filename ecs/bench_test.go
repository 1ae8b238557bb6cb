package ecs_test

import (
	"testing"

	"github.com/plus3/lifeforms/ecs"
)

func BenchmarkSpawn(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	b.ReportAllocs()
	for b.Loop() {
		storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 1, DY: 1})
	}
}

func BenchmarkQueryIter(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := range 10000 {
		storage.Spawn(Position{X: float32(i)}, Velocity{DX: 1})
		if i%3 == 0 {
			storage.Spawn(Position{X: float32(i)}, Velocity{DX: 1}, Tagged{})
		}
	}
	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)

	b.ResetTimer()
	for b.Loop() {
		for item := range query.Iter() {
			item.Position.X += item.Velocity.DX
		}
	}
}

func BenchmarkAddRemoveComponent(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{})
	for b.Loop() {
		id = storage.AddComponent(id, Velocity{})
		id = storage.RemoveComponent(id, velocityType)
	}
}

var velocityType = ecs.ComponentTypeOf(Velocity{})
