package ecs_test

import (
	"slices"
	"testing"

	"github.com/plus3/lifeforms/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[struct {
		ecs.EntityId
		*Position
		*Velocity
	}](storage)

	id := storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 3, DY: 4})
	other := storage.Spawn(Position{X: 5})

	item := view.Get(id)
	require.NotNil(t, item)
	assert.Equal(t, id, item.EntityId)
	assert.Equal(t, float32(1), item.Position.X)
	assert.Equal(t, float32(3), item.Velocity.DX)

	item.Position.X = 10
	assert.Equal(t, float32(10), ecs.ReadComponent[Position](storage, id).X, "view fields point into storage")

	assert.Nil(t, view.Get(other), "missing required component")
	storage.Delete(id)
	assert.Nil(t, view.Get(id))
}

func TestViewOptionalFields(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[struct {
		*Position
		Health *Health `ecs:"optional"`
	}](storage)

	storage.Spawn(Position{X: 1})
	storage.Spawn(Position{X: 2}, Health{Current: 50, Max: 100})
	storage.Spawn(Health{Current: 10})

	withHealth := 0
	total := 0
	for item := range view.Iter() {
		total++
		if item.Health != nil {
			withHealth++
			assert.Equal(t, float32(2), item.Position.X)
		}
	}
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, withHealth)
}

func TestViewGetRef(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[struct{ *Position }](storage)

	id := storage.Spawn(Position{X: 7})
	ref := storage.CreateEntityRef(id)
	storage.AddComponent(id, Velocity{})

	item := view.GetRef(ref)
	require.NotNil(t, item)
	assert.Equal(t, float32(7), item.Position.X)
	assert.Nil(t, view.GetRef(nil))
}

func TestViewSpawn(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[struct {
		*Position
		Health *Health `ecs:"optional"`
	}](storage)

	id := view.Spawn(struct {
		*Position
		Health *Health `ecs:"optional"`
	}{Position: &Position{X: 4}})

	assert.Equal(t, float32(4), ecs.ReadComponent[Position](storage, id).X)
	assert.Nil(t, ecs.ReadComponent[Health](storage, id))

	assert.Panics(t, func() {
		view.Spawn(struct {
			*Position
			Health *Health `ecs:"optional"`
		}{})
	})
}

func TestInvalidViewTypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() { ecs.NewView[struct{ P Position }](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			P *Position `ecs:"sometimes"`
		}](storage)
	})
}

func TestQuerySeesNewArchetypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[struct {
		ecs.EntityId
		*Position
	}](storage)

	a := storage.Spawn(Position{X: 1})
	assert.Equal(t, 1, query.Count())

	b := storage.Spawn(Position{X: 2}, Tagged{})
	storage.Spawn(Velocity{})
	assert.Equal(t, 2, query.Count())

	var ids []ecs.EntityId
	for item := range query.Iter() {
		ids = append(ids, item.EntityId)
	}
	slices.Sort(ids)
	expected := []ecs.EntityId{a, b}
	slices.Sort(expected)
	assert.Equal(t, expected, ids)
}

func TestQueryCollect(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[struct{ *Score }](storage)

	storage.Spawn(Score(1))
	storage.Spawn(Score(2))

	items := query.Collect()
	require.Len(t, items, 2)

	sum := Score(0)
	for _, item := range items {
		sum += *item.Score
	}
	assert.Equal(t, Score(3), sum)
}

func TestQueryEarlyBreak(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[struct{ *Score }](storage)

	for i := range 10 {
		storage.Spawn(Score(i))
	}

	seen := 0
	for range query.Iter() {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}

func TestQueryBeforeInitPanics(t *testing.T) {
	var query ecs.Query[struct{ *Score }]
	assert.Panics(t, func() { query.Count() })
}
