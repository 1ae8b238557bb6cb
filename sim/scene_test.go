package sim_test

import (
	"math"
	"testing"

	"github.com/plus3/lifeforms/config"
	"github.com/plus3/lifeforms/ecs"
	"github.com/plus3/lifeforms/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnScene(t *testing.T) {
	storage := newStorage()
	cfg := config.Default()
	cfg.Lifeforms.Count = 50

	ids, err := sim.SpawnScene(storage, cfg, sim.NewRand(7))
	require.NoError(t, err)
	require.Len(t, ids, 50)

	w, h := float32(cfg.Window.Width), float32(cfg.Window.Height)
	for _, id := range ids {
		pos := ecs.ReadComponent[sim.Position](storage, id)
		require.NotNil(t, pos)
		assert.GreaterOrEqual(t, pos.X, -w/4)
		assert.LessOrEqual(t, pos.X, w-w/4)
		assert.GreaterOrEqual(t, pos.Y, -h/4)
		assert.LessOrEqual(t, pos.Y, h-h/4)

		circle := ecs.ReadComponent[sim.Circle](storage, id)
		require.NotNil(t, circle)
		assert.Equal(t, float32(10), circle.Radius)
		assert.Equal(t, cfg.Lifeforms.Fill.RGBA(), circle.Fill)
		assert.False(t, storage.HasComponent(id, ecs.ComponentTypeOf(sim.Lifetime{})))
	}

	cfg2 := ecs.NewSingleton[sim.SimConfig](storage).Get()
	require.NotNil(t, cfg2)
	assert.Equal(t, 1.0, cfg2.G)
	assert.Equal(t, sim.SchemeSingle, cfg2.Scheme)
	assert.Equal(t, float32(1), ecs.NewSingleton[sim.Camera](storage).Get().Zoom)
}

func TestSpawnSceneDeterministic(t *testing.T) {
	cfg := config.Default()

	positions := func() []sim.Position {
		storage := newStorage()
		ids, err := sim.SpawnScene(storage, cfg, sim.NewRand(42))
		require.NoError(t, err)
		out := make([]sim.Position, len(ids))
		for i, id := range ids {
			out[i] = *ecs.ReadComponent[sim.Position](storage, id)
		}
		return out
	}

	assert.Equal(t, positions(), positions())
}

func TestSpawnSceneWithLifetime(t *testing.T) {
	storage := newStorage()
	cfg := config.Default()
	cfg.Lifetime.Seconds = 1

	ids, err := sim.SpawnScene(storage, cfg, sim.NewRand(1))
	require.NoError(t, err)

	for _, id := range ids {
		lt := ecs.ReadComponent[sim.Lifetime](storage, id)
		require.NotNil(t, lt)
		assert.Equal(t, cfg.Lifetime.Seconds, lt.Timer.Duration.Seconds())

		children := storage.ChildrenOf(id)
		require.Len(t, children, 1)
		assert.NotNil(t, ecs.ReadComponent[sim.Halo](storage, children[0]))
	}

	scheduler := sim.NewSimulation(storage)
	scheduler.Once(0.6)
	for _, id := range ids {
		assert.True(t, storage.Alive(id))
	}
	scheduler.Once(0.5)

	stats := storage.CollectStats()
	assert.Zero(t, stats.TotalEntityCount)
}

func TestSpawnSceneBadScheme(t *testing.T) {
	cfg := config.Default()
	cfg.Simulation.Scheme = "nope"

	_, err := sim.SpawnScene(newStorage(), cfg, sim.NewRand(1))
	assert.Error(t, err)
}

func TestNewSimulation(t *testing.T) {
	storage := newStorage()
	ids, err := sim.SpawnScene(storage, config.Default(), sim.NewRand(3))
	require.NoError(t, err)
	require.Len(t, ids, 2)
	startA := *ecs.ReadComponent[sim.Position](storage, ids[0])
	startB := *ecs.ReadComponent[sim.Position](storage, ids[1])

	scheduler := sim.NewSimulation(storage)
	scheduler.Once(1.0 / 60)

	a := *ecs.ReadComponent[sim.Position](storage, ids[0])
	b := *ecs.ReadComponent[sim.Position](storage, ids[1])
	assert.NotEqual(t, startA, a)
	assert.NotEqual(t, startB, b)
	assert.InDelta(t, -(b.X - startB.X), a.X-startA.X, 1e-3)
	assert.InDelta(t, -(b.Y - startB.Y), a.Y-startA.Y, 1e-3)

	stats := scheduler.GetStats()
	require.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, "ForceSystem", stats.Systems[0].Name)
	assert.Equal(t, "LifetimeSystem", stats.Systems[1].Name)
	assert.EqualValues(t, 2, stats.TotalExecutions)
}

func TestFirstTickMovesRandomPairApart(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		storage := newStorage()
		ids, err := sim.SpawnScene(storage, config.Default(), sim.NewRand(seed))
		require.NoError(t, err)
		startA := *ecs.ReadComponent[sim.Position](storage, ids[0])
		startB := *ecs.ReadComponent[sim.Position](storage, ids[1])

		sim.NewSimulation(storage).Once(1.0 / 60)

		a := *ecs.ReadComponent[sim.Position](storage, ids[0])
		b := *ecs.ReadComponent[sim.Position](storage, ids[1])
		dax, day := float64(a.X-startA.X), float64(a.Y-startA.Y)
		dbx, dby := float64(b.X-startB.X), float64(b.Y-startB.Y)

		assert.NotEqual(t, startA, a, "seed %d", seed)
		assert.NotEqual(t, startB, b, "seed %d", seed)
		assert.InDelta(t, -dbx, dax, 1e-3, "seed %d", seed)
		assert.InDelta(t, -dby, day, 1e-3, "seed %d", seed)
		// The push has magnitude G and points away from the other lifeform.
		assert.InDelta(t, 1, math.Hypot(dax, day), 1e-3, "seed %d", seed)
		assert.Positive(t, dax*float64(startA.X-startB.X)+day*float64(startA.Y-startB.Y), "seed %d", seed)
	}
}
