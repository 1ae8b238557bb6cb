package sim_test

import (
	"testing"
	"time"

	"github.com/plus3/lifeforms/ecs"
	"github.com/plus3/lifeforms/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerOnce(t *testing.T) {
	timer := sim.NewTimer(time.Second, sim.TimerOnce)

	assert.False(t, timer.Tick(600*time.Millisecond))
	assert.False(t, timer.Finished())
	assert.InDelta(t, 0.6, timer.Fraction(), 1e-9)
	assert.Equal(t, 400*time.Millisecond, timer.Remaining())

	assert.True(t, timer.Tick(500*time.Millisecond))
	assert.True(t, timer.Finished())
	assert.True(t, timer.JustFinished())
	assert.Equal(t, time.Second, timer.Elapsed)
	assert.Zero(t, timer.Remaining())

	assert.False(t, timer.Tick(time.Second))
	assert.True(t, timer.Finished())
	assert.False(t, timer.JustFinished())

	timer.Reset()
	assert.False(t, timer.Finished())
	assert.Zero(t, timer.Fraction())
}

func TestTimerRepeating(t *testing.T) {
	timer := sim.NewTimer(time.Second, sim.TimerRepeating)

	assert.True(t, timer.Tick(2500*time.Millisecond))
	assert.Equal(t, 2, timer.TimesFinished())
	assert.Equal(t, 500*time.Millisecond, timer.Elapsed)

	assert.False(t, timer.Tick(100*time.Millisecond))
	assert.False(t, timer.Finished())

	assert.True(t, timer.Tick(400*time.Millisecond))
	assert.Equal(t, 1, timer.TimesFinished())
	assert.Zero(t, timer.Elapsed)
}

func TestTimerZeroDuration(t *testing.T) {
	timer := sim.NewTimer(0, sim.TimerOnce)
	assert.Equal(t, 1.0, timer.Fraction())
	assert.True(t, timer.Tick(0))
}

func TestSecondsToDuration(t *testing.T) {
	assert.Equal(t, 600*time.Millisecond, sim.SecondsToDuration(0.6))
	assert.Equal(t, 16666667*time.Nanosecond, sim.SecondsToDuration(1.0/60))
}

func TestLifetimeSystem(t *testing.T) {
	storage := newStorage()
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&sim.LifetimeSystem{})

	id := storage.Spawn(sim.Position{}, sim.Lifetime{Timer: sim.NewTimer(time.Second, sim.TimerOnce)})
	forever := storage.Spawn(sim.Position{X: 1})

	scheduler.Once(0.6)
	require.True(t, storage.Alive(id))

	scheduler.Once(0.5)
	assert.False(t, storage.Alive(id))
	assert.True(t, storage.Alive(forever))

	assert.NotPanics(t, func() { scheduler.Once(0.5) })
	assert.True(t, storage.Alive(forever))
}

func TestLifetimeSystemRemovesOwned(t *testing.T) {
	storage := newStorage()
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&sim.LifetimeSystem{})

	owner := storage.Spawn(sim.Position{}, sim.Lifetime{Timer: sim.NewTimer(time.Second, sim.TimerOnce)})
	halo := storage.Spawn(sim.Halo{Radius: 16})
	grandchild := storage.Spawn(sim.Halo{Radius: 24})
	halo, owner = storage.SetParent(halo, owner)
	grandchild, halo = storage.SetParent(grandchild, halo)

	require.Equal(t, []ecs.EntityId{halo}, storage.ChildrenOf(owner))

	scheduler.Once(1)

	assert.False(t, storage.Alive(owner))
	assert.False(t, storage.Alive(halo))
	assert.False(t, storage.Alive(grandchild))
}
