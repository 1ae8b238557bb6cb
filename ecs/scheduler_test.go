package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/lifeforms/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Iter() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type GravityConfig struct {
	Pull float32
}

type GravitySystem struct {
	Config   ecs.Singleton[GravityConfig]
	Entities ecs.Query[struct{ *Velocity }]
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Entities.Iter() {
		item.Velocity.DY -= s.Config.Get().Pull
	}
}

func TestSchedulerBindsFields(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton(storage, GravityConfig{Pull: 1})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&GravitySystem{})
	movement := &MovementSystem{}
	scheduler.Register(movement)

	id := storage.Spawn(Position{}, Velocity{DX: 1})

	scheduler.Once(1.0)
	scheduler.Once(1.0)

	pos := ecs.ReadComponent[Position](storage, id)
	assert.Equal(t, 2, movement.ExecuteCount)
	assert.Equal(t, float32(2), pos.X)
	assert.Equal(t, float32(-3), pos.Y)
	assert.Same(t, storage, scheduler.Storage())
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	movement := &MovementSystem{}
	scheduler.Register(movement)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx, time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after the context was cancelled")
	}
	assert.Greater(t, movement.ExecuteCount, 0)
}

type cancellingSystem struct {
	cancel context.CancelFunc
	runs   int
}

func (s *cancellingSystem) Execute(frame *ecs.UpdateFrame) {
	s.runs++
	s.cancel()
}

func TestSchedulerRunNoTickAfterCancel(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	system := &cancellingSystem{}
	scheduler.Register(system)
	// Running longer than the interval leaves the ticker ready alongside
	// ctx.Done on the next select.
	scheduler.Register(&sleepySystem{sleepDur: 5 * time.Millisecond})

	for range 20 {
		ctx, cancel := context.WithCancel(context.Background())
		system.cancel = cancel
		system.runs = 0
		scheduler.Run(ctx, time.Millisecond)
		require.Equal(t, 1, system.runs)
	}
}

type sleepySystem struct {
	executeCount int
	sleepDur     time.Duration
}

func (s *sleepySystem) Execute(frame *ecs.UpdateFrame) {
	s.executeCount++
	time.Sleep(s.sleepDur)
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	stats := scheduler.GetStats()
	assert.Equal(t, 0, stats.SystemCount)
	assert.Equal(t, int64(0), stats.TotalExecutions)

	scheduler.Register(&sleepySystem{sleepDur: time.Millisecond})
	scheduler.Register(&sleepySystem{sleepDur: 2 * time.Millisecond})

	for range 3 {
		scheduler.Once(0.016)
	}

	stats = scheduler.GetStats()
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, int64(6), stats.TotalExecutions)

	for _, sys := range stats.Systems {
		assert.Equal(t, "sleepySystem", sys.Name)
		assert.Equal(t, int64(3), sys.ExecutionCount)
		assert.NotZero(t, sys.MinDuration)
		assert.NotZero(t, sys.LastDuration)
		assert.LessOrEqual(t, sys.MinDuration, sys.AvgDuration)
		assert.LessOrEqual(t, sys.AvgDuration, sys.MaxDuration)
		assert.Equal(t, sys.TotalDuration/3, sys.AvgDuration)
	}
}

func TestClockTick(t *testing.T) {
	now := time.Unix(0, 0)
	clock := &ecs.Clock{Now: func() time.Time { return now }}
	clock.Tick()

	now = now.Add(600 * time.Millisecond)
	assert.Equal(t, 600*time.Millisecond, clock.Tick())

	now = now.Add(500 * time.Millisecond)
	assert.Equal(t, 500*time.Millisecond, clock.Tick())
	assert.Equal(t, time.Duration(0), clock.Tick())
}
