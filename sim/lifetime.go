package sim

import (
	"math"
	"time"

	"github.com/plus3/lifeforms/ecs"
)

// LifetimeSystem ticks every Lifetime and removes the entity, along with
// what it owns, on the tick its timer finishes.
type LifetimeSystem struct {
	Expiring ecs.Query[struct {
		ecs.EntityId
		*Lifetime
	}]
}

func (s *LifetimeSystem) Execute(frame *ecs.UpdateFrame) {
	delta := SecondsToDuration(frame.DeltaTime)
	for item := range s.Expiring.Iter() {
		if item.Lifetime.Timer.Tick(delta) {
			frame.Commands.DeleteRecursive(item.EntityId)
		}
	}
}

// SecondsToDuration converts a frame delta in seconds, rounding to the
// nearest nanosecond.
func SecondsToDuration(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds * float64(time.Second)))
}
