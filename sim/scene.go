package sim

import (
	"image/color"
	"math/rand/v2"

	"github.com/plus3/lifeforms/config"
	"github.com/plus3/lifeforms/ecs"
)

// SpawnScene populates storage from cfg: the SimConfig and Camera
// singletons and cfg.Lifeforms.Count lifeforms at random positions. When
// cfg.Lifetime.Seconds is set each lifeform also gets a Lifetime and an
// owned Halo. It returns the lifeform ids.
func SpawnScene(storage *ecs.Storage, cfg *config.Config, rng *rand.Rand) ([]ecs.EntityId, error) {
	scheme, err := ParseScheme(cfg.Simulation.Scheme)
	if err != nil {
		return nil, err
	}
	ecs.NewSingleton(storage, SimConfig{G: cfg.Simulation.G, Scheme: scheme})
	ecs.NewSingleton(storage, Camera{Zoom: 1})

	width := float32(cfg.Window.Width)
	height := float32(cfg.Window.Height)
	circle := Circle{
		Radius:       float32(cfg.Lifeforms.Radius),
		Fill:         cfg.Lifeforms.Fill.RGBA(),
		Outline:      cfg.Lifeforms.Outline.RGBA(),
		OutlineWidth: float32(cfg.Lifeforms.OutlineWidth),
	}

	ids := make([]ecs.EntityId, 0, cfg.Lifeforms.Count)
	for range cfg.Lifeforms.Count {
		pos := Position{
			X: rng.Float32()*width - width/4,
			Y: rng.Float32()*height - height/4,
		}
		id := storage.Spawn(pos, Lifeform{}, circle)

		if cfg.Lifetime.Seconds > 0 {
			timer := NewTimer(SecondsToDuration(cfg.Lifetime.Seconds), TimerOnce)
			id = storage.AddComponent(id, Lifetime{Timer: timer})
			halo := storage.Spawn(Halo{
				Radius: circle.Radius * 1.6,
				Color:  color.RGBA{R: circle.Fill.R, G: circle.Fill.G, B: circle.Fill.B, A: 160},
			})
			_, id = storage.SetParent(halo, id)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// NewRand returns the placement generator for seed; 0 means random.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// NewSimulation returns a scheduler running the force step and then the
// lifetime step.
func NewSimulation(storage *ecs.Storage) *ecs.Scheduler {
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&ForceSystem{})
	scheduler.Register(&LifetimeSystem{})
	return scheduler
}
