package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/lifeforms/config"
	"github.com/plus3/lifeforms/ecs"
	"github.com/plus3/lifeforms/ecs/debugui"
	"github.com/plus3/lifeforms/render"
	"github.com/plus3/lifeforms/sim"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML scene configuration.")
	headless := flag.Bool("headless", false, "Run the simulation without a window, logging positions.")
	ticks := flag.Int("ticks", 0, "Stop after this many ticks; 0 runs until interrupted.")
	seed := flag.Uint64("seed", 0, "Placement seed; overrides the configuration when set.")
	noInspector := flag.Bool("no-inspector", false, "Disable the world inspector.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("[Config] %v", err)
		}
		cfg = loaded
		log.Printf("[Config] Loaded %s", *configPath)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *noInspector {
		cfg.Inspector.Enabled = false
	}

	registry := ecs.NewComponentRegistry()
	sim.RegisterComponents(registry)
	debugui.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	ids, err := sim.SpawnScene(storage, cfg, sim.NewRand(cfg.Seed))
	if err != nil {
		log.Fatalf("[Scene] %v", err)
	}
	log.Printf("[Scene] Spawned %d lifeforms (scheme %s, G %g)", len(ids), cfg.Simulation.Scheme, cfg.Simulation.G)

	simulation := sim.NewSimulation(storage)

	if *headless {
		runHeadless(storage, simulation, cfg, *ticks)
		return
	}

	game := NewGame(storage, simulation, cfg, *ticks)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("[Game] %v", err)
	}
}

func runHeadless(storage *ecs.Storage, simulation *ecs.Scheduler, cfg *config.Config, ticks int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	simulation.Register(&PositionLogger{
		Every: cfg.Simulation.TickRate,
		Limit: ticks,
		Stop:  cancel,
	})

	interval := time.Second / time.Duration(cfg.Simulation.TickRate)
	log.Printf("[Headless] Running at %d ticks/s", cfg.Simulation.TickRate)
	simulation.Run(ctx, interval)

	stats := storage.CollectStats()
	log.Printf("[Headless] Stopped with %d entities", stats.TotalEntityCount)
	for _, s := range simulation.GetStats().Systems {
		log.Printf("[Headless] %s: %d runs, avg %s", s.Name, s.ExecutionCount, s.AvgDuration)
	}
}

// PositionLogger logs every lifeform's position once every Every ticks and
// calls Stop after Limit ticks when Limit is set. Ticks past Limit are ignored.
type PositionLogger struct {
	Lifeforms ecs.Query[struct {
		ecs.EntityId
		*sim.Position
		*sim.Lifeform
	}]
	Every int
	Limit int
	Stop  func()

	tick int
}

func (p *PositionLogger) Execute(frame *ecs.UpdateFrame) {
	if p.Limit > 0 && p.tick >= p.Limit {
		return
	}
	p.tick++
	last := p.Limit > 0 && p.tick == p.Limit
	if last || (p.Every > 0 && p.tick%p.Every == 0) {
		for item := range p.Lifeforms.Iter() {
			log.Printf("[Tick %d] lifeform %d at (%.2f, %.2f)", p.tick, item.EntityId, item.Position.X, item.Position.Y)
		}
	}
	if last && p.Stop != nil {
		p.Stop()
	}
}

// newRenderScheduler builds the scheduler that draws each frame.
func newRenderScheduler(storage *ecs.Storage, cfg *config.Config) *ecs.Scheduler {
	ecs.NewSingleton(storage, render.Screen{})
	ecs.NewSingleton(storage, render.Background{Color: cfg.Window.ClearColor.RGBA()})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&render.RenderSystem{})
	return scheduler
}
