package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/lifeforms/config"
	"github.com/plus3/lifeforms/ecs"
	"github.com/plus3/lifeforms/sim"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	lifeforms := flag.Int("lifeforms", 500, "The number of lifeforms to spawn.")
	lifetime := flag.Float64("lifetime", 0, "Seconds each lifeform lives; 0 keeps them forever.")
	scheme := flag.String("scheme", config.SchemeSingle, "Force accumulation scheme: single or compounding.")
	seed := flag.Uint64("seed", 1, "Placement seed; 0 picks a random one.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.SetPrefix("[ecs-stress] ")
	log.Println("Starting ECS stress test...")

	cfg := config.Default()
	cfg.Lifeforms.Count = *lifeforms
	cfg.Lifetime.Seconds = *lifetime
	cfg.Simulation.Scheme = *scheme
	cfg.Seed = *seed
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 1. Setup Registry, Storage, and Scheduler
	registry := ecs.NewComponentRegistry()
	sim.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	scheduler := sim.NewSimulation(storage)

	// 2. Populate Storage with the scene
	log.Printf("Populating storage with %d lifeforms...\n", cfg.Lifeforms.Count)
	if _, err := sim.SpawnScene(storage, cfg, sim.NewRand(cfg.Seed)); err != nil {
		log.Fatalf("Failed to spawn scene: %v", err)
	}
	log.Println("Population complete.")

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Lifeforms:      cfg.Lifeforms.Count,
		Lifetime:       *lifetime,
		Scheme:         cfg.Simulation.Scheme,
		EntitiesStart:  storage.CollectStats().TotalEntityCount,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	clock := ecs.NewClock()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := clock.Tick()

			updateStart := time.Now()
			scheduler.Once(deltaTime.Seconds())
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.EntitiesEnd = storage.CollectStats().TotalEntityCount
	report.Scheduler = scheduler.GetStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}
