package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/plus3/gridarcade/arcade"
	"golang.org/x/sync/errgroup"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	sessions := flag.Int("sessions", runtime.NumCPU(), "The number of arcades running side by side.")
	step := flag.Duration("step", 16*time.Millisecond, "Simulated time per update.")
	rotate := flag.Duration("rotate", 30*time.Second, "Simulated time before an arcade switches game.")
	events := flag.Int("events", 4, "Synthetic input events fed per update.")
	seed := flag.Uint64("seed", 1, "Seed for games and synthetic input.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	log.Println("Starting arcade stress test...")

	cfg := arcade.DefaultConfig()
	cfg.Seed = *seed
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	workers := make([]*worker, *sessions)
	for i := range workers {
		w, err := newWorker(cfg, *seed+uint64(i), *step, *rotate, *events)
		if err != nil {
			log.Fatalf("Failed to create arcade %d: %v", i, err)
		}
		workers[i] = w
	}

	report := &Report{
		Duration:       *duration,
		Sessions:       *sessions,
		Step:           *step,
		EventsPerStep:  *events,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running %d arcades for %s...\n", *sessions, *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	eg, ctx := errgroup.WithContext(ctx)
	for _, w := range workers {
		eg.Go(func() error {
			return w.run(ctx)
		})
	}
	if err := eg.Wait(); err != nil {
		log.Fatalf("Stress test failed: %v", err)
	}

	report.TotalTime = time.Since(startTime)
	for _, w := range workers {
		report.Add(w)
	}
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
