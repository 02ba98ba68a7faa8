// Command pivotquad-sim runs the bounce systems without a window and prints
// what happened: pivot switches, reversals, nudges and per-system timings.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/plus3/pivotquad/ecs"
	"github.com/plus3/pivotquad/internal/bounce"
	"github.com/plus3/pivotquad/internal/config"
)

func main() {
	frames := flag.Int("frames", 10000, "Number of frames to simulate. Ignored when -duration is set.")
	duration := flag.Duration("duration", 0, "Simulate for this long instead of a fixed frame count.")
	flags := config.NewFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *frames <= 0 && *duration <= 0 {
		fmt.Fprintln(os.Stderr, "-frames must be positive unless -duration is set")
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	ctx := context.Background()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
		*frames = 0
	}

	report, err := Simulate(ctx, cfg, *frames, logger)
	if err != nil {
		logger.Error("simulation failed", "err", err)
		os.Exit(1)
	}

	if err := report.Generate(os.Stdout); err != nil {
		logger.Error("failed to generate report", "err", err)
		os.Exit(1)
	}
}

// ErrUnbounded is returned when neither a frame count nor a cancellable
// context limits the run.
var ErrUnbounded = errors.New("simulation needs a frame count or a deadline")

// Simulate runs the update systems for frames ticks, or until ctx is done
// when frames is zero.
func Simulate(ctx context.Context, cfg config.Config, frames int, logger *slog.Logger) (*Report, error) {
	if frames < 0 || (frames == 0 && ctx.Done() == nil) {
		return nil, fmt.Errorf("%w: frames = %d", ErrUnbounded, frames)
	}

	registry := ecs.NewComponentRegistry()
	bounce.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	bounce.Setup(storage, cfg)

	scheduler := ecs.NewScheduler(storage)
	bounce.Register(scheduler, logger)

	report := &Report{Config: cfg}

	logger.Info("simulating", "frames", frames, "mode", cfg.Mode)
	start := time.Now()

Loop:
	for i := 0; frames == 0 || i < frames; i++ {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		frameStart := time.Now()
		scheduler.Once(1.0 / 60)
		report.FrameTime.Add(time.Since(frameStart))
	}

	report.TotalTime = time.Since(start)
	report.FrameTime.Finalize()

	var counters *bounce.Counters
	if storage.ReadSingleton(&counters) {
		report.Counters = *counters
	}
	var pose *bounce.Pose
	for sq := range ecs.NewQuery[struct{ *bounce.Pose }](storage).Iter() {
		pose = sq.Pose
	}
	if pose != nil {
		report.Final = *pose
	}
	report.Systems = scheduler.GetStats().Systems

	logger.Info("simulation finished", "frames", report.Counters.Frames, "elapsed", report.TotalTime)
	return report, nil
}
