// Command pivotquad opens a window with a square that spins about one of its
// corners and bounces off the edges.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/plus3/pivotquad/internal/app"
	"github.com/plus3/pivotquad/internal/config"
)

func main() {
	flags := config.NewFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	logger.Info("starting", "mode", cfg.Mode, "corner", cfg.Corner, "size", cfg.Size)

	if err := app.Run(cfg, logger); err != nil {
		logger.Error("exited with error", "err", err)
		os.Exit(1)
	}
}
