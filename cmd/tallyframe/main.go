package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tallyframe/tallyframe/lib/api"
	"github.com/tallyframe/tallyframe/lib/charts"
	"github.com/tallyframe/tallyframe/lib/config"
	tflog "github.com/tallyframe/tallyframe/lib/log"
	"github.com/tallyframe/tallyframe/lib/mixer"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("Usage: %s <config file>", os.Args[0])
	}
	cfg, err := config.Parse(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	level, _ := cfg.Level()
	tflog.Setup(level)

	palette, err := cfg.ResolvePalette()
	if err != nil {
		log.Fatal(err)
	}
	m := mixer.New(mixer.Options{FPS: cfg.Canvas.FPS, Background: palette.Background}, cfg.Presentation())
	charts.Register(m.Theatre, palette)
	if err := mixer.Setup(m.Theatre, cfg); err != nil {
		log.Fatalf("could not set up scene: %s", err)
	}

	theApi := api.ServeInBackground(m, cfg.Api)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Watch {
		go func() {
			err := m.WatchDocument(ctx, cfg.Document.String())
			if err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("document watcher stopped", slog.String("module", "main"), slog.String("error", err.Error()))
			}
		}()
	}

	err = m.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("frame loop failed", slog.String("module", "main"), slog.String("error", err.Error()))
	}

	if theApi != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := theApi.Close(shutdownCtx); err != nil {
			slog.Warn("could not stop web server", slog.String("module", "main"), slog.String("error", err.Error()))
		}
	}
}
