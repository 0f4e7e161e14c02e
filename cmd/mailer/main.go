package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felix-musau/myai/internal/app/mailer"
	"github.com/felix-musau/myai/internal/config"
	"github.com/felix-musau/myai/internal/lib/logger"
	"github.com/felix-musau/myai/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()

	logg, closer, err := logger.New(cfg.Env, logger.Options{
		File:         cfg.Log.File,
		MaxAge:       cfg.Log.MaxAge,
		RotationTime: cfg.Log.RotationTime,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	logg.Info("starting mailer", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := mailer.New(ctx, cfg, logg)
	if err != nil {
		logg.Error("failed to initialize mailer", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logg.Error("mailer stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logg.Info("mailer stopped gracefully")
}
