// Package main MyAI API
//
// @title           MyAI API
// @version         1.0
// @description     Аутентификация, отзывы, заявки к врачу, анализы и консультации.
//
// @BasePath  /api
//
// @securityDefinitions.apikey CookieAuth
// @in header
// @name Cookie
// @description Сессионный токен в cookie token (или заголовок Authorization: Bearer).
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felix-musau/myai/internal/app/myai"
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

	logg.Info("starting myai", slog.String("env", cfg.Env))
	logg.Debug("config loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := myai.New(ctx, cfg, logg)
	if err != nil {
		logg.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logg.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logg.Info("myai stopped gracefully")
}
