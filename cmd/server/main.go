package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hersh/gopong/internal/config"
	"github.com/hersh/gopong/internal/logging"
	"github.com/hersh/gopong/internal/server"
	"github.com/hersh/gopong/internal/transport"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Console logger until the configured one is in place.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logs, err := logging.Setup(cfg.Log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}
	defer logs.Close()

	hub := transport.NewHub()
	rooms := server.NewRegistry(server.WithSharedServeAngle(cfg.Game.SharedServeAngle))
	loop := server.NewLoop(rooms, hub, cfg.TickInterval)

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("game loop failed")
		}
	}()

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: transport.NewRouter(ctx, cfg, loop, hub),
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("mode", cfg.Mode).Msg("pong server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	hub.CloseAll()
	<-loopDone
	log.Info().Msg("server exited gracefully")
}
