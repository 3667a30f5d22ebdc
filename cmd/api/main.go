package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"quest-demos/api"
	"quest-demos/config"
	"quest-demos/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	key, err := cfg.KeyParameters()
	if err != nil {
		logger.Fatal("invalid RSA key parameters", zap.Error(err))
	}

	demo := service.NewDemoService(key, cfg.ServiceOptions(), logger)
	server := api.NewServer(cfg, demo, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting quest demo API", zap.String("addr", cfg.ListenAddr()), zap.Stringer("key", key))
	if err := server.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
