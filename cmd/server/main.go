package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/kedaipos/counter/internal/api"
	"github.com/kedaipos/counter/internal/api/handler"
	"github.com/kedaipos/counter/internal/api/ws"
	"github.com/kedaipos/counter/internal/core/service"
	"github.com/kedaipos/counter/internal/infrastructure/backend"
	"github.com/kedaipos/counter/internal/infrastructure/config"
	storeredis "github.com/kedaipos/counter/internal/infrastructure/db/redis"
	"github.com/kedaipos/counter/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := storeredis.Connect(ctx, storeredis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	gateway := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)
	sessionRepo := storeredis.NewSessionRepository(redisClient, cfg.Session.TTL)
	sessions := service.NewSessions(sessionRepo, log)

	hub := ws.NewHub(log)
	go hub.Run()

	catalogService := service.NewCatalogService(gateway, sessions, log)
	checkoutService := service.NewCheckoutService(gateway, sessions, ws.NewNotifier(hub, log), cfg.Quote.Debounce, log)
	authService := service.NewAuthService(gateway, sessions, checkoutService.Teardown, log)

	e := api.NewRouter(api.Dependencies{
		Auth:     authService,
		Catalog:  catalogService,
		Checkout: checkoutService,
		Hub:      hub,
		Redis:    redisClient,
		Cookie: handler.CookieConfig{
			Name:   cfg.Session.CookieName,
			TTL:    cfg.Session.TTL,
			Secure: cfg.Session.CookieSecure,
		},
		Logger: log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting pos counter server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
