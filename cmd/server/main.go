package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/soundroom/studio-booking/internal/auth"
	"github.com/soundroom/studio-booking/internal/config"
	"github.com/soundroom/studio-booking/internal/database"
	"github.com/soundroom/studio-booking/internal/handlers"
	"github.com/soundroom/studio-booking/internal/metrics"
	"github.com/soundroom/studio-booking/internal/router"
	"github.com/soundroom/studio-booking/internal/service"
	"github.com/soundroom/studio-booking/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Select the store: Postgres when configured, in-memory otherwise.
	var store database.Store
	if cfg.DatabaseURL != "" {
		pool, err := database.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		repo := database.NewRepository(pool)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			logger.Fatal("failed to prepare database schema", zap.Error(err))
		}
		store = repo
		logger.Info("using postgres store")
	} else {
		store = database.NewMemStore()
		logger.Info("using in-memory store; bookings are lost on restart")
	}

	passwordHash := cfg.AdminPasswordHash
	if passwordHash == "" {
		passwordHash, err = auth.HashPassword(cfg.AdminPassword)
		if err != nil {
			logger.Fatal("failed to hash admin password", zap.Error(err))
		}
	}
	authManager := auth.NewManager(passwordHash, cfg.JWTSecret)

	metrics.Register()

	hub := websocket.NewHub(logger)
	go hub.Run()

	bookingService := service.NewBookingService(store, hub, logger)
	h := handlers.NewHandler(bookingService, authManager, hub)
	r := router.SetupRouter(h, authManager)

	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			logger.Info("metrics server starting", zap.String("addr", cfg.MetricsAddr))
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
