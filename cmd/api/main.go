package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Thibault-Renand/OctoPulse/config"
	"github.com/Thibault-Renand/OctoPulse/internal/database"
	"github.com/Thibault-Renand/OctoPulse/internal/discovery"
	"github.com/Thibault-Renand/OctoPulse/internal/logger"
	"github.com/Thibault-Renand/OctoPulse/internal/server"
	"github.com/Thibault-Renand/OctoPulse/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logMode := "dev"
	if config.GetEnvironment() == config.Production {
		logMode = "prod"
	}
	zlog, err := logger.New(logMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.New(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", "error", err)
	}
	if err := database.RunMigrations(db); err != nil {
		zlog.Fatal("failed to run migrations", "error", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		// The cache is optional; the server works without it.
		zlog.Warn("redis unavailable, summary caching disabled", "error", err)
		redisClient = nil
	}
	cache := database.NewSummaryCache(redisClient)

	srv := server.New(cfg, db, cache, service.NewClock(), zlog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// UDP discovery lets the tablets find this server on the LAN.
	disco := discovery.New(cfg.DiscoveryPort, zlog)
	go func() {
		if err := disco.Run(ctx); err != nil {
			zlog.Error("discovery service stopped", "error", err)
		}
	}()

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			zlog.Fatal("server error", "error", err)
		}
	case sig := <-quit:
		zlog.Info("received signal, shutting down", "signal", sig.String())
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("server shutdown error", "error", err)
	}
	zlog.Info("server stopped")
}
