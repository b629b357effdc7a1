package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/goalline/sportscache/internal/adapter"
	"github.com/goalline/sportscache/internal/api/rest"
	"github.com/goalline/sportscache/internal/api/server"
	"github.com/goalline/sportscache/internal/assets"
	"github.com/goalline/sportscache/internal/config"
	"github.com/goalline/sportscache/internal/datacache"
	"github.com/goalline/sportscache/internal/logger"
	"github.com/goalline/sportscache/internal/media/transformer"
	"github.com/goalline/sportscache/internal/origin"
	"github.com/goalline/sportscache/internal/speedcache"
	"github.com/goalline/sportscache/internal/storage"
	"github.com/goalline/sportscache/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting sportscache API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.Fatal("Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	dataStore := store.NewPGStore(db)
	clock := adapter.NewClock()

	// Origin client with its own retrying HTTP client
	originClient := origin.NewClient(adapter.NewHTTPClient(cfg.Origin.Timeout), origin.Config{
		BaseURL:      cfg.Origin.BaseURL,
		MediaBaseURL: cfg.Origin.MediaBaseURL,
		APIKey:       cfg.Origin.APIKey,
		ImageTimeout: cfg.Origin.ImageTimeout,
	})

	// Blob storage for materialized variants
	blob := storage.NewHTTPStorage(adapter.NewHTTPClient(cfg.Storage.Timeout), storage.Config{
		Endpoint:   cfg.Storage.Endpoint,
		Bucket:     cfg.Storage.Bucket,
		ServiceKey: cfg.Storage.ServiceKey,
		Timeout:    cfg.Storage.Timeout,
	})

	// Data cache with the in-process speed layer in front of the store
	speed := speedcache.New(cfg.SpeedCache.Size, cfg.SpeedCache.TTL)
	dataCache := datacache.New(dataStore, speed, clock)

	// Asset pipeline
	tf := transformer.New(adapter.NewImageCodec(), cfg.Assets.TransformWorkers, cfg.Assets.TransformTimeout)
	assetService := assets.NewService(dataStore, originClient, blob, tf, clock, assets.Config{
		MaxPendingAge:     cfg.Assets.MaxPendingAge,
		ErrorCooldown:     cfg.Assets.ErrorCooldown,
		PendingWait:       cfg.Assets.PendingWait,
		RefreshTTL:        cfg.Assets.RefreshTTL,
		BatchWidth:        cfg.Assets.BatchWidth,
		PlaceholderPrefix: cfg.Assets.PlaceholderPrefix,
	})

	handler := rest.NewHandler(dataCache, originClient, assetService)

	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	srv := server.New(serverConfig, handler)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
