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
	"github.com/goalline/sportscache/internal/assets"
	"github.com/goalline/sportscache/internal/config"
	"github.com/goalline/sportscache/internal/logger"
	"github.com/goalline/sportscache/internal/media/transformer"
	"github.com/goalline/sportscache/internal/origin"
	"github.com/goalline/sportscache/internal/storage"
	"github.com/goalline/sportscache/internal/store"
	"github.com/goalline/sportscache/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
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
			"service": "sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting sportscache sweeper")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.Fatal("Failed to configure connection pool", zap.Error(err))
	}

	dataStore := store.NewPGStore(db)
	clock := adapter.NewClock()

	originClient := origin.NewClient(adapter.NewHTTPClient(cfg.Origin.Timeout), origin.Config{
		BaseURL:      cfg.Origin.BaseURL,
		MediaBaseURL: cfg.Origin.MediaBaseURL,
		APIKey:       cfg.Origin.APIKey,
		ImageTimeout: cfg.Origin.ImageTimeout,
	})

	blob := storage.NewHTTPStorage(adapter.NewHTTPClient(cfg.Storage.Timeout), storage.Config{
		Endpoint:   cfg.Storage.Endpoint,
		Bucket:     cfg.Storage.Bucket,
		ServiceKey: cfg.Storage.ServiceKey,
		Timeout:    cfg.Storage.Timeout,
	})

	tf := transformer.New(adapter.NewImageCodec(), cfg.Assets.TransformWorkers, cfg.Assets.TransformTimeout)
	assetService := assets.NewService(dataStore, originClient, blob, tf, clock, assets.Config{
		MaxPendingAge:     cfg.Assets.MaxPendingAge,
		ErrorCooldown:     cfg.Assets.ErrorCooldown,
		PendingWait:       cfg.Assets.PendingWait,
		RefreshTTL:        cfg.Assets.RefreshTTL,
		BatchWidth:        cfg.Assets.BatchWidth,
		PlaceholderPrefix: cfg.Assets.PlaceholderPrefix,
	})

	sweep := sweeper.NewAssetRefreshSweeper(
		&sweeper.AssetRefreshSweeperConfig{
			BatchSize:      cfg.Sweep.BatchSize,
			WorkerPoolSize: cfg.Assets.BatchWidth,
			Interval:       cfg.Sweep.Interval,
			RefreshTTL:     cfg.Assets.RefreshTTL,
		},
		dataStore,
		assetService,
		clock,
	)

	// Start sweeper in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := sweep.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", sweep.Name()))
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := sweep.Stop(shutdownCtx); err != nil {
		logger.Fatal("Sweeper forced to shutdown", zap.Error(err))
	}
	cancel()

	logger.Info("Sweeper stopped")
}
