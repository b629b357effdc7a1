package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/goalline/sportscache/internal/adapter"
	"github.com/goalline/sportscache/internal/domain"
	"github.com/goalline/sportscache/internal/logger"
	"github.com/goalline/sportscache/internal/store"
)

// AssetRefresher re-materializes a ready asset whose variants have aged out.
// Contention with a concurrent refresh is not an error.
//
//go:generate mockgen -source=asset_refresh.go -destination=../mocks/refresher.go -package=mocks
type AssetRefresher interface {
	RefreshIfStale(ctx context.Context, kind domain.AssetKind, entityID int64) error
}

// AssetRefreshSweeperConfig holds configuration for the asset refresh sweeper
type AssetRefreshSweeperConfig struct {
	BatchSize      int           // Ready assets to examine per page
	WorkerPoolSize int           // Concurrent refreshes
	Interval       time.Duration // Time to sleep between sweep cycles
	RefreshTTL     time.Duration // Only refresh assets checked longer ago than this
}

// assetRefreshSweeper implements the Sweeper interface for asset variant refresh
type assetRefreshSweeper struct {
	config    *AssetRefreshSweeperConfig
	store     store.Store
	refresher AssetRefresher
	clock     adapter.Clock
	pool      pond.Pool
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewAssetRefreshSweeper creates a new asset refresh sweeper
func NewAssetRefreshSweeper(
	config *AssetRefreshSweeperConfig,
	st store.Store,
	refresher AssetRefresher,
	clock adapter.Clock,
) Sweeper {
	return &assetRefreshSweeper{
		config:    config,
		store:     st,
		refresher: refresher,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *assetRefreshSweeper) Name() string {
	return "asset-refresh-sweeper"
}

// Start begins the sweeper's main loop
func (s *assetRefreshSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting asset refresh sweeper",
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
		zap.Duration("interval", s.config.Interval),
		zap.Duration("refresh_ttl", s.config.RefreshTTL),
	)

	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Asset refresh sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			s.cleanup()
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Asset refresh sweeper stop requested")
			s.cleanup()
			return nil
		default:
			if err := s.runSweepCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
		}
	}
}

// cleanup stops the worker pool and waits for in-flight refreshes to complete
func (s *assetRefreshSweeper) cleanup() {
	if s.pool != nil {
		s.pool.StopAndWait()
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *assetRefreshSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping asset refresh sweeper")

	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Asset refresh sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Asset refresh sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle pages through ready assets older than the refresh TTL and
// re-materializes each one, then sleeps until the next cycle
func (s *assetRefreshSweeper) runSweepCycle(ctx context.Context) error {
	startTime := s.clock.Now()
	cutoff := startTime.Add(-s.config.RefreshTTL)

	var examined int
	var refreshed, failed atomic.Int32
	var afterID int64

	for {
		records, err := s.store.ListReadyAssetsCheckedBefore(ctx, cutoff, s.config.BatchSize, afterID)
		if err != nil {
			return fmt.Errorf("failed to list assets for refresh: %w", err)
		}
		if len(records) == 0 {
			break
		}

		examined += len(records)
		afterID = records[len(records)-1].ID

		for _, record := range records {
			kind := domain.AssetKind(record.AssetKind)
			entityID := record.EntityID
			s.pool.Submit(func() {
				if err := s.refresher.RefreshIfStale(ctx, kind, entityID); err != nil {
					failed.Add(1)
					logger.ErrorCtx(ctx, err,
						zap.String("kind", kind.String()),
						zap.Int64("entity_id", entityID),
					)
					return
				}
				refreshed.Add(1)
			})
		}

		// Drain the page before fetching the next one so a slow cycle never
		// queues unboundedly
		s.pool.StopAndWait()
		s.pool = pond.NewPool(
			s.config.WorkerPoolSize,
			pond.WithQueueSize(s.config.BatchSize),
			pond.WithContext(ctx),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopChan:
			return nil
		default:
		}
	}

	if examined > 0 {
		logger.InfoCtx(ctx, "Sweep cycle completed",
			zap.Duration("duration", s.clock.Since(startTime)),
			zap.Int("examined", examined),
			zap.Int32("refreshed", refreshed.Load()),
			zap.Int32("failed", failed.Load()),
		)
	}

	if !s.sleep(ctx, s.config.Interval) {
		return ctx.Err() // Context canceled during sleep
	}

	return nil
}

// sleep sleeps for the given duration but can be interrupted by context
// cancellation or a stop request. Returns true if sleep completed normally.
func (s *assetRefreshSweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}
