// Package assets resolves origin images to public URLs, materializing them
// into blob storage on first use. Every resolve returns a servable URL; when
// an image cannot be produced the kind's placeholder stands in.
package assets

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/goalline/sportscache/internal/adapter"
	"github.com/goalline/sportscache/internal/domain"
	"github.com/goalline/sportscache/internal/logger"
	"github.com/goalline/sportscache/internal/media/transformer"
	"github.com/goalline/sportscache/internal/origin"
	"github.com/goalline/sportscache/internal/storage"
	"github.com/goalline/sportscache/internal/store"
	"github.com/goalline/sportscache/internal/store/schema"
)

// CustomAsset marks an asset whose image was uploaded by hand and must never
// be overwritten by a refresh
type CustomAsset struct {
	Kind     domain.AssetKind
	EntityID int64
}

// Config holds asset resolution tuning. Zero durations fall back to the
// package defaults in domain.
type Config struct {
	MaxPendingAge     time.Duration
	ErrorCooldown     time.Duration
	PendingWait       time.Duration
	RefreshTTL        time.Duration
	BatchWidth        int
	PlaceholderPrefix string
	CustomAssets      []CustomAsset
}

func (c Config) withDefaults() Config {
	if c.MaxPendingAge <= 0 {
		c.MaxPendingAge = domain.MaxPendingAge
	}
	if c.ErrorCooldown <= 0 {
		c.ErrorCooldown = domain.ErrorCooldown
	}
	if c.PendingWait <= 0 {
		c.PendingWait = domain.PendingWait
	}
	if c.RefreshTTL <= 0 {
		c.RefreshTTL = domain.AssetRefreshTTL
	}
	if c.BatchWidth <= 0 {
		c.BatchWidth = domain.ResolveBatchWidth
	}
	return c
}

// Service materializes and resolves image assets
type Service struct {
	store       store.Store
	origin      origin.Client
	storage     storage.BlobStorage
	transformer transformer.Transformer
	clock       adapter.Clock
	cfg         Config
	pool        pond.Pool
	custom      map[string]struct{}
}

// NewService creates an asset service. The pool bounds how many
// materializations a single batch resolve may run concurrently.
func NewService(
	st store.Store,
	og origin.Client,
	blob storage.BlobStorage,
	tf transformer.Transformer,
	clock adapter.Clock,
	cfg Config,
) *Service {
	cfg = cfg.withDefaults()

	custom := make(map[string]struct{}, len(cfg.CustomAssets))
	for _, asset := range cfg.CustomAssets {
		custom[customKey(asset.Kind, asset.EntityID)] = struct{}{}
	}

	return &Service{
		store:       st,
		origin:      og,
		storage:     blob,
		transformer: tf,
		clock:       clock,
		cfg:         cfg,
		pool:        pond.NewPool(cfg.BatchWidth),
		custom:      custom,
	}
}

func customKey(kind domain.AssetKind, entityID int64) string {
	return fmt.Sprintf("%s:%d", kind, entityID)
}

// IsCustom reports whether an asset is exempt from automatic refresh
func (s *Service) IsCustom(kind domain.AssetKind, entityID int64) bool {
	_, ok := s.custom[customKey(kind, entityID)]
	return ok
}

// PlaceholderURL returns the stand-in image URL for an asset kind
func (s *Service) PlaceholderURL(kind domain.AssetKind) string {
	if s.cfg.PlaceholderPrefix != "" {
		return fmt.Sprintf("%s/%s.png", s.cfg.PlaceholderPrefix, kind)
	}
	return s.storage.PublicURL(fmt.Sprintf("placeholders/%s.png", kind))
}

// ResolveOne returns a servable URL for one asset, materializing it when
// needed. Only an invalid subject is an error; every other failure degrades
// to the placeholder.
func (s *Service) ResolveOne(ctx context.Context, kind domain.AssetKind, entityID int64) (string, error) {
	if !kind.Valid() || entityID <= 0 {
		return "", fmt.Errorf("%w: %s/%d", domain.ErrInvalidSubject, kind, entityID)
	}

	record, err := s.store.GetAssetRecord(ctx, kind, entityID)
	if err != nil {
		logger.WarnCtx(ctx, "asset record read failed",
			zap.Error(err), zap.String("kind", kind.String()), zap.Int64("entity_id", entityID))
		return s.PlaceholderURL(kind), nil
	}

	return s.resolveWithRecord(ctx, kind, entityID, record), nil
}

// ResolveMany resolves a batch of entity IDs to URLs. Input IDs are deduped
// and non-positive IDs dropped; every surviving ID gets an entry in the
// result, placeholder included, no matter how its materialization went.
func (s *Service) ResolveMany(ctx context.Context, kind domain.AssetKind, entityIDs []int64) (map[int64]string, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidSubject, kind)
	}

	seen := make(map[int64]struct{}, len(entityIDs))
	unique := make([]int64, 0, len(entityIDs))
	for _, id := range entityIDs {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	result := make(map[int64]string, len(unique))
	if len(unique) == 0 {
		return result, nil
	}

	// One bulk read covers the whole batch; a failed read just means every
	// candidate goes down the slow path
	recordByID := make(map[int64]*schema.AssetRecord, len(unique))
	records, err := s.store.GetAssetRecords(ctx, kind, unique)
	if err != nil {
		logger.WarnCtx(ctx, "bulk asset record read failed",
			zap.Error(err), zap.String("kind", kind.String()), zap.Int("count", len(unique)))
	} else {
		for _, record := range records {
			recordByID[record.EntityID] = record
		}
	}

	var mu sync.Mutex
	var candidates []int64
	for _, id := range unique {
		record := recordByID[id]
		if record != nil && record.Status == schema.AssetStatusReady {
			result[id] = s.storage.PublicURL(record.StoragePath)
			s.maybeScheduleRefresh(kind, id, record)
			continue
		}
		candidates = append(candidates, id)
	}

	group := s.pool.NewGroup()
	for _, id := range candidates {
		group.Submit(func() {
			url := s.resolveWithRecord(ctx, kind, id, recordByID[id])
			mu.Lock()
			result[id] = url
			mu.Unlock()
		})
	}
	_ = group.Wait()

	return result, nil
}

// resolveWithRecord walks the asset state machine for one entity and always
// comes back with a servable URL
func (s *Service) resolveWithRecord(ctx context.Context, kind domain.AssetKind, entityID int64, record *schema.AssetRecord) string {
	now := s.clock.Now()

	switch {
	case record == nil:
		return s.tryMaterialize(ctx, kind, entityID)

	case record.Status == schema.AssetStatusReady:
		s.maybeScheduleRefresh(kind, entityID, record)
		return s.storage.PublicURL(record.StoragePath)

	case record.Status == schema.AssetStatusPending:
		if now.Sub(record.CheckedAt) >= s.cfg.MaxPendingAge {
			// The previous holder died mid-flight; take over
			return s.tryMaterialize(ctx, kind, entityID)
		}
		return s.waitForPending(ctx, kind, entityID)

	default: // error
		if now.Sub(record.CheckedAt) < s.cfg.ErrorCooldown {
			return s.PlaceholderURL(kind)
		}
		return s.tryMaterialize(ctx, kind, entityID)
	}
}

// tryMaterialize attempts a materialization and degrades to waiting or the
// placeholder when it cannot run or fails
func (s *Service) tryMaterialize(ctx context.Context, kind domain.AssetKind, entityID int64) string {
	url, err := s.Materialize(ctx, kind, entityID)
	if err == nil {
		return url
	}

	if errors.Is(err, domain.ErrLockContention) {
		// Someone else is producing the asset right now
		return s.waitForPending(ctx, kind, entityID)
	}

	logger.WarnCtx(ctx, "materialization failed, serving placeholder",
		zap.Error(err), zap.String("kind", kind.String()), zap.Int64("entity_id", entityID))
	return s.PlaceholderURL(kind)
}

// waitForPending gives an in-flight materialization one short grace period,
// re-checks once, and otherwise serves the placeholder
func (s *Service) waitForPending(ctx context.Context, kind domain.AssetKind, entityID int64) string {
	s.clock.Sleep(s.cfg.PendingWait)

	record, err := s.store.GetAssetRecord(ctx, kind, entityID)
	if err == nil && record != nil && record.Status == schema.AssetStatusReady {
		return s.storage.PublicURL(record.StoragePath)
	}

	return s.PlaceholderURL(kind)
}

// maybeScheduleRefresh kicks off a background re-materialization for ready
// assets whose variants have outlived the refresh TTL. The caller's response
// never waits on it.
func (s *Service) maybeScheduleRefresh(kind domain.AssetKind, entityID int64, record *schema.AssetRecord) {
	if s.IsCustom(kind, entityID) {
		return
	}
	if s.clock.Now().Sub(record.CheckedAt) < s.cfg.RefreshTTL {
		return
	}

	go func() {
		if _, err := s.Materialize(context.Background(), kind, entityID); err != nil &&
			!errors.Is(err, domain.ErrLockContention) {
			logger.Warn("background asset refresh failed",
				zap.Error(err), zap.String("kind", kind.String()), zap.Int64("entity_id", entityID))
		}
	}()
}
