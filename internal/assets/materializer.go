package assets

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goalline/sportscache/internal/domain"
	"github.com/goalline/sportscache/internal/logger"
	"github.com/goalline/sportscache/internal/store"
	"github.com/goalline/sportscache/internal/store/schema"
)

// Materialize produces every variant of an asset and publishes them.
//
// The asset record's pending row is the materialization lock. When the
// conditional write loses, ErrLockContention comes back and nothing else
// happens. When any step after the lock fails the record moves to error with
// the failure message, starting the cooldown; no partial variant set is ever
// marked ready.
func (s *Service) Materialize(ctx context.Context, kind domain.AssetKind, entityID int64) (string, error) {
	if !kind.Valid() || entityID <= 0 {
		return "", fmt.Errorf("%w: %s/%d", domain.ErrInvalidSubject, kind, entityID)
	}

	now := s.clock.Now()
	acquired, err := s.store.AcquireAssetLock(ctx, store.AcquireAssetLockInput{
		AssetKind:          kind,
		EntityID:           entityID,
		Now:                now,
		PendingStaleBefore: now.Add(-s.cfg.MaxPendingAge),
	})
	if err != nil {
		return "", fmt.Errorf("failed to acquire lock for %s/%d: %w", kind, entityID, err)
	}
	if !acquired {
		return "", fmt.Errorf("%w: %s/%d", domain.ErrLockContention, kind, entityID)
	}

	url, err := s.materializeLocked(ctx, kind, entityID)
	if err != nil {
		if markErr := s.store.MarkAssetError(ctx, kind, entityID, err.Error(), s.clock.Now()); markErr != nil {
			logger.ErrorCtx(ctx, markErr,
				zap.String("kind", kind.String()), zap.Int64("entity_id", entityID))
		}
		return "", err
	}

	return url, nil
}

// materializeLocked runs the pipeline while holding the pending row:
// download, render all variants, upload all variants, mark ready
func (s *Service) materializeLocked(ctx context.Context, kind domain.AssetKind, entityID int64) (string, error) {
	src, err := s.origin.FetchImage(ctx, kind, entityID)
	if err != nil {
		return "", err
	}

	variants, err := s.transformer.RenderVariants(ctx, src, SpecsFor(kind), FormatFor(kind))
	if err != nil {
		return "", err
	}

	for _, variant := range variants {
		path := VariantPath(kind, entityID, variant.Name)
		if err := s.storage.Upload(ctx, path, variant.ContentType, variant.Data); err != nil {
			return "", err
		}
	}

	defaultPath := VariantPath(kind, entityID, DefaultVariant)
	if err := s.store.MarkAssetReady(ctx, kind, entityID, defaultPath, s.clock.Now()); err != nil {
		return "", err
	}

	logger.DebugCtx(ctx, "asset materialized",
		zap.String("kind", kind.String()), zap.Int64("entity_id", entityID), zap.Int("variants", len(variants)))

	return s.storage.PublicURL(defaultPath), nil
}

// RefreshIfStale re-materializes a ready asset whose variants have outlived
// the refresh TTL. Custom assets and non-ready records are left alone, and a
// concurrent refresh by someone else counts as done.
func (s *Service) RefreshIfStale(ctx context.Context, kind domain.AssetKind, entityID int64) error {
	if s.IsCustom(kind, entityID) {
		return nil
	}

	record, err := s.store.GetAssetRecord(ctx, kind, entityID)
	if err != nil {
		return err
	}
	if record == nil || record.Status != schema.AssetStatusReady {
		return nil
	}
	if s.clock.Now().Sub(record.CheckedAt) < s.cfg.RefreshTTL {
		return nil
	}

	if _, err := s.Materialize(ctx, kind, entityID); err != nil {
		if errors.Is(err, domain.ErrLockContention) {
			return nil
		}
		return err
	}

	return nil
}
