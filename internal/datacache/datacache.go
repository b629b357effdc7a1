// Package datacache is the read-through cache for origin data. Reads prefer
// the in-process speed layer, then the durable store, and only hit the origin
// when the stored record is missing or past its TTL.
package datacache

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/goalline/sportscache/internal/adapter"
	"github.com/goalline/sportscache/internal/domain"
	"github.com/goalline/sportscache/internal/freshness"
	"github.com/goalline/sportscache/internal/logger"
	"github.com/goalline/sportscache/internal/speedcache"
	"github.com/goalline/sportscache/internal/store"
)

// FetchFunc retrieves a payload from the origin
type FetchFunc func(ctx context.Context) (json.RawMessage, error)

// Cache is the read-through domain data cache
type Cache struct {
	store store.Store
	speed *speedcache.Cache
	clock adapter.Clock
}

// New creates a data cache. The speed layer may be nil, which disables it.
func New(s store.Store, speed *speedcache.Cache, clock adapter.Clock) *Cache {
	return &Cache{
		store: s,
		speed: speed,
		clock: clock,
	}
}

// GetOrFetch returns the payload for a subject, consulting the origin only
// when no fresh record exists.
//
// A stored record for a closed season is served forever without refetching.
// When the origin fails and a stale record exists, the stale record is served.
// Store writes are best effort: a failed write is logged, never surfaced,
// because the caller already holds a good payload. Racing fetches for the same
// key are allowed; the last store write wins and both callers get valid data.
func (c *Cache) GetOrFetch(ctx context.Context, subjectID int64, kind domain.DataKind, season int, fetch FetchFunc) (json.RawMessage, error) {
	if !kind.Valid() || subjectID <= 0 {
		return nil, fmt.Errorf("%w: %s/%d", domain.ErrInvalidSubject, kind, subjectID)
	}

	// Season-independent kinds always live under season 0
	if !kind.SeasonScoped() {
		season = 0
	}

	key := speedcache.Key(subjectID, kind, season)
	if c.speed != nil {
		if payload, ok := c.speed.Get(key); ok {
			return payload, nil
		}
	}

	record, err := c.store.GetDataRecord(ctx, subjectID, kind, season)
	if err != nil {
		// A broken store read degrades to an origin fetch
		logger.WarnCtx(ctx, "data record read failed, falling through to origin",
			zap.Error(err), zap.String("kind", kind.String()), zap.Int64("subject_id", subjectID))
		record = nil
	}

	now := c.clock.Now()
	if record != nil && freshness.Classify(kind, season, record.UpdatedAt, now) == domain.FreshnessFresh {
		payload := json.RawMessage(record.Payload)
		if c.speed != nil {
			c.speed.Set(key, payload)
		}
		return payload, nil
	}

	payload, fetchErr := fetch(ctx)
	if fetchErr != nil {
		// Serve the stale record when the origin is down
		if record != nil {
			logger.WarnCtx(ctx, "origin fetch failed, serving stale record",
				zap.Error(fetchErr), zap.String("kind", kind.String()), zap.Int64("subject_id", subjectID))
			return json.RawMessage(record.Payload), nil
		}
		return nil, fmt.Errorf("%w: %s/%d: %v", domain.ErrOriginUnavailable, kind, subjectID, fetchErr)
	}

	if err := c.store.UpsertDataRecord(ctx, store.UpsertDataRecordInput{
		SubjectID: subjectID,
		DataKind:  kind,
		Season:    season,
		Payload:   datatypes.JSON(payload),
		FetchedAt: now,
	}); err != nil {
		logger.WarnCtx(ctx, "data record write failed",
			zap.Error(err), zap.String("kind", kind.String()), zap.Int64("subject_id", subjectID))
	}

	if c.speed != nil {
		c.speed.Set(key, payload)
	}

	return payload, nil
}

// GetOrFetchAs is the typed edge of the cache: payloads cross it as raw JSON
// and are decoded into the caller's type here.
func GetOrFetchAs[T any](ctx context.Context, c *Cache, subjectID int64, kind domain.DataKind, season int, fetch FetchFunc) (T, error) {
	var result T

	payload, err := c.GetOrFetch(ctx, subjectID, kind, season, fetch)
	if err != nil {
		return result, err
	}

	if err := json.Unmarshal(payload, &result); err != nil {
		return result, fmt.Errorf("failed to decode cached payload: %w", err)
	}

	return result, nil
}
