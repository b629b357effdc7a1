package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/goalline/sportscache/internal/domain"
	"github.com/goalline/sportscache/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// GetDataRecord retrieves a cached payload, or nil when none exists
func (s *pgStore) GetDataRecord(ctx context.Context, subjectID int64, kind domain.DataKind, season int) (*schema.DataRecord, error) {
	var record schema.DataRecord
	err := s.db.WithContext(ctx).
		Where("subject_id = ? AND data_kind = ? AND season = ?", subjectID, string(kind), season).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get data record: %w", err)
	}

	return &record, nil
}

// UpsertDataRecord writes a payload, overwriting any previous record for the key.
// Concurrent writers are allowed; the last write wins.
func (s *pgStore) UpsertDataRecord(ctx context.Context, input UpsertDataRecordInput) error {
	record := schema.DataRecord{
		SubjectID: input.SubjectID,
		DataKind:  string(input.DataKind),
		Season:    input.Season,
		Payload:   input.Payload,
		UpdatedAt: input.FetchedAt,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "subject_id"}, {Name: "data_kind"}, {Name: "season"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to upsert data record: %w", err)
	}

	return nil
}

// GetAssetRecord retrieves an asset record, or nil when none exists
func (s *pgStore) GetAssetRecord(ctx context.Context, kind domain.AssetKind, entityID int64) (*schema.AssetRecord, error) {
	var record schema.AssetRecord
	err := s.db.WithContext(ctx).
		Where("asset_kind = ? AND entity_id = ?", string(kind), entityID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get asset record: %w", err)
	}

	return &record, nil
}

// GetAssetRecords retrieves asset records for multiple entities of one kind
func (s *pgStore) GetAssetRecords(ctx context.Context, kind domain.AssetKind, entityIDs []int64) ([]*schema.AssetRecord, error) {
	if len(entityIDs) == 0 {
		return []*schema.AssetRecord{}, nil
	}

	var records []*schema.AssetRecord
	err := s.db.WithContext(ctx).
		Where("asset_kind = ? AND entity_id IN ?", string(kind), entityIDs).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get asset records: %w", err)
	}

	return records, nil
}

// AcquireAssetLock atomically claims the right to materialize an asset.
//
// The pending row is the lock. A single INSERT ... ON CONFLICT DO UPDATE with
// a conflict condition either creates the pending row, takes over a row whose
// holder is done (ready/error) or gone (pending past PendingStaleBefore), or
// touches nothing because a live pending row exists. RowsAffected tells the
// caller which of those happened, so exactly one concurrent caller wins.
func (s *pgStore) AcquireAssetLock(ctx context.Context, input AcquireAssetLockInput) (bool, error) {
	record := schema.AssetRecord{
		AssetKind: string(input.AssetKind),
		EntityID:  input.EntityID,
		Status:    schema.AssetStatusPending,
		CheckedAt: input.Now,
		UpdatedAt: input.Now,
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "asset_kind"}, {Name: "entity_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":        string(schema.AssetStatusPending),
			"error_message": nil,
			"checked_at":    input.Now,
			"updated_at":    input.Now,
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{
				SQL:  "asset_records.status <> ? OR asset_records.checked_at < ?",
				Vars: []interface{}{string(schema.AssetStatusPending), input.PendingStaleBefore},
			},
		}},
	}).Create(&record)
	if result.Error != nil {
		return false, fmt.Errorf("failed to acquire asset lock: %w", result.Error)
	}

	// RowsAffected is 0 when the conflict condition excluded the update,
	// meaning another caller holds a live pending row
	return result.RowsAffected > 0, nil
}

// MarkAssetReady transitions a locked asset to ready with its storage path
func (s *pgStore) MarkAssetReady(ctx context.Context, kind domain.AssetKind, entityID int64, storagePath string, now time.Time) error {
	result := s.db.WithContext(ctx).Model(&schema.AssetRecord{}).
		Where("asset_kind = ? AND entity_id = ?", string(kind), entityID).
		Updates(map[string]interface{}{
			"status":        string(schema.AssetStatusReady),
			"storage_path":  storagePath,
			"error_message": nil,
			"checked_at":    now,
			"updated_at":    now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark asset ready: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no asset record to mark ready for %s/%d", kind, entityID)
	}

	return nil
}

// MarkAssetError transitions a locked asset to error with the failure message
func (s *pgStore) MarkAssetError(ctx context.Context, kind domain.AssetKind, entityID int64, message string, now time.Time) error {
	result := s.db.WithContext(ctx).Model(&schema.AssetRecord{}).
		Where("asset_kind = ? AND entity_id = ?", string(kind), entityID).
		Updates(map[string]interface{}{
			"status":        string(schema.AssetStatusError),
			"error_message": message,
			"checked_at":    now,
			"updated_at":    now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark asset error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no asset record to mark error for %s/%d", kind, entityID)
	}

	return nil
}

// ListReadyAssetsCheckedBefore pages through ready assets whose last check is
// older than the cutoff, ordered by ID for stable pagination
func (s *pgStore) ListReadyAssetsCheckedBefore(ctx context.Context, cutoff time.Time, limit int, afterID int64) ([]*schema.AssetRecord, error) {
	var records []*schema.AssetRecord
	err := s.db.WithContext(ctx).
		Where("status = ? AND checked_at < ? AND id > ?", string(schema.AssetStatusReady), cutoff, afterID).
		Order("id ASC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stale ready assets: %w", err)
	}

	return records, nil
}
