package store

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/goalline/sportscache/internal/domain"
	"github.com/goalline/sportscache/internal/store/schema"
)

// UpsertDataRecordInput holds the fields written when caching an origin payload
type UpsertDataRecordInput struct {
	SubjectID int64
	DataKind  domain.DataKind
	Season    int
	Payload   datatypes.JSON
	FetchedAt time.Time
}

// AcquireAssetLockInput holds the fields for a lock acquisition attempt
type AcquireAssetLockInput struct {
	AssetKind domain.AssetKind
	EntityID  int64
	// Now is the lock timestamp written into checked_at
	Now time.Time
	// PendingStaleBefore marks pending rows older than this as abandoned
	PendingStaleBefore time.Time
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetDataRecord retrieves a cached payload, or nil when none exists
	GetDataRecord(ctx context.Context, subjectID int64, kind domain.DataKind, season int) (*schema.DataRecord, error)
	// UpsertDataRecord writes a payload, overwriting any previous record for the key
	UpsertDataRecord(ctx context.Context, input UpsertDataRecordInput) error

	// GetAssetRecord retrieves an asset record, or nil when none exists
	GetAssetRecord(ctx context.Context, kind domain.AssetKind, entityID int64) (*schema.AssetRecord, error)
	// GetAssetRecords retrieves asset records for multiple entities of one kind
	GetAssetRecords(ctx context.Context, kind domain.AssetKind, entityIDs []int64) ([]*schema.AssetRecord, error)
	// AcquireAssetLock atomically claims the right to materialize an asset.
	// Returns true when this caller owns the pending row, false when another
	// materialization is already in flight.
	AcquireAssetLock(ctx context.Context, input AcquireAssetLockInput) (bool, error)
	// MarkAssetReady transitions a locked asset to ready with its storage path
	MarkAssetReady(ctx context.Context, kind domain.AssetKind, entityID int64, storagePath string, now time.Time) error
	// MarkAssetError transitions a locked asset to error with the failure message
	MarkAssetError(ctx context.Context, kind domain.AssetKind, entityID int64, message string, now time.Time) error
	// ListReadyAssetsCheckedBefore pages through ready assets whose last check
	// is older than the cutoff, for the refresh sweep
	ListReadyAssetsCheckedBefore(ctx context.Context, cutoff time.Time, limit int, afterID int64) ([]*schema.AssetRecord, error)
}
