package schema

import "time"

// AssetStatus represents the materialization state of an asset
type AssetStatus string

// String returns the status name
func (s AssetStatus) String() string {
	return string(s)
}

const (
	// AssetStatusReady means all variants exist in blob storage
	AssetStatusReady AssetStatus = "ready"
	// AssetStatusPending means a materialization is in flight; the row is the lock
	AssetStatusPending AssetStatus = "pending"
	// AssetStatusError means the last materialization failed and is cooling down
	AssetStatusError AssetStatus = "error"
)

// AssetRecord represents the asset_records table - the durable state of one
// materialized image per (kind, entity)
type AssetRecord struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`

	// AssetKind is the class of image (player photo, team logo, ...)
	AssetKind string `gorm:"column:asset_kind;not null;type:text;uniqueIndex:idx_asset_records_kind_entity,priority:1"`
	// EntityID is the origin entity the image belongs to
	EntityID int64 `gorm:"column:entity_id;not null;uniqueIndex:idx_asset_records_kind_entity,priority:2"`

	// StoragePath is the blob storage prefix the variants live under, empty until ready
	StoragePath string `gorm:"column:storage_path;type:text"`
	// Status is the materialization state
	Status AssetStatus `gorm:"column:status;not null;type:text;index:idx_asset_records_status"`
	// ErrorMessage records why the last materialization failed
	ErrorMessage *string `gorm:"column:error_message;type:text"`

	// CheckedAt is when the status last changed; for pending rows it is the lock timestamp
	CheckedAt time.Time `gorm:"column:checked_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the AssetRecord model
func (AssetRecord) TableName() string {
	return "asset_records"
}
