package schema

import (
	"time"

	"gorm.io/datatypes"
)

// DataRecord represents the data_records table - one cached origin payload per
// (subject, kind, season). Records are overwritten in place and never deleted.
type DataRecord struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`

	// SubjectID is the origin entity the payload describes (team, player, league, ...)
	SubjectID int64 `gorm:"column:subject_id;not null;uniqueIndex:idx_data_records_subject_kind_season,priority:1"`
	// DataKind is the class of data, which determines the freshness policy
	DataKind string `gorm:"column:data_kind;not null;type:text;uniqueIndex:idx_data_records_subject_kind_season,priority:2"`
	// Season partitions season-scoped kinds; 0 for season-independent data
	Season int `gorm:"column:season;not null;default:0;uniqueIndex:idx_data_records_subject_kind_season,priority:3"`

	// Payload is the origin response body as stored
	Payload datatypes.JSON `gorm:"column:payload;not null;type:jsonb"`

	// UpdatedAt is when the payload was last fetched from the origin
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the DataRecord model
func (DataRecord) TableName() string {
	return "data_records"
}
