package model

import (
	"time"

	"gorm.io/datatypes"
)

// FetchedRecord is an immutable snapshot of what the registry reported for a
// record. Rows are only ever inserted; the current accession for a record is
// the row with the greatest FetchedAt, never a mutable field on the record.
type FetchedRecord struct {
	ID        uint           `gorm:"column:id;primaryKey"`
	Kind      Kind           `gorm:"column:kind;not null"`
	RecordID  uint           `gorm:"column:record_id;not null"`
	Accession string         `gorm:"column:accession;not null"`
	RawJSON   datatypes.JSON `gorm:"column:raw_json"`
	FetchedAt time.Time      `gorm:"column:fetched_at;not null;autoCreateTime"`
}

func (FetchedRecord) TableName() string {
	return "fetched_records"
}
