package model

import (
	"time"

	"gorm.io/datatypes"
)

// Sample is a physical sample taken from an organism. BPASampleID is the
// natural key used for idempotent bulk-import matching.
type Sample struct {
	ID          uint           `gorm:"column:id;primaryKey"`
	BPASampleID string         `gorm:"column:bpa_sample_id;not null;uniqueIndex"`
	OrganismID  uint           `gorm:"column:organism_id;not null"`
	Accession   *string        `gorm:"column:accession"`
	SourceJSON  datatypes.JSON `gorm:"column:source_json"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Sample) TableName() string {
	return "samples"
}
