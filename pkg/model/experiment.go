package model

import (
	"time"

	"gorm.io/datatypes"
)

// Experiment is a sequencing experiment. The sample reference is optional:
// bulk data sometimes arrives before the sample it belongs to.
type Experiment struct {
	ID           uint           `gorm:"column:id;primaryKey"`
	BPAPackageID string         `gorm:"column:bpa_package_id;not null;uniqueIndex"`
	SampleID     *uint          `gorm:"column:sample_id"`
	Accession    *string        `gorm:"column:accession"`
	SourceJSON   datatypes.JSON `gorm:"column:source_json"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Experiment) TableName() string {
	return "experiments"
}
