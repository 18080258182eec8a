package model

import (
	"time"

	"gorm.io/datatypes"
)

// Read is a sequencing read set produced by an experiment.
type Read struct {
	ID           uint           `gorm:"column:id;primaryKey"`
	BPADatasetID string         `gorm:"column:bpa_dataset_id;not null;uniqueIndex"`
	ExperimentID uint           `gorm:"column:experiment_id;not null"`
	Accession    *string        `gorm:"column:accession"`
	SourceJSON   datatypes.JSON `gorm:"column:source_json"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Read) TableName() string {
	return "reads"
}
