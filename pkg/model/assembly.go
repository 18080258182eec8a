package model

import (
	"time"

	"gorm.io/datatypes"
)

// Assembly is a genome assembly built from an organism's samples.
type Assembly struct {
	ID           uint           `gorm:"column:id;primaryKey"`
	Name         string         `gorm:"column:name;not null;uniqueIndex"`
	OrganismID   uint           `gorm:"column:organism_id;not null"`
	SampleID     uint           `gorm:"column:sample_id;not null"`
	ExperimentID *uint          `gorm:"column:experiment_id"`
	Accession    *string        `gorm:"column:accession"`
	SourceJSON   datatypes.JSON `gorm:"column:source_json"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Assembly) TableName() string {
	return "assemblies"
}
