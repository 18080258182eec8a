package model

import (
	"time"

	"gorm.io/datatypes"
)

// Organism is the root specimen record. Taxonomy fields are authoritative
// curator data, not submitter input, and are typed columns rather than part
// of the free-form payload.
type Organism struct {
	ID             uint           `gorm:"column:id;primaryKey"`
	GroupingKey    string         `gorm:"column:grouping_key;not null;uniqueIndex"`
	TaxonID        string         `gorm:"column:taxon_id"`
	ScientificName string         `gorm:"column:scientific_name"`
	CommonName     string         `gorm:"column:common_name"`
	Accession      *string        `gorm:"column:accession"`
	SourceJSON     datatypes.JSON `gorm:"column:source_json"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Organism) TableName() string {
	return "organisms"
}
