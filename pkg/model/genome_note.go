package model

import "time"

// GenomeNote is a markdown note attached to an organism.
type GenomeNote struct {
	ID         uint      `gorm:"column:id;primaryKey"`
	OrganismID uint      `gorm:"column:organism_id;not null"`
	Title      string    `gorm:"column:title;not null"`
	Body       string    `gorm:"column:body;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (GenomeNote) TableName() string {
	return "genome_notes"
}
