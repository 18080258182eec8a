package model

import (
	"time"

	"gorm.io/datatypes"
)

// Submission is one staging attempt of a source record for the external
// registry. Rows are never reused across attempts: a terminal row is retried
// by creating a new one. RecordID is nullable because a submission can be
// staged before the source row is finalized.
type Submission struct {
	ID             uint             `gorm:"column:id;primaryKey"`
	Kind           Kind             `gorm:"column:kind;not null"`
	RecordID       *uint            `gorm:"column:record_id"`
	InternalJSON   datatypes.JSON   `gorm:"column:internal_json"`
	SubmissionJSON datatypes.JSON   `gorm:"column:submission_json"`
	Status         SubmissionStatus `gorm:"column:status;not null"`
	SubmittedAt    *time.Time       `gorm:"column:submitted_at"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
}

func (Submission) TableName() string {
	return "submissions"
}
