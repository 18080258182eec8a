package store

import (
	"errors"
	"time"

	"github.com/atol-data/metadata-broker/pkg/model"
)

// ErrSubmissionNotFound is returned when a staging row doesn't exist.
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrInvalidTransition is returned for a status change the state machine
// does not allow.
var ErrInvalidTransition = errors.New("invalid submission status transition")

// ErrSubmissionIncomplete is returned when a row without submission_json
// attempts to leave draft.
var ErrSubmissionIncomplete = errors.New("submission_json is required to leave draft")

// Submission is a staging row as seen by the endpoint layer.
type Submission struct {
	ID             uint
	Kind           model.Kind
	RecordID       *uint
	InternalJSON   []byte
	SubmissionJSON []byte
	Status         model.SubmissionStatus
	SubmittedAt    *time.Time
	CreatedAt      time.Time
}

// SubmissionsStore abstracts staging-row storage and the status machine.
type SubmissionsStore interface {
	// Get retrieves a staging row by id.
	// Returns ErrSubmissionNotFound if it doesn't exist.
	Get(id uint) (*Submission, error)

	// Create stages a new draft row. recordID may be nil when the source row
	// is not finalized yet.
	Create(kind model.Kind, recordID *uint, internalJSON, submissionJSON []byte) (*Submission, error)

	// Transition moves a staging row to the next status, setting
	// submitted_at on entry into submitted. Returns ErrInvalidTransition for
	// a move the state machine forbids and ErrSubmissionIncomplete when a
	// row without submission_json attempts to leave draft.
	Transition(id uint, next model.SubmissionStatus) (*Submission, error)

	// ListByRecord lists all staging attempts for one record, newest first.
	ListByRecord(kind model.Kind, recordID uint) ([]Submission, error)
}
