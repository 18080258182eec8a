package gorm

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/atol-data/metadata-broker/pkg/model"
	"github.com/atol-data/metadata-broker/pkg/server/store"
)

// Ensure SubmissionsStore implements store.SubmissionsStore
var _ store.SubmissionsStore = (*SubmissionsStore)(nil)

// SubmissionsStore implements store.SubmissionsStore using GORM
type SubmissionsStore struct {
	db *gorm.DB
}

// NewSubmissionsStore creates a new SubmissionsStore
func NewSubmissionsStore(db *gorm.DB) *SubmissionsStore {
	return &SubmissionsStore{db: db}
}

// Get retrieves a staging row by id.
func (s *SubmissionsStore) Get(id uint) (*store.Submission, error) {
	var row model.Submission
	if err := s.db.Where(map[string]interface{}{"id": id}).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrSubmissionNotFound
		}
		return nil, err
	}
	return toSubmission(&row), nil
}

// Create stages a new draft row.
func (s *SubmissionsStore) Create(kind model.Kind, recordID *uint, internalJSON, submissionJSON []byte) (*store.Submission, error) {
	row := &model.Submission{
		Kind:           kind,
		RecordID:       recordID,
		InternalJSON:   datatypes.JSON(internalJSON),
		SubmissionJSON: datatypes.JSON(submissionJSON),
		Status:         model.StatusDraft,
	}
	if err := s.db.Create(row).Error; err != nil {
		return nil, err
	}
	return toSubmission(row), nil
}

// Transition moves a staging row to the next status. The read and the
// conditional update run in one transaction so a concurrent transition of
// the same row cannot interleave.
func (s *SubmissionsStore) Transition(id uint, next model.SubmissionStatus) (*store.Submission, error) {
	var row model.Submission

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(map[string]interface{}{"id": id}).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrSubmissionNotFound
			}
			return err
		}

		if !row.Status.CanTransitionTo(next) {
			return store.ErrInvalidTransition
		}
		if row.Status == model.StatusDraft && len(row.SubmissionJSON) == 0 {
			return store.ErrSubmissionIncomplete
		}

		updates := map[string]interface{}{"status": next}
		if next == model.StatusSubmitted {
			now := time.Now().UTC()
			updates["submitted_at"] = now
			row.SubmittedAt = &now
		}
		row.Status = next

		return tx.Model(&model.Submission{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return toSubmission(&row), nil
}

// ListByRecord lists all staging attempts for one record, newest first.
func (s *SubmissionsStore) ListByRecord(kind model.Kind, recordID uint) ([]store.Submission, error) {
	var rows []model.Submission
	err := s.db.
		Where(map[string]interface{}{"kind": kind, "record_id": recordID}).
		Order("created_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	submissions := make([]store.Submission, 0, len(rows))
	for i := range rows {
		submissions = append(submissions, *toSubmission(&rows[i]))
	}
	return submissions, nil
}

func toSubmission(row *model.Submission) *store.Submission {
	return &store.Submission{
		ID:             row.ID,
		Kind:           row.Kind,
		RecordID:       row.RecordID,
		InternalJSON:   row.InternalJSON,
		SubmissionJSON: row.SubmissionJSON,
		Status:         row.Status,
		SubmittedAt:    row.SubmittedAt,
		CreatedAt:      row.CreatedAt,
	}
}
