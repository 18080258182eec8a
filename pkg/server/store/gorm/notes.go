package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/atol-data/metadata-broker/pkg/model"
	"github.com/atol-data/metadata-broker/pkg/server/store"
)

// Ensure NotesStore implements store.NotesStore
var _ store.NotesStore = (*NotesStore)(nil)

// NotesStore implements store.NotesStore using GORM
type NotesStore struct {
	db *gorm.DB
}

// NewNotesStore creates a new NotesStore
func NewNotesStore(db *gorm.DB) *NotesStore {
	return &NotesStore{db: db}
}

// GetNote retrieves a note by id.
func (s *NotesStore) GetNote(id uint) (*store.GenomeNote, error) {
	var row model.GenomeNote
	if err := s.db.Where(map[string]interface{}{"id": id}).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNoteNotFound
		}
		return nil, err
	}
	return toNote(&row), nil
}

// CreateNote attaches a markdown note to an organism.
func (s *NotesStore) CreateNote(organismID uint, title, body string) (*store.GenomeNote, error) {
	row := &model.GenomeNote{
		OrganismID: organismID,
		Title:      title,
		Body:       body,
	}
	if err := s.db.Create(row).Error; err != nil {
		return nil, err
	}
	return toNote(row), nil
}

// ListNotesByOrganism lists all notes for an organism, newest first.
func (s *NotesStore) ListNotesByOrganism(organismID uint) ([]store.GenomeNote, error) {
	var rows []model.GenomeNote
	err := s.db.
		Where(map[string]interface{}{"organism_id": organismID}).
		Order("created_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	notes := make([]store.GenomeNote, 0, len(rows))
	for i := range rows {
		notes = append(notes, *toNote(&rows[i]))
	}
	return notes, nil
}

func toNote(row *model.GenomeNote) *store.GenomeNote {
	return &store.GenomeNote{
		ID:         row.ID,
		OrganismID: row.OrganismID,
		Title:      row.Title,
		Body:       row.Body,
		CreatedAt:  row.CreatedAt,
	}
}
