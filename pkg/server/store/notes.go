package store

import (
	"errors"
	"time"
)

// ErrNoteNotFound is returned when a genome note doesn't exist.
var ErrNoteNotFound = errors.New("genome note not found")

// GenomeNote is a markdown note attached to an organism.
type GenomeNote struct {
	ID         uint
	OrganismID uint
	Title      string
	Body       string
	CreatedAt  time.Time
}

// NotesStore abstracts genome note storage.
type NotesStore interface {
	// GetNote retrieves a note by id.
	// Returns ErrNoteNotFound if it doesn't exist.
	GetNote(id uint) (*GenomeNote, error)

	// CreateNote attaches a markdown note to an organism.
	CreateNote(organismID uint, title, body string) (*GenomeNote, error)

	// ListNotesByOrganism lists all notes for an organism, newest first.
	ListNotesByOrganism(organismID uint) ([]GenomeNote, error)
}
