package store

import (
	"errors"

	"github.com/atol-data/metadata-broker/pkg/model"
)

// ErrRecordNotFound is returned when a source record doesn't exist.
var ErrRecordNotFound = errors.New("record not found")

// ErrDuplicateNaturalKey is returned when an insert collides with an
// existing natural key. Bulk imports treat this as "skip: already exists",
// relying on the unique constraint as the final correctness backstop against
// concurrent imports of the same key.
var ErrDuplicateNaturalKey = errors.New("record with this natural key already exists")

// ErrParentHasChildren is returned when deleting a record that other records
// still reference. Parent deletion is blocked, never cascaded.
var ErrParentHasChildren = errors.New("record is still referenced by child records")

// Record is the kind-independent projection of a source record used by the
// staging, import and export layers. Parent IDs and taxonomy fields are
// populated only where the kind carries them.
type Record struct {
	ID         uint
	Kind       model.Kind
	NaturalKey string
	Accession  string
	SourceJSON []byte

	OrganismID   uint
	SampleID     uint
	ExperimentID uint

	// Organism records only.
	TaxonID        string
	ScientificName string
	CommonName     string
}

// NewRecord describes a source record to be created.
type NewRecord struct {
	Kind       model.Kind
	NaturalKey string
	SourceJSON []byte

	OrganismID   uint
	SampleID     uint
	ExperimentID uint

	TaxonID        string
	ScientificName string
	CommonName     string
}

// RecordsStore abstracts source-record storage across all entity kinds.
type RecordsStore interface {
	// Get retrieves a record by surrogate id.
	// Returns ErrRecordNotFound if it doesn't exist.
	Get(kind model.Kind, id uint) (*Record, error)

	// FindByNaturalKey retrieves a record by its natural key.
	// Returns ErrRecordNotFound if it doesn't exist.
	FindByNaturalKey(kind model.Kind, naturalKey string) (*Record, error)

	// CreateWithSubmission creates a source record and, when submissionJSON
	// is non-nil, an associated draft Submission row, atomically.
	// Returns ErrDuplicateNaturalKey on a natural-key collision.
	CreateWithSubmission(rec NewRecord, internalJSON, submissionJSON []byte) (*Record, error)

	// Delete removes a record. Returns ErrParentHasChildren when child
	// records still reference it, ErrRecordNotFound when it doesn't exist.
	Delete(kind model.Kind, id uint) error

	// ReadsByExperiment lists all read records of one experiment, ordered by
	// id. Used to batch all runs of an experiment into one RUN_SET document.
	ReadsByExperiment(experimentID uint) ([]Record, error)
}
