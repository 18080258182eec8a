package gorm

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/atol-data/metadata-broker/pkg/model"
	"github.com/atol-data/metadata-broker/pkg/server/store"
)

// Ensure RecordsStore implements store.RecordsStore
var _ store.RecordsStore = (*RecordsStore)(nil)

// RecordsStore implements store.RecordsStore using GORM
type RecordsStore struct {
	db *gorm.DB
}

// NewRecordsStore creates a new RecordsStore
func NewRecordsStore(db *gorm.DB) *RecordsStore {
	return &RecordsStore{db: db}
}

// naturalKeyColumn is the canonical natural-key column per kind. Historical
// variants of these keys are not supported.
func naturalKeyColumn(kind model.Kind) string {
	switch kind {
	case model.KindOrganism:
		return "grouping_key"
	case model.KindSample:
		return "bpa_sample_id"
	case model.KindExperiment:
		return "bpa_package_id"
	case model.KindRead:
		return "bpa_dataset_id"
	default:
		return "name"
	}
}

// Get retrieves a record by surrogate id.
func (s *RecordsStore) Get(kind model.Kind, id uint) (*store.Record, error) {
	return s.first(kind, map[string]interface{}{"id": id})
}

// FindByNaturalKey retrieves a record by its natural key.
func (s *RecordsStore) FindByNaturalKey(kind model.Kind, naturalKey string) (*store.Record, error) {
	return s.first(kind, map[string]interface{}{naturalKeyColumn(kind): naturalKey})
}

func (s *RecordsStore) first(kind model.Kind, query map[string]interface{}) (*store.Record, error) {
	var rec *store.Record
	var err error

	switch kind {
	case model.KindOrganism:
		var row model.Organism
		err = s.db.Where(query).First(&row).Error
		rec = organismRecord(&row)
	case model.KindSample:
		var row model.Sample
		err = s.db.Where(query).First(&row).Error
		rec = sampleRecord(&row)
	case model.KindExperiment:
		var row model.Experiment
		err = s.db.Where(query).First(&row).Error
		rec = experimentRecord(&row)
	case model.KindRead:
		var row model.Read
		err = s.db.Where(query).First(&row).Error
		rec = readRecord(&row)
	default:
		var row model.Assembly
		err = s.db.Where(query).First(&row).Error
		rec = assemblyRecord(&row)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrRecordNotFound
		}
		return nil, err
	}
	return rec, nil
}

// CreateWithSubmission creates a source record and, when submissionJSON is
// non-nil, an associated draft Submission row, atomically. The unique
// constraint on the natural key is the backstop against concurrent imports
// of the same key; a collision surfaces as ErrDuplicateNaturalKey.
func (s *RecordsStore) CreateWithSubmission(rec store.NewRecord, internalJSON, submissionJSON []byte) (*store.Record, error) {
	var created *store.Record

	err := s.db.Transaction(func(tx *gorm.DB) error {
		row := newRow(rec)
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		created = toRecord(row)

		if submissionJSON != nil {
			recordID := created.ID
			submission := &model.Submission{
				Kind:           rec.Kind,
				RecordID:       &recordID,
				InternalJSON:   datatypes.JSON(internalJSON),
				SubmissionJSON: datatypes.JSON(submissionJSON),
				Status:         model.StatusDraft,
			}
			if err := tx.Create(submission).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicateNaturalKey
		}
		return nil, err
	}
	return created, nil
}

// Delete removes a record, refusing when child records still reference it.
// The FK RESTRICT constraints catch whatever races past the count check.
func (s *RecordsStore) Delete(kind model.Kind, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		children, err := childCount(tx, kind, id)
		if err != nil {
			return err
		}
		if children > 0 {
			return store.ErrParentHasChildren
		}

		res := tx.Delete(emptyRow(kind), id)
		if res.Error != nil {
			if isForeignKeyViolation(res.Error) {
				return store.ErrParentHasChildren
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrRecordNotFound
		}
		return nil
	})
}

// ReadsByExperiment lists all read records of one experiment, ordered by id.
func (s *RecordsStore) ReadsByExperiment(experimentID uint) ([]store.Record, error) {
	var rows []model.Read
	err := s.db.Where(map[string]interface{}{"experiment_id": experimentID}).Order("id").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]store.Record, 0, len(rows))
	for i := range rows {
		records = append(records, *readRecord(&rows[i]))
	}
	return records, nil
}

func childCount(tx *gorm.DB, kind model.Kind, id uint) (int64, error) {
	type childTable struct {
		row    interface{}
		column string
	}

	var tables []childTable
	switch kind {
	case model.KindOrganism:
		tables = []childTable{
			{&model.Sample{}, "organism_id"},
			{&model.Assembly{}, "organism_id"},
		}
	case model.KindSample:
		tables = []childTable{
			{&model.Experiment{}, "sample_id"},
			{&model.Assembly{}, "sample_id"},
		}
	case model.KindExperiment:
		tables = []childTable{
			{&model.Read{}, "experiment_id"},
			{&model.Assembly{}, "experiment_id"},
		}
	}

	var total int64
	for _, table := range tables {
		var count int64
		if err := tx.Model(table.row).Where(table.column+" = ?", id).Count(&count).Error; err != nil {
			return 0, err
		}
		total += count
	}
	return total, nil
}

func newRow(rec store.NewRecord) interface{} {
	switch rec.Kind {
	case model.KindOrganism:
		return &model.Organism{
			GroupingKey:    rec.NaturalKey,
			TaxonID:        rec.TaxonID,
			ScientificName: rec.ScientificName,
			CommonName:     rec.CommonName,
			SourceJSON:     datatypes.JSON(rec.SourceJSON),
		}
	case model.KindSample:
		return &model.Sample{
			BPASampleID: rec.NaturalKey,
			OrganismID:  rec.OrganismID,
			SourceJSON:  datatypes.JSON(rec.SourceJSON),
		}
	case model.KindExperiment:
		return &model.Experiment{
			BPAPackageID: rec.NaturalKey,
			SampleID:     optionalID(rec.SampleID),
			SourceJSON:   datatypes.JSON(rec.SourceJSON),
		}
	case model.KindRead:
		return &model.Read{
			BPADatasetID: rec.NaturalKey,
			ExperimentID: rec.ExperimentID,
			SourceJSON:   datatypes.JSON(rec.SourceJSON),
		}
	default:
		return &model.Assembly{
			Name:         rec.NaturalKey,
			OrganismID:   rec.OrganismID,
			SampleID:     rec.SampleID,
			ExperimentID: optionalID(rec.ExperimentID),
			SourceJSON:   datatypes.JSON(rec.SourceJSON),
		}
	}
}

func emptyRow(kind model.Kind) interface{} {
	switch kind {
	case model.KindOrganism:
		return &model.Organism{}
	case model.KindSample:
		return &model.Sample{}
	case model.KindExperiment:
		return &model.Experiment{}
	case model.KindRead:
		return &model.Read{}
	default:
		return &model.Assembly{}
	}
}

func toRecord(row interface{}) *store.Record {
	switch r := row.(type) {
	case *model.Organism:
		return organismRecord(r)
	case *model.Sample:
		return sampleRecord(r)
	case *model.Experiment:
		return experimentRecord(r)
	case *model.Read:
		return readRecord(r)
	default:
		return assemblyRecord(row.(*model.Assembly))
	}
}

func organismRecord(row *model.Organism) *store.Record {
	return &store.Record{
		ID:             row.ID,
		Kind:           model.KindOrganism,
		NaturalKey:     row.GroupingKey,
		Accession:      deref(row.Accession),
		SourceJSON:     row.SourceJSON,
		TaxonID:        row.TaxonID,
		ScientificName: row.ScientificName,
		CommonName:     row.CommonName,
	}
}

func sampleRecord(row *model.Sample) *store.Record {
	return &store.Record{
		ID:         row.ID,
		Kind:       model.KindSample,
		NaturalKey: row.BPASampleID,
		Accession:  deref(row.Accession),
		SourceJSON: row.SourceJSON,
		OrganismID: row.OrganismID,
	}
}

func experimentRecord(row *model.Experiment) *store.Record {
	return &store.Record{
		ID:         row.ID,
		Kind:       model.KindExperiment,
		NaturalKey: row.BPAPackageID,
		Accession:  deref(row.Accession),
		SourceJSON: row.SourceJSON,
		SampleID:   derefID(row.SampleID),
	}
}

func readRecord(row *model.Read) *store.Record {
	return &store.Record{
		ID:           row.ID,
		Kind:         model.KindRead,
		NaturalKey:   row.BPADatasetID,
		Accession:    deref(row.Accession),
		SourceJSON:   row.SourceJSON,
		ExperimentID: row.ExperimentID,
	}
}

func assemblyRecord(row *model.Assembly) *store.Record {
	return &store.Record{
		ID:           row.ID,
		Kind:         model.KindAssembly,
		NaturalKey:   row.Name,
		Accession:    deref(row.Accession),
		SourceJSON:   row.SourceJSON,
		OrganismID:   row.OrganismID,
		SampleID:     row.SampleID,
		ExperimentID: derefID(row.ExperimentID),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefID(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}

func optionalID(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}

// The gorm driver surfaces pgx errors while database/sql callers see lib/pq
// errors; both carry the SQLSTATE code.
func pgErrorCode(err error) string {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == "23505"
}

func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == "23503"
}
