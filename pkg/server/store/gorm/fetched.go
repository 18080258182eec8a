package gorm

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/atol-data/metadata-broker/pkg/model"
	"github.com/atol-data/metadata-broker/pkg/server/store"
)

// Ensure FetchedStore implements store.FetchedStore
var _ store.FetchedStore = (*FetchedStore)(nil)

// FetchedStore implements store.FetchedStore using GORM. It only ever
// inserts and reads; there is no update path by construction.
type FetchedStore struct {
	db *gorm.DB
}

// NewFetchedStore creates a new FetchedStore
func NewFetchedStore(db *gorm.DB) *FetchedStore {
	return &FetchedStore{db: db}
}

// Append records what the registry reported for a record.
func (s *FetchedStore) Append(kind model.Kind, recordID uint, accession string, rawJSON []byte) (*store.FetchedRecord, error) {
	row := &model.FetchedRecord{
		Kind:      kind,
		RecordID:  recordID,
		Accession: accession,
		RawJSON:   datatypes.JSON(rawJSON),
	}
	if err := s.db.Create(row).Error; err != nil {
		return nil, err
	}
	return toFetched(row), nil
}

// Latest returns the snapshot with the greatest fetched_at for a record.
func (s *FetchedStore) Latest(kind model.Kind, recordID uint) (*store.FetchedRecord, error) {
	var row model.FetchedRecord
	err := s.db.
		Where(map[string]interface{}{"kind": kind, "record_id": recordID}).
		Order("fetched_at desc").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrFetchedNotFound
		}
		return nil, err
	}
	return toFetched(&row), nil
}

// ListByRecord lists all snapshots for one record, newest first.
func (s *FetchedStore) ListByRecord(kind model.Kind, recordID uint) ([]store.FetchedRecord, error) {
	var rows []model.FetchedRecord
	err := s.db.
		Where(map[string]interface{}{"kind": kind, "record_id": recordID}).
		Order("fetched_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	fetched := make([]store.FetchedRecord, 0, len(rows))
	for i := range rows {
		fetched = append(fetched, *toFetched(&rows[i]))
	}
	return fetched, nil
}

func toFetched(row *model.FetchedRecord) *store.FetchedRecord {
	return &store.FetchedRecord{
		ID:        row.ID,
		Kind:      row.Kind,
		RecordID:  row.RecordID,
		Accession: row.Accession,
		RawJSON:   row.RawJSON,
		FetchedAt: row.FetchedAt,
	}
}
