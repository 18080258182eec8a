package store

import (
	"errors"
	"time"

	"github.com/atol-data/metadata-broker/pkg/model"
)

// ErrFetchedNotFound is returned when no registry snapshot exists for a
// record.
var ErrFetchedNotFound = errors.New("no fetched record")

// FetchedRecord is an immutable registry snapshot as seen by the endpoint
// layer.
type FetchedRecord struct {
	ID        uint
	Kind      model.Kind
	RecordID  uint
	Accession string
	RawJSON   []byte
	FetchedAt time.Time
}

// FetchedStore abstracts the append-only registry snapshot archive. There is
// deliberately no update or delete operation: concurrent pollers only ever
// insert, and current state is derived by reading the newest row.
type FetchedStore interface {
	// Append records what the registry reported for a record.
	Append(kind model.Kind, recordID uint, accession string, rawJSON []byte) (*FetchedRecord, error)

	// Latest returns the snapshot with the greatest fetched_at for a record.
	// Returns ErrFetchedNotFound when no snapshot exists.
	Latest(kind model.Kind, recordID uint) (*FetchedRecord, error)

	// ListByRecord lists all snapshots for one record, newest first.
	ListByRecord(kind model.Kind, recordID uint) ([]FetchedRecord, error)
}
