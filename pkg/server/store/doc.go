// Package store provides storage abstractions for the broker server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints and the bulk importer to be decoupled from the specific
// database implementation. This enables easier testing with mocks and
// potential support for different storage backends.
//
// # Available Stores
//
//   - RecordsStore: source-record operations across all entity kinds
//   - SubmissionsStore: staging rows and the status machine
//   - FetchedStore: the append-only registry snapshot archive
//   - NotesStore: genome notes
//   - HealthStore: connectivity checks
//
// # Usage
//
//	records := gorm.NewRecordsStore(db)
//	rec, err := records.FindByNaturalKey(model.KindSample, "102.100.100/12345")
//	if err != nil {
//	    if errors.Is(err, store.ErrRecordNotFound) {
//	        // Handle not found
//	    }
//	}
package store
