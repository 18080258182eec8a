// Package importer implements the bulk reconciliation job.
//
// The job matches an externally-keyed dataset against the record store,
// creates missing records together with their draft staging rows, and is
// tolerant of partial failure: each input row commits or rolls back on its
// own, and a bad row only ever costs that row. The job never aborts as a
// whole; it returns aggregate counts with a per-reason debug breakdown.
//
// Re-running the same dataset is idempotent. Rows whose natural key already
// exists are skipped, and a duplicate-key failure at insert time (two
// concurrent imports racing past the existence check) is converted to the
// same skip, relying on the store's unique constraint as the final backstop.
package importer
