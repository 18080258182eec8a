// Package model defines the database models for the metadata broker.
//
// This package contains GORM models that map to the broker's PostgreSQL
// schema. Free-form provider payloads are stored as JSONB columns; identity
// fields (natural keys, accessions, foreign keys) are typed columns.
//
// # Core Models
//
//   - Organism: a specimen's organism, keyed by grouping key, carrying
//     authoritative taxonomy (taxon id, scientific name, common name)
//   - Sample: a physical sample of an organism, keyed by BPA sample id
//   - Experiment: a sequencing experiment over a sample, keyed by BPA
//     package id
//   - Read: a sequencing read set for an experiment, keyed by BPA dataset id
//   - Assembly: a genome assembly for an organism/sample pair
//   - Submission: one staging attempt of a record for the external registry,
//     with a closed status machine (draft, ready, submitted, rejected)
//   - FetchedRecord: an append-only snapshot of what the registry reported
//     for a record at a point in time
//   - GenomeNote: markdown notes attached to an organism
//
// # Database Schema
//
// The schema is managed by SQL migrations under db/migrations. Key tables:
//
//   - organisms, samples, experiments, reads, assemblies: source records
//   - submissions: staging rows, parametrized by record kind
//   - fetched_records: insert-only registry snapshots
//   - genome_notes: organism notes
package model
