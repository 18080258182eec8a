// Package ena builds ENA submission XML documents.
//
// The codec is a pure function layer: it turns a submission payload plus
// resolved cross-references into a schema-shaped SAMPLE, EXPERIMENT or RUN
// document and returns it as a string. It performs no I/O and no database
// access.
//
// Output is deterministic for a given input. Attribute and element order is
// fixed at serialization time (payload keys are sorted, injected defaults are
// appended last in a fixed order), never dependent on map iteration order.
// Null or missing optional values are omitted entirely; no empty placeholder
// tags are emitted.
package ena
