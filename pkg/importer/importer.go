package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/atol-data/metadata-broker/pkg/model"
	"github.com/atol-data/metadata-broker/pkg/server/store"
)

// Skip reasons reported in the Result debug breakdown.
const (
	SkipMissingNaturalKey = "missing_natural_key"
	SkipMissingParent     = "missing_parent"
	SkipAlreadyExists     = "already_exists"
	SkipMissingRequired   = "missing_required_field"
	SkipRowError          = "row_error"
)

// Dataset is bulk input keyed by the external natural key of each row.
type Dataset map[string]map[string]interface{}

// Result is the aggregate outcome of one job run. Per-row causes are only
// visible through the debug counters, not individual error messages.
type Result struct {
	CreatedCount int            `json:"created_count"`
	SkippedCount int            `json:"skipped_count"`
	Message      string         `json:"message"`
	Debug        map[string]int `json:"debug"`
}

func (r *Result) skip(reason string) {
	r.SkippedCount++
	r.Debug[reason]++
}

// Job reconciles one kind's dataset against the record store.
type Job struct {
	records store.RecordsStore
	kind    model.Kind
}

// NewJob creates a reconciliation job for one record kind.
func NewJob(records store.RecordsStore, kind model.Kind) *Job {
	return &Job{records: records, kind: kind}
}

// Run processes the dataset row by row. Rows are visited in sorted key
// order so two runs over the same input behave identically.
func (j *Job) Run(dataset Dataset) Result {
	result := Result{Debug: map[string]int{}}

	keys := make([]string, 0, len(dataset))
	for key := range dataset {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		j.importRow(key, dataset[key], &result)
	}

	result.Message = fmt.Sprintf("created %d records, skipped %d", result.CreatedCount, result.SkippedCount)
	return result
}

// importRow handles one input row. Every failure is converted to a skip;
// nothing a single row does can abort the job.
func (j *Job) importRow(key string, payload map[string]interface{}, result *Result) {
	if key == "" {
		result.skip(SkipMissingNaturalKey)
		return
	}

	_, err := j.records.FindByNaturalKey(j.kind, key)
	if err == nil {
		result.skip(SkipAlreadyExists)
		return
	}
	if !errors.Is(err, store.ErrRecordNotFound) {
		result.skip(SkipRowError)
		return
	}

	rec, reason := j.buildRecord(key, payload)
	if reason != "" {
		result.skip(reason)
		return
	}

	sourceJSON, err := json.Marshal(payload)
	if err != nil {
		result.skip(SkipRowError)
		return
	}
	rec.SourceJSON = sourceJSON

	var submissionJSON []byte
	if submission := DeriveSubmission(j.kind, payload); submission != nil {
		submissionJSON, err = json.Marshal(submission)
		if err != nil {
			result.skip(SkipRowError)
			return
		}
	}

	_, err = j.records.CreateWithSubmission(*rec, sourceJSON, submissionJSON)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateNaturalKey) {
			// Lost a race with a concurrent import of the same key. The
			// unique constraint is the backstop; treat it as already exists.
			result.skip(SkipAlreadyExists)
			return
		}
		result.skip(SkipRowError)
		return
	}

	result.CreatedCount++
}

// buildRecord resolves parent references and kind-specific fields for a new
// record. It returns a skip reason instead of a record when the row cannot
// be imported.
func (j *Job) buildRecord(key string, payload map[string]interface{}) (*store.NewRecord, string) {
	rec := &store.NewRecord{Kind: j.kind, NaturalKey: key}

	switch j.kind {
	case model.KindOrganism:
		rec.TaxonID = stringField(payload, "taxon_id")
		rec.ScientificName = stringField(payload, "scientific_name")
		rec.CommonName = stringField(payload, "common_name")

	case model.KindSample:
		parent, reason := j.resolveParent(payload, "organism_grouping_key", model.KindOrganism, true)
		if reason != "" {
			return nil, reason
		}
		rec.OrganismID = parent

	case model.KindExperiment:
		parent, reason := j.resolveParent(payload, "bpa_sample_id", model.KindSample, false)
		if reason != "" {
			return nil, reason
		}
		rec.SampleID = parent

	case model.KindRead:
		parent, reason := j.resolveParent(payload, "bpa_package_id", model.KindExperiment, true)
		if reason != "" {
			return nil, reason
		}
		rec.ExperimentID = parent

	case model.KindAssembly:
		organism, reason := j.resolveParent(payload, "organism_grouping_key", model.KindOrganism, true)
		if reason != "" {
			return nil, reason
		}
		sample, reason := j.resolveParent(payload, "bpa_sample_id", model.KindSample, true)
		if reason != "" {
			return nil, reason
		}
		experiment, reason := j.resolveParent(payload, "bpa_package_id", model.KindExperiment, false)
		if reason != "" {
			return nil, reason
		}
		rec.OrganismID = organism
		rec.SampleID = sample
		rec.ExperimentID = experiment
	}

	return rec, ""
}

// resolveParent looks up a parent record by the natural key carried in the
// payload. A missing required field and an unresolvable parent are distinct
// skip reasons.
func (j *Job) resolveParent(payload map[string]interface{}, field string, parentKind model.Kind, required bool) (uint, string) {
	parentKey := stringField(payload, field)
	if parentKey == "" {
		if required {
			return 0, SkipMissingRequired
		}
		return 0, ""
	}

	parent, err := j.records.FindByNaturalKey(parentKind, parentKey)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return 0, SkipMissingParent
		}
		return 0, SkipRowError
	}
	return parent.ID, ""
}

func stringField(payload map[string]interface{}, field string) string {
	if value, ok := payload[field].(string); ok {
		return value
	}
	return ""
}
