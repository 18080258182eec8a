package export

import (
	"encoding/json"
	"errors"

	"github.com/atol-data/metadata-broker/pkg/config"
	"github.com/atol-data/metadata-broker/pkg/ena"
	"github.com/atol-data/metadata-broker/pkg/model"
	"github.com/atol-data/metadata-broker/pkg/server/store"
)

// Exporter assembles submission documents from stored records, their newest
// staged submission payloads and the fetched accession archive.
type Exporter struct {
	Records     store.RecordsStore
	Submissions store.SubmissionsStore
	Fetched     store.FetchedStore

	Codec        ena.Codec
	StudyRefname string
}

// New builds an exporter carrying the configured codec defaults.
func New(records store.RecordsStore, submissions store.SubmissionsStore, fetched store.FetchedStore, cfg *config.BrokerConfig) Exporter {
	codec := ena.NewCodec()
	studyRefname := ""
	if cfg != nil {
		codec.CenterName = cfg.CenterName
		codec.BrokerName = cfg.BrokerName
		codec.ChecklistID = cfg.ChecklistID
		codec.ProjectName = cfg.ProjectName
		studyRefname = cfg.StudyRefname
	}
	return Exporter{
		Records:      records,
		Submissions:  submissions,
		Fetched:      fetched,
		Codec:        codec,
		StudyRefname: studyRefname,
	}
}

// latestAccession resolves a record's registry accession from the newest
// fetched snapshot, falling back to the accession stored on the record.
func (e Exporter) latestAccession(kind model.Kind, recordID uint, fallback string) string {
	snapshot, err := e.Fetched.Latest(kind, recordID)
	if err != nil {
		return fallback
	}
	return snapshot.Accession
}

// newestPayload returns the newest staged submission payload for a record.
// A record without a usable staging row cannot be exported.
func (e Exporter) newestPayload(kind model.Kind, recordID uint) (ena.Payload, error) {
	subs, err := e.Submissions.ListByRecord(kind, recordID)
	if err != nil {
		return nil, err
	}
	for i := range subs {
		if len(subs[i].SubmissionJSON) == 0 {
			continue
		}
		var payload ena.Payload
		if err := json.Unmarshal(subs[i].SubmissionJSON, &payload); err != nil {
			return nil, err
		}
		return payload, nil
	}
	return nil, &ena.ValidationError{Field: "submission", Reason: "record has no staged submission"}
}

// SampleXML builds the SAMPLE_SET document for one sample record. Taxonomy
// comes from the parent organism record, never from submitter input.
func (e Exporter) SampleXML(id uint) (string, error) {
	rec, err := e.Records.Get(model.KindSample, id)
	if err != nil {
		return "", err
	}

	organism, err := e.Records.Get(model.KindOrganism, rec.OrganismID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return "", &ena.ValidationError{Field: "organism", Reason: "sample has no organism"}
		}
		return "", err
	}

	payload, err := e.newestPayload(model.KindSample, rec.ID)
	if err != nil {
		return "", err
	}

	return e.Codec.SampleXML(ena.SampleInput{
		Alias:     rec.NaturalKey,
		Accession: e.latestAccession(model.KindSample, rec.ID, rec.Accession),
		Taxonomy: ena.Taxonomy{
			TaxonID:        organism.TaxonID,
			ScientificName: organism.ScientificName,
			CommonName:     organism.CommonName,
		},
		Payload: payload,
	})
}

// ExperimentXML builds the EXPERIMENT_SET document for one experiment
// record. Caller-supplied study and sample references win; otherwise the
// study falls back to the configured refname and the sample reference is
// resolved from the linked sample record.
func (e Exporter) ExperimentXML(id uint, studyRef, sampleRef ena.Reference) (string, error) {
	rec, err := e.Records.Get(model.KindExperiment, id)
	if err != nil {
		return "", err
	}

	payload, err := e.newestPayload(model.KindExperiment, rec.ID)
	if err != nil {
		return "", err
	}

	if studyRef.IsZero() {
		studyRef.Refname = e.StudyRefname
	}

	if sampleRef.IsZero() && rec.SampleID != 0 {
		sample, err := e.Records.Get(model.KindSample, rec.SampleID)
		if err != nil {
			return "", err
		}
		sampleRef.Accession = e.latestAccession(model.KindSample, sample.ID, sample.Accession)
		sampleRef.Refname = sample.NaturalKey
	}

	return e.Codec.ExperimentXML(ena.ExperimentInput{
		Alias:     rec.NaturalKey,
		Accession: e.latestAccession(model.KindExperiment, rec.ID, rec.Accession),
		StudyRef:  studyRef,
		SampleRef: sampleRef,
		Payload:   payload,
	})
}

// RunSetXML builds one RUN_SET document batching every read of an
// experiment. All runs reference the experiment the same way.
func (e Exporter) RunSetXML(experimentID uint) (string, error) {
	experiment, err := e.Records.Get(model.KindExperiment, experimentID)
	if err != nil {
		return "", err
	}

	reads, err := e.Records.ReadsByExperiment(experiment.ID)
	if err != nil {
		return "", err
	}

	experimentRef := ena.Reference{
		Accession: e.latestAccession(model.KindExperiment, experiment.ID, experiment.Accession),
		Refname:   experiment.NaturalKey,
	}

	runs := make([]ena.RunInput, 0, len(reads))
	for i := range reads {
		payload, err := e.newestPayload(model.KindRead, reads[i].ID)
		if err != nil {
			return "", err
		}
		runs = append(runs, ena.RunInput{
			Alias:         reads[i].NaturalKey,
			Accession:     e.latestAccession(model.KindRead, reads[i].ID, reads[i].Accession),
			ExperimentRef: experimentRef,
			Payload:       payload,
		})
	}

	return e.Codec.RunSetXML(runs)
}
