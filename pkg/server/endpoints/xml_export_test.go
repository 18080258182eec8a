package endpoints

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atol-data/metadata-broker/pkg/model"
	"github.com/atol-data/metadata-broker/pkg/server/store"
)

func sampleRecord() *store.Record {
	return &store.Record{
		ID:         12,
		Kind:       model.KindSample,
		NaturalKey: "102.100.100/12345",
		OrganismID: 3,
	}
}

func organismRecord() *store.Record {
	return &store.Record{
		ID:             3,
		Kind:           model.KindOrganism,
		NaturalKey:     "amborella",
		TaxonID:        "13333",
		ScientificName: "Amborella trichopoda",
		CommonName:     "amborella",
	}
}

func TestExportSample(t *testing.T) {
	srv, mocks := newTestServer()
	mocks.records.On("Get", model.KindSample, uint(12)).Return(sampleRecord(), nil)
	mocks.records.On("Get", model.KindOrganism, uint(3)).Return(organismRecord(), nil)
	mocks.submissions.On("ListByRecord", model.KindSample, uint(12)).Return([]store.Submission{
		{ID: 7, Kind: model.KindSample, Status: model.StatusReady, SubmissionJSON: []byte(`{"lifestage":"adult"}`)},
	}, nil)
	mocks.fetched.On("Latest", model.KindSample, uint(12)).Return(nil, store.ErrFetchedNotFound)

	rec := doRequest(t, srv, http.MethodGet, "/xml/samples/12", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/xml; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "<SAMPLE_SET>")
	assert.Contains(t, body, `alias="102.100.100/12345"`)
	assert.Contains(t, body, "<TAXON_ID>13333</TAXON_ID>")
	assert.Contains(t, body, "<TAG>lifestage</TAG>")
	assert.Contains(t, body, "ERC000053")
}

func TestExportSamplePrefersFetchedAccession(t *testing.T) {
	srv, mocks := newTestServer()
	mocks.records.On("Get", model.KindSample, uint(12)).Return(sampleRecord(), nil)
	mocks.records.On("Get", model.KindOrganism, uint(3)).Return(organismRecord(), nil)
	mocks.submissions.On("ListByRecord", model.KindSample, uint(12)).Return([]store.Submission{
		{ID: 7, SubmissionJSON: []byte(`{}`)},
	}, nil)
	mocks.fetched.On("Latest", model.KindSample, uint(12)).Return(&store.FetchedRecord{
		Accession: "ERS0000009",
	}, nil)

	rec := doRequest(t, srv, http.MethodGet, "/xml/samples/12", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `accession="ERS0000009"`)
}

func TestExportSampleWithoutSubmission(t *testing.T) {
	srv, mocks := newTestServer()
	mocks.records.On("Get", model.KindSample, uint(12)).Return(sampleRecord(), nil)
	mocks.records.On("Get", model.KindOrganism, uint(3)).Return(organismRecord(), nil)
	mocks.submissions.On("ListByRecord", model.KindSample, uint(12)).Return([]store.Submission{}, nil)

	rec := doRequest(t, srv, http.MethodGet, "/xml/samples/12", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportExperimentFallsBackToConfiguredStudy(t *testing.T) {
	srv, mocks := newTestServer()
	mocks.records.On("Get", model.KindExperiment, uint(20)).Return(&store.Record{
		ID:         20,
		Kind:       model.KindExperiment,
		NaturalKey: "bpa-package-77",
		SampleID:   12,
	}, nil)
	mocks.records.On("Get", model.KindSample, uint(12)).Return(sampleRecord(), nil)
	mocks.submissions.On("ListByRecord", model.KindExperiment, uint(20)).Return([]store.Submission{
		{ID: 8, SubmissionJSON: []byte(`{"platform":"ILLUMINA","instrument_model":"NovaSeq 6000","library_layout":"SINGLE"}`)},
	}, nil)
	mocks.fetched.On("Latest", model.KindExperiment, uint(20)).Return(nil, store.ErrFetchedNotFound)
	mocks.fetched.On("Latest", model.KindSample, uint(12)).Return(nil, store.ErrFetchedNotFound)

	rec := doRequest(t, srv, http.MethodGet, "/xml/experiments/20", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<STUDY_REF refname="AToL_study"/>`)
	// Linked sample resolves by refname when no accession is known.
	assert.Contains(t, body, `<SAMPLE_DESCRIPTOR refname="102.100.100/12345"/>`)
	assert.Contains(t, body, "<PLATFORM>")
}

func TestExportExperimentStudyQueryOverride(t *testing.T) {
	srv, mocks := newTestServer()
	mocks.records.On("Get", model.KindExperiment, uint(20)).Return(&store.Record{
		ID:         20,
		Kind:       model.KindExperiment,
		NaturalKey: "bpa-package-77",
	}, nil)
	mocks.submissions.On("ListByRecord", model.KindExperiment, uint(20)).Return([]store.Submission{
		{ID: 8, SubmissionJSON: []byte(`{"platform":"ILLUMINA","instrument_model":"NovaSeq 6000"}`)},
	}, nil)
	mocks.fetched.On("Latest", model.KindExperiment, uint(20)).Return(nil, store.ErrFetchedNotFound)

	rec := doRequest(t, srv, http.MethodGet, "/xml/experiments/20?study_accession=ERP000001&sample_refname=alt-sample", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<STUDY_REF accession="ERP000001"/>`)
	assert.Contains(t, body, `<SAMPLE_DESCRIPTOR refname="alt-sample"/>`)
}

func TestExportRunsBatchesAllReads(t *testing.T) {
	srv, mocks := newTestServer()
	mocks.records.On("Get", model.KindExperiment, uint(20)).Return(&store.Record{
		ID:         20,
		Kind:       model.KindExperiment,
		NaturalKey: "bpa-package-77",
	}, nil)
	mocks.records.On("ReadsByExperiment", uint(20)).Return([]store.Record{
		{ID: 30, Kind: model.KindRead, NaturalKey: "bpa-dataset-1", ExperimentID: 20},
		{ID: 31, Kind: model.KindRead, NaturalKey: "bpa-dataset-2", ExperimentID: 20},
	}, nil)
	mocks.submissions.On("ListByRecord", model.KindRead, uint(30)).Return([]store.Submission{
		{ID: 9, SubmissionJSON: []byte(`{"filename":"r1.fastq.gz","filetype":"fastq","checksum":"abc"}`)},
	}, nil)
	mocks.submissions.On("ListByRecord", model.KindRead, uint(31)).Return([]store.Submission{
		{ID: 10, SubmissionJSON: []byte(`{"filename":"r2.fastq.gz","filetype":"fastq"}`)},
	}, nil)
	mocks.fetched.On("Latest", model.KindExperiment, uint(20)).Return(nil, store.ErrFetchedNotFound)
	mocks.fetched.On("Latest", model.KindRead, uint(30)).Return(nil, store.ErrFetchedNotFound)
	mocks.fetched.On("Latest", model.KindRead, uint(31)).Return(nil, store.ErrFetchedNotFound)

	rec := doRequest(t, srv, http.MethodGet, "/xml/runs/20", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, 2, strings.Count(body, "<RUN "))
	assert.Equal(t, 2, strings.Count(body, `<EXPERIMENT_REF refname="bpa-package-77"/>`))
	assert.Contains(t, body, `filename="r1.fastq.gz"`)
	// checksum_method rides along only with a checksum
	assert.Equal(t, 1, strings.Count(body, `checksum_method="MD5"`))
}

func TestExportRunsNoReads(t *testing.T) {
	srv, mocks := newTestServer()
	mocks.records.On("Get", model.KindExperiment, uint(20)).Return(&store.Record{
		ID:   20,
		Kind: model.KindExperiment,
	}, nil)
	mocks.records.On("ReadsByExperiment", uint(20)).Return([]store.Record{}, nil)
	mocks.fetched.On("Latest", model.KindExperiment, uint(20)).Return(nil, store.ErrFetchedNotFound)

	rec := doRequest(t, srv, http.MethodGet, "/xml/runs/20", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportIsDeterministic(t *testing.T) {
	srv, mocks := newTestServer()
	mocks.records.On("Get", model.KindSample, uint(12)).Return(sampleRecord(), nil)
	mocks.records.On("Get", model.KindOrganism, uint(3)).Return(organismRecord(), nil)
	mocks.submissions.On("ListByRecord", model.KindSample, uint(12)).Return([]store.Submission{
		{ID: 7, SubmissionJSON: []byte(`{"sex":"female","habitat":"rainforest","lifestage":"adult"}`)},
	}, nil)
	mocks.fetched.On("Latest", model.KindSample, uint(12)).Return(nil, store.ErrFetchedNotFound)

	first := doRequest(t, srv, http.MethodGet, "/xml/samples/12", "").Body.String()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, doRequest(t, srv, http.MethodGet, "/xml/samples/12", "").Body.String())
	}
}
