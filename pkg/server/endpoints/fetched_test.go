package endpoints

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atol-data/metadata-broker/pkg/identity"
	"github.com/atol-data/metadata-broker/pkg/model"
	"github.com/atol-data/metadata-broker/pkg/server/store"
)

func TestAppendFetched(t *testing.T) {
	srv, mocks := newTestServer()
	mocks.records.On("Get", model.KindSample, uint(12)).Return(&store.Record{
		ID:   12,
		Kind: model.KindSample,
	}, nil)
	mocks.fetched.On("Append", model.KindSample, uint(12), "ERS0000001", []byte(`{"status":"public"}`)).
		Return(&store.FetchedRecord{
			ID:        1,
			Kind:      model.KindSample,
			RecordID:  12,
			Accession: "ERS0000001",
			FetchedAt: time.Now(),
		}, nil)

	body := `{"accession":"ERS0000001","raw":{"status":"public"}}`
	rec := doRequest(t, srv, http.MethodPost, "/fetched/sample/12", body, identity.RoleCurator)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp fetchedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ERS0000001", resp.Accession)
	mocks.fetched.AssertExpectations(t)
}

func TestAppendFetchedRequiresAccession(t *testing.T) {
	srv, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodPost, "/fetched/sample/12", `{"raw":{}}`, identity.RoleCurator)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAppendFetchedUnknownRecord(t *testing.T) {
	srv, mocks := newTestServer()
	mocks.records.On("Get", model.KindSample, uint(99)).Return(nil, store.ErrRecordNotFound)

	body := `{"accession":"ERS0000001"}`
	rec := doRequest(t, srv, http.MethodPost, "/fetched/sample/99", body, identity.RoleCurator)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLatestFetched(t *testing.T) {
	srv, mocks := newTestServer()
	mocks.fetched.On("Latest", model.KindSample, uint(12)).Return(&store.FetchedRecord{
		ID:        3,
		Kind:      model.KindSample,
		RecordID:  12,
		Accession: "ERS0000002",
	}, nil)

	rec := doRequest(t, srv, http.MethodGet, "/fetched/sample/12/latest", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp fetchedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ERS0000002", resp.Accession)
}

func TestLatestFetchedEmpty(t *testing.T) {
	srv, mocks := newTestServer()
	mocks.fetched.On("Latest", model.KindSample, uint(12)).Return(nil, store.ErrFetchedNotFound)

	rec := doRequest(t, srv, http.MethodGet, "/fetched/sample/12/latest", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListFetched(t *testing.T) {
	srv, mocks := newTestServer()
	mocks.fetched.On("ListByRecord", model.KindSample, uint(12)).Return([]store.FetchedRecord{
		{ID: 3, Kind: model.KindSample, RecordID: 12, Accession: "ERS0000002"},
		{ID: 1, Kind: model.KindSample, RecordID: 12, Accession: "ERS0000001"},
	}, nil)

	rec := doRequest(t, srv, http.MethodGet, "/fetched/sample/12", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []fetchedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "ERS0000002", resp[0].Accession)
}
