package endpoints

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atol-data/metadata-broker/pkg/identity"
	"github.com/atol-data/metadata-broker/pkg/model"
	"github.com/atol-data/metadata-broker/pkg/server/store"
)

func TestCreateGenomeNote(t *testing.T) {
	srv, mocks := newTestServer()
	mocks.records.On("Get", model.KindOrganism, uint(3)).Return(organismRecord(), nil)
	mocks.notes.On("CreateNote", uint(3), "Assembly report", "# Amborella\n\nChromosome-level.").
		Return(&store.GenomeNote{
			ID:         1,
			OrganismID: 3,
			Title:      "Assembly report",
			Body:       "# Amborella\n\nChromosome-level.",
		}, nil)

	body := `{"organism_id":3,"title":"Assembly report","body":"# Amborella\n\nChromosome-level."}`
	rec := doRequest(t, srv, http.MethodPost, "/genome-notes", body, identity.RoleCurator)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp noteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(3), resp.OrganismID)
	mocks.notes.AssertExpectations(t)
}

func TestCreateGenomeNoteUnknownOrganism(t *testing.T) {
	srv, mocks := newTestServer()
	mocks.records.On("Get", model.KindOrganism, uint(99)).Return(nil, store.ErrRecordNotFound)

	body := `{"organism_id":99,"title":"x","body":"y"}`
	rec := doRequest(t, srv, http.MethodPost, "/genome-notes", body, identity.RoleCurator)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateGenomeNoteRequiresCurator(t *testing.T) {
	srv, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodPost, "/genome-notes", `{"organism_id":3,"title":"x"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRenderGenomeNote(t *testing.T) {
	srv, mocks := newTestServer()
	mocks.notes.On("GetNote", uint(1)).Return(&store.GenomeNote{
		ID:         1,
		OrganismID: 3,
		Title:      "Assembly report",
		Body:       "# Amborella\n\nChromosome-level assembly.",
	}, nil)

	rec := doRequest(t, srv, http.MethodGet, "/genome-notes/1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<h1>Amborella</h1>")
	assert.Contains(t, rec.Body.String(), "<p>Chromosome-level assembly.</p>")
}

func TestRenderGenomeNoteNotFound(t *testing.T) {
	srv, mocks := newTestServer()
	mocks.notes.On("GetNote", uint(42)).Return(nil, store.ErrNoteNotFound)

	rec := doRequest(t, srv, http.MethodGet, "/genome-notes/42", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListGenomeNotes(t *testing.T) {
	srv, mocks := newTestServer()
	mocks.notes.On("ListNotesByOrganism", uint(3)).Return([]store.GenomeNote{
		{ID: 2, OrganismID: 3, Title: "Second"},
		{ID: 1, OrganismID: 3, Title: "First"},
	}, nil)

	rec := doRequest(t, srv, http.MethodGet, "/genome-notes?organism_id=3", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []noteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "Second", resp[0].Title)
}
