package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/atol-data/metadata-broker/pkg/server"
	"github.com/atol-data/metadata-broker/pkg/server/store"
)

// recordResponse is the JSON projection of a source record. Parent ids and
// taxonomy fields are omitted where the kind does not carry them.
type recordResponse struct {
	ID         uint            `json:"id"`
	Kind       string          `json:"kind"`
	NaturalKey string          `json:"natural_key"`
	Accession  string          `json:"accession,omitempty"`
	Source     json.RawMessage `json:"source,omitempty"`

	OrganismID   uint `json:"organism_id,omitempty"`
	SampleID     uint `json:"sample_id,omitempty"`
	ExperimentID uint `json:"experiment_id,omitempty"`

	TaxonID        string `json:"taxon_id,omitempty"`
	ScientificName string `json:"scientific_name,omitempty"`
	CommonName     string `json:"common_name,omitempty"`
}

func newRecordResponse(rec *store.Record) recordResponse {
	return recordResponse{
		ID:             rec.ID,
		Kind:           rec.Kind.String(),
		NaturalKey:     rec.NaturalKey,
		Accession:      rec.Accession,
		Source:         rec.SourceJSON,
		OrganismID:     rec.OrganismID,
		SampleID:       rec.SampleID,
		ExperimentID:   rec.ExperimentID,
		TaxonID:        rec.TaxonID,
		ScientificName: rec.ScientificName,
		CommonName:     rec.CommonName,
	}
}

func RegisterRecordsEndpoints(s *server.Server) {
	recordsRouter := s.Router.PathPrefix("/records").Subrouter()
	recordsRouter.Use(s.TokenMiddleware.Middleware)

	// GET /records/{kind}/{id} - Fetch a single record
	recordsRouter.HandleFunc("/{kind}/{id:[0-9]+}", handleGetRecord(s.RecordsStore)).Methods("GET")

	// GET /records/{kind}?natural_key=... - Fetch by natural key
	recordsRouter.HandleFunc("/{kind}", handleFindRecord(s.RecordsStore)).
		Methods("GET").Queries("natural_key", "{natural_key}")

	// DELETE /records/{kind}/{id} - Remove a record (admin only)
	recordsRouter.HandleFunc("/{kind}/{id:[0-9]+}", handleDeleteRecord(s.RecordsStore)).Methods("DELETE")
}

func handleGetRecord(records store.RecordsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := parseKind(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		id, err := parseID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid record id")
			return
		}

		rec, err := records.Get(kind, id)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, newRecordResponse(rec))
	}
}

func handleFindRecord(records store.RecordsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := parseKind(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		naturalKey := r.URL.Query().Get("natural_key")
		if naturalKey == "" {
			respondWithError(w, http.StatusBadRequest, "natural_key parameter required")
			return
		}

		rec, err := records.FindByNaturalKey(kind, naturalKey)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, newRecordResponse(rec))
	}
}

func handleDeleteRecord(records store.RecordsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}

		kind, err := parseKind(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		id, err := parseID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid record id")
			return
		}

		if err := records.Delete(kind, id); err != nil {
			respondWithStoreError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
