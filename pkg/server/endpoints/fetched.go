package endpoints

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/atol-data/metadata-broker/pkg/server"
	"github.com/atol-data/metadata-broker/pkg/server/store"
)

type fetchedResponse struct {
	ID        uint            `json:"id"`
	Kind      string          `json:"kind"`
	RecordID  uint            `json:"record_id"`
	Accession string          `json:"accession"`
	Raw       json.RawMessage `json:"raw,omitempty"`
	FetchedAt time.Time       `json:"fetched_at"`
}

func newFetchedResponse(f *store.FetchedRecord) fetchedResponse {
	return fetchedResponse{
		ID:        f.ID,
		Kind:      f.Kind.String(),
		RecordID:  f.RecordID,
		Accession: f.Accession,
		Raw:       f.RawJSON,
		FetchedAt: f.FetchedAt,
	}
}

func RegisterFetchedEndpoints(s *server.Server) {
	fetchedRouter := s.Router.PathPrefix("/fetched").Subrouter()
	fetchedRouter.Use(s.TokenMiddleware.Middleware)

	// POST /fetched/{kind}/{recordID} - Append a registry snapshot (curator only)
	fetchedRouter.HandleFunc("/{kind}/{recordID:[0-9]+}", handleAppendFetched(s)).Methods("POST")

	// GET /fetched/{kind}/{recordID}/latest - Newest snapshot for a record
	fetchedRouter.HandleFunc("/{kind}/{recordID:[0-9]+}/latest", handleLatestFetched(s.FetchedStore)).Methods("GET")

	// GET /fetched/{kind}/{recordID} - All snapshots for a record, newest first
	fetchedRouter.HandleFunc("/{kind}/{recordID:[0-9]+}", handleListFetched(s.FetchedStore)).Methods("GET")
}

type appendFetchedRequest struct {
	Accession string          `json:"accession"`
	Raw       json.RawMessage `json:"raw"`
}

func handleAppendFetched(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireCurator(w, r); !ok {
			return
		}

		kind, err := parseKind(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		recordID, err := parseID(r, "recordID")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid record id")
			return
		}

		var req appendFetchedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		if req.Accession == "" {
			respondWithError(w, http.StatusBadRequest, "accession is required")
			return
		}

		// The record must exist; snapshots are never orphaned.
		if _, err := s.RecordsStore.Get(kind, recordID); err != nil {
			respondWithStoreError(w, err)
			return
		}

		snapshot, err := s.FetchedStore.Append(kind, recordID, req.Accession, req.Raw)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		respondWithJSON(w, http.StatusCreated, newFetchedResponse(snapshot))
	}
}

func handleLatestFetched(fetched store.FetchedStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := parseKind(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		recordID, err := parseID(r, "recordID")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid record id")
			return
		}

		snapshot, err := fetched.Latest(kind, recordID)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, newFetchedResponse(snapshot))
	}
}

func handleListFetched(fetched store.FetchedStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := parseKind(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		recordID, err := parseID(r, "recordID")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid record id")
			return
		}

		snapshots, err := fetched.ListByRecord(kind, recordID)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		responses := make([]fetchedResponse, 0, len(snapshots))
		for i := range snapshots {
			responses = append(responses, newFetchedResponse(&snapshots[i]))
		}
		respondWithJSON(w, http.StatusOK, responses)
	}
}
