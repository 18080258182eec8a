package endpoints

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/atol-data/metadata-broker/pkg/audit"
	"github.com/atol-data/metadata-broker/pkg/importer"
	"github.com/atol-data/metadata-broker/pkg/model"
	"github.com/atol-data/metadata-broker/pkg/server"
	"github.com/atol-data/metadata-broker/pkg/server/store"
)

type submissionResponse struct {
	ID          uint            `json:"id"`
	Kind        string          `json:"kind"`
	RecordID    *uint           `json:"record_id,omitempty"`
	Status      string          `json:"status"`
	Submission  json.RawMessage `json:"submission,omitempty"`
	SubmittedAt *time.Time      `json:"submitted_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func newSubmissionResponse(sub *store.Submission) submissionResponse {
	return submissionResponse{
		ID:          sub.ID,
		Kind:        sub.Kind.String(),
		RecordID:    sub.RecordID,
		Status:      sub.Status.String(),
		Submission:  sub.SubmissionJSON,
		SubmittedAt: sub.SubmittedAt,
		CreatedAt:   sub.CreatedAt,
	}
}

func RegisterSubmissionsEndpoints(s *server.Server) {
	submissionsRouter := s.Router.PathPrefix("/submissions").Subrouter()
	submissionsRouter.Use(s.TokenMiddleware.Middleware)

	// POST /submissions/{kind}/{recordID} - Stage a fresh draft from a record (curator only)
	submissionsRouter.HandleFunc("/{kind}/{recordID:[0-9]+}", handleStageSubmission(s)).Methods("POST")

	// GET /submissions/{id} - Fetch a staging row
	submissionsRouter.HandleFunc("/{id:[0-9]+}", handleGetSubmission(s.SubmissionsStore)).Methods("GET")

	// POST /submissions/{id}/transition - Advance the status machine (curator only)
	submissionsRouter.HandleFunc("/{id:[0-9]+}/transition", handleTransition(s)).Methods("POST")

	// GET /submissions/{kind}/record/{recordID} - All staging attempts for a record
	submissionsRouter.HandleFunc("/{kind}/record/{recordID:[0-9]+}", handleListSubmissions(s.SubmissionsStore)).Methods("GET")
}

// handleStageSubmission derives a fresh draft staging row from a record's
// source payload. Re-staging after a rejection starts over from source; the
// rejected row is never edited.
func handleStageSubmission(s *server.Server) http.HandlerFunc {
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

		rec, err := s.RecordsStore.Get(kind, recordID)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		var payload map[string]interface{}
		if len(rec.SourceJSON) > 0 {
			if err := json.Unmarshal(rec.SourceJSON, &payload); err != nil {
				respondWithError(w, http.StatusInternalServerError, "corrupt source payload")
				return
			}
		}

		submission := importer.DeriveSubmission(kind, payload)
		if submission == nil {
			respondWithError(w, http.StatusBadRequest, kind.String()+" records are not staged for submission")
			return
		}
		submissionJSON, err := json.Marshal(submission)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		sub, err := s.SubmissionsStore.Create(kind, &rec.ID, rec.SourceJSON, submissionJSON)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		respondWithJSON(w, http.StatusCreated, newSubmissionResponse(sub))
	}
}

func handleGetSubmission(submissions store.SubmissionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid submission id")
			return
		}

		sub, err := submissions.Get(id)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, newSubmissionResponse(sub))
	}
}

type transitionRequest struct {
	Status string `json:"status"`
}

func handleTransition(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireCurator(w, r)
		if !ok {
			return
		}

		submissionID, err := parseID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid submission id")
			return
		}

		var req transitionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		next, err := model.SubmissionStatusString(req.Status)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		before, err := s.SubmissionsStore.Get(submissionID)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		sub, err := s.SubmissionsStore.Transition(submissionID, next)

		event := audit.TransitionEvent{
			Login:        id.Login,
			ClientIP:     id.RemoteIP.String(),
			Kind:         before.Kind.String(),
			SubmissionID: submissionID,
			From:         before.Status.String(),
			To:           next.String(),
			Success:      err == nil,
		}
		if err != nil {
			event.ErrorMessage = err.Error()
		}
		s.Audit(event)

		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, newSubmissionResponse(sub))
	}
}

func handleListSubmissions(submissions store.SubmissionsStore) http.HandlerFunc {
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

		subs, err := submissions.ListByRecord(kind, recordID)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		responses := make([]submissionResponse, 0, len(subs))
		for i := range subs {
			responses = append(responses, newSubmissionResponse(&subs[i]))
		}
		respondWithJSON(w, http.StatusOK, responses)
	}
}
