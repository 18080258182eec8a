package endpoints

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/yuin/goldmark"

	"github.com/atol-data/metadata-broker/pkg/model"
	"github.com/atol-data/metadata-broker/pkg/server"
	"github.com/atol-data/metadata-broker/pkg/server/store"
)

type noteResponse struct {
	ID         uint      `json:"id"`
	OrganismID uint      `json:"organism_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

func newNoteResponse(note *store.GenomeNote) noteResponse {
	return noteResponse{
		ID:         note.ID,
		OrganismID: note.OrganismID,
		Title:      note.Title,
		Body:       note.Body,
		CreatedAt:  note.CreatedAt,
	}
}

func RegisterGenomeNotesEndpoints(s *server.Server) {
	notesRouter := s.Router.PathPrefix("/genome-notes").Subrouter()
	notesRouter.Use(s.TokenMiddleware.Middleware)

	// POST /genome-notes - Attach a markdown note to an organism (curator only)
	notesRouter.HandleFunc("", handleCreateNote(s)).Methods("POST")

	// GET /genome-notes/{id} - Render a note as HTML
	notesRouter.HandleFunc("/{id:[0-9]+}", handleRenderNote(s.NotesStore)).Methods("GET")

	// GET /genome-notes?organism_id=... - List notes for an organism
	notesRouter.HandleFunc("", handleListNotes(s.NotesStore)).
		Methods("GET").Queries("organism_id", "{organism_id}")
}

type createNoteRequest struct {
	OrganismID uint   `json:"organism_id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
}

func handleCreateNote(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireCurator(w, r); !ok {
			return
		}

		var req createNoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		if req.Title == "" {
			respondWithError(w, http.StatusBadRequest, "title is required")
			return
		}

		// Notes attach to existing organisms only.
		if _, err := s.RecordsStore.Get(model.KindOrganism, req.OrganismID); err != nil {
			respondWithStoreError(w, err)
			return
		}

		note, err := s.NotesStore.CreateNote(req.OrganismID, req.Title, req.Body)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		respondWithJSON(w, http.StatusCreated, newNoteResponse(note))
	}
}

func handleRenderNote(notes store.NotesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid note id")
			return
		}

		note, err := notes.GetNote(id)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		var rendered bytes.Buffer
		if err := goldmark.Convert([]byte(note.Body), &rendered); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = rendered.WriteTo(w)
	}
}

func handleListNotes(notes store.NotesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		organismID, err := parseID(r, "organism_id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid organism id")
			return
		}

		list, err := notes.ListNotesByOrganism(organismID)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		responses := make([]noteResponse, 0, len(list))
		for i := range list {
			responses = append(responses, newNoteResponse(&list[i]))
		}
		respondWithJSON(w, http.StatusOK, responses)
	}
}
