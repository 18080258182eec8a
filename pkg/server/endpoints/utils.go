package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/atol-data/metadata-broker/pkg/ena"
	"github.com/atol-data/metadata-broker/pkg/identity"
	"github.com/atol-data/metadata-broker/pkg/model"
	"github.com/atol-data/metadata-broker/pkg/server/store"
)

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, map[string]string{"error": message})
}

// respondWithStoreError translates store and codec errors to HTTP statuses.
// Unknown errors are internal.
func respondWithStoreError(w http.ResponseWriter, err error) {
	var validationErr *ena.ValidationError

	switch {
	case errors.Is(err, store.ErrRecordNotFound),
		errors.Is(err, store.ErrSubmissionNotFound),
		errors.Is(err, store.ErrFetchedNotFound),
		errors.Is(err, store.ErrNoteNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validationErr),
		errors.Is(err, store.ErrSubmissionIncomplete):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrInvalidTransition),
		errors.Is(err, store.ErrParentHasChildren),
		errors.Is(err, store.ErrDuplicateNaturalKey):
		respondWithError(w, http.StatusConflict, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, err.Error())
	}
}

// parseKind reads the {kind} path variable. Unknown kinds are a client
// error; the enum is closed.
func parseKind(r *http.Request) (model.Kind, error) {
	return model.KindString(mux.Vars(r)["kind"])
}

func parseID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// requireCurator enforces the curator role. Writes a 403 and returns false
// when the request identity may not curate.
func requireCurator(w http.ResponseWriter, r *http.Request) (*identity.Identity, bool) {
	id, ok := identity.Get(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	if !id.CanCurate() {
		respondWithError(w, http.StatusForbidden, "curator role required")
		return nil, false
	}
	return id, true
}

// requireAdmin enforces the admin role.
func requireAdmin(w http.ResponseWriter, r *http.Request) (*identity.Identity, bool) {
	id, ok := identity.Get(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	if !id.IsPrivileged() {
		respondWithError(w, http.StatusForbidden, "admin role required")
		return nil, false
	}
	return id, true
}
