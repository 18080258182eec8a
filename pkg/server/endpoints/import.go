package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/atol-data/metadata-broker/pkg/audit"
	"github.com/atol-data/metadata-broker/pkg/importer"
	"github.com/atol-data/metadata-broker/pkg/server"
)

func RegisterImportEndpoints(s *server.Server) {
	importRouter := s.Router.PathPrefix("/import").Subrouter()
	importRouter.Use(s.TokenMiddleware.Middleware)

	// POST /import/{kind} - Reconcile a bulk dataset (curator only)
	importRouter.HandleFunc("/{kind}", handleImport(s)).Methods("POST")
}

func handleImport(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireCurator(w, r)
		if !ok {
			return
		}

		kind, err := parseKind(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		var dataset importer.Dataset
		if err := json.NewDecoder(r.Body).Decode(&dataset); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed dataset: "+err.Error())
			return
		}

		result := importer.NewJob(s.RecordsStore, kind).Run(dataset)

		s.Audit(audit.ImportEvent{
			Login:    id.Login,
			ClientIP: id.RemoteIP.String(),
			Kind:     kind.String(),
			Created:  result.CreatedCount,
			Skipped:  result.SkippedCount,
		})

		respondWithJSON(w, http.StatusOK, result)
	}
}
