package endpoints

import (
	"net/http"

	"github.com/atol-data/metadata-broker/pkg/server"
	"github.com/atol-data/metadata-broker/pkg/server/store"
)

// RegisterStatusEndpoints registers the unauthenticated health check.
func RegisterStatusEndpoints(s *server.Server) {
	s.Router.HandleFunc("/health", handleHealth(s.HealthStore)).Methods("GET")
}

func handleHealth(health store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := health.CheckConnectivity(); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"ok":    false,
				"error": err.Error(),
			})
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
	}
}
