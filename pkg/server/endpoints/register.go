package endpoints

import (
	"github.com/atol-data/metadata-broker/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterRecordsEndpoints(srv)
	RegisterImportEndpoints(srv)
	RegisterSubmissionsEndpoints(srv)
	RegisterFetchedEndpoints(srv)
	RegisterExportEndpoints(srv)
	RegisterGenomeNotesEndpoints(srv)
	RegisterStatusEndpoints(srv)
}
