package endpoints

import (
	"net/http"

	"github.com/atol-data/metadata-broker/pkg/audit"
	"github.com/atol-data/metadata-broker/pkg/ena"
	"github.com/atol-data/metadata-broker/pkg/export"
	"github.com/atol-data/metadata-broker/pkg/identity"
	"github.com/atol-data/metadata-broker/pkg/model"
	"github.com/atol-data/metadata-broker/pkg/server"
)

func RegisterExportEndpoints(s *server.Server) {
	xmlRouter := s.Router.PathPrefix("/xml").Subrouter()
	xmlRouter.Use(s.TokenMiddleware.Middleware)

	// GET /xml/samples/{id} - SAMPLE_SET document for one sample
	xmlRouter.HandleFunc("/samples/{id:[0-9]+}", handleExportSample(s)).Methods("GET")

	// GET /xml/experiments/{id} - EXPERIMENT_SET document for one experiment
	xmlRouter.HandleFunc("/experiments/{id:[0-9]+}", handleExportExperiment(s)).Methods("GET")

	// GET /xml/runs/{experimentID} - RUN_SET batching all reads of one experiment
	xmlRouter.HandleFunc("/runs/{experimentID:[0-9]+}", handleExportRuns(s)).Methods("GET")
}

func exporterFor(s *server.Server) export.Exporter {
	return export.New(s.RecordsStore, s.SubmissionsStore, s.FetchedStore, s.Config)
}

func writeXML(w http.ResponseWriter, doc string) {
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

func auditExport(s *server.Server, r *http.Request, document string, kind model.Kind, recordID uint, err error) {
	id, ok := identity.Get(r.Context())
	if !ok {
		return
	}
	event := audit.ExportEvent{
		Login:    id.Login,
		ClientIP: id.RemoteIP.String(),
		Document: document,
		Kind:     kind.String(),
		RecordID: recordID,
		Success:  err == nil,
	}
	if err != nil {
		event.ErrorMessage = err.Error()
	}
	s.Audit(event)
}

func handleExportSample(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid record id")
			return
		}

		doc, err := exporterFor(s).SampleXML(id)
		auditExport(s, r, "sample", model.KindSample, id, err)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		writeXML(w, doc)
	}
}

func handleExportExperiment(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid record id")
			return
		}

		query := r.URL.Query()
		studyRef := ena.Reference{
			Accession: query.Get("study_accession"),
			Refname:   query.Get("study_refname"),
		}
		sampleRef := ena.Reference{
			Accession: query.Get("sample_accession"),
			Refname:   query.Get("sample_refname"),
		}

		doc, err := exporterFor(s).ExperimentXML(id, studyRef, sampleRef)
		auditExport(s, r, "experiment", model.KindExperiment, id, err)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		writeXML(w, doc)
	}
}

func handleExportRuns(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		experimentID, err := parseID(r, "experimentID")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid experiment id")
			return
		}

		doc, err := exporterFor(s).RunSetXML(experimentID)
		auditExport(s, r, "run", model.KindExperiment, experimentID, err)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		writeXML(w, doc)
	}
}
