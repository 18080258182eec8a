// Package server provides the HTTP server for the broker API.
//
// This package implements the core HTTP server that handles all broker REST
// API requests. It uses gorilla/mux for routing and provides middleware for
// authentication and request handling.
//
// # Server Setup
//
//	srv := server.NewServer(db, cfg, tokenKey, host, port)
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//   - /records/{kind}/{id} - Record retrieval and deletion
//   - /import/{kind} - Bulk dataset reconciliation
//   - /submissions/... - Staging rows and status transitions
//   - /fetched/... - Append-only archive of returned documents
//   - /xml/... - Deterministic XML document export
//   - /genome-notes/... - Genome note rendering
//   - /health - Connectivity check
package server
