package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/atol-data/metadata-broker/pkg/audit"
	"github.com/atol-data/metadata-broker/pkg/config"
	"github.com/atol-data/metadata-broker/pkg/server/middleware"
	"github.com/atol-data/metadata-broker/pkg/server/store"
	gormstore "github.com/atol-data/metadata-broker/pkg/server/store/gorm"
)

type Server struct {
	Router *mux.Router
	DB     *gorm.DB
	Config *config.BrokerConfig

	RecordsStore     store.RecordsStore
	SubmissionsStore store.SubmissionsStore
	FetchedStore     store.FetchedStore
	NotesStore       store.NotesStore
	HealthStore      store.HealthStore

	TokenMiddleware *middleware.TokenAuthenticator

	srv *http.Server
}

func NewServer(
	db *gorm.DB,
	cfg *config.BrokerConfig,
	tokenKey []byte,
	host string,
	port string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router:           router,
		DB:               db,
		Config:           cfg,
		RecordsStore:     gormstore.NewRecordsStore(db),
		SubmissionsStore: gormstore.NewSubmissionsStore(db),
		FetchedStore:     gormstore.NewFetchedStore(db),
		NotesStore:       gormstore.NewNotesStore(db),
		HealthStore:      gormstore.NewHealthStore(db),
		TokenMiddleware:  middleware.NewTokenAuthenticator(tokenKey),
		srv:              srv,
	}
}

func (s Server) Start() error {
	return s.srv.ListenAndServe()
}

// Audit emits an audit event through the default audit pipeline.
func (s Server) Audit(event audit.Event) {
	audit.Log(event)
}
