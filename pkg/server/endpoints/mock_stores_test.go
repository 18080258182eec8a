package endpoints

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/atol-data/metadata-broker/pkg/config"
	"github.com/atol-data/metadata-broker/pkg/model"
	"github.com/atol-data/metadata-broker/pkg/server"
	"github.com/atol-data/metadata-broker/pkg/server/middleware"
	"github.com/atol-data/metadata-broker/pkg/server/store"
)

var testTokenKey = []byte("endpoints-test-key")

// newTestServer wires a server around mock stores; no database is involved.
func newTestServer() (*server.Server, *mockStores) {
	mocks := &mockStores{
		records:     &MockRecordsStore{},
		submissions: &MockSubmissionsStore{},
		fetched:     &MockFetchedStore{},
		notes:       &MockNotesStore{},
		health:      &MockHealthStore{},
	}

	cfg, _ := config.Load()
	srv := &server.Server{
		Router:           mux.NewRouter().UseEncodedPath(),
		Config:           cfg,
		RecordsStore:     mocks.records,
		SubmissionsStore: mocks.submissions,
		FetchedStore:     mocks.fetched,
		NotesStore:       mocks.notes,
		HealthStore:      mocks.health,
		TokenMiddleware:  middleware.NewTokenAuthenticator(testTokenKey),
	}
	RegisterAll(srv)
	return srv, mocks
}

type mockStores struct {
	records     *MockRecordsStore
	submissions *MockSubmissionsStore
	fetched     *MockFetchedStore
	notes       *MockNotesStore
	health      *MockHealthStore
}

func authHeader(t *testing.T, roles ...string) string {
	t.Helper()
	token, err := middleware.Issue(testTokenKey, "tester", roles, time.Minute)
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(t *testing.T, srv *server.Server, method, path, body string, roles ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	req.Header.Set("Authorization", authHeader(t, roles...))
	rec := httptest.NewRecorder()
	srv.Router.ServeHTTP(rec, req)
	return rec
}

// MockRecordsStore implements store.RecordsStore for testing using testify/mock
type MockRecordsStore struct {
	mock.Mock
}

func (m *MockRecordsStore) Get(kind model.Kind, id uint) (*store.Record, error) {
	args := m.Called(kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Record), args.Error(1)
}

func (m *MockRecordsStore) FindByNaturalKey(kind model.Kind, naturalKey string) (*store.Record, error) {
	args := m.Called(kind, naturalKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Record), args.Error(1)
}

func (m *MockRecordsStore) CreateWithSubmission(rec store.NewRecord, internalJSON, submissionJSON []byte) (*store.Record, error) {
	args := m.Called(rec, internalJSON, submissionJSON)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Record), args.Error(1)
}

func (m *MockRecordsStore) Delete(kind model.Kind, id uint) error {
	args := m.Called(kind, id)
	return args.Error(0)
}

func (m *MockRecordsStore) ReadsByExperiment(experimentID uint) ([]store.Record, error) {
	args := m.Called(experimentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Record), args.Error(1)
}

// MockSubmissionsStore implements store.SubmissionsStore for testing using testify/mock
type MockSubmissionsStore struct {
	mock.Mock
}

func (m *MockSubmissionsStore) Get(id uint) (*store.Submission, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Submission), args.Error(1)
}

func (m *MockSubmissionsStore) Create(kind model.Kind, recordID *uint, internalJSON, submissionJSON []byte) (*store.Submission, error) {
	args := m.Called(kind, recordID, internalJSON, submissionJSON)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Submission), args.Error(1)
}

func (m *MockSubmissionsStore) Transition(id uint, next model.SubmissionStatus) (*store.Submission, error) {
	args := m.Called(id, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Submission), args.Error(1)
}

func (m *MockSubmissionsStore) ListByRecord(kind model.Kind, recordID uint) ([]store.Submission, error) {
	args := m.Called(kind, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Submission), args.Error(1)
}

// MockFetchedStore implements store.FetchedStore for testing using testify/mock
type MockFetchedStore struct {
	mock.Mock
}

func (m *MockFetchedStore) Append(kind model.Kind, recordID uint, accession string, rawJSON []byte) (*store.FetchedRecord, error) {
	args := m.Called(kind, recordID, accession, rawJSON)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.FetchedRecord), args.Error(1)
}

func (m *MockFetchedStore) Latest(kind model.Kind, recordID uint) (*store.FetchedRecord, error) {
	args := m.Called(kind, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.FetchedRecord), args.Error(1)
}

func (m *MockFetchedStore) ListByRecord(kind model.Kind, recordID uint) ([]store.FetchedRecord, error) {
	args := m.Called(kind, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.FetchedRecord), args.Error(1)
}

// MockNotesStore implements store.NotesStore for testing using testify/mock
type MockNotesStore struct {
	mock.Mock
}

func (m *MockNotesStore) GetNote(id uint) (*store.GenomeNote, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.GenomeNote), args.Error(1)
}

func (m *MockNotesStore) CreateNote(organismID uint, title, body string) (*store.GenomeNote, error) {
	args := m.Called(organismID, title, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.GenomeNote), args.Error(1)
}

func (m *MockNotesStore) ListNotesByOrganism(organismID uint) ([]store.GenomeNote, error) {
	args := m.Called(organismID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.GenomeNote), args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func (m *MockHealthStore) CheckConnectivity() error {
	args := m.Called()
	return args.Error(0)
}
