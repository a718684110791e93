package store_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/graphload/store"
)

// recordedRequest captures what the fake store saw.
type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Headers  http.Header
	Body     string
}

// fakeStore is an httptest-backed RDF store stub with /query, /update and
// /gsp endpoints.
type fakeStore struct {
	server *httptest.Server

	mu            sync.Mutex
	requests      []recordedRequest
	queryResponse string
	updateStatus  int
	gspStatus     int
}

func (fs *fakeStore) set(mutate func(*fakeStore)) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	mutate(fs)
}

func newFakeStore(t *testing.T) *fakeStore {
	t.Helper()
	fs := &fakeStore{
		queryResponse: "<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n",
		updateStatus:  http.StatusNoContent,
		gspStatus:     http.StatusOK,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/query", func(w http.ResponseWriter, r *http.Request) {
		fs.record(r)
		fs.mu.Lock()
		response := fs.queryResponse
		fs.mu.Unlock()
		w.Header().Set("Content-Type", "application/n-triples")
		_, _ = io.WriteString(w, response)
	})
	mux.HandleFunc("/update", func(w http.ResponseWriter, r *http.Request) {
		fs.record(r)
		fs.mu.Lock()
		status := fs.updateStatus
		fs.mu.Unlock()
		w.WriteHeader(status)
	})
	mux.HandleFunc("/gsp", func(w http.ResponseWriter, r *http.Request) {
		fs.record(r)
		fs.mu.Lock()
		status := fs.gspStatus
		fs.mu.Unlock()
		w.WriteHeader(status)
	})

	fs.server = httptest.NewServer(mux)
	t.Cleanup(fs.server.Close)
	return fs
}

func (fs *fakeStore) record(r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.requests = append(fs.requests, recordedRequest{
		Method:   r.Method,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		Headers:  r.Header.Clone(),
		Body:     string(body),
	})
}

func (fs *fakeStore) recorded() []recordedRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]recordedRequest(nil), fs.requests...)
}

func (fs *fakeStore) client(opts ...store.Option) *store.Client {
	base := fs.server.URL
	return store.New(base+"/query", base+"/update", base+"/gsp", opts...)
}

func TestClient_Update(t *testing.T) {
	fs := newFakeStore(t)
	client := fs.client()

	err := client.Update(context.Background(), "INSERT DATA { <a> <b> <c> }")
	require.NoError(t, err)

	reqs := fs.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, "application/sparql-update", reqs[0].Headers.Get("Content-Type"))
	assert.Equal(t, "INSERT DATA { <a> <b> <c> }", reqs[0].Body)
}

func TestClient_Update_StatusError(t *testing.T) {
	fs := newFakeStore(t)
	fs.set(func(fs *fakeStore) { fs.updateStatus = http.StatusBadRequest })
	client := fs.client()

	err := client.Update(context.Background(), "bogus")
	require.Error(t, err)

	var statusErr *store.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.Status)
	assert.Equal(t, http.MethodPost, statusErr.Method)
}

func TestClient_Query(t *testing.T) {
	fs := newFakeStore(t)
	client := fs.client()

	result, err := client.Query(context.Background(), "CONSTRUCT { ?s ?p ?o } WHERE { ?s ?p ?o }")
	require.NoError(t, err)
	assert.Equal(t, fs.queryResponse, result)

	reqs := fs.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodGet, reqs[0].Method)
	assert.Equal(t, "application/n-triples", reqs[0].Headers.Get("Accept"))
	assert.Contains(t, reqs[0].RawQuery, "query=")
}

func TestClient_GSPWrites(t *testing.T) {
	fs := newFakeStore(t)
	client := fs.client()

	require.NoError(t, client.GSPPost(context.Background(), "http://example.org/alice", "<a> <b> <c> .\n"))
	require.NoError(t, client.GSPPut(context.Background(), "http://example.org/alice", "<a> <b> <d> .\n"))

	reqs := fs.recorded()
	require.Len(t, reqs, 2)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, http.MethodPut, reqs[1].Method)
	for _, req := range reqs {
		assert.Equal(t, "application/n-triples", req.Headers.Get("Content-Type"))
		assert.Contains(t, req.RawQuery, "graph=")
		assert.Contains(t, req.RawQuery, "alice")
	}
}

func TestClient_GSPDelete_AbsentGraphIsSuccess(t *testing.T) {
	fs := newFakeStore(t)
	client := fs.client()

	fs.set(func(fs *fakeStore) { fs.gspStatus = http.StatusOK })
	assert.NoError(t, client.GSPDelete(context.Background(), "http://example.org/alice"))

	fs.set(func(fs *fakeStore) { fs.gspStatus = http.StatusNotFound })
	assert.NoError(t, client.GSPDelete(context.Background(), "http://example.org/alice"))

	fs.set(func(fs *fakeStore) { fs.gspStatus = http.StatusInternalServerError })
	err := client.GSPDelete(context.Background(), "http://example.org/alice")
	var statusErr *store.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Status)
}

func TestClient_Reset(t *testing.T) {
	fs := newFakeStore(t)
	client := fs.client()

	seedFile := filepath.Join(t.TempDir(), "seed.nt")
	seedContent := "<http://example.org/alice> <http://example.org/p> <http://example.org/o> .\n"
	require.NoError(t, os.WriteFile(seedFile, []byte(seedContent), 0644))

	require.NoError(t, client.Reset(context.Background(), seedFile))

	reqs := fs.recorded()
	require.Len(t, reqs, 2)

	assert.Equal(t, "/update", reqs[0].Path)
	assert.Equal(t, "DROP ALL", reqs[0].Body)

	assert.Equal(t, "/gsp", reqs[1].Path)
	assert.Equal(t, http.MethodPut, reqs[1].Method)
	assert.Equal(t, "default", reqs[1].RawQuery)
	assert.Equal(t, "application/n-triples", reqs[1].Headers.Get("Content-Type"))
	assert.Equal(t, seedContent, reqs[1].Body)
}

func TestClient_TransportError(t *testing.T) {
	fs := newFakeStore(t)
	client := fs.client()
	fs.server.Close()

	err := client.Update(context.Background(), "DROP ALL")
	require.Error(t, err)

	var statusErr *store.StatusError
	assert.False(t, errors.As(err, &statusErr), "connection failure must not be a StatusError")
}
