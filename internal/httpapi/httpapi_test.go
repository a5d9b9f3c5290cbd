package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vagasboard-engine/internal/board"
	"vagasboard-engine/internal/cache"
	"vagasboard-engine/internal/config"
	"vagasboard-engine/internal/events"
	"vagasboard-engine/internal/kombo"
)

type memEntry struct {
	value     []byte
	expiresAt time.Time
}

type memStore struct {
	entries map[string]memEntry
}

func newMemStore() *memStore { return &memStore{entries: map[string]memEntry{}} }

func (m *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	e, ok := m.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false, nil
	}
	return e.value, true, nil
}
func (m *memStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.entries[key] = memEntry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}
func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.entries, key)
	return nil
}
func (m *memStore) DeleteByPrefix(_ context.Context, prefix string) (int, error) {
	n := 0
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
			n++
		}
	}
	return n, nil
}
func (m *memStore) ExpiresAt(_ context.Context, key string) (time.Time, bool, error) {
	e, ok := m.entries[key]
	if !ok {
		return time.Time{}, false, nil
	}
	return e.expiresAt, true, nil
}

// testDeps wires Deps against an in-memory store and a stub feed server.
func testDeps(t *testing.T, feed http.HandlerFunc) Deps {
	t.Helper()

	srv := httptest.NewServer(feed)
	t.Cleanup(srv.Close)

	renderer, err := board.NewRenderer()
	require.NoError(t, err)

	var cfg config.Config
	cfg.Provider.CID = "test-cid"
	cfg.Cache.TTLMinutes = 30

	var cfgVal atomic.Value
	cfgVal.Store(cfg)

	var status atomic.Value
	status.Store(FetchStatus{})

	return Deps{
		Gateway:       cache.NewGateway(newMemStore()),
		Client:        kombo.NewClient(kombo.WithBaseURL(srv.URL)),
		Renderer:      renderer,
		Hub:           events.NewHub(),
		CfgVal:        &cfgVal,
		FetchStatus:   &status,
		OperatorToken: func() (string, error) { return "sekret", nil },
	}
}

func okFeed(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, `<rss><channel><item><title>Analista</title><cidade>Salvador</cidade><estado>BA</estado></item></channel></rss>`)
}

func brokenFeed(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "maintenance", http.StatusServiceUnavailable)
}

func TestBoardRender(t *testing.T) {
	mux := NewMux(testDeps(t, okFeed))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/board", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Analista")
	assert.Contains(t, rec.Body.String(), "Salvador/BA")
}

func TestBoardErrorHiddenFromAnonymous(t *testing.T) {
	mux := NewMux(testDeps(t, brokenFeed))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/board", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, strings.TrimSpace(rec.Body.String()), "anonymous visitors must see nothing on failure")
}

func TestBoardErrorShownToOperator(t *testing.T) {
	mux := NewMux(testDeps(t, brokenFeed))

	req := httptest.NewRequest(http.MethodGet, "/board", nil)
	req.Header.Set("X-Operator-Token", "sekret")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), "vagas-error")
	assert.Contains(t, rec.Body.String(), "503")
}

func TestListingsJSON(t *testing.T) {
	mux := NewMux(testDeps(t, okFeed))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Analista"`)
	assert.Contains(t, rec.Body.String(), `"count":1`)
}

func TestListingsErrorDetailGated(t *testing.T) {
	mux := NewMux(testDeps(t, brokenFeed))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_error")
	assert.NotContains(t, rec.Body.String(), "503", "detail is operator-only")

	req := httptest.NewRequest(http.MethodGet, "/listings", nil)
	req.Header.Set("Authorization", "Bearer sekret")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), "503")
}

func TestCacheInfoAndClear(t *testing.T) {
	mux := NewMux(testDeps(t, okFeed))

	infoReq := func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/cache/info", nil)
		req.Header.Set("X-Operator-Token", "sekret")
		return req
	}

	// Info is operator-only.
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cache/info", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, infoReq())
	assert.Contains(t, rec.Body.String(), `"cached":false`)

	// Populate via the board, then the entry shows up.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/board", nil))

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, infoReq())
	assert.Contains(t, rec.Body.String(), `"cached":true`)

	// Clear requires the operator token.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cache/clear", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/cache/clear", nil)
	req.Header.Set("X-Operator-Token", "sekret")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"removed":1`)
}

func TestBoardQueryOverrides(t *testing.T) {
	mux := NewMux(testDeps(t, okFeed))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/board?layout=list", nil))
	assert.Contains(t, rec.Body.String(), "vagas-list-item")

	// A location filter that matches nothing yields the empty state.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/board?location=Manaus", nil))
	assert.Contains(t, rec.Body.String(), "vagas-empty")
}

func TestConfigRequiresOperator(t *testing.T) {
	mux := NewMux(testDeps(t, okFeed))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/config", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/config", nil)
	req.Header.Set("X-Operator-Token", "sekret")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test-cid")
}

func TestMethodNotAllowed(t *testing.T) {
	mux := NewMux(testDeps(t, okFeed))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/board", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth(t *testing.T) {
	mux := NewMux(testDeps(t, okFeed))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "true")
}

func TestFetchStatusTracksFailures(t *testing.T) {
	d := testDeps(t, brokenFeed)
	mux := NewMux(d)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/board", nil))

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings/status", nil))
	assert.Contains(t, rec.Body.String(), "last_error")
	assert.Contains(t, rec.Body.String(), "503")
}
