package updater

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	entries map[string][]byte
}

func newMemStore() *memStore { return &memStore{entries: map[string][]byte{}} }

func (m *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.entries[key]
	return v, ok, nil
}
func (m *memStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.entries[key] = value
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
func (m *memStore) ExpiresAt(_ context.Context, _ string) (time.Time, bool, error) {
	return time.Time{}, false, nil
}

func TestCompareVersions(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.1", "1.0.0", 1},
		{"1.0.0", "1.0.1", -1},
		{"2.0", "1.9.9", 1},
		{"1.10.0", "1.9.0", 1},
		{"1.0", "1.0.0", 0},
		{"v1.2.0", "1.1.0", 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CompareVersions(tc.a, tc.b), "%s vs %s", tc.a, tc.b)
	}
}

func TestCheckReportsNewerRelease(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/repos/acme/vagas/releases/latest", r.URL.Path)
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		fmt.Fprint(w, `{
			"tag_name": "v1.4.0",
			"body": "corrige parser",
			"published_at": "2023-06-01T12:00:00Z",
			"zipball_url": "https://example.com/zipball",
			"assets": [
				{"name": "vagas-1.4.0.tar.gz", "browser_download_url": "https://example.com/tar"},
				{"name": "vagas-1.4.0.zip", "browser_download_url": "https://example.com/zip"}
			]
		}`)
	}))
	defer srv.Close()

	st := newMemStore()
	c := NewChecker(st, "acme/vagas", "1.3.0").WithBaseURL(srv.URL)

	rel, err := c.Check(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", rel.Version)
	assert.True(t, rel.Newer)
	assert.Equal(t, "https://example.com/zip", rel.DownloadURL, "uploaded .zip asset beats the zipball")
	assert.Equal(t, 1, calls)

	// Second check is served from cache.
	rel, err = c.Check(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", rel.Version)
	assert.Equal(t, 1, calls)

	// force bypasses the cache.
	_, err = c.Check(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCheckCurrentIsLatest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tag_name": "v1.3.0", "zipball_url": "https://example.com/zipball"}`)
	}))
	defer srv.Close()

	c := NewChecker(newMemStore(), "acme/vagas", "1.3.0").WithBaseURL(srv.URL)

	rel, err := c.Check(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, rel.Newer)
	assert.Equal(t, "https://example.com/zipball", rel.DownloadURL)
}

func TestCheckAPIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewChecker(newMemStore(), "acme/vagas", "1.0.0").WithBaseURL(srv.URL)

	_, err := c.Check(context.Background(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
