package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vagasboard-engine/internal/domain"
)

type memEntry struct {
	value     []byte
	expiresAt time.Time
}

// memStore is an in-memory Store for gateway tests.
type memStore struct {
	entries map[string]memEntry
	sets    int
	getErr  error
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string]memEntry)}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	e, ok := m.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.sets++
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

func someListings() []domain.Listing {
	return []domain.Listing{
		{Code: "V1", Title: "Analista", City: "Salvador", State: "BA", Location: "Salvador/BA", Positions: 2},
	}
}

func TestGetOrFetchMissThenHit(t *testing.T) {
	st := newMemStore()
	g := NewGateway(st)
	ctx := context.Background()

	calls := 0
	producer := func(context.Context) ([]domain.Listing, error) {
		calls++
		return someListings(), nil
	}

	first, err := g.GetOrFetch(ctx, "abc", 0, 30, producer)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, someListings(), first)

	second, err := g.GetOrFetch(ctx, "abc", 0, 30, producer)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "second call must be served from cache")
	assert.Equal(t, first, second)
}

func TestGetOrFetchProducerErrorNotCached(t *testing.T) {
	st := newMemStore()
	g := NewGateway(st)
	ctx := context.Background()

	boom := errors.New("feed down")
	_, err := g.GetOrFetch(ctx, "abc", 0, 30, func(context.Context) ([]domain.Listing, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Zero(t, st.sets, "errors must never be written to the store")

	// Next call goes to the producer again.
	listings, err := g.GetOrFetch(ctx, "abc", 0, 30, func(context.Context) ([]domain.Listing, error) {
		return someListings(), nil
	})
	require.NoError(t, err)
	assert.Len(t, listings, 1)
}

func TestGetOrFetchCorruptEntryRefetches(t *testing.T) {
	st := newMemStore()
	g := NewGateway(st)
	ctx := context.Background()

	key := Key("abc", 0)
	require.NoError(t, st.Set(ctx, key, []byte("not json"), time.Minute))
	st.sets = 0

	listings, err := g.GetOrFetch(ctx, "abc", 0, 30, func(context.Context) ([]domain.Listing, error) {
		return someListings(), nil
	})
	require.NoError(t, err)
	assert.Len(t, listings, 1)
	assert.Equal(t, 1, st.sets, "fresh result replaces the corrupt entry")
}

func TestGetOrFetchStoreReadFailureFallsThrough(t *testing.T) {
	st := newMemStore()
	st.getErr = errors.New("store offline")
	g := NewGateway(st)

	listings, err := g.GetOrFetch(context.Background(), "abc", 0, 30, func(context.Context) ([]domain.Listing, error) {
		return someListings(), nil
	})
	require.NoError(t, err)
	assert.Len(t, listings, 1)
}

func TestClampTTL(t *testing.T) {
	assert.Equal(t, time.Minute, ClampTTL(0))
	assert.Equal(t, time.Minute, ClampTTL(-5))
	assert.Equal(t, 30*time.Minute, ClampTTL(30))
	assert.Equal(t, 1440*time.Minute, ClampTTL(1440))
	assert.Equal(t, 1440*time.Minute, ClampTTL(99999))
}

func TestKeyIsStableAndParamSensitive(t *testing.T) {
	assert.Equal(t, Key("abc", 5), Key("abc", 5))
	assert.NotEqual(t, Key("abc", 5), Key("abc", 6))
	assert.NotEqual(t, Key("abc", 5), Key("abd", 5))
	assert.True(t, strings.HasPrefix(Key("abc", 5), "vagas_"))
}

func TestClearForCIDOnlyTouchesOneAccount(t *testing.T) {
	st := newMemStore()
	g := NewGateway(st)
	ctx := context.Background()

	produce := func(context.Context) ([]domain.Listing, error) { return someListings(), nil }
	for _, limit := range []int{0, 5, 10} {
		_, err := g.GetOrFetch(ctx, "account-a", limit, 30, produce)
		require.NoError(t, err)
	}
	_, err := g.GetOrFetch(ctx, "account-b", 0, 30, produce)
	require.NoError(t, err)

	removed, err := g.ClearForCID(ctx, "account-a")
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
	assert.Len(t, st.entries, 1, "account-b must survive")

	removed, err = g.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Empty(t, st.entries)
}

func TestEntryInfo(t *testing.T) {
	st := newMemStore()
	g := NewGateway(st)
	ctx := context.Background()

	_, ok, err := g.EntryInfo(ctx, "abc", 0)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = g.GetOrFetch(ctx, "abc", 0, 30, func(context.Context) ([]domain.Listing, error) {
		return someListings(), nil
	})
	require.NoError(t, err)

	info, ok, err := g.EntryInfo(ctx, "abc", 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Key("abc", 0), info.Key)
	assert.False(t, info.Expired)
	assert.Greater(t, info.RemainingSeconds, int64(0))
}
