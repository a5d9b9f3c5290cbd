// Package cache implements a get-or-compute gateway over an injected
// expiring key-value store, keyed by a hash of the request parameters.
package cache

import (
	"context"
	"time"

	"vagasboard-engine/internal/domain"
)

// Store is the expiring key-value capability the gateway runs on. Keys are
// opaque strings; values are raw bytes. Get on a missing or expired key
// returns (nil, false, nil).
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
	// ExpiresAt reports the key's expiry; ok is false when the key is absent.
	ExpiresAt(ctx context.Context, key string) (time.Time, bool, error)
}

const (
	minTTLMinutes = 1
	maxTTLMinutes = 1440 // 24h
)

// Producer fetches fresh listings on a cache miss.
type Producer func(ctx context.Context) ([]domain.Listing, error)

// Gateway is a stateless wrapper; all state lives in the Store.
type Gateway struct {
	store Store
}

func NewGateway(store Store) *Gateway {
	return &Gateway{store: store}
}

// ClampTTL bounds a TTL in minutes to [1, 1440].
func ClampTTL(minutes int) time.Duration {
	if minutes < minTTLMinutes {
		minutes = minTTLMinutes
	}
	if minutes > maxTTLMinutes {
		minutes = maxTTLMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// GetOrFetch returns the cached listings for (cid, limit) or, on a miss,
// invokes producer and caches a successful result for ttlMinutes (clamped).
// Producer errors are returned as-is and never cached. A store read failure
// falls through to the producer rather than failing the request.
func (g *Gateway) GetOrFetch(ctx context.Context, cid string, limit, ttlMinutes int, producer Producer) ([]domain.Listing, error) {
	key := Key(cid, limit)

	if raw, ok, err := g.store.Get(ctx, key); err == nil && ok {
		if listings, derr := decodeListings(raw); derr == nil {
			return listings, nil
		}
		// Unreadable entry: drop it and refetch.
		_ = g.store.Delete(ctx, key)
	}

	listings, err := producer(ctx)
	if err != nil {
		return nil, err
	}

	if raw, eerr := encodeListings(listings); eerr == nil {
		// Best effort; serving the fresh result matters more than caching it.
		_ = g.store.Set(ctx, key, raw, ClampTTL(ttlMinutes))
	}

	return listings, nil
}

// Delete removes the cache entry for one (cid, limit) pair.
func (g *Gateway) Delete(ctx context.Context, cid string, limit int) error {
	return g.store.Delete(ctx, Key(cid, limit))
}

// Clear removes every listing entry, any account, any limit.
func (g *Gateway) Clear(ctx context.Context) (int, error) {
	return g.store.DeleteByPrefix(ctx, keyPrefix)
}

// ClearForCID removes every listing entry for one account.
func (g *Gateway) ClearForCID(ctx context.Context, cid string) (int, error) {
	return g.store.DeleteByPrefix(ctx, accountPrefix(cid))
}
