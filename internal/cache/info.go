package cache

import (
	"context"
	"time"
)

// Info describes the current cache entry for a (cid, limit) pair.
type Info struct {
	Key              string    `json:"key"`
	ExpiresAt        time.Time `json:"expiresAt"`
	RemainingSeconds int64     `json:"remainingSeconds"`
	Expired          bool      `json:"expired"`
}

// EntryInfo inspects the store's expiry record for a (cid, limit) pair.
// ok is false when no entry exists at all.
func (g *Gateway) EntryInfo(ctx context.Context, cid string, limit int) (Info, bool, error) {
	key := Key(cid, limit)

	expiresAt, ok, err := g.store.ExpiresAt(ctx, key)
	if err != nil || !ok {
		return Info{}, false, err
	}

	remaining := time.Until(expiresAt)
	info := Info{
		Key:       key,
		ExpiresAt: expiresAt,
		Expired:   remaining <= 0,
	}
	if remaining > 0 {
		info.RemainingSeconds = int64(remaining.Seconds())
	}

	return info, true, nil
}
