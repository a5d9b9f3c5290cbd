package httpapi

import (
	"context"
	"time"

	"vagasboard-engine/internal/config"
	"vagasboard-engine/internal/domain"
	"vagasboard-engine/internal/events"
)

// fetchListings runs the cache gateway for the configured account. When the
// gateway had to hit the feed (cache miss), the fetch status is updated and a
// refresh event is published.
func (d Deps) fetchListings(ctx context.Context, cfg config.Config) ([]domain.Listing, error) {
	cid := cfg.Provider.CID
	limit := cfg.Provider.Limit

	ttl := cfg.Cache.TTLMinutes
	if ttl == 0 {
		ttl = cfg.Board.CacheTTLMinutes
	}

	fetched := false
	listings, err := d.Gateway.GetOrFetch(ctx, cid, limit, ttl, func(ctx context.Context) ([]domain.Listing, error) {
		fetched = true
		return d.Client.FetchListings(ctx, cid, limit)
	})

	if fetched && d.FetchStatus != nil {
		now := time.Now().UTC().Format(time.RFC3339)
		st := FetchStatus{LastFetchAt: now}
		if prev, ok := d.FetchStatus.Load().(FetchStatus); ok {
			st.LastOkAt = prev.LastOkAt
			st.LastCount = prev.LastCount
		}
		if err != nil {
			st.LastError = err.Error()
		} else {
			st.LastOkAt = now
			st.LastCount = len(listings)
		}
		d.FetchStatus.Store(st)

		if err == nil && d.Hub != nil {
			d.Hub.Publish(events.MakeEvent("", events.TypeCacheRefreshed, 1, map[string]any{
				"cid":   cid,
				"count": len(listings),
			}))
		}
	}

	return listings, err
}
