package board

import (
	"strings"
	"time"

	"vagasboard-engine/internal/domain"
	"vagasboard-engine/internal/kombo"
)

// ApplyFilters runs the presentation-time filters over listings in order:
// location substring, category substring, minimum position count, recency
// window, then the display limit. All substring checks are case-insensitive.
// Listings without a parseable opening date pass the recency filter; the
// window only excludes items known to be older than it.
func ApplyFilters(listings []domain.Listing, s Settings, now time.Time) []domain.Listing {
	if len(listings) == 0 {
		return listings
	}

	var cutoff time.Time
	if s.RecencyDays > 0 {
		cutoff = now.AddDate(0, 0, -s.RecencyDays)
	}

	filtered := make([]domain.Listing, 0, len(listings))

	for _, l := range listings {
		if s.FilterLocation != "" && !containsFold(l.Location, s.FilterLocation) {
			continue
		}
		if s.FilterCategory != "" && !containsFold(l.ActivityArea, s.FilterCategory) {
			continue
		}
		if s.MinPositions > 0 && l.Positions < s.MinPositions {
			continue
		}
		if !cutoff.IsZero() && l.OpenedAt != "" {
			if t, ok := kombo.ParseOpenedAt(l.OpenedAt); ok && t.Before(cutoff) {
				continue
			}
		}

		filtered = append(filtered, l)
	}

	if s.Limit > 0 && len(filtered) > s.Limit {
		filtered = filtered[:s.Limit]
	}

	return filtered
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}
