package domain

// Listing is one normalized job opening derived from one feed item.
// Derived fields (Location, OpenedAtFormatted) are computed once at parse
// time; a Listing is never mutated after construction.
type Listing struct {
	Code              string `json:"code,omitempty"`
	Title             string `json:"title"`
	City              string `json:"city,omitempty"`
	State             string `json:"state,omitempty"`
	Location          string `json:"location"`                    // "city/state", city alone, or ""
	ActivityArea      string `json:"activityArea,omitempty"`      // structured tag or recovered from description
	Positions         int    `json:"positions"`                   // always >= 1
	OpenedAt          string `json:"openedAt,omitempty"`          // raw date text from the feed
	OpenedAtFormatted string `json:"openedAtFormatted,omitempty"` // dd/mm/yyyy, or "" when unparseable
	Link              string `json:"link,omitempty"`
	Description       string `json:"description,omitempty"`
}

// FormatLocation derives the display location from city/state.
func FormatLocation(city, state string) string {
	switch {
	case city != "" && state != "":
		return city + "/" + state
	case city != "":
		return city
	default:
		return ""
	}
}
