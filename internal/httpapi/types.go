package httpapi

// FetchStatus tracks the last feed fetch, for the status endpoint.
type FetchStatus struct {
	LastFetchAt string `json:"last_fetch_at"`
	LastOkAt    string `json:"last_ok_at"`
	LastError   string `json:"last_error"`
	LastCount   int    `json:"last_count"`
}
