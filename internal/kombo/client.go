package kombo

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"vagasboard-engine/internal/domain"
)

const (
	// FeedBaseURL is the provider's feed endpoint; the account id is passed
	// as the codigo query parameter.
	FeedBaseURL = "https://www.kombo.com.br/feed.php"

	defaultTimeout = 15 * time.Second

	acceptHeader = "application/xml, text/xml, application/rss+xml"
	userAgent    = "VagasBoard/1.0 (+local)"
)

// Client fetches and parses the provider feed. It is the only component that
// touches the network for listings.
type Client struct {
	hc      *http.Client
	baseURL string
}

// Option tweaks a Client; used by tests to point at a local server.
type Option func(*Client)

// WithBaseURL overrides the feed endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		// TLS verification stays on; the default transport is fine.
		hc:      &http.Client{Timeout: defaultTimeout},
		baseURL: FeedBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchListings issues one GET for the account's feed and returns normalized
// listings. limit > 0 truncates to the first limit records in feed order.
// Failures come back as *FeedError; there is no automatic retry.
func (c *Client) FetchListings(ctx context.Context, cid string, limit int) ([]domain.Listing, error) {
	if cid == "" {
		return nil, &FeedError{Kind: ErrInvalidInput, Detail: "account id (CID) is required"}
	}

	feedURL := c.baseURL + "?" + url.Values{"codigo": {cid}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, &FeedError{Kind: ErrNetwork, Detail: err.Error(), Err: err}
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", userAgent)

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, &FeedError{Kind: ErrNetwork, Detail: err.Error(), Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &FeedError{Kind: ErrHTTP, Status: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &FeedError{Kind: ErrNetwork, Detail: err.Error(), Err: err}
	}
	if len(body) == 0 {
		return nil, &FeedError{Kind: ErrEmptyResponse}
	}

	listings, err := Parse(body)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(listings) > limit {
		listings = listings[:limit]
	}

	return listings, nil
}

// TestConnection fetches a single listing to verify the account id works.
func (c *Client) TestConnection(ctx context.Context, cid string) error {
	_, err := c.FetchListings(ctx, cid, 1)
	return err
}
