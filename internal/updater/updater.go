// Package updater checks GitHub for a newer release of the engine.
package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"vagasboard-engine/internal/cache"
)

const (
	apiBaseURL    = "https://api.github.com"
	acceptHeader  = "application/vnd.github.v3+json"
	checkCacheKey = "vagas_update_check"
	checkCacheTTL = 12 * time.Hour
)

// Release is the answer to "is there something newer than what I run".
type Release struct {
	Version     string    `json:"version"`
	TagName     string    `json:"tagName"`
	Notes       string    `json:"notes"`
	PublishedAt time.Time `json:"publishedAt"`
	DownloadURL string    `json:"downloadUrl"`
	Newer       bool      `json:"newer"`
}

type githubRelease struct {
	TagName     string    `json:"tag_name"`
	Body        string    `json:"body"`
	PublishedAt time.Time `json:"published_at"`
	HTMLURL     string    `json:"html_url"`
	ZipballURL  string    `json:"zipball_url"`
	Assets      []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// Checker asks the GitHub releases API for the latest release of a repo and
// caches the verdict so repeated UI loads don't burn API quota.
type Checker struct {
	hc      *http.Client
	store   cache.Store
	limiter *rate.Limiter
	baseURL string

	repo    string // owner/name
	current string
}

func NewChecker(store cache.Store, repo, currentVersion string) *Checker {
	return &Checker{
		hc:      &http.Client{Timeout: 15 * time.Second},
		store:   store,
		limiter: rate.NewLimiter(rate.Every(time.Minute), 3),
		baseURL: apiBaseURL,
		repo:    repo,
		current: currentVersion,
	}
}

// WithBaseURL points the checker at a different API host. Tests use this.
func (c *Checker) WithBaseURL(u string) *Checker {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

// Check returns the latest release, served from cache when a recent check
// exists. force bypasses the cache.
func (c *Checker) Check(ctx context.Context, force bool) (Release, error) {
	if !force && c.store != nil {
		if raw, ok, err := c.store.Get(ctx, checkCacheKey); err == nil && ok {
			var rel Release
			if json.Unmarshal(raw, &rel) == nil {
				return rel, nil
			}
			_ = c.store.Delete(ctx, checkCacheKey)
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return Release{}, err
	}

	rel, err := c.fetchLatest(ctx)
	if err != nil {
		return Release{}, err
	}

	if c.store != nil {
		if raw, err := json.Marshal(rel); err == nil {
			_ = c.store.Set(ctx, checkCacheKey, raw, checkCacheTTL)
		}
	}
	return rel, nil
}

func (c *Checker) fetchLatest(ctx context.Context) (Release, error) {
	u := fmt.Sprintf("%s/repos/%s/releases/latest", c.baseURL, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Release{}, err
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.hc.Do(req)
	if err != nil {
		return Release{}, fmt.Errorf("release check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Release{}, fmt.Errorf("release check: github returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Release{}, err
	}

	var gh githubRelease
	if err := json.Unmarshal(body, &gh); err != nil {
		return Release{}, fmt.Errorf("release check: bad payload: %w", err)
	}

	version := strings.TrimPrefix(strings.TrimSpace(gh.TagName), "v")
	rel := Release{
		Version:     version,
		TagName:     gh.TagName,
		Notes:       gh.Body,
		PublishedAt: gh.PublishedAt,
		DownloadURL: downloadURL(gh),
		Newer:       CompareVersions(version, c.current) > 0,
	}
	return rel, nil
}

// downloadURL prefers an uploaded .zip asset over the auto-generated zipball.
func downloadURL(gh githubRelease) string {
	for _, a := range gh.Assets {
		if strings.HasSuffix(strings.ToLower(a.Name), ".zip") {
			return a.BrowserDownloadURL
		}
	}
	return gh.ZipballURL
}

// CompareVersions compares dotted numeric versions: -1, 0, or 1.
// Non-numeric segments compare as 0.
func CompareVersions(a, b string) int {
	as := strings.Split(strings.TrimPrefix(a, "v"), ".")
	bs := strings.Split(strings.TrimPrefix(b, "v"), ".")
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(as) {
			av, _ = strconv.Atoi(strings.TrimSpace(as[i]))
		}
		if i < len(bs) {
			bv, _ = strconv.Atoi(strings.TrimSpace(bs[i]))
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}
