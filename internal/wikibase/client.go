// Package wikibase is the HTTP client for a Wikibase knowledge base:
// entity search via wbsearchentities and full-record retrieval via
// Special:EntityData. Defaults target Wikidata.
package wikibase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ubmlab/kgenrich/internal/model"
	"github.com/ubmlab/kgenrich/internal/util"
	"github.com/ubmlab/kgenrich/internal/worker"
)

// ErrNotFound reports that the knowledge base has no record for an identifier
var ErrNotFound = errors.New("entity not found")

// Client talks to one Wikibase instance. All requests pass through a
// per-host rate limiter; responses are never cached.
type Client struct {
	httpClient    *http.Client
	apiURL        string
	entityDataURL string
	userAgent     string
	maxBytes      int64
	limiter       *worker.Limiter
	robots        *util.RobotsChecker // nil when robots checking is disabled
}

// NewClient creates a client from configuration
func NewClient(cfg model.WikibaseConfig) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		apiURL:        cfg.APIURL,
		entityDataURL: cfg.EntityDataURL,
		userAgent:     cfg.UserAgent,
		maxBytes:      cfg.MaxBodyBytes,
		limiter:       worker.NewLimiter(cfg.RequestsPerSecond, cfg.Burst),
	}
	if cfg.RespectRobots {
		client.robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}
	return client
}

// Search resolves a free-text string to candidate entity identifiers,
// in the service's relevance order, truncated to limit. An empty result
// is a valid response, not an error.
func (c *Client) Search(ctx context.Context, text string, limit int, language string) ([]string, error) {
	query := url.Values{}
	query.Set("action", "wbsearchentities")
	query.Set("search", text)
	query.Set("language", language)
	query.Set("format", "json")
	query.Set("limit", strconv.Itoa(limit))

	body, err := c.get(ctx, c.apiURL+"?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", text, err)
	}

	ids, err := decodeSearch(body)
	if err != nil {
		return nil, fmt.Errorf("decode search %q: %w", text, err)
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

// FetchEntity retrieves the full claim record for one identifier.
// A non-success response maps to ErrNotFound.
func (c *Client) FetchEntity(ctx context.Context, id string) (*model.EntityRecord, error) {
	body, err := c.get(ctx, c.entityDataURL+id+".json")
	if err != nil {
		if errors.Is(err, errStatus) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch entity %s: %w", id, err)
	}

	record, err := decodeEntity(id, body)
	if err != nil {
		return nil, fmt.Errorf("decode entity %s: %w", id, err)
	}
	return record, nil
}

// EntityURL derives the canonical URL for an identifier
func (c *Client) EntityURL(id string) string {
	return c.entityDataURL + id
}

// errStatus marks non-2xx responses so FetchEntity can map them to ErrNotFound
var errStatus = errors.New("unexpected status")

// get performs a rate-limited GET and returns the response body.
// Body reads are capped at maxBytes.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	if c.robots != nil && !c.robots.IsAllowed(ctx, rawURL) {
		return nil, fmt.Errorf("disallowed by robots.txt: %s", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d %s", errStatus, resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
