// Package pokeapi is a small client for the public PokéAPI v2 REST service.
package pokeapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the public PokéAPI endpoint
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// ErrNotFound reports a lookup that produced no record, for any reason
var ErrNotFound = errors.New("pokemon not found")

// maxBody bounds a single response read
const maxBody = 8 << 20

// Cache stores raw response bodies keyed by URL
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Put(ctx context.Context, key string, body []byte)
}

// Client handles communication with PokéAPI
type Client struct {
	baseURL     string
	httpClient  *http.Client
	cache       Cache
	concurrency int
	log         zerolog.Logger
	meters      metric.MeterProvider
	metrics     *metrics
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache routes every GET through the cache
func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithConcurrency bounds parallel record fetches when loading a page
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithLogger sets the client logger
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithMeterProvider binds the request instruments to mp instead of the global provider
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *Client) { c.meters = mp }
}

// New creates a new API client
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		concurrency: 8,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.metrics = newMetrics(c.meters)
	return c
}

// NormalizeKey trims and lower-cases a name or id
func NormalizeKey(nameOrID string) string {
	return strings.ToLower(strings.TrimSpace(nameOrID))
}

// FetchPokemon looks up one record by name or id
// Every failure wraps ErrNotFound; the underlying cause stays reachable through errors.Is/As
func (c *Client) FetchPokemon(ctx context.Context, nameOrID string) (*Pokemon, error) {
	key := NormalizeKey(nameOrID)
	if key == "" {
		return nil, fmt.Errorf("fetch pokemon: empty key: %w", ErrNotFound)
	}

	body, err := c.get(ctx, c.baseURL+"/pokemon/"+url.PathEscape(key), "pokemon")
	if err != nil {
		return nil, fmt.Errorf("fetch pokemon %q: %w", key, asNotFound(err))
	}

	var p Pokemon
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("fetch pokemon %q: decode: %w: %w", key, ErrNotFound, err)
	}
	if p.ID == 0 && p.Name == "" {
		return nil, fmt.Errorf("fetch pokemon %q: empty record: %w", key, ErrNotFound)
	}
	p.normalize()
	return &p, nil
}

// FetchPage loads limit records starting at offset, ordered by ascending id
// Past the end of the index the page is empty; any record that fails fails the whole page
func (c *Client) FetchPage(ctx context.Context, limit, offset int) (*Page, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("fetch page: limit must be positive, got %d", limit)
	}
	if offset < 0 {
		offset = 0
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	body, err := c.get(ctx, c.baseURL+"/pokemon?"+q.Encode(), "list")
	if err != nil {
		return nil, fmt.Errorf("fetch page offset=%d: %w", offset, err)
	}

	var list listResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("fetch page offset=%d: decode: %w", offset, err)
	}

	page := &Page{Limit: limit, Offset: offset, Count: list.Count}
	if len(list.Results) == 0 {
		return page, nil
	}

	// Each goroutine owns its slot, so the index order is the offset order
	records := make([]*Pokemon, len(list.Results))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, res := range list.Results {
		g.Go(func() error {
			p, err := c.FetchPokemon(gctx, res.Name)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				return fmt.Errorf("entry %d %q: %w", offset+i, res.Name, err)
			}
			records[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.log.Warn().Err(err).Int("offset", offset).Msg("Page fetch failed")
		return nil, fmt.Errorf("fetch page offset=%d: %w", offset, err)
	}

	page.Entries = records
	return page, nil
}

// FetchArtwork downloads and decodes a sprite image
func (c *Client) FetchArtwork(ctx context.Context, artworkURL string) (image.Image, error) {
	if artworkURL == "" {
		return nil, fmt.Errorf("fetch artwork: empty url")
	}
	body, err := c.get(ctx, artworkURL, "artwork")
	if err != nil {
		return nil, fmt.Errorf("fetch artwork: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("fetch artwork: decode: %w", err)
	}
	return img, nil
}

// statusError carries a non-200 response code
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

func asNotFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrNotFound, err)
}

// get performs a cached GET and returns the body of a 200 response
func (c *Client) get(ctx context.Context, rawURL, kind string) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, rawURL); ok {
			c.metrics.cacheHit(ctx, kind)
			return body, nil
		}
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, image/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.request(ctx, kind, 0, time.Since(start))
		return nil, fmt.Errorf("request %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	c.metrics.request(ctx, kind, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	c.log.Debug().Str("url", rawURL).Int("bytes", len(body)).Dur("took", time.Since(start)).Msg("Fetched")
	if c.cache != nil {
		c.cache.Put(ctx, rawURL, body)
	}
	return body, nil
}
