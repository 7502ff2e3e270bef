// Package fetch downloads track audio over HTTP and keeps recently played
// tracks in memory so repeats and quiz reveals do not hit the network again.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/karlseguin/ccache/v3"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultCacheItems = 32
	DefaultTTL        = time.Hour
	DefaultTimeout    = 30 * time.Second

	// maxBodySize caps a single download.
	maxBodySize = 64 << 20
)

var ErrStatus = errors.New("unexpected HTTP status")

// Config tunes a Client.
type Config struct {
	CacheItems int
	TTL        time.Duration
	Timeout    time.Duration
}

// Client fetches URLs through an LRU byte cache. Concurrent requests for
// the same URL share one download.
type Client struct {
	http  *http.Client
	cache *ccache.Cache[[]byte]
	group singleflight.Group
	ttl   time.Duration
}

func New(cfg Config) *Client {
	if cfg.CacheItems <= 0 {
		cfg.CacheItems = DefaultCacheItems
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		cache: ccache.New(
			ccache.Configure[[]byte]().
				MaxSize(int64(cfg.CacheItems)).
				GetsPerPromote(3).
				ItemsToPrune(1),
		),
		ttl: cfg.TTL,
	}
}

// Fetch returns the body of url, from cache when possible.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if item := c.cache.Get(url); item != nil && !item.Expired() {
		return item.Value(), nil
	}

	v, err, _ := c.group.Do(url, func() (any, error) {
		data, err := c.download(ctx, url)
		if err != nil {
			return nil, err
		}
		c.cache.Set(url, data, c.ttl)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Cached reports whether url is in the cache and fresh.
func (c *Client) Cached(url string) bool {
	item := c.cache.Get(url)
	return item != nil && !item.Expired()
}

func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
}

// Close stops the cache's background worker.
func (c *Client) Close() {
	c.cache.Stop()
}
