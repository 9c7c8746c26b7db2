package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	// defaultOperationTimeout is the timeout for individual Redis operations
	defaultOperationTimeout = 5 * time.Second

	renderedPagePrefix = "landing:html:"
	pageContentPrefix  = "landing:content:"
)

var (
	ErrCacheMiss     = errors.New("key not found")
	ErrCacheDisabled = errors.New("cache disabled")
)

type Cache struct {
	client  *redis.Client
	enabled bool
}

func NewCache(addr string, enable bool) (*Cache, error) {
	if !enable {
		return &Cache{enabled: false}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		PoolSize:     10,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{
		client:  client,
		enabled: true,
	}, nil
}

// Enabled reports whether the cache talks to Redis.
func (c *Cache) Enabled() bool {
	return c != nil && c.enabled
}

// operationContext bounds a Redis call by the default timeout.
func (c *Cache) operationContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, defaultOperationTimeout)
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if !c.Enabled() {
		return nil
	}

	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, jsonData, expiration).Err()
}

func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	if !c.Enabled() {
		return ErrCacheDisabled
	}

	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrCacheMiss
	} else if err != nil {
		return err
	}
	return json.Unmarshal(val, dest)
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if !c.Enabled() || len(keys) == 0 {
		return nil
	}

	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	return c.client.Del(ctx, keys...).Err()
}

func (c *Cache) DeletePattern(ctx context.Context, pattern string) error {
	if !c.Enabled() {
		return nil
	}

	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// RenderedPage is the cached HTML of a published page.
type RenderedPage struct {
	Mode string `json:"mode"`
	HTML string `json:"html"`
}

// CacheRenderedPage stores the published HTML of the page at slug.
func (c *Cache) CacheRenderedPage(ctx context.Context, slug string, page RenderedPage, ttl time.Duration) error {
	return c.Set(ctx, renderedPagePrefix+slug, page, ttl)
}

// GetCachedRenderedPage returns the cached HTML for slug. A miss and a
// disabled cache both report ok == false without an error.
func (c *Cache) GetCachedRenderedPage(ctx context.Context, slug string) (RenderedPage, bool, error) {
	var page RenderedPage
	err := c.Get(ctx, renderedPagePrefix+slug, &page)
	switch {
	case err == nil:
		return page, true, nil
	case errors.Is(err, ErrCacheMiss), errors.Is(err, ErrCacheDisabled):
		return RenderedPage{}, false, nil
	default:
		return RenderedPage{}, false, err
	}
}

// CachePageContent stores the public content document of the page at slug.
func (c *Cache) CachePageContent(ctx context.Context, slug string, content json.RawMessage, ttl time.Duration) error {
	return c.Set(ctx, pageContentPrefix+slug, content, ttl)
}

func (c *Cache) GetCachedPageContent(ctx context.Context, slug string) (json.RawMessage, error) {
	var content json.RawMessage
	if err := c.Get(ctx, pageContentPrefix+slug, &content); err != nil {
		return nil, err
	}
	return content, nil
}

// InvalidateLandingPage drops every cached representation of the page at slug.
func (c *Cache) InvalidateLandingPage(ctx context.Context, slug string) error {
	return c.Delete(ctx, renderedPagePrefix+slug, pageContentPrefix+slug)
}

// InvalidateLandingPages drops the cache of every page.
func (c *Cache) InvalidateLandingPages(ctx context.Context) error {
	if err := c.DeletePattern(ctx, renderedPagePrefix+"*"); err != nil {
		return err
	}
	return c.DeletePattern(ctx, pageContentPrefix+"*")
}
