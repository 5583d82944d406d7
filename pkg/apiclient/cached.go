package apiclient

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackscope/pkg/analyzer"
	"github.com/matzehuels/stackscope/pkg/cache"
	"github.com/matzehuels/stackscope/pkg/observability"
)

// Cached serves responses from a cache.Cache before asking the wrapped
// Analyzer. Only successful responses are stored. Cache failures are logged
// and otherwise ignored.
type Cached struct {
	inner  Analyzer
	cache  cache.Cache
	ttl    time.Duration
	logger *log.Logger
}

// NewCached wraps inner. A ttl <= 0 keeps entries until the cache is cleared.
// If logger is nil, log.Default() is used.
func NewCached(inner Analyzer, c cache.Cache, ttl time.Duration, logger *log.Logger) *Cached {
	if logger == nil {
		logger = log.Default()
	}
	return &Cached{inner: inner, cache: c, ttl: ttl, logger: logger}
}

// Clear drops every cached response.
func (c *Cached) Clear(ctx context.Context) error {
	return c.cache.Clear(ctx)
}

func (c *Cached) Info(ctx context.Context, rawURL string) (*analyzer.RepoInfoResult, error) {
	return through(ctx, c, analyzer.KindInfo, rawURL, c.inner.Info)
}

func (c *Cached) Languages(ctx context.Context, rawURL string) (analyzer.LanguagesResult, error) {
	return through(ctx, c, analyzer.KindLanguages, rawURL, c.inner.Languages)
}

func (c *Cached) Technologies(ctx context.Context, rawURL string) (*analyzer.TechnologiesResult, error) {
	return through(ctx, c, analyzer.KindTechnologies, rawURL, c.inner.Technologies)
}

func (c *Cached) Schema(ctx context.Context, rawURL string) (*analyzer.SchemaResult, error) {
	return through(ctx, c, analyzer.KindSchema, rawURL, c.inner.Schema)
}

// through is the read-through path shared by every view.
func through[T any](ctx context.Context, c *Cached, endpoint, rawURL string, fetch func(context.Context, string) (T, error)) (T, error) {
	key := cache.ResponseKey(endpoint, rawURL)
	hooks := observability.Cache()

	var cached T
	hit, err := cache.GetJSON(ctx, c.cache, key, &cached)
	if err != nil {
		c.logger.Warn("cache read failed", "endpoint", endpoint, "err", err)
	}
	if hit {
		hooks.OnCacheHit(ctx, endpoint)
		c.logger.Debug("cache hit", "endpoint", endpoint, "url", rawURL)
		return cached, nil
	}
	hooks.OnCacheMiss(ctx, endpoint)

	res, err := fetch(ctx, rawURL)
	if err != nil {
		return res, err
	}
	data, err := json.Marshal(res)
	if err == nil {
		err = c.cache.Set(ctx, key, data, c.ttl)
	}
	if err != nil {
		c.logger.Warn("cache write failed", "endpoint", endpoint, "err", err)
		return res, nil
	}
	hooks.OnCacheSet(ctx, endpoint, len(data))
	return res, nil
}
