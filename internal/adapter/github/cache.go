package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/m-zajac/ghcontributors/internal/app"
	"github.com/m-zajac/ghcontributors/internal/metrics"
)

// CachedClient wraps github client with caching layer.
type CachedClient struct {
	client            app.GithubClient
	contributorsCache *lru.Cache
	ttl               time.Duration
}

// NewCachedClient creates new CachedClient instance.
func NewCachedClient(client app.GithubClient, size int, ttl time.Duration) (*CachedClient, error) {
	if size <= 0 {
		return nil, errors.New("cache size must be greater than 0")
	}
	contributorsCache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache for contributors: %w", err)
	}

	return &CachedClient{
		client:            client,
		contributorsCache: contributorsCache,
		ttl:               ttl,
	}, nil
}

// Contributors returns contributors of given github project.
func (c *CachedClient) Contributors(ctx context.Context, owner string, name string, limit int) ([]app.Contributor, error) {
	key := c.contributorsCacheKey(owner, name)
	val, ok := c.contributorsCache.Get(key)
	if ok {
		entry := val.(contributorsCacheEntry)
		if entryCovers(entry.limit, len(entry.data), limit) && entry.created.Add(c.ttl).After(time.Now()) {
			metrics.CacheHits.WithLabelValues("lru").Inc()
			return app.Truncate(entry.data, limit), nil
		}
	}
	metrics.CacheMisses.WithLabelValues("lru").Inc()

	contributors, err := c.client.Contributors(ctx, owner, name, limit)
	if err != nil {
		return contributors, err
	}

	entry := contributorsCacheEntry{
		created: time.Now(),
		limit:   limit,
		data:    contributors,
	}
	c.contributorsCache.Add(key, entry)

	return app.Truncate(contributors, limit), nil
}

func (c *CachedClient) contributorsCacheKey(owner string, name string) string {
	return owner + "/" + name
}

type contributorsCacheEntry struct {
	created time.Time
	limit   int
	data    []app.Contributor
}

// entryCovers tells if data fetched with entryLimit can answer request with given limit.
// Limits outside <1..maxPerPage> fetch github's default page, so only its length tells what it covers.
func entryCovers(entryLimit int, entryLen int, limit int) bool {
	switch {
	case limit == entryLimit:
		return true
	case limit <= 0:
		return false
	case entryLimit > 0 && entryLimit <= maxPerPage:
		return entryLimit >= limit
	default:
		return entryLen >= limit
	}
}
