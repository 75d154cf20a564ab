package geocode

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	// cacheTTL is how long a resolved place stays cached. Place names move
	// rarely, so a long TTL is safe.
	cacheTTL = 15 * time.Minute

	// cacheSweepInterval is how often expired entries are purged.
	cacheSweepInterval = 5 * time.Minute
)

// Cached wraps another Geocoder and transparently caches successful
// resolutions in memory. Only positive results are cached: a NotFoundError or
// transport failure is always retried on the next call.
type Cached struct {
	inner Geocoder
	store *gocache.Cache
}

// NewCached wraps inner with a cache-aside layer.
func NewCached(inner Geocoder) *Cached {
	return &Cached{
		inner: inner,
		store: gocache.New(cacheTTL, cacheSweepInterval),
	}
}

// Geocode satisfies the Geocoder interface. It checks the cache first; on a
// miss it delegates to the inner Geocoder and stores the result.
func (c *Cached) Geocode(ctx context.Context, query string) (Place, error) {
	key := cacheKey(query)

	if v, ok := c.store.Get(key); ok {
		return v.(Place), nil
	}

	place, err := c.inner.Geocode(ctx, query)
	if err != nil {
		return Place{}, err
	}

	c.store.Set(key, place, gocache.DefaultExpiration)
	return place, nil
}

// cacheKey normalizes a query so that trivially different spellings of the
// same place share an entry.
func cacheKey(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}
