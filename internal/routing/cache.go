package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	gocache "github.com/patrickmn/go-cache"

	"github.com/heartiecodes/Social-Coding-DevOps/internal/geo"
)

const (
	// cacheTTL is how long a cached route entry remains valid. Traffic-free
	// GraphHopper estimates drift slowly, so minutes-scale reuse is safe.
	cacheTTL = 5 * time.Minute

	// cacheQueryTimeout is the deadline for each cache read/write query.
	cacheQueryTimeout = 5 * time.Second

	// geohashPrecision controls the spatial resolution of the endpoint
	// hashes. Precision 7 ≈ ±76m latitude / ±152m longitude cell, tight
	// enough that two distinct addresses rarely share a key.
	geohashPrecision = 7
)

// CacheStore abstracts the persistence layer for route caching.
// This interface makes it easy to swap the pgx implementation for an
// in-memory one (or a test double).
type CacheStore interface {
	// GetCachedRoute returns a cached Route for the given key, or (nil, nil)
	// when there is no valid (non-expired) entry.
	GetCachedRoute(ctx context.Context, key string) (*Route, error)

	// SetCachedRoute upserts a route entry with an expiry of now + cacheTTL.
	SetCachedRoute(ctx context.Context, key string, route *Route) error
}

// Logger is a printf-style logging function injected into Cached.
// Using a function type (rather than an interface) keeps the dependency
// minimal and makes test doubles trivial to write.
type Logger func(format string, args ...any)

// Cached wraps another Router and transparently caches its results.
// Cache keys combine geohashes of both endpoints with the travel mode.
type Cached struct {
	inner      Router
	store      CacheStore
	logger     Logger // called when async cache writes fail; nil = silent
	afterStore func() // optional hook called after every async store attempt; used in tests for synchronization
}

// CachedOption configures a Cached router.
type CachedOption func(*Cached)

// WithCacheLogger sets a logger that is called when the async cache write
// fails. In production, pass a log.Printf-compatible function. If not set,
// errors are silently dropped.
func WithCacheLogger(l Logger) CachedOption {
	return func(r *Cached) { r.logger = l }
}

// withAfterStore sets a hook called after every async store attempt (success
// or failure). Intended exclusively for test synchronization.
func withAfterStore(fn func()) CachedOption {
	return func(r *Cached) { r.afterStore = fn }
}

// NewCached wraps inner with a cache-aside layer backed by store.
func NewCached(inner Router, store CacheStore, opts ...CachedOption) *Cached {
	r := &Cached{inner: inner, store: store}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Route satisfies the Router interface. It checks the cache first; on a miss
// it delegates to the inner Router and persists the result.
func (r *Cached) Route(ctx context.Context, req Request) (*Route, error) {
	key := cacheKey(req)

	cached, err := r.store.GetCachedRoute(ctx, key)
	if err != nil {
		// Cache read failures are non-fatal: fall through to the real router.
		if r.logger != nil {
			r.logger("routing: cache: read failed (key=%s): %v", key, err)
		}
	}
	if cached != nil {
		return cached, nil
	}

	resp, err := r.inner.Route(ctx, req)
	if err != nil {
		return nil, err
	}

	// Persist asynchronously so cache-write latency stays off the hot path.
	// A background context avoids cancellation when the caller's context
	// expires right after the API call returns.
	go func() {
		storeCtx, cancel := context.WithTimeout(context.Background(), cacheQueryTimeout)
		defer cancel()

		if err := r.store.SetCachedRoute(storeCtx, key, resp); err != nil {
			if r.logger != nil {
				r.logger("routing: cache: async write failed (key=%s): %v", key, err)
			}
		}

		if r.afterStore != nil {
			r.afterStore()
		}
	}()

	return resp, nil
}

// cacheKey identifies a (origin cell, destination cell, mode) triple.
func cacheKey(req Request) string {
	return fmt.Sprintf("%s|%s|%s",
		geo.CellKey(req.Origin, geohashPrecision),
		geo.CellKey(req.Destination, geohashPrecision),
		req.Mode,
	)
}

// --- in-memory CacheStore implementation ---

// memCacheStore keeps entries in process memory. Suited to the CLI and to
// single-instance servers without a database.
type memCacheStore struct {
	c *gocache.Cache
}

// NewMemCacheStore creates an in-memory CacheStore.
func NewMemCacheStore() CacheStore {
	return &memCacheStore{c: gocache.New(cacheTTL, 2*cacheTTL)}
}

func (s *memCacheStore) GetCachedRoute(_ context.Context, key string) (*Route, error) {
	if v, ok := s.c.Get(key); ok {
		return v.(*Route), nil
	}
	return nil, nil
}

func (s *memCacheStore) SetCachedRoute(_ context.Context, key string, route *Route) error {
	s.c.Set(key, route, gocache.DefaultExpiration)
	return nil
}

// --- pgx-backed CacheStore implementation ---

// pgCacheStore is the shared-cache implementation backed by pgx, for server
// deployments where several instances should reuse each other's lookups.
type pgCacheStore struct {
	pool *pgxpool.Pool
}

// NewPgCacheStore creates a CacheStore backed by the given connection pool
// and ensures the cache table exists.
func NewPgCacheStore(ctx context.Context, pool *pgxpool.Pool) (CacheStore, error) {
	const schema = `
		CREATE TABLE IF NOT EXISTS route_cache (
			cache_key  TEXT PRIMARY KEY,
			route      JSONB NOT NULL,
			calc_ts    TIMESTAMPTZ NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		)`

	ctx, cancel := context.WithTimeout(ctx, cacheQueryTimeout)
	defer cancel()

	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("routing: cache: ensure schema: %w", err)
	}
	return &pgCacheStore{pool: pool}, nil
}

// GetCachedRoute queries route_cache for a valid (non-expired) entry.
func (s *pgCacheStore) GetCachedRoute(ctx context.Context, key string) (*Route, error) {
	ctx, cancel := context.WithTimeout(ctx, cacheQueryTimeout)
	defer cancel()

	const q = `
		SELECT route
		FROM route_cache
		WHERE cache_key  = $1
		  AND expires_at > NOW()`

	var raw []byte
	err := s.pool.QueryRow(ctx, q, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("routing: cache: get: %w", err)
	}

	var route Route
	if err := json.Unmarshal(raw, &route); err != nil {
		return nil, fmt.Errorf("routing: cache: decode entry: %w", err)
	}
	return &route, nil
}

// SetCachedRoute upserts a route entry into route_cache. The expiry time is
// computed in Go from cacheTTL so the SQL never encodes the TTL value.
func (s *pgCacheStore) SetCachedRoute(ctx context.Context, key string, route *Route) error {
	ctx, cancel := context.WithTimeout(ctx, cacheQueryTimeout)
	defer cancel()

	expiresAt := time.Now().Add(cacheTTL)

	raw, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("routing: cache: encode entry: %w", err)
	}

	const q = `
		INSERT INTO route_cache (cache_key, route, calc_ts, expires_at)
		VALUES ($1, $2, NOW(), $3)
		ON CONFLICT (cache_key)
		DO UPDATE SET
			route      = EXCLUDED.route,
			calc_ts    = EXCLUDED.calc_ts,
			expires_at = EXCLUDED.expires_at`

	if _, err := s.pool.Exec(ctx, q, key, raw, expiresAt); err != nil {
		return fmt.Errorf("routing: cache: set: %w", err)
	}
	return nil
}
