package explorer

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/monitoring/prometheus"
)

const dashboardCacheName = "dashboard"

// CacheOptions configures CachedService.
type CacheOptions struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

// CachedService memoises Dashboard results by resolved selection.  The
// dataset never changes after load, so an entry only leaves the cache when
// its TTL expires.  Concurrent misses for the same selection are collapsed
// into a single computation.
type CachedService struct {
	next    *Service
	cache   *gocache.Cache
	group   singleflight.Group
	metrics *prometheus.AppMetrics
	logger  logging.Logger
}

// NewCachedService wraps next.  A non-positive TTL keeps entries forever.
func NewCachedService(next *Service, opts CacheOptions, metrics *prometheus.AppMetrics, logger logging.Logger) *CachedService {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	cleanup := opts.CleanupInterval
	if cleanup <= 0 {
		cleanup = 2 * opts.TTL
	}
	return &CachedService{
		next:    next,
		cache:   gocache.New(ttl, cleanup),
		metrics: metrics,
		logger:  logger.Named("explorer.cache"),
	}
}

// Options delegates to the wrapped service.
func (c *CachedService) Options() Options { return c.next.Options() }

// Resolve delegates to the wrapped service.
func (c *CachedService) Resolve(sel Selection) (Selection, error) { return c.next.Resolve(sel) }

// Dashboard returns the cached dashboard for sel, computing it on a miss.
// The returned value is shared between callers and must not be modified.
func (c *CachedService) Dashboard(ctx context.Context, sel Selection) (*Dashboard, error) {
	resolved, err := c.next.Resolve(sel)
	if err != nil {
		return nil, err
	}
	key := resolved.cacheKey()

	if v, ok := c.cache.Get(key); ok {
		prometheus.RecordCacheAccess(c.metrics, dashboardCacheName, true)
		return v.(*Dashboard), nil
	}
	prometheus.RecordCacheAccess(c.metrics, dashboardCacheName, false)

	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		d, err := c.next.Dashboard(ctx, resolved)
		if err != nil {
			return nil, err
		}
		c.cache.SetDefault(key, d)
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("dashboard computation shared", logging.String("selection", key))
	}
	return v.(*Dashboard), nil
}

// Len returns the number of cached dashboards.
func (c *CachedService) Len() int { return c.cache.ItemCount() }

// Flush drops every cached dashboard.
func (c *CachedService) Flush() { c.cache.Flush() }

var _ DashboardService = (*CachedService)(nil)

//Personal.AI order the ending
