package cache

import (
	"context"
	"strings"
	"time"

	"github.com/oreline/careers-api/internal/models"
	"github.com/oreline/careers-api/pkg/logger"
	"github.com/oreline/careers-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	searchCacheName       = "product_search"
	defaultSearchCacheTTL = 5 * time.Minute
)

// SearchFetcher loads products for a normalized query
type SearchFetcher func(ctx context.Context, query string) ([]models.Product, error)

// SearchCache keeps product search results per normalized query
type SearchCache struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewSearchCache creates a cache whose entries live for ttl
func NewSearchCache(ttl time.Duration) *SearchCache {
	if ttl <= 0 {
		ttl = defaultSearchCacheTTL
	}
	return &SearchCache{
		cache: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// NormalizeQuery lower-cases the query and collapses whitespace
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

// Get returns cached products for query, calling fetch on a miss.
// Failed fetches are not cached.
func (sc *SearchCache) Get(ctx context.Context, query string, fetch SearchFetcher) ([]models.Product, error) {
	key := NormalizeQuery(query)

	if data, found := sc.cache.Get(key); found {
		if products, ok := data.([]models.Product); ok {
			metrics.CacheHits.WithLabelValues(searchCacheName).Inc()
			logger.Debug("Product search cache hit", zap.String("query", key))
			return products, nil
		}
		logger.Error("Invalid product search cache data type", zap.String("query", key))
		sc.cache.Delete(key)
	}

	metrics.CacheMisses.WithLabelValues(searchCacheName).Inc()

	products, err := fetch(ctx, key)
	if err != nil {
		return nil, err
	}

	sc.cache.Set(key, products, sc.ttl)
	metrics.CacheSize.WithLabelValues(searchCacheName).Set(float64(sc.cache.ItemCount()))

	return products, nil
}

// Flush drops every entry
func (sc *SearchCache) Flush() {
	sc.cache.Flush()
	metrics.CacheSize.WithLabelValues(searchCacheName).Set(0)
}

// Len returns the number of cached queries, expired ones included until cleanup
func (sc *SearchCache) Len() int {
	return sc.cache.ItemCount()
}
