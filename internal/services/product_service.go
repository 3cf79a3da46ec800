package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oreline/careers-api/internal/cache"
	"github.com/oreline/careers-api/internal/models"
	"github.com/oreline/careers-api/pkg/circuitbreaker"
	apperrors "github.com/oreline/careers-api/pkg/errors"
	"github.com/oreline/careers-api/pkg/httpclient"
	"github.com/oreline/careers-api/pkg/logger"
	"github.com/oreline/careers-api/pkg/metrics"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const productsUpstream = "products_api"

// ProductService proxies product search to the external catalogue API
type ProductService struct {
	apiHost    string
	httpClient httpclient.Client
	cache      *cache.SearchCache
	breaker    *gobreaker.CircuitBreaker
}

// NewProductService creates the service. An empty apiHost disables search.
func NewProductService(apiHost string, httpClient httpclient.Client, searchCache *cache.SearchCache) *ProductService {
	return &ProductService{
		apiHost:    strings.TrimRight(apiHost, "/"),
		httpClient: httpClient,
		cache:      searchCache,
		breaker:    circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig(productsUpstream)),
	}
}

// Search returns products matching query. A blank query matches nothing and
// never reaches the upstream.
func (s *ProductService) Search(ctx context.Context, query string) ([]models.Product, error) {
	if cache.NormalizeQuery(query) == "" {
		metrics.ProductSearches.WithLabelValues("empty").Inc()
		return []models.Product{}, nil
	}
	if s.apiHost == "" {
		metrics.ProductSearches.WithLabelValues("disabled").Inc()
		return nil, apperrors.UnavailableError(productsUpstream, fmt.Errorf("PRODUCTS_API_HOST not configured"))
	}

	products, err := s.cache.Get(ctx, query, s.fetch)
	if err != nil {
		metrics.ProductSearches.WithLabelValues("error").Inc()
		return nil, apperrors.UnavailableError(productsUpstream, err)
	}

	metrics.ProductSearches.WithLabelValues("success").Inc()
	return products, nil
}

func (s *ProductService) fetch(ctx context.Context, query string) ([]models.Product, error) {
	return circuitbreaker.Execute(s.breaker, func() ([]models.Product, error) {
		return s.fetchUpstream(ctx, query)
	})
}

func (s *ProductService) fetchUpstream(ctx context.Context, query string) ([]models.Product, error) {
	start := time.Now()
	endpoint := fmt.Sprintf("%s/items?q=%s", s.apiHost, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.observe(ctx, start, "error", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch search products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck
		s.observe(ctx, start, "error", zap.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("failed to fetch search products: status %d", resp.StatusCode)
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		s.observe(ctx, start, "error", zap.Error(err))
		return nil, fmt.Errorf("failed to decode search products: %w", err)
	}
	if products == nil {
		products = []models.Product{}
	}

	s.observe(ctx, start, "success", zap.Int("count", len(products)))
	return products, nil
}

func (s *ProductService) observe(ctx context.Context, start time.Time, status string, fields ...zap.Field) {
	duration := metrics.MeasureDuration(start)
	metrics.UpstreamRequestDuration.WithLabelValues(productsUpstream, status).Observe(duration)
	logger.LogAPICall(ctx, productsUpstream, "search", status, duration, fields...)
}
