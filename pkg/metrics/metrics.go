package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registry is exposed on /api/metrics
	Registry = prometheus.NewRegistry()

	factory = promauto.With(Registry)

	// Buckets from milliseconds (disk writes) to tens of seconds (large uploads to object storage)
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34}

	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Storage Metrics (local disk and object storage mirror)
	StorageRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_client_operation_duration_seconds",
			Help:    "Storage client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"backend", "operation", "status"},
	)

	StorageRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_client_operation_total",
			Help: "Total number of storage client operations",
		},
		[]string{"backend", "operation", "status"},
	)

	StoredBytes = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_client_written_bytes_total",
			Help: "Total bytes written by storage backends",
		},
		[]string{"backend"},
	)

	// Upstream products API
	UpstreamRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_client_request_duration_seconds",
			Help:    "Upstream API request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"upstream", "status"},
	)

	// Cache Metrics
	CacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	CacheSize = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Number of entries in cache",
		},
		[]string{"cache_name"},
	)

	// Business Metrics
	ApplicationSubmissions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careers_applications_total",
			Help: "Total job application submissions by outcome",
		},
		[]string{"status"},
	)

	ApplicationCVBytes = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "careers_application_cv_bytes",
			Help:    "Size of uploaded CV files",
			Buckets: prometheus.ExponentialBuckets(16*1024, 2, 10),
		},
	)

	ProductSearches = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careers_product_searches_total",
			Help: "Total product search requests by outcome",
		},
		[]string{"status"},
	)

	// Infrastructure Metrics
	GoRoutines = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// Init registers the process and Go collectors labelled with the service name
func Init(serviceName string) {
	wrapped := prometheus.WrapRegistererWith(prometheus.Labels{"service_name": serviceName}, Registry)
	wrapped.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics(stop <-chan struct{}) {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				var m runtime.MemStats
				runtime.ReadMemStats(&m)

				GoRoutines.Set(float64(runtime.NumGoroutine()))
				HeapAlloc.Set(float64(m.HeapAlloc))
			}
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
