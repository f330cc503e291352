package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds every metric the explorer records.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Dataset
	DatasetRows         GaugeVec
	DatasetColumns      GaugeVec
	DatasetLoadDuration HistogramVec

	// Engine
	KPILookupsTotal CounterVec
	ComparisonRows  HistogramVec

	// Cache
	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec

	// Errors
	ErrorsTotal CounterVec
}

// Default buckets.
var (
	DefaultHTTPDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
	DefaultLoadDurationBuckets = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}
	DefaultRowCountBuckets     = []float64{0, 1, 5, 10, 20, 30, 40, 50}
)

// NewAppMetrics registers all metrics on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	if collector == nil {
		collector = NewNopCollector()
	}
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "route", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "route")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "In-flight HTTP requests")

	m.DatasetRows = collector.RegisterGauge("dataset_rows", "Rows in the loaded survey dataset", "source")
	m.DatasetColumns = collector.RegisterGauge("dataset_columns", "Columns in the loaded survey dataset", "source")
	m.DatasetLoadDuration = collector.RegisterHistogram("dataset_load_duration_seconds", "Time spent reading and parsing the dataset", DefaultLoadDurationBuckets, "source")

	m.KPILookupsTotal = collector.RegisterCounter("kpi_lookups_total", "KPI lookups by card and outcome", "kpi", "result")
	m.ComparisonRows = collector.RegisterHistogram("comparison_rows", "Rows in computed state comparison views", DefaultRowCountBuckets, "indicator")

	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Dashboard cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Dashboard cache misses", "cache")

	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Errors by component and code", "component", "code")

	return m
}

// NewNopAppMetrics returns AppMetrics backed by the no-op collector.
func NewNopAppMetrics() *AppMetrics {
	return NewAppMetrics(NewNopCollector())
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

// RecordHTTPRequest records one completed request.  route is the chi route
// pattern, never the raw path, to keep label cardinality bounded.
func RecordHTTPRequest(m *AppMetrics, method, route string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordDatasetLoad records the shape of a freshly loaded dataset.
func RecordDatasetLoad(m *AppMetrics, source string, rows, columns int, duration time.Duration) {
	if m == nil {
		return
	}
	m.DatasetRows.WithLabelValues(source).Set(float64(rows))
	m.DatasetColumns.WithLabelValues(source).Set(float64(columns))
	m.DatasetLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordKPILookup counts a KPI lookup as "available" or "na".
func RecordKPILookup(m *AppMetrics, kpi string, available bool) {
	if m == nil {
		return
	}
	result := "available"
	if !available {
		result = "na"
	}
	m.KPILookupsTotal.WithLabelValues(kpi, result).Inc()
}

// RecordComparison observes the size of a comparison view.
func RecordComparison(m *AppMetrics, indicator string, rows int) {
	if m == nil {
		return
	}
	m.ComparisonRows.WithLabelValues(indicator).Observe(float64(rows))
}

// RecordCacheAccess counts a cache hit or miss.
func RecordCacheAccess(m *AppMetrics, cache string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		m.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

// RecordError counts an error by component and error code.
func RecordError(m *AppMetrics, component, code string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(component, code).Inc()
}

//Personal.AI order the ending
