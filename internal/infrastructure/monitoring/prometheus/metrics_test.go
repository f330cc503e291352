package prometheus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/monitoring/logging"
)

func newNFHSCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "nfhs"}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func TestNewAppMetrics_AllFieldsRegistered(t *testing.T) {
	m := NewAppMetrics(newTestCollector(t))

	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.HTTPRequestDuration)
	assert.NotNil(t, m.HTTPActiveRequests)
	assert.NotNil(t, m.DatasetRows)
	assert.NotNil(t, m.DatasetColumns)
	assert.NotNil(t, m.DatasetLoadDuration)
	assert.NotNil(t, m.KPILookupsTotal)
	assert.NotNil(t, m.ComparisonRows)
	assert.NotNil(t, m.CacheHitsTotal)
	assert.NotNil(t, m.CacheMissesTotal)
	assert.NotNil(t, m.ErrorsTotal)
}

func TestRecordHelpers_ExposeMetricNames(t *testing.T) {
	c := newNFHSCollector(t)
	m := NewAppMetrics(c)

	RecordHTTPRequest(m, "GET", "/api/v1/kpis", 200, 15*time.Millisecond)
	RecordDatasetLoad(m, "file", 36, 12, 120*time.Millisecond)
	RecordKPILookup(m, "Sex Ratio", true)
	RecordKPILookup(m, "Sex Ratio", false)
	RecordComparison(m, "electricity", 30)
	RecordCacheAccess(m, "dashboard", true)
	RecordCacheAccess(m, "dashboard", false)
	RecordError(m, "http", "EXPLORER_001")

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `nfhs_http_requests_total{method="GET",route="/api/v1/kpis",status_code="200"} 1`)
	assert.Contains(t, out, `nfhs_dataset_rows{source="file"} 36`)
	assert.Contains(t, out, `nfhs_dataset_columns{source="file"} 12`)
	assert.Contains(t, out, `nfhs_kpi_lookups_total{kpi="Sex Ratio",result="available"} 1`)
	assert.Contains(t, out, `nfhs_kpi_lookups_total{kpi="Sex Ratio",result="na"} 1`)
	assert.Contains(t, out, `nfhs_comparison_rows_count{indicator="electricity"} 1`)
	assert.Contains(t, out, `nfhs_cache_hits_total{cache="dashboard"} 1`)
	assert.Contains(t, out, `nfhs_cache_misses_total{cache="dashboard"} 1`)
	assert.Contains(t, out, `nfhs_errors_total{code="EXPLORER_001",component="http"} 1`)
	assert.Contains(t, out, "nfhs_dataset_load_duration_seconds_count")
}

func TestRecordHelpers_NilMetricsAreIgnored(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordHTTPRequest(nil, "GET", "/", 200, time.Millisecond)
		RecordDatasetLoad(nil, "file", 1, 1, time.Millisecond)
		RecordKPILookup(nil, "x", true)
		RecordComparison(nil, "x", 1)
		RecordCacheAccess(nil, "x", true)
		RecordError(nil, "x", "y")
	})
}

func TestNewNopAppMetrics(t *testing.T) {
	m := NewNopAppMetrics()
	assert.NotPanics(t, func() { RecordKPILookup(m, "Sex Ratio", true) })
}

//Personal.AI order the ending
