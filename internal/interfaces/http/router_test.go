package http

import (
	"bytes"
	"encoding/xml"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/NFHS-Explorer/internal/application/explorer"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/NFHS-Explorer/internal/interfaces/http/handlers"
	"github.com/turtacn/NFHS-Explorer/internal/interfaces/http/middleware"
	"github.com/turtacn/NFHS-Explorer/internal/testutil"
)

type RouterTestSuite struct {
	suite.Suite
	router    http.Handler
	collector prometheus.MetricsCollector
	logger    *testutil.MockLogger
}

func (s *RouterTestSuite) SetupTest() {
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "nfhs"}, nil)
	s.Require().NoError(err)
	metrics := prometheus.NewAppMetrics(collector)
	s.collector = collector
	s.logger = testutil.NewMockLogger()

	ds := testutil.SampleDataset(s.T())
	svc := explorer.NewCachedService(explorer.NewService(ds, metrics, s.logger), explorer.CacheOptions{TTL: time.Minute}, metrics, s.logger)

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = []string{"*"}
	logCfg := middleware.DefaultLoggingConfig()

	s.router = NewRouter(RouterConfig{
		DashboardHandler: handlers.NewDashboardHandler(svc, s.logger),
		PageHandler:      handlers.NewPageHandler(svc, s.logger),
		HealthHandler:    handlers.NewHealthHandler("test", handlers.DatasetChecker(ds)),
		CORSMiddleware:   middleware.NewCORSMiddleware(cors),
		Logging:          &logCfg,
		Logger:           s.logger,
		Metrics:          metrics,
		MetricsCollector: collector,
	})
}

func (s *RouterTestSuite) get(target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func (s *RouterTestSuite) TestProbes() {
	s.Equal(http.StatusOK, s.get("/healthz").Code)
	s.Equal(http.StatusOK, s.get("/readyz").Code)
}

func (s *RouterTestSuite) TestAPIRoutesRegistered() {
	for _, path := range []string{
		"/api/v1/options",
		"/api/v1/dashboard",
		"/api/v1/kpis",
		"/api/v1/comparison",
		"/api/v1/rows",
		"/api/v1/chart.svg",
		"/api/v1/chart.png",
		"/api/v1/export.csv",
		"/api/v1/export.xlsx",
		"/",
	} {
		w := s.get(path)
		s.Equal(http.StatusOK, w.Code, path)
		s.NotEmpty(w.Header().Get(middleware.RequestIDHeader), path)
	}
	s.Equal(http.StatusNotFound, s.get("/api/v1/patents").Code)
}

func (s *RouterTestSuite) TestUnknownIndicatorIsBadRequest() {
	w := s.get("/api/v1/comparison?indicator=unknown")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "EXPLORER_001")
	s.True(s.logger.HasMessage("warn", "HTTP request completed with client error"))
}

func (s *RouterTestSuite) TestChartSVGIsWellFormed() {
	w := s.get("/api/v1/chart.svg?state=Jammu+%26+Kashmir&survey=NFHS-5&area=Urban&indicator=sex-ratio")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("image/svg+xml", w.Header().Get("Content-Type"))

	dec := xml.NewDecoder(bytes.NewReader(w.Body.Bytes()))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		s.Require().NoError(err, "chart is not well-formed XML")
	}
}

func (s *RouterTestSuite) TestCORSHeaders() {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/options", nil)
	r.Header.Set("Origin", "https://example.org")
	s.router.ServeHTTP(w, r)
	s.Equal("*", w.Header().Get("Access-Control-Allow-Origin"))
}

func (s *RouterTestSuite) TestMetricsExposed() {
	s.get("/api/v1/kpis?state=Kerala&survey=NFHS-5&area=Total")
	s.get("/api/v1/kpis?state=Kerala&survey=NFHS-5&area=Total")

	w := s.get("/metrics")
	s.Require().Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	s.Contains(body, `nfhs_http_requests_total{method="GET",route="/api/v1/kpis",status_code="200"} 2`)
	s.Contains(body, `nfhs_cache_hits_total{cache="dashboard"} 1`)
	s.Contains(body, `nfhs_kpi_lookups_total{kpi="Sex Ratio",result="available"} 1`)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func TestNewRouter_NilHandlers_NoPanic(t *testing.T) {
	router := NewRouter(RouterConfig{})
	require.NotNil(t, router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/options", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

//Personal.AI order the ending
