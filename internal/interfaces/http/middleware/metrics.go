package middleware

import (
	"net/http"
	"time"

	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request counts, latency and in-flight requests. Routes are
// labelled by chi pattern, so it must run inside the chi router.
func Metrics(m *prometheus.AppMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			active := m.HTTPActiveRequests.WithLabelValues()
			active.Inc()
			defer active.Dec()

			start := time.Now()
			wrapped := newWrappedResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			prometheus.RecordHTTPRequest(m, r.Method, routePattern(r), wrapped.statusCode, time.Since(start))
		})
	}
}

//Personal.AI order the ending
