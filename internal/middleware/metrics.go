package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"easiernav/boreholed/internal/logging"
	"easiernav/boreholed/internal/metrics"
)

// MetricsMiddleware records HTTP metrics and an access log line for each
// request. Must be mounted on a chi router so the route pattern is known.
// A nil metricsReg still logs but records nothing.
func MetricsMiddleware(metricsReg *metrics.MetricsRegistry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			// The route pattern is only known after chi has routed, so
			// in-flight is tracked per method.
			if metricsReg != nil {
				metricsReg.HTTPRequestsInFlight.WithLabelValues(r.Method).Inc()
				defer metricsReg.HTTPRequestsInFlight.WithLabelValues(r.Method).Dec()
			}

			next.ServeHTTP(wrapped, r)

			routePattern := "unknown"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				routePattern = rctx.RoutePattern()
			}

			duration := time.Since(start).Seconds()
			statusCode := strconv.Itoa(wrapped.statusCode)

			if metricsReg != nil {
				metricsReg.HTTPRequestsTotal.WithLabelValues(routePattern, r.Method, statusCode).Inc()
				metricsReg.HTTPRequestDuration.WithLabelValues(routePattern, r.Method).Observe(duration)
			}

			logging.Info("HTTP request completed",
				"request_id", GetRequestID(r.Context()),
				"method", r.Method,
				"endpoint", routePattern,
				"status_code", wrapped.statusCode,
				"duration_ms", int(duration*1000),
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}

// statusRecorder wraps http.ResponseWriter to capture the status code
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.written {
		r.statusCode = code
		r.written = true
		r.ResponseWriter.WriteHeader(code)
	}
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.written {
		r.statusCode = http.StatusOK
		r.written = true
	}
	return r.ResponseWriter.Write(b)
}
