package middleware

import (
	"net/http"
	"time"

	"bed-admission-service/internal/observability/metrics"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// statusRecorder captures the status code written by the handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

type LoggingMiddleware struct {
	log     *logrus.Logger
	metrics *metrics.HTTPMetrics
}

func NewLoggingMiddleware(log *logrus.Logger, m *metrics.HTTPMetrics) *LoggingMiddleware {
	return &LoggingMiddleware{log: log, metrics: m}
}

// Handle writes one access log line per request and records request metrics
func (m *LoggingMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		m.metrics.ObserveRequest(r.Method, route, rec.status, elapsed.Seconds())

		entry := m.log.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"route":       route,
			"status":      rec.status,
			"duration_ms": elapsed.Milliseconds(),
		})
		if rec.status >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Info("request handled")
	})
}
