package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ClassificationsTotal tracks classification outcomes by country and result
	ClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paynotify_classifications_total",
			Help: "Total number of notification classifications",
		},
		[]string{"country", "result"},
	)

	// RejectionsTotal tracks filtered-out notifications by reason
	RejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paynotify_rejections_total",
			Help: "Total number of notifications rejected by the filter stage",
		},
		[]string{"reason"},
	)

	// PatternCacheRefreshesTotal tracks dynamic pattern cache reloads
	PatternCacheRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paynotify_pattern_cache_refreshes_total",
			Help: "Total number of dynamic pattern cache reload attempts",
		},
		[]string{"result"},
	)

	// RequestsTotal tracks total number of HTTP requests
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paynotify_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "code"},
	)

	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "paynotify_http_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	// ActiveRequests tracks currently active requests
	ActiveRequests = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "paynotify_http_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"path"},
	)
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// NewMetricsMiddleware returns middleware that collects Prometheus metrics per request
func NewMetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path

			ActiveRequests.WithLabelValues(path).Inc()
			defer ActiveRequests.WithLabelValues(path).Dec()

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			RequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
			RequestsTotal.WithLabelValues(path, strconv.Itoa(rec.status)).Inc()
		})
	}
}
