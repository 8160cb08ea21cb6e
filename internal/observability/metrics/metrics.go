package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "homenest_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "homenest_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	propertyOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "homenest_property_operations_total",
		Help: "Count of property mutations by operation and result",
	}, []string{"operation", "result"})

	ratingOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "homenest_rating_operations_total",
		Help: "Count of rating mutations by operation and result",
	}, []string{"operation", "result"})

	cascadeRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "homenest_rating_cascade_total",
		Help: "Count of rating cascade runs after property deletion",
	}, []string{"result"})

	cascadeRatingsRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "homenest_rating_cascade_removed_total",
		Help: "Ratings removed by the delete cascade and the orphan reaper",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObservePropertyOperation increments the property mutation counter.
func ObservePropertyOperation(operation, result string) {
	propertyOperations.WithLabelValues(operation, result).Inc()
}

// ObserveRatingOperation increments the rating mutation counter.
func ObserveRatingOperation(operation, result string) {
	ratingOperations.WithLabelValues(operation, result).Inc()
}

// ObserveCascade records a cascade run and how many ratings it removed.
func ObserveCascade(result string, removed int64) {
	cascadeRuns.WithLabelValues(result).Inc()
	if removed > 0 {
		cascadeRatingsRemoved.Add(float64(removed))
	}
}
