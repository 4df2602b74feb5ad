package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "store_orders_placed_total",
		Help: "Total number of orders placed",
	})

	OrderStatusChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "store_order_status_changes_total",
		Help: "Total number of accepted order status transitions",
	}, []string{"from", "to"})

	OrderTransitionsRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "store_order_transitions_rejected_total",
		Help: "Total number of order status transitions rejected by policy",
	})

	CartMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "store_cart_mutations_total",
		Help: "Total number of cart mutations",
	}, []string{"op", "owner"})

	DesignRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "store_design_requests_total",
		Help: "Total number of submitted customization and custom print requests",
	}, []string{"kind"})

	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "store_uploads_total",
		Help: "Total number of admin uploads",
	}, []string{"mode"})

	EventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "store_events_published_total",
		Help: "Order events published per sink",
	}, []string{"sink", "type"})

	EventsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "store_events_failed_total",
		Help: "Order events that failed to publish per sink",
	}, []string{"sink", "type"})

	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "store_admin_login_attempts_total",
		Help: "Admin login attempts by outcome",
	}, []string{"outcome"})

	ProductCacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "store_product_cache_lookups_total",
		Help: "Product list cache lookups by result",
	}, []string{"result"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)

// Prometheus collects HTTP metrics by route template.
func Prometheus() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

// Handler serves the Prometheus exposition format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
