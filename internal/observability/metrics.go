package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector registers and serves the crawler's Prometheus metrics.
type MetricsCollector struct {
	registry prometheus.Registerer

	RequestDuration *prometheus.HistogramVec
	RequestCount    *prometheus.CounterVec

	FrontierQueueDepth *prometheus.GaugeVec
	CostCentsTotal      *prometheus.CounterVec
	YieldItemsPerPage   prometheus.Histogram
	ProductsByStatus    *prometheus.GaugeVec
	AwardsAttachedTotal prometheus.Counter
}

func NewMetricsCollector(reg prometheus.Registerer) *MetricsCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	mc := &MetricsCollector{
		registry: reg,
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "crawler_request_duration_seconds",
				Help: "REST request duration in seconds",
			},
			[]string{"method", "endpoint"},
		),
		RequestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crawler_requests_total",
				Help: "Total REST requests served",
			},
			[]string{"method", "endpoint", "status"},
		),
		FrontierQueueDepth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "crawler_frontier_queue_depth",
				Help: "Pending URLs per frontier queue",
			},
			[]string{"queue_id"},
		),
		CostCentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crawler_cost_cents_total",
				Help: "Metered external service cost in cents",
			},
			[]string{"service"},
		),
		YieldItemsPerPage: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "crawler_yield_items_per_page",
			Help:    "Items extracted per crawled page",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50},
		}),
		ProductsByStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "crawler_products_by_status",
				Help: "Product count per completeness status",
			},
			[]string{"status"},
		),
		AwardsAttachedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crawler_awards_attached_total",
			Help: "Awards attached to products (post-dedup)",
		}),
	}

	reg.MustRegister(
		mc.RequestDuration, mc.RequestCount, mc.FrontierQueueDepth,
		mc.CostCentsTotal, mc.YieldItemsPerPage, mc.ProductsByStatus, mc.AwardsAttachedTotal,
	)
	return mc
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records per-request duration and status counters.
func (mc *MetricsCollector) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			endpoint := r.URL.Path
			mc.RequestDuration.WithLabelValues(r.Method, endpoint).Observe(duration)
			mc.RequestCount.WithLabelValues(r.Method, endpoint, fmt.Sprintf("%d", wrapped.statusCode)).Inc()
		})
	}
}

// Handler exposes the registered metrics for scraping.
func (mc *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{})
}

// RecordCost adds a CostRecord's amount to the running per-service total.
func (mc *MetricsCollector) RecordCost(service string, cents int) {
	mc.CostCentsTotal.WithLabelValues(service).Add(float64(cents))
}

// RecordYield observes one page's item count.
func (mc *MetricsCollector) RecordYield(items int) {
	mc.YieldItemsPerPage.Observe(float64(items))
}

// SetFrontierDepth reports the current pending-URL count for a queue.
func (mc *MetricsCollector) SetFrontierDepth(queueID string, depth int) {
	mc.FrontierQueueDepth.WithLabelValues(queueID).Set(float64(depth))
}

// SetProductsByStatus reports the current count of products at a status.
func (mc *MetricsCollector) SetProductsByStatus(status string, count int) {
	mc.ProductsByStatus.WithLabelValues(status).Set(float64(count))
}

// IncAwardsAttached records one successful, deduped award attach.
func (mc *MetricsCollector) IncAwardsAttached() {
	mc.AwardsAttachedTotal.Inc()
}
