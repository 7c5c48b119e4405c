package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus коллекторов сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	upstreamRequests    *prometheus.CounterVec
	upstreamDuration    *prometheus.HistogramVec
	staleResponses      *prometheus.CounterVec
	couponApplications  *prometheus.CounterVec
	bookingSubmissions  *prometheus.CounterVec
	activeDrafts        prometheus.Gauge
}

// New регистрирует коллекторы в глобальном реестре (его отдает promhttp.Handler)
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует коллекторы в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	namespace := sanitize(serviceName)
	factory := promauto.With(reg)

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),

		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		upstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "studio_api_requests_total",
			Help:      "Requests to the studio backend by operation and outcome",
		}, []string{"operation", "outcome"}),

		upstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "studio_api_request_duration_seconds",
			Help:      "Studio backend request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),

		staleResponses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciler_stale_responses_total",
			Help:      "Availability responses discarded because the draft moved on",
		}, []string{"list"}),

		couponApplications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coupon_applications_total",
			Help:      "Coupon application attempts by result",
		}, []string{"result"}),

		bookingSubmissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_submissions_total",
			Help:      "Booking submissions by result",
		}, []string{"result"}),

		activeDrafts: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_drafts",
			Help:      "Drafts currently held by the in-memory store",
		}),
	}
}

// ObserveHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveUpstream фиксирует запрос к studio API
func (m *Metrics) ObserveUpstream(operation, outcome string, duration time.Duration) {
	m.upstreamRequests.WithLabelValues(operation, outcome).Inc()
	m.upstreamDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveStaleResponse фиксирует отброшенный устаревший ответ
func (m *Metrics) ObserveStaleResponse(list string) {
	m.staleResponses.WithLabelValues(list).Inc()
}

// ObserveCoupon фиксирует результат применения купона
func (m *Metrics) ObserveCoupon(result string) {
	m.couponApplications.WithLabelValues(result).Inc()
}

// ObserveSubmission фиксирует результат отправки бронирования
func (m *Metrics) ObserveSubmission(result string) {
	m.bookingSubmissions.WithLabelValues(result).Inc()
}

// SetActiveDrafts выставляет текущее количество черновиков
func (m *Metrics) SetActiveDrafts(n int) {
	m.activeDrafts.Set(float64(n))
}

func sanitize(name string) string {
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(strings.ToLower(name))
}
