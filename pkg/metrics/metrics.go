package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "autovarka"

// ServerMetrics — метрики HTTP-сервера и бизнес-счётчики магазина.
type ServerMetrics struct {
	Requests            *prometheus.CounterVec
	LatencyMS           *prometheus.HistogramVec
	OrdersCreated       prometheus.Counter
	NotificationsFailed *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewServerMetrics создаёт и регистрирует метрики в собственном реестре.
func NewServerMetrics() *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})
	orders := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of persisted orders.",
	})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_failed_total",
		Help:      "Total number of failed best-effort notifications.",
	}, []string{"channel"})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		requests,
		latency,
		orders,
		notifications,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &ServerMetrics{
		Requests:            requests,
		LatencyMS:           latency,
		OrdersCreated:       orders,
		NotificationsFailed: notifications,
		registry:            registry,
	}
}

// Handler отдаёт метрики в формате Prometheus.
func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// OrderCreated увеличивает счётчик созданных заказов.
func (m *ServerMetrics) OrderCreated() {
	m.OrdersCreated.Inc()
}

// NotificationFailed увеличивает счётчик неудачных уведомлений канала.
func (m *ServerMetrics) NotificationFailed(channel string) {
	m.NotificationsFailed.WithLabelValues(channel).Inc()
}
