package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 15, 60},
		},
		[]string{"method", "route"},
	)

	// Импорт: одна попытка одной стратегии
	ImportStrategyAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_strategy_attempts_total",
			Help: "Listing import strategy attempts by outcome",
		},
		[]string{"strategy", "outcome"},
	)

	AIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "Generative AI requests by operation and status",
		},
		[]string{"operation", "status"},
	)
)

// ObserveAI учитывает обращение к AI: status равен "ok" или "error".
func ObserveAI(operation string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	AIRequestsTotal.WithLabelValues(operation, status).Inc()
}
