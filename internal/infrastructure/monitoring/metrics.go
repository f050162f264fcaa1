package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/service"
)

var _ service.Metrics = (*Metrics)(nil)

// Metrics manages the Prometheus metrics.
type Metrics struct {
	HTTPRequests         *prometheus.CounterVec
	HTTPLatency          *prometheus.HistogramVec
	RiskAssessments      *prometheus.CounterVec
	ReservationConflicts prometheus.Counter
}

// NewMetrics creates the metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "acadmin_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "acadmin_http_request_duration_seconds",
				Help:    "Latency of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RiskAssessments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "acadmin_risk_assessments_total",
				Help: "Total number of persisted risk assessments by level.",
			},
			[]string{"level"},
		),
		ReservationConflicts: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "acadmin_reservation_conflicts_total",
				Help: "Total number of reservations refused because the slot was taken.",
			},
		),
	}
}

func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) RecordRiskAssessment(level models.RiskLevel) {
	m.RiskAssessments.WithLabelValues(string(level)).Inc()
}

func (m *Metrics) RecordReservationConflict() {
	m.ReservationConflicts.Inc()
}
