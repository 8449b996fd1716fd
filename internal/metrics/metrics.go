package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RegistrationsTotal   prometheus.Counter
	RegistrationFailures *prometheus.CounterVec
	ParticipantsTotal    prometheus.Gauge
	HTTPDuration         *prometheus.HistogramVec
}

// New creates all metrics and registers them with the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics with the given registerer. Tests pass a
// fresh registry so repeated construction never collides.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RegistrationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "techfest_registrations_total",
			Help: "Total number of successful participant registrations",
		}),
		RegistrationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "techfest_registration_failures_total",
			Help: "Total number of rejected registrations by reason",
		}, []string{"reason"}),
		ParticipantsTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "techfest_participants_total",
			Help: "Current number of registered participants",
		}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "techfest_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// IncrementRegistrations increments the successful registration counter by 1.
func (m *Metrics) IncrementRegistrations() {
	m.RegistrationsTotal.Inc()
}

// IncrementFailures counts a rejected registration under the given reason
// (closed, validation, duplicate_email, storage).
func (m *Metrics) IncrementFailures(reason string) {
	m.RegistrationFailures.WithLabelValues(reason).Inc()
}

// SetParticipants records the current collection size.
func (m *Metrics) SetParticipants(count int) {
	m.ParticipantsTotal.Set(float64(count))
}

// ObserveRequest records one request's latency under its route.
func (m *Metrics) ObserveRequest(route string, seconds float64) {
	m.HTTPDuration.WithLabelValues(route).Observe(seconds)
}
