package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"Jyotisa/internal/domain/repository"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	computations      *prometheus.CounterVec
	latency           *prometheus.HistogramVec
	ayanamsaFallbacks *prometheus.CounterVec
	sunriseFallbacks  prometheus.Counter
	providerErrors    *prometheus.CounterVec
}

// New creates a recorder registered on the default registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a recorder registered on reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		computations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jyotisa_computations_total",
				Help: "Total number of computations by operation and result",
			},
			[]string{"operation", "result"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "jyotisa_computation_duration_seconds",
				Help:    "Duration of computations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		ayanamsaFallbacks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jyotisa_ayanamsa_fallbacks_total",
				Help: "Unknown ayanamsa selectors replaced by the default",
			},
			[]string{"requested"},
		),
		sunriseFallbacks: f.NewCounter(
			prometheus.CounterOpts{
				Name: "jyotisa_sunrise_fallbacks_total",
				Help: "Sunrise lookups that fell back to the query moment",
			},
		),
		providerErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jyotisa_provider_errors_total",
				Help: "Ephemeris provider failures by operation",
			},
			[]string{"operation"},
		),
	}
}

// RecordComputation records the outcome and latency of one operation.
func (r *Recorder) RecordComputation(op string, seconds float64, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.computations.WithLabelValues(op, result).Inc()
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordAyanamsaFallback records an unknown selector. The label is bounded
// to keep cardinality low.
func (r *Recorder) RecordAyanamsaFallback(requested string) {
	if len(requested) > 32 {
		requested = requested[:32]
	}
	r.ayanamsaFallbacks.WithLabelValues(requested).Inc()
}

func (r *Recorder) RecordSunriseFallback() {
	r.sunriseFallbacks.Inc()
}

func (r *Recorder) RecordProviderError(op string) {
	r.providerErrors.WithLabelValues(op).Inc()
}

var _ repository.Metrics = (*Recorder)(nil)
