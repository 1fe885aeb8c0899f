package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// API holds per-endpoint latency and error metrics plus transit stream gauges.
type API struct {
	latency *prometheus.HistogramVec
	errors  *prometheus.CounterVec
	streams prometheus.Gauge
	pushes  prometheus.Counter
}

// NewAPI registers the endpoint metrics on reg.
func NewAPI(reg prometheus.Registerer) *API {
	f := promauto.With(reg)
	return &API{
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "jyotisa",
				Subsystem: "api",
				Name:      "latency_seconds",
				Help:      "Latency of chart endpoints",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		errors: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "jyotisa",
				Subsystem: "api",
				Name:      "errors_total",
				Help:      "Errors by chart endpoint and error code",
			},
			[]string{"endpoint", "code"},
		),
		streams: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "jyotisa",
			Subsystem: "api",
			Name:      "transit_streams",
			Help:      "Open transit websocket streams",
		}),
		pushes: f.NewCounter(prometheus.CounterOpts{
			Namespace: "jyotisa",
			Subsystem: "api",
			Name:      "transit_pushes_total",
			Help:      "Transit snapshots pushed to websocket clients",
		}),
	}
}

// Observe records one endpoint call; code is empty on success. A nil *API
// records nothing.
func (m *API) Observe(endpoint string, start time.Time, code string) {
	if m == nil {
		return
	}
	m.latency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if code != "" {
		m.errors.WithLabelValues(endpoint, code).Inc()
	}
}

func (m *API) StreamOpened() {
	if m != nil {
		m.streams.Inc()
	}
}

func (m *API) StreamClosed() {
	if m != nil {
		m.streams.Dec()
	}
}

func (m *API) Pushed() {
	if m != nil {
		m.pushes.Inc()
	}
}
