package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	r := NewWithRegistry(prometheus.NewRegistry())

	r.RecordComputation("chart", 0.01, nil)
	r.RecordComputation("chart", 0.02, errors.New("x"))
	r.RecordComputation("chart", 0.03, nil)
	r.RecordAyanamsaFallback("FAGAN")
	r.RecordSunriseFallback()
	r.RecordProviderError("calc")
	r.RecordProviderError("calc")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.computations.WithLabelValues("chart", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.computations.WithLabelValues("chart", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.ayanamsaFallbacks.WithLabelValues("FAGAN")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.sunriseFallbacks))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.providerErrors.WithLabelValues("calc")))
}
