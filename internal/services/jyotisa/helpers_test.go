package jyotisa

import (
	"sync"

	"Jyotisa/internal/domain/models"
)

// chartAt builds a chart directly from longitudes, bypassing the provider.
func chartAt(asc float64, lons map[models.Body]float64) *models.Chart {
	c := &models.Chart{
		Moment:   models.JulianDay(2000, 1, 1, 12),
		Ayanamsa: models.Lahiri,
		Bodies:   make(map[models.Body]models.BodyPosition, len(lons)+1),
	}
	for b, lon := range lons {
		c.Bodies[b] = models.NewBodyPosition(b, lon, 1)
	}
	c.Houses.Ascendant = asc
	c.Houses.AscendantSign = models.SignOf(asc)
	c.Bodies[models.Ascendant] = models.NewBodyPosition(models.Ascendant, asc, 0)
	return c
}

type countingMetrics struct {
	mu                sync.Mutex
	ayanamsaFallbacks []string
	sunriseFallbacks  int
	providerErrors    map[string]int
}

func (m *countingMetrics) RecordComputation(string, float64, error) {}

func (m *countingMetrics) RecordAyanamsaFallback(requested string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ayanamsaFallbacks = append(m.ayanamsaFallbacks, requested)
}

func (m *countingMetrics) RecordSunriseFallback() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sunriseFallbacks++
}

func (m *countingMetrics) RecordProviderError(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.providerErrors == nil {
		m.providerErrors = map[string]int{}
	}
	m.providerErrors[op]++
}
