package jyotisa

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Jyotisa/internal/domain/models"
	"Jyotisa/internal/services/ephemeris/ephemeristest"
)

func TestTransitHitIdenticalLongitudeIsExact(t *testing.T) {
	natal := chartAt(100, map[models.Body]float64{models.Sun: 100})
	tr := &models.Transits{Bodies: map[models.Body]models.BodyPosition{
		models.Moon: models.NewBodyPosition(models.Moon, 100, 13),
	}}
	for _, orb := range []float64{0, 3, 10} {
		hits := TransitHits(natal, tr, orb)
		require.Len(t, hits, 1, "orb %v", orb)
		assert.Equal(t, models.TransitHit{
			TransitBody: models.Moon, NatalBody: models.Sun, Aspect: models.Conjunction, Orb: 0, Exact: true,
		}, hits[0])
	}
}

func TestTransitHitsOrbAndExactFlag(t *testing.T) {
	natal := chartAt(10, map[models.Body]float64{
		models.Sun: 12.5, models.Moon: 10.5, models.Mars: 359, models.Venus: 14,
	})
	tr := &models.Transits{Bodies: map[models.Body]models.BodyPosition{
		models.Sun:       models.NewBodyPosition(models.Sun, 10, 1),
		models.Ascendant: models.NewBodyPosition(models.Ascendant, 10, 0),
	}}
	hits := TransitHits(natal, tr, DefaultTransitOrb)
	require.Len(t, hits, 2)

	assert.Equal(t, models.Sun, hits[0].NatalBody)
	assert.InDelta(t, 2.5, hits[0].Orb, 1e-9)
	assert.False(t, hits[0].Exact)

	assert.Equal(t, models.Moon, hits[1].NatalBody)
	assert.InDelta(t, 0.5, hits[1].Orb, 1e-9)
	assert.True(t, hits[1].Exact)

	// Mars sits 11 degrees away across 0.
	assert.Len(t, TransitHits(natal, tr, 11), 4)
}

func TestTransitHitsEmptyIsNotNil(t *testing.T) {
	hits := TransitHits(chartAt(0, nil), &models.Transits{}, 3)
	assert.NotNil(t, hits)
	assert.Empty(t, hits)
}

func TestCurrentAlwaysUsesDefaultAyanamsa(t *testing.T) {
	fake := ephemeristest.New().With(models.Saturn, 400, -0.05)
	at := models.JulianDay(2026, 10, 19, 6)

	tr, err := NewTransitAnalyzer(fake).Current(context.Background(), at)
	require.NoError(t, err)
	assert.Equal(t, models.Lahiri, tr.Ayanamsa)
	assert.Len(t, tr.Bodies, 8)
	assert.InDelta(t, 40, tr.Bodies[models.Saturn].Longitude, 1e-9)
	assert.True(t, tr.Bodies[models.Saturn].Retrograde)

	for _, c := range fake.Calls() {
		assert.Equal(t, models.Lahiri, c.Ayanamsa)
		assert.Equal(t, at, c.Moment)
	}
}

func TestCurrentWrapsProviderErrors(t *testing.T) {
	fake := ephemeristest.New()
	fake.Err = errors.New("down")
	metrics := &countingMetrics{}
	_, err := NewTransitAnalyzer(fake, WithMetrics(metrics)).Current(context.Background(), 0)
	assert.ErrorIs(t, err, models.ErrProviderUnavailable)
	assert.Equal(t, 1, metrics.providerErrors["calc"])
}
