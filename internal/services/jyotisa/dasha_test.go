package jyotisa

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Jyotisa/internal/domain/models"
)

var birth = models.JulianDay(2000, 1, 1, 12)

func TestDashaYearsSumTo120(t *testing.T) {
	var sum float64
	for _, l := range vimshottari {
		sum += l.years
	}
	assert.Equal(t, CycleYears, sum)
}

func TestVimshottariAtNakshatraBoundary(t *testing.T) {
	tl, err := VimshottariFrom(40, birth) // start of Rohini
	require.NoError(t, err)

	assert.Equal(t, "Rohini", tl.Nakshatra)
	assert.Equal(t, 3, tl.NakshatraIndex)
	assert.Equal(t, 1, tl.Pada)
	assert.Equal(t, models.Moon, tl.Ruler)
	assert.Equal(t, 10.0, tl.BalanceYears)
	require.Len(t, tl.Periods, 9)
	assert.Equal(t, models.Moon, tl.Periods[0].Lord)
	assert.Equal(t, models.Mars, tl.Periods[1].Lord)
	assert.Equal(t, models.Sun, tl.Periods[8].Lord)
	assert.InDelta(t, 120.0, tl.TotalYears(), 1e-9)
	assert.Equal(t, "2000-01-01", tl.Periods[0].StartDate)
	assert.Equal(t, "2010-01-01", tl.Periods[0].EndDate)
}

func TestVimshottariBalanceInvariant(t *testing.T) {
	for lon := 0.0; lon < 360; lon += 7.3 {
		tl, err := VimshottariFrom(lon, birth)
		require.NoError(t, err)
		full, ok := DashaYears(tl.Ruler)
		require.True(t, ok)

		assert.InDelta(t, 120-tl.ElapsedFraction*full, tl.TotalYears(), 1e-9, "lon %v", lon)
		assert.InDelta(t, full*(1-tl.ElapsedFraction), tl.BalanceYears, 1e-9)
		assert.True(t, tl.Pada >= 1 && tl.Pada <= 4)
		for i := 1; i < len(tl.Periods); i++ {
			assert.Equal(t, tl.Periods[i-1].End, tl.Periods[i].Start)
		}
	}
}

func TestVimshottariMidNakshatra(t *testing.T) {
	// Pushya, ruled by Saturn, 53.75% elapsed.
	tl, err := VimshottariFrom(100.5, birth)
	require.NoError(t, err)
	assert.Equal(t, "Pushya", tl.Nakshatra)
	assert.Equal(t, models.Saturn, tl.Ruler)
	assert.Equal(t, 3, tl.Pada)
	assert.InDelta(t, 19*0.4625, tl.BalanceYears, 1e-9)
	assert.Equal(t, models.Mercury, tl.Periods[1].Lord)
}

func TestVimshottariRejectsOutOfRangeMoon(t *testing.T) {
	for _, lon := range []float64{-0.1, 360, 721} {
		_, err := VimshottariFrom(lon, birth)
		var ie *models.InputError
		assert.True(t, errors.As(err, &ie), "lon %v", lon)
	}
}

func TestAntardashaSumsToMahadasha(t *testing.T) {
	tl, err := VimshottariFrom(100.5, birth)
	require.NoError(t, err)
	for _, maha := range tl.Periods {
		sub := Antardasha(maha)
		require.Len(t, sub.Periods, 9)
		assert.Equal(t, maha.Lord, sub.Periods[0].Lord)
		assert.InDelta(t, maha.Years, sub.TotalYears(), 1e-9)
		assert.Equal(t, maha.Start, sub.Periods[0].Start)
		assert.InDelta(t, float64(maha.End), float64(sub.Periods[8].End), 1e-6)
	}
}

func TestAntardashaRotation(t *testing.T) {
	sub := Antardasha(models.DashaPeriod{Lord: models.Rahu, Start: birth, Years: 18})
	want := []models.Body{
		models.Rahu, models.Jupiter, models.Saturn, models.Mercury, models.Ketu,
		models.Venus, models.Sun, models.Moon, models.Mars,
	}
	for i, p := range sub.Periods {
		assert.Equal(t, want[i], p.Lord)
	}
	assert.InDelta(t, 18*18/120.0, sub.Periods[0].Years, 1e-12)
}

func TestVimshottariForChartAndActiveLord(t *testing.T) {
	chart := chartAt(0, map[models.Body]float64{models.Moon: 40})
	tl, err := Vimshottari(chart)
	require.NoError(t, err)
	require.Len(t, tl.Antardashas, 9)

	assert.Equal(t, models.Moon, ActiveLord(tl, birth))
	assert.Equal(t, models.Mars, ActiveLord(tl, birth.AddYears(12)))
	assert.Equal(t, models.Moon, ActiveLord(tl, birth.AddYears(500)))

	maha, antar, ok := tl.ActivePeriods(birth.AddYears(0.5))
	require.True(t, ok)
	assert.Equal(t, models.Moon, maha.Lord)
	assert.Equal(t, models.Moon, antar.Lord)
}

func TestVimshottariRequiresMoon(t *testing.T) {
	_, err := Vimshottari(chartAt(0, nil))
	assert.ErrorIs(t, err, models.ErrLordNotInChart)
}
