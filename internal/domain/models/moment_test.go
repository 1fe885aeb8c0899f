package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJulianDay(t *testing.T) {
	assert.Equal(t, Moment(2451545.0), JulianDay(2000, 1, 1, 12))
	assert.Equal(t, Moment(2446822.5), JulianDay(1987, 1, 27, 0))
	assert.InDelta(t, 2436116.31, float64(JulianDay(1957, 10, 4, 19.44)), 1e-6)
	assert.InDelta(t, 2299160.5, float64(JulianDay(1582, 10, 15, 0)), 1e-9)
}

func TestCalendarRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		y, m, d int
		h       float64
	}{
		{2000, 1, 1, 12},
		{1984, 6, 22, 3.5},
		{1900, 2, 28, 23},
		{2024, 2, 29, 0},
		{2100, 12, 31, 6.25},
	} {
		y, m, d, h := JulianDay(tc.y, tc.m, tc.d, tc.h).Calendar()
		assert.Equal(t, tc.y, y)
		assert.Equal(t, tc.m, m)
		assert.Equal(t, tc.d, d)
		assert.InDelta(t, tc.h, h, 1e-6)
	}
}

func TestMomentOfAndTime(t *testing.T) {
	ts := time.Date(1984, 6, 22, 3, 35, 0, 0, time.UTC)
	m := MomentOf(ts)
	assert.True(t, m.Time().Equal(ts), "got %v", m.Time())
	assert.Equal(t, "1984-06-22", m.Date())

	local := time.Date(1984, 6, 22, 9, 5, 0, 0, time.FixedZone("IST", 19800))
	assert.Equal(t, m, MomentOf(local))
}

func TestAddYears(t *testing.T) {
	m := JulianDay(2000, 1, 1, 12)
	assert.Equal(t, m+3652.5, m.AddYears(10))
	assert.Equal(t, "2010-01-01", m.AddYears(10).Date())
}
