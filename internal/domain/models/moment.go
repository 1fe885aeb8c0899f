package models

import (
	"fmt"
	"math"
	"time"
)

// DaysPerYear is the Julian year used to advance dasha boundaries.
const DaysPerYear = 365.25

// Moment is a continuous Julian day number in UT.
type Moment float64

// JulianDay converts a proleptic Gregorian date and UT hour fraction.
func JulianDay(year, month, day int, hour float64) Moment {
	y, m := year, month
	if m <= 2 {
		y--
		m += 12
	}
	a := math.Floor(float64(y) / 100)
	b := 2 - a + math.Floor(a/4)
	jd := math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(day) + b - 1524.5
	return Moment(jd + hour/24)
}

// MomentOf converts a wall-clock instant to its Julian day.
func MomentOf(t time.Time) Moment {
	t = t.UTC()
	hour := float64(t.Hour()) +
		float64(t.Minute())/60 +
		float64(t.Second())/3600 +
		float64(t.Nanosecond())/3.6e12
	return JulianDay(t.Year(), int(t.Month()), t.Day(), hour)
}

// Calendar is the inverse of JulianDay.
func (m Moment) Calendar() (year, month, day int, hour float64) {
	jd := float64(m) + 0.5
	z := math.Floor(jd)
	f := jd - z

	alpha := math.Floor((z - 1867216.25) / 36524.25)
	a := z + 1 + alpha - math.Floor(alpha/4)
	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	dayFrac := b - d - math.Floor(30.6001*e) + f
	day = int(dayFrac)
	hour = (dayFrac - float64(day)) * 24

	if e < 14 {
		month = int(e) - 1
	} else {
		month = int(e) - 13
	}
	if month > 2 {
		year = int(c) - 4716
	} else {
		year = int(c) - 4715
	}
	return year, month, day, hour
}

// Time converts the moment back into a UTC time.Time.
func (m Moment) Time() time.Time {
	y, mo, d, h := m.Calendar()
	return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(h * float64(time.Hour))).
		Round(time.Second)
}

// Date formats the calendar date as YYYY-MM-DD.
func (m Moment) Date() string {
	y, mo, d, _ := m.Calendar()
	return fmt.Sprintf("%d-%02d-%02d", y, mo, d)
}

// AddYears advances by Julian years of 365.25 days.
func (m Moment) AddYears(years float64) Moment {
	return m + Moment(years*DaysPerYear)
}
