package jyotisa

import (
	"context"
	"math"

	"Jyotisa/internal/domain/models"
	"Jyotisa/internal/domain/repository"
	domsvc "Jyotisa/internal/domain/service"
	"Jyotisa/pkg/logger"
)

var (
	dayStrong   = map[models.Body]bool{models.Sun: true, models.Jupiter: true, models.Venus: true}
	nightStrong = map[models.Body]bool{models.Moon: true, models.Mars: true, models.Saturn: true}
)

// StrengthEstimator computes the simplified six-factor strength.
type StrengthEstimator struct {
	eph repository.Ephemeris
	options
}

func NewStrengthEstimator(eph repository.Ephemeris, opts ...Option) *StrengthEstimator {
	return &StrengthEstimator{eph: eph, options: buildOptions(opts)}
}

// Estimate scores the seven classical planets. A failed sunrise lookup
// falls back to the chart moment as the sunrise reference.
func (s *StrengthEstimator) Estimate(ctx context.Context, chart *models.Chart) (models.StrengthTable, error) {
	sunrise, err := s.eph.Sunrise(ctx, chart.Moment, chart.Longitude, chart.Latitude)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.log.Warn("sunrise fallback",
			logger.Float("jd", float64(chart.Moment)),
			logger.Float("lat", chart.Latitude),
			logger.Error(err))
		s.metrics.RecordSunriseFallback()
		sunrise = chart.Moment
	}
	return Strengths(chart, IsDaytime(chart.Moment, sunrise)), nil
}

// IsDaytime reports whether m lies in the first half day after sunrise.
func IsDaytime(m, sunrise models.Moment) bool {
	f := math.Mod(float64(m-sunrise), 1)
	if f < 0 {
		f++
	}
	return f < 0.5
}

// Strengths scores every classical planet present in the chart.
func Strengths(chart *models.Chart, day bool) models.StrengthTable {
	out := make(models.StrengthTable, len(classical))
	for _, b := range classical {
		p, ok := chart.Position(b)
		if !ok {
			continue
		}
		out[b] = Strength(p, day)
	}
	return out
}

// Strength computes the six sub-scores, total, percentage of 390 and Avastha.
func Strength(p models.BodyPosition, day bool) models.StrengthScore {
	sc := models.StrengthScore{
		Sthana:     30 + p.DegreeInSign(),
		Dig:        30,
		Kala:       15,
		Cheshta:    30,
		Naisargika: naisargika[p.Body],
		Drik:       25,
		Avastha:    models.AvasthaOf(p.Longitude),
	}
	if (day && dayStrong[p.Body]) || (!day && nightStrong[p.Body]) {
		sc.Kala = 30
	}
	if p.Retrograde {
		sc.Cheshta = 60
	}
	sc.Total = sc.Sthana + sc.Dig + sc.Kala + sc.Cheshta + sc.Naisargika + sc.Drik
	sc.Percentage = sc.Total / models.StrengthReference * 100
	return sc
}

var _ domsvc.StrengthEstimator = (*StrengthEstimator)(nil)
