package jyotisa

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"Jyotisa/internal/domain/models"
	"Jyotisa/internal/domain/repository"
	domsvc "Jyotisa/internal/domain/service"
	"Jyotisa/pkg/logger"
	"Jyotisa/pkg/util"
)

// ChartBuilder turns raw ephemeris output into a sidereal natal chart.
type ChartBuilder struct {
	eph repository.Ephemeris
	options
}

func NewChartBuilder(eph repository.Ephemeris, opts ...Option) *ChartBuilder {
	return &ChartBuilder{eph: eph, options: buildOptions(opts)}
}

// Build validates the birth input, then queries the eight bodies and the
// houses under the requested ayanamsa.
func (b *ChartBuilder) Build(ctx context.Context, in models.BirthInput) (*models.Chart, error) {
	moment, err := BirthMoment(in)
	if err != nil {
		return nil, err
	}

	ayanamsa, ok := models.ParseAyanamsa(in.Ayanamsa)
	var warnings []string
	if !ok {
		warnings = append(warnings, fmt.Sprintf("unknown ayanamsa %q, using %s", in.Ayanamsa, ayanamsa))
		b.log.Warn("ayanamsa fallback",
			logger.String("requested", in.Ayanamsa),
			logger.String("used", string(ayanamsa)))
		b.metrics.RecordAyanamsaFallback(in.Ayanamsa)
	}

	bodies, err := queryPlanets(ctx, b.eph, moment, ayanamsa, b.metrics)
	if err != nil {
		return nil, err
	}

	cusps, asc, err := b.eph.HouseCusps(ctx, moment, in.Latitude, in.Longitude, ayanamsa)
	if err != nil {
		b.metrics.RecordProviderError("houses")
		return nil, fmt.Errorf("%w: houses: %w", models.ErrProviderUnavailable, err)
	}
	houses := models.HouseCusps{Ascendant: models.NormalizeLongitude(asc)}
	for i, c := range cusps {
		houses.Cusps[i] = models.NormalizeLongitude(c)
	}
	houses.AscendantSign = models.SignOf(houses.Ascendant)
	bodies[models.Ascendant] = models.NewBodyPosition(models.Ascendant, houses.Ascendant, 0)

	return &models.Chart{
		Moment:    moment,
		Ayanamsa:  ayanamsa,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Bodies:    bodies,
		Houses:    houses,
		Warnings:  warnings,
	}, nil
}

// BirthMoment validates coordinates and converts the local birth date and
// time to a UT Julian day. It never touches the provider.
func BirthMoment(in models.BirthInput) (models.Moment, error) {
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return 0, err
	}
	t, err := util.ParseLocalDateTime(in.Date, in.Time, in.UTCOffset)
	if err != nil {
		var pe *util.ParseError
		if errors.As(err, &pe) {
			return 0, &models.InputError{Field: pe.Field, Value: pe.Value, Reason: "parse failed", Err: err}
		}
		return 0, err
	}
	return models.MomentOf(t), nil
}

func validateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return models.NewInputError("lat", formatFloat(lat), "must be within [-90, 90]")
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return models.NewInputError("lon", formatFloat(lon), "must be within [-180, 180]")
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// queryPlanets fetches the eight queryable bodies in chart order.
func queryPlanets(ctx context.Context, eph repository.Ephemeris, m models.Moment, a models.Ayanamsa, metrics repository.Metrics) (map[models.Body]models.BodyPosition, error) {
	bodies := make(map[models.Body]models.BodyPosition, len(models.ChartOrder))
	for _, body := range models.Planets {
		lon, speed, err := eph.LongitudeAndSpeed(ctx, m, body, a)
		if err != nil {
			metrics.RecordProviderError("calc")
			return nil, fmt.Errorf("%w: calc %s: %w", models.ErrProviderUnavailable, body, err)
		}
		bodies[body] = models.NewBodyPosition(body, lon, speed)
	}
	return bodies, nil
}

var _ domsvc.ChartBuilder = (*ChartBuilder)(nil)
