package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"Jyotisa/internal/domain/models"
	domsvc "Jyotisa/internal/domain/service"
	"Jyotisa/internal/services/jyotisa"
)

// TransitsUseCase serves present-moment transits and natal transit hits.
type TransitsUseCase struct {
	builder    domsvc.ChartBuilder
	analyzer   domsvc.TransitAnalyzer
	defaultOrb float64
	deps
}

// NewTransitsUseCase uses defaultOrb for hit requests that name no orb;
// a negative value falls back to jyotisa.DefaultTransitOrb.
func NewTransitsUseCase(builder domsvc.ChartBuilder, analyzer domsvc.TransitAnalyzer, defaultOrb float64, opts ...Option) *TransitsUseCase {
	if math.IsNaN(defaultOrb) || defaultOrb < 0 {
		defaultOrb = jyotisa.DefaultTransitOrb
	}
	return &TransitsUseCase{builder: builder, analyzer: analyzer, defaultOrb: defaultOrb, deps: newDeps(opts)}
}

// DefaultOrb is the configured conjunction tolerance, in degrees.
func (uc *TransitsUseCase) DefaultOrb() float64 { return uc.defaultOrb }

// Now computes transits at the current instant for a location.
func (uc *TransitsUseCase) Now(ctx context.Context, lat, lon float64) (*models.TransitSnapshot, error) {
	return uc.At(ctx, lat, lon, uc.clock())
}

// At computes transits at instant t for a location.
func (uc *TransitsUseCase) At(ctx context.Context, lat, lon float64, t time.Time) (snap *models.TransitSnapshot, err error) {
	start := uc.clock()
	defer func() { uc.observe("transits", start, err) }()

	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return nil, models.NewInputError("lat", fmt.Sprint(lat), "must be within [-90, 90]")
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return nil, models.NewInputError("lon", fmt.Sprint(lon), "must be within [-180, 180]")
	}
	tr, err := uc.analyzer.Current(ctx, models.MomentOf(t))
	if err != nil {
		return nil, err
	}
	return &models.TransitSnapshot{ComputedAt: t.UTC(), Latitude: lat, Longitude: lon, Transits: tr}, nil
}

// Hits builds the natal chart and compares it with current transits.
func (uc *TransitsUseCase) Hits(ctx context.Context, in models.BirthInput, orb float64) (rep *models.TransitReport, err error) {
	start := uc.clock()
	defer func() { uc.observe("transit_hits", start, err) }()

	if math.IsNaN(orb) || orb < 0 {
		return nil, models.NewInputError("orb", fmt.Sprint(orb), "must be non-negative")
	}
	natal, err := uc.builder.Build(ctx, in)
	if err != nil {
		return nil, err
	}
	tr, err := uc.analyzer.Current(ctx, models.MomentOf(start))
	if err != nil {
		return nil, err
	}
	hits := jyotisa.TransitHits(natal, tr, orb)
	return &models.TransitReport{
		ComputedAt: start.UTC(),
		NatalDate:  in.Date,
		Transits:   tr,
		Hits:       hits,
		TotalHits:  len(hits),
	}, nil
}
