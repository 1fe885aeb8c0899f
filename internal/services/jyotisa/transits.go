package jyotisa

import (
	"context"

	"Jyotisa/internal/domain/models"
	"Jyotisa/internal/domain/repository"
	domsvc "Jyotisa/internal/domain/service"
)

const (
	// DefaultTransitOrb is the default conjunction tolerance, in degrees.
	DefaultTransitOrb = 3.0
	exactOrb          = 1.0
)

// TransitAnalyzer computes present-moment positions, always under the
// default ayanamsa.
type TransitAnalyzer struct {
	eph repository.Ephemeris
	options
}

func NewTransitAnalyzer(eph repository.Ephemeris, opts ...Option) *TransitAnalyzer {
	return &TransitAnalyzer{eph: eph, options: buildOptions(opts)}
}

func (t *TransitAnalyzer) Current(ctx context.Context, at models.Moment) (*models.Transits, error) {
	bodies, err := queryPlanets(ctx, t.eph, at, models.DefaultAyanamsa, t.metrics)
	if err != nil {
		return nil, err
	}
	return &models.Transits{Moment: at, Ayanamsa: models.DefaultAyanamsa, Bodies: bodies}, nil
}

// TransitHits compares every transiting body against every natal body,
// both excluding the Ascendant, and records conjunctions within orb.
func TransitHits(natal *models.Chart, transits *models.Transits, orb float64) []models.TransitHit {
	hits := []models.TransitHit{}
	for _, tp := range transits.Ordered() {
		if tp.Body == models.Ascendant {
			continue
		}
		for _, np := range natal.Ordered() {
			if np.Body == models.Ascendant {
				continue
			}
			sep := Separation(tp.Longitude, np.Longitude)
			if sep <= orb {
				hits = append(hits, models.TransitHit{
					TransitBody: tp.Body,
					NatalBody:   np.Body,
					Aspect:      models.Conjunction,
					Orb:         sep,
					Exact:       sep < exactOrb,
				})
			}
		}
	}
	return hits
}

var _ domsvc.TransitAnalyzer = (*TransitAnalyzer)(nil)
