package jyotisa

import (
	"math"

	"Jyotisa/internal/domain/models"
)

// DefaultWesternOrb is the default tolerance for Western aspects, in degrees.
const DefaultWesternOrb = 6.0

// Separation is the shortest angular distance between two longitudes, in [0,180].
func Separation(lon1, lon2 float64) float64 {
	d := math.Mod(lon1-lon2+180, 360)
	if d < 0 {
		d += 360
	}
	return math.Abs(d - 180)
}

// VedicAspectsOf maps every non-Ascendant body to the signs it aspects.
func VedicAspectsOf(chart *models.Chart) models.VedicAspects {
	out := make(models.VedicAspects, len(models.Planets))
	for _, p := range chart.Ordered() {
		if p.Body == models.Ascendant {
			continue
		}
		offsets := vedicOffsets[p.Body]
		signs := make([]models.Sign, 0, len(offsets))
		for _, off := range offsets {
			signs = append(signs, p.Sign.Add(off))
		}
		out[p.Body] = signs
	}
	return out
}

// WesternAspectsOf checks every unordered pair of non-Ascendant bodies
// against the five reference angles.
func WesternAspectsOf(chart *models.Chart, orb float64) []models.WesternAspect {
	var bodies []models.BodyPosition
	for _, p := range chart.Ordered() {
		if p.Body != models.Ascendant {
			bodies = append(bodies, p)
		}
	}

	var out []models.WesternAspect
	for i, p1 := range bodies {
		for _, p2 := range bodies[i+1:] {
			sep := Separation(p1.Longitude, p2.Longitude)
			for _, ref := range westernAngles {
				if math.Abs(sep-ref.angle) <= orb {
					out = append(out, models.WesternAspect{
						Body1:      p1.Body,
						Body2:      p2.Body,
						Aspect:     ref.kind,
						Orb:        sep - ref.angle,
						ExactAngle: sep,
					})
				}
			}
		}
	}
	return out
}

// Aspects computes both aspect systems.
func Aspects(chart *models.Chart, orb float64) models.AspectSet {
	return models.AspectSet{
		Vedic:   VedicAspectsOf(chart),
		Western: WesternAspectsOf(chart, orb),
	}
}
