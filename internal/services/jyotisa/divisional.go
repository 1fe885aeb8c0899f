package jyotisa

import (
	"fmt"
	"math"
	"strconv"

	"Jyotisa/internal/domain/models"
)

// DefaultScheme is the default set of division factors.
var DefaultScheme = []int{1, 9, 10, 12, 20, 24, 30, 60}

type divisionRule func(sign, part, d int) int

func genericRule(sign, part, d int) int { return sign*d + part }

func byParity(even, odd func(sign, part int) int) divisionRule {
	return func(sign, part, _ int) int {
		if sign%2 == 0 {
			return even(sign, part)
		}
		return odd(sign, part)
	}
}

// divisionRules holds the classical special cases; any other D uses genericRule.
var divisionRules = map[int]divisionRule{
	1: func(sign, _, _ int) int { return sign },
	9: genericRule,
	10: byParity(
		func(sign, part int) int { return sign + part },
		func(sign, part int) int { return sign + part + 8 },
	),
	12: func(sign, part, _ int) int { return sign + part },
	20: byParity(
		func(_, part int) int { return 3 + part },
		func(_, part int) int { return 8 + part },
	),
	24: byParity(
		func(_, part int) int { return 4 + part },
		func(_, part int) int { return 3 + part },
	),
}

// DivisionalSign maps a longitude to its sign in division chart D.
func DivisionalSign(lon float64, d int) (models.Sign, error) {
	if d <= 0 {
		return 0, models.NewInputError("division", strconv.Itoa(d), "must be positive")
	}
	lon = models.NormalizeLongitude(lon)
	sign := int(models.SignOf(lon))
	partSize := 30.0 / float64(d)
	part := int(math.Mod(lon, 30) / partSize)
	if part >= d {
		part = d - 1
	}
	rule, ok := divisionRules[d]
	if !ok {
		rule = genericRule
	}
	return models.Mod12(rule(sign, part, d)), nil
}

// Divisionals computes one divisional chart per factor in scheme for every
// chart body including the Ascendant.
func Divisionals(chart *models.Chart, scheme []int) ([]models.DivisionalChart, error) {
	if len(scheme) == 0 {
		scheme = DefaultScheme
	}
	out := make([]models.DivisionalChart, 0, len(scheme))
	for _, d := range scheme {
		dc := models.DivisionalChart{Division: d, Signs: make(map[models.Body]models.Sign, len(chart.Bodies))}
		for _, p := range chart.Ordered() {
			s, err := DivisionalSign(p.Longitude, d)
			if err != nil {
				return nil, fmt.Errorf("D%d %s: %w", d, p.Body, err)
			}
			dc.Signs[p.Body] = s
		}
		out = append(out, dc)
	}
	return out, nil
}
