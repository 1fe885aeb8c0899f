package jyotisa

import (
	"fmt"

	"Jyotisa/internal/domain/models"
)

// NoYogas is the single finding reported when no rule fires.
const NoYogas = "No major yogas detected"

type yogaContext struct {
	chart   *models.Chart
	aspects models.VedicAspects
}

func (y *yogaContext) sign(b models.Body) (models.Sign, bool) {
	p, ok := y.chart.Position(b)
	return p.Sign, ok
}

func (y *yogaContext) casts(from models.Body, to models.Sign) bool {
	for _, s := range y.aspects[from] {
		if s == to {
			return true
		}
	}
	return false
}

// yogaRule yields at most one finding.
type yogaRule func(y *yogaContext) (string, bool)

func isKendra(h int) bool  { return h == 0 || h == 3 || h == 6 || h == 9 }
func isTrikona(h int) bool { return h == 0 || h == 4 || h == 8 }

func gajaKesari(y *yogaContext) (string, bool) {
	jup, ok1 := y.sign(models.Jupiter)
	moon, ok2 := y.sign(models.Moon)
	if ok1 && ok2 && isKendra(jup.HouseFrom(moon)) {
		return "Gaja Kesari Yoga (Jupiter-Moon in mutual kendras)", true
	}
	return "", false
}

func dhana(y *yogaContext) (string, bool) {
	ven, ok1 := y.sign(models.Venus)
	jup, ok2 := y.sign(models.Jupiter)
	switch {
	case !ok1 || !ok2:
		return "", false
	case ven == jup:
		return "Dhana Yoga (Venus-Jupiter conjunction)", true
	case y.casts(models.Venus, jup) || y.casts(models.Jupiter, ven):
		return "Dhana Yoga (Venus-Jupiter mutual aspect)", true
	}
	return "", false
}

func conjunctionRule(a, b models.Body, msg string) yogaRule {
	return func(y *yogaContext) (string, bool) {
		sa, ok1 := y.sign(a)
		sb, ok2 := y.sign(b)
		if ok1 && ok2 && sa == sb {
			return msg, true
		}
		return "", false
	}
}

// beneficial reports a benefic in a Kendra, else in a Trikona, counted from
// the Ascendant. Offset 0 is in both sets and reports Kendra only.
func beneficial(planet models.Body) yogaRule {
	return func(y *yogaContext) (string, bool) {
		s, ok := y.sign(planet)
		if !ok {
			return "", false
		}
		h := s.HouseFrom(y.chart.AscendantSign())
		switch {
		case isKendra(h):
			return fmt.Sprintf("Beneficial: %s in Kendra house (%d)", planet, h+1), true
		case isTrikona(h):
			return fmt.Sprintf("Beneficial: %s in Trikona house (%d)", planet, h+1), true
		}
		return "", false
	}
}

// yogaRules are evaluated in order.
var yogaRules = []yogaRule{
	gajaKesari,
	dhana,
	conjunctionRule(models.Sun, models.Mercury, "Budhaditya Yoga (Sun-Mercury conjunction for intellect)"),
	conjunctionRule(models.Moon, models.Mars, "Chandra Mangala Yoga (Moon-Mars conjunction for wealth)"),
	beneficial(models.Jupiter),
	beneficial(models.Venus),
	beneficial(models.Mercury),
}

// DetectYogas evaluates the rule list against a chart and its Vedic aspects.
func DetectYogas(chart *models.Chart, aspects models.VedicAspects) []string {
	y := &yogaContext{chart: chart, aspects: aspects}
	var out []string
	for _, rule := range yogaRules {
		if msg, ok := rule(y); ok {
			out = append(out, msg)
		}
	}
	if len(out) == 0 {
		return []string{NoYogas}
	}
	return out
}
