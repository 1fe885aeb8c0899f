package jyotisa

import (
	"fmt"

	"Jyotisa/internal/domain/models"
)

// Vimshottari builds the Mahadasha timeline from the chart's Moon and
// computes the Antardasha sequence of every Mahadasha.
func Vimshottari(chart *models.Chart) (*models.DashaTimeline, error) {
	moon, ok := chart.Position(models.Moon)
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrLordNotInChart, models.Moon)
	}
	t, err := VimshottariFrom(moon.Longitude, chart.Moment)
	if err != nil {
		return nil, err
	}
	t.Antardashas = make([]models.AntardashaTimeline, len(t.Periods))
	for i, p := range t.Periods {
		t.Antardashas[i] = Antardasha(p)
	}
	return t, nil
}

// VimshottariFrom builds the nine Mahadasha periods starting at birth from
// the Moon's sidereal longitude. The first period carries the balance of
// the birth nakshatra's ruler; the rest carry full allotments.
func VimshottariFrom(moonLon float64, birth models.Moment) (*models.DashaTimeline, error) {
	if !(moonLon >= 0 && moonLon < 360) {
		return nil, models.NewInputError("moon_longitude", formatFloat(moonLon), "must be within [0, 360)")
	}

	pos := moonLon * 27 / 360
	idx := int(pos)
	if idx > 26 {
		idx = 26
	}
	frac := pos - float64(idx)
	pada := int(frac*4) + 1
	if pada > 4 {
		pada = 4
	}

	start, _ := lordIndex(NakshatraRuler(idx))
	ruler := vimshottari[start]
	balance := ruler.years * (1 - frac)

	t := &models.DashaTimeline{
		MoonLongitude:   moonLon,
		Nakshatra:       nakshatras[idx],
		NakshatraIndex:  idx,
		Pada:            pada,
		Ruler:           ruler.body,
		BalanceYears:    balance,
		ElapsedFraction: frac,
		Periods:         make([]models.DashaPeriod, 0, len(vimshottari)),
	}
	at := birth
	for i := range vimshottari {
		lord := vimshottari[(start+i)%len(vimshottari)]
		years := lord.years
		if i == 0 {
			years = balance
		}
		t.Periods = append(t.Periods, newPeriod(lord.body, at, years))
		at = at.AddYears(years)
	}
	return t, nil
}

// Antardasha splits one Mahadasha into nine sub-periods starting with its
// own lord, each sized total * ruler_years / 120.
func Antardasha(maha models.DashaPeriod) models.AntardashaTimeline {
	start, _ := lordIndex(maha.Lord)
	out := models.AntardashaTimeline{
		Mahadasha: maha.Lord,
		Years:     maha.Years,
		Periods:   make([]models.DashaPeriod, 0, len(vimshottari)),
	}
	at := maha.Start
	for i := range vimshottari {
		sub := vimshottari[(start+i)%len(vimshottari)]
		years := maha.Years * sub.years / CycleYears
		out.Periods = append(out.Periods, newPeriod(sub.body, at, years))
		at = at.AddYears(years)
	}
	return out
}

func newPeriod(lord models.Body, start models.Moment, years float64) models.DashaPeriod {
	end := start.AddYears(years)
	return models.DashaPeriod{
		Lord:      lord,
		Start:     start,
		End:       end,
		StartDate: start.Date(),
		EndDate:   end.Date(),
		Years:     years,
	}
}

// ActiveLord returns the Mahadasha lord running at m, or the birth ruler
// when m falls outside the timeline.
func ActiveLord(t *models.DashaTimeline, m models.Moment) models.Body {
	if maha, _, ok := t.ActivePeriods(m); ok {
		return maha.Lord
	}
	return t.Ruler
}
