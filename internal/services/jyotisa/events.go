package jyotisa

import (
	"fmt"

	"Jyotisa/internal/domain/models"
)

// AnalyzeEvent reports whether the dasha lord occupies one of the houses
// governing the event category, counted from the Ascendant.
func AnalyzeEvent(event string, chart *models.Chart, lord models.Body) (models.EventAnalysis, error) {
	houses, ok := RelevantHouses(event)
	if !ok {
		return models.EventAnalysis{}, fmt.Errorf("%w: %s", models.ErrUnknownEventCategory, event)
	}
	p, ok := chart.Position(lord)
	if !ok || lord == models.Ascendant {
		return models.EventAnalysis{}, fmt.Errorf("%w: %s", models.ErrLordNotInChart, lord)
	}

	house := p.Sign.HouseFrom(chart.AscendantSign()) + 1
	favorable := false
	for _, h := range houses {
		if h == house {
			favorable = true
			break
		}
	}

	note := fmt.Sprintf("%s is in house %d, which may not directly indicate %s", lord, house, event)
	if favorable {
		note = fmt.Sprintf("%s is in house %d, which is favorable for %s", lord, house, event)
	}
	return models.EventAnalysis{
		Event:          event,
		RelevantHouses: houses,
		DashaLord:      lord,
		LordHouse:      house,
		Favorable:      favorable,
		Note:           note,
	}, nil
}
