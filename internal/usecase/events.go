package usecase

import (
	"context"
	"fmt"

	"Jyotisa/internal/domain/models"
	domsvc "Jyotisa/internal/domain/service"
	"Jyotisa/internal/services/jyotisa"
)

// EventsUseCase evaluates life-event potential against the active dasha.
type EventsUseCase struct {
	builder domsvc.ChartBuilder
	deps
}

func NewEventsUseCase(builder domsvc.ChartBuilder, opts ...Option) *EventsUseCase {
	return &EventsUseCase{builder: builder, deps: newDeps(opts)}
}

// Analyze checks the event category first so unknown categories never
// reach the provider.
func (uc *EventsUseCase) Analyze(ctx context.Context, in models.BirthInput, event string) (rep *models.EventReport, err error) {
	start := uc.clock()
	defer func() { uc.observe("event", start, err) }()

	if _, ok := jyotisa.RelevantHouses(event); !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownEventCategory, event)
	}
	chart, err := uc.builder.Build(ctx, in)
	if err != nil {
		return nil, err
	}
	dasha, err := jyotisa.Vimshottari(chart)
	if err != nil {
		return nil, err
	}
	lord := jyotisa.ActiveLord(dasha, models.MomentOf(start))

	analysis, err := jyotisa.AnalyzeEvent(event, chart, lord)
	if err != nil {
		return nil, err
	}
	return &models.EventReport{
		EventType:      event,
		RelevantHouses: analysis.RelevantHouses,
		DashaLord:      lord,
		Analysis:       analysis,
	}, nil
}
